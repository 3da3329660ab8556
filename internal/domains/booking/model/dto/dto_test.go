package dto_test

import (
	"testing"
	"time"

	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_Dates(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   bool
		wantField string
	}{
		{
			name:      "valid range",
			startDate: "2026-09-01",
			endDate:   "2026-09-04",
		},
		{
			name:      "invalid start format",
			startDate: "01-09-2026",
			endDate:   "2026-09-04",
			wantErr:   true,
			wantField: "start_date",
		},
		{
			name:      "invalid end format",
			startDate: "2026-09-01",
			endDate:   "not-a-date",
			wantErr:   true,
			wantField: "end_date",
		},
		{
			name:      "zero-length stay",
			startDate: "2026-09-01",
			endDate:   "2026-09-01",
			wantErr:   true,
			wantField: "end_date",
		},
		{
			name:      "inverted range",
			startDate: "2026-09-04",
			endDate:   "2026-09-01",
			wantErr:   true,
			wantField: "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{
				CustomerID: 1,
				RoomID:     1,
				StartDate:  tt.startDate,
				EndDate:    tt.endDate,
			}

			start, end, err := req.Dates()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.KindValidation, failure.GetKind(err))

				var fail *failure.Failure
				require.ErrorAs(t, err, &fail)
				assert.Equal(t, tt.wantField, fail.Field)

				return
			}

			require.NoError(t, err)
			assert.True(t, end.After(start))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		CustomerID: 9,
		RoomID:     4,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-04",
	}

	start, end, err := req.Dates()
	require.NoError(t, err)

	booking := req.ToModel("admin@hotelier.example", start, end, 150.50, model.ChannelOffline)

	assert.Equal(t, int64(9), booking.CustomerID)
	assert.Equal(t, int64(4), booking.RoomID)
	assert.Equal(t, 3, booking.Duration)
	assert.InDelta(t, 451.50, booking.TotalPrice, 0.001)
	assert.Equal(t, model.StatusActive, booking.Status)
	assert.Equal(t, model.ChannelOffline, booking.Channel)
	assert.Equal(t, "admin@hotelier.example", booking.CreatedBy)
	assert.False(t, booking.BookingDate.IsZero())
}

func TestCreateBookingRequest_ToModel_SubDayStayCountsAsOneDay(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	req := dto.CreateBookingRequest{CustomerID: 1, RoomID: 1}
	booking := req.ToModel("admin@hotelier.example", start, end, 100, model.ChannelOnline)

	assert.Equal(t, 1, booking.Duration)
	assert.InDelta(t, 100.0, booking.TotalPrice, 0.001)
}

func TestAvailabilityRequest_Dates(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := dto.AvailabilityRequest{StartDate: "2026-09-01", EndDate: "2026-09-02"}

		start, end, err := req.Dates()
		require.NoError(t, err)
		assert.True(t, end.After(start))
	})

	t.Run("degenerate range", func(t *testing.T) {
		req := dto.AvailabilityRequest{StartDate: "2026-09-01", EndDate: "2026-09-01"}

		_, _, err := req.Dates()
		require.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}
