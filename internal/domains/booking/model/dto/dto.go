package dto

import (
	"time"

	"hotelier/internal/domains/booking/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateBookingRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,min=1"`
	RoomID     int64  `json:"room_id"     validate:"required,min=1"`
	StartDate  string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Channel    string `json:"channel"     validate:"omitempty,oneof=online offline"`
}

// Dates returns the parsed stay interval. The end date must be strictly after
// the start date; a zero-length stay is rejected before anything is written.
func (c *CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return start, end, failure.Validation("start_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	end, err = time.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return start, end, failure.Validation("end_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if !end.After(start) {
		return start, end, failure.Validation("end_date", "end date must be after start date") // nolint:wrapcheck
	}

	return start, end, nil
}

func (c *CreateBookingRequest) ToModel(user string, start, end time.Time, pricePerDay float64, channel string) model.Booking {
	duration := model.DurationDays(start, end)

	return model.Booking{
		CustomerID:  c.CustomerID,
		RoomID:      c.RoomID,
		BookingDate: timezone.Now(),
		StartDate:   start,
		EndDate:     end,
		Duration:    duration,
		TotalPrice:  pricePerDay * float64(duration),
		Status:      model.StatusActive,
		Channel:     channel,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	RoomID    *int64 `json:"room_id"    validate:"omitempty,min=1"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Channel   string `json:"channel"    validate:"omitempty,oneof=online offline"`
}

type AvailabilityRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (a *AvailabilityRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateOnlyFormat, a.StartDate)
	if err != nil {
		return start, end, failure.Validation("start_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	end, err = time.Parse(constant.DateOnlyFormat, a.EndDate)
	if err != nil {
		return start, end, failure.Validation("end_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if !end.After(start) {
		return start, end, failure.Validation("end_date", "end date must be after start date") // nolint:wrapcheck
	}

	return start, end, nil
}

type BookingResponse struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	RoomID       int64     `json:"room_id"`
	RoomNumber   string    `json:"room_number,omitempty"`
	BookingDate  time.Time `json:"booking_date"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Duration     int       `json:"duration"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	Channel      string    `json:"channel"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.BookingDate = model.BookingDate
	r.StartDate = model.StartDate
	r.EndDate = model.EndDate
	r.Duration = model.Duration
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Channel = model.Channel
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailableRoomsResponse struct {
	Rooms     []roomDto.RoomResponse `json:"rooms"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
}

// BookingEvent is the payload published to the booking lifecycle topic.
type BookingEvent struct {
	Action     string    `json:"action"`
	BookingID  int64     `json:"booking_id"`
	CustomerID int64     `json:"customer_id"`
	RoomID     int64     `json:"room_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	Channel    string    `json:"channel"`
	OccurredAt time.Time `json:"occurred_at"`
}
