package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/booking/model/dto"
	serviceMocks "hotelier/internal/domains/booking/service/mocks"
	"hotelier/shared/constant"
)

func newHandler(t *testing.T) (Handler, *serviceMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := serviceMocks.NewMockBooking(ctrl)

	return New(svc, otelMocks.NewOtel()), svc
}

func customerCtx(id int64) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleCustomer)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "guest@example.com")

	return context.WithValue(ctx, constant.ContextKeyCustomerID, id)
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@example.com")

	return context.WithValue(ctx, constant.ContextKeyCustomerID, int64(0))
}

func requestWithID(ctx context.Context, method, target, id string) *http.Request {
	r := httptest.NewRequest(method, target, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(constant.RequestParamID, id)

	return r.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func TestHandler_GetBookingByID_CustomerScope(t *testing.T) {
	booking := dto.BookingResponse{ID: 42, CustomerID: 7, RoomID: 1}

	t.Run("customer reads their own booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)

		rec := httptest.NewRecorder()
		handler.GetBookingByID(rec, requestWithID(customerCtx(7), http.MethodGet, "/bookings/42", "42"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer cannot read another customer's booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)

		rec := httptest.NewRecorder()
		handler.GetBookingByID(rec, requestWithID(customerCtx(9), http.MethodGet, "/bookings/42", "42"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin reads any booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)

		rec := httptest.NewRecorder()
		handler.GetBookingByID(rec, requestWithID(adminCtx(), http.MethodGet, "/bookings/42", "42"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_CancelBooking_CustomerScope(t *testing.T) {
	booking := dto.BookingResponse{ID: 42, CustomerID: 7, RoomID: 1}

	t.Run("customer cancels their own booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)
		svc.EXPECT().Cancel(gomock.Any(), int64(42)).Return(nil)

		rec := httptest.NewRecorder()
		handler.CancelBooking(rec, requestWithID(customerCtx(7), http.MethodPost, "/bookings/42/cancel", "42"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer cannot cancel another customer's booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)

		rec := httptest.NewRecorder()
		handler.CancelBooking(rec, requestWithID(customerCtx(9), http.MethodPost, "/bookings/42/cancel", "42"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin cancels any booking", func(t *testing.T) {
		handler, svc := newHandler(t)
		svc.EXPECT().Get(gomock.Any(), int64(42)).Return(booking, nil)
		svc.EXPECT().Cancel(gomock.Any(), int64(42)).Return(nil)

		rec := httptest.NewRecorder()
		handler.CancelBooking(rec, requestWithID(adminCtx(), http.MethodPost, "/bookings/42/cancel", "42"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBookingFilters_DateRange(t *testing.T) {
	t.Run("a stay spanning the whole range still matches", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/bookings?from=2026-01-05&to=2026-01-10", nil)

		fg := bookingFilters(r)
		clause, args := fg.GetWhereClause()

		// The predicate is on both interval ends, so a booking running
		// Jan 1 through Jan 20 is matched by a Jan 5 to Jan 10 query.
		assert.Contains(t, clause, "bookings.end_date > :from")
		assert.Contains(t, clause, "bookings.start_date <= :to")
		assert.Equal(t, "2026-01-05", args["from"])
		assert.Equal(t, "2026-01-10", args["to"])
	})

	t.Run("open-ended from keeps bookings that end after it", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/bookings?from=2026-01-05", nil)

		fg := bookingFilters(r)
		clause, args := fg.GetWhereClause()

		assert.Contains(t, clause, "bookings.end_date > :from")
		assert.NotContains(t, clause, ":to")
		assert.Equal(t, "2026-01-05", args["from"])
	})

	t.Run("open-ended to keeps bookings that start by it", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/bookings?to=2026-01-10", nil)

		fg := bookingFilters(r)
		clause, args := fg.GetWhereClause()

		assert.Contains(t, clause, "bookings.start_date <= :to")
		assert.NotContains(t, clause, ":from")
		assert.Equal(t, "2026-01-10", args["to"])
	})

	t.Run("no date params adds no date filters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/bookings", nil)

		fg := bookingFilters(r)
		clause, _ := fg.GetWhereClause()

		assert.NotContains(t, clause, "start_date")
		assert.NotContains(t, clause, "end_date")
	})
}
