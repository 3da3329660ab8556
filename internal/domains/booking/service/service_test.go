package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	kafkaMocks "hotelier/infras/kafka/mocks"
	otelMocks "hotelier/infras/otel/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	customerMocks "hotelier/internal/domains/customer/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/cache"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type bookingMocksBundle struct {
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	customerRepo *customerMocks.MockCustomer
	cache        *cacheMocks.MockRedisCache
	kafka        *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) (service.Booking, bookingMocksBundle) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := bookingMocksBundle{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		customerRepo: customerMocks.NewMockCustomer(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "hotelier.booking.events"

	svc := service.New(m.repo, m.roomRepo, m.customerRepo, cfg, m.cache, otelMocks.NewOtel(), m.kafka)

	return svc, m
}

func allowAsyncEffects(m bookingMocksBundle) {
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func activeRoom() roomModel.Room {
	return roomModel.Room{
		ID:          1,
		RoomNumber:  "R101",
		Status:      roomModel.StatusActive,
		PricePerDay: 100.00,
		RoomTypeID:  1,
	}
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestBookingService_Create(t *testing.T) {
	baseReq := dto.CreateBookingRequest{
		CustomerID: 3,
		RoomID:     1,
		StartDate:  "2026-01-05",
		EndDate:    "2026-01-08",
	}

	t.Run("price is frozen from the room rate at save time", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) (int64, error) {
				assert.Equal(t, 3, b.Duration)
				assert.Equal(t, 300.00, b.TotalPrice)
				assert.Equal(t, model.StatusActive, b.Status)
				return int64(42), nil
			})

		res, err := svc.Create(adminCtx(), baseReq)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, 300.00, res.TotalPrice)
	})

	t.Run("overlapping booking is rejected and nothing is written", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(adminCtx(), baseReq)

		assert.Error(t, err)
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("zero length stay is rejected before any store access", func(t *testing.T) {
		svc, _ := newBookingService(t)

		req := baseReq
		req.EndDate = req.StartDate

		_, err := svc.Create(adminCtx(), req)

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc, _ := newBookingService(t)

		req := baseReq
		req.StartDate = "2026-01-08"
		req.EndDate = "2026-01-05"

		_, err := svc.Create(adminCtx(), req)

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(adminCtx(), baseReq)

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("deleted room is rejected", func(t *testing.T) {
		svc, m := newBookingService(t)

		room := activeRoom()
		room.Status = roomModel.StatusDeleted

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		_, err := svc.Create(adminCtx(), baseReq)

		assert.Error(t, err)
	})

	t.Run("customer principal defaults to the online channel", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) (int64, error) {
				assert.Equal(t, model.ChannelOnline, b.Channel)
				return int64(43), nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "jane@example.com")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)

		_, err := svc.Create(ctx, baseReq)

		assert.NoError(t, err)
	})

	t.Run("admin principal defaults to the offline channel", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) (int64, error) {
				assert.Equal(t, model.ChannelOffline, b.Channel)
				return int64(44), nil
			})

		_, err := svc.Create(adminCtx(), baseReq)

		assert.NoError(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("missing booking reports not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(adminCtx(), 99)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("found booking is returned", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: 42, CustomerID: 3, Status: model.StatusActive}, nil)

		res, err := svc.Get(adminCtx(), 42)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
	})
}

func TestBookingService_Update(t *testing.T) {
	current := model.Booking{
		ID:         42,
		CustomerID: 3,
		RoomID:     1,
		StartDate:  time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC),
		Duration:   3,
		TotalPrice: 300.00,
		Status:     model.StatusActive,
		Channel:    model.ChannelOnline,
	}

	t.Run("edit excludes the booking's own interval from the conflict set", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, current.ID, args["exclude_id"])
				return false, nil
			})
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{EndDate: "2026-01-09"}, 42)

		assert.NoError(t, err)
	})

	t.Run("price is recomputed when the stay changes", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 4, fields[model.FieldDuration])
				assert.Equal(t, 400.00, fields[model.FieldTotalPrice])
				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{EndDate: "2026-01-09"}, 42)

		assert.NoError(t, err)
	})

	t.Run("terminal booking is not editable", func(t *testing.T) {
		svc, m := newBookingService(t)

		cancelled := current
		cancelled.Status = model.StatusCancelled

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{EndDate: "2026-01-09"}, 42)

		assert.Error(t, err)
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{EndDate: "2026-01-09"}, 99)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("overlap with another booking rejects the edit", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{EndDate: "2026-01-12"}, 42)

		assert.Error(t, err)
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})
}

func TestBookingService_Transitions(t *testing.T) {
	active := model.Booking{ID: 42, RoomID: 1, Status: model.StatusActive}

	t.Run("cancel an active booking", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				return nil
			})

		assert.NoError(t, svc.Cancel(adminCtx(), 42))
	})

	t.Run("complete an active booking", func(t *testing.T) {
		svc, m := newBookingService(t)
		allowAsyncEffects(m)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])
				return nil
			})

		assert.NoError(t, svc.Complete(adminCtx(), 42))
	})

	t.Run("terminal statuses are final", func(t *testing.T) {
		svc, m := newBookingService(t)

		cancelled := active
		cancelled.Status = model.StatusCancelled

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)

		err := svc.Complete(adminCtx(), 42)

		assert.Error(t, err)
		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := svc.Cancel(adminCtx(), 99)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_AvailableRooms(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: 1, RoomNumber: "R101", Status: roomModel.StatusActive, PricePerDay: 100.00},
		{ID: 2, RoomNumber: "R102", Status: roomModel.StatusActive, PricePerDay: 80.00},
	}

	t.Run("rooms with overlapping active bookings are excluded", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: 42, RoomID: 1}}, nil)

		res, err := svc.AvailableRooms(context.Background(), dto.AvailabilityRequest{
			StartDate: "2026-01-06",
			EndDate:   "2026-01-09",
		})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
		assert.Equal(t, "R102", res.Rooms[0].RoomNumber)
	})

	t.Run("read is idempotent", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil).Times(2)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil).
			Times(2)

		req := dto.AvailabilityRequest{StartDate: "2026-01-05", EndDate: "2026-01-10"}

		first, err := svc.AvailableRooms(context.Background(), req)
		assert.NoError(t, err)

		second, err := svc.AvailableRooms(context.Background(), req)
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Rooms, 2)
	})

	t.Run("degenerate range is rejected without touching the store", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.AvailableRooms(context.Background(), dto.AvailabilityRequest{
			StartDate: "2026-01-05",
			EndDate:   "2026-01-05",
		})

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}
