package service

import (
	"context"
	"fmt"
	"time"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	customerModel "hotelier/internal/domains/customer/model"
	customerRepo "hotelier/internal/domains/customer/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/lock"
	"hotelier/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	eventBookingCreated   = "booking.created"
	eventBookingUpdated   = "booking.updated"
	eventBookingCancelled = "booking.cancelled"
	eventBookingCompleted = "booking.completed"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) error
	Cancel(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailableRoomsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
	locks        *lock.Keyed
}

func New(repo repository.Booking, roomRepo roomRepo.Room, customerRepo customerRepo.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafkaClient,
		locks:        &lock.Keyed{},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	start, end, err := req.Dates()
	if err != nil {
		return res, err
	}

	// Staff may book for banned customers at the desk, so only existence is
	// checked here. The login gate is where the ban matters.
	customerExists, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return res, failure.BadRequestFromString("customer does not exist") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 || room.Status == roomModel.StatusDeleted {
		return res, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	channel := req.Channel
	if channel == constant.Empty {
		channel = model.ChannelOffline
		if role == constant.RoleCustomer {
			channel = model.ChannelOnline
		}
	}

	// The overlap check and the insert must not interleave with another
	// writer on the same room.
	unlock := s.locks.Lock(req.RoomID)
	defer unlock()

	conflict, err := s.repo.Exist(ctx, conflictFilter(req.RoomID, start, end, 0))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflicts")

		return res, fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if conflict {
		return res, failure.Conflict("room is already booked for the requested dates") // nolint:wrapcheck
	}

	booking := req.ToModel(user, start, end, room.PricePerDay, channel)

	id, err := s.repo.Insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = id
	booking.RoomNumber = room.RoomNumber

	s.afterWrite(ctx, eventBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, fmt.Sprintf("%d", id))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == 0 {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if current.IsTerminal() {
		return failure.Conflict("booking is no longer editable") // nolint:wrapcheck
	}

	start, end, err := effectiveDates(req, current)
	if err != nil {
		return err
	}

	roomID := current.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 || room.Status == roomModel.StatusDeleted {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	unlock := s.locks.Lock(roomID)
	defer unlock()

	// The booking being edited must not collide with itself.
	conflict, err := s.repo.Exist(ctx, conflictFilter(roomID, start, end, current.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflicts")

		return fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if conflict {
		return failure.Conflict("room is already booked for the requested dates") // nolint:wrapcheck
	}

	duration := model.DurationDays(start, end)

	updatedFields := map[string]any{
		model.FieldRoomID:        roomID,
		model.FieldStartDate:     start,
		model.FieldEndDate:       end,
		model.FieldDuration:      duration,
		model.FieldTotalPrice:    room.PricePerDay * float64(duration),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.Channel != constant.Empty {
		updatedFields[model.FieldChannel] = req.Channel
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	current.RoomID = roomID
	current.StartDate = start
	current.EndDate = end
	current.Duration = duration
	current.TotalPrice = room.PricePerDay * float64(duration)

	s.afterWrite(ctx, eventBookingUpdated, current)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.StatusCancelled, eventBookingCancelled)
}

func (s *serviceImpl) Complete(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.StatusCompleted, eventBookingCompleted)
}

// transition moves an active booking into a terminal status. Terminal states
// are final; cancelled bookings free their room for the interval.
func (s *serviceImpl) transition(ctx context.Context, id int64, status, action string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == 0 {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if current.IsTerminal() {
		return failure.Conflict(fmt.Sprintf("booking is already %s", current.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	current.Status = status

	s.afterWrite(ctx, action, current)

	return nil
}

func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Dates()
	if err != nil {
		return res, err
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Table:    roomModel.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    roomModel.StatusActive,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	booked, err := s.repo.GetAll(ctx, gDto.QueryParams{}, overlapFilter(start, end), model.FieldRoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	bookedRooms := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		bookedRooms[b.RoomID] = struct{}{}
	}

	res.StartDate = req.StartDate
	res.EndDate = req.EndDate
	res.Rooms = []roomDto.RoomResponse{}

	for _, room := range rooms {
		if _, taken := bookedRooms[room.ID]; taken {
			continue
		}

		var roomRes roomDto.RoomResponse
		roomRes.FromModel(room)
		res.Rooms = append(res.Rooms, roomRes)
	}

	return res, nil
}

// afterWrite invalidates read caches and publishes the lifecycle event. Both
// are fire-and-forget; the write already committed.
func (s *serviceImpl) afterWrite(ctx context.Context, action string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, fmt.Sprintf("%d", booking.ID))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		event := dto.BookingEvent{
			Action:     action,
			BookingID:  booking.ID,
			CustomerID: booking.CustomerID,
			RoomID:     booking.RoomID,
			StartDate:  booking.StartDate,
			EndDate:    booking.EndDate,
			TotalPrice: booking.TotalPrice,
			Status:     booking.Status,
			Channel:    booking.Channel,
			OccurredAt: timezone.Now(),
		}

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   uuid.NewString(),
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("failed to publish booking event")
		}
	}()
}

func effectiveDates(req dto.UpdateBookingRequest, current model.Booking) (start, end time.Time, err error) {
	start = current.StartDate
	end = current.EndDate

	if req.StartDate != constant.Empty {
		start, err = time.Parse(constant.DateOnlyFormat, req.StartDate)
		if err != nil {
			return start, end, failure.Validation("start_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	if req.EndDate != constant.Empty {
		end, err = time.Parse(constant.DateOnlyFormat, req.EndDate)
		if err != nil {
			return start, end, failure.Validation("end_date", "invalid date format, expected YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	if !end.After(start) {
		return start, end, failure.Validation("end_date", "end date must be after start date") // nolint:wrapcheck
	}

	return start, end, nil
}

// conflictFilter matches active bookings on the room whose half-open stay
// interval intersects [start, end). excludeID drops the booking being edited.
func conflictFilter(roomID int64, start, end time.Time, excludeID int64) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Table:    model.TableName,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
		},
	}

	overlap := overlapFilter(start, end)
	filters = append(filters, overlap.Filters...)

	if excludeID > 0 {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Table:    model.TableName,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func overlapFilter(start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusActive,
			},
			gDto.Filter{
				ArgName:  "overlap_end",
				Field:    model.FieldStartDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorLess,
				Value:    end,
			},
			gDto.Filter{
				ArgName:  "overlap_start",
				Field:    model.FieldEndDate,
				Table:    model.TableName,
				Operator: gDto.FilterOperatorGreater,
				Value:    start,
			},
		},
	}
}
