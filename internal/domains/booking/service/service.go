package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"oec/config"
	"oec/infras/otel"
	"oec/infras/postgres"
	"oec/internal/domains/booking/model"
	"oec/internal/domains/booking/model/dto"
	"oec/internal/domains/booking/planner"
	"oec/internal/domains/booking/repository"
	facilityModel "oec/internal/domains/facility/model"
	facilityDto "oec/internal/domains/facility/model/dto"
	facilityRepo "oec/internal/domains/facility/repository"
	notificationModel "oec/internal/domains/notification/model"
	notificationService "oec/internal/domains/notification/service"
	pricingService "oec/internal/domains/pricing/service"
	userModel "oec/internal/domains/user/model"
	userRepo "oec/internal/domains/user/repository"
	"oec/shared"
	"oec/shared/cache"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	"oec/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	// Quote prices a draft without checking availability or writing anything.
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	// Transition is the only way a booking changes after submission.
	Transition(ctx context.Context, id string, req dto.TransitionRequest) (dto.BookingResponse, error)
	SetAirtableRecord(ctx context.Context, id, recordID string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	items        repository.Item
	facilities   facilityRepo.Facility
	users        userRepo.User
	pricing      pricingService.Pricing
	notification notificationService.Notification
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	items repository.Item,
	facilities facilityRepo.Facility,
	users userRepo.User,
	pricing pricingService.Pricing,
	notification notificationService.Notification,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		items:        items,
		facilities:   facilities,
		users:        users,
		pricing:      pricing,
		notification: notification,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	quote, err := s.quote(ctx, req)
	if err != nil {
		return res, err
	}

	res.FromQuote(quote)

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft := dto.QuoteRequest{Category: req.Category, StartDate: req.StartDate, EndDate: req.EndDate}

	start, end, err := draft.Range()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	rows, err := planner.BuildSchedule(start, end, nil)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	candidates, err := s.candidates(ctx, req.Category, req.Building)
	if err != nil {
		return res, err
	}

	reservations, err := s.repo.Reservations(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.Days = make([]dto.DayAvailability, len(rows))
	for i, row := range rows {
		available := planner.AvailableItems(row.Day, candidates, reservations)

		res.Days[i].Date = row.Day.Format(constant.DayFormat)
		res.Days[i].Items = make([]facilityDto.FacilityResponse, len(available))

		for j, item := range available {
			res.Days[i].Items[j].FromModel(item)
		}
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("account not found") // nolint:wrapcheck
	}

	if !user.CanBook() {
		return res, failure.Forbidden("account is not approved for bookings yet") // nolint:wrapcheck
	}

	quote, err := s.quote(ctx, req.QuoteRequest)
	if err != nil {
		return res, err
	}

	if err = planner.ValidateSchedule(quote.Rows, req.Mode()); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.checkAvailability(ctx, quote); err != nil {
		return res, err
	}

	booking, items := req.ToModel(user.ID, user.CompanyID, quote)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.items.InsertBulkTx(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to insert booking items: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.notify(ctx, booking)
	s.invalidate(ctx, constant.Empty)

	res.FromModel(booking, items)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if building, _ := ctx.Value(constant.ContextKeyBuilding).(string); building != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBuilding,
			Operator: gDto.FilterOperatorEq,
			Value:    building,
			Table:    model.TableName,
			ArgName:  "scope_building",
		})
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.list(ctx, req, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCreatedBy, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
		},
	})
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
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

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
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

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		res, err = s.load(ctx, id)
		if err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if err = authorize(ctx, res.CreatedBy, res.Building); err != nil {
		return dto.BookingResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	items, err := s.items.GetAll(ctx, gDto.QueryParams{SortBy: "position", SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.ItemFieldBookingID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.ItemTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking items")

		return res, fmt.Errorf("failed to get booking items: %w", err)
	}

	res.FromModel(booking, items)

	return res, nil
}

func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.TransitionRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	action := model.Action(req.Action)
	if !action.IsValid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown action %q", req.Action)) // nolint:wrapcheck
	}

	if !action.AllowedFor(role) {
		return res, failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = authorize(ctx, booking.CreatedBy, booking.Building); err != nil {
		return res, err
	}

	if booking.Version != req.Version {
		return res, failure.StaleVersionError
	}

	changes, err := booking.Plan(action)
	if err != nil {
		return res, planFailure(err)
	}

	if booking.ApprovalStatus == model.ApprovalRejected && changes[model.FieldApprovalStatus] == model.ApprovalPending {
		if err = s.checkReopening(ctx, booking); err != nil {
			return res, err
		}
	}

	if field := action.DocumentField(); field != constant.Empty {
		if req.DocumentURL == constant.Empty {
			return res, failure.BadRequestFromString("a document is required for " + req.Action) // nolint:wrapcheck
		}

		changes[field] = req.DocumentURL
	}

	if req.Notes != constant.Empty {
		changes[model.FieldNotes] = req.Notes
	}

	changes[model.FieldVersion] = booking.Version + 1
	changes[constant.FieldModifiedAt] = timezone.Now()
	changes[constant.FieldModifiedBy] = user

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldVersion,
		Operator: gDto.FilterOperatorEq,
		Value:    booking.Version,
		Table:    model.TableName,
		ArgName:  "current_version",
	})

	affected, err := s.repo.UpdateAffected(ctx, changes, filter)
	if err != nil {
		log.Error().Err(err).Str("action", req.Action).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return res, failure.StaleVersionError
	}

	s.invalidate(ctx, id)

	return s.load(ctx, id)
}

func (s *serviceImpl) SetAirtableRecord(ctx context.Context, id, recordID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAirtableRecord")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.repo.Update(ctx, map[string]any{
		model.FieldAirtableRecordID: recordID,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to save airtable record id")

		return fmt.Errorf("failed to save airtable record id: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldBuilding, model.FieldCreatedBy)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = authorize(ctx, booking.CreatedBy, booking.Building); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// quote normalises the schedule to the requested range and prices it with one settings snapshot.
func (s *serviceImpl) quote(ctx context.Context, req dto.QuoteRequest) (quote dto.Quote, err error) {
	start, end, err := req.Range()
	if err != nil {
		return quote, failure.BadRequest(err) // nolint:wrapcheck
	}

	rows, err := planner.BuildSchedule(start, end, req.Rows())
	if err != nil {
		return quote, failure.BadRequest(err) // nolint:wrapcheck
	}

	for i := range rows {
		rows[i].ItemIDs = unique(rows[i].ItemIDs)
	}

	settings, err := s.pricing.Current(ctx)
	if err != nil {
		return quote, fmt.Errorf("failed to get pricing: %w", err)
	}

	candidates, err := s.candidates(ctx, req.Category, constant.Empty)
	if err != nil {
		return quote, err
	}

	items := make(map[string]facilityModel.Facility, len(candidates))
	for _, item := range candidates {
		items[item.ID] = item
	}

	for _, row := range rows {
		for _, id := range row.ItemIDs {
			item, ok := items[id]
			if !ok {
				return quote, failure.BadRequestFromString(fmt.Sprintf("item %s cannot be booked as %s", id, req.Category)) // nolint:wrapcheck
			}

			if quote.Building == constant.Empty {
				quote.Building = item.Building
			}

			if item.Building != quote.Building {
				return quote, failure.BadRequestFromString("all items of a booking must be in the same building") // nolint:wrapcheck
			}
		}
	}

	quote.Start = rows[0].Day
	quote.End = rows[len(rows)-1].Day
	quote.Rows = rows
	quote.Lines = planner.Lines(rows, items, settings)
	quote.Total = planner.TotalCost(rows, items, settings, req.NumberOfAttendees, req.Services())

	for _, line := range quote.Lines {
		if line.Cost.IsZero() {
			log.Debug().Str("item", line.Item.ID).Str("category", line.Item.Category).Msg("no price configured, item costs nothing")
		}
	}

	return quote, nil
}

func (s *serviceImpl) candidates(ctx context.Context, category, building string) ([]facilityModel.Facility, error) {
	categories := []string{facilityModel.CategoryHall, facilityModel.CategorySection}
	if category == model.CategoryDormitory {
		categories = []string{facilityModel.CategoryDormitory}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: facilityModel.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: facilityModel.TableName},
			gDto.Filter{Field: facilityModel.FieldCategory, Operator: gDto.FilterOperatorIn, Value: categories, Table: facilityModel.TableName},
		},
	}

	if building != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: facilityModel.FieldBuilding, Operator: gDto.FilterOperatorEq, Value: building, Table: facilityModel.TableName,
		})
	}

	candidates, err := s.facilities.GetAll(ctx, gDto.QueryParams{SortBy: facilityModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookable items")

		return nil, fmt.Errorf("failed to get bookable items: %w", err)
	}

	return candidates, nil
}

// checkAvailability rejects the quote when an assigned item is held by another booking.
func (s *serviceImpl) checkAvailability(ctx context.Context, quote dto.Quote) error {
	byDay := map[time.Time][]facilityModel.Facility{}
	for _, line := range quote.Lines {
		day := planner.Day(line.Day)
		byDay[day] = append(byDay[day], line.Item)
	}

	return s.checkHeld(ctx, quote.Start, quote.End, byDay)
}

// checkReopening rejects moving a rejected booking back to pending when another
// booking took one of its items in the meantime.
func (s *serviceImpl) checkReopening(ctx context.Context, booking model.Booking) error {
	items, err := s.items.GetAll(ctx, gDto.QueryParams{SortBy: "position", SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.ItemFieldBookingID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.ItemTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking items")

		return fmt.Errorf("failed to get booking items: %w", err)
	}

	byDay := map[time.Time][]facilityModel.Facility{}
	for _, item := range items {
		day := planner.Day(item.Date)
		byDay[day] = append(byDay[day], facilityModel.Facility{ID: item.ItemID, Name: item.Name})
	}

	return s.checkHeld(ctx, booking.StartDate, booking.EndDate, byDay)
}

// checkHeld returns a conflict for the first item, by day, that a reservation in [start, end] holds.
func (s *serviceImpl) checkHeld(ctx context.Context, start, end time.Time, byDay map[time.Time][]facilityModel.Facility) error {
	reservations, err := s.repo.Reservations(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return fmt.Errorf("failed to get reservations: %w", err)
	}

	days := slices.SortedFunc(maps.Keys(byDay), time.Time.Compare)

	for _, day := range days {
		assigned := byDay[day]
		available := planner.AvailableItems(day, assigned, reservations)

		for _, item := range assigned {
			if !slices.ContainsFunc(available, func(f facilityModel.Facility) bool { return f.ID == item.ID }) {
				return failure.Conflict(fmt.Sprintf("%s is already booked on %s", item.Name, day.Format(constant.DayFormat))) // nolint:wrapcheck
			}
		}
	}

	return nil
}

// notify publishes the submission. Failures never reach the caller.
func (s *serviceImpl) notify(ctx context.Context, booking model.Booking) {
	err := s.notification.PublishBookingCreated(ctx, notificationModel.BookingCreated{
		BookingID:     booking.ID,
		Category:      booking.Category,
		Building:      booking.Building,
		RequesterName: booking.RequesterName,
		CompanyName:   booking.CompanyName,
		Email:         booking.Email,
		Phone:         booking.Phone,
		StartDate:     booking.StartDate.Format(constant.DayFormat),
		EndDate:       booking.EndDate.Format(constant.DayFormat),
		TotalCost:     booking.TotalCost,
		CreatedAt:     booking.CreatedAt,
	})
	if err != nil {
		log.Warn().Err(err).Str("booking", booking.ID).Msg("booking saved but notification was not sent")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// authorize lets staff of the booking's building and the requester through.
func authorize(ctx context.Context, owner, building string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !userModel.IsStaffRole(role) {
		if owner != user {
			return failure.ResourceRestrictedError
		}

		return nil
	}

	assigned, _ := ctx.Value(constant.ContextKeyBuilding).(string)
	if assigned != constant.Empty && assigned != building {
		return failure.ResourceRestrictedError
	}

	return nil
}

func planFailure(err error) error {
	switch {
	case errors.Is(err, model.ErrIllegalTransition):
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	case errors.Is(err, model.ErrWrongCategory):
		return failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	default:
		return failure.BadRequest(err) // nolint:wrapcheck
	}
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
