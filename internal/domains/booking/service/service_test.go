package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"oec/config"
	"oec/infras/otel/mocks"
	postgresMocks "oec/infras/postgres/mocks"
	bookingMocks "oec/internal/domains/booking/mocks"
	"oec/internal/domains/booking/model"
	"oec/internal/domains/booking/model/dto"
	"oec/internal/domains/booking/planner"
	"oec/internal/domains/booking/service"
	facilityMocks "oec/internal/domains/facility/mocks"
	facilityModel "oec/internal/domains/facility/model"
	notificationMocks "oec/internal/domains/notification/mocks"
	notificationModel "oec/internal/domains/notification/model"
	pricingMocks "oec/internal/domains/pricing/mocks"
	pricingModel "oec/internal/domains/pricing/model"
	userMocks "oec/internal/domains/user/mocks"
	userModel "oec/internal/domains/user/model"
	cacheMocks "oec/shared/cache/mocks"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	"oec/shared/failure"
	gModel "oec/shared/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bookingFixture struct {
	repo         *bookingMocks.MockBooking
	items        *bookingMocks.MockItem
	facilities   *facilityMocks.MockFacility
	users        *userMocks.MockUser
	pricing      *pricingMocks.MockPricingService
	notification *notificationMocks.MockNotificationService
	transactor   *postgresMocks.MockTransactor
	svc          service.Booking
}

func newFixture(t *testing.T) bookingFixture {
	ctrl := gomock.NewController(t)

	f := bookingFixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		items:        bookingMocks.NewMockItem(ctrl),
		facilities:   facilityMocks.NewMockFacility(ctrl),
		users:        userMocks.NewMockUser(ctrl),
		pricing:      pricingMocks.NewMockPricingService(ctrl),
		notification: notificationMocks.NewMockNotificationService(ctrl),
		transactor:   postgresMocks.NewMockTransactor(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.items, f.facilities, f.users, f.pricing, f.notification, f.transactor, cfg, cache, mocks.NewOtel())

	return f
}

func userContext(id, role, building string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyBuilding, building)
}

func settings() pricingModel.Settings {
	return pricingModel.Settings{
		Version:        1,
		HallRentalCost: decimal.NewFromInt(3000),
		LunchLevel1:    decimal.NewFromInt(150),
	}
}

func halls() []facilityModel.Facility {
	return []facilityModel.Facility{
		{ID: "hall-1", Name: "Main Hall", Category: facilityModel.CategoryHall, Building: constant.BuildingA, Active: true},
		{ID: "hall-2", Name: "Annex", Category: facilityModel.CategoryHall, Building: constant.BuildingB, Active: true},
	}
}

func quoteRequest() dto.QuoteRequest {
	return dto.QuoteRequest{
		Category:  model.CategoryFacility,
		StartDate: "2026-05-01",
		EndDate:   "2026-05-02",
		Schedule: []dto.ScheduleDay{
			{Date: "2026-05-01", ItemIDs: []string{"hall-1"}},
			{Date: "2026-05-02", ItemIDs: []string{"hall-1", "hall-1"}},
		},
		NumberOfAttendees: 10,
		LunchTier:         pricingModel.TierLevel1,
		RefreshmentTier:   pricingModel.TierNone,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		QuoteRequest:  quoteRequest(),
		RequesterName: "Abebe",
		Email:         "abebe@example.com",
		Phone:         "+251900000000",
	}
}

func (f bookingFixture) expectPricing() {
	f.pricing.EXPECT().Current(gomock.Any()).Return(settings(), nil)
	f.facilities.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(halls(), nil)
}

func TestBookingService_Quote(t *testing.T) {
	t.Run("two hall days with lunch", func(t *testing.T) {
		f := newFixture(t)
		f.expectPricing()

		res, err := f.svc.Quote(context.Background(), quoteRequest())

		require.NoError(t, err)
		assert.Equal(t, 2, res.Days)
		assert.Len(t, res.Lines, 2)
		assert.Equal(t, constant.BuildingA, res.Building)
		assert.True(t, decimal.NewFromInt(9000).Equal(res.TotalCost), "got %s", res.TotalCost)
	})

	t.Run("items from two buildings", func(t *testing.T) {
		f := newFixture(t)
		f.expectPricing()

		req := quoteRequest()
		req.Schedule[1].ItemIDs = []string{"hall-2"}

		_, err := f.svc.Quote(context.Background(), req)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newFixture(t)

		req := quoteRequest()
		req.StartDate, req.EndDate = req.EndDate, req.StartDate

		_, err := f.svc.Quote(context.Background(), req)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Create(t *testing.T) {
	approved := userModel.User{ID: "user-1", Role: constant.RoleIndividual, Active: true}

	t.Run("stores booking and items then notifies", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
		f.expectPricing()
		f.repo.EXPECT().Reservations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]planner.Reservation{
			{Start: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), ItemIDs: []string{"hall-1"}},
		}, nil)
		f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
			assert.True(t, decimal.NewFromInt(9000).Equal(b.TotalCost))
			assert.Equal(t, model.PaymentPending, b.PaymentStatus)
			assert.Equal(t, model.ApprovalPending, b.ApprovalStatus)
			require.NotNil(t, b.AgreementStatus)
			assert.Equal(t, model.AgreementPendingAdminAction, *b.AgreementStatus)
			assert.Nil(t, b.KeyStatus)
			assert.Equal(t, constant.BuildingA, b.Building)
			assert.Equal(t, 1, b.Version)
			assert.Equal(t, "user-1", b.CreatedBy)

			return nil
		})
		f.items.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, items []model.Item) error {
			require.Len(t, items, 2)
			assert.Equal(t, "Main Hall", items[0].Name)
			assert.True(t, items[1].RentalCost.Equal(decimal.NewFromInt(3000)))

			return nil
		})
		f.notification.EXPECT().PublishBookingCreated(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event notificationModel.BookingCreated) error {
				assert.Equal(t, "2026-05-01", event.StartDate)

				return errors.New("broker down")
			})

		res, err := f.svc.Create(ctx, createRequest())

		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 2, res.Days)
	})

	t.Run("pending company account is refused", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("rep-1", constant.RoleCompanyRepresentative, constant.Empty)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{
			ID: "rep-1", Role: constant.RoleCompanyRepresentative, ApprovalStatus: constant.ApprovalStatusPending, Active: true,
		}, nil)

		_, err := f.svc.Create(ctx, createRequest())
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("item already held on one day", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
		f.expectPricing()
		f.repo.EXPECT().Reservations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]planner.Reservation{
			{Start: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), ItemIDs: []string{"hall-1"}},
		}, nil)

		_, err := f.svc.Create(ctx, createRequest())

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "Main Hall is already booked on 2026-05-02")
	})

	t.Run("day without items", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
		f.expectPricing()

		req := createRequest()
		req.Schedule = req.Schedule[:1]

		_, err := f.svc.Create(ctx, req)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approved, nil)
		f.expectPricing()

		req := createRequest()
		req.Schedule[0].ItemIDs = []string{"dorm-7"}

		_, err := f.svc.Create(ctx, req)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func facilityBooking(version int) model.Booking {
	b := model.Booking{
		ID:        "booking-1",
		Category:  model.CategoryFacility,
		Building:  constant.BuildingA,
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Version:   version,
		Metadata:  gModel.Metadata{CreatedBy: "user-1"},
	}
	b.InitialStatuses()

	return b
}

func TestBookingService_Transition(t *testing.T) {
	admin := userContext("admin-1", constant.RoleAdmin, constant.Empty)

	t.Run("approve payment bumps version", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(3), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, changes map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.PaymentPaid, changes[model.FieldPaymentStatus])
				assert.Equal(t, model.ApprovalApproved, changes[model.FieldApprovalStatus])
				assert.Equal(t, 4, changes[model.FieldVersion])

				_, args := filter.GetWhereClause()
				assert.Equal(t, 3, args["current_version"])

				return 1, nil
			})

		approvedBooking := facilityBooking(4)
		approvedBooking.PaymentStatus = model.PaymentPaid
		approvedBooking.ApprovalStatus = model.ApprovalApproved

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedBooking, nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Transition(admin, "booking-1", dto.TransitionRequest{Action: string(model.ActionApprovePayment), Version: 3})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentPaid, res.PaymentStatus)
		assert.Equal(t, 4, res.Version)
	})

	t.Run("stale version never writes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(5), nil)

		_, err := f.svc.Transition(admin, "booking-1", dto.TransitionRequest{Action: string(model.ActionApprovePayment), Version: 3})
		assert.ErrorIs(t, err, failure.StaleVersionError)
	})

	t.Run("lost race is stale", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(3), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Transition(admin, "booking-1", dto.TransitionRequest{Action: string(model.ActionRejectPayment), Version: 3})
		assert.ErrorIs(t, err, failure.StaleVersionError)
	})

	t.Run("illegal transition", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)

		_, err := f.svc.Transition(admin, "booking-1", dto.TransitionRequest{Action: string(model.ActionCompleteAgreement), Version: 1})
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("key actions do not apply to facility bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)

		_, err := f.svc.Transition(admin, "booking-1", dto.TransitionRequest{Action: string(model.ActionIssueKey), Version: 1})
		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("client cannot approve", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		_, err := f.svc.Transition(ctx, "booking-1", dto.TransitionRequest{Action: string(model.ActionApprovePayment), Version: 1})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("client cannot touch someone else's booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-2", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)

		_, err := f.svc.Transition(ctx, "booking-1", dto.TransitionRequest{Action: string(model.ActionMarkPendingTransfer), Version: 1})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("admin of the other building", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("admin-2", constant.RoleAdmin, constant.BuildingB)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)

		_, err := f.svc.Transition(ctx, "booking-1", dto.TransitionRequest{Action: string(model.ActionApprovePayment), Version: 1})
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("payment proof needs a document", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)

		_, err := f.svc.Transition(ctx, "booking-1", dto.TransitionRequest{Action: string(model.ActionSubmitPaymentProof), Version: 1})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	rejected := func() model.Booking {
		b := facilityBooking(2)
		b.PaymentStatus = model.PaymentFailed
		b.ApprovalStatus = model.ApprovalRejected

		return b
	}
	rejectedItems := []model.Item{
		{BookingID: "booking-1", ItemID: "hall-1", Name: "Main Hall", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{BookingID: "booking-1", ItemID: "hall-1", Name: "Main Hall", Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
	}
	proof := dto.TransitionRequest{
		Action:      string(model.ActionSubmitPaymentProof),
		Version:     2,
		DocumentURL: "https://cdn.example.com/proofs/slip.png",
	}

	t.Run("rejected booking cannot reopen onto items taken since", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejected(), nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rejectedItems, nil)
		f.repo.EXPECT().Reservations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]planner.Reservation{
			{Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), ItemIDs: []string{"hall-1"}},
		}, nil)

		_, err := f.svc.Transition(ctx, "booking-1", proof)

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "Main Hall is already booked on 2026-05-01")
	})

	t.Run("rejected booking reopens when its items are still free", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(rejected(), nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rejectedItems, nil)
		f.repo.EXPECT().Reservations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]planner.Reservation{
			{Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), ItemIDs: []string{"hall-2"}},
		}, nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, changes map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.ApprovalPending, changes[model.FieldApprovalStatus])
				assert.Equal(t, model.PaymentAwaitingVerification, changes[model.FieldPaymentStatus])
				assert.Equal(t, proof.DocumentURL, changes[model.FieldPaymentProofURL])

				return 1, nil
			})

		reopened := rejected()
		reopened.Version = 3
		reopened.ApprovalStatus = model.ApprovalPending
		reopened.PaymentStatus = model.PaymentAwaitingVerification

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reopened, nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rejectedItems, nil)

		res, err := f.svc.Transition(ctx, "booking-1", proof)

		require.NoError(t, err)
		assert.Equal(t, model.ApprovalPending, res.ApprovalStatus)
	})

	t.Run("pending booking resubmitting a proof skips the availability check", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(2), nil)
		f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(3), nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Transition(ctx, "booking-1", proof)
		require.NoError(t, err)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("building admin is scoped", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("admin-2", constant.RoleAdmin, constant.BuildingB)
		params := gDto.QueryParams{Page: 1, Limit: 10}

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, constant.BuildingB, args["scope_building"])

			return 1, nil
		})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Booking{facilityBooking(1)}, nil)

		res, err := f.svc.GetAll(ctx, params, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "2026-05-01", res.Bookings[0].StartDate)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("owner sees booking with items", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-1", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{
			{ItemID: "hall-1", Name: "Main Hall", Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), RentalCost: decimal.NewFromInt(3000)},
		}, nil)

		res, err := f.svc.Get(ctx, "booking-1")

		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "2026-05-01", res.Items[0].Date)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("user-9", constant.RoleIndividual, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(facilityBooking(1), nil)
		f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Get(ctx, "booking-1")
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		ctx := userContext("admin-1", constant.RoleAdmin, constant.Empty)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(ctx, "booking-404")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
