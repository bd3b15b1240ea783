package dto

import (
	"fmt"
	"time"

	"oec/internal/domains/booking/model"
	"oec/internal/domains/booking/planner"
	facilityDto "oec/internal/domains/facility/model/dto"
	pricingModel "oec/internal/domains/pricing/model"
	"oec/shared"
	"oec/shared/constant"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleDay is one day of a submitted schedule with the facilities picked for it.
type ScheduleDay struct {
	Date    string   `json:"date"     validate:"required,day"`
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,required"`
}

// QuoteRequest is a booking draft: enough to price it, nothing about the requester.
type QuoteRequest struct {
	Category          string        `json:"category"            validate:"required,oneof=facility dormitory"`
	StartDate         string        `json:"start_date"          validate:"required,day"`
	EndDate           string        `json:"end_date"            validate:"required,day"`
	Schedule          []ScheduleDay `json:"schedule"            validate:"omitempty,dive"`
	NumberOfAttendees int           `json:"number_of_attendees" validate:"omitempty,min=0,max=10000"`
	LunchTier         string        `json:"lunch_tier"          validate:"omitempty,oneof=none level1 level2"`
	RefreshmentTier   string        `json:"refreshment_tier"    validate:"omitempty,oneof=none level1 level2"`
	LEDProjector      bool          `json:"led_projector"`
}

// Range parses the start and end dates.
func (q *QuoteRequest) Range() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayFormat, q.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start_date: %w", err)
	}

	end, err = time.Parse(constant.DayFormat, q.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end_date: %w", err)
	}

	return start, end, nil
}

// Rows converts the submitted schedule. Days that do not parse carry no assignment.
func (q *QuoteRequest) Rows() []planner.Row {
	rows := make([]planner.Row, 0, len(q.Schedule))

	for _, day := range q.Schedule {
		date, err := time.Parse(constant.DayFormat, day.Date)
		if err != nil {
			continue
		}

		rows = append(rows, planner.Row{Day: date, ItemIDs: day.ItemIDs})
	}

	return rows
}

func (q *QuoteRequest) Services() planner.Services {
	return planner.Services{
		Lunch:        q.LunchTier,
		Refreshment:  q.RefreshmentTier,
		LEDProjector: q.LEDProjector,
	}
}

func (q *QuoteRequest) Mode() planner.Mode {
	if q.Category == model.CategoryDormitory {
		return planner.ModeAnyDay
	}

	return planner.ModeEveryDay
}

type CreateBookingRequest struct {
	QuoteRequest
	RequesterName string `json:"requester_name" validate:"required,max=100"`
	CompanyName   string `json:"company_name"   validate:"omitempty,max=150"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Email         string `json:"email"          validate:"required,email,max=100"`
	Phone         string `json:"phone"          validate:"required,max=20"`
	Notes         string `json:"notes"          validate:"omitempty,max=1000"`
}

// Quote is a priced schedule. Rows are normalised to the requested range.
type Quote struct {
	Start    time.Time
	End      time.Time
	Building string
	Rows     []planner.Row
	Lines    []planner.Line
	Total    decimal.Decimal
}

// ToModel freezes the request and its quote into a booking with initial statuses.
func (c *CreateBookingRequest) ToModel(user, companyID string, quote Quote) (model.Booking, []model.Item) {
	booking := model.Booking{
		ID:                uuid.NewString(),
		Category:          c.Category,
		Building:          quote.Building,
		StartDate:         quote.Start,
		EndDate:           quote.End,
		RequesterName:     c.RequesterName,
		CompanyID:         companyID,
		CompanyName:       c.CompanyName,
		ContactPerson:     c.ContactPerson,
		Email:             c.Email,
		Phone:             c.Phone,
		NumberOfAttendees: c.NumberOfAttendees,
		LunchTier:         tierOrNone(c.LunchTier),
		RefreshmentTier:   tierOrNone(c.RefreshmentTier),
		LEDProjector:      c.LEDProjector,
		TotalCost:         quote.Total,
		Notes:             c.Notes,
		Version:           1,
		Metadata:          gModel.NewMetadata(user, timezone.Now()),
	}
	booking.InitialStatuses()

	items := make([]model.Item, len(quote.Lines))
	for i, line := range quote.Lines {
		items[i] = model.Item{
			ID:         uuid.NewString(),
			BookingID:  booking.ID,
			ItemID:     line.Item.ID,
			Name:       line.Item.Name,
			Category:   line.Item.Category,
			Date:       line.Day,
			RentalCost: line.Cost,
			Position:   i,
		}
	}

	return booking, items
}

func tierOrNone(tier string) string {
	if tier == constant.Empty {
		return pricingModel.TierNone
	}

	return tier
}

type QuoteLineResponse struct {
	Date     string          `json:"date"`
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
}

type QuoteResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Days      int                 `json:"days"`
	Building  string              `json:"building"`
	Schedule  []ScheduleDay       `json:"schedule"`
	Lines     []QuoteLineResponse `json:"lines"`
	TotalCost decimal.Decimal     `json:"total_cost"`
}

func (r *QuoteResponse) FromQuote(quote Quote) {
	r.StartDate = quote.Start.Format(constant.DayFormat)
	r.EndDate = quote.End.Format(constant.DayFormat)
	r.Days = len(quote.Rows)
	r.Building = quote.Building
	r.TotalCost = quote.Total

	r.Schedule = make([]ScheduleDay, len(quote.Rows))
	for i, row := range quote.Rows {
		r.Schedule[i] = ScheduleDay{Date: row.Day.Format(constant.DayFormat), ItemIDs: row.ItemIDs}
	}

	r.Lines = make([]QuoteLineResponse, len(quote.Lines))
	for i, line := range quote.Lines {
		r.Lines[i] = QuoteLineResponse{
			Date:     line.Day.Format(constant.DayFormat),
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Category: line.Item.Category,
			Cost:     line.Cost,
		}
	}
}

type AvailabilityRequest struct {
	Category  string `json:"category"   validate:"required,oneof=facility dormitory"`
	Building  string `json:"building"   validate:"omitempty,oneof=building_a building_b"`
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day"`
}

type DayAvailability struct {
	Date  string                         `json:"date"`
	Items []facilityDto.FacilityResponse `json:"items"`
}

type AvailabilityResponse struct {
	Days []DayAvailability `json:"days"`
}

// TransitionRequest moves a booking through one workflow action.
type TransitionRequest struct {
	Action  string `json:"action"  validate:"required,oneof=approve_payment reject_payment mark_pending_transfer submit_payment_proof send_agreement sign_agreement complete_agreement issue_key return_key"`
	Version int    `json:"version" validate:"required,min=1"`
	Notes   string `json:"notes"   validate:"omitempty,max=1000"`
	// DocumentURL is set by upload flows, never by clients.
	DocumentURL string `json:"-"`
}

type ItemResponse struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Date       string          `json:"date"`
	RentalCost decimal.Decimal `json:"rental_cost"`
}

type BookingResponse struct {
	ID                 string          `json:"id"`
	Category           string          `json:"category"`
	Building           string          `json:"building"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	Days               int             `json:"days"`
	RequesterName      string          `json:"requester_name"`
	CompanyID          string          `json:"company_id,omitempty"`
	CompanyName        string          `json:"company_name,omitempty"`
	ContactPerson      string          `json:"contact_person,omitempty"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	NumberOfAttendees  int             `json:"number_of_attendees"`
	LunchTier          string          `json:"lunch_tier"`
	RefreshmentTier    string          `json:"refreshment_tier"`
	LEDProjector       bool            `json:"led_projector"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	PaymentStatus      string          `json:"payment_status"`
	ApprovalStatus     string          `json:"approval_status"`
	AgreementStatus    *string         `json:"agreement_status,omitempty"`
	KeyStatus          *string         `json:"key_status,omitempty"`
	PaymentProofURL    string          `json:"payment_proof_url,omitempty"`
	AgreementURL       string          `json:"agreement_url,omitempty"`
	SignedAgreementURL string          `json:"signed_agreement_url,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Version            int             `json:"version"`
	Items              []ItemResponse  `json:"items,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking, items []model.Item) {
	r.ID = model.ID
	r.Category = model.Category
	r.Building = model.Building
	r.StartDate = model.StartDate.Format(constant.DayFormat)
	r.EndDate = model.EndDate.Format(constant.DayFormat)
	r.Days = model.Days()
	r.RequesterName = model.RequesterName
	r.CompanyID = model.CompanyID
	r.CompanyName = model.CompanyName
	r.ContactPerson = model.ContactPerson
	r.Email = model.Email
	r.Phone = model.Phone
	r.NumberOfAttendees = model.NumberOfAttendees
	r.LunchTier = model.LunchTier
	r.RefreshmentTier = model.RefreshmentTier
	r.LEDProjector = model.LEDProjector
	r.TotalCost = model.TotalCost
	r.PaymentStatus = model.PaymentStatus
	r.ApprovalStatus = model.ApprovalStatus
	r.AgreementStatus = model.AgreementStatus
	r.KeyStatus = model.KeyStatus
	r.PaymentProofURL = model.PaymentProofURL
	r.AgreementURL = model.AgreementURL
	r.SignedAgreementURL = model.SignedAgreementURL
	r.Notes = model.Notes
	r.Version = model.Version
	r.Metadata.FromModel(model.Metadata)

	r.Items = nil
	for _, item := range items {
		r.Items = append(r.Items, ItemResponse{
			ItemID:     item.ItemID,
			Name:       item.Name,
			Category:   item.Category,
			Date:       item.Date.Format(constant.DayFormat),
			RentalCost: item.RentalCost,
		})
	}
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
		r.Bookings[i].FromModel(mod, nil)
	}
}
