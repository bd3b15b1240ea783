package model

import (
	"oec/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldCategory           = "category"
	FieldBuilding           = "building"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldCompanyID          = "company_id"
	FieldEmail              = "email"
	FieldPaymentStatus      = "payment_status"
	FieldApprovalStatus     = "approval_status"
	FieldAgreementStatus    = "agreement_status"
	FieldKeyStatus          = "key_status"
	FieldPaymentProofURL    = "payment_proof_url"
	FieldAgreementURL       = "agreement_url"
	FieldSignedAgreementURL = "signed_agreement_url"
	FieldAirtableRecordID   = "airtable_record_id"
	FieldNotes              = "notes"
	FieldVersion            = "version"
	FieldCreatedBy          = "created_by"
	FieldCreatedAt          = "created_at"
)

const (
	ItemTableName  = "booking_items"
	ItemEntityName = "booking_item"

	ItemFieldID        = "id"
	ItemFieldBookingID = "booking_id"
	ItemFieldItemID    = "item_id"
	ItemFieldDate      = "assigned_date"
)

const (
	CategoryFacility  = "facility"
	CategoryDormitory = "dormitory"
)

// Booking is a submitted reservation. Everything except the status columns, the
// attached documents and notes is frozen at submission.
type Booking struct {
	ID                 string          `db:"id"`
	Category           string          `db:"category"`
	Building           string          `db:"building"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
	RequesterName      string          `db:"requester_name"`
	CompanyID          string          `db:"company_id"`
	CompanyName        string          `db:"company_name"`
	ContactPerson      string          `db:"contact_person"`
	Email              string          `db:"email"`
	Phone              string          `db:"phone"`
	NumberOfAttendees  int             `db:"number_of_attendees"`
	LunchTier          string          `db:"lunch_tier"`
	RefreshmentTier    string          `db:"refreshment_tier"`
	LEDProjector       bool            `db:"led_projector"`
	TotalCost          decimal.Decimal `db:"total_cost"`
	PaymentStatus      string          `db:"payment_status"`
	ApprovalStatus     string          `db:"approval_status"`
	AgreementStatus    *string         `db:"agreement_status"`
	KeyStatus          *string         `db:"key_status"`
	PaymentProofURL    string          `db:"payment_proof_url"`
	AgreementURL       string          `db:"agreement_url"`
	SignedAgreementURL string          `db:"signed_agreement_url"`
	AirtableRecordID   string          `db:"airtable_record_id"`
	Notes              string          `db:"notes"`
	Version            int             `db:"version"`
	model.Metadata
}

// Item is one facility assigned to one day of a booking. Name, category and cost
// are copied so later facility edits leave history untouched.
type Item struct {
	ID         string          `db:"id"`
	BookingID  string          `db:"booking_id"`
	ItemID     string          `db:"item_id"`
	Name       string          `db:"name"`
	Category   string          `db:"category"`
	Date       time.Time       `db:"assigned_date"`
	RentalCost decimal.Decimal `db:"rental_cost"`
	Position   int             `db:"position"`
}

// Days is the inclusive length of the booked range.
func (b Booking) Days() int {
	return int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1
}

// InitialStatuses sets the statuses of a freshly submitted booking of its category.
func (b *Booking) InitialStatuses() {
	b.PaymentStatus = PaymentPending
	b.ApprovalStatus = ApprovalPending
	b.AgreementStatus = nil
	b.KeyStatus = nil

	switch b.Category {
	case CategoryFacility:
		agreement := AgreementPendingAdminAction
		b.AgreementStatus = &agreement
	case CategoryDormitory:
		key := KeyNotIssued
		b.KeyStatus = &key
	}
}
