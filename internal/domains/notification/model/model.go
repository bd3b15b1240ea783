package model

import (
	"oec/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID       = "id"
	FieldAudience = "audience"
	FieldBuilding = "building"
	FieldReadAt   = "read_at"
)

// Message keys on the notification topic.
const (
	EventBookingCreated = "booking.created"
)

// Notification is one entry of the admin inbox. An empty building reaches every admin.
type Notification struct {
	ID        string     `db:"id"`
	Audience  string     `db:"audience"`
	Building  string     `db:"building"`
	BookingID string     `db:"booking_id"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	ReadAt    *time.Time `db:"read_at"`
	model.Metadata
}

// BookingCreated is published once a booking and its items are stored.
type BookingCreated struct {
	BookingID     string          `json:"booking_id"`
	Category      string          `json:"category"`
	Building      string          `json:"building"`
	RequesterName string          `json:"requester_name"`
	CompanyName   string          `json:"company_name,omitempty"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
}
