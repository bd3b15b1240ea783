package model

import (
	"oec/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID         = "id"
	FieldName       = "name"
	FieldCategory   = "category"
	FieldBuilding   = "building"
	FieldRentalCost = "rental_cost"
	FieldCapacity   = "capacity"
	FieldImage      = "image"
	FieldActive     = "active"
)

const (
	CategoryHall      = "hall"
	CategorySection   = "section"
	CategoryDormitory = "dormitory"
)

// Facility is anything that can appear in a booking: a hall, a hall section or a dormitory room.
type Facility struct {
	ID          string              `db:"id"`
	Name        string              `db:"name"`
	Category    string              `db:"category"`
	Building    string              `db:"building"`
	RentalCost  decimal.NullDecimal `db:"rental_cost"`
	Capacity    int                 `db:"capacity"`
	Beds        int                 `db:"beds"`
	Floor       int                 `db:"floor"`
	Description string              `db:"description"`
	Image       string              `db:"image"`
	Active      bool                `db:"active"`
	model.Metadata
}

func (f Facility) IsDormitory() bool {
	return f.Category == CategoryDormitory
}
