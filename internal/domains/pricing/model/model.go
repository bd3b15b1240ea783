package model

import (
	"slices"

	facilityModel "oec/internal/domains/facility/model"
	"oec/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "pricing_settings"
	EntityName = "pricing"

	FieldID      = "id"
	FieldVersion = "version"
)

// Service tiers for lunch and refreshment.
const (
	TierNone   = "none"
	TierLevel1 = "level1"
	TierLevel2 = "level2"
)

// Settings is one version of the global price list. Rows are never updated; a
// change inserts the next version.
type Settings struct {
	ID                  string          `db:"id"`
	Version             int             `db:"version"`
	HallRentalCost      decimal.Decimal `db:"hall_rental_cost"`
	SectionRentalCost   decimal.Decimal `db:"section_rental_cost"`
	DormitoryRentalCost decimal.Decimal `db:"dormitory_rental_cost"`
	LunchLevel1         decimal.Decimal `db:"lunch_level1"`
	LunchLevel2         decimal.Decimal `db:"lunch_level2"`
	RefreshmentLevel1   decimal.Decimal `db:"refreshment_level1"`
	RefreshmentLevel2   decimal.Decimal `db:"refreshment_level2"`
	LEDProjector        decimal.Decimal `db:"led_projector"`
	model.Metadata
}

// CategoryDefault is the per-day cost applied to items of category without their own price.
// Unknown categories cost nothing.
func (s Settings) CategoryDefault(category string) decimal.Decimal {
	switch category {
	case facilityModel.CategoryHall:
		return s.HallRentalCost
	case facilityModel.CategorySection:
		return s.SectionRentalCost
	case facilityModel.CategoryDormitory:
		return s.DormitoryRentalCost
	default:
		return decimal.Zero
	}
}

// DailyCost resolves what one day of item costs: its own rental cost when set,
// otherwise the default of its category.
func (s Settings) DailyCost(item facilityModel.Facility) decimal.Decimal {
	if item.RentalCost.Valid {
		return item.RentalCost.Decimal
	}

	return s.CategoryDefault(item.Category)
}

// LunchCost is the per person per day price of a lunch tier.
func (s Settings) LunchCost(tier string) decimal.Decimal {
	return pickTier(tier, s.LunchLevel1, s.LunchLevel2)
}

// RefreshmentCost is the per person per day price of a refreshment tier.
func (s Settings) RefreshmentCost(tier string) decimal.Decimal {
	return pickTier(tier, s.RefreshmentLevel1, s.RefreshmentLevel2)
}

func pickTier(tier string, level1, level2 decimal.Decimal) decimal.Decimal {
	switch tier {
	case TierLevel1:
		return level1
	case TierLevel2:
		return level2
	default:
		return decimal.Zero
	}
}

// NegativeFields lists, sorted, the db names of every monetary field below zero.
func (s Settings) NegativeFields() []string {
	negative := []string{}

	for name, value := range map[string]decimal.Decimal{
		"hall_rental_cost":      s.HallRentalCost,
		"section_rental_cost":   s.SectionRentalCost,
		"dormitory_rental_cost": s.DormitoryRentalCost,
		"lunch_level1":          s.LunchLevel1,
		"lunch_level2":          s.LunchLevel2,
		"refreshment_level1":    s.RefreshmentLevel1,
		"refreshment_level2":    s.RefreshmentLevel2,
		"led_projector":         s.LEDProjector,
	} {
		if value.IsNegative() {
			negative = append(negative, name)
		}
	}

	slices.Sort(negative)

	return negative
}
