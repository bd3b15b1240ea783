package dto

import (
	"oec/internal/domains/pricing/model"
	"oec/shared"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdatePricingRequest struct {
	// Version is the version the caller edited; it must still be the current one.
	Version             int             `json:"version"               validate:"min=0"`
	HallRentalCost      decimal.Decimal `json:"hall_rental_cost"      validate:"money"`
	SectionRentalCost   decimal.Decimal `json:"section_rental_cost"   validate:"money"`
	DormitoryRentalCost decimal.Decimal `json:"dormitory_rental_cost" validate:"money"`
	LunchLevel1         decimal.Decimal `json:"lunch_level1"          validate:"money"`
	LunchLevel2         decimal.Decimal `json:"lunch_level2"          validate:"money"`
	RefreshmentLevel1   decimal.Decimal `json:"refreshment_level1"    validate:"money"`
	RefreshmentLevel2   decimal.Decimal `json:"refreshment_level2"    validate:"money"`
	LEDProjector        decimal.Decimal `json:"led_projector"         validate:"money"`
}

func (u *UpdatePricingRequest) ToModel(user string) model.Settings {
	return model.Settings{
		ID:                  uuid.NewString(),
		Version:             u.Version + 1,
		HallRentalCost:      u.HallRentalCost,
		SectionRentalCost:   u.SectionRentalCost,
		DormitoryRentalCost: u.DormitoryRentalCost,
		LunchLevel1:         u.LunchLevel1,
		LunchLevel2:         u.LunchLevel2,
		RefreshmentLevel1:   u.RefreshmentLevel1,
		RefreshmentLevel2:   u.RefreshmentLevel2,
		LEDProjector:        u.LEDProjector,
		Metadata:            gModel.NewMetadata(user, timezone.Now()),
	}
}

type PricingResponse struct {
	Version             int             `json:"version"`
	HallRentalCost      decimal.Decimal `json:"hall_rental_cost"`
	SectionRentalCost   decimal.Decimal `json:"section_rental_cost"`
	DormitoryRentalCost decimal.Decimal `json:"dormitory_rental_cost"`
	LunchLevel1         decimal.Decimal `json:"lunch_level1"`
	LunchLevel2         decimal.Decimal `json:"lunch_level2"`
	RefreshmentLevel1   decimal.Decimal `json:"refreshment_level1"`
	RefreshmentLevel2   decimal.Decimal `json:"refreshment_level2"`
	LEDProjector        decimal.Decimal `json:"led_projector"`
	gDto.Metadata
}

func (r *PricingResponse) FromModel(model model.Settings) {
	r.Version = model.Version
	r.HallRentalCost = model.HallRentalCost
	r.SectionRentalCost = model.SectionRentalCost
	r.DormitoryRentalCost = model.DormitoryRentalCost
	r.LunchLevel1 = model.LunchLevel1
	r.LunchLevel2 = model.LunchLevel2
	r.RefreshmentLevel1 = model.RefreshmentLevel1
	r.RefreshmentLevel2 = model.RefreshmentLevel2
	r.LEDProjector = model.LEDProjector
	r.Metadata.FromModel(model.Metadata)
}

type GetPricingHistoryResponse struct {
	Versions  []PricingResponse `json:"versions"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPricingHistoryResponse) FromModels(models []model.Settings, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Versions = make([]PricingResponse, len(models))
	for i, mod := range models {
		r.Versions[i].FromModel(mod)
	}
}
