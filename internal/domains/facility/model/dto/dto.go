package dto

import (
	"mime/multipart"
	"oec/internal/domains/facility/model"
	"oec/shared"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"oec/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Image is the optional picture attached to a create or update form.
type Image struct {
	Header      *multipart.FileHeader `json:"-"`
	File        multipart.File        `json:"-"`
	ContentType string                `json:"-" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp"`
	Size        int64                 `json:"-" validate:"omitempty,maxfilesize=2"`
}

func NewImage(file multipart.File, header *multipart.FileHeader) Image {
	return Image{
		Header:      header,
		File:        file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}

func (i Image) Present() bool {
	return i.Header != nil
}

type CreateFacilityRequest struct {
	Name        string              `json:"name"        validate:"required,max=100"`
	Category    string              `json:"category"    validate:"required,oneof=hall section dormitory"`
	Building    string              `json:"building"    validate:"required,oneof=building_a building_b"`
	RentalCost  decimal.NullDecimal `json:"rental_cost" validate:"omitempty,money"`
	Capacity    int                 `json:"capacity"    validate:"omitempty,min=0"`
	Beds        int                 `json:"beds"        validate:"omitempty,min=0"`
	Floor       int                 `json:"floor"       validate:"omitempty,min=0"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	Active      *bool               `json:"active"`
	Image       Image               `json:"-"`
}

func (c *CreateFacilityRequest) ToModel(user, imageURL string) model.Facility {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Facility{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Building:    c.Building,
		RentalCost:  c.RentalCost,
		Capacity:    c.Capacity,
		Beds:        c.Beds,
		Floor:       c.Floor,
		Description: c.Description,
		Image:       imageURL,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateFacilityRequest struct {
	Name        string           `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Building    string           `db:"building"    json:"building"    validate:"omitempty,oneof=building_a building_b"`
	RentalCost  *decimal.Decimal `db:"rental_cost" json:"rental_cost" validate:"omitempty,money"`
	Capacity    *int             `db:"capacity"    json:"capacity"    validate:"omitempty,min=0"`
	Beds        *int             `db:"beds"        json:"beds"        validate:"omitempty,min=0"`
	Floor       *int             `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	Description string           `db:"description" json:"description" validate:"omitempty,max=1000"`
	Active      *bool            `db:"active"      json:"active"`
	// ClearRentalCost drops the item override so the category default applies again.
	ClearRentalCost bool  `json:"clear_rental_cost"`
	Image           Image `json:"-"`
}

type FacilityResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Building    string           `json:"building"`
	RentalCost  *decimal.Decimal `json:"rental_cost"`
	Capacity    int              `json:"capacity"`
	Beds        int              `json:"beds"`
	Floor       int              `json:"floor"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Active      bool             `json:"active"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Building = model.Building
	r.RentalCost = nil

	if model.RentalCost.Valid {
		cost := model.RentalCost.Decimal
		r.RentalCost = &cost
	}

	r.Capacity = model.Capacity
	r.Beds = model.Beds
	r.Floor = model.Floor
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, mod := range models {
		r.Facilities[i].FromModel(mod)
	}
}
