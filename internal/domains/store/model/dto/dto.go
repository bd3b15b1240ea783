package dto

import (
	"oec/internal/domains/store/model"
	"oec/shared"
	gDto "oec/shared/dto"
	gModel "oec/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=50"`
	Unit     string `json:"unit"     validate:"required,max=20"`
}

func (c *CreateItemRequest) ToModel(user string, now time.Time) model.Item {
	return model.Item{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Unit:        c.Unit,
		LastUpdated: now,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

// UpdateItemRequest never carries a quantity.
type UpdateItemRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Category string `db:"category" json:"category" validate:"omitempty,max=50"`
	Unit     string `db:"unit"     json:"unit"     validate:"omitempty,max=20"`
}

type MoveRequest struct {
	Direction  string `json:"direction"   validate:"required,oneof=in out"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
	Reason     string `json:"reason"      validate:"omitempty,max=255"`
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

func (m *MoveRequest) ToModel(itemID, user string, now time.Time) model.Transaction {
	var employee *string
	if m.EmployeeID != "" {
		employee = &m.EmployeeID
	}

	return model.Transaction{
		ID:         uuid.NewString(),
		ItemID:     itemID,
		Direction:  m.Direction,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		EmployeeID: employee,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	LastUpdated time.Time `json:"last_updated"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Quantity = model.Quantity
	r.Unit = model.Unit
	r.LastUpdated = model.LastUpdated
	r.Metadata.FromModel(model.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type TransactionResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	Direction  string    `json:"direction"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	EmployeeID *string   `json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
}

func (r *TransactionResponse) FromModel(model model.Transaction) {
	r.ID = model.ID
	r.ItemID = model.ItemID
	r.Direction = model.Direction
	r.Quantity = model.Quantity
	r.Reason = model.Reason
	r.EmployeeID = model.EmployeeID
	r.CreatedAt = model.CreatedAt
	r.CreatedBy = model.CreatedBy
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}

// MoveResponse reports the stock level after a committed move.
type MoveResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Quantity    int                 `json:"quantity"`
}
