package model

import (
	"errors"
	"oec/shared/model"
	"time"
)

const (
	ItemTableName  = "store_items"
	ItemEntityName = "store_item"

	ItemFieldID          = "id"
	ItemFieldName        = "name"
	ItemFieldCategory    = "category"
	ItemFieldQuantity    = "quantity"
	ItemFieldLastUpdated = "last_updated"
)

const (
	TransactionTableName  = "store_transactions"
	TransactionEntityName = "store_transaction"

	TransactionFieldID         = "id"
	TransactionFieldItemID     = "item_id"
	TransactionFieldDirection  = "direction"
	TransactionFieldEmployeeID = "employee_id"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Item is a stocked good. Quantity only changes through a ledger move.
type Item struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Quantity    int       `db:"quantity"`
	Unit        string    `db:"unit"`
	LastUpdated time.Time `db:"last_updated"`
	model.Metadata
}

// Transaction is one append-only ledger row.
type Transaction struct {
	ID         string  `db:"id"`
	ItemID     string  `db:"item_id"`
	Direction  string  `db:"direction"`
	Quantity   int     `db:"quantity"`
	Reason     string  `db:"reason"`
	EmployeeID *string `db:"employee_id"`
	model.Metadata
}

// Apply returns the quantity after moving amount in direction.
func (i Item) Apply(direction string, amount int) (int, error) {
	if direction == DirectionIn {
		return i.Quantity + amount, nil
	}

	if amount > i.Quantity {
		return i.Quantity, ErrInsufficientStock
	}

	return i.Quantity - amount, nil
}
