package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Medicine maps to the medicine_inventory table. stock_count is the total
// number of units ever stocked; issued_quantity is the cumulative number of
// units dispensed. The difference is what is left on the shelf.
type Medicine struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	StockCount     int        `db:"stock_count" json:"stock_count"`
	IssuedQuantity int        `db:"issued_quantity" json:"issued_quantity"`
	ExpirationDate *time.Time `db:"expiration_date" json:"expiration_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Remaining returns the units still available for issue. It can be negative
// when a restock sets stock_count below what has already been issued.
func (m *Medicine) Remaining() int {
	return m.StockCount - m.IssuedQuantity
}

// ListItem is the API shape for inventory listings, with the derived
// remaining count included.
type ListItem struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	StockCount     int        `json:"stock_count"`
	IssuedQuantity int        `json:"issued_quantity"`
	Remaining      int        `json:"remaining"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}
