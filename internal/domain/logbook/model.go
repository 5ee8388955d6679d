package logbook

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one day of the ambulance logbook. Kilometre and fuel figures stay
// optional; total_kms is whatever the driver recorded, not recomputed here.
type Entry struct {
	ID              uuid.UUID `db:"id" json:"id"`
	EntryDate       time.Time `db:"entry_date" json:"entry_date"`
	TimeOut         *string   `db:"time_out" json:"time_out"`
	TimeIn          *string   `db:"time_in" json:"time_in"`
	KmsOpening      *float64  `db:"kms_opening" json:"kms_opening"`
	KmsClosing      *float64  `db:"kms_closing" json:"kms_closing"`
	TotalKms        *float64  `db:"total_kms" json:"total_kms"`
	FuelQuantity    *float64  `db:"fuel_quantity" json:"fuel_quantity"`
	VillagesVisited *string   `db:"villages_visited" json:"villages_visited"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
