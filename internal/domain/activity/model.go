package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one line in the activity log.
type Entry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
