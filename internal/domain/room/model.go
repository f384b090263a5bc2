package room

import (
	"time"

	"github.com/google/uuid"
)

// Room is a physical treatment bay. A room hosts one booking at a time;
// Capacity counts staff and equipment positions, not simultaneous patients.
type Room struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Capacity    int       `db:"capacity" json:"capacity"`
	IsIsolation bool      `db:"is_isolation" json:"is_isolation"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
