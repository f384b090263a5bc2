package staff

import (
	"time"

	"github.com/google/uuid"
)

// Member is a staff member assignable to bookings. A member may be in at most
// one active booking per overlapping time window; that rule lives in the
// planning package.
type Member struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
