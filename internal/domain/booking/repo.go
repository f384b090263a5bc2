package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no booking matches the requested id.
var ErrNotFound = errors.New("booking not found")

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	List(ctx context.Context, limit, offset int) ([]*Booking, int, error)

	// ListActiveByRoom returns bookings on the room whose status blocks the
	// room and whose window overlaps [from, to), ordered by start time then id.
	ListActiveByRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*Booking, error)

	// ListActiveByStaff is the staff-side equivalent of ListActiveByRoom.
	ListActiveByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*Booking, error)
}
