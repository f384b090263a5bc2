package planning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
)

// Checker answers availability questions about rooms and staff for a given
// time window. An exclude id skips one booking so a reschedule is never in
// conflict with itself; uuid.Nil excludes nothing.
type Checker struct {
	bookings booking.Repository
}

func NewChecker(bookings booking.Repository) *Checker {
	return &Checker{bookings: bookings}
}

// firstConflict picks the conflicting booking with the earliest start time,
// breaking ties on the lexicographically smallest id, so repeated checks of
// the same schedule always report the same booking.
func firstConflict(candidates []*booking.Booking, start, end time.Time, exclude uuid.UUID) *booking.Booking {
	var first *booking.Booking
	for _, b := range candidates {
		if b.ID == exclude || !b.Status.BlocksRoom() {
			continue
		}
		if !Overlaps(b.StartTime, b.EndTime, start, end) {
			continue
		}
		if first == nil ||
			b.StartTime.Before(first.StartTime) ||
			(b.StartTime.Equal(first.StartTime) && b.ID.String() < first.ID.String()) {
			first = b
		}
	}
	return first
}

func (c *Checker) FirstRoomConflict(ctx context.Context, roomID uuid.UUID, start, end time.Time, exclude uuid.UUID) (*booking.Booking, error) {
	candidates, err := c.bookings.ListActiveByRoom(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	return firstConflict(candidates, start, end, exclude), nil
}

func (c *Checker) FirstStaffConflict(ctx context.Context, staffID uuid.UUID, start, end time.Time, exclude uuid.UUID) (*booking.Booking, error) {
	candidates, err := c.bookings.ListActiveByStaff(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}
	return firstConflict(candidates, start, end, exclude), nil
}

func (c *Checker) IsRoomAvailable(ctx context.Context, roomID uuid.UUID, start, end time.Time, exclude uuid.UUID) (bool, error) {
	hit, err := c.FirstRoomConflict(ctx, roomID, start, end, exclude)
	if err != nil {
		return false, err
	}
	return hit == nil, nil
}

func (c *Checker) IsStaffAvailable(ctx context.Context, staffID uuid.UUID, start, end time.Time, exclude uuid.UUID) (bool, error) {
	hit, err := c.FirstStaffConflict(ctx, staffID, start, end, exclude)
	if err != nil {
		return false, err
	}
	return hit == nil, nil
}
