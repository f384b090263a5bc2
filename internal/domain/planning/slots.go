package planning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
)

// Treatment rooms operate a fixed daily window.
const (
	DayOpenHour  = 8
	DayCloseHour = 20
)

// Slot is a free window in one room where a session of the requested
// duration fits.
type Slot struct {
	RoomID    uuid.UUID `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type SlotFinder struct {
	bookings booking.Repository
}

func NewSlotFinder(bookings booking.Repository) *SlotFinder {
	return &SlotFinder{bookings: bookings}
}

// dayWindow returns the operating window for the calendar day containing t,
// in t's location.
func dayWindow(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	open := time.Date(y, m, d, DayOpenHour, 0, 0, 0, t.Location())
	close := time.Date(y, m, d, DayCloseHour, 0, 0, 0, t.Location())
	return open, close
}

// FindAvailableSlots returns candidate start times for a session of the
// given duration in one room on one day. Candidates are anchored to gap
// starts only: opening time and the end of each existing booking. A gap
// yields at most one slot; the cursor then jumps to the next booking's end
// regardless of whether the gap was long enough.
func (f *SlotFinder) FindAvailableSlots(ctx context.Context, roomID uuid.UUID, day time.Time, duration time.Duration) ([]Slot, error) {
	if duration <= 0 {
		return []Slot{}, nil
	}
	open, close := dayWindow(day)

	existing, err := f.bookings.ListActiveByRoom(ctx, roomID, open, close)
	if err != nil {
		return nil, err
	}

	slots := []Slot{}
	cursor := open
	for _, b := range existing {
		if cursor.Add(duration).Compare(b.StartTime) <= 0 {
			slots = append(slots, Slot{RoomID: roomID, StartTime: cursor, EndTime: cursor.Add(duration)})
		}
		if b.EndTime.After(cursor) {
			cursor = b.EndTime
		}
	}
	if cursor.Add(duration).Compare(close) <= 0 {
		slots = append(slots, Slot{RoomID: roomID, StartTime: cursor, EndTime: cursor.Add(duration)})
	}
	return slots, nil
}
