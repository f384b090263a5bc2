package planning

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
	"github.com/moyamatthieu/dispodialyse/internal/domain/room"
)

// maxAlternatives caps the suggestion list returned with a conflict report.
const maxAlternatives = 5

// maxDayShift bounds how many days ahead the suggester looks for the same
// window in the same room.
const maxDayShift = 3

// Alternative is a bookable substitute for a conflicting proposal. Lower
// priority numbers are better matches.
type Alternative struct {
	RoomID    uuid.UUID `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Priority  int       `json:"priority"`
	Label     string    `json:"label"`
}

// Suggester proposes alternatives in three tiers: other times in the
// requested room that day, other rooms at the requested time, and the same
// room on the following days.
type Suggester struct {
	checker *Checker
	slots   *SlotFinder
	rooms   room.Repository
}

func NewSuggester(bookings booking.Repository, rooms room.Repository) *Suggester {
	return &Suggester{
		checker: NewChecker(bookings),
		slots:   NewSlotFinder(bookings),
		rooms:   rooms,
	}
}

func (s *Suggester) Suggest(ctx context.Context, p Proposal) ([]Alternative, error) {
	duration := p.EndTime.Sub(p.StartTime)
	alts := []Alternative{}

	// Tier 1: free windows in the requested room on the requested day.
	slots, err := s.slots.FindAvailableSlots(ctx, p.RoomID, p.StartTime, duration)
	if err != nil {
		return nil, err
	}
	for _, sl := range slots {
		if sl.StartTime.Equal(p.StartTime) {
			continue
		}
		alts = append(alts, Alternative{
			RoomID:    sl.RoomID,
			StartTime: sl.StartTime,
			EndTime:   sl.EndTime,
			Priority:  1,
			Label:     "same room, different time",
		})
	}

	// Tier 2: other active rooms at the requested time. Isolation demands
	// restrict the candidate rooms.
	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, rm := range rooms {
		if rm.ID == p.RoomID {
			continue
		}
		if p.IsolationRequired && !rm.IsIsolation {
			continue
		}
		free, err := s.checker.IsRoomAvailable(ctx, rm.ID, p.StartTime, p.EndTime, p.ExcludeBookingID)
		if err != nil {
			return nil, err
		}
		if free {
			alts = append(alts, Alternative{
				RoomID:    rm.ID,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				Priority:  2,
				Label:     "different room, same time",
			})
		}
	}

	// Tier 3: same room and window on the following days.
	for shift := 1; shift <= maxDayShift; shift++ {
		start := p.StartTime.AddDate(0, 0, shift)
		end := p.EndTime.AddDate(0, 0, shift)
		free, err := s.checker.IsRoomAvailable(ctx, p.RoomID, start, end, p.ExcludeBookingID)
		if err != nil {
			return nil, err
		}
		if free {
			alts = append(alts, Alternative{
				RoomID:    p.RoomID,
				StartTime: start,
				EndTime:   end,
				Priority:  3,
				Label:     "same room, later day",
			})
		}
	}

	sort.SliceStable(alts, func(i, j int) bool { return alts[i].Priority < alts[j].Priority })
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	return alts, nil
}
