package planning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
)

// RoomStatistics summarises how a room was used over a date range.
// Occupancy is booked minutes against the room's operating capacity of
// twelve hours per day.
type RoomStatistics struct {
	RoomID                 uuid.UUID                     `json:"room_id"`
	From                   time.Time                     `json:"from"`
	To                     time.Time                     `json:"to"`
	OccupancyPercent       float64                       `json:"percentage"`
	TotalBookings          int                           `json:"total_bookings"`
	TotalHours             float64                       `json:"total_hours"`
	ByTreatmentType        map[booking.TreatmentType]int `json:"by_type"`
	AverageDurationMinutes float64                       `json:"average_duration_minutes"`
}

type StatsCalculator struct {
	bookings booking.Repository
}

func NewStatsCalculator(bookings booking.Repository) *StatsCalculator {
	return &StatsCalculator{bookings: bookings}
}

// clip returns the minutes of [start, end) that fall inside [from, to).
func clip(start, end, from, to time.Time) float64 {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Minutes()
}

// RoomStatistics computes occupancy for one room over [from, to). Cancelled
// and no-show bookings never count. Capacity of zero (empty range) yields
// zero occupancy rather than a division error.
func (s *StatsCalculator) RoomStatistics(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomStatistics, error) {
	items, err := s.bookings.ListActiveByRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &RoomStatistics{
		RoomID:          roomID,
		From:            from,
		To:              to,
		ByTreatmentType: map[booking.TreatmentType]int{},
	}

	var bookedMinutes, fullMinutes float64
	for _, b := range items {
		m := clip(b.StartTime, b.EndTime, from, to)
		if m == 0 {
			continue
		}
		bookedMinutes += m
		fullMinutes += b.Duration().Minutes()
		stats.TotalBookings++
		stats.ByTreatmentType[b.TreatmentType]++
	}

	days := to.Sub(from).Hours() / 24
	capacity := days * float64(DayCloseHour-DayOpenHour) * 60
	if capacity > 0 {
		stats.OccupancyPercent = bookedMinutes / capacity * 100
	}
	stats.TotalHours = bookedMinutes / 60
	if stats.TotalBookings > 0 {
		stats.AverageDurationMinutes = fullMinutes / float64(stats.TotalBookings)
	}
	return stats, nil
}
