package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
	"github.com/moyamatthieu/dispodialyse/internal/domain/room"
	"github.com/moyamatthieu/dispodialyse/internal/domain/staff"
)

// CheckResult is the outcome of running a proposal through the detector.
// Alternatives are only computed when there is something to route around.
type CheckResult struct {
	Conflicts    []Conflict    `json:"conflicts"`
	Alternatives []Alternative `json:"alternatives"`
	Admissible   bool          `json:"admissible"`
}

type Service struct {
	detector  *Detector
	suggester *Suggester
	slots     *SlotFinder
	stats     *StatsCalculator
	rooms     room.Repository
	staff     staff.Repository
}

func NewService(bookings booking.Repository, rooms room.Repository, members staff.Repository) *Service {
	return &Service{
		detector:  NewDetector(bookings, rooms),
		suggester: NewSuggester(bookings, rooms),
		slots:     NewSlotFinder(bookings),
		stats:     NewStatsCalculator(bookings),
		rooms:     rooms,
		staff:     members,
	}
}

// validateProposal rejects malformed input before any conflict rule runs.
// Unknown room or staff ids are input errors, not conflicts: an empty staff
// list is allowed here and surfaces later as staff_missing.
func (s *Service) validateProposal(ctx context.Context, p Proposal) error {
	if p.RoomID == uuid.Nil {
		return errors.New("room_id is required")
	}
	if !p.EndTime.After(p.StartTime) {
		return errors.New("end_time must be after start_time")
	}
	if !p.TreatmentType.Valid() {
		return errors.New("unknown treatment type")
	}
	if _, err := s.rooms.GetByID(ctx, p.RoomID); err != nil {
		return err
	}
	for _, sid := range p.StaffIDs {
		if _, err := s.staff.GetByID(ctx, sid); err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return fmt.Errorf("staff member %s: %w", sid, err)
			}
			return err
		}
	}
	return nil
}

// Detector exposes the conflict detector so the booking admission gate can
// share it.
func (s *Service) Detector() *Detector { return s.detector }

// CheckConflicts runs detection on a proposal without persisting anything.
func (s *Service) CheckConflicts(ctx context.Context, p Proposal) (*CheckResult, error) {
	if err := s.validateProposal(ctx, p); err != nil {
		return nil, err
	}
	conflicts, err := s.detector.Detect(ctx, p)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{
		Conflicts:    conflicts,
		Alternatives: []Alternative{},
		Admissible:   Admissible(conflicts),
	}
	if len(conflicts) > 0 {
		alts, err := s.suggester.Suggest(ctx, p)
		if err != nil {
			return nil, err
		}
		result.Alternatives = alts
	}
	return result, nil
}

// FindAvailableSlots lists free windows of the given length in one room on
// the day containing date.
func (s *Service) FindAvailableSlots(ctx context.Context, roomID uuid.UUID, date time.Time, durationMinutes int) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, errors.New("duration must be positive")
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.slots.FindAvailableSlots(ctx, roomID, date, time.Duration(durationMinutes)*time.Minute)
}

// GetOccupancy reports usage statistics for one room over [from, to).
func (s *Service) GetOccupancy(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*RoomStatistics, error) {
	if !to.After(from) {
		return nil, errors.New("to must be after from")
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.stats.RoomStatistics(ctx, roomID, from, to)
}
