package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
	"github.com/moyamatthieu/dispodialyse/internal/domain/room"
)

// ConflictType classifies what a proposed booking collides with.
type ConflictType string

const (
	ConflictRoomOccupied         ConflictType = "room_occupied"
	ConflictStaffUnavailable     ConflictType = "staff_unavailable"
	ConflictDurationTooShort     ConflictType = "duration_too_short"
	ConflictDurationTooLong      ConflictType = "duration_too_long"
	ConflictIsolationUnavailable ConflictType = "isolation_unavailable"
	ConflictStaffMissing         ConflictType = "staff_missing"
)

// Severity separates blocking conflicts from advisory ones. Only errors
// make a proposal inadmissible; duration findings are always warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Conflict struct {
	Type      ConflictType `json:"type"`
	Severity  Severity     `json:"severity"`
	Message   string       `json:"message"`
	BookingID *uuid.UUID   `json:"booking_id,omitempty"`
	StaffID   *uuid.UUID   `json:"staff_id,omitempty"`
}

// Admissible reports whether the conflict list allows the proposal to be
// persisted: true exactly when no conflict carries error severity.
func Admissible(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Proposal is a booking candidate submitted for conflict detection. It is
// checked before any row exists, so it carries everything detection needs
// rather than referencing a stored booking.
type Proposal struct {
	RoomID            uuid.UUID             `json:"room_id"`
	StartTime         time.Time             `json:"start_time"`
	EndTime           time.Time             `json:"end_time"`
	TreatmentType     booking.TreatmentType `json:"treatment_type"`
	StaffIDs          []uuid.UUID           `json:"staff_ids"`
	IsolationRequired bool                  `json:"isolation_required"`
	ExcludeBookingID  uuid.UUID             `json:"exclude_booking_id,omitempty"`
}

// Detector runs the conflict rules against a proposal. Rules execute in a
// fixed order so the conflict list is deterministic: room occupancy, staff
// double-booking, duration bounds, isolation capability, staff presence.
type Detector struct {
	checker *Checker
	rooms   room.Repository
}

func NewDetector(bookings booking.Repository, rooms room.Repository) *Detector {
	return &Detector{checker: NewChecker(bookings), rooms: rooms}
}

func (d *Detector) Detect(ctx context.Context, p Proposal) ([]Conflict, error) {
	conflicts := []Conflict{}

	hit, err := d.checker.FirstRoomConflict(ctx, p.RoomID, p.StartTime, p.EndTime, p.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	if hit != nil {
		id := hit.ID
		conflicts = append(conflicts, Conflict{
			Type:     ConflictRoomOccupied,
			Severity: SeverityError,
			Message: fmt.Sprintf("room is occupied from %s to %s",
				hit.StartTime.Format(time.RFC3339), hit.EndTime.Format(time.RFC3339)),
			BookingID: &id,
		})
	}

	for _, staffID := range p.StaffIDs {
		hit, err := d.checker.FirstStaffConflict(ctx, staffID, p.StartTime, p.EndTime, p.ExcludeBookingID)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			sid := staffID
			bid := hit.ID
			conflicts = append(conflicts, Conflict{
				Type:     ConflictStaffUnavailable,
				Severity: SeverityError,
				Message: fmt.Sprintf("staff member %s is assigned elsewhere from %s to %s",
					staffID, hit.StartTime.Format(time.RFC3339), hit.EndTime.Format(time.RFC3339)),
				BookingID: &bid,
				StaffID:   &sid,
			})
		}
	}

	if bounds, ok := p.TreatmentType.Bounds(); ok {
		minutes := int(p.EndTime.Sub(p.StartTime).Minutes())
		if minutes < bounds.Min {
			conflicts = append(conflicts, Conflict{
				Type:     ConflictDurationTooShort,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%d min is below the %d min minimum for %s", minutes, bounds.Min, p.TreatmentType),
			})
		} else if minutes > bounds.Max {
			conflicts = append(conflicts, Conflict{
				Type:     ConflictDurationTooLong,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%d min exceeds the %d min maximum for %s", minutes, bounds.Max, p.TreatmentType),
			})
		}
	}

	if p.IsolationRequired {
		rm, err := d.rooms.GetByID(ctx, p.RoomID)
		if err != nil {
			return nil, err
		}
		if !rm.IsIsolation {
			conflicts = append(conflicts, Conflict{
				Type:     ConflictIsolationUnavailable,
				Severity: SeverityError,
				Message:  fmt.Sprintf("room %s is not an isolation room", rm.Name),
			})
		}
	}

	if len(p.StaffIDs) == 0 {
		conflicts = append(conflicts, Conflict{
			Type:     ConflictStaffMissing,
			Severity: SeverityError,
			Message:  "at least one staff member must be assigned",
		})
	}

	return conflicts, nil
}
