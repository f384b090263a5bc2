package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true, StatusInProgress: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return validStatuses[s] }

// BlocksRoom reports whether a booking in this status occupies its room and
// staff for availability purposes. Cancelled and no-show bookings never do.
func (s Status) BlocksRoom() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// allowedTransitions maps a status to the statuses it may move to.
var allowedTransitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a booking may move from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// TreatmentType identifies the dialysis modality of a session.
type TreatmentType string

const (
	TreatmentStandardDialysis   TreatmentType = "standard_dialysis"
	TreatmentHemodiafiltration  TreatmentType = "hemodiafiltration"
	TreatmentPeritonealDialysis TreatmentType = "peritoneal_dialysis"
	TreatmentHemofiltration     TreatmentType = "hemofiltration"
)

var validTreatmentTypes = map[TreatmentType]bool{
	TreatmentStandardDialysis: true, TreatmentHemodiafiltration: true,
	TreatmentPeritonealDialysis: true, TreatmentHemofiltration: true,
}

// Valid reports whether t is a known treatment type.
func (t TreatmentType) Valid() bool { return validTreatmentTypes[t] }

// DurationBounds is the allowed session length for a treatment type, in minutes.
type DurationBounds struct {
	Min int
	Max int
}

// durationBounds is deliberately missing an entry for hemofiltration: types
// without bounds skip the duration check entirely.
var durationBounds = map[TreatmentType]DurationBounds{
	TreatmentStandardDialysis:   {Min: 180, Max: 300},
	TreatmentHemodiafiltration:  {Min: 180, Max: 300},
	TreatmentPeritonealDialysis: {Min: 30, Max: 120},
}

// Bounds returns the duration bounds for t, and whether any are defined.
func (t TreatmentType) Bounds() (DurationBounds, bool) {
	b, ok := durationBounds[t]
	return b, ok
}

// Booking is one treatment session occupying one room for one time window.
// StaffIDs is an owned collection; the junction table never surfaces as a
// live object graph.
type Booking struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	RoomID              uuid.UUID     `db:"room_id" json:"room_id"`
	StartTime           time.Time     `db:"start_time" json:"start_time"`
	EndTime             time.Time     `db:"end_time" json:"end_time"`
	TreatmentType       TreatmentType `db:"treatment_type" json:"treatment_type"`
	Status              Status        `db:"status" json:"status"`
	Notes               *string       `db:"notes" json:"notes,omitempty"`
	SpecialRequirements *string       `db:"special_requirements" json:"special_requirements,omitempty"`
	IsolationRequired   bool          `db:"isolation_required" json:"isolation_required"`
	CreatedBy           *uuid.UUID    `db:"created_by" json:"created_by,omitempty"`
	CancellationReason  *string       `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledAt         *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
	StaffIDs            []uuid.UUID   `json:"staff_ids"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// Duration returns the booked session length.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
