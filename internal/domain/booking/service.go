package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moyamatthieu/dispodialyse/internal/domain/room"
	"github.com/moyamatthieu/dispodialyse/internal/platform/db"
)

// ErrInvalidTransition is returned when a lifecycle change is not allowed
// from the booking's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// AdmissionChecker decides whether a proposed booking may occupy its room,
// staff and time window. The exclude id ignores one existing booking so a
// reschedule does not conflict with itself; pass uuid.Nil on create.
type AdmissionChecker interface {
	Check(ctx context.Context, b *Booking, exclude uuid.UUID) error
}

// AdmissionError is returned by an AdmissionChecker when blocking conflicts
// exist. Conflicts carries the detector's findings for the API response.
type AdmissionError struct {
	Conflicts any
}

func (e *AdmissionError) Error() string { return "booking conflicts with existing schedule" }

// RoomDirectory validates room references on bookings. room.Repository
// satisfies it.
type RoomDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type Service struct {
	repo    Repository
	rooms   RoomDirectory
	checker AdmissionChecker
	pool    *pgxpool.Pool
}

// NewService wires the booking service. pool may be nil in tests; admission
// checks then run outside a transaction.
func NewService(repo Repository, rooms RoomDirectory, checker AdmissionChecker, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, rooms: rooms, checker: checker, pool: pool}
}

// inTx runs fn inside a transaction when a pool is present. Admission checks
// and the write they guard must observe the same snapshot, otherwise two
// concurrent creates could both pass detection.
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) validate(ctx context.Context, b *Booking) error {
	if !b.EndTime.After(b.StartTime) {
		return errors.New("end_time must be after start_time")
	}
	if !b.TreatmentType.Valid() {
		return fmt.Errorf("unknown treatment type %q", b.TreatmentType)
	}
	rm, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return errors.New("room does not exist")
		}
		return err
	}
	if !rm.Active {
		return errors.New("room is not active")
	}
	return nil
}

// CreateBooking validates the proposal, re-checks admission inside the
// persisting transaction and stores the booking as scheduled.
func (s *Service) CreateBooking(ctx context.Context, b *Booking) error {
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	b.Status = StatusScheduled
	b.CancellationReason = nil
	b.CancelledAt = nil
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.checker.Check(ctx, b, uuid.Nil); err != nil {
			return err
		}
		return s.repo.Create(ctx, b)
	})
}

// UpdateBooking reschedules or edits a booking. The booking's own window is
// excluded from conflict detection so moving within it stays legal.
func (s *Service) UpdateBooking(ctx context.Context, b *Booking) error {
	existing, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	if existing.Status.Terminal() {
		return fmt.Errorf("%w: cannot modify a %s booking", ErrInvalidTransition, existing.Status)
	}
	if err := s.validate(ctx, b); err != nil {
		return err
	}
	b.Status = existing.Status
	b.CancellationReason = existing.CancellationReason
	b.CancelledAt = existing.CancelledAt
	b.CreatedBy = existing.CreatedBy
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.checker.Check(ctx, b, b.ID); err != nil {
			return err
		}
		return s.repo.Update(ctx, b)
	})
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, limit, offset int) ([]*Booking, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next Status, mutate func(*Booking)) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	if mutate != nil {
		mutate(b)
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// StartBooking marks a scheduled session as underway.
func (s *Service) StartBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusInProgress, nil)
}

// CompleteBooking closes out a session that is in progress.
func (s *Service) CompleteBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusCompleted, nil)
}

// CancelBooking cancels a scheduled or in-progress session, recording the
// reason and time. The slot is immediately free for other bookings.
func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*Booking, error) {
	if reason == "" {
		return nil, errors.New("cancellation reason is required")
	}
	now := time.Now()
	return s.transition(ctx, id, StatusCancelled, func(b *Booking) {
		b.CancellationReason = &reason
		b.CancelledAt = &now
	})
}

// MarkNoShow records that the patient did not arrive for a scheduled session.
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.transition(ctx, id, StatusNoShow, nil)
}
