package planning

import (
	"context"

	"github.com/google/uuid"

	"github.com/moyamatthieu/dispodialyse/internal/domain/booking"
)

// AdmissionGate adapts the conflict detector to the booking service's
// admission seam. Warnings pass; any error-severity conflict blocks the
// write and travels back to the caller inside an AdmissionError.
type AdmissionGate struct {
	detector *Detector
}

func NewAdmissionGate(detector *Detector) *AdmissionGate {
	return &AdmissionGate{detector: detector}
}

var _ booking.AdmissionChecker = (*AdmissionGate)(nil)

func (g *AdmissionGate) Check(ctx context.Context, b *booking.Booking, exclude uuid.UUID) error {
	conflicts, err := g.detector.Detect(ctx, Proposal{
		RoomID:            b.RoomID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		TreatmentType:     b.TreatmentType,
		StaffIDs:          b.StaffIDs,
		IsolationRequired: b.IsolationRequired,
		ExcludeBookingID:  exclude,
	})
	if err != nil {
		return err
	}
	if !Admissible(conflicts) {
		return &booking.AdmissionError{Conflicts: conflicts}
	}
	return nil
}
