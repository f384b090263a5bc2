package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moyamatthieu/dispodialyse/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const bookingCols = `id, room_id, start_time, end_time, treatment_type, status,
	notes, special_requirements, isolation_required, created_by,
	cancellation_reason, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.RoomID, &b.StartTime, &b.EndTime, &b.TreatmentType, &b.Status,
		&b.Notes, &b.SpecialRequirements, &b.IsolationRequired, &b.CreatedBy,
		&b.CancellationReason, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking row and its staff assignments. Callers that need
// atomicity with conflict re-validation wrap this in db.WithTx; the schema's
// exclusion constraint on (room, active status, time range) is the final
// arbiter against concurrent double-booking.
func (r *repoPG) Create(ctx context.Context, b *Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bookings (id, room_id, start_time, end_time, treatment_type, status,
			notes, special_requirements, isolation_required, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		b.ID, b.RoomID, b.StartTime, b.EndTime, b.TreatmentType, b.Status,
		b.Notes, b.SpecialRequirements, b.IsolationRequired, b.CreatedBy)
	if err != nil {
		return err
	}
	return r.replaceStaff(ctx, b.ID, b.StaffIDs)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := scanBooking(r.conn(ctx).QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadStaff(ctx, []*Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repoPG) Update(ctx context.Context, b *Booking) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bookings SET room_id=$2, start_time=$3, end_time=$4, treatment_type=$5,
			status=$6, notes=$7, special_requirements=$8, isolation_required=$9,
			cancellation_reason=$10, cancelled_at=$11, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.RoomID, b.StartTime, b.EndTime, b.TreatmentType,
		b.Status, b.Notes, b.SpecialRequirements, b.IsolationRequired,
		b.CancellationReason, b.CancelledAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return r.replaceStaff(ctx, b.ID, b.StaffIDs)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bookingCols+` FROM bookings ORDER BY start_time DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadStaff(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) ListActiveByRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*Booking, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE room_id = $1
		  AND status NOT IN ('cancelled','no_show')
		  AND start_time < $3 AND end_time > $2
		ORDER BY start_time, id`,
		roomID, from, to)
	if err != nil {
		return nil, err
	}
	items, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadStaff(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repoPG) ListActiveByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*Booking, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bookingCols+` FROM bookings b
		JOIN booking_staff bs ON bs.booking_id = b.id
		WHERE bs.staff_id = $1
		  AND b.status NOT IN ('cancelled','no_show')
		  AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time, b.id`,
		staffID, from, to)
	if err != nil {
		return nil, err
	}
	items, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadStaff(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *repoPG) replaceStaff(ctx context.Context, bookingID uuid.UUID, staffIDs []uuid.UUID) error {
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM booking_staff WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	for _, sid := range staffIDs {
		if _, err := r.conn(ctx).Exec(ctx,
			`INSERT INTO booking_staff (booking_id, staff_id) VALUES ($1,$2)`, bookingID, sid); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) loadStaff(ctx context.Context, items []*Booking) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(items))
	byID := make(map[uuid.UUID]*Booking, len(items))
	for i, b := range items {
		ids[i] = b.ID
		byID[b.ID] = b
		b.StaffIDs = []uuid.UUID{}
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT booking_id, staff_id FROM booking_staff WHERE booking_id = ANY($1) ORDER BY staff_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bookingID, staffID uuid.UUID
		if err := rows.Scan(&bookingID, &staffID); err != nil {
			return err
		}
		if b, ok := byID[bookingID]; ok {
			b.StaffIDs = append(b.StaffIDs, staffID)
		}
	}
	return rows.Err()
}
