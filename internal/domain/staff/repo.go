package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no staff member matches the requested id.
var ErrNotFound = errors.New("staff member not found")

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	Update(ctx context.Context, m *Member) error
	List(ctx context.Context, limit, offset int) ([]*Member, int, error)
}
