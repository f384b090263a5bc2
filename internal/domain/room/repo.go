package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no room matches the requested id.
var ErrNotFound = errors.New("room not found")

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Update(ctx context.Context, r *Room) error
	List(ctx context.Context, limit, offset int) ([]*Room, int, error)
	ListActive(ctx context.Context) ([]*Room, error)
}
