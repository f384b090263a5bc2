package room

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	rooms Repository
}

func NewService(rooms Repository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) CreateRoom(ctx context.Context, rm *Room) error {
	if rm.Name == "" {
		return fmt.Errorf("name is required")
	}
	if rm.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	rm.Active = true
	return s.rooms.Create(ctx, rm)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) UpdateRoom(ctx context.Context, rm *Room) error {
	if rm.Name == "" {
		return fmt.Errorf("name is required")
	}
	if rm.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	return s.rooms.Update(ctx, rm)
}

// DeactivateRoom retires a room from scheduling without deleting history.
func (s *Service) DeactivateRoom(ctx context.Context, id uuid.UUID) error {
	rm, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rm.Active = false
	return s.rooms.Update(ctx, rm)
}

func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.rooms.List(ctx, limit, offset)
}

func (s *Service) ListActiveRooms(ctx context.Context) ([]*Room, error) {
	return s.rooms.ListActive(ctx)
}
