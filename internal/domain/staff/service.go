package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	members Repository
}

func NewService(members Repository) *Service {
	return &Service{members: members}
}

func (s *Service) CreateMember(ctx context.Context, m *Member) error {
	if m.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	m.Active = true
	return s.members.Create(ctx, m)
}

func (s *Service) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.members.GetByID(ctx, id)
}

func (s *Service) UpdateMember(ctx context.Context, m *Member) error {
	if m.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	return s.members.Update(ctx, m)
}

func (s *Service) DeactivateMember(ctx context.Context, id uuid.UUID) error {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.Active = false
	return s.members.Update(ctx, m)
}

func (s *Service) ListMembers(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	return s.members.List(ctx, limit, offset)
}
