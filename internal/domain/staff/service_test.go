package staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	members map[uuid.UUID]*Member
}

func newMockRepo() *mockRepo {
	return &mockRepo{members: make(map[uuid.UUID]*Member)}
}

func (m *mockRepo) Create(_ context.Context, mem *Member) error {
	if mem.ID == uuid.Nil {
		mem.ID = uuid.New()
	}
	mem.CreatedAt = time.Now()
	mem.UpdatedAt = time.Now()
	m.members[mem.ID] = mem
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return mem, nil
}

func (m *mockRepo) Update(_ context.Context, mem *Member) error {
	if _, ok := m.members[mem.ID]; !ok {
		return ErrNotFound
	}
	m.members[mem.ID] = mem
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Member, int, error) {
	var result []*Member
	for _, mem := range m.members {
		result = append(result, mem)
	}
	return result, len(result), nil
}

func TestCreateMember_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.CreateMember(context.Background(), &Member{}); err == nil {
		t.Error("expected error for missing display_name")
	}

	m := &Member{DisplayName: "N. Okafor"}
	if err := svc.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	if !m.Active {
		t.Error("new members should be active")
	}
}

func TestDeactivateMember(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	m := &Member{DisplayName: "A. Diallo"}
	if err := svc.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	if err := svc.DeactivateMember(context.Background(), m.ID); err != nil {
		t.Fatalf("DeactivateMember() error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), m.ID)
	if got.Active {
		t.Error("member should be inactive after deactivation")
	}

	if err := svc.DeactivateMember(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown member")
	}
}
