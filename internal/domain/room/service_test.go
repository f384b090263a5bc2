package room

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	rooms map[uuid.UUID]*Room
}

func newMockRepo() *mockRepo {
	return &mockRepo{rooms: make(map[uuid.UUID]*Room)}
}

func (m *mockRepo) Create(_ context.Context, r *Room) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) Update(_ context.Context, r *Room) error {
	if _, ok := m.rooms[r.ID]; !ok {
		return ErrNotFound
	}
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Room, int, error) {
	var result []*Room
	for _, r := range m.rooms {
		result = append(result, r)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListActive(_ context.Context) ([]*Room, error) {
	var result []*Room
	for _, r := range m.rooms {
		if r.Active {
			result = append(result, r)
		}
	}
	return result, nil
}

func TestCreateRoom_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.CreateRoom(context.Background(), &Room{Capacity: 2}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.CreateRoom(context.Background(), &Room{Name: "Bay 1"}); err == nil {
		t.Error("expected error for zero capacity")
	}

	rm := &Room{Name: "Bay 1", Capacity: 2}
	if err := svc.CreateRoom(context.Background(), rm); err != nil {
		t.Fatalf("CreateRoom() error: %v", err)
	}
	if !rm.Active {
		t.Error("new rooms should be active")
	}
}

func TestDeactivateRoom(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	rm := &Room{Name: "Iso 1", Capacity: 1, IsIsolation: true}
	if err := svc.CreateRoom(context.Background(), rm); err != nil {
		t.Fatalf("CreateRoom() error: %v", err)
	}

	if err := svc.DeactivateRoom(context.Background(), rm.ID); err != nil {
		t.Fatalf("DeactivateRoom() error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), rm.ID)
	if got.Active {
		t.Error("room should be inactive after deactivation")
	}

	active, _ := svc.ListActiveRooms(context.Background())
	if len(active) != 0 {
		t.Errorf("expected 0 active rooms, got %d", len(active))
	}
}
