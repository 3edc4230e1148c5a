package services

import (
	"context"
	"testing"

	"pg-backend/internal/models"
	"pg-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTenantStore honors the repository contract: a failed multi-step
// operation leaves no partial state behind.
type fakeTenantStore struct {
	rooms   map[int]*models.Room
	tenants map[int]*models.TenantProfile
	users   map[int]*models.User
	nextID  int
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{
		rooms:   make(map[int]*models.Room),
		tenants: make(map[int]*models.TenantProfile),
		users:   make(map[int]*models.User),
	}
}

func (f *fakeTenantStore) addRoom(id, capacity, occupancy int) {
	f.rooms[id] = &models.Room{ID: id, Capacity: capacity, CurrentOccupancy: occupancy}
}

func (f *fakeTenantStore) claimSlot(roomID int) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return repositories.ErrNotFound
	}
	if room.CurrentOccupancy >= room.Capacity {
		return repositories.ErrRoomFull
	}
	room.CurrentOccupancy++
	return nil
}

func (f *fakeTenantStore) CreateWithUser(_ context.Context, user *models.User, profile *models.TenantProfile) error {
	if profile.RoomID != nil {
		if err := f.claimSlot(*profile.RoomID); err != nil {
			return err
		}
	}
	f.nextID++
	user.ID = f.nextID
	profile.ID = f.nextID
	profile.UserID = user.ID
	f.users[user.ID] = user
	f.tenants[profile.ID] = profile
	return nil
}

func (f *fakeTenantStore) Get(_ context.Context, id int) (*models.TenantProfile, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (f *fakeTenantStore) GetByUserID(_ context.Context, userID int) (*models.TenantProfile, error) {
	for _, t := range f.tenants {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeTenantStore) List(_ context.Context) ([]*models.TenantProfile, error) {
	var out []*models.TenantProfile
	for _, t := range f.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTenantStore) UpdateWithOccupancy(_ context.Context, id int, req *models.UpdateTenantRequest) (*models.TenantProfile, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	if !sameRoomPtr(t.RoomID, req.RoomID) {
		if req.RoomID != nil {
			if err := f.claimSlot(*req.RoomID); err != nil {
				return nil, err
			}
		}
		if t.RoomID != nil {
			f.rooms[*t.RoomID].CurrentOccupancy--
		}
		t.RoomID = req.RoomID
	}

	t.Name = req.Name
	t.Phone = req.Phone
	t.Address = req.Address
	t.IsActive = req.IsActive
	return t, nil
}

func sameRoomPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeTenantStore) Delete(_ context.Context, id int) error {
	t, ok := f.tenants[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if t.RoomID != nil {
		f.rooms[*t.RoomID].CurrentOccupancy--
	}
	delete(f.tenants, id)
	delete(f.users, t.UserID)
	return nil
}

func (f *fakeTenantStore) SetIDProof(_ context.Context, id int, url string) error {
	t, ok := f.tenants[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.IDProofURL = url
	t.IDProofStatus = models.IDProofPending
	return nil
}

func (f *fakeTenantStore) VerifyIDProof(_ context.Context, id int) error {
	t, ok := f.tenants[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.IDProofStatus = models.IDProofVerified
	return nil
}

// Creating a tenant into a full room must fail without leaving the user, the
// profile, or an occupancy increment behind.
func TestCreateTenantFullRoomLeavesNoTrace(t *testing.T) {
	store := newFakeTenantStore()
	store.addRoom(1, 1, 1)
	svc := NewTenantService(store, nil, nil)

	roomID := 1
	_, err := svc.CreateTenant(context.Background(), &models.CreateTenantRequest{
		Email:    "b@example.com",
		Password: "secret123",
		Name:     "B",
		RoomID:   &roomID,
	})
	require.ErrorIs(t, err, repositories.ErrRoomFull)

	assert.Empty(t, store.tenants)
	assert.Empty(t, store.users)
	assert.Equal(t, 1, store.rooms[1].CurrentOccupancy)
}

func TestCreateTenantClaimsRoomSlot(t *testing.T) {
	store := newFakeTenantStore()
	store.addRoom(1, 2, 0)
	svc := NewTenantService(store, nil, nil)

	roomID := 1
	created, err := svc.CreateTenant(context.Background(), &models.CreateTenantRequest{
		Email:    "a@example.com",
		Password: "secret123",
		Name:     "A",
		RoomID:   &roomID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.rooms[1].CurrentOccupancy)
	assert.Equal(t, roomID, *created.RoomID)
}

// Reassigning to a full room must fail and leave both rooms' counters and the
// tenant's assignment untouched.
func TestReassignToFullRoomChangesNothing(t *testing.T) {
	store := newFakeTenantStore()
	store.addRoom(1, 2, 0)
	store.addRoom(2, 1, 1)
	svc := NewTenantService(store, nil, nil)

	roomA := 1
	created, err := svc.CreateTenant(context.Background(), &models.CreateTenantRequest{
		Email:    "a@example.com",
		Password: "secret123",
		Name:     "A",
		RoomID:   &roomA,
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.rooms[1].CurrentOccupancy)

	roomB := 2
	_, err = svc.UpdateTenant(context.Background(), created.ID, &models.UpdateTenantRequest{
		Name:     "A",
		RoomID:   &roomB,
		IsActive: true,
	})
	require.ErrorIs(t, err, repositories.ErrRoomFull)

	assert.Equal(t, 1, store.rooms[1].CurrentOccupancy)
	assert.Equal(t, 1, store.rooms[2].CurrentOccupancy)
	assert.Equal(t, roomA, *store.tenants[created.ID].RoomID)
}
