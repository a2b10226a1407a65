package room

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"rentflow/database"
	roomRepo "rentflow/database/repository/room"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"
	"rentflow/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRooms struct {
	roomRepo.RoomRepository
	rooms map[string]models.Room
}

func (f *fakeRooms) GetByID(_ context.Context, id string) (*models.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRooms) SetTenant(_ context.Context, id, tenantID string) error {
	r, ok := f.rooms[id]
	if !ok {
		return database.ErrNotFound
	}
	if r.Status != models.RoomAvailable {
		return database.ErrConflict
	}
	r.Status, r.TenantID = models.RoomOccupied, tenantID
	f.rooms[id] = r
	return nil
}

func (f *fakeRooms) ClearTenant(_ context.Context, id, tenantID string) error {
	r, ok := f.rooms[id]
	if !ok {
		return database.ErrNotFound
	}
	if r.Status != models.RoomOccupied || r.TenantID != tenantID {
		return database.ErrConflict
	}
	r.Status, r.TenantID = models.RoomAvailable, ""
	f.rooms[id] = r
	return nil
}

type fakeUsers struct {
	userRepo.UserRepository
	users      map[string]models.User
	setRoomErr error
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) SetRoom(_ context.Context, id, roomID string) error {
	if f.setRoomErr != nil {
		return f.setRoomErr
	}
	u := f.users[id]
	if u.RoomID != "" {
		return database.ErrConflict
	}
	u.RoomID = roomID
	f.users[id] = u
	return nil
}

func (f *fakeUsers) ClearRoom(_ context.Context, id, roomID string) error {
	u := f.users[id]
	if u.RoomID != roomID {
		return database.ErrConflict
	}
	u.RoomID = ""
	f.users[id] = u
	return nil
}

// snapshotTx restores both stores when fn fails, like an aborted transaction.
type snapshotTx struct {
	rooms *fakeRooms
	users *fakeUsers
}

func (s *snapshotTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	rooms := make(map[string]models.Room, len(s.rooms.rooms))
	for k, v := range s.rooms.rooms {
		rooms[k] = v
	}
	users := make(map[string]models.User, len(s.users.users))
	for k, v := range s.users.users {
		users[k] = v
	}
	if err := fn(ctx); err != nil {
		s.rooms.rooms, s.users.users = rooms, users
		return err
	}
	return nil
}

func newRoomService(t *testing.T) (*DefaultRoomService, *fakeRooms, *fakeUsers) {
	t.Helper()
	rooms := &fakeRooms{rooms: map[string]models.Room{
		"r1": {ID: "r1", Number: "101", Status: models.RoomAvailable},
		"r2": {ID: "r2", Number: "102", Status: models.RoomOccupied, TenantID: "t2"},
		"r3": {ID: "r3", Number: "103", Status: models.RoomMaintenance},
	}}
	users := &fakeUsers{users: map[string]models.User{
		"t1": {ID: "t1", Role: models.RoleTenant},
		"t2": {ID: "t2", Role: models.RoleTenant, RoomID: "r2"},
		"a1": {ID: "a1", Role: models.RoleAdmin},
	}}
	svc, err := NewDefaultRoomService(rooms, users, nil, &snapshotTx{rooms: rooms, users: users}, nil)
	require.NoError(t, err)
	return svc, rooms, users
}

func TestAssignTenant(t *testing.T) {
	svc, rooms, users := newRoomService(t)

	room, err := svc.AssignTenant(context.Background(), "r1", "t1")
	require.NoError(t, err)

	assert.Equal(t, models.RoomOccupied, room.Status)
	assert.Equal(t, "t1", rooms.rooms["r1"].TenantID)
	assert.Equal(t, "r1", users.users["t1"].RoomID)
}

func TestAssignTenant_OccupiedRoomNoStateChange(t *testing.T) {
	svc, rooms, users := newRoomService(t)

	_, err := svc.AssignTenant(context.Background(), "r2", "t1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.MsgRoomOccupied, appErr.Message)

	assert.Equal(t, "t2", rooms.rooms["r2"].TenantID)
	assert.Empty(t, users.users["t1"].RoomID)
}

func TestAssignTenant_Rejections(t *testing.T) {
	cases := []struct {
		name         string
		room, tenant string
		status       int
	}{
		{"maintenance room", "r3", "t1", http.StatusBadRequest},
		{"tenant already housed", "r1", "t2", http.StatusBadRequest},
		{"admin is not a tenant", "r1", "a1", http.StatusBadRequest},
		{"unknown tenant", "r1", "ghost", http.StatusNotFound},
		{"unknown room", "nope", "t1", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, rooms, _ := newRoomService(t)
			_, err := svc.AssignTenant(context.Background(), tc.room, tc.tenant)
			assert.Equal(t, tc.status, utils.StatusOf(err))
			assert.Equal(t, models.RoomAvailable, rooms.rooms["r1"].Status)
		})
	}
}

func TestAssignTenant_SecondStepFailureRollsBack(t *testing.T) {
	svc, rooms, users := newRoomService(t)
	users.setRoomErr = errors.New("write conflict")

	_, err := svc.AssignTenant(context.Background(), "r1", "t1")
	require.Error(t, err)

	assert.Equal(t, models.RoomAvailable, rooms.rooms["r1"].Status)
	assert.Empty(t, rooms.rooms["r1"].TenantID)
}

func TestUnassignTenant(t *testing.T) {
	svc, rooms, users := newRoomService(t)

	room, err := svc.UnassignTenant(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Empty(t, rooms.rooms["r2"].TenantID)
	assert.Empty(t, users.users["t2"].RoomID)

	_, err = svc.UnassignTenant(context.Background(), "r2")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}
