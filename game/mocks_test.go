package game

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alexanderho00001/SignWave/domain"
)

// --- RoomAPI ---

type MockRoomAPI struct {
	mock.Mock
}

func (m *MockRoomAPI) Create(ctx context.Context, hostId, hostName string, goalScore int) (domain.Room, error) {
	args := m.Called(ctx, hostId, hostName, goalScore)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) Join(ctx context.Context, code, guestId, guestName string) (domain.Room, error) {
	args := m.Called(ctx, code, guestId, guestName)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) Start(ctx context.Context, code, playerId string) (domain.Room, error) {
	args := m.Called(ctx, code, playerId)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) Skip(ctx context.Context, code, playerId string, snapshot domain.ProblemSnapshot) (domain.Room, error) {
	args := m.Called(ctx, code, playerId, snapshot)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) GiveUp(ctx context.Context, code, playerId string) (domain.Room, error) {
	args := m.Called(ctx, code, playerId)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) Resolve(ctx context.Context, code, playerId, submitted string, snapshot domain.ProblemSnapshot) (domain.Room, ResolveOutcome, error) {
	args := m.Called(ctx, code, playerId, submitted, snapshot)
	return args.Get(0).(domain.Room), args.Get(1).(ResolveOutcome), args.Error(2)
}

func (m *MockRoomAPI) Get(ctx context.Context, code string) (domain.Room, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomAPI) ListAvailable(ctx context.Context, limit int) ([]domain.Room, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Room), args.Error(1)
}

// --- RoomStore ---

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	args := m.Called(ctx, room)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomStore) GetRoomByCode(ctx context.Context, code string) (domain.Room, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomStore) UpdateRoom(ctx context.Context, id string, expectedVersion int64, room domain.Room) (domain.Room, error) {
	args := m.Called(ctx, id, expectedVersion, room)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomStore) ListAvailableRooms(ctx context.Context, limit int) ([]domain.Room, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Room), args.Error(1)
}
