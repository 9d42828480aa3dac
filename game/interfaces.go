package game

import (
	"context"

	"github.com/alexanderho00001/SignWave/domain"
)

type RoomStore interface {
	CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error)
	GetRoomByCode(ctx context.Context, code string) (domain.Room, error)
	// UpdateRoom writes the room back conditioned on expectedVersion still
	// being the stored version. Fails with domain.ErrVersionMismatch if a
	// concurrent write got there first.
	UpdateRoom(ctx context.Context, id string, expectedVersion int64, room domain.Room) (domain.Room, error)
	ListAvailableRooms(ctx context.Context, limit int) ([]domain.Room, error)
}

type ProblemGenerator interface {
	Generate() domain.Problem
}

type RoomCodeGenerator interface {
	Generate() string
}
