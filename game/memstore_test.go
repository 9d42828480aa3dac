package game

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderho00001/SignWave/domain"
)

// memStore is an in-memory RoomStore with the same conditional-write
// contract as the postgres repo. It lets the state machine and resolver be
// exercised, races included, without a database.
type memStore struct {
	mu    sync.Mutex
	rooms map[string]domain.Room
}

func newMemStore() *memStore {
	return &memStore{rooms: map[string]domain.Room{}}
}

func cloneRoom(room domain.Room) domain.Room {
	if room.CurrentProblem != nil {
		problem := *room.CurrentProblem
		room.CurrentProblem = &problem
	}
	return room
}

func (ms *memStore) CreateRoom(_ context.Context, room domain.Room) (domain.Room, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, existing := range ms.rooms {
		if existing.RoomCode == room.RoomCode {
			return domain.Room{}, domain.ErrConflict
		}
	}

	room.CreatedAt = time.Now()
	room.Version = 1
	ms.rooms[room.Id] = cloneRoom(room)
	return cloneRoom(room), nil
}

func (ms *memStore) GetRoomByCode(_ context.Context, code string) (domain.Room, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, room := range ms.rooms {
		if room.RoomCode == code {
			return cloneRoom(room), nil
		}
	}
	return domain.Room{}, domain.ErrRoomNotFound
}

func (ms *memStore) UpdateRoom(_ context.Context, id string, expectedVersion int64, room domain.Room) (domain.Room, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if stored.Version != expectedVersion {
		return domain.Room{}, domain.ErrVersionMismatch
	}

	room.Id = stored.Id
	room.CreatedAt = stored.CreatedAt
	room.Version = stored.Version + 1
	ms.rooms[id] = cloneRoom(room)
	return cloneRoom(room), nil
}

func (ms *memStore) ListAvailableRooms(_ context.Context, limit int) ([]domain.Room, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	available := []domain.Room{}
	for _, room := range ms.rooms {
		if !room.IsStarted && !room.IsFinished && room.GuestId == "" {
			available = append(available, cloneRoom(room))
		}
		if len(available) == limit {
			break
		}
	}
	return available, nil
}

// stubProblems deals problems from a fixed queue, wrapping around.
type stubProblems struct {
	mu    sync.Mutex
	queue []domain.Problem
	next  int
}

func (sp *stubProblems) Generate() domain.Problem {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	p := sp.queue[sp.next%len(sp.queue)]
	sp.next++
	return p
}

// stubCodes deals room codes from a fixed queue, wrapping around.
type stubCodes struct {
	mu    sync.Mutex
	queue []string
	next  int
}

func (sc *stubCodes) Generate() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	code := sc.queue[sc.next%len(sc.queue)]
	sc.next++
	return code
}

// instanceOf pins the room's current challenge instance, the way a client
// that just read the room would.
func instanceOf(room domain.Room) domain.ProblemSnapshot {
	return domain.ProblemSnapshot{Problem: *room.CurrentProblem, Version: room.Version}
}

func letterProblem(letter string) domain.Problem {
	return domain.Problem{
		Type:     domain.PROBLEM_ALPHABET,
		Question: "Sign the letter " + letter,
		Answer:   letter,
	}
}
