package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderho00001/SignWave/domain"
)

// RoomService owns the match lifecycle: create, join, start, skip, give up
// and answer resolution. Every mutation goes through the store's conditional
// write so two clients polling the same room can never lose an update.
type RoomService struct {
	store    RoomStore
	problems ProblemGenerator
	codes    RoomCodeGenerator
}

func NewRoomService(store RoomStore, problems ProblemGenerator, codes RoomCodeGenerator) *RoomService {
	return &RoomService{
		store:    store,
		problems: problems,
		codes:    codes,
	}
}

// Create opens a room in the waiting phase with the first problem already
// seeded, so starting the match later is a flag flip plus a regenerate.
// A room code collision is retried once with a fresh code.
func (s *RoomService) Create(ctx context.Context, hostId, hostName string, goalScore int) (domain.Room, error) {
	if hostId == "" || strings.TrimSpace(hostName) == "" {
		return domain.Room{}, domain.ErrInvalidInput
	}
	if !domain.ValidGoalScore(goalScore) {
		return domain.Room{}, domain.ErrInvalidInput
	}

	for attempt := 0; attempt < 2; attempt++ {
		code := s.codes.Generate()
		if !domain.ValidRoomCode(code) {
			return domain.Room{}, domain.ErrInvalidInput
		}

		problem := s.problems.Generate()
		room := domain.Room{
			Id:             uuid.NewString(),
			RoomCode:       strings.ToUpper(code),
			HostId:         hostId,
			HostName:       strings.TrimSpace(hostName),
			GoalScore:      goalScore,
			CurrentProblem: &problem,
		}

		created, err := s.store.CreateRoom(ctx, room)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, domain.ErrConflict) {
			slog.Warn("room code collision, regenerating", "room_code", room.RoomCode)
			continue
		}
		return domain.Room{}, err
	}

	return domain.Room{}, domain.ErrConflict
}

// Join admits a guest into a waiting room. The conditional write guarantees
// that of two concurrent joins exactly one seat is granted.
func (s *RoomService) Join(ctx context.Context, code, guestId, guestName string) (domain.Room, error) {
	if guestId == "" || strings.TrimSpace(guestName) == "" {
		return domain.Room{}, domain.ErrInvalidInput
	}

	for attempt := 0; attempt < 2; attempt++ {
		room, err := s.store.GetRoomByCode(ctx, code)
		if err != nil {
			return domain.Room{}, err
		}
		if guestId == room.HostId {
			return domain.Room{}, domain.ErrInvalidInput
		}
		switch room.Phase() {
		case domain.PHASE_WAITING:
		case domain.PHASE_READY_TO_START:
			return domain.Room{}, domain.ErrConflict
		default:
			return domain.Room{}, domain.ErrInvalidState
		}

		room.GuestId = guestId
		room.GuestName = strings.TrimSpace(guestName)

		updated, err := s.store.UpdateRoom(ctx, room.Id, room.Version, room)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, domain.ErrVersionMismatch) {
			continue
		}
		return domain.Room{}, err
	}

	// Lost the seat race twice, somebody else is already in.
	return domain.Room{}, domain.ErrConflict
}

// Start flips the room into the active phase with a fresh problem. Host only.
func (s *RoomService) Start(ctx context.Context, code, playerId string) (domain.Room, error) {
	for attempt := 0; attempt < 2; attempt++ {
		room, err := s.store.GetRoomByCode(ctx, code)
		if err != nil {
			return domain.Room{}, err
		}
		if room.Phase() != domain.PHASE_READY_TO_START {
			return domain.Room{}, domain.ErrInvalidState
		}
		if playerId != room.HostId {
			return domain.Room{}, domain.ErrInvalidInput
		}

		problem := s.problems.Generate()
		room.IsStarted = true
		room.CurrentProblem = &problem
		room.LastSolvedBy = ""

		updated, err := s.store.UpdateRoom(ctx, room.Id, room.Version, room)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, domain.ErrVersionMismatch) {
			continue
		}
		return domain.Room{}, err
	}

	return domain.Room{}, domain.ErrInvalidState
}

// Skip throws the current problem away and deals a new one without scoring.
// The snapshot guards against skipping an instance the caller never saw.
func (s *RoomService) Skip(ctx context.Context, code, playerId string, snapshot domain.ProblemSnapshot) (domain.Room, error) {
	for attempt := 0; attempt < 2; attempt++ {
		room, err := s.store.GetRoomByCode(ctx, code)
		if err != nil {
			return domain.Room{}, err
		}
		if room.Phase() != domain.PHASE_ACTIVE {
			return domain.Room{}, domain.ErrInvalidState
		}
		if !room.IsParticipant(playerId) {
			return domain.Room{}, domain.ErrInvalidInput
		}
		if !snapshot.Observed(&room) {
			return domain.Room{}, domain.ErrStaleProblem
		}

		problem := s.problems.Generate()
		room.CurrentProblem = &problem
		room.LastSolvedBy = ""
		if playerId == room.HostId {
			room.HostSkipped = true
		} else {
			room.GuestSkipped = true
		}

		updated, err := s.store.UpdateRoom(ctx, room.Id, room.Version, room)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, domain.ErrVersionMismatch) {
			continue
		}
		return domain.Room{}, err
	}

	return domain.Room{}, domain.ErrStaleProblem
}

// GiveUp finishes the match immediately regardless of score. The other
// player wins.
func (s *RoomService) GiveUp(ctx context.Context, code, playerId string) (domain.Room, error) {
	for attempt := 0; attempt < 2; attempt++ {
		room, err := s.store.GetRoomByCode(ctx, code)
		if err != nil {
			return domain.Room{}, err
		}
		if room.Phase() != domain.PHASE_ACTIVE {
			return domain.Room{}, domain.ErrInvalidState
		}
		if !room.IsParticipant(playerId) {
			return domain.Room{}, domain.ErrInvalidInput
		}

		if playerId == room.HostId {
			room.HostGivenUp = true
		} else {
			room.GuestGivenUp = true
		}
		room.IsFinished = true
		room.CurrentProblem = nil

		updated, err := s.store.UpdateRoom(ctx, room.Id, room.Version, room)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, domain.ErrVersionMismatch) {
			continue
		}
		return domain.Room{}, err
	}

	return domain.Room{}, domain.ErrInvalidState
}

func (s *RoomService) Get(ctx context.Context, code string) (domain.Room, error) {
	return s.store.GetRoomByCode(ctx, code)
}

func (s *RoomService) ListAvailable(ctx context.Context, limit int) ([]domain.Room, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListAvailableRooms(ctx, limit)
}
