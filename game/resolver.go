package game

import (
	"context"
	"errors"

	"github.com/alexanderho00001/SignWave/domain"
)

type ResolveOutcome int

const (
	RESOLVE_INCORRECT ResolveOutcome = iota
	RESOLVE_SCORED
	RESOLVE_FINISHED
	RESOLVE_STALE
)

// Resolve decides whether a submitted answer scores. Two clients may submit
// correct answers for the same problem within one polling window; the
// conditional write guarantees at most one of them scores that instance.
// Losing the race is not an error, the loser gets RESOLVE_STALE.
//
// snapshot is the challenge instance the caller last observed: the problem
// plus the room version it was read under. If the room has moved on at all
// (solved, skipped, finished, even redealt the same problem) the submission
// is stale, never scored.
func (s *RoomService) Resolve(ctx context.Context, code, playerId, submitted string, snapshot domain.ProblemSnapshot) (domain.Room, ResolveOutcome, error) {
	for attempt := 0; attempt < 2; attempt++ {
		room, err := s.store.GetRoomByCode(ctx, code)
		if err != nil {
			return domain.Room{}, RESOLVE_STALE, err
		}

		if room.IsFinished {
			return room, RESOLVE_STALE, nil
		}
		if room.Phase() != domain.PHASE_ACTIVE {
			return domain.Room{}, RESOLVE_STALE, domain.ErrInvalidState
		}
		if !room.IsParticipant(playerId) {
			return domain.Room{}, RESOLVE_STALE, domain.ErrInvalidInput
		}
		if !snapshot.Observed(&room) {
			return room, RESOLVE_STALE, nil
		}

		if !room.CurrentProblem.Matches(submitted) {
			return room, RESOLVE_INCORRECT, nil
		}

		outcome := RESOLVE_SCORED
		if playerId == room.HostId {
			room.HostScore++
		} else {
			room.GuestScore++
		}
		room.LastSolvedBy = playerId

		if room.HostScore >= room.GoalScore || room.GuestScore >= room.GoalScore {
			room.IsFinished = true
			room.CurrentProblem = nil
			outcome = RESOLVE_FINISHED
		} else {
			problem := s.problems.Generate()
			room.CurrentProblem = &problem
		}

		updated, err := s.store.UpdateRoom(ctx, room.Id, room.Version, room)
		if err == nil {
			return updated, outcome, nil
		}
		if errors.Is(err, domain.ErrVersionMismatch) {
			continue
		}
		return domain.Room{}, RESOLVE_STALE, err
	}

	// Both attempts lost to a concurrent write: someone else resolved this
	// instance first.
	return domain.Room{}, RESOLVE_STALE, nil
}
