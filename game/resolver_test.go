package game

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderho00001/SignWave/domain"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("correct answer scores and deals a new problem", func(t *testing.T) {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"))
		room := startedRoom(t, service, 3)

		updated, outcome, err := service.Resolve(ctx, room.RoomCode, "guest-1", "b", instanceOf(room))
		require.NoError(t, err)
		assert.Equal(t, RESOLVE_SCORED, outcome)
		assert.Equal(t, 1, updated.GuestScore)
		assert.Zero(t, updated.HostScore)
		assert.Equal(t, "guest-1", updated.LastSolvedBy)
		require.NotNil(t, updated.CurrentProblem)
		assert.Equal(t, "C", updated.CurrentProblem.Answer)
	})

	t.Run("incorrect answer changes nothing", func(t *testing.T) {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"))
		room := startedRoom(t, service, 3)

		updated, outcome, err := service.Resolve(ctx, room.RoomCode, "guest-1", "X", instanceOf(room))
		require.NoError(t, err)
		assert.Equal(t, RESOLVE_INCORRECT, outcome)
		assert.Zero(t, updated.GuestScore)

		live, err := service.Get(ctx, room.RoomCode)
		require.NoError(t, err)
		if diff := cmp.Diff(room, live); diff != "" {
			t.Errorf("room changed after incorrect answer (-want +got):\n%s", diff)
		}
	})

	t.Run("stale snapshot rejected without scoring", func(t *testing.T) {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"))
		room := startedRoom(t, service, 3)

		_, outcome, err := service.Resolve(ctx, room.RoomCode, "guest-1", "Z", domain.ProblemSnapshot{Problem: letterProblem("Z"), Version: room.Version})
		require.NoError(t, err)
		assert.Equal(t, RESOLVE_STALE, outcome)

		live, err := service.Get(ctx, room.RoomCode)
		require.NoError(t, err)
		assert.Zero(t, live.GuestScore)
		assert.Zero(t, live.HostScore)
	})

	t.Run("reaching the goal finishes the room", func(t *testing.T) {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"))
		room := startedRoom(t, service, 1)

		updated, outcome, err := service.Resolve(ctx, room.RoomCode, "host-1", "B", instanceOf(room))
		require.NoError(t, err)
		assert.Equal(t, RESOLVE_FINISHED, outcome)
		assert.True(t, updated.IsFinished)
		assert.Nil(t, updated.CurrentProblem)
		assert.Equal(t, "host-1", updated.Winner())
	})

	t.Run("resolver is a no-op on a finished room", func(t *testing.T) {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"))
		room := startedRoom(t, service, 1)
		snapshot := instanceOf(room)

		_, _, err := service.Resolve(ctx, room.RoomCode, "host-1", "B", snapshot)
		require.NoError(t, err)

		_, outcome, err := service.Resolve(ctx, room.RoomCode, "guest-1", "B", snapshot)
		require.NoError(t, err)
		assert.Equal(t, RESOLVE_STALE, outcome)
	})

	t.Run("outsider cannot resolve", func(t *testing.T) {
		service, _ := newTestService()
		room := startedRoom(t, service, 3)

		_, _, err := service.Resolve(ctx, room.RoomCode, "stranger", "B", instanceOf(room))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// Two clients submit correct answers for the same challenge instance inside
// one polling window. Exactly one may score it.
func TestResolve_AtMostOnceScoring(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"))
		room := startedRoom(t, service, 5)
		snapshot := instanceOf(room)

		outcomes := make([]ResolveOutcome, 2)
		errs := make([]error, 2)

		var wg sync.WaitGroup
		for i, player := range []string{"host-1", "guest-1"} {
			wg.Add(1)
			go func(i int, player string) {
				defer wg.Done()
				_, outcomes[i], errs[i] = service.Resolve(ctx, room.RoomCode, player, snapshot.Problem.Answer, snapshot)
			}(i, player)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		scored := 0
		for _, outcome := range outcomes {
			switch outcome {
			case RESOLVE_SCORED, RESOLVE_FINISHED:
				scored++
			case RESOLVE_STALE:
			default:
				t.Fatalf("unexpected outcome %v", outcome)
			}
		}
		assert.Equal(t, 1, scored)

		live, err := service.Get(ctx, room.RoomCode)
		require.NoError(t, err)
		assert.Equal(t, 1, live.HostScore+live.GuestScore)
	}
}

// The generator may deal the same problem twice in a row. A snapshot taken
// before the first score must not score the redealt copy again.
func TestResolve_RedealtProblemNeedsFreshSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service, _ := newTestService(letterProblem("A"), letterProblem("A"), letterProblem("A"))
	room := startedRoom(t, service, 5)
	prior := instanceOf(room)

	scored, outcome, err := service.Resolve(ctx, room.RoomCode, "host-1", prior.Problem.Answer, prior)
	require.NoError(t, err)
	require.Equal(t, RESOLVE_SCORED, outcome)
	require.NotNil(t, scored.CurrentProblem)
	require.Equal(t, prior.Problem, *scored.CurrentProblem)

	_, outcome, err = service.Resolve(ctx, room.RoomCode, "guest-1", prior.Problem.Answer, prior)
	require.NoError(t, err)
	assert.Equal(t, RESOLVE_STALE, outcome)

	live, err := service.Get(ctx, room.RoomCode)
	require.NoError(t, err)
	assert.Equal(t, 1, live.HostScore)
	assert.Zero(t, live.GuestScore)
}

// A skip request pinned to the pre-score snapshot must also miss the
// redealt copy.
func TestSkip_RedealtProblemNeedsFreshSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service, _ := newTestService(letterProblem("A"), letterProblem("A"), letterProblem("A"))
	room := startedRoom(t, service, 5)
	prior := instanceOf(room)

	_, outcome, err := service.Resolve(ctx, room.RoomCode, "host-1", prior.Problem.Answer, prior)
	require.NoError(t, err)
	require.Equal(t, RESOLVE_SCORED, outcome)

	_, err = service.Skip(ctx, room.RoomCode, "guest-1", prior)
	assert.ErrorIs(t, err, domain.ErrStaleProblem)
}

// Scenario: guest answers three consecutive problems before the host answers
// any. The room finishes with the guest as the winner.
func TestScenario_GuestSweepsToGoal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"), letterProblem("D"))
	room := startedRoom(t, service, 3)

	for i := 0; i < 3; i++ {
		var outcome ResolveOutcome
		var err error
		room, outcome, err = service.Resolve(ctx, room.RoomCode, "guest-1", room.CurrentProblem.Answer, instanceOf(room))
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, RESOLVE_SCORED, outcome)
		} else {
			assert.Equal(t, RESOLVE_FINISHED, outcome)
		}
	}

	assert.True(t, room.IsFinished)
	assert.Equal(t, 3, room.GuestScore)
	assert.Zero(t, room.HostScore)
	assert.Equal(t, "guest-1", room.Winner())
}

// Scenario: the host gives up mid-match. A detection result that arrives
// afterwards for the prior problem must not score.
func TestScenario_GiveUpThenLateDetection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service, _ := newTestService(letterProblem("A"), letterProblem("B"))
	room := startedRoom(t, service, 3)
	prior := instanceOf(room)

	_, _, err := service.Resolve(ctx, room.RoomCode, "guest-1", prior.Problem.Answer, prior)
	require.NoError(t, err)

	finished, err := service.GiveUp(ctx, room.RoomCode, "host-1")
	require.NoError(t, err)
	require.True(t, finished.IsFinished)

	_, outcome, err := service.Resolve(ctx, room.RoomCode, "guest-1", prior.Problem.Answer, prior)
	require.NoError(t, err)
	assert.Equal(t, RESOLVE_STALE, outcome)

	live, err := service.Get(ctx, room.RoomCode)
	require.NoError(t, err)
	assert.Equal(t, 1, live.GuestScore)
	assert.True(t, live.IsFinished)
	assert.Equal(t, "guest-1", live.Winner())
}

// Scores never decrease over a room's lifetime, whatever interleaving of
// resolves and skips happens.
func TestScoreMonotonicity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	service, _ := newTestService(letterProblem("A"), letterProblem("B"), letterProblem("C"))
	room := startedRoom(t, service, 20)

	prevHost, prevGuest := 0, 0
	players := []string{"host-1", "guest-1"}
	for i := 0; i < 30; i++ {
		live, err := service.Get(ctx, room.RoomCode)
		require.NoError(t, err)

		player := players[i%2]
		if i%5 == 0 {
			_, err = service.Skip(ctx, room.RoomCode, player, instanceOf(live))
			require.NoError(t, err)
		} else {
			answer := live.CurrentProblem.Answer
			if i%3 == 0 {
				answer = "wrong"
			}
			_, _, err = service.Resolve(ctx, room.RoomCode, player, answer, instanceOf(live))
			require.NoError(t, err)
		}

		live, err = service.Get(ctx, room.RoomCode)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, live.HostScore, prevHost)
		assert.GreaterOrEqual(t, live.GuestScore, prevGuest)
		prevHost, prevGuest = live.HostScore, live.GuestScore
	}
}
