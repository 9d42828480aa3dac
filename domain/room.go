package domain

import "time"

type RoomPhase int

const (
	PHASE_WAITING RoomPhase = iota
	PHASE_READY_TO_START
	PHASE_ACTIVE
	PHASE_FINISHED
)

const (
	RoomCodeLength = 8
	MinGoalScore   = 1
	MaxGoalScore   = 20
)

// Room is the shared record one two-player match lives in. All cross-client
// coordination goes through conditional writes keyed on Version; nothing in
// here is safe to mutate with a plain read-then-write.
type Room struct {
	Id             string    `json:"id"`
	RoomCode       string    `json:"roomCode"`
	HostId         string    `json:"hostId"`
	GuestId        string    `json:"guestId"`
	HostName       string    `json:"hostName"`
	GuestName      string    `json:"guestName"`
	IsStarted      bool      `json:"isStarted"`
	IsFinished     bool      `json:"isFinished"`
	HostScore      int       `json:"hostScore"`
	GuestScore     int       `json:"guestScore"`
	GoalScore      int       `json:"goalScore"`
	CurrentProblem *Problem  `json:"currentProblem,omitempty"`
	HostGivenUp    bool      `json:"hostGivenUp"`
	GuestGivenUp   bool      `json:"guestGivenUp"`
	HostSkipped    bool      `json:"hostSkipped"`
	GuestSkipped   bool      `json:"guestSkipped"`
	LastSolvedBy   string    `json:"lastSolvedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int64     `json:"version"`
}

// Phase derives the lifecycle state from the stored flags. There is no
// separate stored enum, the combination must stay consistent.
func (r *Room) Phase() RoomPhase {
	switch {
	case r.IsFinished:
		return PHASE_FINISHED
	case r.IsStarted:
		return PHASE_ACTIVE
	case r.GuestId != "":
		return PHASE_READY_TO_START
	default:
		return PHASE_WAITING
	}
}

func (r *Room) IsParticipant(playerId string) bool {
	return playerId != "" && (playerId == r.HostId || playerId == r.GuestId)
}

// Winner returns the winning player's id, or "" for a tie. A give-up hands
// the win to the other player regardless of score.
func (r *Room) Winner() string {
	if !r.IsFinished {
		return ""
	}
	switch {
	case r.HostGivenUp:
		return r.GuestId
	case r.GuestGivenUp:
		return r.HostId
	case r.HostScore > r.GuestScore:
		return r.HostId
	case r.GuestScore > r.HostScore:
		return r.GuestId
	default:
		return ""
	}
}

func ValidGoalScore(goal int) bool {
	return goal >= MinGoalScore && goal <= MaxGoalScore
}

// ValidRoomCode accepts exactly 8 alphanumeric characters. Codes are
// case-insensitive and stored upper-cased.
func ValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, c := range code {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
