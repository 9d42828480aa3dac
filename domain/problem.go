package domain

import (
	"strconv"
	"strings"
)

type ProblemType string

const (
	PROBLEM_ALPHABET ProblemType = "alphabet"
	PROBLEM_NUMBER   ProblemType = "number"
	PROBLEM_WORD     ProblemType = "word"
)

// Problem is the challenge both players race to sign.
type Problem struct {
	Type     ProblemType `json:"type"`
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
}

// ProblemSnapshot pins one challenge instance: the problem a client observed
// together with the room version it was read under. The value alone is not
// enough, the generator may deal the same problem twice in a row and the two
// deals are distinct instances.
type ProblemSnapshot struct {
	Problem Problem `json:"problem"`
	Version int64   `json:"version"`
}

// Observed reports whether the room still holds exactly this instance.
func (s ProblemSnapshot) Observed(r *Room) bool {
	return r.Version == s.Version && r.CurrentProblem != nil && *r.CurrentProblem == s.Problem
}

// Matches reports whether a submitted value counts as the canonical answer.
// Letters and words compare case-insensitively after trimming, numbers
// compare as parsed integers.
func (p Problem) Matches(submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}

	if p.Type == PROBLEM_NUMBER {
		want, err := strconv.Atoi(strings.TrimSpace(p.Answer))
		if err != nil {
			return false
		}
		got, err := strconv.Atoi(submitted)
		if err != nil {
			return false
		}
		return want == got
	}

	return strings.EqualFold(submitted, p.Answer)
}
