package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/alexanderho00001/SignWave/domain"
	"github.com/alexanderho00001/SignWave/game"
)

// RoomGateway is the participant's only view of the shared room. The two
// players never talk to each other, all coordination goes through here.
type RoomGateway interface {
	Get(ctx context.Context, code string) (domain.Room, error)
	Resolve(ctx context.Context, code, playerId, submitted string, snapshot domain.ProblemSnapshot) (domain.Room, game.ResolveOutcome, error)
}

type Frame struct {
	Image      []byte
	SequenceId string
}

// FrameSource hands out the latest camera frame. Capture itself is outside
// this package.
type FrameSource interface {
	Next(ctx context.Context) (Frame, error)
}

type Detection struct {
	Value      string
	Confidence float64
	OK         bool
}

type Classifier interface {
	Classify(ctx context.Context, frame Frame) (Detection, error)
}

type Feedback int

const (
	FEEDBACK_NONE Feedback = iota
	FEEDBACK_CORRECT
	FEEDBACK_INCORRECT
)

// Hooks are the UI seams. Every hook is optional.
type Hooks struct {
	OnRoom           func(domain.Room)
	OnProblemChanged func(domain.Problem)
	OnFeedback       func(Feedback)
	OnFinished       func(domain.Room)
}

func (h Hooks) room(r domain.Room) {
	if h.OnRoom != nil {
		h.OnRoom(r)
	}
}

func (h Hooks) problemChanged(p domain.Problem) {
	if h.OnProblemChanged != nil {
		h.OnProblemChanged(p)
	}
}

func (h Hooks) feedback(f Feedback) {
	if h.OnFeedback != nil {
		h.OnFeedback(f)
	}
}

func (h Hooks) finished(r domain.Room) {
	if h.OnFinished != nil {
		h.OnFinished(r)
	}
}

type LoopConfig struct {
	RoomCode string
	PlayerId string

	// PollInterval is how often the shared room is re-read. Zero means 2s.
	PollInterval time.Duration
	// Detection intervals per problem kind. Word recognition needs a longer
	// accumulation window than single-frame letter/number recognition.
	LetterDetectInterval time.Duration
	WordDetectInterval   time.Duration

	LetterThreshold float64
	WordThreshold   float64

	// DetectionRate caps classifier calls per second on top of the
	// intervals. Zero means 10/s.
	DetectionRate rate.Limit
}

func (cfg *LoopConfig) fillDefaults() {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.LetterDetectInterval <= 0 {
		cfg.LetterDetectInterval = 200 * time.Millisecond
	}
	if cfg.WordDetectInterval <= 0 {
		cfg.WordDetectInterval = 500 * time.Millisecond
	}
	if cfg.LetterThreshold <= 0 {
		cfg.LetterThreshold = 0.30
	}
	if cfg.WordThreshold <= 0 {
		cfg.WordThreshold = 0.60
	}
	if cfg.DetectionRate <= 0 {
		cfg.DetectionRate = 10
	}
}

// Loop is one participant's reconciliation loop: a slow room poll that tracks
// the shared state and a fast detection poll that feeds classifier output
// into answer resolution. The answered flag is a local debounce only, it
// saves round trips but correctness lives entirely in the resolver's
// conditional write.
type Loop struct {
	rooms      RoomGateway
	classifier Classifier
	frames     FrameSource
	cfg        LoopConfig
	hooks      Hooks
	limiter    *rate.Limiter

	mu       sync.Mutex
	current  *domain.Problem
	version  int64
	answered bool
}

func NewLoop(rooms RoomGateway, classifier Classifier, frames FrameSource, cfg LoopConfig, hooks Hooks) *Loop {
	cfg.fillDefaults()
	return &Loop{
		rooms:      rooms,
		classifier: classifier,
		frames:     frames,
		cfg:        cfg,
		hooks:      hooks,
		limiter:    rate.NewLimiter(cfg.DetectionRate, 1),
	}
}

// Run blocks until the room finishes or ctx is cancelled. Both polls stop
// and release their timers on the way out.
func (l *Loop) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.roomPoll(ctx, cancel)
	}()
	go func() {
		defer wg.Done()
		l.detectionPoll(ctx)
	}()
	wg.Wait()
}

func (l *Loop) roomPoll(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if done := l.pollOnce(ctx, cancel); done {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (l *Loop) pollOnce(ctx context.Context, cancel context.CancelFunc) bool {
	room, err := l.rooms.Get(ctx, l.cfg.RoomCode)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		// A single failed iteration is survivable, try again next tick.
		slog.Warn("room poll failed", "room_code", l.cfg.RoomCode, "err", err)
		return false
	}

	l.hooks.room(room)

	l.mu.Lock()
	changed := instanceChanged(l.current, l.version, &room)
	if changed {
		l.current = room.CurrentProblem
		l.version = room.Version
		l.answered = false
	}
	l.mu.Unlock()

	if changed && room.CurrentProblem != nil {
		l.hooks.feedback(FEEDBACK_NONE)
		l.hooks.problemChanged(*room.CurrentProblem)
	}

	if room.IsFinished {
		l.hooks.finished(room)
		cancel()
		return true
	}
	return false
}

// instanceChanged detects a new challenge instance. Every room write bumps
// Version, so a redeal of the same problem value still reads as a change.
func instanceChanged(prev *domain.Problem, prevVersion int64, room *domain.Room) bool {
	if prev == nil && room.CurrentProblem == nil {
		return false
	}
	if prev == nil || room.CurrentProblem == nil {
		return true
	}
	return prevVersion != room.Version || *prev != *room.CurrentProblem
}

func (l *Loop) detectionPoll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.detectInterval()):
		}
		l.detectOnce(ctx)
	}
}

func (l *Loop) detectInterval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil && l.current.Type == domain.PROBLEM_WORD {
		return l.cfg.WordDetectInterval
	}
	return l.cfg.LetterDetectInterval
}

func (l *Loop) threshold(t domain.ProblemType) float64 {
	if t == domain.PROBLEM_WORD {
		return l.cfg.WordThreshold
	}
	return l.cfg.LetterThreshold
}

func (l *Loop) detectOnce(ctx context.Context) {
	l.mu.Lock()
	if l.current == nil || l.answered {
		l.mu.Unlock()
		return
	}
	snapshot := domain.ProblemSnapshot{Problem: *l.current, Version: l.version}
	l.mu.Unlock()

	if !l.limiter.Allow() {
		return
	}

	frame, err := l.frames.Next(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Debug("no camera frame available", "err", err)
		}
		return
	}

	detection, err := l.classifier.Classify(ctx, frame)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("classifier call failed", "err", err)
		}
		return
	}
	if !detection.OK || detection.Confidence < l.threshold(snapshot.Problem.Type) {
		return
	}

	// Lock before submitting so an overlapping detection tick cannot flood
	// the resolver with duplicates for the same instance.
	l.mu.Lock()
	if l.answered || l.current == nil || l.version != snapshot.Version || *l.current != snapshot.Problem {
		l.mu.Unlock()
		return
	}
	l.answered = true
	l.mu.Unlock()

	room, outcome, err := l.rooms.Resolve(ctx, l.cfg.RoomCode, l.cfg.PlayerId, detection.Value, snapshot)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("answer resolution failed", "room_code", l.cfg.RoomCode, "err", err)
		}
		// The submission never landed, allow a retry on a later tick.
		l.mu.Lock()
		if l.current != nil && l.version == snapshot.Version && *l.current == snapshot.Problem {
			l.answered = false
		}
		l.mu.Unlock()
		return
	}

	switch outcome {
	case game.RESOLVE_SCORED, game.RESOLVE_FINISHED:
		l.hooks.feedback(FEEDBACK_CORRECT)
		l.hooks.room(room)
	default:
		// A lost race reads the same as a miss, the next room poll will
		// bring the new problem either way.
		l.hooks.feedback(FEEDBACK_INCORRECT)
	}
}
