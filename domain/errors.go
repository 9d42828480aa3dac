package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid-input")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid-state")
	ErrRoomNotFound = errors.New("room-not-found")
	ErrStaleProblem = errors.New("stale-problem")
)

var ErrLessonNotFound = errors.New("lesson-not-found")

var (
	ErrVersionMismatch      = errors.New("version-mismatch")
	UnexpectedDatabaseError = errors.New("unexpected-database-error")
)

var (
	TokenError               = errors.New("token-error")
	ErrInvalidSigningAlg     = errors.New("invalid-signing-alg")
	ErrExpiredToken          = errors.New("expired-token")
	ErrInvalidTokenSignature = errors.New("invalid-token-signature")
	ErrCorruptedToken        = errors.New("corrupted-token")
)
