package game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderho00001/SignWave/domain"
)

var (
	ErrUnauthenticatedStr      = "unauthenticated"
	ErrInvalidRequestFormatStr = "invalid-request-format"
	ErrInvalidInputStr         = "invalid-input"
	ErrRoomNotFoundStr         = "room-not-found"
	ErrRoomConflictStr         = "room-conflict"
	ErrInvalidStateStr         = "invalid-state"
	ErrUnknownStr              = "unknown-error"
)

// RoomAPI is what the HTTP layer needs from the room service.
type RoomAPI interface {
	Create(ctx context.Context, hostId, hostName string, goalScore int) (domain.Room, error)
	Join(ctx context.Context, code, guestId, guestName string) (domain.Room, error)
	Start(ctx context.Context, code, playerId string) (domain.Room, error)
	Skip(ctx context.Context, code, playerId string, snapshot domain.ProblemSnapshot) (domain.Room, error)
	GiveUp(ctx context.Context, code, playerId string) (domain.Room, error)
	Resolve(ctx context.Context, code, playerId, submitted string, snapshot domain.ProblemSnapshot) (domain.Room, ResolveOutcome, error)
	Get(ctx context.Context, code string) (domain.Room, error)
	ListAvailable(ctx context.Context, limit int) ([]domain.Room, error)
}

type RoomHandler struct {
	rooms RoomAPI
}

func NewRoomHandler(rooms RoomAPI) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

func (h *RoomHandler) playerId(ctx *gin.Context) (string, bool) {
	id := ctx.GetString("id")
	if id == "" {
		slog.Error("Unexpected error, id not found. What is the middleware doing?",
			"ip", ctx.ClientIP(),
			"user_agent", ctx.Request.UserAgent(),
		)
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticatedStr})
		return "", false
	}
	return id, true
}

func abortWithDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidInputStr})
	case errors.Is(err, domain.ErrInvalidState):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidStateStr})
	case errors.Is(err, domain.ErrRoomNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFoundStr})
	case errors.Is(err, domain.ErrConflict):
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": ErrRoomConflictStr})
	default:
		slog.Error("room operation failed", "err", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
	}
}

func (h *RoomHandler) CreateRoomHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	var body struct {
		Name      string `json:"name"`
		GoalScore int    `json:"goalScore"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	room, err := h.rooms.Create(ctx.Request.Context(), id, body.Name, body.GoalScore)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) JoinRoomHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	room, err := h.rooms.Join(ctx.Request.Context(), ctx.Param("code"), id, body.Name)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

func (h *RoomHandler) StartRoomHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	room, err := h.rooms.Start(ctx.Request.Context(), ctx.Param("code"), id)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

func (h *RoomHandler) AnswerHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	var body struct {
		Answer  string         `json:"answer"`
		Problem domain.Problem `json:"problem"`
		Version int64          `json:"version"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	snapshot := domain.ProblemSnapshot{Problem: body.Problem, Version: body.Version}
	room, outcome, err := h.rooms.Resolve(ctx.Request.Context(), ctx.Param("code"), id, body.Answer, snapshot)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}

	// A lost race is deliberately indistinguishable from a wrong answer,
	// racing is an expected outcome, not an error.
	result := "incorrect"
	switch outcome {
	case RESOLVE_SCORED:
		result = "scored"
	case RESOLVE_FINISHED:
		result = "finished"
	}
	ctx.JSON(http.StatusOK, gin.H{"result": result, "room": room})
}

func (h *RoomHandler) SkipHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	var body struct {
		Problem domain.Problem `json:"problem"`
		Version int64          `json:"version"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	snapshot := domain.ProblemSnapshot{Problem: body.Problem, Version: body.Version}
	room, err := h.rooms.Skip(ctx.Request.Context(), ctx.Param("code"), id, snapshot)
	if err != nil {
		if errors.Is(err, domain.ErrStaleProblem) {
			// Someone resolved or skipped it first, hand back the live room.
			live, getErr := h.rooms.Get(ctx.Request.Context(), ctx.Param("code"))
			if getErr != nil {
				abortWithDomainError(ctx, getErr)
				return
			}
			ctx.JSON(http.StatusOK, live)
			return
		}
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

func (h *RoomHandler) GiveUpHandler(ctx *gin.Context) {
	id, ok := h.playerId(ctx)
	if !ok {
		return
	}

	room, err := h.rooms.GiveUp(ctx.Request.Context(), ctx.Param("code"), id)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

func (h *RoomHandler) GetRoomHandler(ctx *gin.Context) {
	if _, ok := h.playerId(ctx); !ok {
		return
	}

	room, err := h.rooms.Get(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, room)
}

func (h *RoomHandler) ListRoomsHandler(ctx *gin.Context) {
	if _, ok := h.playerId(ctx); !ok {
		return
	}

	rooms, err := h.rooms.ListAvailable(ctx.Request.Context(), 20)
	if err != nil {
		abortWithDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rooms)
}
