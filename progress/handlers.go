package progress

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
	ErrLessonNotFoundStr       = "lesson-not-found"
	ErrUnknownStr              = "unknown-error"
)

type ProgressStore interface {
	ListLessons(ctx context.Context) ([]domain.Lesson, error)
	GetProgress(ctx context.Context, userId string) ([]domain.LessonProgress, error)
	UpsertProgress(ctx context.Context, userId, lessonSlug string, completed bool, lastScore *float64) (domain.LessonProgress, error)
}

type ProgressHandler struct {
	store ProgressStore
}

func NewProgressHandler(store ProgressStore) *ProgressHandler {
	return &ProgressHandler{store: store}
}

func (h *ProgressHandler) userId(ctx *gin.Context) (string, bool) {
	id := ctx.GetString("id")
	if id == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticatedStr})
		return "", false
	}
	return id, true
}

func (h *ProgressHandler) ListLessonsHandler(ctx *gin.Context) {
	lessons, err := h.store.ListLessons(ctx.Request.Context())
	if err != nil {
		slog.Error("listing lessons failed", "err", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}

func (h *ProgressHandler) GetProgressHandler(ctx *gin.Context) {
	id, ok := h.userId(ctx)
	if !ok {
		return
	}

	progress, err := h.store.GetProgress(ctx.Request.Context(), id)
	if err != nil {
		slog.Error("fetching progress failed", "err", err, "user_id", id)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) PutProgressHandler(ctx *gin.Context) {
	id, ok := h.userId(ctx)
	if !ok {
		return
	}

	var body struct {
		Completed bool     `json:"completed"`
		LastScore *float64 `json:"lastScore"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	updated, err := h.store.UpsertProgress(ctx.Request.Context(), id, ctx.Param("slug"), body.Completed, body.LastScore)
	if err != nil {
		if errors.Is(err, domain.ErrLessonNotFound) {
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrLessonNotFoundStr})
			return
		}
		slog.Error("updating progress failed", "err", err, "user_id", id)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}
