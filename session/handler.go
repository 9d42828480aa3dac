package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexanderho00001/SignWave/domain"
)

var (
	ErrMissingTokenStr         = "missing-token"
	ErrExpiredTokenStr         = "expired-token"
	ErrInvalidRequestFormatStr = "invalid-request-format"
	ErrInvalidNameStr          = "invalid-name"
	ErrUnknownStr              = "unknown-error"
)

// TokenManager issues and verifies the signed identity every room call
// carries. Identity is explicit, never read from ambient shared state.
type TokenManager interface {
	Generate(playerId, name string) (string, error)
	Verify(token string) (playerId string, name string, err error)
}

type sessionHandler struct {
	tokens       TokenManager
	cookieMaxAge time.Duration
}

func NewSessionHandler(tokens TokenManager, cookieMaxAge time.Duration) *sessionHandler {
	return &sessionHandler{tokens: tokens, cookieMaxAge: cookieMaxAge}
}

// StartSessionHandler mints an anonymous player identity. No password, no
// account: a fresh uuid bound to a display name inside a signed token.
func (sh *sessionHandler) StartSessionHandler(ctx *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" || len(name) > 32 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidNameStr})
		return
	}

	playerId := uuid.NewString()
	token, err := sh.tokens.Generate(playerId, name)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}

	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", token, int(sh.cookieMaxAge.Seconds()), "/", "", true, true)
	ctx.JSON(http.StatusCreated, gin.H{"playerId": playerId, "name": name})
}

func (sh *sessionHandler) RequireAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingTokenStr})
			return
		}

		playerId, name, err := sh.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, domain.ErrExpiredToken) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrExpiredTokenStr})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingTokenStr})
			return
		}

		ctx.Set("id", playerId)
		ctx.Set("name", name)
		ctx.Next()
	}
}
