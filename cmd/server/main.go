package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alexanderho00001/SignWave/config"
	"github.com/alexanderho00001/SignWave/crypto"
	"github.com/alexanderho00001/SignWave/game"
	"github.com/alexanderho00001/SignWave/migrations"
	"github.com/alexanderho00001/SignWave/progress"
	"github.com/alexanderho00001/SignWave/session"
	"github.com/alexanderho00001/SignWave/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
	}))

	return r
}

func main() {

	// logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if err := migrations.Migrate(cfg.PostgresURL); err != nil {
		log.Fatal(err)
	}

	// Dependencies
	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	tokenAge := time.Hour * 24 * 7 // 7 days
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, tokenAge)
	sessionHandler := session.NewSessionHandler(tokenManager, tokenAge)

	roomService := game.NewRoomService(pgRepo, game.NewGenerator(), game.NewCodegen())
	roomHandler := game.NewRoomHandler(roomService)
	progressHandler := progress.NewProgressHandler(pgRepo)

	r := CreateServer(cfg.AllowedOrigins)

	r.POST("/session", sessionHandler.StartSessionHandler)

	{
		rooms := r.Group("/rooms")
		rooms.Use(sessionHandler.RequireAuthMiddleware())

		rooms.POST("", roomHandler.CreateRoomHandler)
		rooms.GET("", roomHandler.ListRoomsHandler)
		rooms.GET("/:code", roomHandler.GetRoomHandler)
		rooms.POST("/:code/join", roomHandler.JoinRoomHandler)
		rooms.POST("/:code/start", roomHandler.StartRoomHandler)
		rooms.POST("/:code/answer", roomHandler.AnswerHandler)
		rooms.POST("/:code/skip", roomHandler.SkipHandler)
		rooms.POST("/:code/giveup", roomHandler.GiveUpHandler)
	}

	{
		lessons := r.Group("/")
		lessons.Use(sessionHandler.RequireAuthMiddleware())

		lessons.GET("/lessons", progressHandler.ListLessonsHandler)
		lessons.GET("/progress", progressHandler.GetProgressHandler)
		lessons.PUT("/progress/:slug", progressHandler.PutProgressHandler)
	}

	r.Run(":5000")
}
