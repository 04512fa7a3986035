package main

import (
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FunnyValentin/palabra-secreta-websocket-server/config"
	"github.com/FunnyValentin/palabra-secreta-websocket-server/crypto"
	"github.com/FunnyValentin/palabra-secreta-websocket-server/game"
	"github.com/FunnyValentin/palabra-secreta-websocket-server/words"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

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
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	corpus, err := words.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading word corpus")
	}

	hasher := crypto.NewArgon2idHasher(3, 64*1024, 32, 16, 1)
	hub := game.NewHub(logger)
	registry := game.NewRegistry()
	service := game.NewService(registry, hasher, corpus, words.NewSelector(corpus), hub, logger)
	handler := game.NewHandler(service, hub, logger)

	r := CreateServer(cfg.AllowedOrigins)
	handler.Register(r)

	logger.Info().Str("port", cfg.Port).Msg("server started")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
