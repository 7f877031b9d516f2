package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yashwanthanumula/puzzlechat/internal/config"
	"github.com/yashwanthanumula/puzzlechat/internal/database/db_client"
	"github.com/yashwanthanumula/puzzlechat/internal/http/http_server"
	"github.com/yashwanthanumula/puzzlechat/internal/redis/redis_client"
	"github.com/yashwanthanumula/puzzlechat/internal/services/player"
	"github.com/yashwanthanumula/puzzlechat/internal/services/room"
	"github.com/yashwanthanumula/puzzlechat/internal/syncsessions"
	"github.com/yashwanthanumula/puzzlechat/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Redis (hot session state)
	redisClient, err := redis_client.NewRedisClient(cfg.RedisSessionsHost, int(cfg.RedisSessionsPort))
	if err != nil {
		Log.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()
	Log.Debug("Redis client created successfully")

	// 4. Postgres db client (room/player documents)
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
	if err != nil {
		Log.Fatal("pg-open", zap.Error(err))
	}
	defer pgDb.Close()

	// 5. Services
	roomService := room.NewRoomService(pgDb)
	playerService := player.NewPlayerService(redisClient, pgDb,
		time.Duration(cfg.SessionTTLHours)*time.Hour)

	// 6. Background: session last-active synchroniser
	syncsessions.Run(ctx, redisClient, pgDb)

	// 7. WebSockets: registry + membership hub + event server
	registry := ws.NewRegistry()
	hub := ws.NewHub()
	wsSrv := ws.NewServer(hub, registry)

	// 8. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv,
		roomService, playerService, cfg.MediaDir, cfg.MaxUploadBytes)

	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()

	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
