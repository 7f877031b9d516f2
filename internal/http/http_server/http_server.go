package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abrar71/swaggerfilesv2" // swagger embed files

	"github.com/yashwanthanumula/puzzlechat/internal/http/mediahandler"
	"github.com/yashwanthanumula/puzzlechat/internal/http/playerhandler"
	"github.com/yashwanthanumula/puzzlechat/internal/http/roomhandler"
	"github.com/yashwanthanumula/puzzlechat/internal/services/player"
	"github.com/yashwanthanumula/puzzlechat/internal/services/room"
	"github.com/yashwanthanumula/puzzlechat/internal/ws"
)

type httpServer struct {
	listenPort     uint16
	srv            http.Server
	ln             net.Listener
	roomService    room.IRoomService
	playerService  player.IPlayerService
	wsSrv          *ws.Server
	mediaDir       string
	maxUploadBytes int64
	ctx            context.Context
}

func NewHttpServer(
	ctx context.Context,
	listenPort uint16,
	wsSrv *ws.Server,
	roomService room.IRoomService,
	playerService player.IPlayerService,
	mediaDir string,
	maxUploadBytes int64,
) *httpServer {
	return &httpServer{
		listenPort:     listenPort,
		wsSrv:          wsSrv,
		roomService:    roomService,
		playerService:  playerService,
		mediaDir:       mediaDir,
		maxUploadBytes: maxUploadBytes,
		ctx:            ctx,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()

	// Swagger UI and API specs
	routerEngine.StaticFS("/swagger-apis", http.FS(swaggerfilesv2.FS))
	routerEngine.Static("/api-specs", "api_specs")

	// Uploaded puzzle images
	routerEngine.Static("/media", h.mediaDir)

	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	// REST API
	roomhandler.New(h.roomService).Register(routerEngine)
	playerhandler.New(h.playerService).Register(routerEngine)
	mediahandler.New(h.mediaDir, h.maxUploadBytes).Register(routerEngine)

	routerEngine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	h.srv = http.Server{
		Handler: routerEngine,
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
