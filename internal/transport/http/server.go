package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/config"
	"github.com/vovakirdan/ludo-relay/internal/core"
	"github.com/vovakirdan/ludo-relay/internal/metrics"
)

// NewServer builds the HTTP server: liveness, metrics and room API on gin,
// the WebSocket endpoint on a plain mux in front of it.
func NewServer(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger, m *metrics.Metrics) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/", Status)
	router.GET("/health", Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	rooms := NewRoomHandlers(hub, cfg.WebAppURL, logger)
	router.POST("/api/rooms", rooms.CreateRoom)

	ws := NewWSHandler(hub, cfg, logger)
	mux := stdhttp.NewServeMux()
	mux.Handle("GET /ws", ws)
	mux.Handle("GET /ws/{room}/{name}", ws)
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           newCORS(cfg.AllowedOrigins).Handler(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
