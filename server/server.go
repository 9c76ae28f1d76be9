package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tbxark/briefing"
	"github.com/tbxark/briefing/agent"
	"go.uber.org/zap"
)

type Flow = agent.FormFlow[briefing.FieldValues]

type Config struct {
	Addr       string
	SessionTTL time.Duration
	Origins    []string
}

// Server exposes a FormFlow over HTTP. The flow's dispatcher is expected
// to be a dispatch.CaptureSink so handlers can hand the link to the browser.
type Server struct {
	flow   *Flow
	config Config
	logger *zap.Logger
	engine *gin.Engine
}

func New(flow *Flow, config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(logger), CORS(config.Origins))

	s := &Server{flow: flow, config: config, logger: logger, engine: engine}
	engine.GET("/health", s.HealthCheck)
	engine.GET("/api/schema", s.Schema)
	engine.POST("/api/briefing", s.SubmitJSON)

	session := engine.Group("/", Session(config.SessionTTL))
	session.GET("/", s.ShowForm)
	session.POST("/", s.SubmitForm)
	session.GET("/api/session", s.SessionState)
	session.PATCH("/api/session/fields/:field", s.UpdateField)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
