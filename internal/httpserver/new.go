package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	tgDelivery "chat-relay/internal/relay/delivery/telegram"
	"chat-relay/pkg/log"
)

const DefaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Relay
	telegramHandler tgDelivery.Handler
	webhookPath     string

	readyCheck func(ctx context.Context) error
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	// Relay
	TelegramHandler tgDelivery.Handler
	WebhookPath     string

	// ReadyCheck backs /ready; nil means always ready.
	ReadyCheck func(ctx context.Context) error
}

// New creates a new HTTPServer instance with its routes registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = "/webhook/telegram"
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		telegramHandler: cfg.TelegramHandler,
		webhookPath:     cfg.WebhookPath,
		readyCheck:      cfg.ReadyCheck,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	srv.mapHandlers()

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
