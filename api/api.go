package api

import (
	"errors"
	"log/slog"
	"net"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/cultura/api/mcp"
	"github.com/papercomputeco/cultura/pkg/facts"
)

// Server is the API server for the cultura daemon
type Server struct {
	config Config
	facts  *facts.Service
	logger *slog.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The fact service is injected so the daemon scheduler and the API share
// one store.
func NewServer(config Config, service *facts.Service, logger *slog.Logger) (*Server, error) {
	if service == nil {
		return nil, errors.New("fact service is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		facts:  service,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/facts/stats", s.handleStats)
	app.Post("/facts/random", s.handleRandom)
	app.Post("/facts/update", s.handleUpdate)

	if !config.DisableMCP {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Facts:  service,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		slog.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Serve runs the API server on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting API server",
		slog.String("listen", ln.Addr().String()),
	)
	return s.app.Listener(ln)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
