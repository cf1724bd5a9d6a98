package webapp

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Options tune router behavior beyond its dependencies.
type Options struct {
	AllowedOrigins []string
	SubmitTimeout  time.Duration
	SessionTTL     time.Duration
	CookieSecure   bool
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

// New builds a Server with the full route table.
func New(addr string, logger *logrus.Logger, deps Deps, opts Options) (*Server, error) {
	router, err := buildRouter(logger, deps, opts)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
