package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/hongminglow/authgate/internal/auth"
	"github.com/hongminglow/authgate/internal/config"
	"github.com/hongminglow/authgate/internal/http/handlers"
	"github.com/hongminglow/authgate/internal/http/respond"
	"github.com/hongminglow/authgate/internal/middleware"
	"github.com/hongminglow/authgate/internal/storage"
	"github.com/hongminglow/authgate/internal/web"
)

const shutdownTimeout = 15 * time.Second

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
	log   zerolog.Logger
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, logger zerolog.Logger) (*Server, error) {
	handler, err := NewHandler(cfg, store, logger)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, log: logger.With().Str("server.addr", httpServer.Addr).Logger()}, nil
}

// NewHandler builds the full middleware and route tree.
func NewHandler(cfg config.Config, store storage.UserStore, logger zerolog.Logger) (http.Handler, error) {
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		logger.Error().Interface("panic", v).Str("path", r.URL.Path).Msg("handler panicked")
		respond.Error(w, r, http.StatusInternalServerError, "Server error")
	}

	handlers.NewHealthHandler(time.Now()).Register(router)
	handlers.NewAuthHandler(store, tokens, hasher).Register(router)
	handlers.NewPagesHandler(web.FS()).Register(router, web.Pages...)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, router)), nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Msg("starting HTTP server")
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("initiating shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("shutdown completed")
	return nil
}
