package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dualion/controldiners/internal/db"
	"github.com/dualion/controldiners/internal/handlers"
	"github.com/dualion/controldiners/internal/handlers/middleware"
	"github.com/dualion/controldiners/internal/logger"
	"github.com/dualion/controldiners/internal/repository/postgres"
	"github.com/dualion/controldiners/internal/service/proces"
	"github.com/dualion/controldiners/internal/service/quantitat"
	"github.com/dualion/controldiners/internal/service/usuari"
	"github.com/dualion/controldiners/internal/service/usuarisproces"
)

type ServerApp struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	Handler         http.Handler

	logger logger.Logger
	pool   *pgxpool.Pool
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	services := handlers.Services{
		Proces:        proces.NewService(storage),
		Quantitat:     quantitat.NewService(storage.Quantitat()),
		Usuari:        usuari.NewService(storage),
		UsuarisProces: usuarisproces.NewService(storage),
	}

	mux := handlers.NewRouter(services, middleware.NewMetrics(), logger)

	return &ServerApp{
		ListenAddr:      c.ListenAddr,
		ShutdownTimeout: c.ShutdownTimeout,
		Handler:         mux,
		logger:          logger,
		pool:            pool,
	}, nil
}

// Close releases database connections
func (s *ServerApp) Close() {
	s.pool.Close()
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
