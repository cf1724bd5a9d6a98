package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"heladeria-storefront/internal/api"
	"heladeria-storefront/internal/config"
	"heladeria-storefront/internal/db"
	"heladeria-storefront/internal/session"
	"heladeria-storefront/internal/webapp"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()

	var sessions session.Store
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		sessions = session.NewPostgres(pool)
		logger.Info("sessions backed by postgres")
	} else {
		sessions = session.NewMemory()
		logger.Info("sessions stored in memory, logins do not survive restart")
	}

	client := api.New(cfg.BackendBaseURL, logger)

	srv, err := webapp.New(cfg.HTTPAddr, logger, webapp.Deps{
		Auth:      client,
		Catalog:   client,
		Orders:    client,
		Customers: client,
		Sessions:  sessions,
	}, webapp.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitTimeout:  cfg.SubmitTimeout,
		SessionTTL:     cfg.SessionTTL,
		CookieSecure:   cfg.CookieSecure,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting web server on %s, backend %s", cfg.HTTPAddr, cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
