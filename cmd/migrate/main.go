package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"heladeria-storefront/internal/config"
	"heladeria-storefront/internal/db"
	"heladeria-storefront/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.DBConnString == "" {
		logger.Fatal("DB_DSN must be set to run migrations")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Info("migrations applied")
}
