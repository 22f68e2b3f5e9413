package main

import (
	"context"
	"log"
	"os"

	"storefront-tagging/internal/config"
	"storefront-tagging/internal/db"
	"storefront-tagging/internal/repository/settings"
	"storefront-tagging/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := settings.NewPostgres(pool).EnsureDefaults(ctx); err != nil {
		logger.Fatalf("ensure default settings: %v", err)
	}
	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
