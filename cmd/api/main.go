package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-tagging/internal/config"
	"storefront-tagging/internal/db"
	"storefront-tagging/internal/httpserver"
	cartrepo "storefront-tagging/internal/repository/cart"
	categoryrepo "storefront-tagging/internal/repository/category"
	orderrepo "storefront-tagging/internal/repository/order"
	productrepo "storefront-tagging/internal/repository/product"
	settingsrepo "storefront-tagging/internal/repository/settings"
	userrepo "storefront-tagging/internal/repository/user"
	"storefront-tagging/internal/tagging"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	settingsRepo := settingsrepo.NewPostgres(dbpool)
	if err := settingsRepo.EnsureDefaults(ctx); err != nil {
		logger.Fatalf("ensure default settings: %v", err)
	}

	renderer, err := tagging.NewRenderer()
	if err != nil {
		logger.Fatalf("init renderer: %v", err)
	}
	taggingSvc := tagging.New(tagging.Deps{
		Products: productrepo.NewPostgres(dbpool, logger),
		Terms:    categoryrepo.NewPostgres(dbpool),
		Carts:    cartrepo.NewPostgres(dbpool),
		Orders:   orderrepo.NewPostgres(dbpool, logger),
		Users:    userrepo.NewPostgres(dbpool),
		Settings: settingsRepo,
		Renderer: renderer,
	}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Tagging:       taggingSvc,
		Settings:      settingsRepo,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTTTL,
		ShopOrigins:   cfg.ShopOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
