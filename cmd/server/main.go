package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rsmmonaem/voter-talika/internal/config"
	"github.com/rsmmonaem/voter-talika/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	ctx := context.Background()
	cfg := config.NewConfig()
	container, err := config.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	voterHandler := handler.NewVoterHandler(container.VoterService, container.Logger)
	router := handler.NewRouter(voterHandler, container.Logger, handler.RouterOptions{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		StaticDir:      cfg.GetStaticDir(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "store", cfg.GetStoreDriver())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		container.Logger.Error("Server failed to start", err)
		return
	}

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
	}

	container.Logger.Info("Server exited")
}
