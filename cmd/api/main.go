package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"meumuseu/infrastructure/config"
	"meumuseu/infrastructure/di"
	"meumuseu/infrastructure/persistence/layout"
	"meumuseu/interfaces/http/rest"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, cleanup, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()

	// Create router
	router := rest.NewRouter(rest.Deps{
		Identity:       container.Identity,
		Plans:          container.Plans,
		Museum:         container.Museum,
		Share:          container.Share,
		Avatars:        container.Avatars,
		Captions:       container.Captions,
		Tokens:         container.Tokens,
		Metrics:        container.Metrics,
		ErrorHdl:       container.ErrorHandler,
		PaymentURL:     container.Tunables.PaymentURL,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableCORS:     cfg.EnableCORS,
		EnableMetrics:  cfg.EnableMetrics,
		AuthRateLimit:  cfg.AuthRateLimit,
		Ready: func(r *http.Request) error {
			// The storage backend must answer before traffic is admitted
			_, _, err := container.KV.Get(r.Context(), layout.KeyUser)
			return err
		},
	}, container.Logger)

	handler := router.Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("storage", cfg.StorageDriver),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
