/*
Package main is the entry point for the userhub application.

It is responsible for loading configuration, initializing the global logging system,
connecting to the database and running migrations, constructing the session manager
and storage backend, setting up the HTTP server, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userhub/internal/app/auth"
	"userhub/internal/app/db"
	"userhub/internal/app/session"
	"userhub/internal/app/storage"
	"userhub/internal/app/user"
	"userhub/internal/configs"
	"userhub/internal/handler"
	"userhub/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("storage_backend", cfg.StorageBackend).
		Dur("session_ttl", cfg.SessionTTL).
		Bool("auto_login_on_register", cfg.AutoLoginOnRegister).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to Postgres and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	users := user.NewPostgresStore(pool)

	authService, err := auth.NewService(users, cfg.PasswordMinLength)
	if err != nil {
		logx.Fatal(err, "Failed to initialize auth service")
	}

	// One session manager per process; handlers receive it through AppDeps.
	sessions, err := session.NewManager(session.Config{
		TTL:       cfg.SessionTTL,
		StateFile: cfg.SessionStateFile,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize session manager")
	}

	storageService, err := storage.NewService(cfg)
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage backend")
	}

	deps := &handler.AppDeps{
		Config:   cfg,
		Users:    users,
		Auth:     authService,
		Sessions: sessions,
		Storage:  storageService,
	}

	// Periodically sweep expired sessions until shutdown.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := sessions.Sweep(); removed > 0 {
					logx.Debug("Session sweep finished", "removed", removed, "active", sessions.Len())
				}
			}
		}
	}()

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("userhub server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
