// Package main is the entry point for the otomatik-quote API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/auth"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	v1 "github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/render"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/storage/snapshot"
	"github.com/Huzeyfe22/otomatik-quote/pkg/logger"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("starting otomatik-quote server")

	// --- Workspace persistence ---
	dataFile := getEnv("QUOTE_DATA_FILE", "data/workspace.json")
	snapStore := snapshot.NewStore(dataFile)
	ws, err := snapStore.Load()
	if err != nil {
		log.Fatalw("failed to load workspace", "file", dataFile, "error", err)
	}

	libStore := library.NewStoreFromState(ws.Library)
	quoteService := quote.NewService(libStore)
	quoteService.Restore(ws.CurrentQuote, ws.SavedQuotes)

	archiveFile := getEnv("QUOTE_ARCHIVE_FILE", "data/quotes.archive.zst")
	persist := func() {
		saved := quoteService.Saved()
		err := snapStore.Save(&snapshot.Workspace{
			Library:      libStore.Snapshot(),
			CurrentQuote: quoteService.Current(),
			SavedQuotes:  saved,
		})
		if err != nil {
			log.Errorw("failed to persist workspace", "file", dataFile, "error", err)
			return
		}
		if err := writeArchiveFile(archiveFile, saved); err != nil {
			log.Errorw("failed to write quote archive", "file", archiveFile, "error", err)
		}
	}

	// --- Auth Service ---
	// An empty AUTH_PASSWORD_HASH leaves the API open, which is the
	// expected setup for a single-operator local install.
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	passwordHash := getEnv("AUTH_PASSWORD_HASH", "")
	authService := auth.NewService(auth.DefaultConfig(jwtSecret), passwordHash)
	if authService.Enabled() {
		log.Info("password gate enabled")
	} else {
		log.Warn("password gate disabled, API is open")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:   log,
		Library:  libStore,
		Quotes:   quoteService,
		Auth:     authService,
		Renderer: render.NewPDF(),
		Persist:  persist,
		Version:  version,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "data_file", dataFile)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	// Flush state one last time so a kill between mutations loses nothing.
	persist()

	log.Info("server stopped")
}

// writeArchiveFile keeps a compressed history of saved quotes next to
// the workspace file.
func writeArchiveFile(path string, saved []quote.Quote) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.WriteArchive(f, saved); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
