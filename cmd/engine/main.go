// File path: cmd/engine/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sileaweb/content-engine/internal/api"
	"github.com/sileaweb/content-engine/internal/cache"
	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/llm"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("engine: .env file not loaded", "error", err)
	} else {
		logger.Info("engine: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite content catalog")
	revalidateURL := flag.String("revalidate-url", "", "frontend revalidation endpoint (overrides REVALIDATE_URL)")
	flag.Parse()

	logger.Info("engine: startup initiated", "addr", *addr, "catalog", *catalogPath)

	storeCfg := catalog.LoadConfig()
	if trimmed := strings.TrimSpace(*catalogPath); trimmed != "" {
		storeCfg.Path = trimmed
	}
	store, err := catalog.Open(storeCfg)
	if err != nil {
		logger.Error("engine: catalog open failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer store.Close()

	provider := llm.NewProvider()
	logger.Info("engine: llm provider ready", "provider", provider.Name())

	invalidator := cache.NewFromEnv()
	if trimmed := strings.TrimSpace(*revalidateURL); trimmed != "" {
		invalidator = cache.New(trimmed, os.Getenv("REVALIDATE_SECRET"))
	}

	server, err := api.NewServer(store, provider, invalidator, nil)
	if err != nil {
		logger.Error("engine: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("engine: server listening", "addr", *addr, "health", "/healthz")
		fmt.Printf("Serving on %s\n", *addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("engine: shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("engine: shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("engine: server stopped", "error", err)
			fmt.Println("server stopped:", err)
			os.Exit(1)
		}
	}
}

func defaultCatalogPath() string {
	return filepath.Join("data", "catalog.db")
}
