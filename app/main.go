package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/chapter-web/app/api"
	"github.com/lysyi3m/chapter-web/app/cfg"
	"github.com/lysyi3m/chapter-web/app/metrics"
	"github.com/lysyi3m/chapter-web/app/site"
	"github.com/lysyi3m/chapter-web/app/wordpress"
)

const cachePurgeInterval = 5 * time.Minute

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appConfig.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Chapter Web server", "version", appConfig.Version)

	sections := site.NewSectionCache(appConfig.SectionsDir)
	if err := sections.Run(); err != nil {
		slog.Error("Failed to load sections", "dir", appConfig.SectionsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Sections loaded", "count", sections.GetSectionCount(), "dir", appConfig.SectionsDir)

	if !appConfig.APIConfigured() {
		slog.Warn("Content API not configured, serving placeholder posts", "env", "WORDPRESS_API_URL")
	}

	m := metrics.New()
	client := wordpress.NewClient(appConfig, m)

	templates, err := api.LoadTemplates()
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appConfig.WatchSections {
		watcher := site.NewWatcher(sections)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				slog.Error("Section watcher stopped", "error", err)
			}
		}()
	}

	go purgeCache(ctx, client.Cache())

	handler := api.NewHandler(client, sections, templates, appConfig)
	server := api.NewServer(handler, m)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port, "site_url", appConfig.SiteURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Chapter Web server shutdown complete")
}

// purgeCache drops expired revalidation entries so slugs that are never
// requested again do not accumulate.
func purgeCache(ctx context.Context, cache *wordpress.Cache) {
	ticker := time.NewTicker(cachePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := cache.Purge(); removed > 0 {
				slog.Debug("Purged expired content cache entries", "removed", removed)
			}
		}
	}
}
