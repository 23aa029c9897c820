package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/config"
	server "github.com/mlfc/matchday/internal/http"
	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	slacknotifier "github.com/mlfc/matchday/internal/notifier/slack"
	"github.com/mlfc/matchday/internal/prefetch"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/mlfc/matchday/internal/view"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := storage.InitDB(cfg.CacheDBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Cache database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize cache database: %s", err)
	}
	defer func() {
		log.Info("Closing cache database connection")
		dbTeardown()
	}()

	store := storage.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	apiClient := sheets.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, metricsSvc)
	logNotifier := notifier.NewLogNotifier()

	var announcer notifier.Announcer = notifier.NopAnnouncer{}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		announcer = slacknotifier.NewAnnouncer(cfg.Slack.Token, cfg.Slack.ChannelID)
	}

	session := view.NewSession()
	log.Info("Session started", "session_id", session.ID)
	controllers := club.NewControllers(apiClient, store, session, metricsSvc, logNotifier, cfg.AdminKey, cfg.RevertOnFailure)

	s := server.NewServer(
		controllers,
		store,
		apiClient,
		metricsSvc,
		metricsHandler,
		cfg,
		logNotifier,
		announcer,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// Warm the cache in the background; the server does not wait for it.
	go func() {
		if err := prefetch.Warm(context.Background(), controllers); err != nil {
			log.Warn("Cache warmup incomplete", "error", err)
		}
	}()

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
