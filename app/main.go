package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/lysyi3m/draw-comb/app/api"
	"github.com/lysyi3m/draw-comb/app/cfg"
	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/draw"
	"github.com/lysyi3m/draw-comb/app/notify"
	"github.com/lysyi3m/draw-comb/app/store"
	"github.com/lysyi3m/draw-comb/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Draw Comb", "version", cfg.GetVersion())

	configCache := config.NewConfigCache(appCfg.GamesDir)
	if err := configCache.Run(); err != nil {
		log.Fatalf("Failed to load game configurations: %v", err)
	}
	slog.Info("Game configurations loaded", "count", configCache.GetConfigCount())

	// Per-request deadlines come from each game's timeout setting; this is a
	// hard upper bound for anything that escapes one.
	httpClient := &http.Client{Timeout: 60 * time.Second}
	normalizer := draw.NewNormalizer(time.Local)
	formatter := draw.NewFormatter(time.Local)
	opener := store.NewOpener(appCfg.StoreBackend, appCfg.DataDir, time.Local)
	notifier := notify.NewNotifier(httpClient, appCfg.TelegramBotToken, appCfg.TelegramChannelID)

	if !notifier.Enabled() {
		slog.Warn("Telegram announcements disabled (TELEGRAM_BOT_TOKEN or TELEGRAM_CHANNEL_ID not set)")
	}

	if !appCfg.Serve {
		os.Exit(runOnce(configCache, httpClient, normalizer, formatter, opener, notifier, appCfg.UserAgent))
	}

	runServer(configCache, httpClient, normalizer, formatter, opener, notifier)
}

// runOnce processes every enabled game a single time and returns the process
// exit code. Per-game failures are logged and skipped so one broken upstream
// never blocks the others; the exit code stays zero either way, a non-zero
// code is reserved for startup failures.
func runOnce(configCache *config.ConfigCache, httpClient *http.Client, normalizer *draw.Normalizer,
	formatter *draw.Formatter, opener *store.Opener, notifier tasks.NotifierInterface, userAgent string) int {
	gameConfigs := configCache.GetEnabledConfigs()
	if len(gameConfigs) == 0 {
		slog.Warn("No enabled game configurations found")
		return 0
	}

	names := make([]string, 0, len(gameConfigs))
	for name := range gameConfigs {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := context.Background()

	for _, name := range names {
		task := tasks.NewProcessGameTask(name, gameConfigs[name], httpClient, normalizer, formatter, opener, notifier, userAgent)
		task.Start()
		if err := task.Execute(ctx); err != nil {
			slog.Warn("Game processing failed", "game", name, "error", err)
		}
	}

	return 0
}

// runServer starts the background scheduler and the HTTP server, then blocks
// until an interrupt signal arrives.
func runServer(configCache *config.ConfigCache, httpClient *http.Client, normalizer *draw.Normalizer,
	formatter *draw.Formatter, opener *store.Opener, notifier tasks.NotifierInterface) {
	appCfg := cfg.Get()

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(configCache, httpClient, normalizer, formatter, opener, notifier)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(configCache, opener, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Draw Comb server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Draw Comb server shutdown complete")
}
