package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Telegram configuration
	TelegramBotToken  string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token used to post announcements"`
	TelegramChannelID string `long:"telegram-channel-id" env:"TELEGRAM_CHANNEL_ID" description:"Telegram channel or chat ID announcements are posted to"`

	// Application configuration
	GamesDir          string `long:"games-dir" env:"GAMES_DIR" default:"./games" description:"Directory containing game configuration files"`
	DataDir           string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory containing persisted result stores"`
	StoreBackend      string `long:"store-backend" env:"STORE_BACKEND" default:"xlsx" choice:"xlsx" choice:"sqlite" description:"Result store backend"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for game processing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds (serve mode)"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	Serve             bool   `long:"serve" env:"SERVE" description:"Run as a long-lived server instead of a single pass over all games"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Draw Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Asia/Dubai" description:"Timezone draw dates and timestamps are reported in"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		TelegramBotToken:  raw.TelegramBotToken,
		TelegramChannelID: raw.TelegramChannelID,
		GamesDir:          raw.GamesDir,
		DataDir:           raw.DataDir,
		StoreBackend:      raw.StoreBackend,
		Port:              raw.Port,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		Serve:             raw.Serve,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
