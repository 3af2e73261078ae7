package tasks

import (
	"context"

	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/notify"
)

// NotifierInterface is the announcement delivery contract used by tasks.
// A disabled notifier is a valid configuration: results are still recorded,
// nothing is posted.
type NotifierInterface interface {
	Enabled() bool
	Send(ctx context.Context, text string) error
}

var _ NotifierInterface = (*notify.Notifier)(nil)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the HTTP API to manage background game
// processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueProcessGame(gameConfig *config.Config) error
}
