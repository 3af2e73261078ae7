package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/draw"
	"github.com/lysyi3m/draw-comb/app/store"
)

type ProcessGameTask struct {
	Task
	GameConfig *config.Config
	httpClient *http.Client
	normalizer *draw.Normalizer
	formatter  *draw.Formatter
	opener     *store.Opener
	notifier   NotifierInterface
	userAgent  string
}

func NewProcessGameTask(gameName string, gameConfig *config.Config, httpClient *http.Client, normalizer *draw.Normalizer, formatter *draw.Formatter, opener *store.Opener, notifier NotifierInterface, userAgent string) *ProcessGameTask {
	return &ProcessGameTask{
		Task:       NewTask(TaskTypeProcessGame, gameName),
		GameConfig: gameConfig,
		httpClient: httpClient,
		normalizer: normalizer,
		formatter:  formatter,
		opener:     opener,
		notifier:   notifier,
		userAgent:  userAgent,
	}
}

func (t *ProcessGameTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.GameConfig.Settings.Enabled {
		slog.Debug("Game disabled, skipping", "game", t.GameName)
		return nil
	}

	data, err := t.fetchResults(ctx, t.GameConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch results: %w", err)
	}

	result, err := t.normalizer.Run(t.GameConfig.Title, data)
	if err != nil {
		return fmt.Errorf("failed to normalize results: %w", err)
	}

	// The store is the sole source of truth for "already announced"; it is
	// opened fresh each run so external edits between runs are picked up.
	gameStore, err := t.opener.Open(t.GameConfig.Title, t.GameConfig.Settings.StoreFile)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	defer gameStore.Close()

	keys, err := gameStore.ExistingKeys()
	if err != nil {
		return fmt.Errorf("failed to read existing keys: %w", err)
	}

	var newResults []draw.Result
	if _, ok := keys[store.Key(result.Game, result.Phase)]; !ok {
		newResults = append(newResults, *result)
	}

	appended, err := gameStore.AppendNew(newResults, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append results: %w", err)
	}

	notified := 0
	if appended > 0 && t.notifier.Enabled() {
		for _, res := range newResults {
			text := t.formatter.Run(res, t.GameConfig.Message.Format, t.GameConfig.Message.Hashtags, time.Now())
			if err := t.notifier.Send(ctx, text); err != nil {
				slog.Warn("Failed to post announcement", "game", t.GameName, "phase", res.Phase, "error", err)
				continue
			}
			notified++
		}
	}

	slog.Info("Task completed",
		"type", "ProcessGame",
		"game", t.GameName,
		"duration", t.GetDuration(),
		"phase", result.Phase,
		"new", appended,
		"notified", notified)

	return nil
}

func (t *ProcessGameTask) fetchResults(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.GameConfig.Settings.GetTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
