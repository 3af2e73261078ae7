package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/draw-comb/app/cfg"
	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/draw"
	"github.com/lysyi3m/draw-comb/app/store"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache *config.ConfigCache
	httpClient  *http.Client
	normalizer  *draw.Normalizer
	formatter   *draw.Formatter
	opener      *store.Opener
	notifier    NotifierInterface
	userAgent   string
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	// next poll time per game, tracked in-process
	nextRunMu sync.Mutex
	nextRunAt map[string]time.Time
}

func NewScheduler(configCache *config.ConfigCache, httpClient *http.Client, normalizer *draw.Normalizer,
	formatter *draw.Formatter, opener *store.Opener, notifier NotifierInterface) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		httpClient:  httpClient,
		normalizer:  normalizer,
		formatter:   formatter,
		opener:      opener,
		notifier:    notifier,
		userAgent:   cfg.UserAgent,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
		nextRunAt:   make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueProcessGame(gameConfig *config.Config) error {
	task := NewProcessGameTask(gameConfig.Name, gameConfig, s.httpClient, s.normalizer, s.formatter, s.opener, s.notifier, s.userAgent)
	return s.enqueueTask(task)
}

func (s *Scheduler) enqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	gameConfigs := s.configCache.GetEnabledConfigs()
	if len(gameConfigs) == 0 {
		slog.Debug("No enabled game configurations found")
		return
	}

	slog.Debug("Processing enabled game configurations for task scheduling", "count", len(gameConfigs))

	now := time.Now()

	for _, gameConfig := range gameConfigs {
		s.nextRunMu.Lock()
		nextRun, seen := s.nextRunAt[gameConfig.Name]
		s.nextRunMu.Unlock()

		if seen && nextRun.After(now) {
			slog.Debug("Game not due for refresh yet", "game", gameConfig.Name, "next_run_at", nextRun)
			continue
		}

		if err := s.EnqueueProcessGame(gameConfig); err != nil {
			slog.Warn("Failed to enqueue ProcessGameTask", "game", gameConfig.Name, "error", err)
			continue
		}

		s.nextRunMu.Lock()
		s.nextRunAt[gameConfig.Name] = now.Add(gameConfig.Settings.GetRefreshInterval())
		s.nextRunMu.Unlock()
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "game", task.GetGameName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.enqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
