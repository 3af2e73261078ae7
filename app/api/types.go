package api

import (
	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/store"
	"github.com/lysyi3m/draw-comb/app/tasks"
)

type Handler struct {
	configCache *config.ConfigCache
	opener      *store.Opener
	scheduler   tasks.TaskSchedulerInterface
}
