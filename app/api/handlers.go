package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/draw-comb/app/config"
	"github.com/lysyi3m/draw-comb/app/store"
	"github.com/lysyi3m/draw-comb/app/tasks"
)

func NewHandler(configCache *config.ConfigCache, opener *store.Opener,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		configCache: configCache,
		opener:      opener,
		scheduler:   scheduler,
	}
}

func (h *Handler) GetResults(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	gameConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Game configuration not found", "game", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	gameStore, err := h.opener.Open(gameConfig.Title, gameConfig.Settings.StoreFile)
	if err != nil {
		slog.Error("Store error", "operation", "open", "game", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	defer gameStore.Close()

	records, err := gameStore.Records()
	if err != nil {
		slog.Error("Store error", "operation", "records", "game", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	// Stores can be shared between games, so only this game's rows are returned.
	results := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		if record.Game != gameConfig.Title {
			continue
		}
		results = append(results, map[string]interface{}{
			"date":        record.Date,
			"game":        record.Game,
			"phase":       record.Phase,
			"result":      record.Result,
			"inserted_at": record.InsertedAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"game":    gameConfig.Title,
		"results": results,
		"total":   len(results),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":             time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	games := make(map[string]interface{}, len(configs))
	for _, gameConfig := range configs {
		stats := map[string]interface{}{
			"enabled": gameConfig.Settings.Enabled,
		}

		gameStore, err := h.opener.Open(gameConfig.Title, gameConfig.Settings.StoreFile)
		if err == nil {
			if records, err := gameStore.Records(); err == nil {
				total := 0
				for _, record := range records {
					if record.Game == gameConfig.Title {
						total++
					}
				}
				stats["results"] = total
			}
			gameStore.Close()
		}

		games[gameConfig.Name] = stats
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"games":     games,
		"total":     len(games),
	})
}

func (h *Handler) APIListGames(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	games := make([]map[string]interface{}, 0, len(configs))

	for _, gameConfig := range configs {
		gameInfo := map[string]interface{}{
			"name":             gameConfig.Name,
			"title":            gameConfig.Title,
			"url":              gameConfig.URL,
			"enabled":          gameConfig.Settings.Enabled,
			"refresh_interval": gameConfig.Settings.GetRefreshInterval().String(),
			"store_file":       h.opener.Path(gameConfig.Title, gameConfig.Settings.StoreFile),
		}

		games = append(games, gameInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"games": games,
		"total": len(games),
	})
}

func (h *Handler) APIGetGameDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing game name parameter"})
		return
	}

	gameConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Game configuration not found", "game", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Game configuration not found"})
		return
	}

	details := map[string]interface{}{
		"name":             gameConfig.Name,
		"title":            gameConfig.Title,
		"url":              gameConfig.URL,
		"enabled":          gameConfig.Settings.Enabled,
		"refresh_interval": gameConfig.Settings.GetRefreshInterval().String(),
		"timeout":          gameConfig.Settings.GetTimeout().String(),
		"message_format":   gameConfig.Message.Format,
		"hashtags":         gameConfig.Message.Hashtags,
		"store_file":       h.opener.Path(gameConfig.Title, gameConfig.Settings.StoreFile),
	}

	gameStore, err := h.opener.Open(gameConfig.Title, gameConfig.Settings.StoreFile)
	if err == nil {
		defer gameStore.Close()
		if records, err := gameStore.Records(); err == nil {
			total := 0
			latest := ""
			for _, record := range records {
				if record.Game != gameConfig.Title {
					continue
				}
				total++
				latest = record.Phase
			}
			details["results"] = map[string]interface{}{
				"total":        total,
				"latest_phase": latest,
			}
		}
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) APIProcessGame(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing game name parameter"})
		return
	}

	_, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Game configuration not found", "game", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Game configuration not found"})
		return
	}

	gameConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "game", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	err = h.scheduler.EnqueueProcessGame(gameConfig)
	if err != nil {
		slog.Error("Error enqueueing process task", "game", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue process task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reloaded and process task enqueued successfully",
		"game": gin.H{
			"name":  name,
			"title": gameConfig.Title,
			"url":   gameConfig.URL,
		},
		"task": gin.H{
			"type": string(tasks.TaskTypeProcessGame),
		},
	})
}
