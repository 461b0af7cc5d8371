package webhook

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/config"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	config    *config.Config
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		startTime: time.Now(),
	}
}

// HandleHealth returns liveness status
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	uptime := time.Since(h.startTime)

	return c.JSON(fiber.Map{
		"status":         "healthy",
		"service":        "pipeline-slack-notifier",
		"uptime_seconds": int64(uptime.Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"gitlab_token":   h.config.HasGitLabToken(),
		"slack_token":    h.config.HasSlackToken(),
		"slack_channel":  h.config.Slack.Channel,
	})
}

// HandleReady returns readiness status
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	ready := fiber.Map{
		"ready":     true,
		"service":   "pipeline-slack-notifier",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if !h.config.HasGitLabToken() {
		ready["ready"] = false
		ready["reason"] = "GitLab token not configured"
		return c.Status(fiber.StatusServiceUnavailable).JSON(ready)
	}

	if !h.config.HasSlackToken() {
		ready["ready"] = false
		ready["reason"] = "Slack token not configured"
		return c.Status(fiber.StatusServiceUnavailable).JSON(ready)
	}

	return c.JSON(ready)
}
