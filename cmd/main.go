package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/config"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/gitlab"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/logging"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/slack"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/webhook"
)

func setupApp(pipelineHandler *webhook.PipelineHandler, healthHandler *webhook.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Pipeline Slack Notifier",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Post("/", pipelineHandler.HandlePipelineEvent)
	app.Get("/health", healthHandler.HandleHealth)
	app.Get("/ready", healthHandler.HandleReady)

	return app
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	gitlabClient := gitlab.NewClient(cfg.GitLab)
	slackClient := slack.NewClient(cfg.Slack)

	pipelineHandler := webhook.NewPipelineHandler(gitlabClient, slackClient)
	healthHandler := webhook.NewHealthHandler(cfg)

	app := setupApp(pipelineHandler, healthHandler)

	logging.Info("Starting web server on port %s, notifying channel %s",
		cfg.Server.Port, cfg.Slack.Channel)

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logging.Error("Server stopped: %v", err)
		logging.GetLogger().Sync()
		os.Exit(1)
	}
}
