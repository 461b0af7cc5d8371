package webhook

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/gitlab"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/logging"
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/slack"
)

// PipelineHandler turns failed-pipeline webhooks into channel notifications
type PipelineHandler struct {
	gitlab   gitlab.GitLabClient
	notifier slack.Notifier
}

// NewPipelineHandler creates a new pipeline webhook handler
func NewPipelineHandler(gl gitlab.GitLabClient, notifier slack.Notifier) *PipelineHandler {
	return &PipelineHandler{
		gitlab:   gl,
		notifier: notifier,
	}
}

// HandlePipelineEvent processes GitLab pipeline webhook requests. Responses
// carry a bare status code: upstream error detail must not leak back to the
// webhook sender.
func (h *PipelineHandler) HandlePipelineEvent(c *fiber.Ctx) error {
	var event PipelineEvent
	if err := c.BodyParser(&event); err != nil {
		// GitLab retries on non-2xx. A payload that does not parse will not
		// parse on retry either, so ACK it and leave a trace for operators.
		logging.Error("Dropping malformed webhook payload: %v, body: %s", err, string(c.Body()))
		return c.SendStatus(fiber.StatusOK)
	}

	switch event.Kind() {
	case KindPipeline:
		return h.processPipeline(c, &event)
	case KindOther:
		logging.Info("Ignoring %q event", event.ObjectKind)
		return c.SendStatus(fiber.StatusOK)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *PipelineHandler) processPipeline(c *fiber.Ctx, event *PipelineEvent) error {
	pipelineID := event.ObjectAttributes.ID
	logging.Info("Pipeline %d received, status: %s", pipelineID, event.ObjectAttributes.Status)

	if event.ObjectAttributes.Status != gitlab.StatusFailed {
		logging.Info("Pipeline %d status is not failed, skipping", pipelineID)
		return c.SendStatus(fiber.StatusOK)
	}

	if event.MergeRequest == nil {
		logging.Info("Pipeline %d has no merge request, skipping", pipelineID)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := h.notify(c.UserContext(), event); err != nil {
		logging.PipelineError(pipelineID, "Failed to send pipeline notification", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// notify runs the enrichment chain and delivers the notification. Errors from
// any step abort the whole request; no partial notification is ever sent.
func (h *PipelineHandler) notify(ctx context.Context, event *PipelineEvent) error {
	pipelineID := event.ObjectAttributes.ID
	projectID := event.Project.ID

	failedJobs, err := h.gitlab.FailedPipelineJobs(ctx, projectID, pipelineID)
	if err != nil {
		return fmt.Errorf("failed to list pipeline jobs: %w", err)
	}

	mr, err := h.gitlab.GetMergeRequest(ctx, projectID, event.MergeRequest.IID)
	if err != nil {
		return fmt.Errorf("failed to fetch merge request: %w", err)
	}

	authorMention := h.notifier.ResolveMention(ctx, mr.Author.Username)
	mergerMention := ""
	if mr.MergedBy != nil {
		mergerMention = h.notifier.ResolveMention(ctx, mr.MergedBy.Username)
	}

	message := ComposeFailureMessage(mr, authorMention, mergerMention, failedJobs)

	if err := h.notifier.PostMessage(ctx, message); err != nil {
		logging.Error("Slack delivery to channel %s failed: %v, message: %s",
			h.notifier.Channel(), err, message)
		return fmt.Errorf("failed to post message: %w", err)
	}

	logging.PipelineInfo(pipelineID, "Posted failure notification for MR "+mr.WebURL)
	return nil
}
