package slack

import (
	"context"

	slackapi "github.com/slack-go/slack"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/config"
)

// API is the subset of the Slack web API this service calls. Satisfied by
// *slackapi.Client; replaced with a fake in tests.
type API interface {
	GetUserInfoContext(ctx context.Context, user string) (*slackapi.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier resolves user mentions and delivers notifications
type Notifier interface {
	ResolveMention(ctx context.Context, username string) string
	PostMessage(ctx context.Context, text string) error
	Channel() string
}

// Client implements Notifier on top of the Slack web API
type Client struct {
	api     API
	channel string
}

// Verify that Client implements Notifier interface
var _ Notifier = (*Client)(nil)

// NewClient creates a new Slack client targeting the configured channel
func NewClient(cfg config.SlackConfig) *Client {
	return &Client{
		api:     slackapi.New(cfg.Token),
		channel: cfg.Channel,
	}
}

// ResolveMention returns the Slack user ID matching the given username, or
// the username unchanged when the lookup fails in any way. Resolution is
// best-effort: a plain-text username in the notification beats no
// notification, so this never returns an error.
func (c *Client) ResolveMention(ctx context.Context, username string) string {
	user, err := c.api.GetUserInfoContext(ctx, username)
	if err != nil || user == nil || user.ID == "" {
		return username
	}
	return user.ID
}

// PostMessage posts text to the configured channel
func (c *Client) PostMessage(ctx context.Context, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channel, slackapi.MsgOptionText(text, false))
	return err
}

// Channel returns the configured notification channel
func (c *Client) Channel() string {
	return c.channel
}
