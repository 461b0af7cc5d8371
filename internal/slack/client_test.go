package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/config"
)

type fakeAPI struct {
	users       map[string]*slackapi.User
	userErr     error
	postErr     error
	postChannel string
	postCalls   int
}

func (f *fakeAPI) GetUserInfoContext(ctx context.Context, user string) (*slackapi.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.users[user], nil
}

func (f *fakeAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.postCalls++
	f.postChannel = channelID
	if f.postErr != nil {
		return "", "", f.postErr
	}
	return channelID, "1234.5678", nil
}

func TestNewClient(t *testing.T) {
	client := NewClient(config.SlackConfig{Token: "xoxb-test", Channel: "C123"})

	assert.NotNil(t, client)
	assert.Equal(t, "C123", client.Channel())
	assert.NotNil(t, client.api)
}

func TestClient_ResolveMention_Found(t *testing.T) {
	client := &Client{
		api: &fakeAPI{users: map[string]*slackapi.User{
			"alice": {ID: "U0001", Name: "alice"},
		}},
		channel: "C123",
	}

	assert.Equal(t, "U0001", client.ResolveMention(context.Background(), "alice"))
}

func TestClient_ResolveMention_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAPI
	}{
		{"lookup error", &fakeAPI{userErr: errors.New("users_not_found")}},
		{"missing user", &fakeAPI{users: map[string]*slackapi.User{}}},
		{"empty user ID", &fakeAPI{users: map[string]*slackapi.User{"alice": {ID: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{api: tt.api, channel: "C123"}

			// Resolution is total: any failure yields the raw username.
			assert.Equal(t, "alice", client.ResolveMention(context.Background(), "alice"))
		})
	}
}

func TestClient_PostMessage(t *testing.T) {
	api := &fakeAPI{}
	client := &Client{api: api, channel: "C123"}

	err := client.PostMessage(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, 1, api.postCalls)
	assert.Equal(t, "C123", api.postChannel)
}

func TestClient_PostMessage_Error(t *testing.T) {
	api := &fakeAPI{postErr: errors.New("channel_not_found")}
	client := &Client{api: api, channel: "C123"}

	err := client.PostMessage(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
