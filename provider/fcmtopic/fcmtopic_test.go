package fcmtopic

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestTopicBackend_RegisterToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := &fakeClient{resp: &messaging.TopicManagementResponse{SuccessCount: 1}}
		b := &topicBackend{client: client, topic: "waste"}
		require.NoError(t, b.RegisterToken(ctx, "abc123"))
		require.NoError(t, b.RegisterToken(ctx, "abc123"))
		assert.Equal(t, [][]string{{"abc123"}, {"abc123"}}, client.calls)
		assert.Equal(t, "waste", client.topic)
	})
	t.Run("token rejected", func(t *testing.T) {
		client := &fakeClient{resp: &messaging.TopicManagementResponse{
			FailureCount: 1,
			Errors:       []*messaging.ErrorInfo{{Index: 0, Reason: "invalid-argument"}},
		}}
		b := &topicBackend{client: client, topic: "waste"}
		err := b.RegisterToken(ctx, "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid-argument")
	})
	t.Run("request error", func(t *testing.T) {
		testErr := errors.New("network")
		b := &topicBackend{client: &fakeClient{err: testErr}, topic: "waste"}
		require.ErrorIs(t, b.RegisterToken(ctx, "abc123"), testErr)
	})
}

type fakeClient struct {
	resp  *messaging.TopicManagementResponse
	err   error
	calls [][]string
	topic string
}

func (f *fakeClient) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	f.calls = append(f.calls, tokens)
	f.topic = topic
	return f.resp, f.err
}
