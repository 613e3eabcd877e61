package memsink

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/sink"
)

var ctx = context.Background()

func TestMemSink_EnsureChannel(t *testing.T) {
	m := New()
	ch := domain.DefaultChannel()
	for i := 0; i < 3; i++ {
		require.NoError(t, m.EnsureChannel(ctx, ch))
	}
	renamed := ch
	renamed.DisplayName = "other"
	require.NoError(t, m.EnsureChannel(ctx, renamed))

	assert.Equal(t, []domain.NotificationChannel{ch}, m.Channels())
	assert.Equal(t, 4, m.ChannelAttempts())
}

func TestMemSink_Post(t *testing.T) {
	m := New()
	require.NoError(t, m.Post(ctx, 0, domain.Notification{Title: "1"}))
	require.NoError(t, m.Post(ctx, 0, domain.Notification{Title: "2"}))
	require.NoError(t, m.Post(ctx, 1, domain.Notification{Title: "3"}))

	n, ok := m.Active(0)
	require.True(t, ok)
	assert.Equal(t, "2", n.Title)
	n, ok = m.Active(1)
	require.True(t, ok)
	assert.Equal(t, "3", n.Title)
	_, ok = m.Active(2)
	assert.False(t, ok)
	assert.Equal(t, 3, m.Posts())
}

func TestMemSink_Unavailable(t *testing.T) {
	m := New()
	m.SetAvailable(false)
	assert.ErrorIs(t, m.Post(ctx, 0, domain.Notification{}), sink.ErrUnavailable)
	assert.ErrorIs(t, m.EnsureChannel(ctx, domain.DefaultChannel()), sink.ErrUnavailable)
	m.SetAvailable(true)
	assert.NoError(t, m.Post(ctx, 0, domain.Notification{}))
}

func TestMemSink_Concurrent(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.EnsureChannel(ctx, domain.DefaultChannel())
			_ = m.Post(ctx, 0, domain.Notification{Title: "t"})
		}()
	}
	wg.Wait()
	assert.Len(t, m.Channels(), 1)
	assert.Equal(t, 10, m.Posts())
}

func TestLegacySink(t *testing.T) {
	var s sink.NotificationSink = NewLegacy()
	_, ok := s.(sink.ChannelManager)
	assert.False(t, ok)
	require.NoError(t, s.Post(ctx, 0, domain.Notification{Title: "t"}))
	n, ok := s.(*LegacySink).Active(0)
	require.True(t, ok)
	assert.Equal(t, "t", n.Title)
}
