// Package sink describes the platform notification manager the presenter posts to.
package sink

import (
	"context"
	"errors"

	"github.com/anyproto/any-sync/app"

	"github.com/wastemanagement/push-agent/domain"
)

const CName = "push.sink"

// ErrUnavailable means the notification service could not be reached.
var ErrUnavailable = errors.New("notification service unavailable")

type NotificationSink interface {
	// Post shows n in the given slot, replacing whatever is shown there.
	Post(ctx context.Context, slot int, n domain.Notification) error
	app.Component
}

// ChannelManager is implemented by sinks that group notifications into channels.
type ChannelManager interface {
	// EnsureChannel creates the channel unless a channel with the same id exists.
	EnsureChannel(ctx context.Context, ch domain.NotificationChannel) error
}
