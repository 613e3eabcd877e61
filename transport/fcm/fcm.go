// Package fcm adapts firebase messages and token callbacks to inbound queue events.
package fcm

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/anyproto/any-sync/app"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/queue"
)

const CName = "push.transport.fcm"

// ToInbound converts a firebase message. Empty title and body are treated as absent,
// the top level notification block wins over the android one.
func ToInbound(m *messaging.Message) domain.InboundMessage {
	var msg domain.InboundMessage
	if m == nil {
		return msg
	}
	if len(m.Data) != 0 {
		msg.Data = m.Data
	}
	var title, body string
	var hasDisplay bool
	if m.Android != nil && m.Android.Notification != nil {
		hasDisplay = true
		title, body = m.Android.Notification.Title, m.Android.Notification.Body
	}
	if m.Notification != nil {
		hasDisplay = true
		if m.Notification.Title != "" {
			title = m.Notification.Title
		}
		if m.Notification.Body != "" {
			body = m.Notification.Body
		}
	}
	if hasDisplay {
		msg.Display = &domain.Display{
			Title: nonEmpty(title),
			Body:  nonEmpty(body),
		}
	}
	return msg
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func New() Forwarder {
	return new(forwarder)
}

// Forwarder is what the messaging transport calls on delivery.
type Forwarder interface {
	OnMessageReceived(ctx context.Context, m *messaging.Message) error
	OnNewToken(ctx context.Context, token string) error
	app.Component
}

type forwarder struct {
	queue queue.Queue
}

func (f *forwarder) Init(a *app.App) (err error) {
	f.queue = a.MustComponent(queue.CName).(queue.Queue)
	return
}

func (f *forwarder) Name() (name string) {
	return CName
}

func (f *forwarder) OnMessageReceived(ctx context.Context, m *messaging.Message) error {
	return f.queue.Add(ctx, queue.NewMessageEvent(ToInbound(m)))
}

func (f *forwarder) OnNewToken(ctx context.Context, token string) error {
	return f.queue.Add(ctx, queue.NewTokenEvent(domain.RegistrationToken(token)))
}
