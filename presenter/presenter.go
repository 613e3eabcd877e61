//go:generate mockgen -destination mock_presenter/mock_presenter.go github.com/wastemanagement/push-agent/presenter Presenter

package presenter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/sink"
)

const CName = "push.presenter"

const (
	// SlotId is the single slot every notification goes to, so a new one replaces the shown one.
	SlotId       = 0
	Icon         = "ic_notification"
	LaunchTarget = "main"
)

var log = logger.NewNamed(CName)

var ErrPresentation = errors.New("notification presentation failed")

func New() Presenter {
	return new(presenter)
}

type Presenter interface {
	// Present shows the request in SlotId. Errors wrap ErrPresentation and are not retried.
	Present(ctx context.Context, req domain.NotificationRequest) error
	app.Component
}

type presenter struct {
	sink sink.NotificationSink
}

func (p *presenter) Init(a *app.App) (err error) {
	// a missing sink is reported on every Present call, like a failed service lookup
	if c := a.Component(sink.CName); c != nil {
		p.sink, _ = c.(sink.NotificationSink)
	}
	if p.sink == nil {
		log.Warn("notification sink is not registered")
	}
	return
}

func (p *presenter) Name() (name string) {
	return CName
}

func (p *presenter) Present(ctx context.Context, req domain.NotificationRequest) (err error) {
	if p.sink == nil {
		return fmt.Errorf("%w: %w", ErrPresentation, sink.ErrUnavailable)
	}
	ch := channelFor(req.ChannelId)
	if cm, ok := p.sink.(sink.ChannelManager); ok {
		if err = cm.EnsureChannel(ctx, ch); err != nil {
			return fmt.Errorf("%w: ensure channel: %w", ErrPresentation, err)
		}
	}
	n := buildNotification(req, ch.Id)
	if err = p.sink.Post(ctx, SlotId, n); err != nil {
		return fmt.Errorf("%w: post: %w", ErrPresentation, err)
	}
	log.Debug("notification presented", zap.String("channelId", ch.Id), zap.String("title", n.Title))
	return nil
}

func channelFor(id string) domain.NotificationChannel {
	ch := domain.DefaultChannel()
	if id != "" {
		ch.Id = id
	}
	return ch
}

func buildNotification(req domain.NotificationRequest, channelId string) domain.Notification {
	return domain.Notification{
		Icon:       Icon,
		Title:      req.Title,
		Body:       req.Body,
		ChannelId:  channelId,
		AutoCancel: true,
		Priority:   domain.PriorityHigh,
		Action: domain.LaunchAction{
			Target:   LaunchTarget,
			ClearTop: true,
		},
		Posted: time.Now(),
	}
}
