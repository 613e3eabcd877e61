// Package mongosink is a notification center persisted in mongo: channels and slots
// survive agent restarts and are read by the UI process.
package mongosink

import (
	"context"
	"errors"
	"fmt"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/repo/channelrepo"
	"github.com/wastemanagement/push-agent/repo/notificationrepo"
	"github.com/wastemanagement/push-agent/sink"
)

var log = logger.NewNamed("push.sink.mongo")

func New() MongoSink {
	return new(mongoSink)
}

type MongoSink interface {
	sink.NotificationSink
	sink.ChannelManager
	Active(ctx context.Context, slot int) (domain.Notification, error)
	// Channels lists the channels created so far, ordered by id.
	Channels(ctx context.Context) ([]domain.NotificationChannel, error)
	app.ComponentRunnable
}

type mongoSink struct {
	channels      channelrepo.ChannelRepo
	notifications notificationrepo.NotificationRepo
}

func (s *mongoSink) Init(a *app.App) (err error) {
	s.channels = a.MustComponent(channelrepo.CName).(channelrepo.ChannelRepo)
	s.notifications = a.MustComponent(notificationrepo.CName).(notificationrepo.NotificationRepo)
	return
}

func (s *mongoSink) Name() (name string) {
	return sink.CName
}

func (s *mongoSink) Run(ctx context.Context) error {
	channels, err := s.Channels(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(channels))
	for _, ch := range channels {
		ids = append(ids, ch.Id)
	}
	log.Info("notification center restored", zap.Strings("channels", ids))
	return nil
}

func (s *mongoSink) EnsureChannel(ctx context.Context, ch domain.NotificationChannel) error {
	created, err := s.channels.Ensure(ctx, ch)
	if err != nil {
		return convertErr(err)
	}
	if created {
		log.Info("channel created", zap.String("channelId", ch.Id), zap.Stringer("importance", ch.Importance))
	}
	return nil
}

func (s *mongoSink) Post(ctx context.Context, slot int, n domain.Notification) error {
	return convertErr(s.notifications.Post(ctx, slot, n))
}

func (s *mongoSink) Active(ctx context.Context, slot int) (domain.Notification, error) {
	n, err := s.notifications.Get(ctx, slot)
	return n, convertErr(err)
}

func (s *mongoSink) Channels(ctx context.Context) ([]domain.NotificationChannel, error) {
	channels, err := s.channels.List(ctx)
	return channels, convertErr(err)
}

func (s *mongoSink) Close(ctx context.Context) (err error) {
	return nil
}

func convertErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", sink.ErrUnavailable, err)
	}
	return err
}
