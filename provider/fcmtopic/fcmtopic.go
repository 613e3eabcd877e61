// Package fcmtopic registers the device token with firebase by subscribing it to a broadcast topic.
package fcmtopic

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/registry"
)

const CName = "push.provider.fcmtopic"

var log = logger.NewNamed(CName)

func New() FCMTopic {
	return new(fcmTopic)
}

type FCMTopic interface {
	app.Component
}

type topicClient interface {
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

type fcmTopic struct {
}

func (f *fcmTopic) Init(a *app.App) (err error) {
	conf := a.MustComponent("config").(configSource).GetFCM()
	client, err := newClient(conf.CredentialsFile)
	if err != nil {
		return err
	}
	a.MustComponent(registry.CName).(registry.Registry).RegisterBackend("fcm", &topicBackend{
		client: client,
		topic:  conf.Topic,
	})
	return
}

func (f *fcmTopic) Name() (name string) {
	return CName
}

func newClient(credentialsFile string) (*messaging.Client, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	fcmApp, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}
	return fcmApp.Messaging(context.Background())
}

type topicBackend struct {
	client topicClient
	topic  string
}

func (b *topicBackend) RegisterToken(ctx context.Context, token domain.RegistrationToken) error {
	resp, err := b.client.SubscribeToTopic(ctx, []string{string(token)}, b.topic)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		reason := "unknown"
		if len(resp.Errors) > 0 && resp.Errors[0] != nil {
			reason = resp.Errors[0].Reason
		}
		return fmt.Errorf("subscribe to topic %q: %s", b.topic, reason)
	}
	log.Info("token subscribed to topic", zap.String("topic", b.topic), zap.String("token", token.Fingerprint()))
	return nil
}
