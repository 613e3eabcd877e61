// Package signal publishes classified data messages to redis so the pickup and payment
// services can refresh their state.
package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/classifier"
	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/redisprovider"
)

const CName = "push.signal"

const defaultPrefix = "push.data"

var log = logger.NewNamed(CName)

type Config struct {
	Prefix string `yaml:"prefix"`
}

type configSource interface {
	GetSignal() Config
}

type Payload struct {
	Type     string            `json:"type"`
	Data     map[string]string `json:"data"`
	Received time.Time         `json:"received"`
}

func New() Signal {
	return new(signal)
}

type Signal interface {
	// Channel returns the pub/sub channel for the kind.
	Channel(kind domain.DataKind) string
	classifier.Handler
	app.Component
}

type signal struct {
	client redis.UniversalClient
	prefix string
}

func (s *signal) Init(a *app.App) (err error) {
	s.client = a.MustComponent(redisprovider.CName).(redisprovider.RedisProvider).Redis()
	s.prefix = a.MustComponent("config").(configSource).GetSignal().Prefix
	if s.prefix == "" {
		s.prefix = defaultPrefix
	}
	c := a.MustComponent(classifier.CName).(classifier.Classifier)
	for _, kind := range []domain.DataKind{
		domain.DataKindPickupScheduled,
		domain.DataKindPickupCompleted,
		domain.DataKindPaymentReceived,
	} {
		c.RegisterHandler(kind, s)
	}
	return
}

func (s *signal) Name() (name string) {
	return CName
}

func (s *signal) Channel(kind domain.DataKind) string {
	return s.prefix + "." + kind.String()
}

func (s *signal) HandleData(ctx context.Context, t domain.DataMessageType, data map[string]string) error {
	payload, err := json.Marshal(Payload{
		Type:     t.Kind.String(),
		Data:     data,
		Received: time.Now(),
	})
	if err != nil {
		return err
	}
	receivers, err := s.client.Publish(ctx, s.Channel(t.Kind), payload).Result()
	if err != nil {
		return err
	}
	log.Debug("data signal published", zap.Stringer("type", t), zap.Int64("receivers", receivers))
	return nil
}
