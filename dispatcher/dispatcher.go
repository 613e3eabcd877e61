package dispatcher

import (
	"context"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/anyproto/any-sync/metric"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/classifier"
	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/presenter"
	"github.com/wastemanagement/push-agent/queue"
	"github.com/wastemanagement/push-agent/registry"
)

const CName = "push.dispatcher"

const defaultWorkers = 1

var log = logger.NewNamed(CName)

type Config struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

type configSource interface {
	GetDispatcher() Config
}

func New() Dispatcher {
	return new(dispatcher)
}

// Dispatcher is the entry point for transport callbacks. Both methods are synchronous,
// never return errors and never retry: failures are logged and counted.
type Dispatcher interface {
	// OnMessage presents the display block, if any, and then routes the data payload, if any.
	OnMessage(ctx context.Context, msg domain.InboundMessage)
	// OnIdentityRotated forwards the new token to the registry.
	OnIdentityRotated(ctx context.Context, token domain.RegistrationToken)
	app.ComponentRunnable
}

type dispatcher struct {
	presenter    presenter.Presenter
	classifier   classifier.Classifier
	registry     registry.Registry
	queue        queue.Queue
	workers      int
	metrics      metrics
	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (d *dispatcher) Init(a *app.App) (err error) {
	d.presenter = a.MustComponent(presenter.CName).(presenter.Presenter)
	d.classifier = a.MustComponent(classifier.CName).(classifier.Classifier)
	d.registry = a.MustComponent(registry.CName).(registry.Registry)
	d.queue = a.MustComponent(queue.CName).(queue.Queue)
	d.workers = a.MustComponent("config").(configSource).GetDispatcher().Workers
	if d.workers <= 0 {
		d.workers = defaultWorkers
	}
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		registerMetrics(m.Registry(), d)
	}
	d.runCtx, d.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (d *dispatcher) Name() (name string) {
	return CName
}

func (d *dispatcher) Run(ctx context.Context) (err error) {
	for i := 0; i < d.workers; i++ {
		if err = d.queue.Consume(d.runCtx, d.handleEvent); err != nil {
			return
		}
	}
	log.Info("consuming inbound events", zap.Int("workers", d.workers))
	return
}

func (d *dispatcher) handleEvent(event queue.Event) error {
	ctx := d.runCtx
	switch event.Kind {
	case queue.EventMessage:
		if event.Message == nil {
			log.Warn("message event without message", zap.String("eventId", event.Id))
			return nil
		}
		d.OnMessage(ctx, *event.Message)
	case queue.EventToken:
		d.OnIdentityRotated(ctx, event.Token)
	default:
		log.Warn("unexpected event kind", zap.String("eventId", event.Id), zap.String("kind", string(event.Kind)))
	}
	return nil
}

func (d *dispatcher) OnMessage(ctx context.Context, msg domain.InboundMessage) {
	st := time.Now()
	d.metrics.messages.Add(1)
	if msg.Display != nil {
		req := domain.NewNotificationRequest(*msg.Display)
		if err := d.presenter.Present(ctx, req); err != nil {
			d.metrics.presentFailures.Add(1)
			log.Warn("present notification error", zap.Error(err))
		} else {
			d.metrics.presented.Add(1)
		}
	}
	if len(msg.Data) != 0 {
		t, err := d.classifier.Route(ctx, msg.Data)
		d.metrics.observeClassified(t)
		if err != nil {
			log.Warn("route data message error", zap.Stringer("type", t), zap.Error(err))
		} else {
			log.Debug("data message routed", zap.Stringer("type", t))
		}
	}
	d.metrics.observeDuration("message", time.Since(st))
}

func (d *dispatcher) OnIdentityRotated(ctx context.Context, token domain.RegistrationToken) {
	st := time.Now()
	d.metrics.rotations.Add(1)
	if err := d.registry.RegisterToken(ctx, token); err != nil {
		d.metrics.registrationFailures.Add(1)
		log.Warn("register token error", zap.String("token", token.Fingerprint()), zap.Error(err))
	}
	d.metrics.observeDuration("token", time.Since(st))
}

func (d *dispatcher) Close(ctx context.Context) (err error) {
	if d.runCtxCancel != nil {
		d.runCtxCancel()
	}
	return
}
