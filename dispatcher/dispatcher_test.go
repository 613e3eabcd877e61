package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wastemanagement/push-agent/classifier"
	"github.com/wastemanagement/push-agent/classifier/mock_classifier"
	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/presenter"
	"github.com/wastemanagement/push-agent/presenter/mock_presenter"
	"github.com/wastemanagement/push-agent/queue"
	"github.com/wastemanagement/push-agent/queue/mock_queue"
	"github.com/wastemanagement/push-agent/registry"
	"github.com/wastemanagement/push-agent/registry/mock_registry"
)

var ctx = context.Background()

func TestDispatcher_OnMessage(t *testing.T) {
	t.Run("display and data", func(t *testing.T) {
		fx := newFixture(t)
		msg := domain.InboundMessage{
			Display: &domain.Display{
				Title: domain.StringPtr("Pickup Today"),
				Body:  domain.StringPtr("Your bin will be collected at 9am"),
			},
			Data: map[string]string{"type": "pickup_scheduled"},
		}
		gomock.InOrder(
			fx.presenter.EXPECT().Present(ctx, domain.NotificationRequest{
				Title:     "Pickup Today",
				Body:      "Your bin will be collected at 9am",
				ChannelId: "waste_management_channel",
			}).Return(nil),
			fx.classifier.EXPECT().Route(ctx, msg.Data).
				Return(classifier.Classify(msg.Data), nil),
		)
		fx.OnMessage(ctx, msg)
		assert.Equal(t, uint64(1), fx.metrics.presented.Load())
	})
	t.Run("data only", func(t *testing.T) {
		fx := newFixture(t)
		data := map[string]string{"type": "payment_received"}
		fx.classifier.EXPECT().Route(ctx, data).Return(domain.KnownType(domain.DataKindPaymentReceived), nil)
		fx.OnMessage(ctx, domain.InboundMessage{Data: data})
	})
	t.Run("display defaults", func(t *testing.T) {
		fx := newFixture(t)
		fx.presenter.EXPECT().Present(ctx, domain.NotificationRequest{
			Title:     "Waste Management",
			Body:      "",
			ChannelId: "waste_management_channel",
		}).Return(nil)
		fx.OnMessage(ctx, domain.InboundMessage{Display: &domain.Display{}})
	})
	t.Run("empty message", func(t *testing.T) {
		fx := newFixture(t)
		fx.OnMessage(ctx, domain.InboundMessage{Data: map[string]string{}})
		assert.Equal(t, uint64(1), fx.metrics.messages.Load())
	})
	t.Run("presentation error does not stop data branch", func(t *testing.T) {
		fx := newFixture(t)
		data := map[string]string{"type": "pickup_completed"}
		fx.presenter.EXPECT().Present(ctx, gomock.Any()).Return(presenter.ErrPresentation)
		fx.classifier.EXPECT().Route(ctx, data).Return(domain.KnownType(domain.DataKindPickupCompleted), nil)
		fx.OnMessage(ctx, domain.InboundMessage{Display: &domain.Display{}, Data: data})
		assert.Equal(t, uint64(1), fx.metrics.presentFailures.Load())
	})
	t.Run("route error is absorbed", func(t *testing.T) {
		fx := newFixture(t)
		fx.classifier.EXPECT().Route(ctx, gomock.Any()).Return(domain.KnownType(domain.DataKindPickupCompleted), errors.New("handler"))
		fx.OnMessage(ctx, domain.InboundMessage{Data: map[string]string{"type": "pickup_completed"}})
	})
}

func TestDispatcher_OnIdentityRotated(t *testing.T) {
	t.Run("every rotation is forwarded", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().RegisterToken(ctx, domain.RegistrationToken("abc123")).Return(nil).Times(2)
		fx.OnIdentityRotated(ctx, "abc123")
		fx.OnIdentityRotated(ctx, "abc123")
		assert.Equal(t, uint64(2), fx.metrics.rotations.Load())
	})
	t.Run("registration error", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().RegisterToken(ctx, domain.RegistrationToken("abc123")).Return(registry.ErrRegistration)
		fx.OnIdentityRotated(ctx, "abc123")
		assert.Equal(t, uint64(1), fx.metrics.registrationFailures.Load())
	})
	t.Run("empty token is forwarded too", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().RegisterToken(ctx, domain.RegistrationToken("")).Return(nil).Times(1)
		fx.OnIdentityRotated(ctx, "")
		assert.Equal(t, uint64(1), fx.metrics.rotations.Load())
	})
}

func TestDispatcher_HandleEvent(t *testing.T) {
	fx := newFixture(t)
	require.Len(t, fx.handlers, 2)
	handle := fx.handlers[0]

	data := map[string]string{"type": "pickup_scheduled"}
	fx.classifier.EXPECT().Route(gomock.Any(), data).Return(domain.KnownType(domain.DataKindPickupScheduled), nil)
	require.NoError(t, handle(queue.NewMessageEvent(domain.InboundMessage{Data: data})))

	fx.registry.EXPECT().RegisterToken(gomock.Any(), domain.RegistrationToken("abc123")).Return(registry.ErrRegistration)
	require.NoError(t, handle(queue.NewTokenEvent("abc123")))

	require.NoError(t, handle(queue.Event{Kind: queue.EventMessage}))
	require.NoError(t, handle(queue.Event{Kind: "other"}))
}

func TestDispatcher_Metrics(t *testing.T) {
	fx := newFixture(t)
	reg := prometheus.NewRegistry()
	registerMetrics(reg, fx.dispatcher)

	fx.classifier.EXPECT().Route(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, data map[string]string) (domain.DataMessageType, error) {
		return classifier.Classify(data), nil
	}).Times(3)
	fx.OnMessage(ctx, domain.InboundMessage{Data: map[string]string{"type": "pickup_scheduled"}})
	fx.OnMessage(ctx, domain.InboundMessage{Data: map[string]string{"type": "pickup_scheduled"}})
	fx.OnMessage(ctx, domain.InboundMessage{Data: map[string]string{"type": "promo"}})

	assert.Equal(t, float64(2), testutil.ToFloat64(fx.metrics.classified.WithLabelValues("pickup_scheduled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(fx.metrics.classified.WithLabelValues("unknown")))
	count, err := testutil.GatherAndCount(reg, "push_dispatcher_messages")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type fixture struct {
	*dispatcher
	presenter  *mock_presenter.MockPresenter
	classifier *mock_classifier.MockClassifier
	registry   *mock_registry.MockRegistry
	queue      *mock_queue.MockQueue
	handlers   []func(event queue.Event) error
	a          *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		dispatcher: New().(*dispatcher),
		presenter:  mock_presenter.NewMockPresenter(ctrl),
		classifier: mock_classifier.NewMockClassifier(ctrl),
		registry:   mock_registry.NewMockRegistry(ctrl),
		queue:      mock_queue.NewMockQueue(ctrl),
		a:          new(app.App),
	}
	fx.presenter.EXPECT().Name().Return(presenter.CName).AnyTimes()
	fx.presenter.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.classifier.EXPECT().Name().Return(classifier.CName).AnyTimes()
	fx.classifier.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.registry.EXPECT().Name().Return(registry.CName).AnyTimes()
	fx.registry.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Name().Return(queue.CName).AnyTimes()
	fx.queue.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.queue.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, handle func(event queue.Event) error) error {
		fx.handlers = append(fx.handlers, handle)
		return nil
	}).Times(2)

	fx.a.Register(testConfig{}).
		Register(fx.presenter).
		Register(fx.classifier).
		Register(fx.registry).
		Register(fx.queue).
		Register(fx.dispatcher)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}

type testConfig struct{}

func (c testConfig) Init(a *app.App) (err error) {
	return
}

func (c testConfig) Name() (name string) {
	return "config"
}

func (c testConfig) GetDispatcher() Config {
	return Config{Workers: 2}
}
