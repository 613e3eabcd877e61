//go:generate mockgen -destination mock_queue/mock_queue.go github.com/wastemanagement/push-agent/queue Queue

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/redisprovider"
)

const CName = "push.queue"

var log = logger.NewNamed(CName)

const (
	defaultName          = "inbound"
	defaultPrefetchLimit = 10
	defaultPollDuration  = 100 * time.Millisecond
)

type Config struct {
	Name           string `yaml:"name"`
	PrefetchLimit  int64  `yaml:"prefetchLimit" validate:"gte=0"`
	PollDurationMs int    `yaml:"pollDurationMs" validate:"gte=0"`
}

type configSource interface {
	GetQueue() Config
	GetDevice() domain.Device
}

type EventKind string

const (
	EventMessage EventKind = "message"
	EventToken   EventKind = "token"
)

// Event is one transport callback waiting to be dispatched.
type Event struct {
	Id       string                   `json:"id"`
	Kind     EventKind                `json:"kind"`
	Message  *domain.InboundMessage   `json:"message,omitempty"`
	Token    domain.RegistrationToken `json:"token,omitempty"`
	Received time.Time                `json:"received"`
}

func NewMessageEvent(msg domain.InboundMessage) Event {
	return Event{
		Id:       uuid.NewString(),
		Kind:     EventMessage,
		Message:  &msg,
		Received: time.Now(),
	}
}

func NewTokenEvent(token domain.RegistrationToken) Event {
	return Event{
		Id:       uuid.NewString(),
		Kind:     EventToken,
		Token:    token,
		Received: time.Now(),
	}
}

func New() Queue {
	return new(queue)
}

type Queue interface {
	Add(ctx context.Context, event Event) error
	Consume(ctx context.Context, handle func(event Event) error) error
	app.ComponentRunnable
}

type queue struct {
	client       redis.UniversalClient
	rmqConn      rmq.Connection
	queue        rmq.Queue
	conf         Config
	errCh        chan error
	tag          string
	runCtx       context.Context
	runCtxCancel context.CancelFunc
}

func (q *queue) Init(a *app.App) (err error) {
	q.client = a.MustComponent(redisprovider.CName).(redisprovider.RedisProvider).Redis()
	cs := a.MustComponent("config").(configSource)
	q.conf = cs.GetQueue()
	if q.conf.Name == "" {
		q.conf.Name = defaultName
	}
	if q.conf.PrefetchLimit == 0 {
		q.conf.PrefetchLimit = defaultPrefetchLimit
	}
	q.tag = cs.GetDevice().Id
	q.runCtx, q.runCtxCancel = context.WithCancel(context.Background())
	return
}

func (q *queue) Name() (name string) {
	return CName
}

func (q *queue) Run(ctx context.Context) (err error) {
	q.errCh = make(chan error, 10)
	if q.rmqConn, err = rmq.OpenClusterConnection(q.tag, q.client, q.errCh); err != nil {
		return err
	}
	go q.handleRmqErrs()
	if q.queue, err = q.rmqConn.OpenQueue(q.conf.Name); err != nil {
		return err
	}
	pollDuration := defaultPollDuration
	if q.conf.PollDurationMs > 0 {
		pollDuration = time.Duration(q.conf.PollDurationMs) * time.Millisecond
	}
	return q.queue.StartConsuming(q.conf.PrefetchLimit, pollDuration)
}

func (q *queue) Add(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.queue.Publish(string(data))
}

func (q *queue) Consume(ctx context.Context, handle func(event Event) error) error {
	cons := func(delivery rmq.Delivery) {
		select {
		case <-q.runCtx.Done():
			_ = delivery.Reject()
			return
		case <-ctx.Done():
			_ = delivery.Reject()
			return
		default:
		}
		var event Event
		if err := json.Unmarshal([]byte(delivery.Payload()), &event); err != nil {
			log.Warn("can't decode event", zap.Error(err))
			_ = delivery.Reject()
			return
		}
		if err := handle(event); err != nil {
			_ = delivery.Reject()
		} else {
			_ = delivery.Ack()
		}
	}
	_, err := q.queue.AddConsumerFunc(q.tag, cons)
	return err
}

func (q *queue) handleRmqErrs() {
	for {
		select {
		case <-q.runCtx.Done():
			return
		case err := <-q.errCh:
			log.Warn("rmq error", zap.Error(err))
		}
	}
}

func (q *queue) Close(ctx context.Context) (err error) {
	if q.runCtxCancel != nil {
		q.runCtxCancel()
	}
	if q.queue != nil {
		done := q.queue.StopConsuming()
		<-done
	}
	return nil
}
