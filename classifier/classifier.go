//go:generate mockgen -destination mock_classifier/mock_classifier.go github.com/wastemanagement/push-agent/classifier Classifier,Handler

package classifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
)

const CName = "push.classifier"

const TypeKey = "type"

var log = logger.NewNamed(CName)

// Classify maps data["type"] to a DataMessageType. It never fails.
func Classify(data map[string]string) domain.DataMessageType {
	raw, ok := data[TypeKey]
	if !ok {
		return domain.AbsentType()
	}
	switch raw {
	case domain.TypePickupScheduled:
		return domain.KnownType(domain.DataKindPickupScheduled)
	case domain.TypePickupCompleted:
		return domain.KnownType(domain.DataKindPickupCompleted)
	case domain.TypePaymentReceived:
		return domain.KnownType(domain.DataKindPaymentReceived)
	}
	return domain.UnknownType(raw)
}

// Handler is the follow-up action for a classified payload.
type Handler interface {
	HandleData(ctx context.Context, t domain.DataMessageType, data map[string]string) error
}

func New() Classifier {
	return &classifier{handlers: make(map[domain.DataKind]Handler)}
}

type Classifier interface {
	Classify(data map[string]string) domain.DataMessageType
	// RegisterHandler sets the follow-up for a known kind, replacing a previous one.
	RegisterHandler(kind domain.DataKind, h Handler)
	// Route classifies the payload and passes it to the handler registered for its kind.
	// Unknown kinds and kinds without a handler are only classified.
	Route(ctx context.Context, data map[string]string) (domain.DataMessageType, error)
	app.Component
}

type classifier struct {
	handlers map[domain.DataKind]Handler
	mu       sync.RWMutex
}

func (c *classifier) Init(a *app.App) (err error) {
	return
}

func (c *classifier) Name() (name string) {
	return CName
}

func (c *classifier) Classify(data map[string]string) domain.DataMessageType {
	return Classify(data)
}

func (c *classifier) RegisterHandler(kind domain.DataKind, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[kind] = h
}

func (c *classifier) Route(ctx context.Context, data map[string]string) (domain.DataMessageType, error) {
	t := Classify(data)
	if !t.IsKnown() {
		log.Debug("unknown data message", zap.Stringer("type", t))
		return t, nil
	}
	c.mu.RLock()
	h := c.handlers[t.Kind]
	c.mu.RUnlock()
	if h == nil {
		log.Debug("no handler for data message", zap.Stringer("type", t))
		return t, nil
	}
	if err := h.HandleData(ctx, t, data); err != nil {
		return t, fmt.Errorf("handle %s: %w", t, err)
	}
	return t, nil
}
