// Package memsink is an in-process notification sink for headless runs and tests.
package memsink

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/sink"
)

var log = logger.NewNamed("push.sink.mem")

var (
	_ sink.NotificationSink = (*MemSink)(nil)
	_ sink.ChannelManager   = (*MemSink)(nil)
	_ sink.NotificationSink = (*LegacySink)(nil)
)

func New() *MemSink {
	return &MemSink{
		channels: make(map[string]domain.NotificationChannel),
		slots:    make(map[int]domain.Notification),
	}
}

type MemSink struct {
	channels    map[string]domain.NotificationChannel
	attempts    int
	slots       map[int]domain.Notification
	posts       int
	unavailable bool
	mu          sync.Mutex
}

func (m *MemSink) Init(a *app.App) (err error) {
	return
}

func (m *MemSink) Name() (name string) {
	return sink.CName
}

func (m *MemSink) EnsureChannel(ctx context.Context, ch domain.NotificationChannel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return sink.ErrUnavailable
	}
	m.attempts++
	if _, ok := m.channels[ch.Id]; ok {
		return nil
	}
	m.channels[ch.Id] = ch
	log.Debug("channel created", zap.String("channelId", ch.Id))
	return nil
}

func (m *MemSink) Post(ctx context.Context, slot int, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return sink.ErrUnavailable
	}
	m.posts++
	m.slots[slot] = n
	log.Debug("notification posted", zap.Int("slot", slot), zap.String("title", n.Title))
	return nil
}

// Channels returns the created channels ordered by id.
func (m *MemSink) Channels() []domain.NotificationChannel {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.NotificationChannel, 0, len(m.channels))
	for _, ch := range m.channels {
		res = append(res, ch)
	}
	slices.SortFunc(res, func(a, b domain.NotificationChannel) int {
		return strings.Compare(a.Id, b.Id)
	})
	return res
}

// ChannelAttempts counts EnsureChannel calls that reached the sink.
func (m *MemSink) ChannelAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Active returns the notification currently shown in the slot.
func (m *MemSink) Active(slot int) (n domain.Notification, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok = m.slots[slot]
	return
}

func (m *MemSink) Posts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts
}

// SetAvailable toggles whether calls fail with sink.ErrUnavailable.
func (m *MemSink) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = !available
}

// NewLegacy returns a sink without channel support.
func NewLegacy() *LegacySink {
	return &LegacySink{mem: New()}
}

type LegacySink struct {
	mem *MemSink
}

func (l *LegacySink) Init(a *app.App) (err error) {
	return
}

func (l *LegacySink) Name() (name string) {
	return sink.CName
}

func (l *LegacySink) Post(ctx context.Context, slot int, n domain.Notification) error {
	return l.mem.Post(ctx, slot, n)
}

func (l *LegacySink) Active(slot int) (domain.Notification, bool) {
	return l.mem.Active(slot)
}

func (l *LegacySink) SetAvailable(available bool) {
	l.mem.SetAvailable(available)
}
