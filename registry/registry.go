//go:generate mockgen -destination mock_registry/mock_registry.go github.com/wastemanagement/push-agent/registry Registry,Backend

package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/domain"
)

const CName = "push.registry"

var log = logger.NewNamed(CName)

var (
	ErrRegistration = errors.New("token registration failed")
	ErrNoBackends   = errors.New("no registration backends")
)

func New() Registry {
	return &registry{backends: make(map[string]Backend)}
}

// Backend is one place the device token gets registered with.
type Backend interface {
	RegisterToken(ctx context.Context, token domain.RegistrationToken) error
}

type Registry interface {
	RegisterBackend(name string, b Backend)
	// RegisterToken sends the token to every backend once. It does not remember
	// previously sent tokens and does not retry.
	RegisterToken(ctx context.Context, token domain.RegistrationToken) error
	app.Component
}

type registry struct {
	backends map[string]Backend
	mu       sync.RWMutex
}

func (r *registry) Init(a *app.App) (err error) {
	return
}

func (r *registry) Name() (name string) {
	return CName
}

func (r *registry) RegisterBackend(name string, b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = b
}

func (r *registry) RegisterToken(ctx context.Context, token domain.RegistrationToken) error {
	r.mu.RLock()
	backends := maps.Clone(r.backends)
	r.mu.RUnlock()

	if len(backends) == 0 {
		return fmt.Errorf("%w: %w", ErrRegistration, ErrNoBackends)
	}

	var errs []error
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		st := time.Now()
		if err := backends[name].RegisterToken(ctx, token); err != nil {
			log.Warn("register token error",
				zap.String("backend", name),
				zap.String("token", token.Fingerprint()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		log.Info("token registered",
			zap.String("backend", name),
			zap.String("token", token.Fingerprint()),
			zap.Duration("dur", time.Since(st)),
		)
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrRegistration, errors.Join(errs...))
	}
	return nil
}
