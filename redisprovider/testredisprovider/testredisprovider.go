// Package testredisprovider provides a RedisProvider backed by miniredis.
package testredisprovider

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/anyproto/any-sync/app"
	"github.com/redis/go-redis/v9"

	"github.com/wastemanagement/push-agent/redisprovider"
)

func NewTestRedisProvider() *TestRedisProvider {
	return new(TestRedisProvider)
}

type TestRedisProvider struct {
	server *miniredis.Miniredis
	redis  *redis.Client
}

func (t *TestRedisProvider) Init(a *app.App) (err error) {
	if t.server, err = miniredis.Run(); err != nil {
		return
	}
	t.redis = redis.NewClient(&redis.Options{Addr: t.server.Addr()})
	return
}

func (t *TestRedisProvider) Name() (name string) {
	return redisprovider.CName
}

func (t *TestRedisProvider) Run(ctx context.Context) (err error) {
	return
}

func (t *TestRedisProvider) Redis() redis.UniversalClient {
	return t.redis
}

func (t *TestRedisProvider) Close(ctx context.Context) (err error) {
	_ = t.redis.Close()
	t.server.Close()
	return
}
