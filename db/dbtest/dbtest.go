// Package dbtest helps repo tests that need a live mongo.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wastemanagement/push-agent/db"
)

var Mongo = db.Mongo{
	Connect:  "mongodb://localhost:27017",
	Database: "push_agent_unittest",
}

// SkipIfUnavailable skips the test when the test mongo does not answer a ping.
func SkipIfUnavailable(t testing.TB) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(Mongo.Connect).SetServerSelectionTimeout(time.Second))
	if err != nil {
		t.Skipf("mongo is not available: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err = client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo is not available: %v", err)
	}
}

type Config struct {
	Mongo db.Mongo
}

func (c Config) Init(a *app.App) (err error) {
	return
}

func (c Config) Name() (name string) {
	return "config"
}

func (c Config) GetMongo() db.Mongo {
	return c.Mongo
}
