package notificationrepo

import (
	"context"
	"errors"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wastemanagement/push-agent/db"
	"github.com/wastemanagement/push-agent/domain"
)

const CName = "push.notificationrepo"

const collName = "notification"

var ErrNotFound = errors.New("slot is empty")

func New() NotificationRepo {
	return new(notificationRepo)
}

// NotificationRepo keeps one visible notification per slot.
type NotificationRepo interface {
	Post(ctx context.Context, slot int, n domain.Notification) error
	Get(ctx context.Context, slot int) (domain.Notification, error)
	app.ComponentRunnable
}

type slotDoc struct {
	Slot                int `bson:"_id"`
	domain.Notification `bson:",inline"`
}

type notificationRepo struct {
	coll *mongo.Collection
}

func (r *notificationRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *notificationRepo) Name() (name string) {
	return CName
}

func (r *notificationRepo) Run(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "channelId", Value: 1}},
	})
	return err
}

func (r *notificationRepo) Post(ctx context.Context, slot int, n domain.Notification) error {
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": slot},
		slotDoc{Slot: slot, Notification: n},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *notificationRepo) Get(ctx context.Context, slot int) (domain.Notification, error) {
	var doc slotDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": slot}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Notification{}, ErrNotFound
	}
	return doc.Notification, err
}

func (r *notificationRepo) Close(ctx context.Context) (err error) {
	return nil
}
