package channelrepo

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wastemanagement/push-agent/db"
	"github.com/wastemanagement/push-agent/domain"
)

const CName = "push.channelrepo"

const collName = "channel"

func New() ChannelRepo {
	return new(channelRepo)
}

type ChannelRepo interface {
	// Ensure inserts the channel if there is no channel with the same id. Existing channels are left as is.
	Ensure(ctx context.Context, ch domain.NotificationChannel) (created bool, err error)
	List(ctx context.Context) ([]domain.NotificationChannel, error)
	app.Component
}

type channelRepo struct {
	coll *mongo.Collection
}

func (r *channelRepo) Init(a *app.App) (err error) {
	r.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	return
}

func (r *channelRepo) Name() (name string) {
	return CName
}

func (r *channelRepo) Ensure(ctx context.Context, ch domain.NotificationChannel) (created bool, err error) {
	res, err := r.coll.UpdateByID(
		ctx,
		ch.Id,
		bson.D{
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "displayName", Value: ch.DisplayName},
				{Key: "importance", Value: ch.Importance},
				{Key: "description", Value: ch.Description},
				{Key: "vibrationEnabled", Value: ch.VibrationEnabled},
			}},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// two concurrent upserts of the same id: the other one won
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (r *channelRepo) List(ctx context.Context) (channels []domain.NotificationChannel, err error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &channels)
	return
}
