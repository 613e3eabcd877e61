package tokenrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wastemanagement/push-agent/db"
	"github.com/wastemanagement/push-agent/domain"
	"github.com/wastemanagement/push-agent/registry"
)

const CName = "push.tokenrepo"

const collName = "token"

var log = logger.NewNamed(CName)

var ErrNotActive = errors.New("token is not active after registration")

func New() TokenRepo {
	return new(tokenRepo)
}

type configSource interface {
	GetDevice() domain.Device
}

// TokenRepo stores the device tokens in the collection the backend reads.
// It registers itself as the "mongo" registry backend.
type TokenRepo interface {
	AddToken(ctx context.Context, token domain.Token) (err error)
	// InvalidateOtherTokens marks every valid token of the device except keepId as invalid.
	InvalidateOtherTokens(ctx context.Context, deviceId, keepId string) (count int64, err error)
	GetActiveTokens(ctx context.Context, deviceId string) (tokens []domain.Token, err error)
	registry.Backend
	app.ComponentRunnable
}

type tokenRepo struct {
	coll   *mongo.Collection
	device domain.Device
}

func (t *tokenRepo) Init(a *app.App) (err error) {
	t.coll = a.MustComponent(db.CName).(db.Database).Db().Collection(collName)
	t.device = a.MustComponent("config").(configSource).GetDevice()
	a.MustComponent(registry.CName).(registry.Registry).RegisterBackend("mongo", t)
	return
}

func (t *tokenRepo) Run(ctx context.Context) error {
	_, err := t.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "deviceId", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}

func (t *tokenRepo) Name() (name string) {
	return CName
}

func (t *tokenRepo) RegisterToken(ctx context.Context, token domain.RegistrationToken) (err error) {
	if err = t.AddToken(ctx, domain.Token{
		Id:       string(token),
		DeviceId: t.device.Id,
		Platform: t.device.Platform,
		Status:   domain.TokenStatusValid,
	}); err != nil {
		return
	}
	count, err := t.InvalidateOtherTokens(ctx, t.device.Id, string(token))
	if err != nil {
		return
	}
	if count > 0 {
		log.Info("previous tokens invalidated", zap.String("deviceId", t.device.Id), zap.Int64("count", count))
	}
	// a concurrent rotation may have invalidated this token in between
	active, err := t.GetActiveTokens(ctx, t.device.Id)
	if err != nil {
		return
	}
	return checkActive(active, token)
}

func checkActive(active []domain.Token, token domain.RegistrationToken) error {
	if !slices.ContainsFunc(active, func(tok domain.Token) bool { return tok.Id == string(token) }) {
		return fmt.Errorf("%w: %s", ErrNotActive, token.Fingerprint())
	}
	return nil
}

func (t *tokenRepo) AddToken(ctx context.Context, token domain.Token) (err error) {
	now := time.Now().Unix()
	opts := options.Update().SetUpsert(true)
	_, err = t.coll.UpdateByID(
		ctx,
		token.Id,
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "platform", Value: token.Platform},
				{Key: "updated", Value: now},
				{Key: "deviceId", Value: token.DeviceId},
				{Key: "status", Value: token.Status},
			}},
			{Key: "$setOnInsert", Value: bson.D{{Key: "created", Value: now}}},
		},
		opts,
	)
	return
}

func (t *tokenRepo) InvalidateOtherTokens(ctx context.Context, deviceId, keepId string) (count int64, err error) {
	res, err := t.coll.UpdateMany(
		ctx,
		bson.D{
			{Key: "deviceId", Value: deviceId},
			{Key: "status", Value: domain.TokenStatusValid},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: keepId}}},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: domain.TokenStatusInvalid},
			{Key: "updated", Value: time.Now().Unix()},
		}}})
	if err != nil {
		return
	}
	return res.ModifiedCount, nil
}

func (t *tokenRepo) GetActiveTokens(ctx context.Context, deviceId string) (tokens []domain.Token, err error) {
	cur, err := t.coll.Find(ctx, bson.D{
		{Key: "deviceId", Value: deviceId},
		{Key: "status", Value: domain.TokenStatusValid},
	})
	if err != nil {
		return
	}
	defer func() {
		_ = cur.Close(ctx)
	}()
	err = cur.All(ctx, &tokens)
	return
}

func (t *tokenRepo) Close(ctx context.Context) (err error) {
	return nil
}
