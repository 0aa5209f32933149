package applied

import (
	"context"
	"errors"
	"time"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "applied"
)

type IMongoMapper interface {
	Insert(ctx context.Context, a *Application) error
	FindOneByEmail(ctx context.Context, email string) (*Application, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewAppliedMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	// 每个邮箱只能申请一次
	_, err := conn.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: consts.Email, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("create applied email index failed: %v", err)
	}
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, a *Application) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
		a.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrRepeatedApplication
	}
	return err
}

func (m *MongoMapper) FindOneByEmail(ctx context.Context, email string) (*Application, error) {
	var a Application
	err := m.conn.FindOneNoCache(ctx, &a, bson.M{consts.Email: email})
	switch {
	case err == nil:
		return &a, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
