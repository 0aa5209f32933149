package cart

import (
	"context"
	"errors"
	"time"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "carts"
)

type IMongoMapper interface {
	Insert(ctx context.Context, c *Cart) error
	InsertMany(ctx context.Context, items []*Cart) error
	FindOne(ctx context.Context, classId, email string) (*Cart, error)
	FindByUser(ctx context.Context, email string) ([]*Cart, error)
	FindForCheckout(ctx context.Context, email string, classIds []string) ([]*Cart, error)
	DeleteOne(ctx context.Context, classId, email string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewCartMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	// 同一用户同一课程只能加入一次
	_, err := conn.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: consts.UserMail, Value: 1}, {Key: consts.ClassId, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("create carts index failed: %v", err)
	}
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Cart) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.Date = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrAlreadyInCart
	}
	return err
}

// InsertMany 原样写回, 保留原 _id
func (m *MongoMapper) InsertMany(ctx context.Context, items []*Cart) error {
	if len(items) == 0 {
		return nil
	}
	docs := lo.Map(items, func(item *Cart, _ int) any { return item })
	_, err := m.conn.InsertMany(ctx, docs)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, classId, email string) (*Cart, error) {
	var c Cart
	err := m.conn.FindOneNoCache(ctx, &c, bson.M{
		consts.ClassId:  classId,
		consts.UserMail: email,
	})
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByUser(ctx context.Context, email string) ([]*Cart, error) {
	items := make([]*Cart, 0)
	err := m.conn.Find(ctx, &items, bson.M{consts.UserMail: email},
		options.Find().SetSort(bson.D{{Key: consts.Date, Value: -1}}))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindForCheckout 查找结算时需要清除的购物车项
func (m *MongoMapper) FindForCheckout(ctx context.Context, email string, classIds []string) ([]*Cart, error) {
	items := make([]*Cart, 0, len(classIds))
	err := m.conn.Find(ctx, &items, bson.M{
		consts.UserMail: email,
		consts.ClassId:  bson.M{consts.In: classIds},
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (m *MongoMapper) DeleteOne(ctx context.Context, classId, email string) (int64, error) {
	return m.conn.DeleteOneNoCache(ctx, bson.M{
		consts.ClassId:  classId,
		consts.UserMail: email,
	})
}

func (m *MongoMapper) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return m.conn.DeleteMany(ctx, bson.M{consts.ID: bson.M{consts.In: ids}})
}
