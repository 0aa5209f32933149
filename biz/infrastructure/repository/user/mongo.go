package user

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
	CollectionName = "users"
)

type IMongoMapper interface {
	Insert(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, id string) (*User, error)
	FindOneByEmail(ctx context.Context, email string) (*User, error)
	FindMany(ctx context.Context, skip, limit int64) ([]*User, int64, error)
	FindByRole(ctx context.Context, role string) ([]*User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	// email 唯一
	_, err := conn.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: consts.Email, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("create users email index failed: %v", err)
	}
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreateTime = time.Now()
		u.UpdateTime = u.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrRepeatedSignUp
	}
	return err
}

// Update 不做 upsert, 调用方通过 MatchedCount 判断是否存在
func (m *MongoMapper) Update(ctx context.Context, u *User) (*mongo.UpdateResult, error) {
	u.UpdateTime = time.Now()
	res, err := m.conn.UpdateByIDNoCache(ctx, u.ID, bson.M{consts.Set: bson.M{
		"name":            u.Name,
		consts.Email:      u.Email,
		consts.Role:       u.Role,
		"address":         u.Address,
		"about":           u.About,
		"photoUrl":        u.PhotoUrl,
		"skills":          u.Skills,
		consts.UpdateTime: u.UpdateTime,
	}})
	if mongo.IsDuplicateKeyError(err) {
		return nil, consts.ErrRepeatedSignUp
	}
	return res, err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var u User
	err = m.conn.FindOneNoCache(ctx, &u, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{
		consts.Email: email,
	})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindMany(ctx context.Context, skip, limit int64) ([]*User, int64, error) {
	users := make([]*User, 0)
	filter := bson.M{}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: consts.CreateTime, Value: -1}})
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}
	if err = m.conn.Find(ctx, &users, filter, opts); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (m *MongoMapper) FindByRole(ctx context.Context, role string) ([]*User, error) {
	users := make([]*User, 0)
	err := m.conn.Find(ctx, &users, bson.M{consts.Role: role}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoMapper) CountByRole(ctx context.Context, role string) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{consts.Role: role})
}

func (m *MongoMapper) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, consts.ErrInvalidObjectId
	}
	return m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
}
