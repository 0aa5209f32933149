package payment

import (
	"context"
	"errors"
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
	CollectionName = "payments"
)

type IMongoMapper interface {
	Insert(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByEmail(ctx context.Context, email string, skip, limit int64) ([]*Payment, int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	ExistsTransaction(ctx context.Context, transactionId string) (bool, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewPaymentMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	_, err := conn.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: consts.TransactionId, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("create payments transactionId index failed: %v", err)
	}
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, p *Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := m.conn.InsertOneNoCache(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrDuplicateTransaction
	}
	return err
}

func (m *MongoMapper) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: id})
	return err
}

// FindByEmail 按支付时间倒序
func (m *MongoMapper) FindByEmail(ctx context.Context, email string, skip, limit int64) ([]*Payment, int64, error) {
	payments := make([]*Payment, 0)
	filter := bson.M{consts.UserEmail: email}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: consts.Date, Value: -1}})
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}
	if err = m.conn.Find(ctx, &payments, filter, opts); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (m *MongoMapper) CountByEmail(ctx context.Context, email string) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{consts.UserEmail: email})
}

func (m *MongoMapper) ExistsTransaction(ctx context.Context, transactionId string) (bool, error) {
	var p Payment
	err := m.conn.FindOneNoCache(ctx, &p, bson.M{consts.TransactionId: transactionId})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, monc.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
