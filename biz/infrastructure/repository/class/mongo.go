package class

import (
	"context"
	"errors"
	"time"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/util"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixClassCacheKey = "cache:class:"
	CollectionName      = "classes"
)

type IMongoMapper interface {
	Insert(ctx context.Context, c *Class) error
	UpdateContent(ctx context.Context, c *Class) (*mongo.UpdateResult, error)
	UpdateStatus(ctx context.Context, id, status, reason string) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, id string) (*Class, error)
	FindMany(ctx context.Context, status string, skip, limit int64) ([]*Class, int64, error)
	FindByInstructor(ctx context.Context, email string) ([]*Class, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Class, error)
	FindPopular(ctx context.Context, limit int64) ([]*Class, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	PopularInstructors(ctx context.Context, limit int64) ([]*InstructorRank, error)
	Enroll(ctx context.Context, id string) (*mongo.UpdateResult, error)
	Unenroll(ctx context.Context, id string) error
	DelCache(ctx context.Context, ids ...string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewClassMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Class) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, c)
	return err
}

// UpdateContent 修改内容后重新进入审核
func (m *MongoMapper) UpdateContent(ctx context.Context, c *Class) (*mongo.UpdateResult, error) {
	c.UpdateTime = time.Now()
	c.Status = consts.ClassPending
	res, err := m.conn.UpdateByIDNoCache(ctx, c.ID, bson.M{consts.Set: bson.M{
		"name":                c.Name,
		"description":         c.Description,
		"price":               c.Price,
		consts.AvailableSeats: c.AvailableSeats,
		"image":               c.Image,
		"videoLink":           c.VideoLink,
		consts.Status:         c.Status,
		consts.UpdateTime:     c.UpdateTime,
	}})
	if err != nil {
		return nil, err
	}
	_ = m.DelCache(ctx, c.ID.Hex())
	return res, nil
}

func (m *MongoMapper) UpdateStatus(ctx context.Context, id, status, reason string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{consts.Set: bson.M{
		consts.Status:     status,
		"reason":          reason,
		consts.UpdateTime: time.Now(),
	}})
	if err != nil {
		return nil, err
	}
	_ = m.DelCache(ctx, id)
	return res, nil
}

// FindOne 读穿缓存
func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Class
	err = m.conn.FindOne(ctx, prefixClassCacheKey+id, &c, bson.M{
		consts.ID: oid,
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

// FindMany status 为空时返回全部
func (m *MongoMapper) FindMany(ctx context.Context, status string, skip, limit int64) ([]*Class, int64, error) {
	classes := make([]*Class, 0)
	filter := bson.M{}
	if status != "" {
		filter[consts.Status] = status
	}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: consts.CreateTime, Value: -1}})
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}
	if err = m.conn.Find(ctx, &classes, filter, opts); err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

func (m *MongoMapper) FindByInstructor(ctx context.Context, email string) ([]*Class, error) {
	classes := make([]*Class, 0)
	err := m.conn.Find(ctx, &classes, bson.M{consts.InstructorEmail: email},
		options.Find().SetSort(bson.D{{Key: consts.CreateTime, Value: -1}}))
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (m *MongoMapper) FindByIDs(ctx context.Context, ids []string) ([]*Class, error) {
	oids, ok := util.ObjectIDs(ids)
	if !ok {
		return nil, consts.ErrInvalidObjectId
	}
	classes := make([]*Class, 0, len(oids))
	if err := m.conn.Find(ctx, &classes, bson.M{consts.ID: bson.M{consts.In: oids}}); err != nil {
		return nil, err
	}
	return classes, nil
}

// FindPopular 报名人数降序, 同数按名称升序
func (m *MongoMapper) FindPopular(ctx context.Context, limit int64) ([]*Class, error) {
	classes := make([]*Class, 0, limit)
	err := m.conn.Find(ctx, &classes, bson.M{consts.Status: consts.ClassApproved}, options.Find().
		SetSort(bson.D{{Key: consts.TotalEnrolled, Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (m *MongoMapper) CountByStatus(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter[consts.Status] = status
	}
	return m.conn.CountDocuments(ctx, filter)
}

// PopularInstructors 按讲师邮箱汇总 totalEnrolled, 关联用户资料, 同数按邮箱升序
func (m *MongoMapper) PopularInstructors(ctx context.Context, limit int64) ([]*InstructorRank, error) {
	ranks := make([]*InstructorRank, 0, limit)
	if err := m.conn.Aggregate(ctx, &ranks, popularInstructorsPipeline(limit)); err != nil {
		return nil, err
	}
	return ranks, nil
}

func popularInstructorsPipeline(limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			consts.ID:            "$" + consts.InstructorEmail,
			consts.TotalEnrolled: bson.M{"$sum": "$" + consts.TotalEnrolled},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         user.CollectionName,
			"localField":   consts.ID,
			"foreignField": consts.Email,
			"as":           "instructor",
		}}},
		{{Key: "$project", Value: bson.M{
			consts.TotalEnrolled: 1,
			"instructor":         bson.M{"$arrayElemAt": bson.A{"$instructor", 0}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: consts.TotalEnrolled, Value: -1}, {Key: consts.ID, Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

// Enroll 原子地占用一个座位; 无匹配说明课程不存在、未审核或已满
func (m *MongoMapper) Enroll(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:             oid,
		consts.Status:         consts.ClassApproved,
		consts.AvailableSeats: bson.M{consts.Gt: 0},
	}, bson.M{
		consts.Inc: bson.M{consts.AvailableSeats: -1, consts.TotalEnrolled: 1},
		consts.Set: bson.M{consts.UpdateTime: time.Now()},
	})
}

// Unenroll 为 Enroll 的补偿操作
func (m *MongoMapper) Unenroll(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		consts.Inc: bson.M{consts.AvailableSeats: 1, consts.TotalEnrolled: -1},
		consts.Set: bson.M{consts.UpdateTime: time.Now()},
	})
	return err
}

func (m *MongoMapper) DelCache(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, prefixClassCacheKey+id)
	}
	return m.conn.DelCache(ctx, keys...)
}
