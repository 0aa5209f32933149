package enrolled

import (
	"context"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "enrolled"
)

type IMongoMapper interface {
	Insert(ctx context.Context, e *Enrolled) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	FindClasses(ctx context.Context, email string) ([]*EnrolledClass, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewEnrolledMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, e *Enrolled) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := m.conn.InsertOneNoCache(ctx, e)
	return err
}

func (m *MongoMapper) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: id})
	return err
}

func (m *MongoMapper) Count(ctx context.Context) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{})
}

// FindClasses 展开报名记录中的课程 id, 关联课程与讲师
func (m *MongoMapper) FindClasses(ctx context.Context, email string) ([]*EnrolledClass, error) {
	result := make([]*EnrolledClass, 0)
	if err := m.conn.Aggregate(ctx, &result, enrolledClassesPipeline(email)); err != nil {
		return nil, err
	}
	return result, nil
}

func enrolledClassesPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{consts.UserEmail: email}}},
		{{Key: "$unwind", Value: "$classesId"}},
		{{Key: "$addFields", Value: bson.M{"classOid": bson.M{"$toObjectId": "$classesId"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         class.CollectionName,
			"localField":   "classOid",
			"foreignField": consts.ID,
			"as":           "classes",
		}}},
		{{Key: "$unwind", Value: "$classes"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         user.CollectionName,
			"localField":   "classes." + consts.InstructorEmail,
			"foreignField": consts.Email,
			"as":           "instructor",
		}}},
		{{Key: "$project", Value: bson.M{
			consts.ID:    0,
			"classes":    1,
			"instructor": bson.M{"$arrayElemAt": bson.A{"$instructor", 0}},
		}}},
	}
}
