package applied

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application 讲师申请
type Application struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Experience string             `bson:"experience,omitempty" json:"experience"`
	PhotoUrl   string             `bson:"photoUrl,omitempty" json:"photoUrl"`
	CreateTime time.Time          `bson:"createTime" json:"createTime"`
}
