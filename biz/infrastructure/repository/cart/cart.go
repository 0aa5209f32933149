package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Cart struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassId  string             `bson:"classId" json:"classId"`
	UserMail string             `bson:"userMail" json:"userMail"`
	Date     time.Time          `bson:"date" json:"date"`
}
