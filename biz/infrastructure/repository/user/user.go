package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"`
	Gender     string             `bson:"gender,omitempty" json:"gender"`
	Phone      string             `bson:"phone,omitempty" json:"phone"`
	Address    string             `bson:"address,omitempty" json:"address"`
	About      string             `bson:"about,omitempty" json:"about"`
	PhotoUrl   string             `bson:"photoUrl,omitempty" json:"photoUrl"`
	Skills     []string           `bson:"skills,omitempty" json:"skills"`
	CreateTime time.Time          `bson:"createTime" json:"createTime"`
	UpdateTime time.Time          `bson:"updateTime" json:"updateTime"`
}
