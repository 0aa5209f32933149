package class

import (
	"time"
	"yoga-master/biz/infrastructure/repository/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	InstructorName  string             `bson:"instructorName" json:"instructorName"`
	InstructorEmail string             `bson:"instructorEmail" json:"instructorEmail"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price"`
	AvailableSeats  int64              `bson:"availableSeats" json:"availableSeats"`
	Image           string             `bson:"image" json:"image"`
	VideoLink       string             `bson:"videoLink" json:"videoLink"`
	Status          string             `bson:"status" json:"status"`
	Reason          string             `bson:"reason,omitempty" json:"reason"`
	TotalEnrolled   int64              `bson:"totalEnrolled" json:"totalEnrolled"`
	CreateTime      time.Time          `bson:"createTime" json:"createTime"`
	UpdateTime      time.Time          `bson:"updateTime" json:"updateTime"`
}

// InstructorRank 按讲师汇总的报名人数
type InstructorRank struct {
	Email         string     `bson:"_id"`
	TotalEnrolled int64      `bson:"totalEnrolled"`
	Instructor    *user.User `bson:"instructor,omitempty"`
}
