package enrolled

import (
	"time"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Enrolled struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName      string             `bson:"userName,omitempty" json:"userName"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	ClassesId     []string           `bson:"classesId" json:"classesId"`
	TransactionId string             `bson:"transactionId" json:"transactionId"`
	Date          time.Time          `bson:"date" json:"date"`
}

// EnrolledClass 已报名课程及其讲师
type EnrolledClass struct {
	Classes    *class.Class `bson:"classes"`
	Instructor *user.User   `bson:"instructor,omitempty"`
}
