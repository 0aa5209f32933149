package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName      string             `bson:"userName,omitempty" json:"userName"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	ClassesId     []string           `bson:"classesId" json:"classesId"`
	TransactionId string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Quantity      int64              `bson:"quantity" json:"quantity"`
	PaymentStatus string             `bson:"paymentStatus,omitempty" json:"paymentStatus"`
	Date          time.Time          `bson:"date" json:"date"`
	// Extra 客户端附带的其他字段
	Extra map[string]any `bson:"extra,omitempty" json:"extra"`
}
