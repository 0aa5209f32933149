package service

import (
	"time"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/repository/applied"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/payment"
	"yoga-master/biz/infrastructure/repository/user"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 时间统一以毫秒时间戳输出
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).UnixMilli(), nil
			},
		},
		{
			SrcType: primitive.ObjectID{},
			DstType: "",
			Fn: func(src any) (any, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
	},
}

func toUserDTO(u *user.User) *yoga.User {
	if u == nil {
		return nil
	}
	dto := new(yoga.User)
	_ = copier.CopyWithOption(dto, u, copyOption)
	dto.Id = u.ID.Hex()
	return dto
}

func toUserDTOs(users []*user.User) []*yoga.User {
	return lo.Map(users, func(u *user.User, _ int) *yoga.User { return toUserDTO(u) })
}

func toClassDTO(c *class.Class) *yoga.Class {
	if c == nil {
		return nil
	}
	dto := new(yoga.Class)
	_ = copier.CopyWithOption(dto, c, copyOption)
	dto.Id = c.ID.Hex()
	return dto
}

func toClassDTOs(classes []*class.Class) []*yoga.Class {
	return lo.Map(classes, func(c *class.Class, _ int) *yoga.Class { return toClassDTO(c) })
}

func toCartDTO(c *cart.Cart) *yoga.CartItem {
	dto := new(yoga.CartItem)
	_ = copier.CopyWithOption(dto, c, copyOption)
	dto.Id = c.ID.Hex()
	return dto
}

func toPaymentDTO(p *payment.Payment) *yoga.Payment {
	dto := new(yoga.Payment)
	_ = copier.CopyWithOption(dto, p, copyOption)
	dto.Id = p.ID.Hex()
	return dto
}

func toApplicationDTO(a *applied.Application) *yoga.Application {
	dto := new(yoga.Application)
	_ = copier.CopyWithOption(dto, a, copyOption)
	dto.Id = a.ID.Hex()
	return dto
}

func toUpdateResp(res *mongo.UpdateResult) *yoga.UpdateResp {
	if res == nil {
		return &yoga.UpdateResp{Acknowledged: true}
	}
	return &yoga.UpdateResp{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}
