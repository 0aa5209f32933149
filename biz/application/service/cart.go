package service

import (
	"context"
	"errors"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ICartService interface {
	AddToCart(ctx context.Context, req *yoga.AddToCartReq) (*yoga.InsertResp, error)
	GetCartItem(ctx context.Context, req *yoga.GetCartItemReq) (*yoga.CartItem, error)
	GetCart(ctx context.Context, email string) ([]*yoga.Class, error)
	DeleteCartItem(ctx context.Context, classId string) (*yoga.DeleteResp, error)
}

type CartService struct {
	CartMapper  cart.IMongoMapper
	ClassMapper class.IMongoMapper
}

var CartServiceSet = wire.NewSet(
	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),
)

// callerEmail 返回令牌中的邮箱, claimed 非空时必须与之一致
func callerEmail(ctx context.Context, claimed string) (string, error) {
	email := adaptor.ExtractUserMeta(ctx).GetEmail()
	if email == "" {
		return "", consts.ErrNotAuthentication
	}
	if claimed != "" && claimed != email {
		return "", consts.ErrForbidden
	}
	return email, nil
}

func (s *CartService) AddToCart(ctx context.Context, req *yoga.AddToCartReq) (*yoga.InsertResp, error) {
	email, err := callerEmail(ctx, req.UserMail)
	if err != nil {
		return nil, err
	}
	c, err := s.ClassMapper.FindOne(ctx, req.ClassId)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	if c.Status != consts.ClassApproved {
		return nil, consts.ErrClassNotApproved
	}

	item := &cart.Cart{ClassId: req.ClassId, UserMail: email}
	if err = s.CartMapper.Insert(ctx, item); err != nil {
		if errors.Is(err, consts.ErrAlreadyInCart) {
			return nil, err
		}
		log.CtxError(ctx, "加入购物车失败: %v", err)
		return nil, consts.ErrAddToCart
	}
	return &yoga.InsertResp{Acknowledged: true, InsertedId: item.ID.Hex()}, nil
}

func (s *CartService) GetCartItem(ctx context.Context, req *yoga.GetCartItemReq) (*yoga.CartItem, error) {
	email, err := callerEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(req.Id) {
		return nil, consts.ErrInvalidObjectId
	}
	item, err := s.CartMapper.FindOne(ctx, req.Id, email)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	return toCartDTO(item), nil
}

// GetCart 按加入顺序返回购物车中的课程
func (s *CartService) GetCart(ctx context.Context, email string) ([]*yoga.Class, error) {
	email, err := callerEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	items, err := s.CartMapper.FindByUser(ctx, email)
	if err != nil {
		log.CtxError(ctx, "查询购物车失败: %v", err)
		return nil, consts.ErrQuery
	}
	if len(items) == 0 {
		return []*yoga.Class{}, nil
	}

	ids := lo.Map(items, func(item *cart.Cart, _ int) string { return item.ClassId })
	classes, err := s.ClassMapper.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	byId := lo.KeyBy(classes, func(c *class.Class) string { return c.ID.Hex() })
	return lo.FilterMap(ids, func(id string, _ int) (*yoga.Class, bool) {
		c, ok := byId[id]
		return toClassDTO(c), ok
	}), nil
}

func (s *CartService) DeleteCartItem(ctx context.Context, classId string) (*yoga.DeleteResp, error) {
	email, err := callerEmail(ctx, "")
	if err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(classId) {
		return nil, consts.ErrInvalidObjectId
	}
	n, err := s.CartMapper.DeleteOne(ctx, classId, email)
	if err != nil {
		log.CtxError(ctx, "删除购物车失败: %v", err)
		return nil, consts.ErrDelete
	}
	if n == 0 {
		return nil, consts.ErrNotFound
	}
	return &yoga.DeleteResp{Acknowledged: true, DeletedCount: n}, nil
}
