package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/cache"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/lock"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/enrolled"
	"yoga-master/biz/infrastructure/repository/payment"
	"yoga-master/biz/infrastructure/tx"
	"yoga-master/biz/infrastructure/util"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 结算步骤, 失败时写入响应
const (
	StepUpdateClasses  = "update-classes"
	StepInsertEnrolled = "insert-enrolled"
	StepClearCart      = "clear-cart"
	StepInsertPayment  = "insert-payment"
)

type ICheckoutService interface {
	CompleteCheckout(ctx context.Context, req *yoga.CheckoutReq) (*yoga.CheckoutResp, error)
}

type CheckoutService struct {
	Transactor     tx.Transactor
	Locker         lock.ICheckoutLocker
	ClassMapper    class.IMongoMapper
	CartMapper     cart.IMongoMapper
	PaymentMapper  payment.IMongoMapper
	EnrolledMapper enrolled.IMongoMapper
	RankingCache   cache.IRankingCacheMapper
}

var CheckoutServiceSet = wire.NewSet(
	wire.Struct(new(CheckoutService), "*"),
	wire.Bind(new(ICheckoutService), new(*CheckoutService)),
)

// DecodeCheckoutReq 解析结算请求体, 未声明的字段保留在 Extra
func DecodeCheckoutReq(body []byte, classId string) (*yoga.CheckoutReq, error) {
	raw := make(map[string]any)
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, consts.InvalidParams(err)
	}
	req := new(yoga.CheckoutReq)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(raw); err != nil {
		return nil, consts.InvalidParams(err)
	}
	req.ClassId = classId
	return req, nil
}

// checkout 校验后的结算参数
type checkout struct {
	email    string
	name     string
	classIds []string
	scope    []string
	amount   float64
	quantity int64
	status   string
	date     time.Time
}

func (s *CheckoutService) validate(ctx context.Context, req *yoga.CheckoutReq) (*checkout, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	email, err := callerEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}
	if req.TransactionId == "" {
		return nil, consts.InvalidParams(errors.New("transactionId is required"))
	}

	ids := lo.Uniq(lo.Compact(req.ClassesId))
	if len(ids) == 0 && req.ClassId != "" {
		ids = []string{req.ClassId}
	}
	if len(ids) == 0 {
		return nil, consts.InvalidParams(errors.New("classesId is required"))
	}
	if _, ok := util.ObjectIDs(ids); !ok {
		return nil, consts.ErrInvalidObjectId
	}
	scope := ids
	if req.ClassId != "" {
		if !lo.Contains(ids, req.ClassId) {
			return nil, consts.InvalidParams(errors.New("classId is not part of classesId"))
		}
		scope = []string{req.ClassId}
	}

	amount, err := util.ToFiniteFloat(req.Amount)
	if err != nil || amount < 0 {
		return nil, consts.InvalidParams(errors.New("invalid amount"))
	}
	quantity, err := cast.ToInt64E(req.Quantity)
	if err != nil || quantity < 0 {
		return nil, consts.InvalidParams(errors.New("invalid quantity"))
	}
	date := time.Now()
	if req.Date != nil {
		if date, err = cast.ToTimeE(req.Date); err != nil {
			return nil, consts.InvalidParams(errors.New("invalid date"))
		}
	}

	return &checkout{
		email:    email,
		name:     lo.Ternary(req.UserName != "", req.UserName, userMeta.Name),
		classIds: ids,
		scope:    scope,
		amount:   amount,
		quantity: lo.Ternary(quantity > 0, quantity, int64(len(ids))),
		status:   lo.Ternary(req.PaymentStatus != "", req.PaymentStatus, consts.PaymentSucceeded),
		date:     date,
	}, nil
}

// CompleteCheckout 占座、写报名记录、清购物车、写支付记录, 要么全部生效要么全部撤销
func (s *CheckoutService) CompleteCheckout(ctx context.Context, req *yoga.CheckoutReq) (*yoga.CheckoutResp, error) {
	co, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	release, err := s.Locker.Acquire(ctx, co.email)
	if err != nil {
		if errors.Is(err, consts.ErrCheckoutInProgress) {
			return nil, err
		}
		log.CtxError(ctx, "获取结算锁失败: %v", err)
		return nil, consts.ErrCall
	}
	defer release()

	exists, err := s.PaymentMapper.ExistsTransaction(ctx, req.TransactionId)
	if err != nil {
		log.CtxError(ctx, "查询交易失败: %v", err)
		return nil, consts.ErrQuery
	}
	if exists {
		return nil, consts.ErrDuplicateTransaction
	}

	resp := new(yoga.CheckoutResp)
	err = s.Transactor.Run(ctx, func(ctx context.Context, scope tx.Scope) error {
		// 1. 逐个课程原子占座
		var matched, modified int64
		for _, id := range co.classIds {
			res, err := s.ClassMapper.Enroll(ctx, id)
			if err != nil {
				return &consts.CheckoutError{Step: StepUpdateClasses, Err: err}
			}
			if res.MatchedCount == 0 {
				return &consts.CheckoutError{Step: StepUpdateClasses, Err: s.seatFailure(ctx, id)}
			}
			scope.OnRollback(func(ctx context.Context) error {
				return s.ClassMapper.Unenroll(ctx, id)
			})
			matched += res.MatchedCount
			modified += res.ModifiedCount
		}
		resp.UpdatedResult = &yoga.UpdateResp{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}

		// 2. 报名记录
		record := &enrolled.Enrolled{
			UserName:      co.name,
			UserEmail:     co.email,
			ClassesId:     co.classIds,
			TransactionId: req.TransactionId,
			Date:          co.date,
		}
		if err := s.EnrolledMapper.Insert(ctx, record); err != nil {
			return &consts.CheckoutError{Step: StepInsertEnrolled, Err: err}
		}
		scope.OnRollback(func(ctx context.Context) error {
			return s.EnrolledMapper.Delete(ctx, record.ID)
		})
		resp.EnrolledResult = &yoga.InsertResp{Acknowledged: true, InsertedId: record.ID.Hex()}

		// 3. 清除购物车
		items, err := s.CartMapper.FindForCheckout(ctx, co.email, co.scope)
		if err != nil {
			return &consts.CheckoutError{Step: StepClearCart, Err: err}
		}
		deleted, err := s.CartMapper.DeleteByIDs(ctx, lo.Map(items, func(item *cart.Cart, _ int) primitive.ObjectID {
			return item.ID
		}))
		if err != nil {
			return &consts.CheckoutError{Step: StepClearCart, Err: err}
		}
		scope.OnRollback(func(ctx context.Context) error {
			return s.CartMapper.InsertMany(ctx, items)
		})
		resp.DeletedResult = &yoga.DeleteResp{Acknowledged: true, DeletedCount: deleted}

		// 4. 支付记录
		p := &payment.Payment{
			UserName:      co.name,
			UserEmail:     co.email,
			ClassesId:     co.classIds,
			TransactionId: req.TransactionId,
			Amount:        co.amount,
			Quantity:      co.quantity,
			PaymentStatus: co.status,
			Date:          co.date,
			Extra:         req.Extra,
		}
		if err := s.PaymentMapper.Insert(ctx, p); err != nil {
			return &consts.CheckoutError{Step: StepInsertPayment, Err: err}
		}
		resp.PaymentResult = &yoga.InsertResp{Acknowledged: true, InsertedId: p.ID.Hex()}
		return nil
	})

	s.invalidate(ctx, co.classIds, err == nil)
	if err != nil {
		log.CtxError(ctx, "结算失败, transactionId=%s, err=%v", req.TransactionId, err)
		return nil, err
	}
	return resp, nil
}

// seatFailure 区分课程不存在、未审核与已满
func (s *CheckoutService) seatFailure(ctx context.Context, id string) error {
	c, err := s.ClassMapper.FindOne(ctx, id)
	switch {
	case errors.Is(err, consts.ErrNotFound):
		return consts.ErrNotFound
	case err != nil:
		return err
	case c.Status != consts.ClassApproved:
		return consts.ErrClassNotApproved
	default:
		return consts.ErrSoldOut
	}
}

// invalidate 异步清除课程缓存, 成功时同时清除排行
func (s *CheckoutService) invalidate(ctx context.Context, ids []string, ranking bool) {
	ctx = context.WithoutCancel(ctx)
	gopool.Go(func() {
		if err := s.ClassMapper.DelCache(ctx, ids...); err != nil {
			log.CtxError(ctx, "清除课程缓存失败: %v", err)
		}
		if !ranking {
			return
		}
		if err := s.RankingCache.Invalidate(ctx); err != nil {
			log.CtxError(ctx, "清除排行缓存失败: %v", err)
		}
	})
}
