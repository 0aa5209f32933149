package service

import (
	"context"
	"errors"
	"math"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/gateway"
	"yoga-master/biz/infrastructure/repository/payment"
	"yoga-master/biz/infrastructure/util"
	"yoga-master/biz/infrastructure/util/log"
	"yoga-master/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IPaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *yoga.CreatePaymentIntentReq) (*yoga.CreatePaymentIntentResp, error)
	PaymentHistory(ctx context.Context, email string, p *yoga.PaginationOptions) ([]*yoga.Payment, int64, error)
	PaymentHistoryLength(ctx context.Context, email string) (*yoga.PaymentHistoryLengthResp, error)
}

type PaymentService struct {
	Gateway       gateway.IPaymentGateway
	PaymentMapper payment.IMongoMapper
}

var PaymentServiceSet = wire.NewSet(
	wire.Struct(new(PaymentService), "*"),
	wire.Bind(new(IPaymentService), new(*PaymentService)),
)

// CreatePaymentIntent price 以元为单位, 网关以分为单位
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req *yoga.CreatePaymentIntentReq) (*yoga.CreatePaymentIntentResp, error) {
	price, err := util.ToFiniteFloat(req.Price)
	if err != nil || price <= 0 {
		return nil, consts.InvalidParams(errors.New("price must be a positive number"))
	}
	amount := int64(math.Round(price * consts.CentsPerUnit))

	secret, err := s.Gateway.CreatePaymentIntent(ctx, amount)
	if err != nil {
		return nil, consts.ErrCreatePaymentIntent
	}
	return &yoga.CreatePaymentIntentResp{ClientSecret: secret}, nil
}

func (s *PaymentService) PaymentHistory(ctx context.Context, email string, p *yoga.PaginationOptions) ([]*yoga.Payment, int64, error) {
	if email == "" {
		return nil, 0, consts.ErrInvalidParams
	}
	skip, limit := page.ParsePageOpt(p)
	payments, total, err := s.PaymentMapper.FindByEmail(ctx, email, skip, limit)
	if err != nil {
		log.CtxError(ctx, "查询支付记录失败: %v", err)
		return nil, 0, consts.ErrQuery
	}
	return lo.Map(payments, func(p *payment.Payment, _ int) *yoga.Payment { return toPaymentDTO(p) }), total, nil
}

func (s *PaymentService) PaymentHistoryLength(ctx context.Context, email string) (*yoga.PaymentHistoryLengthResp, error) {
	if email == "" {
		return nil, consts.ErrInvalidParams
	}
	total, err := s.PaymentMapper.CountByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "统计支付记录失败: %v", err)
		return nil, consts.ErrQuery
	}
	return &yoga.PaymentHistoryLengthResp{Total: total}, nil
}
