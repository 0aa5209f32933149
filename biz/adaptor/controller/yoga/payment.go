package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/application/service"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// CreatePaymentIntent .
// @router /create-payment-intent [POST]
func CreatePaymentIntent(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.CreatePaymentIntentReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.PaymentService.CreatePaymentIntent(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PaymentInfo 结算, ?classId= 表示单个课程直接购买
// @router /payment-info [POST]
func PaymentInfo(ctx context.Context, c *app.RequestContext) {
	req, err := service.DecodeCheckoutReq(c.Request.Body(), c.Query("classId"))
	if err != nil {
		adaptor.PostProcess(ctx, c, req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.CheckoutService.CompleteCheckout(ctx, req)
	adaptor.PostProcess(ctx, c, req, resp, err)
}

// PaymentHistory .
// @router /payment-history/:email [GET]
func PaymentHistory(ctx context.Context, c *app.RequestContext) {
	req, err := pageOptions(c)
	if err != nil {
		adaptor.PostProcess(ctx, c, req, nil, err)
		return
	}

	p := provider.Get()
	resp, total, err := p.PaymentService.PaymentHistory(ctx, c.Param("email"), req)
	postList(ctx, c, req, resp, total, err)
}

// PaymentHistoryLength .
// @router /payment-history-length/:email [GET]
func PaymentHistoryLength(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.PaymentService.PaymentHistoryLength(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}
