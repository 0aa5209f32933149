package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// AddToCart .
// @router /add-to-cart [POST]
func AddToCart(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.AddToCartReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.CartService.AddToCart(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetCartItem .
// @router /cart-item/:id [GET]
func GetCartItem(ctx context.Context, c *app.RequestContext) {
	req := &yoga.GetCartItemReq{Id: c.Param("id"), Email: c.Query("email")}
	p := provider.Get()
	resp, err := p.CartService.GetCartItem(ctx, req)
	adaptor.PostProcess(ctx, c, req, resp, err)
}

// GetCart .
// @router /cart/:email [GET]
func GetCart(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.CartService.GetCart(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}

// DeleteCartItem .
// @router /delete-cart-item/:id [DELETE]
func DeleteCartItem(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.CartService.DeleteCartItem(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}
