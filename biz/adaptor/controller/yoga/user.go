package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// NewUser .
// @router /new-user [POST]
func NewUser(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.NewUserReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.UserService.NewUser(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListUsers .
// @router /users [GET]
func ListUsers(ctx context.Context, c *app.RequestContext) {
	req, err := pageOptions(c)
	if err != nil {
		adaptor.PostProcess(ctx, c, req, nil, err)
		return
	}

	p := provider.Get()
	resp, total, err := p.UserService.ListUsers(ctx, req)
	postList(ctx, c, req, resp, total, err)
}

// GetUser .
// @router /users/:id [GET]
func GetUser(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.UserService.GetUser(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

// GetUserByEmail .
// @router /user/:email [GET]
func GetUserByEmail(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.UserService.GetUserByEmail(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}

// ListInstructors .
// @router /instructors [GET]
func ListInstructors(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.UserService.ListInstructors(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// UpdateUser .
// @router /update-user/:id [PUT]
func UpdateUser(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.UpdateUserReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	req.Id = c.Param("id")

	p := provider.Get()
	resp, err := p.UserService.UpdateUser(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteUser .
// @router /delete-user/:id [DELETE]
func DeleteUser(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.UserService.DeleteUser(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

// SetToken .
// @router /api/set-token [POST]
func SetToken(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.SetTokenReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.SetToken(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
