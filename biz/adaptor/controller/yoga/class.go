package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// NewClass .
// @router /new-class [POST]
func NewClass(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.NewClassReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.NewClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListApprovedClasses 同时服务 /classes 与 /approved-classes
// @router /classes [GET]
func ListApprovedClasses(ctx context.Context, c *app.RequestContext) {
	listClasses(ctx, c, consts.ClassApproved)
}

// ManageClasses .
// @router /manage-classes [GET]
func ManageClasses(ctx context.Context, c *app.RequestContext) {
	listClasses(ctx, c, "")
}

func listClasses(ctx context.Context, c *app.RequestContext, status string) {
	req, err := pageOptions(c)
	if err != nil {
		adaptor.PostProcess(ctx, c, req, nil, err)
		return
	}

	p := provider.Get()
	resp, total, err := p.ClassService.ListClasses(ctx, status, req)
	postList(ctx, c, req, resp, total, err)
}

// ListInstructorClasses .
// @router /classes/:email [GET]
func ListInstructorClasses(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.ClassService.ListByInstructor(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}

// ChangeStatus .
// @router /change-status/:id [PATCH]
func ChangeStatus(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.ChangeStatusReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	req.Id = c.Param("id")

	p := provider.Get()
	resp, err := p.ClassService.ChangeStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetClass .
// @router /class/:id [GET]
func GetClass(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.ClassService.GetClass(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

// UpdateClass .
// @router /update-class/:id [PUT]
func UpdateClass(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.UpdateClassReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	req.Id = c.Param("id")

	p := provider.Get()
	resp, err := p.ClassService.UpdateClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PopularClasses .
// @router /popular_classes [GET]
func PopularClasses(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StatsService.PopularClasses(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
