package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// PopularInstructors .
// @router /popular-instructors [GET]
func PopularInstructors(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StatsService.PopularInstructors(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// AdminStatus .
// @router /admin-status [GET]
func AdminStatus(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StatsService.AdminStatus(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// EnrolledClasses .
// @router /enrolled-classes/:email [GET]
func EnrolledClasses(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.StatsService.EnrolledClasses(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}
