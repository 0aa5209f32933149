package yoga

import (
	"context"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// AsInstructor .
// @router /as-instructor [POST]
func AsInstructor(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.ApplyInstructorReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.InstructorService.Apply(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// AppliedInstructor .
// @router /applied-instructors/:email [GET]
func AppliedInstructor(ctx context.Context, c *app.RequestContext) {
	email := c.Param("email")
	p := provider.Get()
	resp, err := p.InstructorService.GetApplication(ctx, email)
	adaptor.PostProcess(ctx, c, email, resp, err)
}

// ApplySignedUrl .
// @router /upload-url [POST]
func ApplySignedUrl(ctx context.Context, c *app.RequestContext) {
	var err error
	var req yoga.ApplySignedUrlReq
	if err = adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.UploadService.ApplySignedUrl(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
