package yoga

import (
	"context"
	"net/http"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/spf13/cast"
)

// Greeting 健康检查
// @router / [GET]
func Greeting(ctx context.Context, c *app.RequestContext) {
	c.String(http.StatusOK, consts.Greeting)
}

// Ping .
// @router /ping [GET]
func Ping(ctx context.Context, c *app.RequestContext) {
	c.String(http.StatusOK, "pong")
}

func pageOptions(c *app.RequestContext) (*yoga.PaginationOptions, error) {
	p := new(yoga.PaginationOptions)
	if err := c.BindQuery(p); err != nil {
		return nil, consts.InvalidParams(err)
	}
	return p, nil
}

// postList 列表原样返回, 总数放在响应头
func postList(ctx context.Context, c *app.RequestContext, req, resp any, total int64, err error) {
	if err == nil {
		c.Header(consts.TotalHeader, cast.ToString(total))
	}
	adaptor.PostProcess(ctx, c, req, resp, err)
}
