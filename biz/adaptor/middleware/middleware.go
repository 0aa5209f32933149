package middleware

import (
	"context"
	"time"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/user"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

type Authorizer interface {
	Authorize(ctx context.Context, email, role string) (*user.User, error)
}

// RequestID 透传或生成请求 id, 并附加到日志字段
func RequestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(consts.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(consts.RequestIDHeader, id)
		c.Next(logx.ContextWithFields(ctx, logx.Field("requestId", id)))
	}
}

// Deadline 限制整个请求的处理时间
func Deadline(timeout time.Duration) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		c.Next(ctx)
	}
}

// RequireToken 缺少令牌返回 401, 令牌格式错误、签名错误或过期返回 403
func RequireToken() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		header := string(c.GetHeader(consts.Authorization))
		if header == "" {
			abort(ctx, c, consts.ErrMissingCredential)
			return
		}
		token, ok := adaptor.BearerToken(header)
		if !ok {
			abort(ctx, c, consts.ErrForbidden)
			return
		}
		userMeta, err := adaptor.VerifyToken(token, config.GetConfig().Auth.SecretKey)
		if err != nil {
			abort(ctx, c, consts.ErrForbidden)
			return
		}
		c.Next(adaptor.InjectUserMeta(ctx, userMeta))
	}
}

// RequireRole 须在 RequireToken 之后使用
func RequireRole(auth Authorizer, role string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if _, err := auth.Authorize(ctx, adaptor.ExtractUserMeta(ctx).GetEmail(), role); err != nil {
			abort(ctx, c, err)
			return
		}
		c.Next(ctx)
	}
}

func abort(ctx context.Context, c *app.RequestContext, err error) {
	adaptor.PostProcess(ctx, c, nil, nil, err)
	c.Abort()
}
