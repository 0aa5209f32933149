package adaptor

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/util"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userMetaKey struct{}

var validate = validator.New()

func InjectUserMeta(ctx context.Context, user *yoga.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey{}, user)
}

// ExtractUserMeta 未经过令牌校验时返回空的 UserMeta
func ExtractUserMeta(ctx context.Context) *yoga.UserMeta {
	user, ok := ctx.Value(userMetaKey{}).(*yoga.UserMeta)
	if !ok || user == nil {
		return new(yoga.UserMeta)
	}
	return user
}

// SignToken 生成 HS256 jwt, 返回令牌与过期时间戳
func SignToken(user *yoga.UserMeta, secret string, expire int64) (string, int64, error) {
	iat := time.Now().Unix()
	exp := iat + expire
	claims := jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"iat":   iat,
		"exp":   exp,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return tokenString, exp, nil
}

// VerifyToken 校验签名、算法与有效期
func VerifyToken(tokenString, secret string) (*yoga.UserMeta, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is not valid")
	}
	user := new(yoga.UserMeta)
	if err = mapstructure.Decode(map[string]any(claims), user); err != nil {
		return nil, err
	}
	if user.Email == "" {
		return nil, errors.New("token carries no email")
	}
	return user, nil
}

// BearerToken 取出 Authorization 头中的令牌, 格式不对时返回 false
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, consts.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, consts.BearerPrefix))
	return token, token != ""
}

// BindAndValidate 绑定请求并按 validate 标签校验
func BindAndValidate(c *app.RequestContext, req any) error {
	if err := c.Bind(req); err != nil {
		return consts.InvalidParams(err)
	}
	if err := validate.Struct(req); err != nil {
		return consts.InvalidParams(err)
	}
	return nil
}

// PostProcess 统一输出响应, 错误按状态码映射为 http 状态
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	if path := string(c.Path()); !noLog(path) {
		log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", path, util.JSONF(req), util.JSONF(resp), err)
	}
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	body := &yoga.ErrorResp{Code: int64(codes.Unknown), Message: err.Error()}
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		s := se.GRPCStatus()
		body.Code = int64(s.Code())
		body.Message = s.Message()
	}
	var ce *consts.CheckoutError
	if errors.As(err, &ce) {
		body.Step = ce.Step
	}
	c.JSON(HTTPStatus(codes.Code(body.Code)), body)
}

func noLog(path string) bool {
	c := config.GetConfig()
	return c != nil && lo.Contains(c.Log.NoLogPaths, path)
}

func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated, consts.ErrUnauthorized.Code():
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition, codes.Aborted:
		return http.StatusConflict
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusBadGateway
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
