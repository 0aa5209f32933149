package service

import (
	"context"
	"errors"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IAuthService interface {
	// Authorize 每次都重新读取用户, 角色不符或用户不存在时返回 ErrUnauthorized
	Authorize(ctx context.Context, email, role string) (*user.User, error)
	SetToken(ctx context.Context, req *yoga.SetTokenReq) (*yoga.SetTokenResp, error)
}

type AuthService struct {
	Config     *config.Config
	UserMapper user.IMongoMapper
}

var AuthServiceSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
)

func (s *AuthService) Authorize(ctx context.Context, email, role string) (*user.User, error) {
	if email == "" {
		return nil, consts.ErrMissingCredential
	}
	u, err := s.UserMapper.FindOneByEmail(ctx, email)
	switch {
	case errors.Is(err, consts.ErrNotFound):
		log.CtxInfo(ctx, "authorize %s as %s: user not found", email, role)
		return nil, consts.ErrUnauthorized
	case err != nil:
		log.CtxError(ctx, "authorize %s as %s: %v", email, role, err)
		return nil, consts.ErrQuery
	case u.Role != role:
		return nil, consts.ErrUnauthorized
	}
	return u, nil
}

func (s *AuthService) SetToken(ctx context.Context, req *yoga.SetTokenReq) (*yoga.SetTokenResp, error) {
	token, exp, err := adaptor.SignToken(&yoga.UserMeta{Email: req.Email, Name: req.Name},
		s.Config.Auth.SecretKey, s.Config.Auth.AccessExpire)
	if err != nil {
		log.CtxError(ctx, "签发令牌失败: %v", err)
		return nil, consts.ErrSignToken
	}
	return &yoga.SetTokenResp{Token: token, AccessExpire: exp}, nil
}
