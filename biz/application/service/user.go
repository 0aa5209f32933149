package service

import (
	"context"
	"errors"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/util/log"
	"yoga-master/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IUserService interface {
	NewUser(ctx context.Context, req *yoga.NewUserReq) (*yoga.InsertResp, error)
	ListUsers(ctx context.Context, p *yoga.PaginationOptions) ([]*yoga.User, int64, error)
	GetUser(ctx context.Context, id string) (*yoga.User, error)
	GetUserByEmail(ctx context.Context, email string) (*yoga.User, error)
	ListInstructors(ctx context.Context) ([]*yoga.User, error)
	UpdateUser(ctx context.Context, req *yoga.UpdateUserReq) (*yoga.UpdateResp, error)
	DeleteUser(ctx context.Context, id string) (*yoga.DeleteResp, error)
}

type UserService struct {
	UserMapper user.IMongoMapper
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// NewUser 注册, 新用户一律为学生, 角色只能由管理员修改
func (s *UserService) NewUser(ctx context.Context, req *yoga.NewUserReq) (*yoga.InsertResp, error) {
	u := new(user.User)
	if err := copier.Copy(u, req); err != nil {
		return nil, consts.InvalidParams(err)
	}
	u.Role = consts.RoleStudent

	if err := s.UserMapper.Insert(ctx, u); err != nil {
		if errors.Is(err, consts.ErrRepeatedSignUp) {
			return nil, err
		}
		log.CtxError(ctx, "创建用户失败: %v", err)
		return nil, consts.ErrCreateUser
	}
	return &yoga.InsertResp{Acknowledged: true, InsertedId: u.ID.Hex()}, nil
}

func (s *UserService) ListUsers(ctx context.Context, p *yoga.PaginationOptions) ([]*yoga.User, int64, error) {
	skip, limit := page.ParsePageOpt(p)
	users, total, err := s.UserMapper.FindMany(ctx, skip, limit)
	if err != nil {
		log.CtxError(ctx, "查询用户列表失败: %v", err)
		return nil, 0, consts.ErrQuery
	}
	return toUserDTOs(users), total, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*yoga.User, error) {
	u, err := s.UserMapper.FindOne(ctx, id)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	return toUserDTO(u), nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*yoga.User, error) {
	if email == "" {
		return nil, consts.ErrInvalidParams
	}
	u, err := s.UserMapper.FindOneByEmail(ctx, email)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	return toUserDTO(u), nil
}

func (s *UserService) ListInstructors(ctx context.Context) ([]*yoga.User, error) {
	users, err := s.UserMapper.FindByRole(ctx, consts.RoleInstructor)
	if err != nil {
		log.CtxError(ctx, "查询讲师失败: %v", err)
		return nil, consts.ErrQuery
	}
	return toUserDTOs(users), nil
}

// UpdateUser 仅更新已存在的用户
func (s *UserService) UpdateUser(ctx context.Context, req *yoga.UpdateUserReq) (*yoga.UpdateResp, error) {
	oid, err := primitive.ObjectIDFromHex(req.Id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	if !lo.Contains(consts.Roles, req.Role) {
		return nil, consts.InvalidParams(errors.New("unknown role: " + req.Role))
	}

	u := &user.User{
		ID:       oid,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Address:  req.Address,
		About:    req.About,
		PhotoUrl: req.PhotoUrl,
		Skills:   req.Skills,
	}
	res, err := s.UserMapper.Update(ctx, u)
	if err != nil {
		if errors.Is(err, consts.ErrRepeatedSignUp) {
			return nil, err
		}
		log.CtxError(ctx, "更新用户失败: %v", err)
		return nil, consts.ErrUpdate
	}
	if res.MatchedCount == 0 {
		return nil, consts.ErrNotFound
	}
	return toUpdateResp(res), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (*yoga.DeleteResp, error) {
	n, err := s.UserMapper.Delete(ctx, id)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	if n == 0 {
		return nil, consts.ErrNotFound
	}
	return &yoga.DeleteResp{Acknowledged: true, DeletedCount: n}, nil
}

// storeError 保留业务错误, 其余存储错误统一为查询失败
func storeError(ctx context.Context, err error) error {
	var en *consts.Errno
	if errors.As(err, &en) {
		return en
	}
	log.CtxError(ctx, "存储操作失败: %v", err)
	return consts.ErrQuery
}
