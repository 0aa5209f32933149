package service

import (
	"context"
	"errors"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/cache"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/util"
	"yoga-master/biz/infrastructure/util/log"
	"yoga-master/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IClassService interface {
	NewClass(ctx context.Context, req *yoga.NewClassReq) (*yoga.InsertResp, error)
	ListClasses(ctx context.Context, status string, p *yoga.PaginationOptions) ([]*yoga.Class, int64, error)
	ListByInstructor(ctx context.Context, email string) ([]*yoga.Class, error)
	GetClass(ctx context.Context, id string) (*yoga.Class, error)
	ChangeStatus(ctx context.Context, req *yoga.ChangeStatusReq) (*yoga.UpdateResp, error)
	UpdateClass(ctx context.Context, req *yoga.UpdateClassReq) (*yoga.UpdateResp, error)
}

type ClassService struct {
	ClassMapper  class.IMongoMapper
	RankingCache cache.IRankingCacheMapper
}

var ClassServiceSet = wire.NewSet(
	wire.Struct(new(ClassService), "*"),
	wire.Bind(new(IClassService), new(*ClassService)),
)

// NewClass 新课程必须经过审核, 讲师取自令牌
func (s *ClassService) NewClass(ctx context.Context, req *yoga.NewClassReq) (*yoga.InsertResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetEmail() == "" {
		return nil, consts.ErrNotAuthentication
	}
	price, seats, err := parseClassNumbers(req.Price, req.AvailableSeats)
	if err != nil {
		return nil, err
	}

	c := &class.Class{
		Name:            req.Name,
		InstructorName:  lo.Ternary(req.InstructorName != "", req.InstructorName, userMeta.Name),
		InstructorEmail: userMeta.GetEmail(),
		Description:     req.Description,
		Price:           price,
		AvailableSeats:  seats,
		Image:           req.Image,
		VideoLink:       req.VideoLink,
		Status:          consts.ClassPending,
	}
	if err = s.ClassMapper.Insert(ctx, c); err != nil {
		log.CtxError(ctx, "创建课程失败: %v", err)
		return nil, consts.ErrCreateClass
	}
	return &yoga.InsertResp{Acknowledged: true, InsertedId: c.ID.Hex()}, nil
}

// ListClasses status 为空时返回所有课程
func (s *ClassService) ListClasses(ctx context.Context, status string, p *yoga.PaginationOptions) ([]*yoga.Class, int64, error) {
	skip, limit := page.ParsePageOpt(p)
	classes, total, err := s.ClassMapper.FindMany(ctx, status, skip, limit)
	if err != nil {
		log.CtxError(ctx, "查询课程失败: %v", err)
		return nil, 0, consts.ErrQuery
	}
	return toClassDTOs(classes), total, nil
}

func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]*yoga.Class, error) {
	if email == "" {
		return nil, consts.ErrInvalidParams
	}
	classes, err := s.ClassMapper.FindByInstructor(ctx, email)
	if err != nil {
		log.CtxError(ctx, "查询讲师课程失败: %v", err)
		return nil, consts.ErrQuery
	}
	return toClassDTOs(classes), nil
}

func (s *ClassService) GetClass(ctx context.Context, id string) (*yoga.Class, error) {
	c, err := s.ClassMapper.FindOne(ctx, id)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	return toClassDTO(c), nil
}

func (s *ClassService) ChangeStatus(ctx context.Context, req *yoga.ChangeStatusReq) (*yoga.UpdateResp, error) {
	if !lo.Contains(consts.ClassStatuses, req.Status) {
		return nil, consts.InvalidParams(errors.New("unknown status: " + req.Status))
	}
	res, err := s.ClassMapper.UpdateStatus(ctx, req.Id, req.Status, req.Reason)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	if res.MatchedCount == 0 {
		return nil, consts.ErrNotFound
	}
	s.invalidateRanking(ctx)
	return toUpdateResp(res), nil
}

// UpdateClass 只有课程所属讲师可以修改, 修改后重新审核
func (s *ClassService) UpdateClass(ctx context.Context, req *yoga.UpdateClassReq) (*yoga.UpdateResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetEmail() == "" {
		return nil, consts.ErrNotAuthentication
	}
	oid, err := primitive.ObjectIDFromHex(req.Id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	price, seats, err := parseClassNumbers(req.Price, req.AvailableSeats)
	if err != nil {
		return nil, err
	}

	old, err := s.ClassMapper.FindOne(ctx, req.Id)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	if old.InstructorEmail != userMeta.GetEmail() {
		return nil, consts.ErrNotOwner
	}

	res, err := s.ClassMapper.UpdateContent(ctx, &class.Class{
		ID:             oid,
		Name:           req.Name,
		Description:    req.Description,
		Price:          price,
		AvailableSeats: seats,
		Image:          req.Image,
		VideoLink:      req.VideoLink,
	})
	if err != nil {
		log.CtxError(ctx, "更新课程失败: %v", err)
		return nil, consts.ErrUpdate
	}
	if res.MatchedCount == 0 {
		return nil, consts.ErrNotFound
	}
	s.invalidateRanking(ctx)
	return toUpdateResp(res), nil
}

func (s *ClassService) invalidateRanking(ctx context.Context) {
	if err := s.RankingCache.Invalidate(ctx); err != nil {
		log.CtxError(ctx, "清除排行缓存失败: %v", err)
	}
}

// parseClassNumbers price 与 availableSeats 可以是数字或数字字符串, 均不能为负
func parseClassNumbers(price, seats any) (float64, int64, error) {
	if price == nil || seats == nil {
		return 0, 0, consts.InvalidParams(errors.New("price and availableSeats are required"))
	}
	p, err := util.ToFiniteFloat(price)
	if err != nil || p < 0 {
		return 0, 0, consts.InvalidParams(errors.New("invalid price"))
	}
	n, err := cast.ToInt64E(seats)
	if err != nil || n < 0 {
		return 0, 0, consts.InvalidParams(errors.New("invalid availableSeats"))
	}
	return p, n, nil
}
