package service

import (
	"context"
	"errors"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/applied"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IInstructorService interface {
	Apply(ctx context.Context, req *yoga.ApplyInstructorReq) (*yoga.InsertResp, error)
	GetApplication(ctx context.Context, email string) (*yoga.Application, error)
}

type InstructorService struct {
	AppliedMapper applied.IMongoMapper
}

var InstructorServiceSet = wire.NewSet(
	wire.Struct(new(InstructorService), "*"),
	wire.Bind(new(IInstructorService), new(*InstructorService)),
)

// Apply 同一邮箱只能申请一次
func (s *InstructorService) Apply(ctx context.Context, req *yoga.ApplyInstructorReq) (*yoga.InsertResp, error) {
	a := &applied.Application{
		Name:       req.Name,
		Email:      req.Email,
		Experience: req.Experience,
		PhotoUrl:   req.PhotoUrl,
	}
	if err := s.AppliedMapper.Insert(ctx, a); err != nil {
		if errors.Is(err, consts.ErrRepeatedApplication) {
			return nil, err
		}
		log.CtxError(ctx, "提交讲师申请失败: %v", err)
		return nil, consts.ErrApply
	}
	return &yoga.InsertResp{Acknowledged: true, InsertedId: a.ID.Hex()}, nil
}

func (s *InstructorService) GetApplication(ctx context.Context, email string) (*yoga.Application, error) {
	if email == "" {
		return nil, consts.ErrInvalidParams
	}
	a, err := s.AppliedMapper.FindOneByEmail(ctx, email)
	if err != nil {
		return nil, storeError(ctx, err)
	}
	return toApplicationDTO(a), nil
}
