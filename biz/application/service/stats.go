package service

import (
	"context"
	"time"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/cache"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/enrolled"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/mr"
)

type IStatsService interface {
	PopularClasses(ctx context.Context) ([]*yoga.Class, error)
	PopularInstructors(ctx context.Context) ([]*yoga.PopularInstructor, error)
	AdminStatus(ctx context.Context) (*yoga.AdminStatusResp, error)
	EnrolledClasses(ctx context.Context, email string) ([]*yoga.EnrolledClass, error)
	StartRefresher(ctx context.Context) error
}

type StatsService struct {
	Config         *config.Config
	ClassMapper    class.IMongoMapper
	UserMapper     user.IMongoMapper
	EnrolledMapper enrolled.IMongoMapper
	RankingCache   cache.IRankingCacheMapper
}

var StatsServiceSet = wire.NewSet(
	wire.Struct(new(StatsService), "*"),
	wire.Bind(new(IStatsService), new(*StatsService)),
)

// PopularClasses 优先读缓存
func (s *StatsService) PopularClasses(ctx context.Context) ([]*yoga.Class, error) {
	var classes []*yoga.Class
	if ok, err := s.RankingCache.Get(ctx, cache.PopularClassesKey, &classes); err == nil && ok {
		return classes, nil
	} else if err != nil {
		log.CtxError(ctx, "读取热门课程缓存失败: %v", err)
	}
	return s.loadPopularClasses(ctx)
}

func (s *StatsService) loadPopularClasses(ctx context.Context) ([]*yoga.Class, error) {
	found, err := s.ClassMapper.FindPopular(ctx, consts.PopularLimit)
	if err != nil {
		log.CtxError(ctx, "查询热门课程失败: %v", err)
		return nil, consts.ErrGetRanking
	}
	classes := toClassDTOs(found)
	if err = s.RankingCache.Set(ctx, cache.PopularClassesKey, classes); err != nil {
		log.CtxError(ctx, "写入热门课程缓存失败: %v", err)
	}
	return classes, nil
}

func (s *StatsService) PopularInstructors(ctx context.Context) ([]*yoga.PopularInstructor, error) {
	var instructors []*yoga.PopularInstructor
	if ok, err := s.RankingCache.Get(ctx, cache.PopularInstructorsKey, &instructors); err == nil && ok {
		return instructors, nil
	} else if err != nil {
		log.CtxError(ctx, "读取热门讲师缓存失败: %v", err)
	}
	return s.loadPopularInstructors(ctx)
}

func (s *StatsService) loadPopularInstructors(ctx context.Context) ([]*yoga.PopularInstructor, error) {
	ranks, err := s.ClassMapper.PopularInstructors(ctx, consts.PopularLimit)
	if err != nil {
		log.CtxError(ctx, "查询热门讲师失败: %v", err)
		return nil, consts.ErrGetRanking
	}
	instructors := lo.Map(ranks, func(r *class.InstructorRank, _ int) *yoga.PopularInstructor {
		dto := &yoga.PopularInstructor{Instructor: toUserDTO(r.Instructor), TotalEnrolled: r.TotalEnrolled}
		if dto.Instructor == nil {
			dto.Instructor = &yoga.User{Email: r.Email}
		}
		return dto
	})
	if err = s.RankingCache.Set(ctx, cache.PopularInstructorsKey, instructors); err != nil {
		log.CtxError(ctx, "写入热门讲师缓存失败: %v", err)
	}
	return instructors, nil
}

// AdminStatus 并发统计各项数量
func (s *StatsService) AdminStatus(ctx context.Context) (*yoga.AdminStatusResp, error) {
	resp := new(yoga.AdminStatusResp)
	err := mr.Finish(func() (err error) {
		resp.ApprovedClasses, err = s.ClassMapper.CountByStatus(ctx, consts.ClassApproved)
		return
	}, func() (err error) {
		resp.PendingClasses, err = s.ClassMapper.CountByStatus(ctx, consts.ClassPending)
		return
	}, func() (err error) {
		resp.TotalClasses, err = s.ClassMapper.CountByStatus(ctx, "")
		return
	}, func() (err error) {
		resp.Instructors, err = s.UserMapper.CountByRole(ctx, consts.RoleInstructor)
		return
	}, func() (err error) {
		resp.TotalEnrolled, err = s.EnrolledMapper.Count(ctx)
		return
	})
	if err != nil {
		log.CtxError(ctx, "统计失败: %v", err)
		return nil, consts.ErrGetStatus
	}
	return resp, nil
}

func (s *StatsService) EnrolledClasses(ctx context.Context, email string) ([]*yoga.EnrolledClass, error) {
	email, err := callerEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	found, err := s.EnrolledMapper.FindClasses(ctx, email)
	if err != nil {
		log.CtxError(ctx, "查询已报名课程失败: %v", err)
		return nil, consts.ErrQuery
	}
	return lo.Map(found, func(e *enrolled.EnrolledClass, _ int) *yoga.EnrolledClass {
		return &yoga.EnrolledClass{Classes: toClassDTO(e.Classes), Instructor: toUserDTO(e.Instructor)}
	}), nil
}

// StartRefresher 定时重建排行缓存
func (s *StatsService) StartRefresher(ctx context.Context) error {
	interval := time.Duration(s.Config.Rank.RefreshInterval) * time.Second
	if interval <= 0 {
		return nil
	}
	log.Info("启动排行刷新定时器, interval=%s", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()

	return nil
}

func (s *StatsService) refresh(ctx context.Context) {
	if _, err := s.loadPopularClasses(ctx); err != nil {
		log.Error("刷新热门课程失败: %v", err)
	}
	if _, err := s.loadPopularInstructors(ctx); err != nil {
		log.Error("刷新热门讲师失败: %v", err)
	}
}
