package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	rankingCachePrefix = "ranking"

	PopularClassesKey     = "popular_classes"
	PopularInstructorsKey = "popular_instructors"
)

type IRankingCacheMapper interface {
	// Get 未命中时返回 false
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context) error
}

type RankingCacheMapper struct {
	rds    *gozero_redis.Redis
	expire int
}

func NewRankingCacheMapper(config *config.Config) *RankingCacheMapper {
	return &RankingCacheMapper{
		rds:    redis.GetRedis(config),
		expire: config.Rank.Expire,
	}
}

// Get 从缓存获取排行结果
func (m *RankingCacheMapper) Get(ctx context.Context, key string, v any) (bool, error) {
	cachedData, err := m.rds.GetCtx(ctx, m.buildCacheKey(key))
	if err != nil {
		return false, err
	}
	if cachedData == "" {
		return false, nil
	}
	if err = json.Unmarshal([]byte(cachedData), v); err != nil {
		return false, fmt.Errorf("unmarshal cached data failed: %w", err)
	}
	return true, nil
}

// Set 将排行结果存入缓存
func (m *RankingCacheMapper) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}
	return m.rds.SetexCtx(ctx, m.buildCacheKey(key), string(data), m.expire)
}

// Invalidate 报名人数变化后清除所有排行
func (m *RankingCacheMapper) Invalidate(ctx context.Context) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey(PopularClassesKey), m.buildCacheKey(PopularInstructorsKey))
	return err
}

func (m *RankingCacheMapper) buildCacheKey(key string) string {
	return fmt.Sprintf("%s:%s", rankingCachePrefix, key)
}
