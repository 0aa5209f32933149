package redis

import (
	"sync"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

var (
	instance *redis.Redis
	once     sync.Once
)

// GetRedis 排行缓存与结算锁共用的客户端
func GetRedis(c *config.Config) *redis.Redis {
	once.Do(func() {
		rc := confOf(c)
		log.Info("GetRedis host: %s, type: %s", rc.Host, rc.Type)
		instance = redis.MustNewRedis(rc)
	})
	return instance
}

// confOf 未单独配置 Redis 时复用缓存集群的第一个节点
func confOf(c *config.Config) redis.RedisConf {
	if c.Redis != nil && c.Redis.Host != "" {
		return *c.Redis
	}
	if len(c.Cache) > 0 {
		return c.Cache[0].RedisConf
	}
	return redis.RedisConf{}
}
