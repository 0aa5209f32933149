package lock

import (
	"context"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/redis"
	"yoga-master/biz/infrastructure/util/log"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const checkoutLockPrefix = "lock:checkout:"

type ICheckoutLocker interface {
	// Acquire 同一用户同时只能有一个结算在进行, 已被占用时返回 ErrCheckoutInProgress
	Acquire(ctx context.Context, email string) (release func(), err error)
}

type RedisLocker struct {
	rds    *gozero_redis.Redis
	expire int
}

func NewRedisLocker(config *config.Config) *RedisLocker {
	return &RedisLocker{
		rds:    redis.GetRedis(config),
		expire: config.Checkout.LockExpire,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, email string) (func(), error) {
	lock := gozero_redis.NewRedisLock(l.rds, checkoutLockPrefix+email)
	lock.SetExpire(l.expire)
	ok, err := lock.AcquireCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, consts.ErrCheckoutInProgress
	}
	return func() {
		if _, err := lock.ReleaseCtx(context.WithoutCancel(ctx)); err != nil {
			log.CtxError(ctx, "release checkout lock for %s failed: %v", email, err)
		}
	}, nil
}
