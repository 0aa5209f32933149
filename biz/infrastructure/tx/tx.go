package tx

import (
	"context"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/mongo"
)

// Scope 事务内的步骤通过 OnRollback 登记补偿动作
type Scope interface {
	OnRollback(fn func(ctx context.Context) error)
}

type Transactor interface {
	// Run fn 返回错误时, 已完成的写入全部撤销
	Run(ctx context.Context, fn func(ctx context.Context, s Scope) error) error
}

func NewTransactor(config *config.Config) Transactor {
	if config.Checkout.Transactional {
		return NewMongoTransactor(config)
	}
	return NewSagaTransactor()
}

// MongoTransactor 多文档事务, 要求 Mongo 以副本集运行
type MongoTransactor struct {
	model *mon.Model
}

// 事务中的各 mapper 与此处共享同一 URL 的客户端
const sessionCollection = "payments"

func NewMongoTransactor(config *config.Config) *MongoTransactor {
	log.Info("NewMongoTransactor db: %s", config.Mongo.DB)
	return &MongoTransactor{
		model: mon.MustNewModel(config.Mongo.URL, config.Mongo.DB, sessionCollection),
	}
}

func (t *MongoTransactor) Run(ctx context.Context, fn func(ctx context.Context, s Scope) error) error {
	sess, err := t.model.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		// 事务中止即回滚, 无需补偿
		return nil, fn(sc, noopScope{})
	})
	return err
}

type noopScope struct{}

func (noopScope) OnRollback(func(ctx context.Context) error) {}

// SagaTransactor 按相反顺序执行已登记的补偿
type SagaTransactor struct{}

func NewSagaTransactor() *SagaTransactor {
	return &SagaTransactor{}
}

func (t *SagaTransactor) Run(ctx context.Context, fn func(ctx context.Context, s Scope) error) error {
	s := &sagaScope{}
	if err := fn(ctx, s); err != nil {
		s.compensate(context.WithoutCancel(ctx))
		return err
	}
	return nil
}

type sagaScope struct {
	compensations []func(ctx context.Context) error
}

func (s *sagaScope) OnRollback(fn func(ctx context.Context) error) {
	s.compensations = append(s.compensations, fn)
}

func (s *sagaScope) compensate(ctx context.Context) {
	for i := len(s.compensations) - 1; i >= 0; i-- {
		if err := s.compensations[i](ctx); err != nil {
			log.CtxError(ctx, "compensation %d failed: %v", i, err)
		}
	}
}
