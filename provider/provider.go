package provider

import (
	"yoga-master/biz/application/service"
	"yoga-master/biz/infrastructure/cache"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/gateway"
	"yoga-master/biz/infrastructure/lock"
	"yoga-master/biz/infrastructure/repository/applied"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/repository/enrolled"
	"yoga-master/biz/infrastructure/repository/payment"
	"yoga-master/biz/infrastructure/repository/user"
	"yoga-master/biz/infrastructure/storage"
	"yoga-master/biz/infrastructure/tx"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Set 仅用于测试
func Set(p *Provider) {
	provider = p
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	AuthService       service.IAuthService
	UserService       service.IUserService
	ClassService      service.IClassService
	CartService       service.ICartService
	CheckoutService   service.ICheckoutService
	PaymentService    service.IPaymentService
	StatsService      service.IStatsService
	InstructorService service.IInstructorService
	UploadService     service.IUploadService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.AuthServiceSet,
	service.UserServiceSet,
	service.ClassServiceSet,
	service.CartServiceSet,
	service.CheckoutServiceSet,
	service.PaymentServiceSet,
	service.StatsServiceSet,
	service.InstructorServiceSet,
	service.UploadServiceSet,
)

var MapperSet = wire.NewSet(
	user.NewMongoMapper,
	wire.Bind(new(user.IMongoMapper), new(*user.MongoMapper)),
	class.NewMongoMapper,
	wire.Bind(new(class.IMongoMapper), new(*class.MongoMapper)),
	cart.NewMongoMapper,
	wire.Bind(new(cart.IMongoMapper), new(*cart.MongoMapper)),
	payment.NewMongoMapper,
	wire.Bind(new(payment.IMongoMapper), new(*payment.MongoMapper)),
	enrolled.NewMongoMapper,
	wire.Bind(new(enrolled.IMongoMapper), new(*enrolled.MongoMapper)),
	applied.NewMongoMapper,
	wire.Bind(new(applied.IMongoMapper), new(*applied.MongoMapper)),
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	MapperSet,
	cache.NewRankingCacheMapper,
	wire.Bind(new(cache.IRankingCacheMapper), new(*cache.RankingCacheMapper)),
	lock.NewRedisLocker,
	wire.Bind(new(lock.ICheckoutLocker), new(*lock.RedisLocker)),
	tx.NewTransactor,
	gateway.NewStripeGateway,
	wire.Bind(new(gateway.IPaymentGateway), new(*gateway.StripeGateway)),
	storage.NewS3Storage,
	wire.Bind(new(storage.IObjectStorage), new(*storage.S3Storage)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
