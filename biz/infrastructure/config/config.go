package config

import (
	"os"
	"strings"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var config *Config

// DefaultPort PORT 未设置时使用
const DefaultPort = "5000"

type Auth struct {
	SecretKey    string
	AccessExpire int64 `json:",default=86400"` // 秒
}

type Config struct {
	service.ServiceConf
	ListenOn       string
	State          string `json:",default=dev"`
	RequestTimeout int64  `json:",default=10000"` // 毫秒
	Auth           Auth
	Mongo          struct {
		URL string
		DB  string `json:",default=yoga-master"`
	}
	Cache    cache.CacheConf
	Redis    *redis.RedisConf `json:",optional"`
	Stripe   Stripe
	S3       S3        `json:",optional"`
	Checkout Checkout  `json:",optional"`
	Rank     Rank      `json:",optional"`
	Log      LogConfig `json:",optional"`
}

type Stripe struct {
	SecretKey string
	Currency  string `json:",default=usd"`
}

type S3 struct {
	Region          string `json:",optional"`
	Bucket          string `json:",optional"`
	Endpoint        string `json:",optional"`
	AccessKeyID     string `json:",optional"`
	SecretAccessKey string `json:",optional"`
	PresignExpire   int64  `json:",default=900"` // 秒
}

type Checkout struct {
	// Transactional 为 true 时使用 Mongo 多文档事务，需要副本集；否则走补偿
	Transactional bool `json:",default=true"`
	LockExpire    int  `json:",default=30"` // 秒
}

type Rank struct {
	Expire          int `json:",default=300"` // 秒
	RefreshInterval int `json:",default=60"`  // 秒
}

type LogConfig struct {
	NoLogPaths []string `json:",optional"`
}

func NewConfig() (*Config, error) {
	// .env 可选
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Error("NewConfig load .env failed: %v", err)
	}

	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	log.Info("NewConfig load config from path: %s", path)
	if err := conf.Load(path, c, conf.UseEnv()); err != nil {
		return nil, err
	}
	c.ListenOn = listenOn(c.ListenOn)

	if err := c.SetUp(); err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}

// SetConfig 仅用于测试
func SetConfig(c *Config) {
	config = c
}

// listenOn 补全缺失的端口, 如 "0.0.0.0:" 或空串
func listenOn(addr string) string {
	switch {
	case addr == "":
		return "0.0.0.0:" + DefaultPort
	case strings.HasSuffix(addr, ":"):
		return addr + DefaultPort
	default:
		return addr
	}
}
