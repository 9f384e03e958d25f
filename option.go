package pixelheart

import (
	"time"

	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/cydxin/pixelheart-sdk/storage"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Config struct {
	DB  *gorm.DB
	RDB *redis.Client
	Log zerolog.Logger

	// Buckets key 为 cons.BucketAvatars / cons.BucketCosplayImages
	Buckets map[string]storage.Bucket

	// TokenTTL 登录态有效期，<=0 使用默认 7 天
	TokenTTL time.Duration

	// Avatar 头像缩放配置
	Avatar service.AvatarConfig

	// SkipMigrate 为 true 时 NewEngine 不建表
	SkipMigrate bool
}

type Option func(*Config)

func WithDB(db *gorm.DB) Option {
	return func(c *Config) {
		c.DB = db
	}
}

func WithRDB(rdb *redis.Client) Option {
	return func(c *Config) {
		c.RDB = rdb
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Log = l
	}
}

// WithDebug 打开 debug 级别日志
func WithDebug(debug bool) Option {
	return func(c *Config) {
		if debug {
			c.Log = c.Log.Level(zerolog.DebugLevel)
		} else {
			c.Log = c.Log.Level(zerolog.InfoLevel)
		}
	}
}

// WithBucket 配置一个存储分区
func WithBucket(area string, b storage.Bucket) Option {
	return func(c *Config) {
		if c.Buckets == nil {
			c.Buckets = map[string]storage.Bucket{}
		}
		c.Buckets[area] = b
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TokenTTL = ttl
	}
}

// WithAvatarConfig 配置头像缩放。
func WithAvatarConfig(cfg service.AvatarConfig) Option {
	return func(c *Config) {
		c.Avatar = cfg
	}
}

// WithoutAutoMigrate 表结构由外部维护时使用
func WithoutAutoMigrate() Option {
	return func(c *Config) {
		c.SkipMigrate = true
	}
}
