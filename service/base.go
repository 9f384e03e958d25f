package service

import (
	"context"
	"time"

	"github.com/cydxin/pixelheart-sdk/storage"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Service 基础服务，包含数据库和配置
type Service struct {
	DB  *gorm.DB
	RDB *redis.Client

	// Log 结构化日志，未设置时为 zerolog.Nop()
	Log zerolog.Logger

	// Buckets 对象存储分区，key 为 cons.BucketAvatars / cons.BucketCosplayImages
	Buckets map[string]storage.Bucket

	// Realtime 行变更广播；RDB 为空时为 nil，写操作照常进行只是不推送
	Realtime *RealtimeService

	// TokenTTL 登录态有效期，<=0 使用默认 7 天
	TokenTTL time.Duration
}

// NewBaseService 组装基础服务
func NewBaseService(db *gorm.DB, rdb *redis.Client, log zerolog.Logger) *Service {
	s := &Service{
		DB:      db,
		RDB:     rdb,
		Log:     log,
		Buckets: map[string]storage.Bucket{},
	}
	if rdb != nil {
		s.Realtime = NewRealtimeService(rdb, log)
	}
	return s
}

// deletedRow DELETE 事件只带主键
type deletedRow struct {
	ID string `json:"id"`
}

// publishChange 写成功后广播行变更；没有 Redis 时跳过，失败只记日志
func (s *Service) publishChange(ctx context.Context, table, eventType string, record any) {
	if s.Realtime == nil {
		return
	}
	if err := s.Realtime.Publish(ctx, table, eventType, record); err != nil {
		s.Log.Warn().Err(err).Str("table", table).Str("type", eventType).Msg("publish change failed")
	}
}
