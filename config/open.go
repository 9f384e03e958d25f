package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/storage"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB MySQL 优先，否则 SQLite
func (c Config) OpenDB() (*gorm.DB, error) {
	level := logger.Warn
	if c.Debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(level)}
	if c.MySQLDSN != "" {
		db, err := gorm.Open(mysql.Open(c.MySQLDSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return db, nil
	}
	if c.SQLiteFile == "" {
		return nil, fmt.Errorf("neither PX_MYSQL_DSN nor PX_SQLITE_FILE is set")
	}
	db, err := gorm.Open(sqlite.Open(c.SQLiteFile), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", c.SQLiteFile, err)
	}
	// sqlite 单写
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenRedis 未配置地址时返回 nil
func (c Config) OpenRedis(ctx context.Context) (*redis.Client, error) {
	if c.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPass, DB: c.RedisDB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", c.RedisAddr, err)
	}
	return rdb, nil
}

// OpenBuckets 按 Storage 建头像 / 套图图片两个分区
func (c Config) OpenBuckets(ctx context.Context) (map[string]storage.Bucket, error) {
	areas := map[string]string{
		cons.BucketAvatars:       c.AvatarBucket,
		cons.BucketCosplayImages: c.ImageBucket,
	}
	out := make(map[string]storage.Bucket, len(areas))
	for area, name := range areas {
		var (
			b   storage.Bucket
			err error
		)
		switch c.Storage {
		case "", "disk":
			b, err = storage.NewDiskBucket(area, filepath.Join(c.DiskDir, name), strings.TrimRight(c.PublicURL, "/")+"/"+name)
		case "minio":
			b, err = storage.NewMinIOBucket(ctx, storage.MinIOConfig{
				Endpoint:  c.MinIOEndpoint,
				AccessKey: c.MinIOAccessKey,
				SecretKey: c.MinIOSecretKey,
				UseSSL:    c.MinIOUseSSL,
				PublicURL: c.MinIOPublicURL,
			}, name)
		case "s3":
			// 两个分区共用一个 bucket，用前缀区分
			b, err = storage.NewS3Bucket(area, c.S3Bucket, storage.S3Config{
				Region:    c.S3Region,
				Endpoint:  c.S3Endpoint,
				AccessKey: c.S3AccessKey,
				SecretKey: c.S3SecretKey,
				Prefix:    name,
				PublicURL: c.S3PublicURL,
			})
		default:
			return nil, fmt.Errorf("unknown storage %q", c.Storage)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", area, err)
		}
		out[area] = b
	}
	return out, nil
}
