package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 进程配置，全部来自环境变量（PX_ 前缀），.env 文件可选
type Config struct {
	MySQLDSN   string // 配置了就用 MySQL
	SQLiteFile string // MySQL 未配置时使用
	RedisAddr  string // 为空则不启用登录态和实时推送
	RedisPass  string
	RedisDB    int

	BindAddress string
	Debug       bool

	// Storage disk / minio / s3
	Storage   string
	DiskDir   string
	PublicURL string // 磁盘存储对外访问前缀

	AvatarBucket string
	ImageBucket  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOPublicURL string

	S3Region    string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// LocalStore 客户端示例的本地缓存文件
	LocalStore string
}

func defaults() Config {
	return Config{
		SQLiteFile:   "pixelheart.db",
		BindAddress:  "0.0.0.0:6789",
		Debug:        true,
		Storage:      "disk",
		DiskDir:      "uploads",
		PublicURL:    "http://localhost:6789/uploads",
		AvatarBucket: "avatars",
		ImageBucket:  "cosplay-images",
		S3Region:     "us-east-1",
		LocalStore:   "pixelheart_local.db",
	}
}

// Load 先读 .env（不存在忽略），再读环境变量覆盖默认值
func Load(files ...string) Config {
	_ = godotenv.Load(files...)

	c := defaults()
	readEnvString("PX_MYSQL_DSN", &c.MySQLDSN)
	readEnvString("PX_SQLITE_FILE", &c.SQLiteFile)
	readEnvString("PX_REDIS_ADDR", &c.RedisAddr)
	readEnvString("PX_REDIS_PASSWORD", &c.RedisPass)
	readEnvInt("PX_REDIS_DB", &c.RedisDB)
	readEnvString("PX_BIND_ADDRESS", &c.BindAddress)
	readEnvBool("PX_DEBUG", &c.Debug)
	readEnvString("PX_STORAGE", &c.Storage)
	readEnvString("PX_DISK_DIR", &c.DiskDir)
	readEnvString("PX_PUBLIC_URL", &c.PublicURL)
	readEnvString("PX_AVATAR_BUCKET", &c.AvatarBucket)
	readEnvString("PX_IMAGE_BUCKET", &c.ImageBucket)
	readEnvString("PX_MINIO_ENDPOINT", &c.MinIOEndpoint)
	readEnvString("PX_MINIO_ACCESS_KEY", &c.MinIOAccessKey)
	readEnvString("PX_MINIO_SECRET_KEY", &c.MinIOSecretKey)
	readEnvBool("PX_MINIO_USE_SSL", &c.MinIOUseSSL)
	readEnvString("PX_MINIO_PUBLIC_URL", &c.MinIOPublicURL)
	readEnvString("PX_S3_REGION", &c.S3Region)
	readEnvString("PX_S3_ENDPOINT", &c.S3Endpoint)
	readEnvString("PX_S3_BUCKET", &c.S3Bucket)
	readEnvString("PX_S3_ACCESS_KEY", &c.S3AccessKey)
	readEnvString("PX_S3_SECRET_KEY", &c.S3SecretKey)
	readEnvString("PX_S3_PUBLIC_URL", &c.S3PublicURL)
	readEnvString("PX_LOCAL_STORE", &c.LocalStore)
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	return c
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
