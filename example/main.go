package main

import (
	"context"
	"os"
	"time"

	pixelheart "github.com/cydxin/pixelheart-sdk"
	"github.com/cydxin/pixelheart-sdk/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// 1. 读取配置（.env 可选）
	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
		log = log.Level(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 2. 数据库 / Redis / 存储
	db, err := cfg.OpenDB()
	if err != nil {
		log.Fatal().Err(err).Msg("数据库连接失败")
	}
	// 没有 Redis 时只能浏览公开数据，登录与实时推送不可用
	rdb, err := cfg.OpenRedis(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis 连接失败")
	}
	buckets, err := cfg.OpenBuckets(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("存储初始化失败")
	}

	opts := []pixelheart.Option{
		pixelheart.WithDB(db),
		pixelheart.WithRDB(rdb),
		pixelheart.WithLogger(log),
		pixelheart.WithDebug(cfg.Debug),
	}
	for area, b := range buckets {
		opts = append(opts, pixelheart.WithBucket(area, b))
	}
	engine, err := pixelheart.NewEngine(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("engine 初始化失败")
	}
	defer engine.Close()

	if n, err := engine.BackfillCommentAuthorNames(ctx); err != nil {
		log.Warn().Err(err).Msg("回填评论作者名失败")
	} else if n > 0 {
		log.Info().Int("comments", n).Msg("已回填评论作者名")
	}

	// 3. 创建 Gin 路由
	r := gin.Default()
	_ = r.SetTrustedProxies([]string{})
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/realtime"})))

	// 注册 Swagger UI
	pixelheart.RegisterSwagger(r, "/swagger/*any")

	// 磁盘存储时由这里对外提供图片
	if cfg.Storage == "" || cfg.Storage == "disk" {
		r.Static("/uploads", cfg.DiskDir)
	}

	// 4. API 路由组
	engine.RegisterRoutes(r.Group("/api/v1"))

	// 5. 启动服务器
	log.Info().Str("addr", cfg.BindAddress).Msg("PixelHeart Server 启动")
	log.Info().Msg("Swagger UI: /swagger/index.html")
	log.Info().Msg("WebSocket 地址: /api/v1/realtime?token=YOUR_TOKEN")
	if err := r.Run(cfg.BindAddress); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
}
