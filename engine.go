package pixelheart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/middleware"
	"github.com/cydxin/pixelheart-sdk/models"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/cydxin/pixelheart-sdk/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Engine 平台侧入口：服务、HTTP 接口与 websocket 推送
type Engine struct {
	config *Config
	log    zerolog.Logger

	Base     *service.Service
	Services *service.Services
	WsServer *WsServer

	bridge     service.Subscription
	authBridge service.Subscription
	closeOnce  sync.Once
}

// NewEngine 创建实例
// 使用选项模式传入配置，Option回调
func NewEngine(opts ...Option) (*Engine, error) {
	c := &Config{
		Log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.DB == nil {
		return nil, errors.New("pixelheart: database is required")
	}

	base := service.NewBaseService(c.DB, c.RDB, c.Log)
	base.TokenTTL = c.TokenTTL
	for area, b := range c.Buckets {
		base.Buckets[area] = b
	}

	e := &Engine{
		config:   c,
		log:      c.Log,
		Base:     base,
		Services: service.NewServices(base),
	}
	e.Services.Uploads.Avatar = c.Avatar

	if !c.SkipMigrate {
		if err := e.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	e.WsServer = NewWsServer(e.log)
	go e.WsServer.Run()

	// 行变更 -> websocket 订阅者
	if base.Realtime != nil {
		sub, err := base.Realtime.SubscribeAll(context.Background(), e.WsServer.Publish)
		if err != nil {
			e.log.Warn().Err(err).Msg("realtime bridge disabled")
		} else {
			e.bridge = sub
		}
	}
	// 登出 -> 断开对应的 websocket 连接
	if base.RDB != nil {
		sub, err := e.Services.Auth.WatchAllAuth(context.Background(), func(ev message.AuthEvent) {
			if ev.Event == cons.AuthSignedOut {
				e.WsServer.SignOutUser(ev.UserID, ev.Token)
			}
		})
		if err != nil {
			e.log.Warn().Err(err).Msg("auth bridge disabled")
		} else {
			e.authBridge = sub
		}
	}
	return e, nil
}

func (e *Engine) AutoMigrate() error {
	e.log.Info().Msg("AutoMigrate...")
	return e.config.DB.AutoMigrate(models.All()...)
}

// Close 停止 websocket 推送和两路 Redis 转发
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if e.bridge != nil {
			err = e.bridge.Unsubscribe()
		}
		if e.authBridge != nil {
			if aerr := e.authBridge.Unsubscribe(); err == nil {
				err = aerr
			}
		}
		e.WsServer.Stop()
	})
	return err
}

// NewSession 一个客户端会话；token 为空表示未登录
func (e *Engine) NewSession(token string) *service.Session {
	return service.NewSession(e.Services.Auth, token)
}

// NewGateway 绑定到新会话的数据网关
func (e *Engine) NewGateway(token string) *service.Gateway {
	return service.NewGateway(e.Services, e.NewSession(token))
}

// NewStore 进程内直连平台的客户端缓存，调用方负责 Init / Close。
// 没有 Redis 时不启用实时聊天订阅。
func (e *Engine) NewStore(token string, opts ...store.Option) *store.Store {
	gw := e.NewGateway(token)
	var feed store.ChangeFeed
	if e.Base.Realtime != nil {
		feed = e.Base.Realtime
	}
	opts = append([]store.Option{store.WithLogger(e.log)}, opts...)
	return store.New(gw, gw.Session(), feed, opts...)
}

// GinAuthMiddleware 返回配置好的 Gin 鉴权中间件
//
// 使用示例:
//
//	engine, _ := pixelheart.NewEngine(...)
//	r := gin.Default()
//	r.Use(engine.GinAuthMiddleware(nil))
func (e *Engine) GinAuthMiddleware(opt *middleware.AuthOptions) gin.HandlerFunc {
	return middleware.GinAuthMiddleware(e.Services.Auth, opt)
}

// GinAdminMiddleware 需挂在 GinAuthMiddleware 之后
func (e *Engine) GinAdminMiddleware(opt *middleware.AuthOptions) gin.HandlerFunc {
	return middleware.GinAdminMiddleware(e.Services.Profiles, opt)
}
