package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey gin context 里保存 user id 的 key
	ContextUserIDKey = "user_id"
	ContextTokenKey  = "token"
)

// Authenticator token -> user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AdminChecker 管理员判断
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AuthOptions 可选配置。
type AuthOptions struct {
	// HeaderKey 默认 Authorization
	HeaderKey string
	// QueryKey 默认 token
	QueryKey string
	// UserIDKey 默认 user_id
	UserIDKey string
	// TokenKey 默认 token
	TokenKey string
}

func (o *AuthOptions) withDefaults() AuthOptions {
	if o == nil {
		return AuthOptions{HeaderKey: "Authorization", QueryKey: "token", UserIDKey: ContextUserIDKey, TokenKey: ContextTokenKey}
	}
	out := *o
	if out.HeaderKey == "" {
		out.HeaderKey = "Authorization"
	}
	if out.QueryKey == "" {
		out.QueryKey = "token"
	}
	if out.UserIDKey == "" {
		out.UserIDKey = ContextUserIDKey
	}
	if out.TokenKey == "" {
		out.TokenKey = ContextTokenKey
	}
	return out
}

// BearerToken 优先 header 的 Bearer，其次 query
func BearerToken(c *gin.Context, opt *AuthOptions) string {
	cfg := opt.withDefaults()
	ah := strings.TrimSpace(c.GetHeader(cfg.HeaderKey))
	if ah != "" {
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(c.Query(cfg.QueryKey))
}

/*
	GinAuthMiddleware Gin 鉴权中间件：

- 优先从 Authorization: Bearer <token> 读取
- 如果没有，再从 query 参数读取（默认 token=xxx）
- 校验 token -> userID（Redis）成功后，写入 gin.Context

使用：router.Use(middleware.GinAuthMiddleware(authService, nil))
*/
func GinAuthMiddleware(auth Authenticator, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		if auth == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "auth service is nil"))
			return
		}

		token := BearerToken(c, &cfg)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "missing token"))
			return
		}

		uid, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, err.Error()))
			return
		}

		c.Set(cfg.UserIDKey, uid)
		c.Set(cfg.TokenKey, token)
		c.Next()
	}
}

// GinAdminMiddleware 必须挂在 GinAuthMiddleware 之后
func GinAdminMiddleware(admins AdminChecker, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		uid := c.GetString(cfg.UserIDKey)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "not signed in"))
			return
		}
		ok, err := admins.IsAdmin(c.Request.Context(), uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, err.Error()))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(response.CodePermissionDeny, "administrator access required"))
			return
		}
		c.Next()
	}
}

// UserID 取出中间件写入的 user id
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// Token 取出中间件写入的 token
func Token(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
