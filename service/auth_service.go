package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/models"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultAvatarURL 注册时的默认像素头像
const defaultAvatarURL = "https://api.dicebear.com/7.x/pixel-art/svg?seed="

// AuthSession 一次登录态
type AuthSession struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthService 身份签发、登录、登出与 token 校验。
// 登录状态变更会发布到 px:auth:{uid}，同一用户的其他会话据此感知远端登出。
type AuthService struct {
	*Service
	token    *TokenService
	profiles *models.ProfileDAO
}

func NewAuthService(s *Service) *AuthService {
	return &AuthService{
		Service:  s,
		token:    NewTokenService(s.RDB),
		profiles: models.NewProfileDAO(s.DB),
	}
}

// ExtractToken 从 HTTP 请求中提取 token：优先 Authorization: Bearer，其次 query: token。
func (a *AuthService) ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}

	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" {
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// SignUp 创建登录身份和 profile（同一事务），并直接登录
func (a *AuthService) SignUp(ctx context.Context, req SignUpReq) (AuthSession, User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return AuthSession{}, User{}, &PlatformError{Op: "sign up", Msg: "username, email and password are required"}
	}

	db := a.DB.WithContext(ctx)
	dao := a.profiles.WithDB(db)
	if exists, err := dao.ExistsByEmail(email); err != nil {
		return AuthSession{}, User{}, platformErr("sign up", err)
	} else if exists {
		return AuthSession{}, User{}, &PlatformError{Op: "sign up", Msg: ErrEmailTaken.Error(), Err: ErrEmailTaken}
	}
	if exists, err := dao.ExistsByUsername(username); err != nil {
		return AuthSession{}, User{}, platformErr("sign up", err)
	} else if exists {
		return AuthSession{}, User{}, &PlatformError{Op: "sign up", Msg: ErrUsernameTaken.Error(), Err: ErrUsernameTaken}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthSession{}, User{}, platformErr("sign up", err)
	}

	var profile models.Profile
	err = db.Transaction(func(tx *gorm.DB) error {
		txDao := a.profiles.WithDB(tx)
		ident := models.Identity{Email: email, Password: string(hashed)}
		if err := txDao.CreateIdentity(&ident); err != nil {
			return err
		}
		profile = models.Profile{
			ID:        ident.ID,
			Username:  username,
			Email:     email,
			Dob:       strings.TrimSpace(req.Dob),
			AvatarURL: defaultAvatarURL + url.QueryEscape(username),
		}
		return txDao.Create(&profile)
	})
	if err != nil {
		return AuthSession{}, User{}, platformErr("sign up", err)
	}

	sess, err := a.issue(ctx, profile.ID, email)
	if err != nil {
		return AuthSession{}, User{}, err
	}
	a.Log.Info().Str("user_id", profile.ID).Msg("user signed up")
	return sess, toUser(profile, email, nil), nil
}

// SignInWithPassword identifier 不含 @ 时按用户名反查邮箱，再按邮箱 + 密码校验
func (a *AuthService) SignInWithPassword(ctx context.Context, identifier, password string) (AuthSession, error) {
	identifier = strings.TrimSpace(identifier)
	dao := a.profiles.WithDB(a.DB.WithContext(ctx))

	email := identifier
	if !strings.Contains(identifier, "@") {
		e, err := findEmailByUsername(dao, identifier)
		if err != nil {
			return AuthSession{}, err
		}
		email = e
	}

	ident, err := dao.FindIdentityByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthSession{}, &PlatformError{Op: "sign in", Msg: ErrInvalidCredentials.Error(), Err: ErrInvalidCredentials}
	}
	if err != nil {
		return AuthSession{}, platformErr("sign in", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(ident.Password), []byte(password)) != nil {
		return AuthSession{}, &PlatformError{Op: "sign in", Msg: ErrInvalidCredentials.Error(), Err: ErrInvalidCredentials}
	}
	if err := dao.TouchSignIn(ident.ID); err != nil {
		a.Log.Warn().Err(err).Str("user_id", ident.ID).Msg("update last sign in failed")
	}
	return a.issue(ctx, ident.ID, ident.Email)
}

func (a *AuthService) issue(ctx context.Context, userID, email string) (AuthSession, error) {
	t, err := a.token.GenerateToken()
	if err != nil {
		return AuthSession{}, platformErr("issue token", err)
	}
	ttl := a.ttl()
	if err := a.token.StoreToken(ctx, t, userID, ttl); err != nil {
		return AuthSession{}, platformErr("issue token", err)
	}
	a.publish(ctx, message.AuthEvent{Event: cons.AuthSignedIn, UserID: userID, Token: t})
	return AuthSession{AccessToken: t, UserID: userID, Email: email, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (a *AuthService) ttl() time.Duration {
	if a.TokenTTL > 0 {
		return a.TokenTTL
	}
	return defaultTokenTTL
}

// Authenticate 根据 token 获取 userID；token 无效时错误为 redis.Nil
func (a *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("missing token")
	}
	return a.token.GetUserIDByToken(ctx, token)
}

// ResolveSession token -> 完整登录态；token 无效返回 ErrNotSignedIn
func (a *AuthService) ResolveSession(ctx context.Context, token string) (AuthSession, error) {
	uid, err := a.Authenticate(ctx, token)
	if errors.Is(err, redis.Nil) {
		return AuthSession{}, ErrNotSignedIn
	}
	if err != nil {
		return AuthSession{}, platformErr("get session", err)
	}
	sess := AuthSession{AccessToken: token, UserID: uid}
	if ttl, err := a.token.TTL(ctx, token); err == nil && ttl > 0 {
		sess.ExpiresAt = time.Now().Add(ttl)
	}
	if ident, err := a.profiles.WithDB(a.DB.WithContext(ctx)).FindIdentityByID(uid); err == nil {
		sess.Email = ident.Email
	}
	return sess, nil
}

// RefreshSession 续期
func (a *AuthService) RefreshSession(ctx context.Context, token string) (AuthSession, error) {
	uid, err := a.token.RefreshTokenTTL(ctx, token, a.ttl())
	if errors.Is(err, redis.Nil) {
		return AuthSession{}, ErrNotSignedIn
	}
	if err != nil {
		return AuthSession{}, platformErr("refresh session", err)
	}
	a.publish(ctx, message.AuthEvent{Event: cons.AuthTokenRefreshed, UserID: uid, Token: token})
	return a.ResolveSession(ctx, token)
}

// SignOut 注销单个 token
func (a *AuthService) SignOut(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	uid, err := a.token.RevokeToken(ctx, token)
	if err != nil {
		return platformErr("sign out", err)
	}
	if uid != "" {
		a.publish(ctx, message.AuthEvent{Event: cons.AuthSignedOut, UserID: uid, Token: token})
	}
	return nil
}

// SignOutEverywhere 注销用户全部 token
func (a *AuthService) SignOutEverywhere(ctx context.Context, userID string) error {
	if err := a.token.RevokeAllTokensByUser(ctx, userID); err != nil {
		return platformErr("sign out", err)
	}
	a.publish(ctx, message.AuthEvent{Event: cons.AuthSignedOut, UserID: userID})
	return nil
}

// WatchAuth 订阅某个用户的登录状态变更
func (a *AuthService) WatchAuth(ctx context.Context, userID string, fn func(message.AuthEvent)) (Subscription, error) {
	if a.RDB == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return a.watch(ctx, a.RDB.Subscribe(ctx, cons.RedisAuthChannel+userID), fn)
}

// WatchAllAuth 订阅全部用户的登录状态变更（WS 断开已登出连接用）
func (a *AuthService) WatchAllAuth(ctx context.Context, fn func(message.AuthEvent)) (Subscription, error) {
	if a.RDB == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return a.watch(ctx, a.RDB.PSubscribe(ctx, cons.RedisAuthChannel+"*"), fn)
}

func (a *AuthService) watch(ctx context.Context, ps *redis.PubSub, fn func(message.AuthEvent)) (Subscription, error) {
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("watch auth: %w", err)
	}
	ch := ps.Channel()
	go func() {
		for m := range ch {
			var ev message.AuthEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				a.Log.Warn().Err(err).Msg("drop malformed auth event")
				continue
			}
			fn(ev)
		}
	}()
	return &redisSubscription{ps: ps}, nil
}

func (a *AuthService) publish(ctx context.Context, ev message.AuthEvent) {
	if a.RDB == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := a.RDB.Publish(ctx, cons.RedisAuthChannel+ev.UserID, b).Err(); err != nil {
		a.Log.Warn().Err(err).Str("event", ev.Event).Msg("publish auth event failed")
	}
}
