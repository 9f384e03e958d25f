package service

import (
	"context"
	"errors"
	"sync"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
)

// AuthListener 登录状态变更回调；登出时 sess 为 nil
type AuthListener func(event string, sess *AuthSession)

// Session 单个客户端（一个浏览器标签页）持有的登录态。
// 通过 Redis 频道感知同一用户在别处的登出 / 续期。
type Session struct {
	auth *AuthService

	mu        sync.Mutex
	current   *AuthSession
	listeners map[int]AuthListener
	nextID    int
	watch     Subscription
	watchUID  string
	closed    bool
}

// NewSession token 为空表示未登录；非空时在 GetSession 里校验
func NewSession(auth *AuthService, token string) *Session {
	s := &Session{auth: auth, listeners: map[int]AuthListener{}}
	if token != "" {
		s.current = &AuthSession{AccessToken: token}
	}
	return s
}

// Token 当前 access token
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// UserID 当前登录用户，未登录为空
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.UserID
}

// GetSession 校验并返回当前登录态；token 已失效时清空并触发 SIGNED_OUT
func (s *Session) GetSession(ctx context.Context) (*AuthSession, error) {
	token := s.Token()
	if token == "" {
		return nil, nil
	}
	sess, err := s.auth.ResolveSession(ctx, token)
	if errors.Is(err, ErrNotSignedIn) {
		if s.clear(token) {
			s.emit(cons.AuthSignedOut, nil)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.install(ctx, &sess)
	out := sess
	return &out, nil
}

// SignIn 登录成功后安装登录态并触发 SIGNED_IN
func (s *Session) SignIn(ctx context.Context, identifier, password string) (*AuthSession, error) {
	sess, err := s.auth.SignInWithPassword(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	s.install(ctx, &sess)
	s.emit(cons.AuthSignedIn, copySession(&sess))
	return copySession(&sess), nil
}

// SignUp 注册并登录
func (s *Session) SignUp(ctx context.Context, req SignUpReq) (*AuthSession, User, error) {
	sess, user, err := s.auth.SignUp(ctx, req)
	if err != nil {
		return nil, User{}, err
	}
	s.install(ctx, &sess)
	s.emit(cons.AuthSignedIn, copySession(&sess))
	return copySession(&sess), user, nil
}

// SignOut 本地登录态先清掉，再注销服务端 token
func (s *Session) SignOut(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}
	if s.clear(token) {
		s.emit(cons.AuthSignedOut, nil)
	}
	return s.auth.SignOut(ctx, token)
}

// Refresh 续期并触发 TOKEN_REFRESHED
func (s *Session) Refresh(ctx context.Context) (*AuthSession, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotSignedIn
	}
	sess, err := s.auth.RefreshSession(ctx, token)
	if errors.Is(err, ErrNotSignedIn) {
		if s.clear(token) {
			s.emit(cons.AuthSignedOut, nil)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.install(ctx, &sess)
	s.emit(cons.AuthTokenRefreshed, copySession(&sess))
	return copySession(&sess), nil
}

// OnAuthStateChange 注册监听，返回取消函数
func (s *Session) OnAuthStateChange(fn AuthListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close 释放远端状态订阅，之后不再建立新的订阅；可重复调用
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	w := s.watch
	s.watch, s.watchUID = nil, ""
	s.mu.Unlock()
	if w != nil {
		return w.Unsubscribe()
	}
	return nil
}

func (s *Session) install(ctx context.Context, sess *AuthSession) {
	s.mu.Lock()
	s.current = copySession(sess)
	needWatch := !s.closed && s.watchUID != sess.UserID
	old := s.watch
	if needWatch {
		s.watch, s.watchUID = nil, ""
	}
	s.mu.Unlock()

	if !needWatch {
		return
	}
	if old != nil {
		_ = old.Unsubscribe()
	}
	if s.auth.RDB == nil {
		return
	}
	w, err := s.auth.WatchAuth(context.WithoutCancel(ctx), sess.UserID, s.onRemote)
	if err != nil {
		s.auth.Log.Warn().Err(err).Str("user_id", sess.UserID).Msg("watch auth state failed")
		return
	}
	s.mu.Lock()
	if !s.closed && s.watch == nil && s.current != nil && s.current.UserID == sess.UserID {
		s.watch, s.watchUID = w, sess.UserID
		w = nil
	}
	s.mu.Unlock()
	if w != nil {
		_ = w.Unsubscribe()
	}
}

// onRemote 处理 Redis 上的状态变更；只关心本会话的 token（或全端注销）
func (s *Session) onRemote(ev message.AuthEvent) {
	token := s.Token()
	if token == "" || (ev.Token != "" && ev.Token != token) {
		return
	}
	switch ev.Event {
	case cons.AuthSignedOut:
		if s.clear(token) {
			s.emit(cons.AuthSignedOut, nil)
		}
	case cons.AuthTokenRefreshed:
		s.mu.Lock()
		cur := copySession(s.current)
		s.mu.Unlock()
		if cur != nil {
			s.emit(cons.AuthTokenRefreshed, cur)
		}
	}
}

// clear 仅当当前 token 仍为 token 时清空，返回是否真的清了
func (s *Session) clear(token string) bool {
	s.mu.Lock()
	if s.current == nil || s.current.AccessToken != token {
		s.mu.Unlock()
		return false
	}
	s.current = nil
	w := s.watch
	s.watch, s.watchUID = nil, ""
	s.mu.Unlock()
	if w != nil {
		_ = w.Unsubscribe()
	}
	return true
}

// emit 在锁外调用监听者
func (s *Session) emit(event string, sess *AuthSession) {
	s.mu.Lock()
	fns := make([]AuthListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(event, copySession(sess))
	}
}

func copySession(s *AuthSession) *AuthSession {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
