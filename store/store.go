package store

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/rs/zerolog"
)

// Gateway Store 依赖的远端数据网关，service.Gateway 即为实现
type Gateway interface {
	ListSets(ctx context.Context) ([]service.CosplaySet, error)
	CreateSet(ctx context.Context, d service.SetDraft) (service.CosplaySet, error)
	UpdateSet(ctx context.Context, id string, d service.SetDraft) (service.CosplaySet, error)
	DeleteSet(ctx context.Context, id string) error

	ListSeries(ctx context.Context) ([]service.Series, error)
	CreateSeries(ctx context.Context, name string) (service.Series, error)
	RenameSeries(ctx context.Context, id, name string) (service.Series, error)
	DeleteSeries(ctx context.Context, id string) error

	GetSocialLinks(ctx context.Context) (service.SocialLinks, error)
	UpdateSocialLinks(ctx context.Context, links service.SocialLinks) (service.SocialLinks, error)

	ToggleLike(ctx context.Context, photoID string) (bool, error)
	ToggleSave(ctx context.Context, photoID string) (bool, []string, error)
	AddComment(ctx context.Context, photoID, username, text string) (service.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	ListChat(ctx context.Context) ([]service.ChatMessage, error)
	SendChat(ctx context.Context, text string) (service.ChatMessage, error)
	DeleteChat(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]service.User, error)
	GetProfile(ctx context.Context) (service.User, error)
	UpdateProfile(ctx context.Context, upd service.ProfileUpdate) (service.User, error)
	BanUser(ctx context.Context, id string) error
	UnbanUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error

	SignIn(ctx context.Context, identifier, password string) (service.User, error)
	SignUp(ctx context.Context, req service.SignUpReq) (service.User, error)
	SignOut(ctx context.Context) error

	UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error)
	UploadSetImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Sessions 登录态查询与变更通知，service.Session 即为实现。
// Store 持有会话，Close 时一并关闭。
type Sessions interface {
	GetSession(ctx context.Context) (*service.AuthSession, error)
	OnAuthStateChange(fn service.AuthListener) func()
	Close() error
}

// ChangeFeed 行变更订阅，service.RealtimeService 即为实现
type ChangeFeed interface {
	Subscribe(ctx context.Context, table, eventType string, fn func(message.ChangeEvent)) (service.Subscription, error)
}

const defaultMutationTimeout = 30 * time.Second

// Option Store 配置项
type Option func(*Store)

// WithLogger 设置日志
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithLocalStore 设置本地缓存后端，默认 MemoryLocalStore
func WithLocalStore(ls LocalStore) Option {
	return func(s *Store) { s.local = ls }
}

// WithMutationTimeout 用户触发的写操作超时，<=0 忽略
func WithMutationTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Store 客户端状态缓存，视图层唯一的读写入口。
// 写操作先调网关，成功后再改本地缓存；失败时缓存不变并记录 LastError。
type Store struct {
	gw       Gateway
	sessions Sessions
	feed     ChangeFeed

	log     zerolog.Logger
	local   LocalStore
	mirror  *Mirror
	timeout time.Duration

	mu          sync.RWMutex
	user        *service.User
	sets        []service.CosplaySet
	series      []service.Series
	socials     service.SocialLinks
	chat        []service.ChatMessage
	users       []service.User
	loading     bool
	initialized bool
	lastErr     string

	// persistMu 串行化 快照+入队，保证镜像里最后一次写入对应最新状态
	persistMu sync.Mutex

	obsMu     sync.Mutex
	observers map[int]func()
	nextObs   int

	initOnce   sync.Once
	closeOnce  sync.Once
	authCancel func()
	listener   *ChatListener
}

// New 创建 Store；sessions / feed 可为 nil（此时不监听登录态 / 聊天推送）
func New(gw Gateway, sessions Sessions, feed ChangeFeed, opts ...Option) *Store {
	s := &Store{
		gw:        gw,
		sessions:  sessions,
		feed:      feed,
		log:       zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "store").Logger(),
		timeout:   defaultMutationTimeout,
		loading:   true,
		observers: map[int]func(){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.local == nil {
		s.local = NewMemoryLocalStore()
	}
	s.mirror = NewMirror(s.local, s.log)
	return s
}

// Init 启动流程，只执行一次：
// 1. 读本地缓存  2. 拉取公开数据并整体替换  3. 恢复已有登录态
// 4. 注册登录态监听  5. 标记完成（前面失败也照样完成）
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		s.loadCached()

		if err := s.loadPublicData(ctx); err != nil {
			s.log.Error().Err(err).Msg("load public data failed")
		}

		if s.sessions != nil {
			sess, err := s.sessions.GetSession(ctx)
			switch {
			case err != nil:
				s.log.Error().Err(err).Msg("get session failed")
			case sess != nil:
				if u, err := s.gw.GetProfile(ctx); err != nil {
					s.log.Error().Err(err).Str("user_id", sess.UserID).Msg("load user profile failed")
				} else {
					s.setUser(&u)
				}
			default:
				s.setUser(nil)
			}
			s.authCancel = s.sessions.OnAuthStateChange(s.onAuthChange)
		}

		s.RefreshChat(ctx)
		if s.feed != nil {
			s.listener = NewChatListener(s.feed, s.RefreshChat, s.log)
			if err := s.listener.Start(ctx); err != nil {
				s.log.Warn().Err(err).Msg("chat realtime unavailable")
			}
		}

		s.mu.Lock()
		s.initialized = true
		s.loading = false
		s.mu.Unlock()
		s.changed()
	})
}

// Close 释放登录态监听和聊天订阅，并把本地缓存写完
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.authCancel != nil {
			s.authCancel()
		}
		if s.sessions != nil {
			if cerr := s.sessions.Close(); cerr != nil {
				s.log.Warn().Err(cerr).Msg("close session failed")
			}
		}
		if s.listener != nil {
			s.listener.Stop()
		}
		err = s.mirror.Close()
	})
	return err
}

func (s *Store) loadCached() {
	sets, okSets := s.mirror.LoadSets()
	series, okSeries := s.mirror.LoadSeries()
	socials, okSocials := s.mirror.LoadSocials()
	user, okUser := s.mirror.LoadUser()

	s.mu.Lock()
	if okSets {
		s.sets = sets
	}
	if okSeries {
		s.series = series
	}
	if okSocials {
		s.socials = socials
	}
	if okUser {
		s.user = &user
	}
	s.mu.Unlock()
}

const loadDataFailed = "Failed to load data. Please check connection."

// loadPublicData 三项都拉到才整体替换
func (s *Store) loadPublicData(ctx context.Context) error {
	sets, err := s.gw.ListSets(ctx)
	if err == nil {
		var series []service.Series
		series, err = s.gw.ListSeries(ctx)
		if err == nil {
			var socials service.SocialLinks
			socials, err = s.gw.GetSocialLinks(ctx)
			if err == nil {
				s.mu.Lock()
				s.sets, s.series, s.socials = sets, series, socials
				s.mu.Unlock()
				s.persist()
				s.changed()
				return nil
			}
		}
	}
	s.mu.Lock()
	s.lastErr = loadDataFailed
	s.mu.Unlock()
	s.changed()
	return err
}

// onAuthChange 登录态变化一律以远端为准：登出清空用户和聊天，否则重新拉取资料
func (s *Store) onAuthChange(event string, sess *service.AuthSession) {
	if sess == nil {
		s.mu.Lock()
		s.user = nil
		s.chat = nil
		s.mu.Unlock()
		s.persist()
		s.changed()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	u, err := s.gw.GetProfile(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("event", event).Str("user_id", sess.UserID).Msg("resolve user on auth change failed")
		return
	}
	s.setUser(&u)
}

func (s *Store) setUser(u *service.User) {
	s.mu.Lock()
	if u == nil {
		s.user = nil
	} else {
		cp := copyUser(*u)
		s.user = &cp
	}
	s.mu.Unlock()
	s.persist()
	s.changed()
}

// persist 把四个镜像分片交给 Mirror，异步落盘
func (s *Store) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	sets := s.sets
	series := s.series
	socials := s.socials
	var user *service.User
	if s.user != nil {
		cp := *s.user
		user = &cp
	}
	s.mu.RUnlock()

	s.mirror.SaveSets(sets)
	s.mirror.SaveSeries(series)
	s.mirror.SaveSocials(socials)
	s.mirror.SaveUser(user)
}

// OnChange 注册状态变更回调，返回取消函数
func (s *Store) OnChange(fn func()) func() {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *Store) changed() {
	s.obsMu.Lock()
	fns := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// --- 只读快照 ---

// CurrentUser 未登录时 ok 为 false
func (s *Store) CurrentUser() (service.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return service.User{}, false
	}
	return copyUser(*s.user), true
}

func (s *Store) Sets() []service.CosplaySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.CosplaySet(nil), s.sets...)
}

// SetByID 找不到返回 false，不算错误
func (s *Store) SetByID(id string) (service.CosplaySet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, set := range s.sets {
		if set.ID == id {
			return set, true
		}
	}
	return service.CosplaySet{}, false
}

func (s *Store) Series() []service.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.Series(nil), s.series...)
}

func (s *Store) SocialLinks() service.SocialLinks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.socials
}

func (s *Store) Chat() []service.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.ChatMessage(nil), s.chat...)
}

// Users 用户列表，仅管理员调用 RefreshUsers 后才有数据
func (s *Store) Users() []service.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.User(nil), s.users...)
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// LastError 最近一次失败的错误信息，没有时为空
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.changed()
}

func copyUser(u service.User) service.User {
	u.SavedPhotos = append([]string{}, u.SavedPhotos...)
	return u
}
