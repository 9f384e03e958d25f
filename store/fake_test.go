package store

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/rs/zerolog"
)

var errPlatform = errors.New("platform unavailable")

// fakeGateway 内存实现，记录每个方法的调用次数
type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
	delay time.Duration

	sets    []service.CosplaySet
	series  []service.Series
	socials service.SocialLinks
	chat    []service.ChatMessage
	users   []service.User
	me      *service.User
	saved   map[string]bool
	nextID  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: map[string]int{}, fail: map[string]error{}, saved: map[string]bool{}}
}

func (g *fakeGateway) enter(ctx context.Context, name string) error {
	g.mu.Lock()
	g.calls[name]++
	err := g.fail[name]
	delay := g.delay
	g.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (g *fakeGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *fakeGateway) total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *fakeGateway) failOn(name string, err error) {
	g.mu.Lock()
	g.fail[name] = err
	g.mu.Unlock()
}

func (g *fakeGateway) id() string {
	g.nextID++
	return strconv.Itoa(g.nextID)
}

func (g *fakeGateway) ListSets(ctx context.Context) ([]service.CosplaySet, error) {
	if err := g.enter(ctx, "ListSets"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]service.CosplaySet(nil), g.sets...), nil
}

func (g *fakeGateway) CreateSet(ctx context.Context, d service.SetDraft) (service.CosplaySet, error) {
	if err := g.enter(ctx, "CreateSet"); err != nil {
		return service.CosplaySet{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	set := service.CosplaySet{ID: g.id(), Character: d.Character, Series: d.Series, CoverImage: d.CoverImage, Featured: d.Featured, Photos: []service.CosplayPhoto{}}
	g.sets = append([]service.CosplaySet{set}, g.sets...)
	return set, nil
}

func (g *fakeGateway) UpdateSet(ctx context.Context, id string, d service.SetDraft) (service.CosplaySet, error) {
	if err := g.enter(ctx, "UpdateSet"); err != nil {
		return service.CosplaySet{}, err
	}
	return service.CosplaySet{ID: id, Character: d.Character, Series: d.Series, CoverImage: d.CoverImage, Featured: d.Featured, Photos: []service.CosplayPhoto{}}, nil
}

func (g *fakeGateway) DeleteSet(ctx context.Context, id string) error {
	return g.enter(ctx, "DeleteSet")
}

func (g *fakeGateway) ListSeries(ctx context.Context) ([]service.Series, error) {
	if err := g.enter(ctx, "ListSeries"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]service.Series(nil), g.series...), nil
}

func (g *fakeGateway) CreateSeries(ctx context.Context, name string) (service.Series, error) {
	if err := g.enter(ctx, "CreateSeries"); err != nil {
		return service.Series{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return service.Series{ID: g.id(), Name: name}, nil
}

func (g *fakeGateway) RenameSeries(ctx context.Context, id, name string) (service.Series, error) {
	if err := g.enter(ctx, "RenameSeries"); err != nil {
		return service.Series{}, err
	}
	return service.Series{ID: id, Name: name}, nil
}

func (g *fakeGateway) DeleteSeries(ctx context.Context, id string) error {
	return g.enter(ctx, "DeleteSeries")
}

func (g *fakeGateway) GetSocialLinks(ctx context.Context) (service.SocialLinks, error) {
	if err := g.enter(ctx, "GetSocialLinks"); err != nil {
		return service.SocialLinks{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.socials, nil
}

func (g *fakeGateway) UpdateSocialLinks(ctx context.Context, links service.SocialLinks) (service.SocialLinks, error) {
	if err := g.enter(ctx, "UpdateSocialLinks"); err != nil {
		return service.SocialLinks{}, err
	}
	return links, nil
}

func (g *fakeGateway) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	if err := g.enter(ctx, "ToggleLike"); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := "like:" + photoID
	g.saved[key] = !g.saved[key]
	return g.saved[key], nil
}

func (g *fakeGateway) ToggleSave(ctx context.Context, photoID string) (bool, []string, error) {
	if err := g.enter(ctx, "ToggleSave"); err != nil {
		return false, nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := "save:" + photoID
	g.saved[key] = !g.saved[key]
	ids := []string{}
	if g.saved[key] {
		ids = append(ids, photoID)
	}
	return g.saved[key], ids, nil
}

func (g *fakeGateway) AddComment(ctx context.Context, photoID, username, text string) (service.Comment, error) {
	if err := g.enter(ctx, "AddComment"); err != nil {
		return service.Comment{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	uid := ""
	if g.me != nil {
		uid = g.me.ID
	}
	return service.Comment{ID: g.id(), UserID: uid, Username: username, Text: text, Date: time.Now()}, nil
}

func (g *fakeGateway) DeleteComment(ctx context.Context, id string) error {
	return g.enter(ctx, "DeleteComment")
}

func (g *fakeGateway) ListChat(ctx context.Context) ([]service.ChatMessage, error) {
	if err := g.enter(ctx, "ListChat"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]service.ChatMessage(nil), g.chat...), nil
}

func (g *fakeGateway) SendChat(ctx context.Context, text string) (service.ChatMessage, error) {
	if err := g.enter(ctx, "SendChat"); err != nil {
		return service.ChatMessage{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	m := service.ChatMessage{ID: g.id(), Text: text, Timestamp: time.Now()}
	if g.me != nil {
		m.UserID, m.Username = g.me.ID, g.me.Username
	}
	g.chat = append(g.chat, m)
	return m, nil
}

func (g *fakeGateway) DeleteChat(ctx context.Context, id string) error {
	if err := g.enter(ctx, "DeleteChat"); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.chat[:0]
	for _, m := range g.chat {
		if m.ID != id {
			out = append(out, m)
		}
	}
	g.chat = out
	return nil
}

func (g *fakeGateway) ListUsers(ctx context.Context) ([]service.User, error) {
	if err := g.enter(ctx, "ListUsers"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]service.User(nil), g.users...), nil
}

func (g *fakeGateway) GetProfile(ctx context.Context) (service.User, error) {
	if err := g.enter(ctx, "GetProfile"); err != nil {
		return service.User{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.me == nil {
		return service.User{}, service.ErrNotSignedIn
	}
	return *g.me, nil
}

func (g *fakeGateway) UpdateProfile(ctx context.Context, upd service.ProfileUpdate) (service.User, error) {
	if err := g.enter(ctx, "UpdateProfile"); err != nil {
		return service.User{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if upd.Username != "" {
		g.me.Username = upd.Username
	}
	if upd.ProfilePicture != "" {
		g.me.ProfilePicture = upd.ProfilePicture
	}
	return *g.me, nil
}

func (g *fakeGateway) BanUser(ctx context.Context, id string) error {
	return g.enter(ctx, "BanUser")
}

func (g *fakeGateway) UnbanUser(ctx context.Context, id string) error {
	return g.enter(ctx, "UnbanUser")
}

func (g *fakeGateway) DeleteUser(ctx context.Context, id string) error {
	return g.enter(ctx, "DeleteUser")
}

func (g *fakeGateway) SignIn(ctx context.Context, identifier, password string) (service.User, error) {
	if err := g.enter(ctx, "SignIn"); err != nil {
		return service.User{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.me == nil {
		return service.User{}, service.ErrInvalidCredentials
	}
	return *g.me, nil
}

func (g *fakeGateway) SignUp(ctx context.Context, req service.SignUpReq) (service.User, error) {
	if err := g.enter(ctx, "SignUp"); err != nil {
		return service.User{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.me = &service.User{ID: g.id(), Username: req.Username, Email: req.Email, Dob: req.Dob, SavedPhotos: []string{}}
	return *g.me, nil
}

func (g *fakeGateway) SignOut(ctx context.Context) error {
	return g.enter(ctx, "SignOut")
}

func (g *fakeGateway) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := g.enter(ctx, "UploadAvatar"); err != nil {
		return "", err
	}
	return "https://cdn.example.com/avatars/" + filename, nil
}

func (g *fakeGateway) UploadSetImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := g.enter(ctx, "UploadSetImage"); err != nil {
		return "", err
	}
	return "https://cdn.example.com/images/" + filename, nil
}

// fakeSessions 手动触发登录态变更
type fakeSessions struct {
	mu        sync.Mutex
	current   *service.AuthSession
	listeners map[int]service.AuthListener
	next      int
	closed    int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{listeners: map[int]service.AuthListener{}}
}

func (f *fakeSessions) GetSession(ctx context.Context) (*service.AuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeSessions) OnAuthStateChange(fn service.AuthListener) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *fakeSessions) Close() error {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
	return nil
}

func (f *fakeSessions) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSessions) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func (f *fakeSessions) emit(event string, sess *service.AuthSession) {
	f.mu.Lock()
	f.current = sess
	fns := make([]service.AuthListener, 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(event, sess)
	}
}

// fakeFeed 手动推送变更事件
type fakeFeed struct {
	mu     sync.Mutex
	subs   map[int]func(message.ChangeEvent)
	next   int
	topics []string
	err    error
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{subs: map[int]func(message.ChangeEvent){}}
}

type fakeSub struct {
	feed *fakeFeed
	id   int
}

func (s *fakeSub) Unsubscribe() error {
	s.feed.mu.Lock()
	delete(s.feed.subs, s.id)
	s.feed.mu.Unlock()
	return nil
}

func (f *fakeFeed) Subscribe(ctx context.Context, table, eventType string, fn func(message.ChangeEvent)) (service.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	f.topics = append(f.topics, table+":"+eventType)
	return &fakeSub{feed: f, id: id}, nil
}

func (f *fakeFeed) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *fakeFeed) push(ev message.ChangeEvent) {
	f.mu.Lock()
	fns := make([]func(message.ChangeEvent), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func newTestStore(gw *fakeGateway, sessions *fakeSessions, feed *fakeFeed, opts ...Option) *Store {
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	var ss Sessions
	if sessions != nil {
		ss = sessions
	}
	var cf ChangeFeed
	if feed != nil {
		cf = feed
	}
	return New(gw, ss, cf, opts...)
}
