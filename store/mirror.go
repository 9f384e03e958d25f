package store

import (
	"encoding/json"
	"sync"

	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/rs/zerolog"
)

// 本地缓存的四个分片
const (
	KeySets    = "pixel_sets"
	KeySeries  = "pixel_series"
	KeySocials = "pixel_socials"
	KeyUser    = "pixel_user"
)

type pendingWrite struct {
	value  []byte
	remove bool
}

// Mirror 把缓存分片异步写入 LocalStore。
// 同一个 key 只保留最新值，写失败只记日志；读失败一律当作没有缓存。
type Mirror struct {
	local LocalStore
	log   zerolog.Logger

	mu      sync.Mutex
	pending map[string]pendingWrite
	closed  bool

	writeMu   sync.Mutex
	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewMirror(local LocalStore, log zerolog.Logger) *Mirror {
	m := &Mirror{
		local:   local,
		log:     log,
		pending: map[string]pendingWrite{},
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Mirror) loop() {
	defer close(m.done)
	for {
		select {
		case <-m.wake:
			m.Flush()
		case <-m.stop:
			m.Flush()
			return
		}
	}
}

// Flush 同步写出当前积压
func (m *Mirror) Flush() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	batch := m.pending
	m.pending = map[string]pendingWrite{}
	m.mu.Unlock()

	for key, w := range batch {
		var err error
		if w.remove {
			err = m.local.Remove(key)
		} else {
			err = m.local.Set(key, w.value)
		}
		if err != nil {
			m.log.Warn().Err(err).Str("key", key).Msg("local store write failed")
		}
	}
}

// Close 写完积压后退出后台协程，可重复调用
func (m *Mirror) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.stop)
	})
	<-m.done
	return nil
}

func (m *Mirror) enqueue(key string, w pendingWrite) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending[key] = w
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mirror) save(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("encode cache slice failed")
		return
	}
	m.enqueue(key, pendingWrite{value: b})
}

func (m *Mirror) SaveSets(sets []service.CosplaySet) { m.save(KeySets, sets) }
func (m *Mirror) SaveSeries(series []service.Series) { m.save(KeySeries, series) }
func (m *Mirror) SaveSocials(links service.SocialLinks) { m.save(KeySocials, links) }

// SaveUser nil 表示已登出，删除缓存
func (m *Mirror) SaveUser(u *service.User) {
	if u == nil {
		m.enqueue(KeyUser, pendingWrite{remove: true})
		return
	}
	m.save(KeyUser, u)
}

func load[T any](m *Mirror, key string) (T, bool) {
	var out T
	b, ok, err := m.local.Get(key)
	if err != nil {
		m.log.Debug().Err(err).Str("key", key).Msg("local store read failed")
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		m.log.Debug().Err(err).Str("key", key).Msg("local store value corrupted")
		var zero T
		return zero, false
	}
	return out, true
}

func (m *Mirror) LoadSets() ([]service.CosplaySet, bool) {
	return load[[]service.CosplaySet](m, KeySets)
}

func (m *Mirror) LoadSeries() ([]service.Series, bool) {
	return load[[]service.Series](m, KeySeries)
}

func (m *Mirror) LoadSocials() (service.SocialLinks, bool) {
	return load[service.SocialLinks](m, KeySocials)
}

func (m *Mirror) LoadUser() (service.User, bool) {
	return load[service.User](m, KeyUser)
}
