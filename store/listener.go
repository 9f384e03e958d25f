package store

import (
	"context"
	"sync"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/rs/zerolog"
)

// ListenerState 聊天订阅状态
type ListenerState int

const (
	StateDisconnected ListenerState = iota
	StateSubscribing
	StateSubscribed
	StateUnsubscribed
)

func (s ListenerState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateSubscribing:
		return "subscribing"
	case StateSubscribed:
		return "subscribed"
	case StateUnsubscribed:
		return "unsubscribed"
	}
	return "unknown"
}

const refreshTimeout = 15 * time.Second

// ChatListener 订阅新聊天消息；每来一条都整页重拉，不做增量追加。
// 断线不自动重连。
type ChatListener struct {
	feed    ChangeFeed
	refresh func(context.Context)
	log     zerolog.Logger

	mu     sync.Mutex
	state  ListenerState
	sub    service.Subscription
	ctx    context.Context
	cancel context.CancelFunc
}

func NewChatListener(feed ChangeFeed, refresh func(context.Context), log zerolog.Logger) *ChatListener {
	return &ChatListener{feed: feed, refresh: refresh, log: log}
}

// Start 只在 disconnected 状态下生效；订阅失败回到 disconnected
func (l *ChatListener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateDisconnected {
		l.mu.Unlock()
		return nil
	}
	l.state = StateSubscribing
	l.ctx, l.cancel = context.WithCancel(context.WithoutCancel(ctx))
	lctx, cancel := l.ctx, l.cancel
	l.mu.Unlock()

	sub, err := l.feed.Subscribe(lctx, cons.TableChatMessage, cons.ChangeInsert, l.onEvent)

	l.mu.Lock()
	if err != nil {
		if l.state == StateSubscribing {
			l.state = StateDisconnected
		}
		l.mu.Unlock()
		cancel()
		return err
	}
	if l.state == StateUnsubscribed {
		// 订阅期间已被 Stop
		l.mu.Unlock()
		_ = sub.Unsubscribe()
		return nil
	}
	l.sub = sub
	l.state = StateSubscribed
	l.mu.Unlock()
	l.log.Debug().Msg("chat realtime subscribed")
	return nil
}

func (l *ChatListener) onEvent(ev message.ChangeEvent) {
	l.mu.Lock()
	active := l.state == StateSubscribing || l.state == StateSubscribed
	ctx := l.ctx
	l.mu.Unlock()
	if !active {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	l.refresh(rctx)
}

// Stop 释放订阅，可重复调用
func (l *ChatListener) Stop() {
	l.mu.Lock()
	if l.state == StateUnsubscribed {
		l.mu.Unlock()
		return
	}
	l.state = StateUnsubscribed
	sub, cancel := l.sub, l.cancel
	l.sub = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			l.log.Warn().Err(err).Msg("chat realtime unsubscribe failed")
		}
	}
}

func (l *ChatListener) State() ListenerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
