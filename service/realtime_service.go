package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Subscription 一个实时订阅，Unsubscribe 可重复调用
type Subscription interface {
	Unsubscribe() error
}

// RealtimeService 基于 Redis Pub/Sub 的行变更通知
// 频道：px:realtime:{table}:{type}
type RealtimeService struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRealtimeService(rdb *redis.Client, log zerolog.Logger) *RealtimeService {
	return &RealtimeService{rdb: rdb, log: log}
}

func realtimeChannel(table, eventType string) string {
	return cons.RedisRealtimeChannel + table + ":" + eventType
}

func (r *RealtimeService) ensure() error {
	if r == nil || r.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}
	return nil
}

// Publish 广播一条行变更
func (r *RealtimeService) Publish(ctx context.Context, table, eventType string, record any) error {
	if err := r.ensure(); err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	b, err := json.Marshal(message.ChangeEvent{
		Table:           table,
		Type:            eventType,
		Record:          raw,
		CommitTimestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, realtimeChannel(table, eventType), b).Err()
}

// Subscribe 订阅某张表的某类事件；返回前已确认订阅生效
// fn 在内部 goroutine 中串行调用
func (r *RealtimeService) Subscribe(ctx context.Context, table, eventType string, fn func(message.ChangeEvent)) (Subscription, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}
	return r.listen(ctx, r.rdb.Subscribe(ctx, realtimeChannel(table, eventType)), fn)
}

// SubscribeAll 订阅所有表的所有事件（WS 转发用）
func (r *RealtimeService) SubscribeAll(ctx context.Context, fn func(message.ChangeEvent)) (Subscription, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}
	return r.listen(ctx, r.rdb.PSubscribe(ctx, cons.RedisRealtimeChannel+"*"), fn)
}

func (r *RealtimeService) listen(ctx context.Context, ps *redis.PubSub, fn func(message.ChangeEvent)) (Subscription, error) {
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	sub := &redisSubscription{ps: ps}
	ch := ps.Channel()
	go func() {
		for m := range ch {
			var ev message.ChangeEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				r.log.Warn().Err(err).Str("channel", m.Channel).Msg("drop malformed change event")
				continue
			}
			fn(ev)
		}
	}()
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	once sync.Once
	err  error
}

func (s *redisSubscription) Unsubscribe() error {
	s.once.Do(func() {
		s.err = s.ps.Close()
	})
	return s.err
}
