package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/go-redis/redis/v8"
)

const (
	// 默认 token 过期时间
	defaultTokenTTL = 7 * 24 * time.Hour
)

// TokenService 专门负责 token 的生成、存储、校验与注销。
// Redis Key 设计：
// - px:token:{token} -> userID (String, TTL)
// - px:user_tokens:{userID} -> Set(token1, token2, ...) (Set, 可选 TTL)
//
// 单 token 注销：DEL tokenKey + SREM userSet
// 全端注销：SMEMBERS userSet 再批量 DEL tokenKey
type TokenService struct {
	rdb *redis.Client
}

func NewTokenService(rdb *redis.Client) *TokenService {
	return &TokenService{rdb: rdb}
}

func (s *TokenService) ensure() error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}
	return nil
}

func (s *TokenService) tokenKey(token string) string {
	return cons.RedisTokenPrefix + token
}

func (s *TokenService) userTokensKey(userID string) string {
	return cons.RedisUserTokensPrefix + userID
}

// GenerateToken 生成一个随机 token（不包含任何用户信息）。
func (s *TokenService) GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// StoreToken 保存 token -> userID 映射，并把 token 加入 user 的 token 集合。
func (s *TokenService) StoreToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.ensure(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.tokenKey(token), userID, ttl)
	pipe.SAdd(ctx, s.userTokensKey(userID), token)
	// user token set 的 TTL 略大于 token TTL，方便自动清理
	pipe.Expire(ctx, s.userTokensKey(userID), ttl+24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// RefreshTokenTTL 对 token 续期（同时延长 user token set TTL）。
func (s *TokenService) RefreshTokenTTL(ctx context.Context, token string, ttl time.Duration) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	uid, err := s.GetUserIDByToken(ctx, token)
	if err != nil {
		return "", err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Expire(ctx, s.tokenKey(token), ttl)
	pipe.Expire(ctx, s.userTokensKey(uid), ttl+24*time.Hour)
	_, err = pipe.Exec(ctx)
	return uid, err
}

// GetUserIDByToken 根据 token 取 userID；不存在或已过期返回 redis.Nil
func (s *TokenService) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	return s.rdb.Get(ctx, s.tokenKey(token)).Result()
}

// TTL token 剩余有效期
func (s *TokenService) TTL(ctx context.Context, token string) (time.Duration, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}
	return s.rdb.TTL(ctx, s.tokenKey(token)).Result()
}

// RevokeToken 注销单个 token（tokenKey 与 user set 一起清理）
func (s *TokenService) RevokeToken(ctx context.Context, token string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	uid, err := s.GetUserIDByToken(ctx, token)
	if err != nil && err != redis.Nil {
		return "", err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.tokenKey(token))
	if uid != "" {
		pipe.SRem(ctx, s.userTokensKey(uid), token)
	}
	_, err = pipe.Exec(ctx)
	return uid, err
}

// ListUserTokens 列出用户所有 token（用于全端注销）。
func (s *TokenService) ListUserTokens(ctx context.Context, userID string) ([]string, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s.rdb.SMembers(ctx, s.userTokensKey(userID)).Result()
}

// RevokeAllTokensByUser 注销用户全部 token。
func (s *TokenService) RevokeAllTokensByUser(ctx context.Context, userID string) error {
	if err := s.ensure(); err != nil {
		return err
	}
	tokens, err := s.ListUserTokens(ctx, userID)
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, s.tokenKey(t))
	}
	pipe.Del(ctx, s.userTokensKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
