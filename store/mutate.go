package store

import (
	"context"
	"errors"

	"github.com/cydxin/pixelheart-sdk/service"
)

// applyFunc 网关调用成功后对缓存做的修改，执行时持有 s.mu 写锁
type applyFunc func()

type mutateResult struct {
	apply applyFunc
	err   error
}

// mutate 两阶段写：限时调用网关，成功后再改缓存。
// 超时或失败时缓存保持不变，记录 LastError 并把错误返回给调用方。
func (s *Store) mutate(ctx context.Context, op string, call func(ctx context.Context) (applyFunc, error)) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan mutateResult, 1)
	go func() {
		apply, err := call(ctx)
		done <- mutateResult{apply: apply, err: err}
	}()

	var r mutateResult
	select {
	case r = <-done:
	case <-ctx.Done():
		r.err = ctx.Err()
	}
	if errors.Is(r.err, context.DeadlineExceeded) {
		r.err = ErrTimeout
	}
	if r.err != nil {
		s.fail(op, r.err)
		return r.err
	}

	if r.apply != nil {
		s.mu.Lock()
		r.apply()
		s.mu.Unlock()
		s.persist()
	}
	s.changed()
	return nil
}

func (s *Store) fail(op string, err error) {
	s.log.Error().Err(err).Str("op", op).Msg("operation failed")
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.changed()
}

// signedIn 当前用户快照；未登录返回 nil
func (s *Store) signedIn() *service.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := copyUser(*s.user)
	return &u
}

func (s *Store) requireAdmin() (*service.User, error) {
	u := s.signedIn()
	if u == nil || !u.IsAdmin {
		return nil, ErrForbidden
	}
	return u, nil
}

// --- 以下 helper 均要求调用方持有 s.mu 写锁，且只替换切片不原地修改 ---

func (s *Store) mapPhotos(setID, photoID string, fn func(service.CosplayPhoto) service.CosplayPhoto) {
	sets := make([]service.CosplaySet, len(s.sets))
	for i, set := range s.sets {
		if setID != "" && set.ID != setID {
			sets[i] = set
			continue
		}
		photos := make([]service.CosplayPhoto, len(set.Photos))
		for j, p := range set.Photos {
			if p.ID == photoID {
				p = fn(p)
			}
			photos[j] = p
		}
		set.Photos = photos
		sets[i] = set
	}
	s.sets = sets
}

func (s *Store) mapUsers(id string, fn func(service.User) service.User) {
	users := make([]service.User, len(s.users))
	for i, u := range s.users {
		if u.ID == id {
			u = fn(u)
		}
		users[i] = u
	}
	s.users = users
}

func filterOut[T any](in []T, drop func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
