package store

import (
	"context"
	"io"
	"strings"

	"github.com/cydxin/pixelheart-sdk/service"
)

// Login identifier 可以是邮箱或用户名
func (s *Store) Login(ctx context.Context, identifier, password string) error {
	identifier = strings.TrimSpace(identifier)
	if err := validateLogin(identifier, password); err != nil {
		return err
	}
	return s.mutate(ctx, "sign in", func(ctx context.Context) (applyFunc, error) {
		u, err := s.gw.SignIn(ctx, identifier, password)
		if err != nil {
			return nil, err
		}
		return func() {
			cp := copyUser(u)
			s.user = &cp
		}, nil
	})
}

// Signup 注册成功即登录
func (s *Store) Signup(ctx context.Context, req service.SignUpReq) error {
	if err := validateSignUp(req); err != nil {
		return err
	}
	return s.mutate(ctx, "sign up", func(ctx context.Context) (applyFunc, error) {
		u, err := s.gw.SignUp(ctx, req)
		if err != nil {
			return nil, err
		}
		return func() {
			cp := copyUser(u)
			s.user = &cp
		}, nil
	})
}

// Logout 无论远端注销是否成功，本地用户和聊天都会清空
func (s *Store) Logout(ctx context.Context) error {
	err := s.mutate(ctx, "sign out", func(ctx context.Context) (applyFunc, error) {
		return nil, s.gw.SignOut(ctx)
	})
	s.mu.Lock()
	s.user = nil
	s.chat = nil
	s.mu.Unlock()
	s.persist()
	s.changed()
	return err
}

// UpdateUser 修改当前用户的用户名 / 头像，空字段不改
func (s *Store) UpdateUser(ctx context.Context, upd service.ProfileUpdate) error {
	if s.signedIn() == nil {
		return ErrNotSignedIn
	}
	return s.mutate(ctx, "update profile", func(ctx context.Context) (applyFunc, error) {
		u, err := s.gw.UpdateProfile(ctx, upd)
		if err != nil {
			return nil, err
		}
		return func() {
			if s.user != nil && s.user.ID == u.ID {
				cp := copyUser(u)
				s.user = &cp
			}
		}, nil
	})
}

// UploadAvatar 返回公开地址，不改缓存
func (s *Store) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	var url string
	err := s.mutate(ctx, "upload avatar", func(ctx context.Context) (applyFunc, error) {
		u, err := s.gw.UploadAvatar(ctx, filename, r)
		if err != nil {
			return nil, err
		}
		return func() { url = u }, nil
	})
	return url, err
}

func (s *Store) UploadSetImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var url string
	err := s.mutate(ctx, "upload set image", func(ctx context.Context) (applyFunc, error) {
		u, err := s.gw.UploadSetImage(ctx, filename, r)
		if err != nil {
			return nil, err
		}
		return func() { url = u }, nil
	})
	return url, err
}

// DeleteAccount 自助注销：管理员不可注销，且需输入与账号一致的邮箱；成功后登出
func (s *Store) DeleteAccount(ctx context.Context, confirmEmail string) error {
	u := s.signedIn()
	if u == nil {
		return ErrNotSignedIn
	}
	if u.IsAdmin {
		return ErrAdminAccount
	}
	if !strings.EqualFold(strings.TrimSpace(confirmEmail), u.Email) {
		return ErrEmailMismatch
	}
	if err := s.mutate(ctx, "delete account", func(ctx context.Context) (applyFunc, error) {
		return nil, s.gw.DeleteUser(ctx, u.ID)
	}); err != nil {
		return err
	}
	return s.Logout(ctx)
}

// --- 用户管理（管理员） ---

func (s *Store) BanUser(ctx context.Context, id string) error {
	return s.setBanned(ctx, "ban user", id, true)
}

func (s *Store) UnbanUser(ctx context.Context, id string) error {
	return s.setBanned(ctx, "unban user", id, false)
}

func (s *Store) setBanned(ctx context.Context, op, id string, banned bool) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	return s.mutate(ctx, op, func(ctx context.Context) (applyFunc, error) {
		var err error
		if banned {
			err = s.gw.BanUser(ctx, id)
		} else {
			err = s.gw.UnbanUser(ctx, id)
		}
		if err != nil {
			return nil, err
		}
		return func() {
			s.mapUsers(id, func(u service.User) service.User {
				u.IsBanned = banned
				return u
			})
		}, nil
	})
}

func (s *Store) DeleteUserAdmin(ctx context.Context, id string) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	return s.mutate(ctx, "delete user", func(ctx context.Context) (applyFunc, error) {
		if err := s.gw.DeleteUser(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			s.users = filterOut(s.users, func(u service.User) bool { return u.ID == id })
		}, nil
	})
}

// --- 后台刷新：失败只记录，不返回 ---

// RefreshData 重新拉取套图、系列、联系方式
func (s *Store) RefreshData(ctx context.Context) {
	if err := s.loadPublicData(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh data failed")
	}
}

// RefreshUsers 非管理员直接忽略
func (s *Store) RefreshUsers(ctx context.Context) {
	if _, err := s.requireAdmin(); err != nil {
		return
	}
	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("refresh users failed")
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.changed()
		return
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	s.changed()
}

// RefreshChat 整体替换为最近一页聊天记录
func (s *Store) RefreshChat(ctx context.Context) {
	msgs, err := s.gw.ListChat(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("refresh chat failed")
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.changed()
		return
	}
	s.mu.Lock()
	s.chat = msgs
	s.mu.Unlock()
	s.changed()
}
