package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/models"
	"github.com/cydxin/pixelheart-sdk/repository"
	"gorm.io/gorm"
)

// ProfileService 用户资料与用户管理
type ProfileService struct {
	*Service
	profiles     *models.ProfileDAO
	interactions *repository.PhotoInteractionDAO
}

func NewProfileService(s *Service) *ProfileService {
	return &ProfileService{
		Service:      s,
		profiles:     models.NewProfileDAO(s.DB),
		interactions: repository.NewPhotoInteractionDAO(s.DB),
	}
}

// ListUsers 用户列表，只含公开字段（不含邮箱、生日、收藏）
func (s *ProfileService) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.profiles.WithDB(s.DB.WithContext(ctx)).List()
	if err != nil {
		return nil, platformErr("list users", err)
	}
	out := make([]User, 0, len(rows))
	for _, p := range rows {
		out = append(out, toRosterUser(p))
	}
	return out, nil
}

// GetProfile 完整用户信息（含收藏列表）
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (User, error) {
	db := s.DB.WithContext(ctx)
	dao := s.profiles.WithDB(db)
	p, err := dao.FindByID(userID)
	if err != nil {
		return User{}, platformErr("get profile", fmt.Errorf("profile %s: %w", userID, err))
	}
	email := p.Email
	if ident, err := dao.FindIdentityByID(userID); err == nil {
		email = ident.Email
	}
	saved, err := s.interactions.WithDB(db).SavedPhotoIDs(userID)
	if err != nil {
		return User{}, platformErr("get profile", err)
	}
	return toUser(*p, email, saved), nil
}

// UpdateProfile 只修改非空字段
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (User, error) {
	dao := s.profiles.WithDB(s.DB.WithContext(ctx))
	updates := map[string]any{}
	if name := strings.TrimSpace(upd.Username); name != "" {
		other, err := dao.FindByUsername(name)
		if err == nil && other.ID != userID {
			return User{}, &PlatformError{Op: "update profile", Msg: ErrUsernameTaken.Error(), Err: ErrUsernameTaken}
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, platformErr("update profile", err)
		}
		updates["username"] = name
	}
	if pic := strings.TrimSpace(upd.ProfilePicture); pic != "" {
		updates["avatar_url"] = pic
	}
	if err := dao.UpdateFields(userID, updates); err != nil {
		return User{}, platformErr("update profile", err)
	}
	s.publishProfile(ctx, userID)
	return s.GetProfile(ctx, userID)
}

// IsAdmin 管理员判断；profile 不存在视为普通用户
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := s.profiles.WithDB(s.DB.WithContext(ctx)).FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, platformErr("check admin", err)
	}
	return p.IsAdmin, nil
}

func (s *ProfileService) BanUser(ctx context.Context, userID string) error {
	if _, err := s.profiles.WithDB(s.DB.WithContext(ctx)).SetBanned(userID, true); err != nil {
		return platformErr("ban user", err)
	}
	s.Log.Info().Str("user_id", userID).Msg("user banned")
	s.publishProfile(ctx, userID)
	return nil
}

func (s *ProfileService) UnbanUser(ctx context.Context, userID string) error {
	if _, err := s.profiles.WithDB(s.DB.WithContext(ctx)).SetBanned(userID, false); err != nil {
		return platformErr("unban user", err)
	}
	s.publishProfile(ctx, userID)
	return nil
}

// DeleteUser 只删 profile 行；登录身份和已签发的 token 保留
func (s *ProfileService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.profiles.WithDB(s.DB.WithContext(ctx)).Delete(userID); err != nil {
		return platformErr("delete user", err)
	}
	s.Log.Info().Str("user_id", userID).Msg("profile deleted")
	s.publishChange(ctx, cons.TableProfiles, cons.ChangeDelete, deletedRow{ID: userID})
	return nil
}

// publishProfile 只推送公开字段
func (s *ProfileService) publishProfile(ctx context.Context, userID string) {
	if s.Realtime == nil {
		return
	}
	p, err := s.profiles.WithDB(s.DB.WithContext(ctx)).FindByID(userID)
	if err != nil {
		return
	}
	s.publishChange(ctx, cons.TableProfiles, cons.ChangeUpdate, toRosterUser(*p))
}

// FindEmailByUsername 用户名登录时反查邮箱
func (s *ProfileService) FindEmailByUsername(ctx context.Context, username string) (string, error) {
	return findEmailByUsername(s.profiles.WithDB(s.DB.WithContext(ctx)), username)
}

func findEmailByUsername(dao *models.ProfileDAO, username string) (string, error) {
	p, err := dao.FindByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && p.Email == "") {
		return "", &PlatformError{Op: "sign in", Msg: ErrUsernameNotFound.Error(), Err: ErrUsernameNotFound}
	}
	if err != nil {
		return "", platformErr("sign in", err)
	}
	return p.Email, nil
}
