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

// InteractionService 点赞、收藏、评论
type InteractionService struct {
	*Service
	sets         *models.SetDAO
	comments     *models.CommentDAO
	profiles     *models.ProfileDAO
	interactions *repository.PhotoInteractionDAO
}

func NewInteractionService(s *Service) *InteractionService {
	return &InteractionService{
		Service:      s,
		sets:         models.NewSetDAO(s.DB),
		comments:     models.NewCommentDAO(s.DB),
		profiles:     models.NewProfileDAO(s.DB),
		interactions: repository.NewPhotoInteractionDAO(s.DB),
	}
}

func (s *InteractionService) photoID(db *gorm.DB, op, id string) (uint64, error) {
	pid, err := parseID(op, id)
	if err != nil {
		return 0, err
	}
	if _, err := s.sets.WithDB(db).FindPhoto(pid); err != nil {
		return 0, platformErr(op, fmt.Errorf("photo %s: %w", id, err))
	}
	return pid, nil
}

// ToggleLike 返回操作后是否为已点赞
func (s *InteractionService) ToggleLike(ctx context.Context, photoID, userID string) (bool, error) {
	db := s.DB.WithContext(ctx)
	pid, err := s.photoID(db, "toggle like", photoID)
	if err != nil {
		return false, err
	}
	liked, err := s.interactions.WithDB(db).ToggleLike(pid, userID)
	if err != nil {
		return false, platformErr("toggle like", err)
	}
	return liked, nil
}

// ToggleSave 返回操作后是否为已收藏，以及该用户完整的收藏列表
func (s *InteractionService) ToggleSave(ctx context.Context, photoID, userID string) (bool, []string, error) {
	db := s.DB.WithContext(ctx)
	pid, err := s.photoID(db, "toggle save", photoID)
	if err != nil {
		return false, nil, err
	}
	dao := s.interactions.WithDB(db)
	saved, err := dao.ToggleSave(pid, userID)
	if err != nil {
		return false, nil, platformErr("toggle save", err)
	}
	ids, err := dao.SavedPhotoIDs(userID)
	if err != nil {
		return saved, nil, platformErr("toggle save", err)
	}
	return saved, idsToStrings(ids), nil
}

func (s *InteractionService) SavedPhotoIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.interactions.WithDB(s.DB.WithContext(ctx)).SavedPhotoIDs(userID)
	if err != nil {
		return nil, platformErr("saved photos", err)
	}
	return idsToStrings(ids), nil
}

// commentChange 评论推送带上所属照片
type commentChange struct {
	Comment
	PhotoID string `json:"photoId"`
}

// AddComment username 由调用方提供并原样保存
func (s *InteractionService) AddComment(ctx context.Context, photoID, userID, username, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, &PlatformError{Op: "add comment", Msg: "comment text is required"}
	}
	db := s.DB.WithContext(ctx)
	pid, err := s.photoID(db, "add comment", photoID)
	if err != nil {
		return Comment{}, err
	}
	if err := ensureNotBanned(s.profiles.WithDB(db), "add comment", userID); err != nil {
		return Comment{}, err
	}
	row := models.Comment{PhotoID: pid, UserID: userID, Username: username, Text: text}
	if err := s.comments.WithDB(db).Create(&row); err != nil {
		return Comment{}, platformErr("add comment", err)
	}
	c := toComment(row)
	s.publishChange(ctx, cons.TableComments, cons.ChangeInsert, commentChange{Comment: c, PhotoID: photoID})
	return c, nil
}

// DeleteComment 不存在时视为成功
func (s *InteractionService) DeleteComment(ctx context.Context, id string) error {
	cid, err := parseID("delete comment", id)
	if err != nil {
		return err
	}
	if _, err := s.comments.WithDB(s.DB.WithContext(ctx)).Delete(cid); err != nil {
		return platformErr("delete comment", err)
	}
	s.publishChange(ctx, cons.TableComments, cons.ChangeDelete, deletedRow{ID: id})
	return nil
}

// FindComment 供接口层做作者校验
func (s *InteractionService) FindComment(ctx context.Context, id string) (Comment, error) {
	cid, err := parseID("find comment", id)
	if err != nil {
		return Comment{}, err
	}
	row, err := s.comments.WithDB(s.DB.WithContext(ctx)).FindByID(cid)
	if err != nil {
		return Comment{}, platformErr("find comment", err)
	}
	return toComment(*row), nil
}

// ensureNotBanned 被封禁用户不能发言；没有 profile 的用户不拦截
func ensureNotBanned(profiles *models.ProfileDAO, op, userID string) error {
	p, err := profiles.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return platformErr(op, err)
	}
	if p.IsBanned {
		return &PlatformError{Op: op, Msg: ErrBanned.Error(), Err: ErrBanned}
	}
	return nil
}

func idsToStrings(ids []uint64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmtID(id))
	}
	return out
}
