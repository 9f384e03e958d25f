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

// SetService 套图读写
type SetService struct {
	*Service
	sets         *models.SetDAO
	series       *models.SeriesDAO
	comments     *models.CommentDAO
	interactions *repository.PhotoInteractionDAO
}

func NewSetService(s *Service) *SetService {
	return &SetService{
		Service:      s,
		sets:         models.NewSetDAO(s.DB),
		series:       models.NewSeriesDAO(s.DB),
		comments:     models.NewCommentDAO(s.DB),
		interactions: repository.NewPhotoInteractionDAO(s.DB),
	}
}

// ListSets 全部套图（含照片、点赞、评论），新的在前
func (s *SetService) ListSets(ctx context.Context) ([]CosplaySet, error) {
	db := s.DB.WithContext(ctx)
	rows, err := s.sets.WithDB(db).List()
	if err != nil {
		return nil, platformErr("list sets", err)
	}
	out, err := s.assemble(db, rows)
	if err != nil {
		return nil, platformErr("list sets", err)
	}
	return out, nil
}

// GetSet 单个套图
func (s *SetService) GetSet(ctx context.Context, id string) (CosplaySet, error) {
	setID, err := parseID("get set", id)
	if err != nil {
		return CosplaySet{}, err
	}
	db := s.DB.WithContext(ctx)
	out, err := s.load(db, setID)
	if err != nil {
		return CosplaySet{}, platformErr("get set", err)
	}
	return out, nil
}

// CountFeatured 精选套图数量，excludeID 非空时不计该套图
func (s *SetService) CountFeatured(ctx context.Context, excludeID string) (int64, error) {
	var exclude uint64
	if excludeID != "" {
		id, err := parseID("count featured", excludeID)
		if err != nil {
			return 0, err
		}
		exclude = id
	}
	n, err := s.sets.WithDB(s.DB.WithContext(ctx)).CountFeatured(exclude)
	if err != nil {
		return 0, platformErr("count featured", err)
	}
	return n, nil
}

// CreateSet 解析/创建系列，写入套图和全部照片，整体一个事务
func (s *SetService) CreateSet(ctx context.Context, d SetDraft) (CosplaySet, error) {
	var out CosplaySet
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series, err := s.resolveSeries(tx, d.Series)
		if err != nil {
			return err
		}
		row := models.CosplaySet{
			Character:   strings.TrimSpace(d.Character),
			SeriesID:    &series.ID,
			SeriesName:  series.Name,
			Date:        d.Date,
			CoverImage:  d.CoverImage,
			Description: d.Description,
			Featured:    d.Featured,
		}
		if err := s.sets.WithDB(tx).Create(&row); err != nil {
			return err
		}

		photos := make([]models.Photo, 0, len(d.Photos))
		for _, p := range d.Photos {
			url, caption := draftFields(p)
			photos = append(photos, models.Photo{SetID: row.ID, URL: url, Caption: caption, SaveCount: 0})
		}
		if err := s.sets.WithDB(tx).CreatePhotos(photos); err != nil {
			return fmt.Errorf("set created but photos failed: %w", err)
		}

		mapped := make([]CosplayPhoto, 0, len(photos))
		for _, p := range photos {
			mapped = append(mapped, toCosplayPhoto(p, nil, nil))
		}
		out = toCosplaySet(row, series.Name, mapped)
		return nil
	})
	if err != nil {
		return CosplaySet{}, platformErr("create set", err)
	}
	s.Log.Info().Str("set_id", out.ID).Int("photos", len(out.Photos)).Msg("set created")
	s.publishChange(ctx, cons.TableSets, cons.ChangeInsert, out)
	return out, nil
}

// UpdateSet 更新标量字段并三路同步照片：
// 丢弃的照片连同点赞、收藏、评论一起删除；NewPhoto 插入；ExistingPhoto 只改 url/caption
func (s *SetService) UpdateSet(ctx context.Context, id string, d SetDraft) (CosplaySet, error) {
	setID, err := parseID("update set", id)
	if err != nil {
		return CosplaySet{}, err
	}

	var out CosplaySet
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sets := s.sets.WithDB(tx)
		if _, err := sets.FindByID(setID); err != nil {
			return err
		}
		series, err := s.resolveSeries(tx, d.Series)
		if err != nil {
			return err
		}
		if _, err := sets.UpdateFields(setID, map[string]any{
			"character":   strings.TrimSpace(d.Character),
			"series_id":   series.ID,
			"series_name": series.Name,
			"date":        d.Date,
			"cover_image": d.CoverImage,
			"description": d.Description,
			"featured":    d.Featured,
		}); err != nil {
			return err
		}

		persisted, err := sets.PhotoIDsBySet(setID)
		if err != nil {
			return err
		}
		owned := make(map[uint64]bool, len(persisted))
		for _, pid := range persisted {
			owned[pid] = true
		}

		keep := make(map[uint64]bool)
		for _, p := range d.Photos {
			ep, ok := p.(ExistingPhoto)
			if !ok {
				continue
			}
			pid, err := parseID("update set", ep.ID)
			if err != nil {
				return err
			}
			if !owned[pid] {
				return fmt.Errorf("photo %s does not belong to set %s: %w", ep.ID, id, ErrNotFound)
			}
			keep[pid] = true
		}

		var drop []uint64
		for _, pid := range persisted {
			if !keep[pid] {
				drop = append(drop, pid)
			}
		}
		if err := sets.DeletePhotos(drop); err != nil {
			return err
		}

		var fresh []models.Photo
		for _, p := range d.Photos {
			switch v := p.(type) {
			case NewPhoto:
				fresh = append(fresh, models.Photo{SetID: setID, URL: v.URL, Caption: v.Caption})
			case ExistingPhoto:
				pid, _ := parseID("update set", v.ID)
				if _, err := sets.UpdatePhoto(setID, pid, v.URL, v.Caption); err != nil {
					return err
				}
			}
		}
		if err := sets.CreatePhotos(fresh); err != nil {
			return err
		}

		out, err = s.load(tx, setID)
		return err
	})
	if err != nil {
		return CosplaySet{}, platformErr("update set", err)
	}
	s.publishChange(ctx, cons.TableSets, cons.ChangeUpdate, out)
	return out, nil
}

// DeleteSet 删除套图及其照片、点赞、收藏、评论；不存在时视为成功
func (s *SetService) DeleteSet(ctx context.Context, id string) error {
	setID, err := parseID("delete set", id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sets := s.sets.WithDB(tx)
		photoIDs, err := sets.PhotoIDsBySet(setID)
		if err != nil {
			return err
		}
		if err := sets.DeletePhotos(photoIDs); err != nil {
			return err
		}
		_, err = sets.Delete(setID)
		return err
	})
	if err != nil {
		return platformErr("delete set", err)
	}
	s.publishChange(ctx, cons.TableSets, cons.ChangeDelete, deletedRow{ID: id})
	return nil
}

// resolveSeries 按名称精确（区分大小写）匹配系列，没有则新建
func (s *SetService) resolveSeries(tx *gorm.DB, name string) (*models.Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("series name is required")
	}
	dao := s.series.WithDB(tx)
	found, err := dao.FindByName(name)
	if err == nil && found.Name == name {
		return found, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	row := &models.Series{Name: name}
	if err := dao.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SetService) load(db *gorm.DB, setID uint64) (CosplaySet, error) {
	row, err := s.sets.WithDB(db).FindByID(setID)
	if err != nil {
		return CosplaySet{}, err
	}
	out, err := s.assemble(db, []models.CosplaySet{*row})
	if err != nil {
		return CosplaySet{}, err
	}
	return out[0], nil
}

// assemble 批量加载关联数据再拼装，避免 N+1
func (s *SetService) assemble(db *gorm.DB, rows []models.CosplaySet) ([]CosplaySet, error) {
	out := make([]CosplaySet, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	setIDs := make([]uint64, 0, len(rows))
	var seriesIDs []uint64
	for _, r := range rows {
		setIDs = append(setIDs, r.ID)
		if r.SeriesID != nil {
			seriesIDs = append(seriesIDs, *r.SeriesID)
		}
	}

	live, err := s.series.WithDB(db).FindByIDs(seriesIDs)
	if err != nil {
		return nil, err
	}
	photos, err := s.sets.WithDB(db).PhotosBySetIDs(setIDs)
	if err != nil {
		return nil, err
	}
	photoIDs := make([]uint64, 0, len(photos))
	for _, p := range photos {
		photoIDs = append(photoIDs, p.ID)
	}
	likes, err := s.interactions.WithDB(db).LikesByPhotoIDs(photoIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.WithDB(db).ListByPhotoIDs(photoIDs)
	if err != nil {
		return nil, err
	}

	likesBy := make(map[uint64][]string, len(photoIDs))
	for _, l := range likes {
		likesBy[l.PhotoID] = append(likesBy[l.PhotoID], l.UserID)
	}
	commentsBy := make(map[uint64][]Comment, len(photoIDs))
	for _, c := range comments {
		commentsBy[c.PhotoID] = append(commentsBy[c.PhotoID], toComment(c))
	}
	photosBy := make(map[uint64][]CosplayPhoto, len(rows))
	for _, p := range photos {
		photosBy[p.SetID] = append(photosBy[p.SetID], toCosplayPhoto(p, likesBy[p.ID], commentsBy[p.ID]))
	}

	for _, r := range rows {
		out = append(out, toCosplaySet(r, seriesLabel(r, live), photosBy[r.ID]))
	}
	return out, nil
}

func draftFields(p PhotoDraft) (url, caption string) {
	switch v := p.(type) {
	case NewPhoto:
		return v.URL, v.Caption
	case ExistingPhoto:
		return v.URL, v.Caption
	}
	return "", ""
}
