package repository

import (
	"github.com/cydxin/pixelheart-sdk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PhotoInteractionDAO 点赞 / 收藏行的读写
//
// 约定：
// - (photo_id, user_id) 有唯一索引，插入走 ON CONFLICT DO NOTHING，重复请求不会产生重复行；
// - 收藏计数只在真正插入/删除一行时调整，并且在数据库端完成，不做读改写；
// - 事务边界由 DAO 内部控制（toggle 本身是一个原子单元）。
type PhotoInteractionDAO struct {
	db *gorm.DB
}

func NewPhotoInteractionDAO(db *gorm.DB) *PhotoInteractionDAO {
	return &PhotoInteractionDAO{db: db}
}

// WithDB 用于在事务（tx）中复用 DAO
func (dao *PhotoInteractionDAO) WithDB(db *gorm.DB) *PhotoInteractionDAO {
	if db == nil {
		return dao
	}
	return &PhotoInteractionDAO{db: db}
}

// ToggleLike 有则删、无则插，返回操作后是否为已点赞
func (dao *PhotoInteractionDAO) ToggleLike(photoID uint64, userID string) (bool, error) {
	liked := false
	err := dao.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.PhotoLike{}).
			Where("photo_id = ? AND user_id = ?", photoID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return tx.Where("photo_id = ? AND user_id = ?", photoID, userID).Delete(&models.PhotoLike{}).Error
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.PhotoLike{PhotoID: photoID, UserID: userID}).Error
	})
	return liked, err
}

// ToggleSave 同 ToggleLike，并同步调整 photo.save_count（不低于 0）
func (dao *PhotoInteractionDAO) ToggleSave(photoID uint64, userID string) (bool, error) {
	saved := false
	err := dao.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.SavedPhoto{}).
			Where("photo_id = ? AND user_id = ?", photoID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			res := tx.Where("photo_id = ? AND user_id = ?", photoID, userID).Delete(&models.SavedPhoto{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			return tx.Model(&models.Photo{}).Where("id = ?", photoID).
				UpdateColumn("save_count", gorm.Expr("CASE WHEN save_count > 0 THEN save_count - 1 ELSE 0 END")).Error
		}
		saved = true
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.SavedPhoto{PhotoID: photoID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Photo{}).Where("id = ?", photoID).
			UpdateColumn("save_count", gorm.Expr("save_count + 1")).Error
	})
	return saved, err
}

// LikesByPhotoIDs 批量加载点赞行
func (dao *PhotoInteractionDAO) LikesByPhotoIDs(photoIDs []uint64) ([]models.PhotoLike, error) {
	if len(photoIDs) == 0 {
		return []models.PhotoLike{}, nil
	}
	var rows []models.PhotoLike
	err := dao.db.Where("photo_id IN ?", photoIDs).Order("id ASC").Find(&rows).Error
	return rows, err
}

// SavedPhotoIDs 用户收藏的照片 id，按收藏先后
func (dao *PhotoInteractionDAO) SavedPhotoIDs(userID string) ([]uint64, error) {
	var ids []uint64
	err := dao.db.Model(&models.SavedPhoto{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("photo_id", &ids).Error
	return ids, err
}
