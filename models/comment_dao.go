package models

import (
	"gorm.io/gorm"
)

// CommentDAO 照片评论
type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{db: db}
}

func (dao *CommentDAO) WithDB(db *gorm.DB) *CommentDAO {
	if db == nil {
		return dao
	}
	return &CommentDAO{db: db}
}

func (dao *CommentDAO) Create(c *Comment) error {
	return dao.db.Create(c).Error
}

func (dao *CommentDAO) FindByID(id uint64) (*Comment, error) {
	var c Comment
	if err := dao.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPhotoIDs 按照片批量加载，id 升序
func (dao *CommentDAO) ListByPhotoIDs(photoIDs []uint64) ([]Comment, error) {
	if len(photoIDs) == 0 {
		return []Comment{}, nil
	}
	var rows []Comment
	err := dao.db.Where("photo_id IN ?", photoIDs).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (dao *CommentDAO) Delete(id uint64) (int64, error) {
	res := dao.db.Where("id = ?", id).Delete(&Comment{})
	return res.RowsAffected, res.Error
}

// ListMissingUsername 作者名为空的历史评论
func (dao *CommentDAO) ListMissingUsername(limit int) ([]Comment, error) {
	if limit <= 0 {
		limit = 500
	}
	var rows []Comment
	err := dao.db.Where("username = ? OR username IS NULL", "").Order("id ASC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (dao *CommentDAO) SetUsername(id uint64, username string) error {
	return dao.db.Model(&Comment{}).Where("id = ?", id).Update("username", username).Error
}
