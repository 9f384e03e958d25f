package models

import (
	"gorm.io/gorm"
)

// SetDAO 封装 CosplaySet / Photo 相关的数据库操作
type SetDAO struct {
	db *gorm.DB
}

func NewSetDAO(db *gorm.DB) *SetDAO {
	return &SetDAO{db: db}
}

func (dao *SetDAO) WithDB(db *gorm.DB) *SetDAO {
	if db == nil {
		return dao
	}
	return &SetDAO{db: db}
}

// List 全部套图，新的在前
func (dao *SetDAO) List() ([]CosplaySet, error) {
	var sets []CosplaySet
	err := dao.db.Order("created_at DESC, id DESC").Find(&sets).Error
	return sets, err
}

func (dao *SetDAO) FindByID(id uint64) (*CosplaySet, error) {
	var s CosplaySet
	if err := dao.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (dao *SetDAO) Create(set *CosplaySet) error {
	return dao.db.Create(set).Error
}

// UpdateFields 更新标量字段，用 map 以便 featured=false 之类的零值也能写入
func (dao *SetDAO) UpdateFields(id uint64, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := dao.db.Model(&CosplaySet{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (dao *SetDAO) Delete(id uint64) (int64, error) {
	res := dao.db.Where("id = ?", id).Delete(&CosplaySet{})
	return res.RowsAffected, res.Error
}

// CountFeatured 统计精选套图数，excludeID>0 时排除该套图
func (dao *SetDAO) CountFeatured(excludeID uint64) (int64, error) {
	var n int64
	q := dao.db.Model(&CosplaySet{}).Where("featured = ?", true)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n, err
}

// PhotosBySetIDs 按套图批量加载照片，插入顺序（id 升序）
func (dao *SetDAO) PhotosBySetIDs(setIDs []uint64) ([]Photo, error) {
	if len(setIDs) == 0 {
		return []Photo{}, nil
	}
	var photos []Photo
	err := dao.db.Where("set_id IN ?", setIDs).Order("id ASC").Find(&photos).Error
	return photos, err
}

func (dao *SetDAO) PhotoIDsBySet(setID uint64) ([]uint64, error) {
	var ids []uint64
	err := dao.db.Model(&Photo{}).Where("set_id = ?", setID).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

func (dao *SetDAO) FindPhoto(id uint64) (*Photo, error) {
	var p Photo
	if err := dao.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (dao *SetDAO) CreatePhotos(photos []Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return dao.db.Create(&photos).Error
}

// UpdatePhoto 只改 url/caption，计数和关联数据保持不变
func (dao *SetDAO) UpdatePhoto(setID, photoID uint64, url, caption string) (int64, error) {
	res := dao.db.Model(&Photo{}).
		Where("id = ? AND set_id = ?", photoID, setID).
		Updates(map[string]any{"url": url, "caption": caption})
	return res.RowsAffected, res.Error
}

// DeletePhotos 删除照片及其点赞、收藏、评论
// 调用方负责放进事务
func (dao *SetDAO) DeletePhotos(photoIDs []uint64) error {
	if len(photoIDs) == 0 {
		return nil
	}
	if err := dao.db.Where("photo_id IN ?", photoIDs).Delete(&PhotoLike{}).Error; err != nil {
		return err
	}
	if err := dao.db.Where("photo_id IN ?", photoIDs).Delete(&SavedPhoto{}).Error; err != nil {
		return err
	}
	if err := dao.db.Where("photo_id IN ?", photoIDs).Delete(&Comment{}).Error; err != nil {
		return err
	}
	return dao.db.Where("id IN ?", photoIDs).Delete(&Photo{}).Error
}
