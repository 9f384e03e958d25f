package models

import (
	"gorm.io/gorm"
)

// SeriesDAO 作品系列
type SeriesDAO struct {
	db *gorm.DB
}

func NewSeriesDAO(db *gorm.DB) *SeriesDAO {
	return &SeriesDAO{db: db}
}

func (dao *SeriesDAO) WithDB(db *gorm.DB) *SeriesDAO {
	if db == nil {
		return dao
	}
	return &SeriesDAO{db: db}
}

func (dao *SeriesDAO) List() ([]Series, error) {
	var rows []Series
	err := dao.db.Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindByName 精确匹配（区分大小写由数据库排序规则决定，上层再做一次比较）
func (dao *SeriesDAO) FindByName(name string) (*Series, error) {
	var s Series
	if err := dao.db.Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (dao *SeriesDAO) FindByIDs(ids []uint64) (map[uint64]Series, error) {
	out := make(map[uint64]Series, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Series
	if err := dao.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

func (dao *SeriesDAO) Create(s *Series) error {
	return dao.db.Create(s).Error
}

func (dao *SeriesDAO) Exists(id uint64) (bool, error) {
	var n int64
	err := dao.db.Model(&Series{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Rename MySQL 下同名改名 RowsAffected 为 0，需配合 Exists 判断
func (dao *SeriesDAO) Rename(id uint64, name string) (int64, error) {
	res := dao.db.Model(&Series{}).Where("id = ?", id).Update("name", name)
	return res.RowsAffected, res.Error
}

// Delete 只删系列行，引用它的套图保留 series_name 快照
func (dao *SeriesDAO) Delete(id uint64) (int64, error) {
	res := dao.db.Where("id = ?", id).Delete(&Series{})
	return res.RowsAffected, res.Error
}
