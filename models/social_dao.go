package models

import (
	"errors"

	"gorm.io/gorm"
)

// SocialDAO 联系方式（单行）
type SocialDAO struct {
	db *gorm.DB
}

func NewSocialDAO(db *gorm.DB) *SocialDAO {
	return &SocialDAO{db: db}
}

func (dao *SocialDAO) WithDB(db *gorm.DB) *SocialDAO {
	if db == nil {
		return dao
	}
	return &SocialDAO{db: db}
}

// Get 没有记录时返回 nil, nil
func (dao *SocialDAO) Get() (*SocialLink, error) {
	var row SocialLink
	err := dao.db.Order("id ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save 有则更新，无则插入
func (dao *SocialDAO) Save(instagram, tiktok, email string) (*SocialLink, error) {
	var out SocialLink
	err := dao.db.Transaction(func(tx *gorm.DB) error {
		var row SocialLink
		err := tx.Order("id ASC").First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = SocialLink{Instagram: instagram, Tiktok: tiktok, Email: email}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			out = row
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&row).Updates(map[string]any{
			"instagram": instagram,
			"tiktok":    tiktok,
			"email":     email,
		}).Error; err != nil {
			return err
		}
		row.Instagram, row.Tiktok, row.Email = instagram, tiktok, email
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
