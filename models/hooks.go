package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BeforeCreate 身份 ID 为空时自动生成 UUID
func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
