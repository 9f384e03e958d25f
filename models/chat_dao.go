package models

import (
	"gorm.io/gorm"
)

// ChatDAO 封装 ChatMessage 相关的数据库操作
type ChatDAO struct {
	db *gorm.DB
}

// NewChatDAO 创建 ChatDAO 实例
func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{db: db}
}

func (dao *ChatDAO) WithDB(db *gorm.DB) *ChatDAO {
	if db == nil {
		return dao
	}
	return &ChatDAO{db: db}
}

// Create 写入消息
func (dao *ChatDAO) Create(msg *ChatMessage) error {
	return dao.db.Create(msg).Error
}

// Latest 最近 limit 条，按时间升序返回
func (dao *ChatDAO) Latest(limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []ChatMessage
	err := dao.db.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Delete 物理删除单条消息
func (dao *ChatDAO) Delete(id uint64) (int64, error) {
	res := dao.db.Where("id = ?", id).Delete(&ChatMessage{})
	return res.RowsAffected, res.Error
}

func (dao *ChatDAO) FindByID(id uint64) (*ChatMessage, error) {
	var row ChatMessage
	if err := dao.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
