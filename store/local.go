package store

import (
	"errors"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// LocalStore 本地键值存储（浏览器 localStorage 的对应物），只存 JSON
type LocalStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// MemoryLocalStore 进程内实现，进程退出即丢失
type MemoryLocalStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{data: map[string][]byte{}}
}

func (m *MemoryLocalStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryLocalStore) Set(key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryLocalStore) Remove(key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// localEntry 本地缓存表
type localEntry struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:json"`
	UpdatedAt time.Time
}

func (localEntry) TableName() string {
	return "px_local_storage"
}

// SQLiteLocalStore 落在单个 sqlite 文件里，重启后仍可读取
type SQLiteLocalStore struct {
	db *gorm.DB
}

// NewSQLiteLocalStore 打开（不存在则创建）path 指向的 sqlite 文件
func NewSQLiteLocalStore(path string) (*SQLiteLocalStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	return NewSQLiteLocalStoreWithDB(db)
}

// NewSQLiteLocalStoreWithDB 复用已有连接
func NewSQLiteLocalStoreWithDB(db *gorm.DB) (*SQLiteLocalStore, error) {
	if err := db.AutoMigrate(&localEntry{}); err != nil {
		return nil, err
	}
	return &SQLiteLocalStore{db: db}, nil
}

func (l *SQLiteLocalStore) Get(key string) ([]byte, bool, error) {
	var e localEntry
	err := l.db.Where("`key` = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(e.Value), true, nil
}

func (l *SQLiteLocalStore) Set(key string, value []byte) error {
	e := localEntry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (l *SQLiteLocalStore) Remove(key string) error {
	return l.db.Where("`key` = ?", key).Delete(&localEntry{}).Error
}

// Close 关闭底层连接
func (l *SQLiteLocalStore) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
