package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Bucket 一个逻辑存储分区（头像 / 套图图片各一个）
type Bucket interface {
	// Put 写入对象并返回可公开访问的地址
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// NewObjectKey 随机对象名，保留原文件扩展名
func NewObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	return uuid.New().String() + ext
}

func joinURL(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(key, "/")
}
