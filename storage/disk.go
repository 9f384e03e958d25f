package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskBucket 本地磁盘存储，由 HTTP 静态目录对外提供访问
type DiskBucket struct {
	name      string
	dir       string
	publicURL string
}

// NewDiskBucket dir 为落盘目录，publicURL 为对外访问前缀（例如 http://host/uploads/avatars）
func NewDiskBucket(name, dir, publicURL string) (*DiskBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket dir %s: %w", dir, err)
	}
	return &DiskBucket{name: name, dir: dir, publicURL: publicURL}, nil
}

func (b *DiskBucket) Name() string { return b.name }

// fullPath 以 "/" 为根先 Clean，key 里的 .. 无法跳出 dir
func (b *DiskBucket) fullPath(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	return filepath.Join(b.dir, filepath.Clean("/"+key)), nil
}

func (b *DiskBucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	p, err := b.fullPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	// 先写临时文件再 rename，避免读到半截文件
	tmp := p + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return joinURL(b.publicURL, key), nil
}

func (b *DiskBucket) Delete(ctx context.Context, key string) error {
	p, err := b.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
