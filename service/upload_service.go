package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/storage"
)

// maxUploadBytes 单文件上限
const maxUploadBytes = 20 << 20

// UploadService 头像 / 套图图片上传，两个分区互相独立
type UploadService struct {
	*Service
	Avatar AvatarConfig
}

func NewUploadService(s *Service) *UploadService {
	return &UploadService{Service: s}
}

// UploadAvatar 大图先缩到 256px 再上传，返回公开地址
func (s *UploadService) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := readLimited(r)
	if err != nil {
		return "", platformErr("upload avatar", err)
	}
	contentType := http.DetectContentType(data)
	if small, name, ct, ok := shrinkAvatar(data, filename, s.Avatar); ok {
		data, filename, contentType = small, name, ct
	}
	return s.put(ctx, "upload avatar", cons.BucketAvatars, filename, data, contentType)
}

// UploadSetImage 套图图片原样上传
func (s *UploadService) UploadSetImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := readLimited(r)
	if err != nil {
		return "", platformErr("upload set image", err)
	}
	return s.put(ctx, "upload set image", cons.BucketCosplayImages, filename, data, http.DetectContentType(data))
}

func (s *UploadService) put(ctx context.Context, op, area, filename string, data []byte, contentType string) (string, error) {
	b, ok := s.Buckets[area]
	if !ok || b == nil {
		return "", &PlatformError{Op: op, Msg: fmt.Sprintf("storage area %q is not configured", area)}
	}
	key := storage.NewObjectKey(filename)
	url, err := b.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", platformErr(op, err)
	}
	s.Log.Debug().Str("area", area).Str("key", key).Int("bytes", len(data)).Msg("object stored")
	return url, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return data, nil
}
