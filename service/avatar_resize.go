package service

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// AvatarConfig 头像缩放配置
type AvatarConfig struct {
	MaxSize int // 长边上限（像素），<=0 时为 256
	// JPEGQuality 重新编码 jpeg 时的质量
	JPEGQuality int
}

func (c AvatarConfig) withDefaults() AvatarConfig {
	out := c
	if out.MaxSize <= 0 {
		out.MaxSize = 256
	}
	if out.JPEGQuality <= 0 || out.JPEGQuality > 100 {
		out.JPEGQuality = 85
	}
	return out
}

// shrinkAvatar 长边超过上限时等比缩小。
// 无法解码（svg 等）或本身足够小时原样返回 ok=false。
func shrinkAvatar(data []byte, filename string, cfg AvatarConfig) (out []byte, outName, contentType string, ok bool) {
	cfg = cfg.withDefaults()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", false
	}
	b := img.Bounds()
	if b.Dx() <= cfg.MaxSize && b.Dy() <= cfg.MaxSize {
		return nil, "", "", false
	}

	// 宽高传 0 表示按比例
	var w, h uint
	if b.Dx() >= b.Dy() {
		w = uint(cfg.MaxSize)
	} else {
		h = uint(cfg.MaxSize)
	}
	small := resize.Resize(w, h, img, resize.Lanczos3)

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: cfg.JPEGQuality}); err != nil {
			return nil, "", "", false
		}
		return buf.Bytes(), base + ".jpg", "image/jpeg", true
	}
	// gif 只取首帧，统一转 png
	if err := png.Encode(&buf, small); err != nil {
		return nil, "", "", false
	}
	return buf.Bytes(), base + ".png", "image/png", true
}
