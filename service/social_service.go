package service

import (
	"context"
	"strings"

	"github.com/cydxin/pixelheart-sdk/models"
)

// SocialService 站点联系方式（全局唯一一条）
type SocialService struct {
	*Service
	social *models.SocialDAO
}

func NewSocialService(s *Service) *SocialService {
	return &SocialService{Service: s, social: models.NewSocialDAO(s.DB)}
}

// GetSocialLinks 没有记录时返回空值
func (s *SocialService) GetSocialLinks(ctx context.Context) (SocialLinks, error) {
	row, err := s.social.WithDB(s.DB.WithContext(ctx)).Get()
	if err != nil {
		return SocialLinks{}, platformErr("get social links", err)
	}
	return toSocialLinks(row), nil
}

func (s *SocialService) UpdateSocialLinks(ctx context.Context, links SocialLinks) (SocialLinks, error) {
	row, err := s.social.WithDB(s.DB.WithContext(ctx)).Save(
		strings.TrimSpace(links.Instagram),
		strings.TrimSpace(links.Tiktok),
		strings.TrimSpace(links.Email),
	)
	if err != nil {
		return SocialLinks{}, platformErr("update social links", err)
	}
	return toSocialLinks(row), nil
}
