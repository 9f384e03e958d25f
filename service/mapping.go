package service

import (
	"github.com/cydxin/pixelheart-sdk/models"
)

const (
	unknownSeries   = "Unknown"
	unknownAuthor   = "Unknown"
	commentFallback = "User"
)

// seriesLabel 优先当前系列名，系列已删除则用写入时的快照
func seriesLabel(row models.CosplaySet, live map[uint64]models.Series) string {
	if row.SeriesID != nil {
		if s, ok := live[*row.SeriesID]; ok && s.Name != "" {
			return s.Name
		}
	}
	if row.SeriesName != "" {
		return row.SeriesName
	}
	return unknownSeries
}

func toCosplaySet(row models.CosplaySet, series string, photos []CosplayPhoto) CosplaySet {
	if photos == nil {
		photos = []CosplayPhoto{}
	}
	return CosplaySet{
		ID:          fmtID(row.ID),
		Character:   row.Character,
		Series:      series,
		Date:        row.Date,
		CoverImage:  row.CoverImage,
		Photos:      photos,
		Description: row.Description,
		Featured:    row.Featured,
	}
}

func toCosplayPhoto(row models.Photo, likes []string, comments []Comment) CosplayPhoto {
	if likes == nil {
		likes = []string{}
	}
	if comments == nil {
		comments = []Comment{}
	}
	return CosplayPhoto{
		ID:        fmtID(row.ID),
		URL:       row.URL,
		Caption:   row.Caption,
		Likes:     likes,
		SaveCount: row.SaveCount,
		Comments:  comments,
	}
}

// toComment 作者名取发表时的快照，历史数据为空时用占位名
func toComment(row models.Comment) Comment {
	name := row.Username
	if name == "" {
		name = commentFallback
	}
	return Comment{
		ID:       fmtID(row.ID),
		UserID:   row.UserID,
		Username: name,
		Text:     row.Text,
		Date:     row.CreatedAt,
	}
}

// toChatMessage 发送人展示信息取自当前 profile，profile 不存在时为 Unknown
func toChatMessage(row models.ChatMessage, sender *models.Profile) ChatMessage {
	m := ChatMessage{
		ID:        fmtID(row.ID),
		UserID:    row.UserID,
		Username:  unknownAuthor,
		Text:      row.Text,
		Timestamp: row.CreatedAt,
	}
	if sender != nil {
		if sender.Username != "" {
			m.Username = sender.Username
		}
		m.IsAdmin = sender.IsAdmin
		m.ProfilePicture = sender.AvatarURL
	}
	return m
}

// toUser email 由调用方传入（profile 行里的冗余邮箱可能过期）
func toUser(p models.Profile, email string, saved []uint64) User {
	ids := make([]string, 0, len(saved))
	for _, id := range saved {
		ids = append(ids, fmtID(id))
	}
	return User{
		ID:             p.ID,
		Username:       p.Username,
		Email:          email,
		Dob:            p.Dob,
		IsAdmin:        p.IsAdmin,
		IsBanned:       p.IsBanned,
		SavedPhotos:    ids,
		ProfilePicture: p.AvatarURL,
	}
}

// toRosterUser 用户列表只暴露公开字段
func toRosterUser(p models.Profile) User {
	return User{
		ID:             p.ID,
		Username:       p.Username,
		IsAdmin:        p.IsAdmin,
		IsBanned:       p.IsBanned,
		SavedPhotos:    []string{},
		ProfilePicture: p.AvatarURL,
	}
}

func toSeries(row models.Series) Series {
	return Series{ID: fmtID(row.ID), Name: row.Name}
}

func toSocialLinks(row *models.SocialLink) SocialLinks {
	if row == nil {
		return SocialLinks{}
	}
	return SocialLinks{Instagram: row.Instagram, Tiktok: row.Tiktok, Email: row.Email}
}
