package models

import (
	"time"
)

const (
	prefix = "px_"
)

// 表之间不声明 gorm 关联：外键约束会让 series 删除、profile 删除被数据库拒绝，
// 关联数据一律由 service 层按 id 批量加载再拼装。

// Identity 登录身份（邮箱 + 密码），与 Profile 共用同一个 ID
// 删除 Profile 不会删除 Identity
type Identity struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Email        string     `gorm:"size:100;uniqueIndex;not null"`
	Password     string     `gorm:"size:255;not null"` // bcrypt
	LastSignInAt *time.Time // 最后登录时间
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Identity) TableName() string {
	return prefix + "identity"
}

// Profile 用户资料表
type Profile struct {
	ID        string `gorm:"primaryKey;size:36"`            // 与 Identity.ID 相同
	Username  string `gorm:"size:50;uniqueIndex;not null"`  // 用户名（可用于登录）
	Email     string `gorm:"size:100;index"`                // 冗余，用户名登录时反查邮箱
	Dob       string `gorm:"size:10"`                       // 生日 YYYY-MM-DD
	AvatarURL string `gorm:"column:avatar_url;size:1000"`   // 头像
	IsAdmin   bool   `gorm:"default:false"`                 // 管理员
	IsBanned  bool   `gorm:"default:false;index"`           // 封禁
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return prefix + "profile"
}

// Series 作品系列
type Series struct {
	ID        uint64 `gorm:"primarykey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Series) TableName() string {
	return prefix + "series"
}

// CosplaySet 套图
// SeriesName 为写入时的系列名快照，系列被删除后仍可展示
type CosplaySet struct {
	ID          uint64  `gorm:"primarykey"`
	Character   string  `gorm:"size:100;not null"`
	SeriesID    *uint64 `gorm:"index"`
	SeriesName  string  `gorm:"size:100"`
	Date        string  `gorm:"size:10"`
	CoverImage  string  `gorm:"size:1000"`
	Description string  `gorm:"type:text"`
	Featured    bool    `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CosplaySet) TableName() string {
	return prefix + "cosplay_set"
}

// Photo 套图中的单张照片，归属唯一的 CosplaySet
type Photo struct {
	ID        uint64 `gorm:"primarykey"`
	SetID     uint64 `gorm:"index;not null"`
	URL       string `gorm:"size:1000;not null"`
	Caption   string `gorm:"size:500"`
	SaveCount int64  `gorm:"default:0"` // 收藏数（冗余计数，单独维护）
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Photo) TableName() string {
	return prefix + "photo"
}

// PhotoLike 点赞记录，(photo_id, user_id) 唯一
type PhotoLike struct {
	ID        uint64 `gorm:"primarykey"`
	PhotoID   uint64 `gorm:"uniqueIndex:idx_like_photo_user;not null"`
	UserID    string `gorm:"size:36;uniqueIndex:idx_like_photo_user;index;not null"`
	CreatedAt time.Time
}

func (PhotoLike) TableName() string {
	return prefix + "photo_like"
}

// SavedPhoto 收藏记录，(photo_id, user_id) 唯一
type SavedPhoto struct {
	ID        uint64 `gorm:"primarykey"`
	PhotoID   uint64 `gorm:"uniqueIndex:idx_saved_photo_user;not null"`
	UserID    string `gorm:"size:36;uniqueIndex:idx_saved_photo_user;index;not null"`
	CreatedAt time.Time
}

func (SavedPhoto) TableName() string {
	return prefix + "saved_photo"
}

// Comment 照片评论
// Username 为发表时的昵称快照，之后改名不会回写
type Comment struct {
	ID        uint64 `gorm:"primarykey"`
	PhotoID   uint64 `gorm:"index;not null"`
	UserID    string `gorm:"size:36;index;not null"`
	Username  string `gorm:"size:50"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Comment) TableName() string {
	return prefix + "comment"
}

// ChatMessage 聊天室消息，发送人展示信息读取时从 Profile 实时关联
type ChatMessage struct {
	ID        uint64 `gorm:"primarykey"`
	UserID    string `gorm:"size:36;index;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return prefix + "chat_message"
}

// SocialLink 联系方式，全表最多一行
type SocialLink struct {
	ID        uint64 `gorm:"primarykey"`
	Instagram string `gorm:"size:255"`
	Tiktok    string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	UpdatedAt time.Time
}

func (SocialLink) TableName() string {
	return prefix + "social_link"
}

// All 返回需要迁移的全部表
func All() []any {
	return []any{
		&Identity{},
		&Profile{},
		&Series{},
		&CosplaySet{},
		&Photo{},
		&PhotoLike{},
		&SavedPhoto{},
		&Comment{},
		&ChatMessage{},
		&SocialLink{},
	}
}
