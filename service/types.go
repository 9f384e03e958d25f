package service

import (
	"encoding/json"
	"strings"
	"time"
)

// --- 领域对象（对外 JSON 使用 camelCase） ---

// User 当前用户 / 用户列表条目
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Dob            string   `json:"dob"`
	IsAdmin        bool     `json:"isAdmin"`
	IsBanned       bool     `json:"isBanned"`
	SavedPhotos    []string `json:"savedPhotos"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

type CosplaySet struct {
	ID          string         `json:"id"`
	Character   string         `json:"character"`
	Series      string         `json:"series"`
	Date        string         `json:"date"`
	CoverImage  string         `json:"coverImage"`
	Photos      []CosplayPhoto `json:"photos"`
	Description string         `json:"description"`
	Featured    bool           `json:"featured"`
}

type CosplayPhoto struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Likes     []string  `json:"likes"`
	SaveCount int64     `json:"saveCount"`
	Comments  []Comment `json:"comments"`
}

type Comment struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
}

type Series struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChatMessage struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
	IsAdmin        bool      `json:"isAdmin"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

type SocialLinks struct {
	Instagram string `json:"instagram"`
	Tiktok    string `json:"tiktok"`
	Email     string `json:"email"`
}

// --- 写入参数 ---

// PhotoDraft 套图编辑时提交的一张照片：NewPhoto 或 ExistingPhoto
type PhotoDraft interface {
	photoDraft()
}

// NewPhoto 尚未保存过的照片，保存时插入新行（计数清零）
type NewPhoto struct {
	URL     string
	Caption string
}

// ExistingPhoto 已保存的照片，保存时只更新 url/caption
type ExistingPhoto struct {
	ID      string
	URL     string
	Caption string
}

func (NewPhoto) photoDraft()      {}
func (ExistingPhoto) photoDraft() {}

// SetDraft 新建 / 编辑套图的表单
type SetDraft struct {
	Character   string
	Series      string
	Date        string
	CoverImage  string
	Description string
	Featured    bool
	Photos      []PhotoDraft
}

type photoDraftJSON struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type setDraftJSON struct {
	Character   string           `json:"character"`
	Series      string           `json:"series"`
	Date        string           `json:"date"`
	CoverImage  string           `json:"coverImage"`
	Description string           `json:"description"`
	Featured    bool             `json:"featured"`
	Photos      []photoDraftJSON `json:"photos"`
}

// UnmarshalJSON 线上格式里带 id 的照片视为 ExistingPhoto，否则为 NewPhoto
func (d *SetDraft) UnmarshalJSON(b []byte) error {
	var w setDraftJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*d = SetDraft{
		Character:   w.Character,
		Series:      w.Series,
		Date:        w.Date,
		CoverImage:  w.CoverImage,
		Description: w.Description,
		Featured:    w.Featured,
		Photos:      make([]PhotoDraft, 0, len(w.Photos)),
	}
	for _, p := range w.Photos {
		if strings.TrimSpace(p.ID) == "" {
			d.Photos = append(d.Photos, NewPhoto{URL: p.URL, Caption: p.Caption})
			continue
		}
		d.Photos = append(d.Photos, ExistingPhoto{ID: p.ID, URL: p.URL, Caption: p.Caption})
	}
	return nil
}

func (d SetDraft) MarshalJSON() ([]byte, error) {
	w := setDraftJSON{
		Character:   d.Character,
		Series:      d.Series,
		Date:        d.Date,
		CoverImage:  d.CoverImage,
		Description: d.Description,
		Featured:    d.Featured,
		Photos:      make([]photoDraftJSON, 0, len(d.Photos)),
	}
	for _, p := range d.Photos {
		switch v := p.(type) {
		case NewPhoto:
			w.Photos = append(w.Photos, photoDraftJSON{URL: v.URL, Caption: v.Caption})
		case ExistingPhoto:
			w.Photos = append(w.Photos, photoDraftJSON{ID: v.ID, URL: v.URL, Caption: v.Caption})
		}
	}
	return json.Marshal(w)
}

// PlanPhotos 表单只提交 url 列表时，按 url 匹配已有照片（每张最多匹配一次），
// 匹配不上的作为新照片
func PlanPhotos(existing []CosplayPhoto, urls []string) []PhotoDraft {
	used := make(map[string]bool, len(existing))
	out := make([]PhotoDraft, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		matched := false
		for _, p := range existing {
			if p.URL == u && !used[p.ID] {
				used[p.ID] = true
				out = append(out, ExistingPhoto{ID: p.ID, URL: p.URL, Caption: p.Caption})
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, NewPhoto{URL: u})
		}
	}
	return out
}

// SignUpReq 注册
type SignUpReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Dob      string `json:"dob"`
}

// ProfileUpdate 资料修改，空字段不修改
type ProfileUpdate struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}
