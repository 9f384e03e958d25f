package store

import (
	"context"
	"strings"

	"github.com/cydxin/pixelheart-sdk/service"
)

// --- 套图（管理员） ---

// checkFeatured 精选最多 3 个；editingID 为正在编辑的套图，不计入
func (s *Store) checkFeatured(d service.SetDraft, editingID string) error {
	if !d.Featured {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, set := range s.sets {
		if set.Featured && set.ID != editingID {
			n++
		}
	}
	if n >= maxFeatured {
		return ErrFeaturedLimit
	}
	return nil
}

// AddSet 新建套图，成功后插到列表最前
func (s *Store) AddSet(ctx context.Context, d service.SetDraft) (service.CosplaySet, error) {
	if _, err := s.requireAdmin(); err != nil {
		return service.CosplaySet{}, err
	}
	if err := validateSetDraft(d); err != nil {
		return service.CosplaySet{}, err
	}
	if err := s.checkFeatured(d, ""); err != nil {
		return service.CosplaySet{}, err
	}
	var created service.CosplaySet
	err := s.mutate(ctx, "add set", func(ctx context.Context) (applyFunc, error) {
		set, err := s.gw.CreateSet(ctx, d)
		if err != nil {
			return nil, err
		}
		return func() {
			created = set
			s.sets = append([]service.CosplaySet{set}, s.sets...)
		}, nil
	})
	return created, err
}

// UpdateSet 编辑套图；照片按 NewPhoto / ExistingPhoto 三路同步
func (s *Store) UpdateSet(ctx context.Context, id string, d service.SetDraft) (service.CosplaySet, error) {
	if _, err := s.requireAdmin(); err != nil {
		return service.CosplaySet{}, err
	}
	if err := validateSetDraft(d); err != nil {
		return service.CosplaySet{}, err
	}
	if err := s.checkFeatured(d, id); err != nil {
		return service.CosplaySet{}, err
	}
	var updated service.CosplaySet
	err := s.mutate(ctx, "update set", func(ctx context.Context) (applyFunc, error) {
		set, err := s.gw.UpdateSet(ctx, id, d)
		if err != nil {
			return nil, err
		}
		return func() {
			updated = set
			sets := make([]service.CosplaySet, len(s.sets))
			for i, old := range s.sets {
				if old.ID == set.ID {
					old = set
				}
				sets[i] = old
			}
			s.sets = sets
		}, nil
	})
	return updated, err
}

func (s *Store) DeleteSet(ctx context.Context, id string) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	return s.mutate(ctx, "delete set", func(ctx context.Context) (applyFunc, error) {
		if err := s.gw.DeleteSet(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			s.sets = filterOut(s.sets, func(set service.CosplaySet) bool { return set.ID == id })
		}, nil
	})
}

// --- 系列（管理员） ---

func (s *Store) AddSeries(ctx context.Context, name string) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	if err := validateText("add series", "name", name); err != nil {
		return err
	}
	return s.mutate(ctx, "add series", func(ctx context.Context) (applyFunc, error) {
		created, err := s.gw.CreateSeries(ctx, name)
		if err != nil {
			return nil, err
		}
		return func() {
			s.series = append(append([]service.Series(nil), s.series...), created)
		}, nil
	})
}

func (s *Store) UpdateSeries(ctx context.Context, id, name string) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	if err := validateText("update series", "name", name); err != nil {
		return err
	}
	return s.mutate(ctx, "update series", func(ctx context.Context) (applyFunc, error) {
		if _, err := s.gw.RenameSeries(ctx, id, name); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(name)
		return func() {
			series := make([]service.Series, len(s.series))
			for i, sr := range s.series {
				if sr.ID == id {
					sr.Name = trimmed
				}
				series[i] = sr
			}
			s.series = series
		}, nil
	})
}

// DeleteSeries 只删系列本身，已引用它的套图保留系列名
func (s *Store) DeleteSeries(ctx context.Context, id string) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	return s.mutate(ctx, "delete series", func(ctx context.Context) (applyFunc, error) {
		if err := s.gw.DeleteSeries(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			s.series = filterOut(s.series, func(sr service.Series) bool { return sr.ID == id })
		}, nil
	})
}

func (s *Store) UpdateSocialLinks(ctx context.Context, links service.SocialLinks) error {
	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	return s.mutate(ctx, "update social links", func(ctx context.Context) (applyFunc, error) {
		saved, err := s.gw.UpdateSocialLinks(ctx, links)
		if err != nil {
			return nil, err
		}
		return func() { s.socials = saved }, nil
	})
}

// --- 点赞 / 收藏 / 评论（未登录时静默忽略） ---

func (s *Store) ToggleLikePhoto(ctx context.Context, setID, photoID string) error {
	u := s.signedIn()
	if u == nil {
		return nil
	}
	return s.mutate(ctx, "toggle like", func(ctx context.Context) (applyFunc, error) {
		liked, err := s.gw.ToggleLike(ctx, photoID)
		if err != nil {
			return nil, err
		}
		return func() {
			s.mapPhotos(setID, photoID, func(p service.CosplayPhoto) service.CosplayPhoto {
				likes := filterOut(p.Likes, func(id string) bool { return id == u.ID })
				if liked {
					likes = append(likes, u.ID)
				}
				p.Likes = likes
				return p
			})
		}, nil
	})
}

// ToggleSavePhoto 以服务端返回的收藏列表为准，本地计数随之加减（不低于 0）
func (s *Store) ToggleSavePhoto(ctx context.Context, photoID string) error {
	if s.signedIn() == nil {
		return nil
	}
	return s.mutate(ctx, "toggle save", func(ctx context.Context) (applyFunc, error) {
		saved, ids, err := s.gw.ToggleSave(ctx, photoID)
		if err != nil {
			return nil, err
		}
		return func() {
			if s.user == nil {
				return
			}
			was := contains(s.user.SavedPhotos, photoID)
			u := copyUser(*s.user)
			u.SavedPhotos = append([]string{}, ids...)
			s.user = &u
			s.mapPhotos("", photoID, func(p service.CosplayPhoto) service.CosplayPhoto {
				switch {
				case saved && !was:
					p.SaveCount++
				case !saved && was && p.SaveCount > 0:
					p.SaveCount--
				}
				return p
			})
		}, nil
	})
}

// AddComment 新评论插在最前，作者名取当前用户名
func (s *Store) AddComment(ctx context.Context, setID, photoID, text string) error {
	u := s.signedIn()
	if u == nil {
		return nil
	}
	if err := validateText("add comment", "text", text); err != nil {
		return err
	}
	return s.mutate(ctx, "add comment", func(ctx context.Context) (applyFunc, error) {
		c, err := s.gw.AddComment(ctx, photoID, u.Username, text)
		if err != nil {
			return nil, err
		}
		return func() {
			s.mapPhotos(setID, photoID, func(p service.CosplayPhoto) service.CosplayPhoto {
				p.Comments = append([]service.Comment{c}, p.Comments...)
				return p
			})
		}, nil
	})
}

// DeleteComment 管理员或评论作者本人
func (s *Store) DeleteComment(ctx context.Context, setID, photoID, commentID string) error {
	u := s.signedIn()
	if u == nil {
		return nil
	}
	if !u.IsAdmin && s.commentAuthor(setID, photoID, commentID) != u.ID {
		return ErrForbidden
	}
	return s.mutate(ctx, "delete comment", func(ctx context.Context) (applyFunc, error) {
		if err := s.gw.DeleteComment(ctx, commentID); err != nil {
			return nil, err
		}
		return func() {
			s.mapPhotos(setID, photoID, func(p service.CosplayPhoto) service.CosplayPhoto {
				p.Comments = filterOut(p.Comments, func(c service.Comment) bool { return c.ID == commentID })
				return p
			})
		}, nil
	})
}

func (s *Store) commentAuthor(setID, photoID, commentID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, set := range s.sets {
		if set.ID != setID {
			continue
		}
		for _, p := range set.Photos {
			if p.ID != photoID {
				continue
			}
			for _, c := range p.Comments {
				if c.ID == commentID {
					return c.UserID
				}
			}
		}
	}
	return ""
}

// --- 聊天室 ---

// SendGlobalMessage 发送后立即整页刷新聊天记录
func (s *Store) SendGlobalMessage(ctx context.Context, text string) error {
	if s.signedIn() == nil {
		return nil
	}
	if err := validateText("send message", "text", text); err != nil {
		return err
	}
	err := s.mutate(ctx, "send message", func(ctx context.Context) (applyFunc, error) {
		_, err := s.gw.SendChat(ctx, text)
		return nil, err
	})
	if err != nil {
		return err
	}
	s.RefreshChat(ctx)
	return nil
}

// DeleteGlobalMessage 管理员或发送人本人
func (s *Store) DeleteGlobalMessage(ctx context.Context, id string) error {
	u := s.signedIn()
	if u == nil {
		return nil
	}
	if !u.IsAdmin && s.chatAuthor(id) != u.ID {
		return ErrForbidden
	}
	err := s.mutate(ctx, "delete message", func(ctx context.Context) (applyFunc, error) {
		if err := s.gw.DeleteChat(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			s.chat = filterOut(s.chat, func(m service.ChatMessage) bool { return m.ID == id })
		}, nil
	})
	if err != nil {
		return err
	}
	s.RefreshChat(ctx)
	return nil
}

func (s *Store) chatAuthor(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.chat {
		if m.ID == id {
			return m.UserID
		}
	}
	return ""
}
