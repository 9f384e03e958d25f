package service

import (
	"context"
	"strings"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/models"
)

// chatWindow 聊天室每次拉取的条数
const chatWindow = 50

// ChatService 全站聊天室
type ChatService struct {
	*Service
	chats    *models.ChatDAO
	profiles *models.ProfileDAO
}

func NewChatService(s *Service) *ChatService {
	return &ChatService{
		Service:  s,
		chats:    models.NewChatDAO(s.DB),
		profiles: models.NewProfileDAO(s.DB),
	}
}

// ListChat 最近 50 条，时间升序；发送人信息按当前 profile 关联
func (s *ChatService) ListChat(ctx context.Context) ([]ChatMessage, error) {
	db := s.DB.WithContext(ctx)
	rows, err := s.chats.WithDB(db).Latest(chatWindow)
	if err != nil {
		return nil, platformErr("list chat", err)
	}

	seen := make(map[string]bool, len(rows))
	uids := make([]string, 0, len(rows))
	for _, r := range rows {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			uids = append(uids, r.UserID)
		}
	}
	senders, err := s.profiles.WithDB(db).FindByIDs(uids)
	if err != nil {
		return nil, platformErr("list chat", err)
	}

	out := make([]ChatMessage, 0, len(rows))
	for _, r := range rows {
		var sender *models.Profile
		if p, ok := senders[r.UserID]; ok {
			sender = &p
		}
		out = append(out, toChatMessage(r, sender))
	}
	return out, nil
}

// SendChat 写入消息并广播 INSERT 事件；广播失败不影响发送结果
func (s *ChatService) SendChat(ctx context.Context, userID, text string) (ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, &PlatformError{Op: "send chat", Msg: "message text is required"}
	}
	db := s.DB.WithContext(ctx)
	profiles := s.profiles.WithDB(db)
	if err := ensureNotBanned(profiles, "send chat", userID); err != nil {
		return ChatMessage{}, err
	}

	row := models.ChatMessage{UserID: userID, Text: text}
	if err := s.chats.WithDB(db).Create(&row); err != nil {
		return ChatMessage{}, platformErr("send chat", err)
	}

	var sender *models.Profile
	if p, err := profiles.FindByID(userID); err == nil {
		sender = p
	}
	msg := toChatMessage(row, sender)

	s.publishChange(ctx, cons.TableChatMessage, cons.ChangeInsert, msg)
	return msg, nil
}

// DeleteChat 物理删除，不保留历史
func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	cid, err := parseID("delete chat", id)
	if err != nil {
		return err
	}
	if _, err := s.chats.WithDB(s.DB.WithContext(ctx)).Delete(cid); err != nil {
		return platformErr("delete chat", err)
	}
	s.publishChange(ctx, cons.TableChatMessage, cons.ChangeDelete, deletedRow{ID: id})
	return nil
}

// FindChat 供接口层做发送人校验
func (s *ChatService) FindChat(ctx context.Context, id string) (ChatMessage, error) {
	cid, err := parseID("find chat", id)
	if err != nil {
		return ChatMessage{}, err
	}
	row, err := s.chats.WithDB(s.DB.WithContext(ctx)).FindByID(cid)
	if err != nil {
		return ChatMessage{}, platformErr("find chat", err)
	}
	return toChatMessage(*row, nil), nil
}
