package service

import (
	"context"
	"io"
)

// Services 平台侧全部服务
type Services struct {
	Sets         *SetService
	Series       *SeriesService
	Social       *SocialService
	Interactions *InteractionService
	Chat         *ChatService
	Profiles     *ProfileService
	Auth         *AuthService
	Uploads      *UploadService
}

func NewServices(base *Service) *Services {
	return &Services{
		Sets:         NewSetService(base),
		Series:       NewSeriesService(base),
		Social:       NewSocialService(base),
		Interactions: NewInteractionService(base),
		Chat:         NewChatService(base),
		Profiles:     NewProfileService(base),
		Auth:         NewAuthService(base),
		Uploads:      NewUploadService(base),
	}
}

// Gateway 绑定到一个客户端会话的数据网关。
// 需要“当前用户”的操作都从 Session 取 user id，未登录返回 ErrNotSignedIn。
type Gateway struct {
	svc     *Services
	session *Session
}

func NewGateway(svc *Services, session *Session) *Gateway {
	return &Gateway{svc: svc, session: session}
}

// Session 当前会话
func (g *Gateway) Session() *Session { return g.session }

func (g *Gateway) currentUserID(op string) (string, error) {
	uid := g.session.UserID()
	if uid == "" {
		return "", &PlatformError{Op: op, Msg: ErrNotSignedIn.Error(), Err: ErrNotSignedIn}
	}
	return uid, nil
}

// --- sets / series / social ---

func (g *Gateway) ListSets(ctx context.Context) ([]CosplaySet, error) {
	return g.svc.Sets.ListSets(ctx)
}

func (g *Gateway) GetSet(ctx context.Context, id string) (CosplaySet, error) {
	return g.svc.Sets.GetSet(ctx, id)
}

func (g *Gateway) CreateSet(ctx context.Context, d SetDraft) (CosplaySet, error) {
	return g.svc.Sets.CreateSet(ctx, d)
}

func (g *Gateway) UpdateSet(ctx context.Context, id string, d SetDraft) (CosplaySet, error) {
	return g.svc.Sets.UpdateSet(ctx, id, d)
}

func (g *Gateway) DeleteSet(ctx context.Context, id string) error {
	return g.svc.Sets.DeleteSet(ctx, id)
}

func (g *Gateway) ListSeries(ctx context.Context) ([]Series, error) {
	return g.svc.Series.ListSeries(ctx)
}

func (g *Gateway) CreateSeries(ctx context.Context, name string) (Series, error) {
	return g.svc.Series.CreateSeries(ctx, name)
}

func (g *Gateway) RenameSeries(ctx context.Context, id, name string) (Series, error) {
	return g.svc.Series.RenameSeries(ctx, id, name)
}

func (g *Gateway) DeleteSeries(ctx context.Context, id string) error {
	return g.svc.Series.DeleteSeries(ctx, id)
}

func (g *Gateway) GetSocialLinks(ctx context.Context) (SocialLinks, error) {
	return g.svc.Social.GetSocialLinks(ctx)
}

func (g *Gateway) UpdateSocialLinks(ctx context.Context, links SocialLinks) (SocialLinks, error) {
	return g.svc.Social.UpdateSocialLinks(ctx, links)
}

// --- interactions ---

func (g *Gateway) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	uid, err := g.currentUserID("toggle like")
	if err != nil {
		return false, err
	}
	return g.svc.Interactions.ToggleLike(ctx, photoID, uid)
}

func (g *Gateway) ToggleSave(ctx context.Context, photoID string) (bool, []string, error) {
	uid, err := g.currentUserID("toggle save")
	if err != nil {
		return false, nil, err
	}
	return g.svc.Interactions.ToggleSave(ctx, photoID, uid)
}

func (g *Gateway) AddComment(ctx context.Context, photoID, username, text string) (Comment, error) {
	uid, err := g.currentUserID("add comment")
	if err != nil {
		return Comment{}, err
	}
	return g.svc.Interactions.AddComment(ctx, photoID, uid, username, text)
}

func (g *Gateway) DeleteComment(ctx context.Context, id string) error {
	return g.svc.Interactions.DeleteComment(ctx, id)
}

// --- chat ---

func (g *Gateway) ListChat(ctx context.Context) ([]ChatMessage, error) {
	return g.svc.Chat.ListChat(ctx)
}

func (g *Gateway) SendChat(ctx context.Context, text string) (ChatMessage, error) {
	uid, err := g.currentUserID("send chat")
	if err != nil {
		return ChatMessage{}, err
	}
	return g.svc.Chat.SendChat(ctx, uid, text)
}

func (g *Gateway) DeleteChat(ctx context.Context, id string) error {
	return g.svc.Chat.DeleteChat(ctx, id)
}

// --- users / auth ---

func (g *Gateway) ListUsers(ctx context.Context) ([]User, error) {
	return g.svc.Profiles.ListUsers(ctx)
}

// GetProfile 当前登录用户的完整资料
func (g *Gateway) GetProfile(ctx context.Context) (User, error) {
	uid, err := g.currentUserID("get profile")
	if err != nil {
		return User{}, err
	}
	return g.svc.Profiles.GetProfile(ctx, uid)
}

func (g *Gateway) UpdateProfile(ctx context.Context, upd ProfileUpdate) (User, error) {
	uid, err := g.currentUserID("update profile")
	if err != nil {
		return User{}, err
	}
	return g.svc.Profiles.UpdateProfile(ctx, uid, upd)
}

func (g *Gateway) BanUser(ctx context.Context, id string) error {
	return g.svc.Profiles.BanUser(ctx, id)
}

func (g *Gateway) UnbanUser(ctx context.Context, id string) error {
	return g.svc.Profiles.UnbanUser(ctx, id)
}

func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	return g.svc.Profiles.DeleteUser(ctx, id)
}

// SignIn 登录并返回完整用户信息
func (g *Gateway) SignIn(ctx context.Context, identifier, password string) (User, error) {
	if _, err := g.session.SignIn(ctx, identifier, password); err != nil {
		return User{}, err
	}
	return g.GetProfile(ctx)
}

func (g *Gateway) SignUp(ctx context.Context, req SignUpReq) (User, error) {
	_, user, err := g.session.SignUp(ctx, req)
	return user, err
}

func (g *Gateway) SignOut(ctx context.Context) error {
	return g.session.SignOut(ctx)
}

// --- uploads ---

func (g *Gateway) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	return g.svc.Uploads.UploadAvatar(ctx, filename, r)
}

func (g *Gateway) UploadSetImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return g.svc.Uploads.UploadSetImage(ctx, filename, r)
}
