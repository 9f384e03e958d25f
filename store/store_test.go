package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/cydxin/pixelheart-sdk/message"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoSet(id string, featured bool, photoIDs ...string) service.CosplaySet {
	set := service.CosplaySet{ID: id, Character: "c" + id, Series: "s", CoverImage: "cover.jpg", Featured: featured, Photos: []service.CosplayPhoto{}}
	for _, pid := range photoIDs {
		set.Photos = append(set.Photos, service.CosplayPhoto{ID: pid, URL: pid + ".jpg", Likes: []string{}, Comments: []service.Comment{}})
	}
	return set
}

func signedInStore(t *testing.T, g *fakeGateway, admin bool) *Store {
	t.Helper()
	g.me = &service.User{ID: "u1", Username: "alice", Email: "alice@example.com", IsAdmin: admin, SavedPhotos: []string{}}
	s := newTestStore(g, nil, nil)
	t.Cleanup(func() { _ = s.Close() })
	s.Init(context.Background())
	require.NoError(t, s.Login(context.Background(), "alice", "secret"))
	return s
}

func TestInitReplacesCachedSlices(t *testing.T) {
	local := NewMemoryLocalStore()
	stale, _ := json.Marshal([]service.CosplaySet{photoSet("old", false)})
	require.NoError(t, local.Set(KeySets, stale))

	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false), photoSet("2", true)}
	g.series = []service.Series{{ID: "1", Name: "Genshin Impact"}}
	g.socials = service.SocialLinks{Instagram: "@px"}

	s := newTestStore(g, nil, nil, WithLocalStore(local))
	assert.True(t, s.IsLoading())
	assert.False(t, s.IsInitialized())

	s.Init(context.Background())
	require.NoError(t, s.Close())

	assert.True(t, s.IsInitialized())
	assert.False(t, s.IsLoading())
	require.Len(t, s.Sets(), 2)
	assert.Equal(t, "1", s.Sets()[0].ID)
	assert.Equal(t, "@px", s.SocialLinks().Instagram)

	raw, ok, err := local.Get(KeySets)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(raw), `"old"`)
}

func TestInitKeepsCacheWhenOffline(t *testing.T) {
	local := NewMemoryLocalStore()
	cached, _ := json.Marshal([]service.CosplaySet{photoSet("cached", false)})
	require.NoError(t, local.Set(KeySets, cached))
	require.NoError(t, local.Set(KeySeries, []byte("{not json")))

	g := newFakeGateway()
	g.failOn("ListSets", errPlatform)
	s := newTestStore(g, newFakeSessions(), nil, WithLocalStore(local))
	defer s.Close()

	s.Init(context.Background())

	assert.True(t, s.IsInitialized())
	require.Len(t, s.Sets(), 1)
	assert.Equal(t, "cached", s.Sets()[0].ID)
	assert.Empty(t, s.Series())
	assert.Equal(t, loadDataFailed, s.LastError())

	s.ClearError()
	assert.Empty(t, s.LastError())
}

func TestInitRestoresSessionAndFollowsAuthChanges(t *testing.T) {
	g := newFakeGateway()
	g.me = &service.User{ID: "u1", Username: "alice"}
	g.chat = []service.ChatMessage{{ID: "m1", Text: "hi"}}
	sessions := newFakeSessions()
	sessions.current = &service.AuthSession{UserID: "u1", AccessToken: "t"}

	s := newTestStore(g, sessions, nil)
	s.Init(context.Background())
	s.Init(context.Background())

	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Len(t, s.Chat(), 1)
	assert.Equal(t, 1, sessions.listenerCount())

	// 别处登出
	sessions.emit(cons.AuthSignedOut, nil)
	_, ok = s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.Chat())

	// 重新登录后以远端资料为准
	g.me = &service.User{ID: "u1", Username: "alice2"}
	sessions.emit(cons.AuthSignedIn, &service.AuthSession{UserID: "u1"})
	u, ok = s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice2", u.Username)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, sessions.listenerCount())
	assert.Equal(t, 1, sessions.closeCount())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, sessions.closeCount())
}

func TestLogoutClearsUserAndChat(t *testing.T) {
	for _, signOutErr := range []error{nil, errPlatform} {
		g := newFakeGateway()
		g.chat = []service.ChatMessage{{ID: "m1"}}
		s := signedInStore(t, g, false)
		require.Len(t, s.Chat(), 1)

		g.failOn("SignOut", signOutErr)
		err := s.Logout(context.Background())
		assert.ErrorIs(t, err, signOutErr)

		_, ok := s.CurrentUser()
		assert.False(t, ok)
		assert.Empty(t, s.Chat())
	}
}

func TestFeaturedCap(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", true), photoSet("2", true), photoSet("3", false)}
	s := signedInStore(t, g, true)

	// 第 3 个可以
	_, err := s.UpdateSet(ctx, "3", service.SetDraft{Character: "c", Series: "s", CoverImage: "x.jpg", Featured: true})
	require.NoError(t, err)

	calls := g.count("CreateSet")
	_, err = s.AddSet(ctx, service.SetDraft{Character: "c", Series: "s", CoverImage: "x.jpg", Featured: true})
	assert.ErrorIs(t, err, ErrFeaturedLimit)
	assert.Equal(t, calls, g.count("CreateSet"))

	// 编辑已精选的套图不受限制
	_, err = s.UpdateSet(ctx, "1", service.SetDraft{Character: "c1", Series: "s", CoverImage: "x.jpg", Featured: true})
	require.NoError(t, err)

	_, err = s.AddSet(ctx, service.SetDraft{Character: "c", Series: "s", CoverImage: "x.jpg"})
	require.NoError(t, err)
	assert.Len(t, s.Sets(), 4)
}

func TestValidationHappensBeforeGateway(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	s := signedInStore(t, g, true)
	before := g.total()

	_, err := s.AddSet(ctx, service.SetDraft{Character: "Lumine", Series: "  "})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	fields := ve.Fields()
	assert.Contains(t, fields, "series")
	assert.Contains(t, fields, "coverImage")
	assert.NotContains(t, fields, "character")

	err = s.Signup(ctx, service.SignUpReq{Username: "bob", Email: "not-an-email", Password: "x", Dob: "2000-01-01"})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields(), "email")

	err = s.Signup(ctx, service.SignUpReq{Username: "bob", Email: "bob@example.com", Password: "x", Dob: "01/02/2000"})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields(), "dob")

	err = s.Login(ctx, " ", "")
	require.True(t, errors.As(err, &ve))

	require.Error(t, s.SendGlobalMessage(ctx, "   "))
	require.Error(t, s.AddSeries(ctx, ""))

	assert.Equal(t, before, g.total())
	assert.Empty(t, s.LastError())
}

func TestAdminOnlyOperations(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false)}
	s := signedInStore(t, g, false)
	before := g.total()

	assert.ErrorIs(t, s.DeleteSet(ctx, "1"), ErrForbidden)
	assert.ErrorIs(t, s.AddSeries(ctx, "x"), ErrForbidden)
	assert.ErrorIs(t, s.UpdateSocialLinks(ctx, service.SocialLinks{}), ErrForbidden)
	assert.ErrorIs(t, s.BanUser(ctx, "u2"), ErrForbidden)
	assert.ErrorIs(t, s.DeleteUserAdmin(ctx, "u2"), ErrForbidden)
	s.RefreshUsers(ctx)

	assert.Equal(t, before, g.total())
	assert.Len(t, s.Sets(), 1)
}

func TestFailedMutationLeavesCache(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false)}
	g.series = []service.Series{{ID: "9", Name: "Genshin Impact"}}
	s := signedInStore(t, g, true)

	g.failOn("DeleteSet", errPlatform)
	err := s.DeleteSet(ctx, "1")
	assert.ErrorIs(t, err, errPlatform)
	assert.Len(t, s.Sets(), 1)
	assert.Equal(t, errPlatform.Error(), s.LastError())

	require.NoError(t, s.UpdateSeries(ctx, "9", "  Honkai  "))
	assert.Equal(t, "Honkai", s.Series()[0].Name)
	require.NoError(t, s.DeleteSeries(ctx, "9"))
	assert.Empty(t, s.Series())
	// 删除系列不影响套图
	assert.Equal(t, "s", s.Sets()[0].Series)
}

func TestMutationTimeout(t *testing.T) {
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false)}
	g.me = &service.User{ID: "u1", IsAdmin: true}
	s := newTestStore(g, nil, nil, WithMutationTimeout(20*time.Millisecond))
	defer s.Close()
	s.Init(context.Background())
	require.NoError(t, s.Login(context.Background(), "admin", "pw"))

	g.mu.Lock()
	g.delay = 500 * time.Millisecond
	g.mu.Unlock()

	err := s.DeleteSet(context.Background(), "1")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Len(t, s.Sets(), 1)
	assert.Equal(t, ErrTimeout.Error(), s.LastError())
}

func TestToggleLikeAndSave(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false, "p1", "p2")}
	s := signedInStore(t, g, false)

	require.NoError(t, s.ToggleLikePhoto(ctx, "1", "p1"))
	set, ok := s.SetByID("1")
	require.True(t, ok)
	assert.Equal(t, []string{"u1"}, set.Photos[0].Likes)
	assert.Empty(t, set.Photos[1].Likes)

	require.NoError(t, s.ToggleLikePhoto(ctx, "1", "p1"))
	set, _ = s.SetByID("1")
	assert.Empty(t, set.Photos[0].Likes)

	require.NoError(t, s.ToggleSavePhoto(ctx, "p2"))
	set, _ = s.SetByID("1")
	assert.Equal(t, int64(1), set.Photos[1].SaveCount)
	u, _ := s.CurrentUser()
	assert.Equal(t, []string{"p2"}, u.SavedPhotos)

	require.NoError(t, s.ToggleSavePhoto(ctx, "p2"))
	set, _ = s.SetByID("1")
	assert.Equal(t, int64(0), set.Photos[1].SaveCount)
	u, _ = s.CurrentUser()
	assert.Empty(t, u.SavedPhotos)

	_, ok = s.SetByID("missing")
	assert.False(t, ok)
}

func TestSignedOutInteractionsAreNoops(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.sets = []service.CosplaySet{photoSet("1", false, "p1")}
	s := newTestStore(g, nil, nil)
	defer s.Close()
	s.Init(ctx)
	before := g.total()

	assert.NoError(t, s.ToggleLikePhoto(ctx, "1", "p1"))
	assert.NoError(t, s.ToggleSavePhoto(ctx, "p1"))
	assert.NoError(t, s.AddComment(ctx, "1", "p1", "nice!"))
	assert.NoError(t, s.SendGlobalMessage(ctx, "hi"))
	assert.NoError(t, s.DeleteGlobalMessage(ctx, "m1"))
	assert.ErrorIs(t, s.UpdateUser(ctx, service.ProfileUpdate{Username: "x"}), ErrNotSignedIn)
	assert.Equal(t, before, g.total())
}

func TestCommentsPrependAndDelete(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	set := photoSet("1", false, "p1")
	set.Photos[0].Comments = []service.Comment{{ID: "c0", UserID: "someone", Text: "first"}}
	g.sets = []service.CosplaySet{set}
	s := signedInStore(t, g, false)

	require.NoError(t, s.AddComment(ctx, "1", "p1", "nice!"))
	got, _ := s.SetByID("1")
	comments := got.Photos[0].Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "nice!", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Username)
	assert.Equal(t, "u1", comments[0].UserID)

	// 别人的评论不能删
	assert.ErrorIs(t, s.DeleteComment(ctx, "1", "p1", "c0"), ErrForbidden)

	require.NoError(t, s.DeleteComment(ctx, "1", "p1", comments[0].ID))
	got, _ = s.SetByID("1")
	require.Len(t, got.Photos[0].Comments, 1)
	assert.Equal(t, "c0", got.Photos[0].Comments[0].ID)
}

func TestChatSendRefreshesAndRealtimeRefetches(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.me = &service.User{ID: "u1", Username: "alice"}
	feed := newFakeFeed()
	s := newTestStore(g, nil, feed)
	s.Init(ctx)
	require.NoError(t, s.Login(ctx, "alice", "pw"))
	assert.Equal(t, []string{cons.TableChatMessage + ":" + cons.ChangeInsert}, feed.topics)

	require.NoError(t, s.SendGlobalMessage(ctx, "hello"))
	require.Len(t, s.Chat(), 1)

	// 另一个客户端发了一条
	g.mu.Lock()
	g.chat = append(g.chat, service.ChatMessage{ID: "other", UserID: "u2", Text: "yo"})
	g.mu.Unlock()
	listBefore := g.count("ListChat")
	feed.push(message.ChangeEvent{Table: cons.TableChatMessage, Type: cons.ChangeInsert})
	assert.Equal(t, listBefore+1, g.count("ListChat"))
	require.Len(t, s.Chat(), 2)

	assert.ErrorIs(t, s.DeleteGlobalMessage(ctx, "other"), ErrForbidden)
	mine := s.Chat()[0].ID
	require.NoError(t, s.DeleteGlobalMessage(ctx, mine))
	require.Len(t, s.Chat(), 1)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, feed.active())
	assert.Equal(t, StateUnsubscribed, s.listener.State())
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	g := newFakeGateway()
	admin := signedInStore(t, g, true)
	assert.ErrorIs(t, admin.DeleteAccount(ctx, "alice@example.com"), ErrAdminAccount)

	g = newFakeGateway()
	s := signedInStore(t, g, false)
	assert.ErrorIs(t, s.DeleteAccount(ctx, "bob@example.com"), ErrEmailMismatch)
	assert.Equal(t, 0, g.count("DeleteUser"))

	require.NoError(t, s.DeleteAccount(ctx, " ALICE@example.com "))
	assert.Equal(t, 1, g.count("DeleteUser"))
	assert.Equal(t, 1, g.count("SignOut"))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestUserAdministration(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	g.users = []service.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}
	s := signedInStore(t, g, true)

	s.RefreshUsers(ctx)
	require.Len(t, s.Users(), 3)

	require.NoError(t, s.BanUser(ctx, "u2"))
	assert.True(t, s.Users()[1].IsBanned)
	require.NoError(t, s.UnbanUser(ctx, "u2"))
	assert.False(t, s.Users()[1].IsBanned)

	require.NoError(t, s.DeleteUserAdmin(ctx, "u3"))
	assert.Len(t, s.Users(), 2)
}

func TestProfileAndUploads(t *testing.T) {
	ctx := context.Background()
	g := newFakeGateway()
	s := signedInStore(t, g, false)

	url, err := s.UploadAvatar(ctx, "me.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, s.UpdateUser(ctx, service.ProfileUpdate{ProfilePicture: url}))
	u, _ := s.CurrentUser()
	assert.Equal(t, "https://cdn.example.com/avatars/me.png", u.ProfilePicture)
	assert.Equal(t, "alice", u.Username)

	g.failOn("UploadSetImage", errPlatform)
	_, err = s.UploadSetImage(ctx, "a.jpg", strings.NewReader("jpg"))
	assert.ErrorIs(t, err, errPlatform)
}

func TestOnChangeNotifies(t *testing.T) {
	g := newFakeGateway()
	s := newTestStore(g, nil, nil)
	defer s.Close()

	n := 0
	cancel := s.OnChange(func() { n++ })
	s.Init(context.Background())
	assert.Greater(t, n, 0)

	cancel()
	seen := n
	s.ClearError()
	assert.Equal(t, seen, n)
}

func TestUserMirroredToLocalStore(t *testing.T) {
	local := NewMemoryLocalStore()
	g := newFakeGateway()
	g.me = &service.User{ID: "u1", Username: "alice"}
	s := newTestStore(g, nil, nil, WithLocalStore(local))
	s.Init(context.Background())
	require.NoError(t, s.Login(context.Background(), "alice", "pw"))
	s.mirror.Flush()

	raw, ok, err := local.Get(KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"username":"alice"`)

	require.NoError(t, s.Logout(context.Background()))
	require.NoError(t, s.Close())
	_, ok, _ = local.Get(KeyUser)
	assert.False(t, ok)
}

func TestSignupEmailFormatOnly(t *testing.T) {
	ctx := context.Background()
	for _, email := range []string{"bob@gmail.com", "Bob@Example.COM", "bob@pixelheart.invalid"} {
		g := newFakeGateway()
		s := newTestStore(g, nil, nil)
		require.NoError(t, s.Signup(ctx, service.SignUpReq{Username: "bob", Email: email, Password: "secret", Dob: "2000-01-01"}), email)
		assert.Equal(t, 1, g.count("SignUp"), email)
		require.NoError(t, s.Close())
	}
}

func TestConcurrentLoginLogoutMirrorsFinalState(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		local := NewMemoryLocalStore()
		g := newFakeGateway()
		g.me = &service.User{ID: "u1", Username: "alice"}
		s := newTestStore(g, nil, nil, WithLocalStore(local))
		s.Init(ctx)

		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = s.Login(ctx, "alice", "pw")
			}()
			go func() {
				defer wg.Done()
				_ = s.Logout(ctx)
			}()
		}
		wg.Wait()
		s.mirror.Flush()

		_, signedIn := s.CurrentUser()
		_, cached, err := local.Get(KeyUser)
		require.NoError(t, err)
		assert.Equal(t, signedIn, cached, "round %d", i)
		require.NoError(t, s.Close())
	}
}
