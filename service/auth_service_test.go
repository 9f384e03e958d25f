package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_ExtractToken_BearerFirst(t *testing.T) {
	a := NewAuthService(&Service{})

	req := &http.Request{Header: make(http.Header), URL: &url.URL{RawQuery: "token=q"}}
	req.Header.Set("Authorization", "Bearer headerToken")

	got := a.ExtractToken(req)
	if got != "headerToken" {
		t.Fatalf("expected headerToken, got %q", got)
	}
}

func TestAuthService_ExtractToken_QueryFallback(t *testing.T) {
	a := NewAuthService(&Service{})

	u, _ := url.Parse("http://example.com/path?token=queryToken")
	req := &http.Request{Header: make(http.Header), URL: u}

	got := a.ExtractToken(req)
	if got != "queryToken" {
		t.Fatalf("expected queryToken, got %q", got)
	}
}

func signUpAlice(t *testing.T, a *AuthService) (AuthSession, User) {
	t.Helper()
	sess, user, err := a.SignUp(context.Background(), SignUpReq{
		Username: "alice", Email: "Alice@Example.com", Password: "secret", Dob: "2000-01-01",
	})
	require.NoError(t, err)
	return sess, user
}

func TestSignUpCreatesProfileWithDefaultAvatar(t *testing.T) {
	s, _ := newTestService(t)
	a := NewAuthService(s)

	sess, user := signUpAlice(t, a)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "https://api.dicebear.com/7.x/pixel-art/svg?seed=alice", user.ProfilePicture)
	assert.False(t, user.IsAdmin)
	assert.Empty(t, user.SavedPhotos)

	_, _, err := a.SignUp(context.Background(), SignUpReq{Username: "other", Email: "alice@example.com", Password: "x"})
	assert.True(t, errors.Is(err, ErrEmailTaken))
	_, _, err = a.SignUp(context.Background(), SignUpReq{Username: "alice", Email: "new@example.com", Password: "x"})
	assert.True(t, errors.Is(err, ErrUsernameTaken))
}

func TestSignInByUsernameOrEmail(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := NewAuthService(s)
	_, user := signUpAlice(t, a)

	byName, err := a.SignInWithPassword(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.UserID)
	assert.Equal(t, "alice@example.com", byName.Email)

	byEmail, err := a.SignInWithPassword(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, byName.AccessToken, byEmail.AccessToken)

	_, err = a.SignInWithPassword(ctx, "nobody", "secret")
	assert.True(t, errors.Is(err, ErrUsernameNotFound))
	_, err = a.SignInWithPassword(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = a.SignInWithPassword(ctx, "ghost@example.com", "secret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestSignOutRevokesToken(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := NewAuthService(s)
	sess, _ := signUpAlice(t, a)

	uid, err := a.Authenticate(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, uid)

	require.NoError(t, a.SignOut(ctx, sess.AccessToken))
	_, err = a.ResolveSession(ctx, sess.AccessToken)
	assert.True(t, errors.Is(err, ErrNotSignedIn))
}

func TestRefreshSessionExtendsTTL(t *testing.T) {
	s, mr := newTestService(t)
	ctx := context.Background()
	a := NewAuthService(s)
	sess, _ := signUpAlice(t, a)

	mr.FastForward(6 * 24 * time.Hour)
	refreshed, err := a.RefreshSession(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, refreshed.UserID)

	mr.FastForward(6 * 24 * time.Hour)
	_, err = a.ResolveSession(ctx, sess.AccessToken)
	assert.NoError(t, err)

	mr.FastForward(2 * 24 * time.Hour)
	_, err = a.ResolveSession(ctx, sess.AccessToken)
	assert.True(t, errors.Is(err, ErrNotSignedIn))
}

type recordedEvent struct {
	event string
	sess  *AuthSession
}

type authRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *authRecorder) fn(event string, sess *AuthSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event, sess})
}

func (r *authRecorder) snapshot() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := NewAuthService(s)
	signUpAlice(t, a)

	sess := NewSession(a, "")
	defer sess.Close()
	got, err := sess.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := &authRecorder{}
	cancel := sess.OnAuthStateChange(rec.fn)

	signed, err := sess.SignIn(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, signed.AccessToken, sess.Token())

	require.NoError(t, sess.SignOut(ctx))
	assert.Empty(t, sess.Token())

	events := rec.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, cons.AuthSignedIn, events[0].event)
	assert.NotNil(t, events[0].sess)
	assert.Equal(t, cons.AuthSignedOut, events[1].event)
	assert.Nil(t, events[1].sess)

	cancel()
	cancel()
	_, err = sess.SignIn(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Len(t, rec.snapshot(), 2)
}

func TestSessionObservesRemoteSignOut(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := NewAuthService(s)
	signUpAlice(t, a)

	sess := NewSession(a, "")
	defer sess.Close()
	_, err := sess.SignIn(ctx, "alice", "secret")
	require.NoError(t, err)

	rec := &authRecorder{}
	sess.OnAuthStateChange(rec.fn)

	// 另一处执行全端注销
	require.NoError(t, a.SignOutEverywhere(ctx, sess.UserID()))

	require.Eventually(t, func() bool { return sess.Token() == "" }, 2*time.Second, 10*time.Millisecond)
	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, cons.AuthSignedOut, events[0].event)
}

func TestSessionWithStaleToken(t *testing.T) {
	s, _ := newTestService(t)
	a := NewAuthService(s)

	sess := NewSession(a, strings.Repeat("0", 64))
	defer sess.Close()
	rec := &authRecorder{}
	sess.OnAuthStateChange(rec.fn)

	got, err := sess.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, sess.Token())
	require.Len(t, rec.snapshot(), 1)
	assert.Equal(t, cons.AuthSignedOut, rec.snapshot()[0].event)
}
