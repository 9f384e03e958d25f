package pixelheart

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*Engine, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e, _ := newTestEngine(t)
	r := gin.New()
	e.RegisterRoutes(r.Group("/api/v1"))
	return e, r
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) (int, apiResp) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHandlerAuthFlow(t *testing.T) {
	_, r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "alice", "email": "Alice@Example.com", "password": "secret", "dob": "2000-01-31",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	signed := decode[sessionResp](t, res.Data)
	assert.Equal(t, "alice@example.com", signed.User.Email)
	assert.NotEmpty(t, signed.Session.AccessToken)

	_, res = doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "secret", "dob": "2000-01-31",
	})
	assert.Equal(t, response.CodeConflict, res.Code)

	_, res = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "alice", "password": "secret"})
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	token := decode[sessionResp](t, res.Data).Session.AccessToken

	_, res = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "alice@example.com", "password": "nope"})
	assert.Equal(t, response.CodePasswordError, res.Code)

	_, res = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{"identifier": "nobody", "password": "secret"})
	assert.Equal(t, response.CodeUserNotFound, res.Code)

	_, res = doJSON(t, r, http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, response.CodeSuccess, res.Code)
	assert.Equal(t, "alice", decode[sessionResp](t, res.Data).User.Username)

	_, res = doJSON(t, r, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, response.CodeSuccess, res.Code)

	status, res = doJSON(t, r, http.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, response.CodeTokenInvalid, res.Code)
}

func TestHandlerSignUpValidation(t *testing.T) {
	_, r := newTestRouter(t)

	status, res := doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "  ", "email": "not-an-email", "password": "secret", "dob": "31/01/2000",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, response.CodeParamError, res.Code)
	assert.Contains(t, res.Msg, "email")

	// 只校验格式，任意域名都可注册
	status, res = doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "dave", "email": "Dave@Gmail.com", "password": "secret", "dob": "2000-01-31",
	})
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	assert.Equal(t, "dave@gmail.com", decode[sessionResp](t, res.Data).User.Email)
}

func TestHandlerAdminRoutesRequireAdmin(t *testing.T) {
	e, r := newTestRouter(t)
	token, _ := signUp(t, e, "bob")

	status, res := doJSON(t, r, http.MethodPost, "/series", "", map[string]string{"name": "Genshin"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, response.CodeTokenInvalid, res.Code)

	status, res = doJSON(t, r, http.MethodPost, "/series", token, map[string]string{"name": "Genshin"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, response.CodePermissionDeny, res.Code)

	status, _ = doJSON(t, r, http.MethodGet, "/users", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// 公开读接口不需要登录
	status, res = doJSON(t, r, http.MethodGet, "/sets", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.CodeSuccess, res.Code)
}

func TestHandlerSetLifecycle(t *testing.T) {
	e, r := newTestRouter(t)
	token, uid := signUp(t, e, "admin")
	makeAdmin(t, e, uid)

	draft := func(name string, featured bool) map[string]any {
		return map[string]any{
			"character":  name,
			"series":     "Genshin Impact",
			"date":       "2024-05-01",
			"coverImage": "cover.jpg",
			"featured":   featured,
			"photos":     []map[string]string{{"url": "a.jpg"}, {"url": "b.jpg"}},
		}
	}

	var created []service.CosplaySet
	for _, name := range []string{"A", "B", "C"} {
		_, res := doJSON(t, r, http.MethodPost, "/sets", token, draft(name, true))
		require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
		created = append(created, decode[service.CosplaySet](t, res.Data))
	}
	assert.Len(t, created[0].Photos, 2)

	_, res := doJSON(t, r, http.MethodPost, "/sets", token, draft("D", true))
	assert.Equal(t, response.CodeFeaturedLimit, res.Code)

	// 编辑已精选的套图不受上限影响
	upd := draft("A2", true)
	upd["photos"] = []map[string]string{{"id": created[0].Photos[0].ID, "url": "a.jpg"}, {"url": "c.jpg"}}
	_, res = doJSON(t, r, http.MethodPut, "/sets/"+created[0].ID, token, upd)
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	edited := decode[service.CosplaySet](t, res.Data)
	assert.Equal(t, "A2", edited.Character)
	require.Len(t, edited.Photos, 2)
	assert.Equal(t, created[0].Photos[0].ID, edited.Photos[0].ID)

	_, res = doJSON(t, r, http.MethodGet, "/series", "", nil)
	series := decode[[]service.Series](t, res.Data)
	require.Len(t, series, 1)
	assert.Equal(t, "Genshin Impact", series[0].Name)

	_, res = doJSON(t, r, http.MethodDelete, "/sets/"+created[1].ID, token, nil)
	require.Equal(t, response.CodeSuccess, res.Code)
	_, res = doJSON(t, r, http.MethodGet, "/sets/"+created[1].ID, "", nil)
	assert.Equal(t, response.CodeNotFound, res.Code)

	_, res = doJSON(t, r, http.MethodPost, "/sets", token, map[string]any{"character": "", "series": "X"})
	assert.Equal(t, response.CodeParamError, res.Code)
}

func TestHandlerCommentDeletePermissions(t *testing.T) {
	e, r := newTestRouter(t)
	set := seedSet(t, e, false)
	pid := set.Photos[0].ID
	aliceToken, _ := signUp(t, e, "alice")
	bobToken, _ := signUp(t, e, "bob")
	adminToken, adminID := signUp(t, e, "admin")
	makeAdmin(t, e, adminID)

	_, res := doJSON(t, r, http.MethodPost, "/photos/"+pid+"/comments", aliceToken, map[string]string{"text": "cute"})
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	c := decode[service.Comment](t, res.Data)
	assert.Equal(t, "alice", c.Username)

	_, res = doJSON(t, r, http.MethodDelete, "/comments/"+c.ID, bobToken, nil)
	assert.Equal(t, response.CodePermissionDeny, res.Code)

	_, res = doJSON(t, r, http.MethodDelete, "/comments/"+c.ID, adminToken, nil)
	assert.Equal(t, response.CodeSuccess, res.Code)

	// 已删除的再删一次视为成功
	_, res = doJSON(t, r, http.MethodDelete, "/comments/"+c.ID, aliceToken, nil)
	assert.Equal(t, response.CodeSuccess, res.Code)

	_, res = doJSON(t, r, http.MethodPost, "/photos/"+pid+"/like", bobToken, nil)
	require.Equal(t, response.CodeSuccess, res.Code)
	assert.True(t, decode[likeResp](t, res.Data).Liked)
	_, res = doJSON(t, r, http.MethodPost, "/photos/"+pid+"/like", bobToken, nil)
	assert.False(t, decode[likeResp](t, res.Data).Liked)

	_, res = doJSON(t, r, http.MethodPost, "/photos/"+pid+"/save", bobToken, nil)
	saved := decode[saveResp](t, res.Data)
	assert.True(t, saved.Saved)
	assert.Equal(t, []string{pid}, saved.SavedPhotos)
}

func TestHandlerChatAndBan(t *testing.T) {
	e, r := newTestRouter(t)
	aliceToken, aliceID := signUp(t, e, "alice")
	bobToken, _ := signUp(t, e, "bob")
	adminToken, adminID := signUp(t, e, "admin")
	makeAdmin(t, e, adminID)

	_, res := doJSON(t, r, http.MethodPost, "/chat", aliceToken, map[string]string{"text": "hello"})
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	msg := decode[service.ChatMessage](t, res.Data)
	assert.Equal(t, "alice", msg.Username)

	_, res = doJSON(t, r, http.MethodGet, "/chat", "", nil)
	require.Len(t, decode[[]service.ChatMessage](t, res.Data), 1)

	_, res = doJSON(t, r, http.MethodDelete, "/chat/"+msg.ID, bobToken, nil)
	assert.Equal(t, response.CodePermissionDeny, res.Code)
	_, res = doJSON(t, r, http.MethodDelete, "/chat/"+msg.ID, aliceToken, nil)
	assert.Equal(t, response.CodeSuccess, res.Code)

	_, res = doJSON(t, r, http.MethodPost, "/users/"+aliceID+"/ban", adminToken, nil)
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)

	_, res = doJSON(t, r, http.MethodPost, "/chat", aliceToken, map[string]string{"text": "again"})
	assert.Equal(t, response.CodeUserBanned, res.Code)

	_, res = doJSON(t, r, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, response.CodeSuccess, res.Code)
	users := decode[[]service.User](t, res.Data)
	assert.Len(t, users, 3)

	_, res = doJSON(t, r, http.MethodPost, "/users/"+aliceID+"/unban", adminToken, nil)
	require.Equal(t, response.CodeSuccess, res.Code)
	_, res = doJSON(t, r, http.MethodPost, "/chat", aliceToken, map[string]string{"text": "back"})
	assert.Equal(t, response.CodeSuccess, res.Code)
}

func TestHandlerDeleteAccount(t *testing.T) {
	e, r := newTestRouter(t)
	token, _ := signUp(t, e, "carol")
	adminToken, adminID := signUp(t, e, "admin")
	makeAdmin(t, e, adminID)

	_, res := doJSON(t, r, http.MethodDelete, "/profile", token, map[string]string{"email": "someone@example.com"})
	assert.Equal(t, response.CodeParamError, res.Code)

	_, res = doJSON(t, r, http.MethodDelete, "/profile", adminToken, map[string]string{"email": "admin@example.com"})
	assert.NotEqual(t, response.CodeSuccess, res.Code)

	_, res = doJSON(t, r, http.MethodDelete, "/profile", token, map[string]string{"email": "CAROL@example.com"})
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)

	status, _ := doJSON(t, r, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandlerUploadSetImage(t *testing.T) {
	e, r := newTestRouter(t)
	token, uid := signUp(t, e, "admin")
	makeAdmin(t, e, uid)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/set-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, response.CodeSuccess, res.Code, res.Msg)
	out := decode[map[string]string](t, res.Data)
	assert.True(t, strings.HasPrefix(out["url"], "http://cdn.test/images/"), out["url"])

	// 缺少文件
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/set-image", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
