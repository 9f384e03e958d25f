package pixelheart

import (
	"net/http"
	"strings"

	"github.com/cydxin/pixelheart-sdk/middleware"
	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
)

// sessionResp 登录态 + 当前用户
type sessionResp struct {
	Session service.AuthSession `json:"session"`
	User    service.User        `json:"user"`
}

// -------------------- 登录注册 --------------------

// GinHandleSignUp 注册
// @Summary 注册
// @Description 注册并直接登录，默认头像为 dicebear 像素头像
// @Tags 登录
// @Accept json
// @Produce json
// @Param req body signUpReq true "注册信息"
// @Success 200 {object} response.Response{data=sessionResp} "注册成功"
// @Failure 400 {object} response.Response "参数错误"
// @Router /auth/signup [post]
func (e *Engine) GinHandleSignUp(ctx *gin.Context) {
	var req signUpReq
	if !bindJSON(ctx, &req) {
		return
	}
	sess, user, err := e.Services.Auth.SignUp(ctx.Request.Context(), service.SignUpReq{
		Username: strings.TrimSpace(req.Username),
		Email:    req.Email,
		Password: req.Password,
		Dob:      req.Dob,
	})
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(sessionResp{Session: sess, User: user}))
}

// GinHandleLogin 登录
// @Summary 登录
// @Description identifier 含 @ 时按邮箱登录，否则按用户名反查邮箱
// @Tags 登录
// @Accept json
// @Produce json
// @Param req body loginReq true "登录信息"
// @Success 200 {object} response.Response{data=sessionResp} "登录成功"
// @Failure 400 {object} response.Response "参数错误"
// @Router /auth/login [post]
func (e *Engine) GinHandleLogin(ctx *gin.Context) {
	var req loginReq
	if !bindJSON(ctx, &req) {
		return
	}
	c := ctx.Request.Context()
	sess, err := e.Services.Auth.SignInWithPassword(c, strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	user, err := e.Services.Profiles.GetProfile(c, sess.UserID)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(sessionResp{Session: sess, User: user}))
}

// GinHandleLogout 注销当前 token
// @Summary 登出
// @Tags 登录
// @Produce json
// @Success 200 {object} response.Response "已登出"
// @Security BearerAuth
// @Router /auth/logout [post]
func (e *Engine) GinHandleLogout(ctx *gin.Context) {
	if err := e.Services.Auth.SignOut(ctx.Request.Context(), middleware.Token(ctx)); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleLogoutAll 注销当前用户在所有设备上的 token
// @Summary 全端登出
// @Tags 登录
// @Produce json
// @Success 200 {object} response.Response "已登出"
// @Security BearerAuth
// @Router /auth/logout-all [post]
func (e *Engine) GinHandleLogoutAll(ctx *gin.Context) {
	if err := e.Services.Auth.SignOutEverywhere(ctx.Request.Context(), middleware.UserID(ctx)); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleSession 当前登录态
// @Summary 当前登录态
// @Tags 登录
// @Produce json
// @Success 200 {object} response.Response{data=sessionResp}
// @Failure 401 {object} response.Response "未登录"
// @Security BearerAuth
// @Router /auth/session [get]
func (e *Engine) GinHandleSession(ctx *gin.Context) {
	c := ctx.Request.Context()
	sess, err := e.Services.Auth.ResolveSession(c, middleware.Token(ctx))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	user, err := e.Services.Profiles.GetProfile(c, sess.UserID)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(sessionResp{Session: sess, User: user}))
}

// GinHandleRefresh 续期
// @Summary 续期 token
// @Tags 登录
// @Produce json
// @Success 200 {object} response.Response{data=service.AuthSession}
// @Security BearerAuth
// @Router /auth/refresh [post]
func (e *Engine) GinHandleRefresh(ctx *gin.Context) {
	sess, err := e.Services.Auth.RefreshSession(ctx.Request.Context(), middleware.Token(ctx))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(sess))
}

// -------------------- 个人资料 --------------------

// GinHandleGetProfile 当前用户资料（含收藏列表）
// @Summary 个人资料
// @Tags 个人资料
// @Produce json
// @Success 200 {object} response.Response{data=service.User}
// @Security BearerAuth
// @Router /profile [get]
func (e *Engine) GinHandleGetProfile(ctx *gin.Context) {
	user, err := e.Services.Profiles.GetProfile(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(user))
}

// GinHandleUpdateProfile 修改用户名 / 头像地址，空字段不修改
// @Summary 修改资料
// @Tags 个人资料
// @Accept json
// @Produce json
// @Param req body service.ProfileUpdate true "修改内容"
// @Success 200 {object} response.Response{data=service.User}
// @Security BearerAuth
// @Router /profile [put]
func (e *Engine) GinHandleUpdateProfile(ctx *gin.Context) {
	var req service.ProfileUpdate
	if !bindJSON(ctx, &req) {
		return
	}
	user, err := e.Services.Profiles.UpdateProfile(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(user))
}

// GinHandleDeleteAccount 自助注销
// @Summary 注销账号
// @Description 需提交当前账号邮箱确认；管理员账号不能注销
// @Tags 个人资料
// @Accept json
// @Produce json
// @Param req body deleteAccountReq true "确认邮箱"
// @Success 200 {object} response.Response "已注销"
// @Security BearerAuth
// @Router /profile [delete]
func (e *Engine) GinHandleDeleteAccount(ctx *gin.Context) {
	var req deleteAccountReq
	if !bindJSON(ctx, &req) {
		return
	}
	c := ctx.Request.Context()
	uid := middleware.UserID(ctx)
	user, err := e.Services.Profiles.GetProfile(c, uid)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	if user.IsAdmin {
		e.fail(ctx, errAdminAccount)
		return
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), user.Email) {
		e.fail(ctx, errEmailMismatch)
		return
	}
	if err := e.Services.Profiles.DeleteUser(c, uid); err != nil {
		e.fail(ctx, err)
		return
	}
	if err := e.Services.Auth.SignOut(c, middleware.Token(ctx)); err != nil {
		e.log.Warn().Err(err).Str("user_id", uid).Msg("sign out after account deletion failed")
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleUploadAvatar 上传头像并写入资料
// @Summary 上传头像
// @Description multipart 字段 file；大图缩到 256px
// @Tags 个人资料
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "头像"
// @Success 200 {object} response.Response{data=service.User}
// @Security BearerAuth
// @Router /profile/avatar [post]
func (e *Engine) GinHandleUploadAvatar(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, err.Error()))
		return
	}
	f, err := fh.Open()
	if err != nil {
		e.fail(ctx, err)
		return
	}
	defer f.Close()

	c := ctx.Request.Context()
	url, err := e.Services.Uploads.UploadAvatar(c, fh.Filename, f)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	user, err := e.Services.Profiles.UpdateProfile(c, middleware.UserID(ctx), service.ProfileUpdate{ProfilePicture: url})
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(user))
}

// -------------------- 用户管理（管理员） --------------------

// GinHandleListUsers 用户列表
// @Summary 用户列表
// @Description 只含公开字段
// @Tags 用户管理
// @Produce json
// @Success 200 {object} response.Response{data=[]service.User}
// @Failure 403 {object} response.Response "权限不足"
// @Security BearerAuth
// @Router /users [get]
func (e *Engine) GinHandleListUsers(ctx *gin.Context) {
	users, err := e.Services.Profiles.ListUsers(ctx.Request.Context())
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(users))
}

// GinHandleBanUser 封禁
// @Summary 封禁用户
// @Tags 用户管理
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users/{id}/ban [post]
func (e *Engine) GinHandleBanUser(ctx *gin.Context) {
	if err := e.Services.Profiles.BanUser(ctx.Request.Context(), ctx.Param("id")); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleUnbanUser 解封
// @Summary 解封用户
// @Tags 用户管理
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users/{id}/unban [post]
func (e *Engine) GinHandleUnbanUser(ctx *gin.Context) {
	if err := e.Services.Profiles.UnbanUser(ctx.Request.Context(), ctx.Param("id")); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleDeleteUser 删除用户资料
// @Summary 删除用户
// @Description 只删资料，登录身份保留
// @Tags 用户管理
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [delete]
func (e *Engine) GinHandleDeleteUser(ctx *gin.Context) {
	if err := e.Services.Profiles.DeleteUser(ctx.Request.Context(), ctx.Param("id")); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}
