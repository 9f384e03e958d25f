package pixelheart

import (
	"errors"
	"net/http"

	"github.com/cydxin/pixelheart-sdk/middleware"
	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
)

type likeResp struct {
	Liked bool `json:"liked"`
}

type saveResp struct {
	Saved       bool     `json:"saved"`
	SavedPhotos []string `json:"savedPhotos"`
}

// GinHandleToggleLike 点赞 / 取消点赞
// @Summary 点赞
// @Tags 照片
// @Produce json
// @Param id path string true "照片ID"
// @Success 200 {object} response.Response{data=likeResp}
// @Security BearerAuth
// @Router /photos/{id}/like [post]
func (e *Engine) GinHandleToggleLike(ctx *gin.Context) {
	liked, err := e.Services.Interactions.ToggleLike(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(likeResp{Liked: liked}))
}

// GinHandleToggleSave 收藏 / 取消收藏，返回完整收藏列表
// @Summary 收藏
// @Tags 照片
// @Produce json
// @Param id path string true "照片ID"
// @Success 200 {object} response.Response{data=saveResp}
// @Security BearerAuth
// @Router /photos/{id}/save [post]
func (e *Engine) GinHandleToggleSave(ctx *gin.Context) {
	saved, ids, err := e.Services.Interactions.ToggleSave(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(saveResp{Saved: saved, SavedPhotos: ids}))
}

// GinHandleAddComment 评论，作者名取当前用户名并随评论保存
// @Summary 发表评论
// @Tags 照片
// @Accept json
// @Produce json
// @Param id path string true "照片ID"
// @Param req body textReq true "评论内容"
// @Success 200 {object} response.Response{data=service.Comment}
// @Security BearerAuth
// @Router /photos/{id}/comments [post]
func (e *Engine) GinHandleAddComment(ctx *gin.Context) {
	var req textReq
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
	comment, err := e.Services.Interactions.AddComment(c, ctx.Param("id"), uid, user.Username, req.Text)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(comment))
}

// GinHandleDeleteComment 作者本人或管理员可删；已不存在视为成功
// @Summary 删除评论
// @Tags 照片
// @Produce json
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (e *Engine) GinHandleDeleteComment(ctx *gin.Context) {
	c := ctx.Request.Context()
	id := ctx.Param("id")
	comment, err := e.Services.Interactions.FindComment(c, id)
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusOK, response.Success(nil))
		return
	}
	if err != nil {
		e.fail(ctx, err)
		return
	}
	if err := e.requireAuthorOrAdmin(ctx, comment.UserID); err != nil {
		e.fail(ctx, err)
		return
	}
	if err := e.Services.Interactions.DeleteComment(c, id); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

func (e *Engine) requireAuthorOrAdmin(ctx *gin.Context, authorID string) error {
	uid := middleware.UserID(ctx)
	if uid != "" && uid == authorID {
		return nil
	}
	admin, err := e.Services.Profiles.IsAdmin(ctx.Request.Context(), uid)
	if err != nil {
		return err
	}
	if !admin {
		return errNotAuthor
	}
	return nil
}
