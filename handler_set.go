package pixelheart

import (
	"context"
	"net/http"

	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 套图 --------------------

// GinHandleListSets 全部套图（含照片、点赞、评论）
// @Summary 套图列表
// @Tags 套图
// @Produce json
// @Success 200 {object} response.Response{data=[]service.CosplaySet}
// @Router /sets [get]
func (e *Engine) GinHandleListSets(ctx *gin.Context) {
	sets, err := e.Services.Sets.ListSets(ctx.Request.Context())
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(sets))
}

// GinHandleGetSet 单个套图
// @Summary 套图详情
// @Tags 套图
// @Produce json
// @Param id path string true "套图ID"
// @Success 200 {object} response.Response{data=service.CosplaySet}
// @Router /sets/{id} [get]
func (e *Engine) GinHandleGetSet(ctx *gin.Context) {
	set, err := e.Services.Sets.GetSet(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(set))
}

// checkFeatured 精选上限，excludeID 为正在编辑的套图
func (e *Engine) checkFeatured(c context.Context, featured bool, excludeID string) error {
	if !featured {
		return nil
	}
	n, err := e.Services.Sets.CountFeatured(c, excludeID)
	if err != nil {
		return err
	}
	if n >= maxFeaturedSets {
		return errFeaturedLimit
	}
	return nil
}

// GinHandleCreateSet 新建套图
// @Summary 新建套图
// @Description 系列名不存在时自动创建；最多三套精选
// @Tags 套图
// @Accept json
// @Produce json
// @Param req body setReq true "套图"
// @Success 200 {object} response.Response{data=service.CosplaySet}
// @Security BearerAuth
// @Router /sets [post]
func (e *Engine) GinHandleCreateSet(ctx *gin.Context) {
	var req setReq
	if !bindJSON(ctx, &req) {
		return
	}
	c := ctx.Request.Context()
	if err := e.checkFeatured(c, req.Featured, ""); err != nil {
		e.fail(ctx, err)
		return
	}
	set, err := e.Services.Sets.CreateSet(c, req.SetDraft)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(set))
}

// GinHandleUpdateSet 编辑套图
// @Summary 编辑套图
// @Description 照片带 id 的保留（计数不变），不带 id 的新建，未提交的删除
// @Tags 套图
// @Accept json
// @Produce json
// @Param id path string true "套图ID"
// @Param req body setReq true "套图"
// @Success 200 {object} response.Response{data=service.CosplaySet}
// @Security BearerAuth
// @Router /sets/{id} [put]
func (e *Engine) GinHandleUpdateSet(ctx *gin.Context) {
	var req setReq
	if !bindJSON(ctx, &req) {
		return
	}
	c := ctx.Request.Context()
	id := ctx.Param("id")
	if err := e.checkFeatured(c, req.Featured, id); err != nil {
		e.fail(ctx, err)
		return
	}
	set, err := e.Services.Sets.UpdateSet(c, id, req.SetDraft)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(set))
}

// GinHandleDeleteSet 删除套图及其照片
// @Summary 删除套图
// @Tags 套图
// @Produce json
// @Param id path string true "套图ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /sets/{id} [delete]
func (e *Engine) GinHandleDeleteSet(ctx *gin.Context) {
	if err := e.Services.Sets.DeleteSet(ctx.Request.Context(), ctx.Param("id")); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// -------------------- 系列 --------------------

// GinHandleListSeries 系列列表，按名称排序
// @Summary 系列列表
// @Tags 系列
// @Produce json
// @Success 200 {object} response.Response{data=[]service.Series}
// @Router /series [get]
func (e *Engine) GinHandleListSeries(ctx *gin.Context) {
	series, err := e.Services.Series.ListSeries(ctx.Request.Context())
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(series))
}

// GinHandleCreateSeries 新建系列
// @Summary 新建系列
// @Tags 系列
// @Accept json
// @Produce json
// @Param req body seriesReq true "系列名"
// @Success 200 {object} response.Response{data=service.Series}
// @Security BearerAuth
// @Router /series [post]
func (e *Engine) GinHandleCreateSeries(ctx *gin.Context) {
	var req seriesReq
	if !bindJSON(ctx, &req) {
		return
	}
	series, err := e.Services.Series.CreateSeries(ctx.Request.Context(), req.Name)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(series))
}

// GinHandleRenameSeries 重命名
// @Summary 重命名系列
// @Tags 系列
// @Accept json
// @Produce json
// @Param id path string true "系列ID"
// @Param req body seriesReq true "新名称"
// @Success 200 {object} response.Response{data=service.Series}
// @Security BearerAuth
// @Router /series/{id} [put]
func (e *Engine) GinHandleRenameSeries(ctx *gin.Context) {
	var req seriesReq
	if !bindJSON(ctx, &req) {
		return
	}
	series, err := e.Services.Series.RenameSeries(ctx.Request.Context(), ctx.Param("id"), req.Name)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(series))
}

// GinHandleDeleteSeries 删除系列，套图不受影响
// @Summary 删除系列
// @Tags 系列
// @Produce json
// @Param id path string true "系列ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /series/{id} [delete]
func (e *Engine) GinHandleDeleteSeries(ctx *gin.Context) {
	if err := e.Services.Series.DeleteSeries(ctx.Request.Context(), ctx.Param("id")); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// -------------------- 社交链接 --------------------

// GinHandleGetSocialLinks 站点联系方式
// @Summary 社交链接
// @Tags 社交链接
// @Produce json
// @Success 200 {object} response.Response{data=service.SocialLinks}
// @Router /social-links [get]
func (e *Engine) GinHandleGetSocialLinks(ctx *gin.Context) {
	links, err := e.Services.Social.GetSocialLinks(ctx.Request.Context())
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(links))
}

// GinHandleUpdateSocialLinks 覆盖保存
// @Summary 修改社交链接
// @Tags 社交链接
// @Accept json
// @Produce json
// @Param req body service.SocialLinks true "社交链接"
// @Success 200 {object} response.Response{data=service.SocialLinks}
// @Security BearerAuth
// @Router /social-links [put]
func (e *Engine) GinHandleUpdateSocialLinks(ctx *gin.Context) {
	var req service.SocialLinks
	if !bindJSON(ctx, &req) {
		return
	}
	links, err := e.Services.Social.UpdateSocialLinks(ctx.Request.Context(), req)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(links))
}

// GinHandleUploadSetImage 上传套图图片，返回公开地址
// @Summary 上传套图图片
// @Tags 套图
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片"
// @Success 200 {object} response.Response{data=map[string]string} "{url}"
// @Security BearerAuth
// @Router /uploads/set-image [post]
func (e *Engine) GinHandleUploadSetImage(ctx *gin.Context) {
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

	url, err := e.Services.Uploads.UploadSetImage(ctx.Request.Context(), fh.Filename, f)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(map[string]string{"url": url}))
}
