package pixelheart

import (
	"errors"
	"net/http"

	"github.com/cydxin/pixelheart-sdk/middleware"
	"github.com/cydxin/pixelheart-sdk/response"
	"github.com/cydxin/pixelheart-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 聊天室 --------------------

// GinHandleListChat 最近 50 条，时间升序
// @Summary 聊天记录
// @Tags 聊天室
// @Produce json
// @Success 200 {object} response.Response{data=[]service.ChatMessage}
// @Router /chat [get]
func (e *Engine) GinHandleListChat(ctx *gin.Context) {
	msgs, err := e.Services.Chat.ListChat(ctx.Request.Context())
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(msgs))
}

// GinHandleSendChat 发言；订阅了 chat_messages 的连接会收到 INSERT
// @Summary 发送消息
// @Tags 聊天室
// @Accept json
// @Produce json
// @Param req body textReq true "消息内容"
// @Success 200 {object} response.Response{data=service.ChatMessage}
// @Security BearerAuth
// @Router /chat [post]
func (e *Engine) GinHandleSendChat(ctx *gin.Context) {
	var req textReq
	if !bindJSON(ctx, &req) {
		return
	}
	msg, err := e.Services.Chat.SendChat(ctx.Request.Context(), middleware.UserID(ctx), req.Text)
	if err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(msg))
}

// GinHandleDeleteChat 发送人或管理员可删；已不存在视为成功
// @Summary 删除消息
// @Tags 聊天室
// @Produce json
// @Param id path string true "消息ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /chat/{id} [delete]
func (e *Engine) GinHandleDeleteChat(ctx *gin.Context) {
	c := ctx.Request.Context()
	id := ctx.Param("id")
	msg, err := e.Services.Chat.FindChat(c, id)
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusOK, response.Success(nil))
		return
	}
	if err != nil {
		e.fail(ctx, err)
		return
	}
	if err := e.requireAuthorOrAdmin(ctx, msg.UserID); err != nil {
		e.fail(ctx, err)
		return
	}
	if err := e.Services.Chat.DeleteChat(c, id); err != nil {
		e.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// -------------------- 实时推送 --------------------

// GinHandleRealtime 升级为 websocket。
// 不带 token 以匿名身份连接；带了但无效返回 401。
// 上行 {"type":"subscribe","table":"chat_messages","event":"INSERT"}，下行 {"type":"change",...}
// 连接所用 token 被注销时下发 {"type":"auth","event":"SIGNED_OUT"} 后断开
// @Summary 实时推送
// @Tags 聊天室
// @Param token query string false "access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Response "token 无效"
// @Router /realtime [get]
func (e *Engine) GinHandleRealtime(ctx *gin.Context) {
	uid := ""
	token := middleware.BearerToken(ctx, nil)
	if token != "" {
		id, err := e.Services.Auth.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			response.Error(response.CodeTokenInvalid, err.Error()).WriteJSONWithStatus(ctx.Writer, http.StatusUnauthorized)
			ctx.Abort()
			return
		}
		uid = id
	}
	e.WsServer.ServeWS(ctx.Writer, ctx.Request, uid, token)
}
