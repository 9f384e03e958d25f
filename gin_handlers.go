package pixelheart

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂载全部 HTTP 接口，r 一般是 /api/v1 分组。
// 接口实现按模块拆在：
// - handler_user.go    登录注册、个人资料、用户管理
// - handler_set.go     套图、系列、社交链接、图片上传
// - handler_photo.go   点赞、收藏、评论
// - handler_message.go 聊天室、实时推送
func (e *Engine) RegisterRoutes(r gin.IRouter) {
	auth := e.GinAuthMiddleware(nil)
	admin := e.GinAdminMiddleware(nil)

	a := r.Group("/auth")
	{
		a.POST("/signup", e.GinHandleSignUp)
		a.POST("/login", e.GinHandleLogin)
		a.POST("/logout", auth, e.GinHandleLogout)
		a.POST("/logout-all", auth, e.GinHandleLogoutAll)
		a.GET("/session", auth, e.GinHandleSession)
		a.POST("/refresh", auth, e.GinHandleRefresh)
	}

	r.GET("/sets", e.GinHandleListSets)
	r.GET("/sets/:id", e.GinHandleGetSet)
	r.POST("/sets", auth, admin, e.GinHandleCreateSet)
	r.PUT("/sets/:id", auth, admin, e.GinHandleUpdateSet)
	r.DELETE("/sets/:id", auth, admin, e.GinHandleDeleteSet)

	r.GET("/series", e.GinHandleListSeries)
	r.POST("/series", auth, admin, e.GinHandleCreateSeries)
	r.PUT("/series/:id", auth, admin, e.GinHandleRenameSeries)
	r.DELETE("/series/:id", auth, admin, e.GinHandleDeleteSeries)

	r.GET("/social-links", e.GinHandleGetSocialLinks)
	r.PUT("/social-links", auth, admin, e.GinHandleUpdateSocialLinks)

	r.POST("/photos/:id/like", auth, e.GinHandleToggleLike)
	r.POST("/photos/:id/save", auth, e.GinHandleToggleSave)
	r.POST("/photos/:id/comments", auth, e.GinHandleAddComment)
	r.DELETE("/comments/:id", auth, e.GinHandleDeleteComment)

	r.GET("/chat", e.GinHandleListChat)
	r.POST("/chat", auth, e.GinHandleSendChat)
	r.DELETE("/chat/:id", auth, e.GinHandleDeleteChat)

	p := r.Group("/profile", auth)
	{
		p.GET("", e.GinHandleGetProfile)
		p.PUT("", e.GinHandleUpdateProfile)
		p.DELETE("", e.GinHandleDeleteAccount)
		p.POST("/avatar", e.GinHandleUploadAvatar)
	}

	r.POST("/uploads/set-image", auth, admin, e.GinHandleUploadSetImage)

	u := r.Group("/users", auth, admin)
	{
		u.GET("", e.GinHandleListUsers)
		u.POST("/:id/ban", e.GinHandleBanUser)
		u.POST("/:id/unban", e.GinHandleUnbanUser)
		u.DELETE("/:id", e.GinHandleDeleteUser)
	}

	r.GET("/realtime", e.GinHandleRealtime)
}
