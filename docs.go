// Package pixelheart 像素风 cosplay 相册的平台侧 SDK：
// gin 接口、websocket 行变更推送，以及给客户端用的 store.Store 缓存。
//
// @title PixelHeart API
// @version 1.0
// @description 像素风 cosplay 相册的 RESTful API：套图、系列、点赞收藏评论、聊天室、用户管理
// @description
// @description ## 业务状态码说明
// @description | Code | 说明 |
// @description |------|------|
// @description | 0 | 成功 |
// @description | 10001 | 参数错误 |
// @description | 10002 | 用户名不存在 |
// @description | 10003 | 账号或密码错误 |
// @description | 10004 | Token 无效 |
// @description | 10005 | 权限不足 |
// @description | 10006 | 数据不存在 |
// @description | 10007 | 邮箱 / 用户名已被占用 |
// @description | 10008 | 用户已被封禁 |
// @description | 10009 | 精选套图已满（最多 3 套） |
// @description | 99999 | 内部错误 |
// @description
// @description ## HTTP 状态码说明
// @description - **200**: 业务请求成功（根据 response.code 判断业务状态）
// @description - **400**: 请求体格式或字段校验失败
// @description - **401**: 认证失败（未登录/Token 无效）
// @description - **403**: 需要管理员权限
// @description - **500**: 服务器内部错误
// @description
// @description ## 响应格式
// @description 所有接口统一返回格式：
// @description ```json
// @description {
// @description   "code": 0,
// @description   "msg": "success",
// @description   "data": {}
// @description }
// @description ```
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:6789
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer <token>
//
// @securityDefinitions.apikey QueryToken
// @in query
// @name token
// @description 用于 WebSocket 等无法传 header 的场景
package pixelheart
