package pixelheart

import (
	_ "github.com/cydxin/pixelheart-sdk/docs"
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterSwagger 在 Gin 路由上注册 Swagger UI。
// 默认路由：/swagger/*any
//
// 使用示例：
//
//	r := gin.Default()
//	pixelheart.RegisterSwagger(r, "/swagger/*any")
//	r.Run(":6789")
//
// 访问：http://localhost:6789/swagger/index.html
func RegisterSwagger(r gin.IRoutes, path string) {
	if path == "" {
		path = "/swagger/*any"
	}
	r.GET(path, ginSwagger.WrapHandler(swaggerFiles.Handler))
}
