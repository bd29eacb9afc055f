package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "github.com/taoyao-code/meshmsg/docs"
)

//go:generate go tool swag init -o ../../docs -d ../../cmd/server,. --parseDependency

// RegisterDocRoutes 注册 Swagger UI 与原始文档
func RegisterDocRoutes(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api/v1/doc", func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, gin.MIMEJSON, []byte(doc))
	})
}
