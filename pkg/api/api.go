// Package api 汇总 HTTP 服务对外暴露的接口，负责把各业务路由组挂到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/router"
)

// RegisterRoutes 注册全部 HTTP 路由到传入的 gin 引擎.
func RegisterRoutes(e *gin.Engine) *gin.Engine {
	api := e.Group("/api/v1")
	{
		router.RegisterAPIRoutes(api)
		router.RegisterHealthCheckRoute(api)
		router.RegisterSchedulerRoutes(api)
	}

	router.RegisterSwaggerRoute(e)

	return e
}
