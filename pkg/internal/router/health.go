package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
// 根路径返回聚合状态，子路径按组件单独探测.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("", handle.HealthOverview)
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/s3", handle.HealthS3)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}
