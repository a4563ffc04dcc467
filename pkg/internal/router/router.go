// Package router 管理路由配置，将路径与 pkg/internal/handle 中的处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 将全部业务路由注册到 /api/v1 路由组.
func RegisterAPIRoutes(g *gin.RouterGroup) {
	RegisterFilesRoutes(g)
	RegisterTasksRoutes(g)
	RegisterIssuesRoutes(g)
	RegisterAttendanceRoutes(g)
	RegisterProjectsRoutes(g)
	RegisterStatsRoutes(g)
}
