package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterStatsRoutes 注册统计相关路由.
func RegisterStatsRoutes(g *gin.RouterGroup) {
	statsRoutes := g.Group("/stats")
	{
		statsRoutes.GET("/files", handle.GetAttachmentStats) // 附件统计
	}
}
