package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterIssuesRoutes 注册质量问题相关路由.
func RegisterIssuesRoutes(g *gin.RouterGroup) {
	issuesRoutes := g.Group("/issues")
	{
		issuesRoutes.POST("", handle.CreateIssue)
		issuesRoutes.GET("", handle.ListIssues)
		issuesRoutes.GET("/:issueId", handle.GetIssue)
		issuesRoutes.PUT("/:issueId", handle.UpdateIssue)
		issuesRoutes.DELETE("/:issueId", handle.DeleteIssue)
	}
}
