package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterProjectsRoutes 注册项目相关路由.
func RegisterProjectsRoutes(g *gin.RouterGroup) {
	projectsRoutes := g.Group("/projects")
	{
		projectsRoutes.POST("", handle.CreateProject)
		projectsRoutes.GET("", handle.ListProjects)
		projectsRoutes.GET("/:projectId", handle.GetProject)
		projectsRoutes.PUT("/:projectId", handle.UpdateProject)
		projectsRoutes.DELETE("/:projectId", handle.DeleteProject)
	}
}
