package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterTasksRoutes 注册任务相关路由.
func RegisterTasksRoutes(g *gin.RouterGroup) {
	tasksRoutes := g.Group("/tasks")
	{
		tasksRoutes.POST("", handle.CreateTask)
		tasksRoutes.GET("", handle.ListTasks)
		tasksRoutes.GET("/:taskId", handle.GetTask)
		tasksRoutes.PUT("/:taskId", handle.UpdateTask)
		tasksRoutes.DELETE("/:taskId", handle.DeleteTask)
	}
}
