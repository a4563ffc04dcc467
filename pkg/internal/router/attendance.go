package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterAttendanceRoutes 注册考勤相关路由.
func RegisterAttendanceRoutes(g *gin.RouterGroup) {
	attendanceRoutes := g.Group("/attendance")
	{
		attendanceRoutes.POST("", handle.CreateAttendance)
		attendanceRoutes.GET("", handle.ListAttendance)
		attendanceRoutes.GET("/:attendanceId", handle.GetAttendance)
		attendanceRoutes.DELETE("/:attendanceId", handle.DeleteAttendance)
	}
}
