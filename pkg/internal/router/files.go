package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/handle"
)

// RegisterFilesRoutes 注册附件相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 上传
		filesRoutes.POST("/upload", handle.UploadAttachment)
		filesRoutes.POST("/upload-multiple", handle.UploadAttachments)
		// 上传约束（允许的 MIME 类型与大小上限）
		filesRoutes.GET("/rules", handle.GetUploadRules)

		// 单个附件操作
		filesRoutes.GET("/:fileId", handle.DownloadAttachment)
		filesRoutes.GET("/:fileId/info", handle.GetAttachmentInfo)
		filesRoutes.DELETE("/:fileId", handle.DeleteAttachment)

		// 按任务维度的操作
		taskGroup := filesRoutes.Group("/task/:taskId")
		{
			taskGroup.GET("", handle.ListTaskAttachments)
			taskGroup.POST("/archive", handle.ArchiveTaskAttachments)
		}
	}
}
