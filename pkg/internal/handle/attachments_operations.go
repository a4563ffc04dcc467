package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/identity"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/middleware"
)

// DeleteAttachment 删除附件并清理任务引用.
//
//	@Summary		删除附件
//	@Description	删除附件记录，并把 id 从所有任务的附件列表中移除；启用认证时要求删除方是上传者本人或管理员
//	@Tags			附件
//	@Produce		json
//	@Param			fileId	path		string	true	"附件 id"
//	@Success		200		{object}	map[string]any		"删除成功"
//	@Failure		400		{object}	map[string]string	"id 格式错误"
//	@Failure		403		{object}	map[string]string	"非上传者且非管理员"
//	@Failure		404		{object}	map[string]string	"附件不存在"
//	@Router			/api/v1/files/{fileId} [delete]
func DeleteAttachment(c *gin.Context) {
	id := c.Param("fileId")
	actor := identity.FromRequest(c)
	svc := service.NewAttachmentService(c.Request.Context())

	// 认证开启时校验删除权限；关闭时保持宽松，便于本地调试
	if configs.GetConfig().Auth.Enabled {
		meta, err := svc.GetMetadataByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "delete attachment lookup failed")

			return
		}

		if meta.UploadedBy != actor.ID && middleware.GetRole(c) < middleware.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: not the uploader"})

			return
		}
	}

	if err := svc.Delete(c.Request.Context(), id, actor.ID); err != nil {
		respondError(c, err, "delete attachment failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

// ArchiveTaskAttachments 打包导出任务附件.
//
//	@Summary		归档任务附件
//	@Description	把任务的全部附件打包成 zip 写入对象存储，返回限时下载链接
//	@Tags			附件
//	@Produce		json
//	@Param			taskId	path		string	true	"任务 id"
//	@Success		200		{object}	types.ArchiveTaskResponse
//	@Failure		400		{object}	map[string]string	"任务 id 格式错误"
//	@Failure		404		{object}	map[string]string	"任务没有附件"
//	@Failure		500		{object}	map[string]string	"归档存储不可用或写入失败"
//	@Router			/api/v1/files/task/{taskId}/archive [post]
func ArchiveTaskAttachments(c *gin.Context) {
	actor := identity.FromRequest(c)
	svc := service.NewArchiveService(c.Request.Context())

	resp, err := svc.ArchiveTaskAttachments(c.Request.Context(), c.Param("taskId"), actor.ID)
	if err != nil {
		respondError(c, err, "archive task attachments failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}
