package handle

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/identity"
	"github.com/yeisme/sitevault/pkg/internal/service"
)

// escapeQuoted 简单转义文件名中的引号与分号等.
func escapeQuoted(s string) string {
	replacer := strings.NewReplacer("\\", "_", "\"", "_", ";", "_", "\n", "_", "\r", "_")
	return replacer.Replace(s)
}

// DownloadAttachment 返回附件二进制内容.
//
//	@Summary		下载附件
//	@Description	按 id 返回附件原始内容，Content-Type 为存储的 MIME 类型，Content-Disposition 使用原始文件名内联展示
//	@Tags			附件
//	@Produce		application/octet-stream
//	@Param			fileId	path		string	true	"附件 id"
//	@Success		200		{file}		file	"附件内容"
//	@Failure		400		{object}	map[string]string	"id 格式错误"
//	@Failure		404		{object}	map[string]string	"附件不存在"
//	@Router			/api/v1/files/{fileId} [get]
func DownloadAttachment(c *gin.Context) {
	actor := identity.FromRequest(c)
	svc := service.NewAttachmentService(c.Request.Context())

	att, err := svc.GetByID(c.Request.Context(), c.Param("fileId"), actor.ID)
	if err != nil {
		respondError(c, err, "download attachment failed")

		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+escapeQuoted(att.OriginalName)+"\"")
	c.Data(http.StatusOK, att.MimeType, att.Data)
}

// GetAttachmentInfo 返回附件元数据.
//
//	@Summary		查询附件元数据
//	@Description	按 id 返回附件元数据，不含二进制内容
//	@Tags			附件
//	@Produce		json
//	@Param			fileId	path		string	true	"附件 id"
//	@Success		200		{object}	types.AttachmentMetadata
//	@Failure		400		{object}	map[string]string	"id 格式错误"
//	@Failure		404		{object}	map[string]string	"附件不存在"
//	@Router			/api/v1/files/{fileId}/info [get]
func GetAttachmentInfo(c *gin.Context) {
	svc := service.NewAttachmentService(c.Request.Context())

	meta, err := svc.GetMetadataByID(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		respondError(c, err, "get attachment info failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": meta})
}

// ListTaskAttachments 列出任务的全部附件元数据.
//
//	@Summary		按任务列出附件
//	@Description	返回 taskId 匹配的附件元数据列表
//	@Tags			附件
//	@Produce		json
//	@Param			taskId	path		string	true	"任务 id"
//	@Success		200		{object}	types.ListAttachmentsResponse
//	@Failure		400		{object}	map[string]string	"任务 id 格式错误"
//	@Router			/api/v1/files/task/{taskId} [get]
func ListTaskAttachments(c *gin.Context) {
	svc := service.NewAttachmentService(c.Request.Context())

	resp, err := svc.ListByTaskID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "list task attachments failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp.Files})
}
