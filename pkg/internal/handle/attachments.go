package handle

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/identity"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
)

// uploadHintsFromForm 读取表单里的可选归属字段.
func uploadHintsFromForm(c *gin.Context) *types.UploadHints {
	return &types.UploadHints{
		TaskID:    c.PostForm("taskId"),
		ProjectID: c.PostForm("projectId"),
		IssueID:   c.PostForm("issueId"),
	}
}

// uploadItemOf 把 multipart 文件头转成上传条目，Reader 由调用方负责关闭.
func uploadItemOf(fh *multipart.FileHeader) (service.UploadItem, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadItem{}, nil, err
	}

	return service.UploadItem{
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		DeclaredSize: fh.Size,
		Reader:       f,
	}, f, nil
}

// UploadAttachment 上传单个附件.
//
//	@Summary		上传单个附件
//	@Description	校验 MIME 类型与大小后写入存储，携带 taskId/issueId 时尽力关联到对应实体
//	@Tags			附件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"附件文件"
//	@Param			taskId		formData	string	false	"归属任务 id"
//	@Param			projectId	formData	string	false	"归属项目 id"
//	@Param			issueId		formData	string	false	"归属问题 id"
//	@Success		201	{object}	map[string]any		"附件元数据"
//	@Failure		400	{object}	map[string]string	"缺文件 / 类型不允许 / 超出大小"
//	@Failure		500	{object}	map[string]string	"存储错误"
//	@Router			/api/v1/files/upload [post]
func UploadAttachment(c *gin.Context) {
	l := log.Logger()

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("upload without file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})

		return
	}

	item, f, err := uploadItemOf(fh)
	if err != nil {
		l.Error().Err(err).Msg("open upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

		return
	}
	defer f.Close() //nolint:errcheck

	actor := identity.FromRequest(c)
	svc := service.NewAttachmentService(c.Request.Context())

	meta, err := svc.UploadSingle(c.Request.Context(), actor.ID, item, uploadHintsFromForm(c))
	if err != nil {
		respondError(c, err, "upload attachment failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": meta})
}

// UploadAttachments 批量上传附件，逐文件上报结果.
//
//	@Summary		批量上传附件
//	@Description	每个文件独立校验与写入，部分失败不影响已成功的文件，响应逐文件给出结果
//	@Tags			附件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			files		formData	file	true	"附件文件（可多个，至多 10 个）"
//	@Param			taskId		formData	string	false	"归属任务 id"
//	@Param			projectId	formData	string	false	"归属项目 id"
//	@Param			issueId		formData	string	false	"归属问题 id"
//	@Success		201	{object}	types.UploadBatchResponse	"逐文件上传结果"
//	@Failure		400	{object}	map[string]string			"没有文件或超出数量上限"
//	@Failure		500	{object}	map[string]string			"存储错误"
//	@Router			/api/v1/files/upload-multiple [post]
func UploadAttachments(c *gin.Context) {
	l := log.Logger()

	form, err := c.MultipartForm()
	if err != nil {
		l.Warn().Err(err).Msg("invalid multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})

		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})

		return
	}

	items := make([]service.UploadItem, 0, len(headers))

	for _, fh := range headers {
		item, f, err := uploadItemOf(fh)
		if err != nil {
			l.Error().Err(err).Str("file", fh.Filename).Msg("open upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})

			return
		}
		defer f.Close() //nolint:errcheck

		items = append(items, item)
	}

	actor := identity.FromRequest(c)
	svc := service.NewAttachmentService(c.Request.Context())

	resp, err := svc.UploadBatch(c.Request.Context(), actor.ID, items, uploadHintsFromForm(c))
	if err != nil {
		respondError(c, err, "upload batch failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

// GetUploadRules 返回客户端预校验规则.
//
//	@Summary		获取上传校验规则
//	@Description	返回允许的 MIME 类型、单文件大小上限与批量数量上限，客户端预校验与服务端共用同一配置
//	@Tags			附件
//	@Produce		json
//	@Success		200	{object}	types.UploadRules
//	@Router			/api/v1/files/rules [get]
func GetUploadRules(c *gin.Context) {
	svc := service.NewAttachmentService(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc.Rules()})
}
