package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
)

// GetAttachmentStats 附件统计汇总.
//
//	@Summary		附件统计
//	@Description	总量、按 MIME 类型分布、按项目分布、关联/孤儿数量
//	@Tags			统计
//	@Produce		json
//	@Success		200	{object}	types.StatsResponse
//	@Router			/api/v1/stats/files [get]
func GetAttachmentStats(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())

	resp, err := svc.AttachmentStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "attachment stats failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}
