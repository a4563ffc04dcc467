// Package handle 提供请求处理器的实现，用于处理HTTP请求.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/log"
)

// respondError 统一的错误到状态码映射：
// 校验失败 400，记录缺失 404，其余 500（细节只进日志，不回给客户端）.
func respondError(c *gin.Context, err error, logMsg string) {
	l := log.Logger()

	switch {
	case service.IsValidationError(err):
		l.Warn().Err(err).Msg(logMsg)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		l.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
