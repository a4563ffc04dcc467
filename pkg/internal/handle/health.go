// Package handle 新增健康检查处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
)

const timeout = 2 * time.Second

// HealthOverview 聚合健康检查：DB 必须可用，S3/MQ 属于可选依赖，
// 未配置时报告 disabled 而不是 unhealthy.
func HealthOverview(c *gin.Context) {
	components := gin.H{}
	healthy := true

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if dbc := ctxPkg.GetDBClient(c.Request.Context()); dbc == nil || dbc.DB == nil {
		components["db"] = "unhealthy"
		healthy = false
	} else if sqlDB, err := dbc.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		components["db"] = "unhealthy"
		healthy = false
	} else {
		components["db"] = "ok"
	}

	if s3c := ctxPkg.GetS3Client(c.Request.Context()); s3c == nil || s3c.Client == nil {
		components["s3"] = "disabled"
	} else {
		components["s3"] = "ok"
	}

	if mqc := ctxPkg.GetMQClient(c.Request.Context()); mqc == nil {
		components["mq"] = "disabled"
	} else {
		components["mq"] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "components": components})
}

// HealthDB 数据库健康检查.
func HealthDB(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.DB == nil { // dbc.DB 来自于嵌入的 *gorm.DB
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": "db client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	sqlDB, err := dbc.DB.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "db", "status": "ok"})
}

// HealthS3 S3/对象存储健康检查.
func HealthS3(c *gin.Context) {
	s3c := ctxPkg.GetS3Client(c.Request.Context())
	if s3c == nil || s3c.Client == nil { // s3c.Client 为底层 *minio.Client
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "s3", "status": "unhealthy", "error": "s3 client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if _, err := s3c.ListBuckets(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "s3", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "s3", "status": "ok"})
}

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil { // publisher 与 subscriber 初始化在 New 中, 判空即可
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "mq", "status": "unhealthy", "error": "mq client not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "ok"})
}
