// Package service 实现附件与工程实体的业务逻辑，不处理 HTTP 细节.
package service

import (
	"context"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/sitevault/pkg/log"
)

// AttachmentService 负责附件的写入、查找与删除.
// 二进制内容与元数据一并落库，数据库是唯一真源.
type AttachmentService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

// NewAttachmentService 从 context 获取依赖实例.
func NewAttachmentService(c context.Context) *AttachmentService {
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)

	// 数据库是硬依赖，直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	// MQ 缺失时事件发布静默跳过
	return &AttachmentService{
		dbClient: dbc,
		mqClient: mqc,
	}
}
