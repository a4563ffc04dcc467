package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
)

const eventProducer = "sitevault"

// buildStoredName 生成服务端唯一存储名：时间戳 + 随机后缀 + 原始文件名.
// 仅内部使用，对外查找键始终是附件 id.
func buildStoredName(originalName string) string {
	base := filepath.Base(strings.TrimSpace(originalName))
	suffix := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)

	return fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), suffix, base)
}

// validateUpload 在任何写入之前校验 MIME 类型与大小，违规整单拒绝.
func validateUpload(cfg *configs.UploadConfig, mimeType string, size int64) error {
	if !cfg.TypeAllowed(mimeType) {
		return newValidationError("file type not allowed: %s", mimeType)
	}

	if size > cfg.MaxSizeBytes {
		return newValidationError("file too large: %d bytes (max %d)", size, cfg.MaxSizeBytes)
	}

	return nil
}

// ownerPtr 空串归一为 nil，避免数据库里出现空字符串外键.
func ownerPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// metadataOf 将模型转换为对外元数据，二进制内容永远不回显.
func metadataOf(m *model.Attachment) types.AttachmentMetadata {
	return types.AttachmentMetadata{
		ID:           m.ID,
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		Size:         m.Size,
		TaskID:       m.TaskID,
		ProjectID:    m.ProjectID,
		IssueID:      m.IssueID,
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.CreatedAt,
	}
}

func attachmentRef(m *model.Attachment) queue.AttachmentRef {
	return queue.AttachmentRef{
		ID:           m.ID,
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		Size:         m.Size,
		UploadedBy:   m.UploadedBy,
	}
}

func ownerRef(m *model.Attachment) queue.OwnerRef {
	ref := queue.OwnerRef{}
	if m.TaskID != nil {
		ref.TaskID = *m.TaskID
	}

	if m.ProjectID != nil {
		ref.ProjectID = *m.ProjectID
	}

	if m.IssueID != nil {
		ref.IssueID = *m.IssueID
	}

	return ref
}

// publish 统一的事件发布入口：MQ 不可用或主题被关闭时静默跳过，
// 发布失败只记日志，绝不影响主流程.
func (s *AttachmentService) publish(ctx context.Context, topic string, enabled bool, payload any) {
	if s.mqClient == nil || !enabled {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(eventProducer))
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("build event message failed")

		return
	}

	if err := s.mqClient.Publish(ctx, topic, msg); err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

func (s *AttachmentService) publishStored(ctx context.Context, m *model.Attachment, linked bool) {
	cfg := configs.GetConfig().Events
	s.publish(ctx, queue.TopicAttachmentStored, cfg.Enabled && cfg.Attachment.Stored, queue.AttachmentStoredPayload{
		Attachment: attachmentRef(m),
		Owner:      ownerRef(m),
		Linked:     linked,
	})
}

func (s *AttachmentService) publishLinked(ctx context.Context, m *model.Attachment) {
	cfg := configs.GetConfig().Events
	s.publish(ctx, queue.TopicAttachmentLinked, cfg.Enabled && cfg.Attachment.Linked, queue.AttachmentLinkedPayload{
		Attachment: attachmentRef(m),
		Owner:      ownerRef(m),
	})
}

func (s *AttachmentService) publishDeleted(ctx context.Context, m *model.Attachment, tasksCleaned int, deletedBy string) {
	cfg := configs.GetConfig().Events
	s.publish(ctx, queue.TopicAttachmentDeleted, cfg.Enabled && cfg.Attachment.Deleted, queue.AttachmentDeletedPayload{
		Attachment:   attachmentRef(m),
		TasksCleaned: tasksCleaned,
		DeletedBy:    deletedBy,
	})
}

func (s *AttachmentService) publishAccessed(ctx context.Context, m *model.Attachment, accessedBy string) {
	cfg := configs.GetConfig().Events
	s.publish(ctx, queue.TopicAttachmentAccessed, cfg.Enabled && cfg.Attachment.Accessed, queue.AttachmentAccessedPayload{
		Attachment: attachmentRef(m),
		AccessedBy: accessedBy,
	})
}

func (s *AttachmentService) publishRejected(ctx context.Context, originalName, mimeType string, size int64, reason string) {
	cfg := configs.GetConfig().Events
	s.publish(ctx, queue.TopicAttachmentRejected, cfg.Enabled, queue.AttachmentRejectedPayload{
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		Reason:       reason,
	})
}
