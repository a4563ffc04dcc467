package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/metrics"
)

// metadataColumns 元数据查询的列集合，刻意排除 data，
// 避免列表/info 响应把二进制大对象拖出数据库.
var metadataColumns = []string{
	"id", "file_name", "original_name", "mime_type", "size",
	"task_id", "project_id", "issue_id", "uploaded_by", "created_at",
}

// GetByID 按 id 加载完整附件（含二进制内容）.
// id 语法错误在查询前拦截，返回校验错误而不是 404.
func (s *AttachmentService) GetByID(ctx context.Context, id, actor string) (*model.Attachment, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var att model.Attachment
	if err := s.dbClient.WithContext(ctx).First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load attachment %s: %w", id, err)
	}

	metrics.DownloadCounter.Inc()
	s.publishAccessed(ctx, &att, actor)

	return &att, nil
}

// GetMetadataByID 按 id 加载附件元数据，不取二进制内容.
func (s *AttachmentService) GetMetadataByID(ctx context.Context, id string) (*types.AttachmentMetadata, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var att model.Attachment
	if err := s.dbClient.WithContext(ctx).Select(metadataColumns).
		First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load attachment metadata %s: %w", id, err)
	}

	meta := metadataOf(&att)

	return &meta, nil
}

// ListByTaskID 列出 task_id 匹配的附件元数据.
func (s *AttachmentService) ListByTaskID(ctx context.Context, taskID string) (*types.ListAttachmentsResponse, error) {
	if err := validateID(taskID); err != nil {
		return nil, err
	}

	var atts []model.Attachment
	if err := s.dbClient.WithContext(ctx).Select(metadataColumns).
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&atts).Error; err != nil {
		return nil, fmt.Errorf("list attachments for task %s: %w", taskID, err)
	}

	files := make([]types.AttachmentMetadata, 0, len(atts))
	for i := range atts {
		files = append(files, metadataOf(&atts[i]))
	}

	return &types.ListAttachmentsResponse{
		Files: files,
		Total: len(files),
	}, nil
}
