package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/metrics"
)

// UploadItem 一次上传中的单个文件.
type UploadItem struct {
	OriginalName string
	MimeType     string
	// DeclaredSize 来自 multipart 头的声明大小，仅用于快速拒绝，实际大小以读取结果为准
	DeclaredSize int64
	Reader       io.Reader
}

// readBounded 以上限约束读取内容，超限立刻失败而不是吞下整个流.
func readBounded(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if int64(len(data)) > maxSize {
		return nil, newValidationError("file too large (max %d bytes)", maxSize)
	}

	return data, nil
}

// UploadSingle 校验并写入单个附件，再按归属提示做尽力而为的关联.
// 关联目标不存在时上传仍然成功，只记日志跳过，保证不带归属的
// 考勤照片上传不受影响；代价是写错的 taskId 会产生孤儿附件.
func (s *AttachmentService) UploadSingle(ctx context.Context, actor string,
	item UploadItem, hints *types.UploadHints,
) (*types.AttachmentMetadata, error) {
	cfg := configs.GetConfig().Upload

	if item.OriginalName == "" {
		metrics.UploadCounter.WithLabelValues("rejected").Inc()
		return nil, newValidationError("no file provided")
	}

	if err := validateUpload(&cfg, item.MimeType, item.DeclaredSize); err != nil {
		metrics.UploadCounter.WithLabelValues("rejected").Inc()
		s.publishRejected(ctx, item.OriginalName, item.MimeType, item.DeclaredSize, err.Error())

		return nil, err
	}

	data, err := readBounded(item.Reader, cfg.MaxSizeBytes)
	if err != nil {
		if IsValidationError(err) {
			metrics.UploadCounter.WithLabelValues("rejected").Inc()
			s.publishRejected(ctx, item.OriginalName, item.MimeType, item.DeclaredSize, err.Error())
		} else {
			metrics.UploadCounter.WithLabelValues("failed").Inc()
		}

		return nil, err
	}

	att := &model.Attachment{
		ID:           uuid.NewString(),
		FileName:     buildStoredName(item.OriginalName),
		OriginalName: item.OriginalName,
		MimeType:     item.MimeType,
		Size:         int64(len(data)),
		Data:         data,
		UploadedBy:   actor,
	}

	if hints != nil {
		att.TaskID = ownerPtr(hints.TaskID)
		att.ProjectID = ownerPtr(hints.ProjectID)
		att.IssueID = ownerPtr(hints.IssueID)
	}

	if err := s.dbClient.WithContext(ctx).Create(att).Error; err != nil {
		metrics.UploadCounter.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("create attachment: %w", err)
	}

	metrics.UploadCounter.WithLabelValues("stored").Inc()
	metrics.UploadBytes.Add(float64(att.Size))

	linked := s.linkOwners(ctx, att)
	if linked {
		s.publishLinked(ctx, att)
	}

	s.publishStored(ctx, att, linked)

	nlog.Logger().Info().
		Str("id", att.ID).
		Str("original_name", att.OriginalName).
		Int64("size", att.Size).
		Bool("linked", linked).
		Msg("attachment stored")

	meta := metadataOf(att)

	return &meta, nil
}

// linkOwners 将附件 id 追加到归属实体的附件列表.
// 附件写入与关联不在同一事务：两步之间崩溃会留下未关联但
// 仍可按 id 取回的附件，可接受.
func (s *AttachmentService) linkOwners(ctx context.Context, att *model.Attachment) bool {
	linked := false

	if att.TaskID != nil {
		var task model.Task
		if err := s.dbClient.WithContext(ctx).First(&task, "id = ?", *att.TaskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				nlog.Logger().Info().Str("task_id", *att.TaskID).Str("attachment_id", att.ID).
					Msg("link skipped: task not found")
			} else {
				nlog.Logger().Warn().Err(err).Str("task_id", *att.TaskID).Msg("link task lookup failed")
			}
		} else if err := task.AppendAttachment(att.ID); err != nil {
			nlog.Logger().Warn().Err(err).Str("task_id", task.ID).Msg("append attachment to task failed")
		} else if err := s.dbClient.WithContext(ctx).Model(&task).
			Update("attachments_json", task.AttachmentsJSON).Error; err != nil {
			nlog.Logger().Warn().Err(err).Str("task_id", task.ID).Msg("save task attachments failed")
		} else {
			linked = true
		}
	}

	if att.IssueID != nil {
		var issue model.Issue
		if err := s.dbClient.WithContext(ctx).First(&issue, "id = ?", *att.IssueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				nlog.Logger().Info().Str("issue_id", *att.IssueID).Str("attachment_id", att.ID).
					Msg("link skipped: issue not found")
			} else {
				nlog.Logger().Warn().Err(err).Str("issue_id", *att.IssueID).Msg("link issue lookup failed")
			}
		} else if err := issue.AppendAttachment(att.ID); err != nil {
			nlog.Logger().Warn().Err(err).Str("issue_id", issue.ID).Msg("append attachment to issue failed")
		} else if err := s.dbClient.WithContext(ctx).Model(&issue).
			Update("attachments_json", issue.AttachmentsJSON).Error; err != nil {
			nlog.Logger().Warn().Err(err).Str("issue_id", issue.ID).Msg("save issue attachments failed")
		} else {
			linked = true
		}
	}

	return linked
}

// UploadBatch 批量上传：每个文件独立校验、独立写入、独立上报结果，
// 单个文件失败不影响其余文件，也不会掩盖已成功的文件.
func (s *AttachmentService) UploadBatch(ctx context.Context, actor string,
	items []UploadItem, hints *types.UploadHints,
) (*types.UploadBatchResponse, error) {
	cfg := configs.GetConfig().Upload

	if len(items) == 0 {
		return nil, newValidationError("no files provided")
	}

	if len(items) > cfg.MaxBatchFiles {
		return nil, newValidationError("too many files: %d (max %d)", len(items), cfg.MaxBatchFiles)
	}

	resp := &types.UploadBatchResponse{
		Results: make([]types.UploadResult, 0, len(items)),
		Total:   len(items),
	}

	for _, item := range items {
		meta, err := s.UploadSingle(ctx, actor, item, hints)
		if err != nil {
			resp.Results = append(resp.Results, types.UploadResult{
				OriginalName: item.OriginalName,
				Success:      false,
				Error:        err.Error(),
			})
			resp.Failed++

			continue
		}

		resp.Results = append(resp.Results, types.UploadResult{
			OriginalName: item.OriginalName,
			Success:      true,
			Metadata:     meta,
		})
		resp.Successful++
	}

	return resp, nil
}

// Rules 返回客户端预校验规则，与服务端校验共用同一份配置.
func (s *AttachmentService) Rules() types.UploadRules {
	cfg := configs.GetConfig().Upload

	return types.UploadRules{
		AllowedTypes: cfg.AllowedTypes,
		MaxSizeBytes: cfg.MaxSizeBytes,
		MaxBatchSize: cfg.MaxBatchFiles,
	}
}
