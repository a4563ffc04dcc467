package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/internal/model"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/metrics"
)

// Delete 删除附件，并把 id 从所有任务的附件列表中拉出.
// Issue/Attendance 的引用不在这里清理，由引用审计任务定期上报悬空项.
func (s *AttachmentService) Delete(ctx context.Context, id, actor string) error {
	if err := validateID(id); err != nil {
		return err
	}

	// 先确认存在，缺失时返回 404 而不是静默成功
	var att model.Attachment
	if err := s.dbClient.WithContext(ctx).Select(metadataColumns).
		First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("load attachment %s: %w", id, err)
	}

	cleaned := s.pullFromTasks(ctx, id)

	if err := s.dbClient.WithContext(ctx).Delete(&model.Attachment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete attachment %s: %w", id, err)
	}

	metrics.DeleteCounter.Inc()
	s.publishDeleted(ctx, &att, cleaned, actor)

	nlog.Logger().Info().
		Str("id", id).
		Str("deleted_by", actor).
		Int("tasks_cleaned", cleaned).
		Msg("attachment deleted")

	return nil
}

// pullFromTasks 扫描附件列表包含该 id 的任务并逐个移除.
// 清理失败只记日志，不阻止删除本身.
func (s *AttachmentService) pullFromTasks(ctx context.Context, id string) int {
	var tasks []model.Task
	if err := s.dbClient.WithContext(ctx).
		Where("attachments_json LIKE ?", "%\""+id+"\"%").
		Find(&tasks).Error; err != nil {
		nlog.Logger().Warn().Err(err).Str("attachment_id", id).Msg("scan task references failed")

		return 0
	}

	cleaned := 0

	for i := range tasks {
		task := &tasks[i]

		removed, err := task.RemoveAttachment(id)
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("task_id", task.ID).Msg("decode task attachments failed")
			continue
		}

		if !removed {
			continue
		}

		if err := s.dbClient.WithContext(ctx).Model(task).
			Update("attachments_json", task.AttachmentsJSON).Error; err != nil {
			nlog.Logger().Warn().Err(err).Str("task_id", task.ID).Msg("remove attachment reference failed")
			continue
		}

		cleaned++
	}

	return cleaned
}
