package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
)

// SweepService 后台维护任务：清理孤儿附件、审计悬空引用.
// 孤儿产生于两条路径：上传时写错归属 id 导致关联被跳过，
// 以及附件删除时不清理 Issue/Attendance 引用的既有不对称.
type SweepService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

// NewSweepService 从 context 获取依赖实例.
func NewSweepService(c context.Context) *SweepService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &SweepService{
		dbClient: dbc,
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// SweepOrphans 删除超过保留期、无任何归属提示且没有任务引用的附件.
// 返回删除数量.
func (s *SweepService) SweepOrphans(ctx context.Context) (int, error) {
	cfg := configs.GetConfig().Upload
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.OrphanSweepAfterDays)

	var candidates []model.Attachment
	if err := s.dbClient.WithContext(ctx).Select(metadataColumns).
		Where("task_id IS NULL AND project_id IS NULL AND issue_id IS NULL").
		Where("created_at < ?", cutoff).
		Find(&candidates).Error; err != nil {
		return 0, fmt.Errorf("scan orphan candidates: %w", err)
	}

	swept := 0

	for i := range candidates {
		att := &candidates[i]

		// 任务附件列表里仍被引用的不算孤儿（如创建任务时手工带入的 id）
		referenced, err := s.referencedByTask(ctx, att.ID)
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("id", att.ID).Msg("reference check failed, skip")
			continue
		}

		if referenced {
			continue
		}

		if err := s.dbClient.WithContext(ctx).Delete(&model.Attachment{}, "id = ?", att.ID).Error; err != nil {
			nlog.Logger().Warn().Err(err).Str("id", att.ID).Msg("sweep orphan failed")
			continue
		}

		swept++

		s.publishOrphanSwept(ctx, att, int(time.Since(att.CreatedAt).Hours()/24))
	}

	if swept > 0 {
		nlog.Logger().Info().Int("swept", swept).Msg("orphan attachments swept")
	}

	return swept, nil
}

func (s *SweepService) referencedByTask(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.dbClient.WithContext(ctx).Model(&model.Task{}).
		Where("attachments_json LIKE ?", "%\""+id+"\"%").
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// AuditDanglingRefs 扫描 Issue/Attendance 的附件列表，上报指向
// 已删除附件的悬空引用.只上报不修复，修复动作留给人工或后续迁移.
// 返回发现的悬空引用数.
func (s *SweepService) AuditDanglingRefs(ctx context.Context) (int, error) {
	dangling := 0

	var issues []model.Issue
	if err := s.dbClient.WithContext(ctx).Find(&issues).Error; err != nil {
		return 0, fmt.Errorf("scan issues: %w", err)
	}

	for i := range issues {
		ids, err := issues[i].Attachments()
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("issue_id", issues[i].ID).Msg("decode issue attachments failed")
			continue
		}

		dangling += s.reportMissing(ctx, "issue", issues[i].ID, ids)
	}

	var recs []model.Attendance
	if err := s.dbClient.WithContext(ctx).Find(&recs).Error; err != nil {
		return dangling, fmt.Errorf("scan attendance: %w", err)
	}

	for i := range recs {
		ids, err := recs[i].Attachments()
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("attendance_id", recs[i].ID).Msg("decode attendance attachments failed")
			continue
		}

		dangling += s.reportMissing(ctx, "attendance", recs[i].ID, ids)
	}

	if dangling > 0 {
		nlog.Logger().Warn().Int("dangling", dangling).Msg("dangling attachment references found")
	}

	return dangling, nil
}

func (s *SweepService) reportMissing(ctx context.Context, entityType, entityID string, ids []string) int {
	missing := 0

	for _, id := range ids {
		err := s.dbClient.WithContext(ctx).Select("id").
			First(&model.Attachment{}, "id = ?", id).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			nlog.Logger().Warn().Err(err).Str("attachment_id", id).Msg("existence check failed")
			continue
		}

		missing++

		nlog.Logger().Warn().
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("attachment_id", id).
			Msg("dangling attachment reference")

		s.publishDanglingRef(ctx, entityType, entityID, id)
	}

	return missing
}

func (s *SweepService) publishOrphanSwept(ctx context.Context, att *model.Attachment, ageDays int) {
	if s.mqClient == nil || !configs.GetConfig().Events.Enabled {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicAuditOrphanSwept, queue.OrphanSweptPayload{
		Attachment: attachmentRef(att),
		AgeDays:    ageDays,
	}, queue.WithProducer(eventProducer))
	if err != nil {
		return
	}

	if err := s.mqClient.Publish(ctx, queue.TopicAuditOrphanSwept, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish orphan swept event failed")
	}
}

func (s *SweepService) publishDanglingRef(ctx context.Context, entityType, entityID, attachmentID string) {
	if s.mqClient == nil || !configs.GetConfig().Events.Enabled {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicAuditDanglingRef, queue.DanglingRefPayload{
		EntityType:   entityType,
		EntityID:     entityID,
		AttachmentID: attachmentID,
	}, queue.WithProducer(eventProducer))
	if err != nil {
		return
	}

	if err := s.mqClient.Publish(ctx, queue.TopicAuditDanglingRef, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish dangling ref event failed")
	}
}
