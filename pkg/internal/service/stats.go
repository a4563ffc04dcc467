package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
)

// StatsService 附件统计：总量、按类型与按项目的聚合.
// 所有聚合都在数据库侧完成，绝不把二进制列拖进内存.
type StatsService struct {
	dbClient *db.Client
}

// NewStatsService 从 context 获取依赖实例.
func NewStatsService(c context.Context) *StatsService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &StatsService{dbClient: dbc}
}

type aggRow struct {
	// key 在 MySQL 里是保留字，列别名用 agg_key 规避
	Key   string `gorm:"column:agg_key"`
	Count int64
	Size  int64
}

// AttachmentStats 汇总附件统计，四路聚合并发执行.
func (s *StatsService) AttachmentStats(ctx context.Context) (*types.StatsResponse, error) {
	var (
		total     aggRow
		linked    int64
		byType    []aggRow
		byProject []aggRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.dbClient.WithContext(gctx).Model(&model.Attachment{}).
			Select("count(*) as count, coalesce(sum(size), 0) as size").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("aggregate attachments: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.dbClient.WithContext(gctx).Model(&model.Attachment{}).
			Where("task_id IS NOT NULL OR project_id IS NOT NULL OR issue_id IS NOT NULL").
			Count(&linked).Error; err != nil {
			return fmt.Errorf("count linked attachments: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.dbClient.WithContext(gctx).Model(&model.Attachment{}).
			Select("mime_type as agg_key, count(*) as count, coalesce(sum(size), 0) as size").
			Group("mime_type").
			Order("count desc").
			Scan(&byType).Error; err != nil {
			return fmt.Errorf("aggregate by type: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.dbClient.WithContext(gctx).Model(&model.Attachment{}).
			Select("project_id as agg_key, count(*) as count, coalesce(sum(size), 0) as size").
			Where("project_id IS NOT NULL").
			Group("project_id").
			Order("count desc").
			Scan(&byProject).Error; err != nil {
			return fmt.Errorf("aggregate by project: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &types.StatsResponse{
		Summary: types.StatsAttachmentsSummary{
			TotalFiles:  int(total.Count),
			TotalSize:   total.Size,
			LinkedFiles: int(linked),
			OrphanFiles: int(total.Count - linked),
		},
		ByType:    make([]types.StatsTypeItem, 0, len(byType)),
		ByProject: make([]types.StatsProjectItem, 0, len(byProject)),
	}

	for _, row := range byType {
		resp.ByType = append(resp.ByType, types.StatsTypeItem{
			Type:  row.Key,
			Count: int(row.Count),
			Size:  row.Size,
		})
	}

	for _, row := range byProject {
		resp.ByProject = append(resp.ByProject, types.StatsProjectItem{
			ProjectID: row.Key,
			Count:     int(row.Count),
			Size:      row.Size,
		})
	}

	return resp, nil
}
