// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/storage"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每天 03:00 清理超过保留期的孤儿附件
//   - 每天 04:30 审计 Issue/Attendance 的悬空附件引用
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	// 每天 03:00 清理孤儿附件
	_ = sched.AddCron(JobOrphanSweep, CronOrphanSweep, func(ctx context.Context) {
		runOrphanSweep(ctx)
	}, baseCtx)

	// 每天 04:30 审计悬空引用
	_ = sched.AddCron(JobRefAudit, CronRefAudit, func(ctx context.Context) {
		runRefAudit(ctx)
	}, baseCtx)

	return nil
}

// runOrphanSweep 清理无任何归属提示且超过保留期的附件。
// 附件删除不清理 Issue/Attendance 引用，这里只处理真正无主的记录。
func runOrphanSweep(ctx context.Context) {
	l := log.Component("jobs").With().Str("job", JobOrphanSweep).Logger()

	svc := service.NewSweepService(ctx)

	n, err := svc.SweepOrphans(ctx)
	if err != nil {
		l.Error().Err(err).Msg("orphan sweep failed")
		return
	}

	if n > 0 {
		l.Info().Int("swept", n).Msg("orphan sweep done")
	}
}

// runRefAudit 上报悬空引用，只记录不修复。
func runRefAudit(ctx context.Context) {
	l := log.Component("jobs").With().Str("job", JobRefAudit).Logger()

	svc := service.NewSweepService(ctx)

	n, err := svc.AuditDanglingRefs(ctx)
	if err != nil {
		l.Error().Err(err).Msg("ref audit failed")
		return
	}

	l.Info().Int("dangling", n).Msg("ref audit done")
}
