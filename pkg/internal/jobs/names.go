package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobOrphanSweep = "attachments.orphan_sweep"
	JobRefAudit    = "attachments.ref_audit"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronOrphanSweep = "0 3 * * *"
	CronRefAudit    = "30 4 * * *"
)
