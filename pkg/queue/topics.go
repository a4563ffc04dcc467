// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：sv.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：attachment(附件)、task(任务)、issue(问题)、attendance(考勤)、audit(引用审计)
// 动作：存储相关(stored/deleted)、关联相关(linked/unlinked)、访问(accessed)、归档(archived)

const (
	// 附件领域.
	TopicAttachmentStored   = "sv.attachment.stored"   // 附件写入数据库并完成关联后触发
	TopicAttachmentDeleted  = "sv.attachment.deleted"  // 附件从数据库删除（含任务引用清理结果）
	TopicAttachmentLinked   = "sv.attachment.linked"   // 附件与任务/问题/考勤建立关联
	TopicAttachmentUnlinked = "sv.attachment.unlinked" // 关联被移除（当前仅删除时发生）
	TopicAttachmentAccessed = "sv.attachment.accessed" // 附件内容被下载（用于热点统计）
	TopicAttachmentRejected = "sv.attachment.rejected" // 上传校验失败（类型或大小）

	// 归档导出领域.
	TopicArchiveRequested = "sv.archive.requested" // 请求将任务附件打包导出到对象存储
	TopicArchiveCompleted = "sv.archive.completed" // 归档包写入对象存储完成
	TopicArchiveFailed    = "sv.archive.failed"    // 归档导出失败

	// 引用审计领域.
	TopicAuditDanglingRef = "sv.audit.dangling_ref" // 审计任务发现悬空附件引用
	TopicAuditOrphanSwept = "sv.audit.orphan_swept" // 孤儿附件被清理任务删除
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 附件相关主题集合.
	AttachmentTopics = []string{
		TopicAttachmentStored, TopicAttachmentDeleted,
		TopicAttachmentLinked, TopicAttachmentUnlinked,
		TopicAttachmentAccessed, TopicAttachmentRejected,
	}

	// 归档导出相关主题集合.
	ArchiveTopics = []string{
		TopicArchiveRequested, TopicArchiveCompleted, TopicArchiveFailed,
	}

	// 引用审计相关主题集合.
	AuditTopics = []string{
		TopicAuditDanglingRef, TopicAuditOrphanSwept,
	}
)
