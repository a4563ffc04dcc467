package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 附件领域 --------------------------

// AttachmentRef 标识一条附件记录及其基础元数据.
type AttachmentRef struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	Size         int64  `json:"size,omitempty"`
	UploadedBy   string `json:"uploaded_by,omitempty"`
}

// OwnerRef 标识附件关联到的业务实体.
type OwnerRef struct {
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	IssueID   string `json:"issue_id,omitempty"`
}

// AttachmentStoredPayload 附件写入完成（含关联结果）.
type AttachmentStoredPayload struct {
	Attachment AttachmentRef `json:"attachment"`
	Owner      OwnerRef      `json:"owner,omitempty"`
	// Linked 表示写入后是否成功追加进任务附件列表.
	Linked bool `json:"linked,omitempty"`
}

// AttachmentDeletedPayload 附件被删除（含任务引用清理结果）.
type AttachmentDeletedPayload struct {
	Attachment AttachmentRef `json:"attachment"`
	// TasksCleaned 删除时从多少个任务的附件列表中移除了该 ID.
	TasksCleaned int `json:"tasks_cleaned,omitempty"`
	// DeletedBy 执行删除的用户标识.
	DeletedBy string `json:"deleted_by,omitempty"`
}

// AttachmentLinkedPayload 附件与业务实体建立关联.
type AttachmentLinkedPayload struct {
	Attachment AttachmentRef `json:"attachment"`
	Owner      OwnerRef      `json:"owner"`
}

// AttachmentAccessedPayload 附件内容被下载.
type AttachmentAccessedPayload struct {
	Attachment AttachmentRef `json:"attachment"`
	AccessedBy string        `json:"accessed_by,omitempty"`
}

// AttachmentRejectedPayload 上传校验失败.
type AttachmentRejectedPayload struct {
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Reason       string `json:"reason"`
}

// -------------------------- 归档导出领域 --------------------------

// ArchiveRequestedPayload 请求将任务附件归档到对象存储.
type ArchiveRequestedPayload struct {
	TaskID      string `json:"task_id"`
	RequestedBy string `json:"requested_by,omitempty"`
}

// ArchiveCompletedPayload 归档包写入对象存储完成.
type ArchiveCompletedPayload struct {
	TaskID    string `json:"task_id"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	FileCount int    `json:"file_count"`
	TotalSize int64  `json:"total_size"`
}

// ArchiveFailedPayload 归档导出失败.
type ArchiveFailedPayload struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

// -------------------------- 引用审计领域 --------------------------

// DanglingRefPayload 审计任务发现的悬空引用：实体仍引用一个已不存在的附件.
type DanglingRefPayload struct {
	EntityType   string `json:"entity_type"` // issue / attendance
	EntityID     string `json:"entity_id"`
	AttachmentID string `json:"attachment_id"`
}

// OrphanSweptPayload 孤儿附件被清理.
type OrphanSweptPayload struct {
	Attachment AttachmentRef `json:"attachment"`
	// AgeDays 被清理时的孤儿时长（天）.
	AgeDays int `json:"age_days,omitempty"`
}
