package types

import "time"

// AttachmentMetadata 附件元数据（不含二进制内容）.
type AttachmentMetadata struct {
	ID           string    `json:"id"`
	FileName     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	TaskID       *string   `json:"taskId,omitempty"`
	ProjectID    *string   `json:"projectId,omitempty"`
	IssueID      *string   `json:"issueId,omitempty"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadHints 上传请求附带的归属提示，三者都可选.
// 字段名保持前端的 camelCase 命名.
type UploadHints struct {
	TaskID    string `form:"taskId"    json:"taskId,omitempty"`
	ProjectID string `form:"projectId" json:"projectId,omitempty"`
	IssueID   string `form:"issueId"   json:"issueId,omitempty"`
}

// UploadResult 单个文件的上传结果.
type UploadResult struct {
	OriginalName string              `json:"originalName"`
	Success      bool                `json:"success"`
	Error        string              `json:"error,omitempty"`
	Metadata     *AttachmentMetadata `json:"metadata,omitempty"`
}

// UploadBatchResponse 批量上传响应：逐文件上报结果，部分失败不掩盖已成功的文件.
type UploadBatchResponse struct {
	Results    []UploadResult `json:"results"`
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
}

// UploadRules 客户端预校验规则，与服务端校验保持同一份配置.
type UploadRules struct {
	AllowedTypes []string `json:"allowedTypes"`
	MaxSizeBytes int64    `json:"maxSizeBytes"`
	MaxBatchSize int      `json:"maxBatchSize"`
}

// ListAttachmentsResponse 附件元数据列表响应.
type ListAttachmentsResponse struct {
	Files []AttachmentMetadata `json:"files"`
	Total int                  `json:"total"`
}
