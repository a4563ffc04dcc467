package model

import (
	"time"
)

// Attachment 附件模型：元数据与二进制内容一并落库（不依赖独立的对象存储）.
type Attachment struct {
	// ID 为不透明的 UUID，是对外唯一的查找键
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// FileName 服务端生成的唯一存储名（时间戳+随机后缀+原始文件名），仅内部使用
	FileName string `gorm:"size:512;index" json:"filename"`
	// OriginalName 用户上传时的原始文件名，用于展示和下载
	OriginalName string `gorm:"size:512" json:"original_name"`
	MimeType     string `gorm:"size:255;index" json:"mimetype"`
	Size         int64  `gorm:"index"          json:"size"`
	// Data 二进制负载，元数据查询时必须排除该列
	Data []byte `json:"-"`
	// 可选的归属提示：三者互不排斥，也都可以为空（如考勤照片上传）
	TaskID    *string `gorm:"size:36;index" json:"task_id,omitempty"`
	ProjectID *string `gorm:"size:36;index" json:"project_id,omitempty"`
	IssueID   *string `gorm:"size:36;index" json:"issue_id,omitempty"`
	// UploadedBy 上传者标识；匿名上传时为一次性合成身份
	UploadedBy string    `gorm:"size:255;index" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// 附件创建后除删除外不可变，因此没有 UpdatedAt/DeletedAt.
