package model

import (
	"time"

	"gorm.io/gorm"
)

// Issue 问题/缺陷模型.
type Issue struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	ProjectID   string  `gorm:"size:36;index"      json:"project_id"`
	TaskID      *string `gorm:"size:36;index"      json:"task_id,omitempty"`
	Title       string  `gorm:"size:512"           json:"title"`
	Description string  `gorm:"type:text"          json:"description"`
	Severity    string  `gorm:"size:64;index"      json:"severity"`
	Status      string  `gorm:"size:64;index"      json:"status"`
	ReportedBy  string  `gorm:"size:255"           json:"reported_by"`
	// AttachmentsJSON 附件 id 列表（JSON 文本）。
	// 注意：附件删除时不会清理这里的引用（与 Task 不对称），由审计任务定期上报.
	AttachmentsJSON string         `gorm:"type:text" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attachments 返回附件 id 列表.
func (i *Issue) Attachments() ([]string, error) {
	return decodeIDList(i.AttachmentsJSON)
}

// SetAttachments 覆盖附件 id 列表.
func (i *Issue) SetAttachments(ids []string) error {
	raw, err := encodeIDList(ids)
	if err != nil {
		return err
	}

	i.AttachmentsJSON = raw

	return nil
}

// AppendAttachment 追加一个附件 id.
func (i *Issue) AppendAttachment(id string) error {
	ids, err := i.Attachments()
	if err != nil {
		return err
	}

	return i.SetAttachments(append(ids, id))
}
