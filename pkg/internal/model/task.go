package model

import (
	"time"

	"gorm.io/gorm"
)

// Task 任务模型。attachments 以 JSON 文本存储附件 id 列表，保持实现简单；
// 未来如需按附件反查可拆关联表.
type Task struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	ProjectID   string `gorm:"size:36;index"      json:"project_id"`
	Title       string `gorm:"size:512"           json:"title"`
	Description string `gorm:"type:text"          json:"description"`
	Status      string `gorm:"size:64;index"      json:"status"`
	AssignedTo  string `gorm:"size:255;index"     json:"assigned_to"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	// AttachmentsJSON 附件 id 列表（JSON 文本）
	AttachmentsJSON string         `gorm:"type:text" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attachments 返回附件 id 列表.
func (t *Task) Attachments() ([]string, error) {
	return decodeIDList(t.AttachmentsJSON)
}

// SetAttachments 覆盖附件 id 列表.
func (t *Task) SetAttachments(ids []string) error {
	raw, err := encodeIDList(ids)
	if err != nil {
		return err
	}

	t.AttachmentsJSON = raw

	return nil
}

// AppendAttachment 追加一个附件 id.
func (t *Task) AppendAttachment(id string) error {
	ids, err := t.Attachments()
	if err != nil {
		return err
	}

	return t.SetAttachments(append(ids, id))
}

// RemoveAttachment 移除附件 id，返回是否发生了变更.
func (t *Task) RemoveAttachment(id string) (bool, error) {
	ids, err := t.Attachments()
	if err != nil {
		return false, err
	}

	out, removed := removeID(ids, id)
	if !removed {
		return false, nil
	}

	return true, t.SetAttachments(out)
}
