package model

import (
	"time"

	"gorm.io/gorm"
)

// Attendance 考勤记录模型。现场打卡照片作为附件上传后，
// 由前端表单把附件 id 一并提交到这里.
type Attendance struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;index"      json:"project_id"`
	WorkerID  string    `gorm:"size:255;index"     json:"worker_id"`
	Date      time.Time `gorm:"index"              json:"date"`
	Status    string    `gorm:"size:32"            json:"status"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	// AttachmentsJSON 附件 id 列表（JSON 文本），通常是打卡照片
	AttachmentsJSON string         `gorm:"type:text" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Attachments 返回附件 id 列表.
func (a *Attendance) Attachments() ([]string, error) {
	return decodeIDList(a.AttachmentsJSON)
}

// SetAttachments 覆盖附件 id 列表.
func (a *Attendance) SetAttachments(ids []string) error {
	raw, err := encodeIDList(ids)
	if err != nil {
		return err
	}

	a.AttachmentsJSON = raw

	return nil
}
