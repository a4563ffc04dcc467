package types

import "time"

// CreateAttendanceRequest 创建考勤记录请求.
type CreateAttendanceRequest struct {
	ProjectID string     `json:"projectId" rule:"required,entity_id"`
	WorkerID  string     `json:"workerId"  rule:"required,max=255"`
	Date      time.Time  `json:"date"      rule:"required"`
	Status    string     `json:"status"`
	CheckIn   *time.Time `json:"checkIn,omitempty"`
	CheckOut  *time.Time `json:"checkOut,omitempty"`
	// Attachments 打卡照片等附件 id
	Attachments []string `json:"attachments,omitempty"`
}

// AttendanceResponse 考勤记录响应.
type AttendanceResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	WorkerID    string     `json:"workerId"`
	Date        time.Time  `json:"date"`
	Status      string     `json:"status"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"createdAt"`
}
