package types

import "time"

// CreateTaskRequest 创建任务请求.
type CreateTaskRequest struct {
	ProjectID   string     `json:"projectId"   rule:"required,entity_id"`
	Title       string     `json:"title"       rule:"required,max=512"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	// Attachments 前端上传组件收集到的已上传附件 id
	Attachments []string `json:"attachments,omitempty"`
}

// UpdateTaskRequest 更新任务请求，零值字段不更新.
type UpdateTaskRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// TaskResponse 任务响应.
type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
