package types

import "time"

// CreateIssueRequest 创建问题请求.
type CreateIssueRequest struct {
	ProjectID   string  `json:"projectId" rule:"required,entity_id"`
	TaskID      *string `json:"taskId,omitempty"`
	Title       string  `json:"title"     rule:"required,max=512"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Status      string  `json:"status"`
	Attachments []string `json:"attachments,omitempty"`
}

// UpdateIssueRequest 更新问题请求，零值字段不更新.
type UpdateIssueRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Status      string   `json:"status,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// IssueResponse 问题响应.
type IssueResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	TaskID      *string   `json:"taskId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	ReportedBy  string    `json:"reportedBy"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
