package types

import "time"

// CreateProjectRequest 创建项目请求.
type CreateProjectRequest struct {
	Name      string     `json:"name" rule:"required,max=512"`
	Code      string     `json:"code" rule:"max=128"`
	Location  string     `json:"location"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// UpdateProjectRequest 更新项目请求，零值字段不更新.
type UpdateProjectRequest struct {
	Name     string     `json:"name,omitempty"`
	Code     string     `json:"code,omitempty"`
	Location string     `json:"location,omitempty"`
	Status   string     `json:"status,omitempty"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

// ProjectResponse 项目响应.
type ProjectResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Location  string     `json:"location"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
