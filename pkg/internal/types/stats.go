package types

// StatsAttachmentsSummary 附件总体统计.
type StatsAttachmentsSummary struct {
	TotalFiles int   `json:"total_files"`
	TotalSize  int64 `json:"total_size"`
	// LinkedFiles 至少带有一个归属提示（task/project/issue）的附件数
	LinkedFiles int `json:"linked_files"`
	// OrphanFiles 无任何归属提示的附件数（如考勤照片）
	OrphanFiles int `json:"orphan_files"`
}

// StatsTypeItem 按 MIME 类型聚合.
type StatsTypeItem struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

// StatsProjectItem 按项目聚合.
type StatsProjectItem struct {
	ProjectID string `json:"project_id"`
	Count     int    `json:"count"`
	Size      int64  `json:"size"`
}

// StatsResponse 统计响应.
type StatsResponse struct {
	Summary   StatsAttachmentsSummary `json:"summary"`
	ByType    []StatsTypeItem         `json:"by_type"`
	ByProject []StatsProjectItem      `json:"by_project"`
}
