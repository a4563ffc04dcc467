package types

// ArchiveTaskResponse 任务附件打包导出结果：zip 已写入对象存储，
// get_url 为限时下载链接.
type ArchiveTaskResponse struct {
	TaskID    string `json:"taskId"`
	ObjectKey string `json:"objectKey"`
	GetURL    string `json:"getUrl"`
	ExpiresIn int    `json:"expiresIn"`
	FileCount int    `json:"fileCount"`
	TotalSize int64  `json:"totalSize"`
}
