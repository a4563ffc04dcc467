package configs

import (
	"slices"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxUploadSize 单文件大小上限：10 MiB.
	DefaultMaxUploadSize = 10 * 1024 * 1024
	// DefaultMaxBatchFiles 批量上传单次请求的文件数上限.
	DefaultMaxBatchFiles = 10
	// DefaultOrphanSweepAfterDays 孤儿附件清理阈值（天）.
	DefaultOrphanSweepAfterDays = 30
)

// defaultAllowedTypes 允许的 MIME 类型：图片、PDF、Word/Excel、纯文本、压缩包.
// 客户端预校验通过 /files/rules 拿到同一份列表.
var defaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
	"application/zip",
	"application/x-rar-compressed",
}

// UploadConfig 附件上传校验配置.
type UploadConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes" rule:"min=1"`
	// MaxBatchFiles 批量上传单次请求的文件数上限
	MaxBatchFiles int `mapstructure:"max_batch_files" rule:"min=1"`
	// AllowedTypes MIME 白名单，整单拒绝不在列表内的类型
	AllowedTypes []string `mapstructure:"allowed_types"`
	// OrphanSweepAfterDays 无任何归属提示的附件超过该天数后由定时任务清理
	OrphanSweepAfterDays int `mapstructure:"orphan_sweep_after_days" rule:"min=1"`
}

// TypeAllowed 判断 MIME 类型是否在白名单内.
func (c *UploadConfig) TypeAllowed(mimeType string) bool {
	return slices.Contains(c.AllowedTypes, mimeType)
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_size_bytes", DefaultMaxUploadSize)
	v.SetDefault("upload.max_batch_files", DefaultMaxBatchFiles)
	v.SetDefault("upload.allowed_types", defaultAllowedTypes)
	v.SetDefault("upload.orphan_sweep_after_days", DefaultOrphanSweepAfterDays)
}
