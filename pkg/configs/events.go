package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled    bool                   `mapstructure:"enabled"` // 总开关
	Attachment AttachmentEventsConfig `mapstructure:"attachment"`
}

// AttachmentEventsConfig 针对附件领域的事件开关。
type AttachmentEventsConfig struct {
	Stored   bool `mapstructure:"stored"`
	Deleted  bool `mapstructure:"deleted"`
	Linked   bool `mapstructure:"linked"`
	Accessed bool `mapstructure:"accessed"`
	Archived bool `mapstructure:"archived"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 附件领域的事件：默认仅开启最小必要集，避免噪声过大
	v.SetDefault("events.attachment.stored", true)
	v.SetDefault("events.attachment.deleted", true)
	v.SetDefault("events.attachment.linked", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.attachment.accessed", false) // 访问事件量可能很大，默认关闭
	v.SetDefault("events.attachment.archived", false)
}
