package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishAttachmentStored 发布 sv.attachment.stored 事件。
// 用于附件写入数据库并完成实体关联后，通知下游流程（如索引、通知等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishAttachmentStored(pub message.Publisher, payload AttachmentStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicAttachmentStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicAttachmentStored, msg)
}

// ParseAttachmentStored 将 Watermill 消息解析为强类型 Envelope（AttachmentStoredPayload）。
func ParseAttachmentStored(msg *message.Message) (Message[AttachmentStoredPayload], error) {
	return ParseWatermillMessage[AttachmentStoredPayload](msg)
}

// PublishAttachmentDeleted 发布 sv.attachment.deleted 事件。
func PublishAttachmentDeleted(pub message.Publisher, payload AttachmentDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicAttachmentDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicAttachmentDeleted, msg)
}

// ParseAttachmentDeleted 将 Watermill 消息解析为强类型 Envelope（AttachmentDeletedPayload）。
func ParseAttachmentDeleted(msg *message.Message) (Message[AttachmentDeletedPayload], error) {
	return ParseWatermillMessage[AttachmentDeletedPayload](msg)
}

// PublishAttachmentLinked 发布 sv.attachment.linked 事件。
func PublishAttachmentLinked(pub message.Publisher, payload AttachmentLinkedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicAttachmentLinked, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicAttachmentLinked, msg)
}
