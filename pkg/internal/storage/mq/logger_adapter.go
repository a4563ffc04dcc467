// Package mq 的 zerolog 适配层：把 Watermill 的日志接口桥接到应用统一的 zerolog 日志器，
// 事件总线内部日志与业务日志走同一条输出链路.
package mq

import (
	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// zerologAdapter 将 zerolog 适配为 watermill.LoggerAdapter.
// 所有日志固定携带 component=mq 字段，便于按组件过滤事件总线日志.
type zerologAdapter struct {
	l *zerolog.Logger
}

// newZerologAdapter 包装一个 zerolog 日志器并打上组件标记.
func newZerologAdapter(base *zerolog.Logger) *zerologAdapter {
	l := base.With().Str("component", "mq").Logger()
	return &zerologAdapter{l: &l}
}

func (z *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	z.emit(z.l.Error().Err(err), msg, fields)
}

func (z *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	z.emit(z.l.Info(), msg, fields)
}

func (z *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	z.emit(z.l.Debug(), msg, fields)
}

func (z *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	z.emit(z.l.Trace(), msg, fields)
}

func (z *zerologAdapter) emit(ev *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}

	ev.Msg(msg)
}

func (z *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	l := z.l.With()

	for k, v := range fields {
		l = l.Interface(k, v)
	}

	logger := l.Logger()

	return &zerologAdapter{l: &logger}
}

// String 实现 fmt.Stringer.
func (z *zerologAdapter) String() string { return "zerolog-watermill适配器" }
