package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound id 语法合法但没有对应记录，对外映射为 404.
var ErrNotFound = errors.New("record not found")

// ValidationError 请求内容不合法（缺文件、类型不在白名单、超出大小、id 格式错误），
// 对外映射为 400，永远不重试.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError 判断错误是否属于请求校验失败.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validateID 校验 id 语法（UUID）。语法错误在任何存储查询之前拦截，
// 避免无效查询，也让 400 与 404 的边界保持清晰.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return newValidationError("invalid id: %s", id)
	}

	return nil
}
