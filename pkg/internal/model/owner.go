package model

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// decodeIDList 反序列化 attachments JSON 列表；空串视为空列表.
func decodeIDList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var ids []string
	if err := sonic.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal attachments: %w", err)
	}

	return ids, nil
}

// encodeIDList 序列化 attachments 列表；nil 编码为 [].
func encodeIDList(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}

	b, err := sonic.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal attachments: %w", err)
	}

	return string(b), nil
}

// removeID 从列表中移除指定 id，返回新列表与是否发生了变更.
func removeID(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	removed := false

	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}

		out = append(out, v)
	}

	return out, removed
}
