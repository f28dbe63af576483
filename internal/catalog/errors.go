package catalog

import (
	"fmt"
	"strings"
)

// SelectionError 表示调用方给出的目录取值缺失或非法，同时携带全部
// 合法候选，便于 CLI 直接提示用户可选项。Value 为空表示"未提供"。
type SelectionError struct {
	Kind    string
	Value   string
	Options []string
}

func (e *SelectionError) Error() string {
	options := strings.Join(e.Options, ", ")
	if e.Value == "" {
		return fmt.Sprintf("missing %s, available: %s", e.Kind, options)
	}
	return fmt.Sprintf("invalid %s %q, available: %s", e.Kind, e.Value, options)
}

// newSelectionError 构建 SelectionError，统一候选列表的排序无关语义。
func newSelectionError(kind, value string, options []string) error {
	return &SelectionError{Kind: kind, Value: value, Options: options}
}
