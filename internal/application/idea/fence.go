package idea

import "strings"

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// StripFence 去掉模型输出外层的 ```json 代码块标记。
// 只处理字面量前缀 "```json" 与后缀 "```"，其余内容保持原样。
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, fenceOpen)
	s = strings.TrimSuffix(s, fenceClose)
	return strings.TrimSpace(s)
}
