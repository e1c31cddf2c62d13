// Package entity 定义领域实体
package entity

// IdeaRecord 一次生成得到的项目创意
// JSON 键与模型输出约定保持一致，不做翻译
type IdeaRecord struct {
	Name       string    `json:"name"`
	Pitch      string    `json:"pitch"`
	Features   []string  `json:"features"`
	Stack      TechStack `json:"stack"`
	Challenges []string  `json:"challenges"`
	Outcomes   []string  `json:"outcomes"`
}

// TechStack 推荐技术栈，五个字段均必须存在（允许为空字符串）
type TechStack struct {
	Frontend  string `json:"frontend"`
	Backend   string `json:"backend"`
	Database  string `json:"DB"`
	APIs      string `json:"APIs"`
	Libraries string `json:"libraries"`
}

// StackEntry 技术栈展示条目
type StackEntry struct {
	Label string
	Value string
}

// Entries 按固定顺序返回技术栈条目：frontend, backend, database, APIs, libraries
func (s TechStack) Entries() []StackEntry {
	return []StackEntry{
		{Label: "Frontend", Value: s.Frontend},
		{Label: "Backend", Value: s.Backend},
		{Label: "Database", Value: s.Database},
		{Label: "APIs", Value: s.APIs},
		{Label: "Libraries", Value: s.Libraries},
	}
}

// IdeaKeys 创意记录的顶层键
var IdeaKeys = []string{"name", "pitch", "features", "stack", "challenges", "outcomes"}

// StackKeys 技术栈对象的键
var StackKeys = []string{"frontend", "backend", "DB", "APIs", "libraries"}
