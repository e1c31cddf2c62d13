package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

const (
	// MaxLevelRunes 自定义难度文本的最大长度
	MaxLevelRunes = 64
	// MaxFieldRunes technology / language 的最大长度
	MaxFieldRunes = 200
)

// Tier 难度等级
type Tier string

const (
	TierAny          Tier = "any"
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
	TierCustom       Tier = "custom"
)

// Tiers 界面上可选的难度等级（有序）
var Tiers = []Tier{TierBeginner, TierIntermediate, TierAdvanced, TierExpert}

// TierNames 返回可选难度等级名称
func TierNames() []string {
	return lo.Map(Tiers, func(t Tier, _ int) string { return string(t) })
}

// Level 难度：固定等级之一，或携带自由文本的自定义等级
type Level struct {
	Tier Tier
	Text string
}

// ParseLevel 在边界处解析难度字段
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Level{Tier: TierAny}, nil
	}
	if t, ok := lo.Find(Tiers, func(t Tier) bool { return strings.EqualFold(string(t), s) }); ok {
		return Level{Tier: t}, nil
	}
	if utf8.RuneCountInString(s) > MaxLevelRunes {
		return Level{}, fmt.Errorf("level must be at most %d characters", MaxLevelRunes)
	}
	return Level{Tier: TierCustom, Text: s}, nil
}

// IsCustom 是否为自定义难度
func (l Level) IsCustom() bool {
	return l.Tier == TierCustom
}

// PromptText 插入提示词的难度文本
func (l Level) PromptText() string {
	switch l.Tier {
	case TierCustom:
		return l.Text
	case "", TierAny:
		return string(TierAny)
	default:
		return string(l.Tier)
	}
}

// GenerationRequest 生成请求，三个字段在传输层均为可选
type GenerationRequest struct {
	Technology string `json:"technology"`
	Level      string `json:"level"`
	Language   string `json:"language"`
}

// Validate 校验字段长度并解析难度
func (r GenerationRequest) Validate() (Level, error) {
	if utf8.RuneCountInString(r.Technology) > MaxFieldRunes {
		return Level{}, fmt.Errorf("technology must be at most %d characters", MaxFieldRunes)
	}
	if utf8.RuneCountInString(r.Language) > MaxFieldRunes {
		return Level{}, fmt.Errorf("language must be at most %d characters", MaxFieldRunes)
	}
	return ParseLevel(r.Level)
}
