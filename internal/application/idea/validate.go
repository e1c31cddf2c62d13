package idea

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"idea-relay/internal/domain/entity"
	apperrors "idea-relay/pkg/errors"
)

var (
	stringKeys = []string{"name", "pitch"}
	listKeys   = []string{"features", "challenges", "outcomes"}
)

// DecodeIdea 解析去掉代码块后的模型输出并校验结构。
//
// 失败时返回两类错误：
//   - CodeUpstreamMalformedOutput：不是合法 JSON，或顶层不是对象
//   - CodeSchemaMismatch：合法 JSON 但缺少键或类型不符
func DecodeIdea(text string) (*entity.IdeaRecord, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUpstreamMalformedOutput, "completion output is not valid JSON")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUpstreamMalformedOutput, "completion output is not a JSON object").
			WithDetail(fmt.Sprintf("top-level value is %s", jsonKind(v)))
	}

	if problems := shapeProblems(obj); len(problems) > 0 {
		return nil, apperrors.New(apperrors.CodeSchemaMismatch, "completion JSON does not match the idea shape").
			WithDetail(strings.Join(problems, "; "))
	}

	stack := obj["stack"].(map[string]any)
	return &entity.IdeaRecord{
		Name:       obj["name"].(string),
		Pitch:      obj["pitch"].(string),
		Features:   toStrings(obj["features"]),
		Challenges: toStrings(obj["challenges"]),
		Outcomes:   toStrings(obj["outcomes"]),
		Stack: entity.TechStack{
			Frontend:  stack["frontend"].(string),
			Backend:   stack["backend"].(string),
			Database:  stack["DB"].(string),
			APIs:      stack["APIs"].(string),
			Libraries: stack["libraries"].(string),
		},
	}, nil
}

// shapeProblems 列出全部结构问题（按键的固定顺序）
func shapeProblems(obj map[string]any) []string {
	return lo.FlatMap(entity.IdeaKeys, func(key string, _ int) []string {
		val, ok := obj[key]
		if !ok {
			return []string{fmt.Sprintf("missing key %q", key)}
		}
		switch {
		case lo.Contains(stringKeys, key):
			if _, ok := val.(string); !ok {
				return []string{fmt.Sprintf("%q must be a string, got %s", key, jsonKind(val))}
			}
		case lo.Contains(listKeys, key):
			return listProblems(key, val)
		case key == "stack":
			return stackProblems(val)
		}
		return nil
	})
}

func listProblems(key string, val any) []string {
	items, ok := val.([]any)
	if !ok {
		return []string{fmt.Sprintf("%q must be an array of strings, got %s", key, jsonKind(val))}
	}
	return lo.FilterMap(items, func(item any, i int) (string, bool) {
		if _, ok := item.(string); ok {
			return "", false
		}
		return fmt.Sprintf("%q[%d] must be a string, got %s", key, i, jsonKind(item)), true
	})
}

func stackProblems(val any) []string {
	stack, ok := val.(map[string]any)
	if !ok {
		return []string{fmt.Sprintf("\"stack\" must be an object, got %s", jsonKind(val))}
	}
	return lo.FilterMap(entity.StackKeys, func(key string, _ int) (string, bool) {
		v, ok := stack[key]
		if !ok {
			return fmt.Sprintf("missing key \"stack.%s\"", key), true
		}
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("\"stack.%s\" must be a string, got %s", key, jsonKind(v)), true
		}
		return "", false
	})
}

func toStrings(v any) []string {
	return lo.Map(v.([]any), func(item any, _ int) string { return item.(string) })
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
