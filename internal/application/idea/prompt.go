package idea

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"idea-relay/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

const ideaUserTemplate = "templates/idea_v1.user.txt"

var (
	templateOnce sync.Once
	templateTpl  einoprompt.ChatTemplate
	templateErr  error
)

// ideaChatTemplate 惰性加载内嵌模板；只有一条 user 消息
func ideaChatTemplate() (einoprompt.ChatTemplate, error) {
	templateOnce.Do(func() {
		b, err := templatesFS.ReadFile(ideaUserTemplate)
		if err != nil {
			templateErr = fmt.Errorf("read prompt template: %w", err)
			return
		}
		templateTpl = einoprompt.FromMessages(
			schema.GoTemplate,
			schema.UserMessage(strings.TrimSpace(string(b))),
		)
	})
	return templateTpl, templateErr
}

// formatIdeaMessages 渲染提示词，字段原样插入
func formatIdeaMessages(ctx context.Context, in *generateInput) ([]*schema.Message, error) {
	tpl, err := ideaChatTemplate()
	if err != nil {
		return nil, err
	}
	return tpl.Format(ctx, promptVars(in.Technology, in.Level, in.Language))
}

func promptVars(technology string, level entity.Level, language string) map[string]any {
	return map[string]any{
		"technology": technology,
		"level":      level.PromptText(),
		"language":   language,
	}
}
