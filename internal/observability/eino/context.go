package eino

import (
	"context"
	"strings"
)

type ctxKey string

const (
	ctxKeyWorkflow ctxKey = "llm_workflow"
	ctxKeyProvider ctxKey = "llm_provider"
)

// WithWorkflowProvider 注入工作流与提供商名称，供回调打标签
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	if w := strings.TrimSpace(workflow); w != "" {
		ctx = context.WithValue(ctx, ctxKeyWorkflow, w)
	}
	if p := strings.TrimSpace(provider); p != "" {
		ctx = context.WithValue(ctx, ctxKeyProvider, p)
	}
	return ctx
}

// WorkflowFromContext 读取工作流名称
func WorkflowFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyWorkflow)
}

// ProviderFromContext 读取提供商名称
func ProviderFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyProvider)
}

func stringFromContext(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return "unknown"
	}
	s, ok := ctx.Value(key).(string)
	if !ok || s == "" {
		return "unknown"
	}
	return s
}
