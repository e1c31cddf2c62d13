// Package ideatest 提供测试用的 ChatModel 与工厂替身
package ideatest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel 返回预置内容的 ChatModel，并记录每次调用的消息与选项
type ChatModel struct {
	mu      sync.Mutex
	content string
	err     error
	calls   int
	msgs    []*schema.Message
	opts    *model.Options
}

// Reply 创建总是返回 content 的 ChatModel
func Reply(content string) *ChatModel {
	return &ChatModel{content: content}
}

// Fail 创建总是返回 err 的 ChatModel
func Fail(err error) *ChatModel {
	return &ChatModel{err: err}
}

// Generate 实现 model.BaseChatModel
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.msgs = input
	m.opts = model.GetCommonOptions(&model.Options{}, opts...)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.content, nil), nil
}

// Stream 实现 model.BaseChatModel，不支持流式
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

// Calls 返回 Generate 调用次数
func (m *ChatModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Messages 返回最近一次调用的输入消息
func (m *ChatModel) Messages() []*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msgs
}

// Options 返回最近一次调用的通用选项
func (m *ChatModel) Options() *model.Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts
}

// Factory 固定返回同一个 ChatModel，或固定返回错误
type Factory struct {
	Model model.BaseChatModel
	Err   error
}

// Get 实现 idea.ChatModelFactory
func (f *Factory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Model, nil
}
