// Package tui 提供创意生成的终端界面
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"idea-relay/internal/domain/entity"
	"idea-relay/pkg/logger"
)

// 表单默认值
const (
	DefaultTechnology = "React"
	DefaultLanguage   = "English"
)

// ErrFetchFailed 请求失败时展示的固定文案
const ErrFetchFailed = "Failed to fetch idea"

var errEmptyIdea = errors.New("relay returned no idea")

// IdeaClient 创意中转服务客户端
type IdeaClient interface {
	GenerateIdea(ctx context.Context, req entity.GenerationRequest) (*entity.IdeaRecord, error)
}

type focus int

const (
	focusTechnology focus = iota
	focusLevel
	focusLanguage
	focusButton
	focusSections // 之后依次是各个折叠区块
)

type section int

const (
	sectionFeatures section = iota
	sectionStack
	sectionChallenges
	sectionOutcomes
	sectionCount
)

var sectionTitles = [sectionCount]string{"Features", "Tech Stack", "Challenges", "Learning Outcomes"}

// ideaResultMsg 一次请求的结果，token 用于丢弃过期结果
type ideaResultMsg struct {
	token string
	idea  *entity.IdeaRecord
	err   error
}

// Model 界面状态
type Model struct {
	ctx    context.Context
	client IdeaClient

	technology textinput.Model
	language   textinput.Model
	levelIdx   int

	idea     *entity.IdeaRecord
	loading  bool
	err      string
	inflight string
	expanded [sectionCount]bool

	focus    focus
	width    int
	quitting bool
}

// New 创建界面模型
func New(ctx context.Context, client IdeaClient) *Model {
	tech := textinput.New()
	tech.Prompt = ""
	tech.CharLimit = entity.MaxFieldRunes
	tech.Width = 24
	tech.SetValue(DefaultTechnology)
	tech.Focus()

	lang := textinput.New()
	lang.Prompt = ""
	lang.CharLimit = entity.MaxFieldRunes
	lang.Width = 24
	lang.SetValue(DefaultLanguage)

	return &Model{
		ctx:        ctx,
		client:     client,
		technology: tech,
		language:   lang,
		focus:      focusTechnology,
	}
}

// Init 实现 tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Request 由当前表单值构造请求，字段原样发送
func (m *Model) Request() entity.GenerationRequest {
	return entity.GenerationRequest{
		Technology: m.technology.Value(),
		Level:      string(entity.Tiers[m.levelIdx]),
		Language:   m.language.Value(),
	}
}

// Submit 发起一次生成请求；已有在途请求时不做任何事
func (m *Model) Submit() tea.Cmd {
	if m.inflight != "" {
		return nil
	}

	token := uuid.New().String()
	m.inflight = token
	m.loading = true
	m.err = ""

	ctx, client, req := m.ctx, m.client, m.Request()
	return func() tea.Msg {
		idea, err := client.GenerateIdea(ctx, req)
		return ideaResultMsg{token: token, idea: idea, err: err}
	}
}

// Update 实现 tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ideaResultMsg:
		m.handleResult(msg)
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleResult(msg ideaResultMsg) {
	if msg.token == "" || msg.token != m.inflight {
		return
	}
	m.inflight = ""
	m.loading = false

	if msg.err != nil || msg.idea == nil {
		err := msg.err
		if err == nil {
			err = errEmptyIdea
		}
		logger.Error(m.ctx, "failed to fetch idea", err)
		m.err = ErrFetchFailed
		return
	}
	m.idea = msg.idea
}

// handleKey 返回 handled=false 时按键交给输入框处理
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Next):
		return m.setFocus(m.focus + 1), true

	case key.Matches(msg, keys.Prev):
		return m.setFocus(m.focus - 1), true

	case key.Matches(msg, keys.Left) && m.focus == focusLevel:
		m.levelIdx = (m.levelIdx + len(entity.Tiers) - 1) % len(entity.Tiers)
		return nil, true

	case key.Matches(msg, keys.Right) && m.focus == focusLevel:
		m.levelIdx = (m.levelIdx + 1) % len(entity.Tiers)
		return nil, true

	case key.Matches(msg, keys.Enter):
		if s, ok := m.focusedSection(); ok {
			m.expanded[s] = !m.expanded[s]
			return nil, true
		}
		return m.Submit(), true

	case key.Matches(msg, keys.Toggle):
		if s, ok := m.focusedSection(); ok {
			m.expanded[s] = !m.expanded[s]
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) focusCount() int {
	if m.idea == nil {
		return int(focusSections)
	}
	return int(focusSections) + int(sectionCount)
}

func (m *Model) setFocus(f focus) tea.Cmd {
	n := focus(m.focusCount())
	m.focus = (f%n + n) % n

	m.technology.Blur()
	m.language.Blur()
	switch m.focus {
	case focusTechnology:
		return m.technology.Focus()
	case focusLanguage:
		return m.language.Focus()
	}
	return nil
}

func (m *Model) focusedSection() (section, bool) {
	if m.idea == nil || m.focus < focusSections {
		return 0, false
	}
	return section(m.focus - focusSections), true
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTechnology:
		m.technology, cmd = m.technology.Update(msg)
	case focusLanguage:
		m.language, cmd = m.language.Update(msg)
	}
	return cmd
}

// Loading 是否有请求在途
func (m *Model) Loading() bool { return m.loading }

// Err 当前展示的错误文案
func (m *Model) Err() string { return m.err }

// Idea 当前展示的创意
func (m *Model) Idea() *entity.IdeaRecord { return m.idea }
