package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-relay/internal/domain/entity"
)

type fakeClient struct {
	idea     *entity.IdeaRecord
	err      error
	requests []entity.GenerationRequest
}

func (f *fakeClient) GenerateIdea(_ context.Context, req entity.GenerationRequest) (*entity.IdeaRecord, error) {
	f.requests = append(f.requests, req)
	return f.idea, f.err
}

func testIdea() *entity.IdeaRecord {
	return &entity.IdeaRecord{
		Name:       "Habit Garden",
		Pitch:      "Grow plants by keeping habits.",
		Features:   []string{"Daily check-in", "Streaks", "Garden view"},
		Stack:      entity.TechStack{Frontend: "React", Backend: "Go", Database: "SQLite", APIs: "None", Libraries: "Zustand"},
		Challenges: []string{"Offline sync"},
		Outcomes:   []string{"Hooks", "State machines"},
	}
}

func view(m *Model) string {
	return ansi.Strip(m.View())
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// run 执行 Submit 返回的命令并把结果交回模型
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestModel_Defaults(t *testing.T) {
	m := New(context.Background(), &fakeClient{})

	assert.Equal(t, entity.GenerationRequest{Technology: "React", Level: "Beginner", Language: "English"}, m.Request())
	assert.False(t, m.Loading())
	assert.Empty(t, m.Err())
	assert.Nil(t, m.Idea())

	v := view(m)
	for _, want := range []string{"Idea Generator", "Technology", "Experience Level", "Language", "Beginner", "Generate Idea"} {
		assert.Contains(t, v, want)
	}
	assert.NotContains(t, v, "Generating...")
}

func TestModel_SubmitSuccess(t *testing.T) {
	client := &fakeClient{idea: testIdea()}
	m := New(context.Background(), client)

	cmd := m.Submit()
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Contains(t, view(m), "Generating...")
	assert.NotContains(t, view(m), "Generate Idea")

	run(t, m, cmd)

	assert.False(t, m.Loading())
	assert.Empty(t, m.Err())
	assert.Equal(t, testIdea(), m.Idea())
	require.Len(t, client.requests, 1)

	v := view(m)
	assert.Contains(t, v, "Habit Garden")
	assert.Contains(t, v, "Pitch: Grow plants by keeping habits.")
	for _, title := range sectionTitles {
		assert.Contains(t, v, title)
	}
	assert.NotContains(t, v, "Daily check-in", "sections start collapsed")
}

func TestModel_SubmitIgnoredWhileInFlight(t *testing.T) {
	client := &fakeClient{idea: testIdea()}
	m := New(context.Background(), client)

	first := m.Submit()
	require.NotNil(t, first)
	assert.Nil(t, m.Submit())
	assert.Nil(t, press(m, tea.KeyEnter))

	run(t, m, first)
	assert.Len(t, client.requests, 1)
	assert.NotNil(t, m.Submit(), "guard is released after the result arrives")
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m := New(context.Background(), &fakeClient{})
	_ = m.Submit()

	m.Update(ideaResultMsg{token: "other", idea: testIdea()})

	assert.True(t, m.Loading())
	assert.Nil(t, m.Idea())
}

func TestModel_FailureKeepsPreviousIdea(t *testing.T) {
	client := &fakeClient{idea: testIdea()}
	m := New(context.Background(), client)
	run(t, m, m.Submit())
	require.NotNil(t, m.Idea())

	client.idea, client.err = nil, errors.New("connection refused")
	run(t, m, m.Submit())

	assert.False(t, m.Loading())
	assert.Equal(t, ErrFetchFailed, m.Err())
	assert.Equal(t, testIdea(), m.Idea())

	v := view(m)
	assert.Contains(t, v, "Failed to fetch idea")
	assert.Contains(t, v, "Generate Idea")
	assert.NotContains(t, v, "connection refused")
}

func TestModel_ErrorClearedOnResubmit(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	m := New(context.Background(), client)
	run(t, m, m.Submit())
	require.Equal(t, ErrFetchFailed, m.Err())

	_ = m.Submit()
	assert.Empty(t, m.Err())
	assert.NotContains(t, view(m), ErrFetchFailed)
}

func TestModel_LevelSelection(t *testing.T) {
	m := New(context.Background(), &fakeClient{})

	press(m, tea.KeyRight)
	assert.Equal(t, "Beginner", m.Request().Level, "arrows only act on the level field")

	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	press(m, tea.KeyRight)
	assert.Equal(t, "Advanced", m.Request().Level)

	press(m, tea.KeyLeft)
	press(m, tea.KeyLeft)
	press(m, tea.KeyLeft)
	assert.Equal(t, "Expert", m.Request().Level)
	assert.Contains(t, view(m), "Expert")
}

func TestModel_TypingEditsFocusedField(t *testing.T) {
	m := New(context.Background(), &fakeClient{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("JS")})
	assert.Equal(t, "ReactJS", m.Request().Technology)

	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "Englis", m.Request().Language)
	assert.Equal(t, "ReactJS", m.Request().Technology)
}

func TestModel_SectionsToggle(t *testing.T) {
	m := New(context.Background(), &fakeClient{idea: testIdea()})
	run(t, m, m.Submit())

	// technology -> level -> language -> button -> Features
	for i := 0; i < 4; i++ {
		press(m, tea.KeyTab)
	}
	assert.Nil(t, press(m, tea.KeyEnter), "enter on a section toggles instead of submitting")
	assert.False(t, m.Loading())

	v := view(m)
	assert.Less(t, strings.Index(v, "Daily check-in"), strings.Index(v, "Streaks"))
	assert.Less(t, strings.Index(v, "Streaks"), strings.Index(v, "Garden view"))
	assert.NotContains(t, v, "Frontend:")

	press(m, tea.KeyTab)
	press(m, tea.KeySpace)
	v = view(m)
	stack := []string{"Frontend: React", "Backend: Go", "Database: SQLite", "APIs: None", "Libraries: Zustand"}
	for i, want := range stack {
		require.Contains(t, v, want)
		if i > 0 {
			assert.Less(t, strings.Index(v, stack[i-1]), strings.Index(v, want))
		}
	}

	press(m, tea.KeySpace)
	assert.NotContains(t, view(m), "Frontend:")
	assert.Contains(t, view(m), "Daily check-in", "other sections keep their state")
}

func TestModel_FocusWrapsWithoutIdea(t *testing.T) {
	m := New(context.Background(), &fakeClient{})

	press(m, tea.KeyShiftTab)
	assert.Equal(t, focusButton, m.focus)
	press(m, tea.KeyTab)
	assert.Equal(t, focusTechnology, m.focus)
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), &fakeClient{})

	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
