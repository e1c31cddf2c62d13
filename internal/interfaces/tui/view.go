package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"idea-relay/internal/domain/entity"
)

// View 实现 tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	children := []string{
		styleTitle.Render("Idea Generator"),
		m.renderForm(),
		"",
		m.renderButton(),
	}
	if m.err != "" {
		children = append(children, styleError.Render(m.err))
	}
	if m.idea != nil {
		children = append(children, m.renderIdea())
	}
	children = append(children, helpLine())

	return container(stylePage, children...)
}

func (m *Model) renderForm() string {
	level := "‹ " + string(entity.Tiers[m.levelIdx]) + " ›"

	return row(
		m.field("Technology", m.technology.View(), m.focus == focusTechnology),
		m.field("Experience Level", level, m.focus == focusLevel),
		m.field("Language", m.language.View(), m.focus == focusLanguage),
	)
}

func (m *Model) field(label, value string, focused bool) string {
	labelStyle, boxStyle := styleLabel, styleField
	if focused {
		labelStyle, boxStyle = styleLabelFocused, styleFieldFocused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		boxStyle.Render(value),
	)
}

func (m *Model) renderButton() string {
	if m.loading {
		return button("Generating...", false, true)
	}
	return button("Generate Idea", m.focus == focusButton, false)
}

func (m *Model) renderIdea() string {
	idea := m.idea
	children := []string{
		styleIdeaName.Render(idea.Name),
		styleStrong.Render("Pitch:") + " " + idea.Pitch,
		"",
	}
	for s := section(0); s < sectionCount; s++ {
		children = append(children, m.renderSection(s, sectionItems(idea, s)))
	}
	return container(styleCard, children...)
}

func (m *Model) renderSection(s section, items []string) string {
	marker := "▸"
	if m.expanded[s] {
		marker = "▾"
	}
	summaryStyle := styleStrong
	if fs, ok := m.focusedSection(); ok && fs == s {
		summaryStyle = styleSummaryFocused
	}

	lines := []string{summaryStyle.Render(marker + " " + sectionTitles[s])}
	if m.expanded[s] {
		for _, item := range items {
			lines = append(lines, "  • "+item)
		}
	}
	return strings.Join(lines, "\n")
}

// sectionItems 返回区块条目，保持原始顺序
func sectionItems(idea *entity.IdeaRecord, s section) []string {
	switch s {
	case sectionFeatures:
		return idea.Features
	case sectionStack:
		return lo.Map(idea.Stack.Entries(), func(e entity.StackEntry, _ int) string {
			return styleStrong.Render(e.Label+":") + " " + e.Value
		})
	case sectionChallenges:
		return idea.Challenges
	case sectionOutcomes:
		return idea.Outcomes
	default:
		return nil
	}
}
