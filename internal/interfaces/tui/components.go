package tui

import "github.com/charmbracelet/lipgloss"

// button 渲染按钮；禁用时使用灰色样式且忽略焦点
func button(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return styleButtonDisabled.Render(label)
	case focused:
		return styleButtonFocused.Render(label)
	default:
		return styleButtonPrimary.Render(label)
	}
}

// container 纵向排列子元素并套用外层样式
func container(style lipgloss.Style, children ...string) string {
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, children...))
}

// row 横向排列子元素，元素之间留两列空白
func row(children ...string) string {
	spaced := make([]string, 0, len(children)*2)
	for i, c := range children {
		if i > 0 {
			spaced = append(spaced, "  ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
