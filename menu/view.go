package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = itemStyle.
			Foreground(lipgloss.Color("170"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.choice != nil {
		return ""
	}
	var b strings.Builder

	title := "Live Filter Camera"
	if m.screen == boothScreen {
		title = "Photobooth Filters"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i, it := range m.items() {
		line := fmt.Sprintf("%s. %s", it.key, it.title)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("up/down: move • enter or shortcut: select • q: quit"))

	return b.String()
}
