package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.items()

	switch key.String() {
	case "ctrl+c", "q":
		return m.quit(Choice{Action: ActionExit})
	case "esc", "backspace":
		if m.screen == boothScreen {
			m.screen, m.cursor, m.status = mainScreen, 0, ""
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(items) - 1
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case "enter", " ":
		return m.selectItem(items[m.cursor])
	default:
		for i, it := range items {
			if it.key == key.String() {
				m.cursor = i
				return m.selectItem(it)
			}
		}
		m.status = "Invalid choice. Please try again."
		return m, nil
	}
	return m, nil
}

func (m Model) selectItem(it item) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case it.submenu:
		m.screen, m.cursor = boothScreen, 0
		return m, nil
	case it.back:
		m.screen, m.cursor = mainScreen, 0
		return m, nil
	}
	return m.quit(it.choice)
}

func (m Model) quit(c Choice) (tea.Model, tea.Cmd) {
	m.choice = &c
	return m, tea.Quit
}
