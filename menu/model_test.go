package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/esimov/gokachu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestMenu_MainScreenShouldListEveryMode(t *testing.T) {
	items := New().items()
	require.Len(t, items, len(gokachu.Modes())+2)
	assert.Equal(t, "Normal", items[0].title)
	assert.Equal(t, "Object Tracking", items[8].title)
	assert.Equal(t, "Photobooth", items[9].title)
	assert.Equal(t, "Exit", items[10].title)
}

func TestMenu_NumberShouldSelectMode(t *testing.T) {
	m, cmd := press(New(), "3")
	require.NotNil(t, cmd)

	c, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, Choice{Action: ActionSession, Mode: gokachu.ModeBlur}, c)
	assert.Empty(t, m.View())
}

func TestMenu_CursorShouldWrapAround(t *testing.T) {
	m, _ := press(New(), "up")
	assert.Equal(t, 10, m.cursor)

	m, _ = press(m, "down")
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, "down", "down", "enter")
	c, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, gokachu.ModeBlur, c.Mode)
}

func TestMenu_PhotoboothSubmenu(t *testing.T) {
	m, cmd := press(New(), "up", "up", "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, boothScreen, m.screen)
	assert.Len(t, m.items(), len(gokachu.FilterModes())+1)

	m, cmd = press(m, "4")
	require.NotNil(t, cmd)
	c, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, Choice{Action: ActionPhotobooth, Mode: gokachu.ModeEdges}, c)
}

func TestMenu_BackShouldReturnToMainScreen(t *testing.T) {
	m, _ := press(NewBooth(), "b")
	assert.Equal(t, mainScreen, m.screen)
	_, ok := m.Choice()
	assert.False(t, ok)

	m, _ = press(NewBooth(), "esc")
	assert.Equal(t, mainScreen, m.screen)
}

func TestMenu_LettersShouldReachEntriesPastNine(t *testing.T) {
	m, cmd := press(New(), "p")
	assert.Nil(t, cmd)
	assert.Equal(t, boothScreen, m.screen)
	assert.Contains(t, m.View(), "b. Return to main menu")

	m, _ = press(m, "b")
	assert.Contains(t, m.View(), "p. Photobooth")
	assert.Contains(t, m.View(), "e. Exit")

	m, cmd = press(m, "e")
	require.NotNil(t, cmd)
	c, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, ActionExit, c.Action)
}

func TestMenu_QuitShouldExit(t *testing.T) {
	m, cmd := press(New(), "q")
	require.NotNil(t, cmd)
	c, ok := m.Choice()
	require.True(t, ok)
	assert.Equal(t, ActionExit, c.Action)
}

func TestMenu_InvalidChoiceShouldKeepMenuOpen(t *testing.T) {
	m, cmd := press(New(), "x")
	assert.Nil(t, cmd)
	assert.Equal(t, "Invalid choice. Please try again.", m.status)
	assert.Contains(t, m.View(), "Invalid choice")
}
