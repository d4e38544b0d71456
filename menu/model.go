// Package menu is the terminal front end choosing what the camera does next.
package menu

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/esimov/gokachu"
)

// Action is what the user picked in the menu.
type Action int

// The menu actions.
const (
	ActionSession Action = iota
	ActionPhotobooth
	ActionExit
)

// Choice is the outcome of a menu run.
type Choice struct {
	Action Action
	Mode   gokachu.Mode
}

type screen int

const (
	mainScreen screen = iota
	boothScreen
)

type item struct {
	key    string
	title  string
	choice Choice
	// opens the photobooth filter list instead of returning a choice
	submenu bool
	back    bool
}

// Model is the bubbletea model of the menu.
type Model struct {
	screen screen
	cursor int
	status string
	choice *Choice
}

// New returns the menu opened on the main screen.
func New() Model {
	return Model{screen: mainScreen}
}

// NewBooth returns the menu opened on the photobooth filter list.
func NewBooth() Model {
	return Model{screen: boothScreen}
}

// Choice returns the selected entry once the menu has quit.
func (m Model) Choice() (Choice, bool) {
	if m.choice == nil {
		return Choice{}, false
	}
	return *m.choice, true
}

func (m Model) items() []item {
	var items []item
	switch m.screen {
	case mainScreen:
		for i, mode := range gokachu.Modes() {
			items = append(items, item{
				key:    strconv.Itoa(i + 1),
				title:  mode.Label(),
				choice: Choice{Action: ActionSession, Mode: mode},
			})
		}
		items = append(items,
			item{key: "p", title: "Photobooth", submenu: true},
			item{key: "e", title: "Exit", choice: Choice{Action: ActionExit}},
		)
	case boothScreen:
		for i, mode := range gokachu.FilterModes() {
			items = append(items, item{
				key:    strconv.Itoa(i + 1),
				title:  mode.Label(),
				choice: Choice{Action: ActionPhotobooth, Mode: mode},
			})
		}
		items = append(items, item{key: "b", title: "Return to main menu", back: true})
	}
	return items
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
