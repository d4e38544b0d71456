package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Run shows m until the user selects an entry.
func Run(m Model, opts ...tea.ProgramOption) (Choice, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Choice{}, errors.Wrap(err, "menu failed")
	}
	if c, ok := final.(Model).Choice(); ok {
		return c, nil
	}
	return Choice{Action: ActionExit}, nil
}
