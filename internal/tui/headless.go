package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Settle drives model without a tea.Program: it runs cmd, feeds each resulting
// message back into Update and repeats with the returned commands until none
// remain. Spinner ticks are dropped and tea.Quit stops the loop. Commands run
// sequentially on the calling goroutine.
func Settle(model tea.Model, cmd tea.Cmd) tea.Model {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil, spinner.TickMsg:
		case tea.QuitMsg:
			return model
		case tea.BatchMsg:
			pending = append(pending, msg...)
		default:
			var out tea.Cmd
			model, out = model.Update(msg)
			pending = append(pending, out)
		}
	}
	return model
}
