package tui

import (
	"errors"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/service"

	tea "github.com/charmbracelet/bubbletea"
)

type loadingMsg struct{ filename string }

type renderedMsg struct{ view app.View }

// failedMsg reports a failed import. keep is set when the controller refused
// the file without dropping the current batch.
type failedMsg struct {
	message string
	keep    bool
}

// Port forwards controller events to a running program. Imports run inside a
// tea.Cmd, off the event loop, so sending synchronously keeps events in order.
type Port struct {
	send func(tea.Msg)
}

func NewPort(p *tea.Program) *Port {
	return &Port{send: p.Send}
}

func (p *Port) Loading(filename string) { p.send(loadingMsg{filename: filename}) }

func (p *Port) Rendered(view app.View) { p.send(renderedMsg{view: view}) }

func (p *Port) Failed(message string, err error) {
	p.send(failedMsg{message: message, keep: errors.Is(err, service.ErrInvalidFileType)})
}

// Updated is a no-op: mutations start in the model, which applies the
// controller's result itself.
func (p *Port) Updated(string, models.RowProgress, models.ProgressSummary) {}
