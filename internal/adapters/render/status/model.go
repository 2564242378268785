package status

import (
	"errors"
	"io"

	"github.com/bnema/pitchside/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// reportModel lays out one static report and quits. The layout runs inside
// the program so every report shares the renderer's color profile.
type reportModel struct {
	layout func(styles) string
	styles styles
	output string
}

func (m reportModel) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(renderReadyMsg); !ok {
		return m, nil
	}
	m.output = m.layout(m.styles)
	return m, tea.Quit
}

func (m reportModel) View() string {
	return m.output
}

func renderReport(layout func(styles) string) (string, error) {
	p := tea.NewProgram(
		reportModel{layout: layout, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(reportModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return rendered.output, nil
}

// Render lays out the session status report.
func Render(status application.SessionStatus, opts RenderOptions) (string, error) {
	return renderReport(func(s styles) string {
		return renderSession(status, opts, s)
	})
}
