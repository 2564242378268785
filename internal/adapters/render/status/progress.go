package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrProgressCancelled is returned when the user stops the work from the
// keyboard.
var ErrProgressCancelled = errors.New("cancelled")

// ProgressOptions configures RunProgress.
type ProgressOptions struct {
	Label  string
	Output io.Writer
	// Input enables the cancel keys (esc, ctrl+c). Leave it nil unless it
	// is a terminal.
	Input io.Reader
	// Detail is polled on every tick, e.g. for a retry counter.
	Detail func() string
	Now    func() time.Time
}

type progressDoneMsg struct {
	err error
}

type progressModel struct {
	spinner    spinner.Model
	styles     styles
	label      string
	detail     func() string
	now        func() time.Time
	started    time.Time
	elapsed    time.Duration
	cancelKeys bool
	cancel     context.CancelFunc
	cancelling bool
	work       tea.Cmd
	done       bool
	err        error
}

func newProgressModel(opts ProgressOptions, cancel context.CancelFunc, work tea.Cmd) progressModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return progressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		styles:     newStyles(),
		label:      opts.Label,
		detail:     opts.Detail,
		now:        now,
		started:    now(),
		cancelKeys: opts.Input != nil,
		cancel:     cancel,
		work:       work,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.elapsed = m.now().Sub(m.started)
		return m, cmd
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
		}
		return m, nil
	case progressDoneMsg:
		m.done = true
		m.err = msg.err
		if m.cancelling {
			m.err = ErrProgressCancelled
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelling {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.styles.state.Render("cancelling..."))
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if m.detail != nil {
		if detail := m.detail(); detail != "" {
			line += " " + m.styles.stateBad.Render("("+detail+")")
		}
	}
	if m.elapsed >= time.Second {
		line += " " + m.styles.stamp.Render(m.elapsed.Truncate(time.Second).String())
	}
	if m.cancelKeys {
		line += " " + m.styles.empty.Render("esc to cancel")
	}
	return line
}

// RunProgress shows a spinner on opts.Output while work runs and returns
// its error. Work receives a context that the cancel keys end.
func RunProgress(ctx context.Context, opts ProgressOptions, work func(context.Context) error) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCmd := func() tea.Msg {
		return progressDoneMsg{err: work(workCtx)}
	}

	programOpts := []tea.ProgramOption{
		tea.WithOutput(opts.Output),
		tea.WithContext(ctx),
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	} else {
		programOpts = append(programOpts, tea.WithInput(nil))
	}

	finalModel, err := tea.NewProgram(newProgressModel(opts, cancel, workCmd), programOpts...).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return ErrUnexpectedRenderModel
	}
	return result.err
}
