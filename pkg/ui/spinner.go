// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Work-Fort/Zypher/pkg/config"
	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// taskDoneMsg is sent when the background task returns
type taskDoneMsg struct {
	err error
}

// spinnerModel shows a spinner until the task finishes or the user cancels
type spinnerModel struct {
	spinner   spinner.Model
	title     string
	keys      KeyBindingSet
	done      bool
	cancelled bool
}

func newSpinnerModel(title string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.PrimaryColor())
	return spinnerModel{
		spinner: s,
		title:   title,
		keys:    SpinnerKeyBindings(),
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.Contains(msg.String()) != nil {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case taskDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	help := m.keys.Render(config.CurrentTheme.SubtleStyle())
	return fmt.Sprintf("%s %s\n%s\n", m.spinner.View(), m.title, help)
}

// RunWithSpinner runs task while showing a spinner on stderr. Cancelling
// from the keyboard cancels the task's context and returns ECancelled once
// the task has returned.
func RunWithSpinner(ctx context.Context, title string, task func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(title), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	result := make(chan error, 1)
	go func() {
		err := task(ctx)
		result <- err
		p.Send(taskDoneMsg{err: err})
	}()

	final, runErr := p.Run()
	m, _ := final.(spinnerModel)
	if runErr != nil || m.cancelled {
		cancel()
		taskErr := <-result
		if m.cancelled || ctx.Err() != nil {
			return zerrors.Wrap(zerrors.ECancelled, "cancelled", context.Canceled)
		}
		if taskErr != nil {
			return taskErr
		}
		return zerrors.Wrap(zerrors.EInternal, "spinner failed", runErr)
	}

	return <-result
}
