// Package tui implements the interactive terminal prompts used by catalyst.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/barysiuk/catalyst/internal/core"
)

var (
	// ErrNotInteractive is returned when a choice is needed but the process
	// is not attached to a terminal.
	ErrNotInteractive = errors.New("not running in an interactive terminal")

	// ErrCancelled is returned when the user dismisses the prompt.
	ErrCancelled = errors.New("selection cancelled")
)

const defaultWidth = 80

// Selector asks the user to pick one option using a Bubble Tea list. It
// implements core.Selector.
type Selector struct {
	in          io.Reader
	out         io.Writer
	interactive func() bool
}

// NewSelector creates a Selector reading keys from stdin and drawing on
// stderr, so stdout stays clean for command output.
func NewSelector() *Selector {
	return &Selector{
		in:  os.Stdin,
		out: os.Stderr,
		interactive: func() bool {
			return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stderr.Fd())
		},
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Select shows title and options and returns the chosen option's Value.
func (s *Selector) Select(title string, options []core.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to choose for %q", title)
	}
	if !s.interactive() {
		return "", ErrNotInteractive
	}

	p := tea.NewProgram(newSelectModel(title, options),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running selector: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.cancelled || m.chosen == nil {
		return "", ErrCancelled
	}
	return m.chosen.Value, nil
}

// selectModel is a single-choice list prompt.
type selectModel struct {
	title     string
	list      list.Model
	chosen    *core.Option
	cancelled bool
}

func newSelectModel(title string, options []core.Option) selectModel {
	l := list.New(optionsToItems(options), optionDelegate{}, defaultWidth, len(options))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetShowPagination(len(options) > 10)
	if len(options) > 10 {
		l.SetHeight(11)
	}

	return selectModel{title: title, list: l}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		if h := msg.Height - 3; h > 0 && h < m.list.Height() {
			m.list.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			if it, ok := m.list.SelectedItem().(optionItem); ok {
				opt := it.option
				m.chosen = &opt
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	prompt := promptMarkStyle.Render("?") + " " + titleStyle.Render(m.title)
	switch {
	case m.chosen != nil:
		return prompt + " " + chosenStyle.Render(m.chosen.Label) + "\n"
	case m.cancelled:
		return ""
	}

	bindings := []key.Binding{keys.Up, keys.Down, keys.Enter, keys.Cancel}
	hints := make([]string, len(bindings))
	for i, b := range bindings {
		hints[i] = b.Help().Key + " " + b.Help().Desc
	}
	help := helpStyle.Render(strings.Join(hints, " • "))
	return prompt + "\n" + m.list.View() + "\n" + help + "\n"
}
