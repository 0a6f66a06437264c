package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/barysiuk/catalyst/internal/core"
)

// optionItem wraps a core.Option for the bubbles list.
type optionItem struct {
	option core.Option
}

func (i optionItem) FilterValue() string { return i.option.Label }

// optionDelegate renders options as: "  > label  hint", cut to the list width.
type optionDelegate struct{}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	oi, ok := item.(optionItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	indicator := "    "
	label := normalItemStyle.Render(oi.option.Label)
	if isSelected {
		indicator = "  > "
		label = selectedItemStyle.Render(oi.option.Label)
	}

	line := indicator + label
	if oi.option.Hint != "" {
		line += "  " + mutedStyle.Render(oi.option.Hint)
	}
	if width := m.Width(); width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	_, _ = fmt.Fprint(w, line)
}

// optionsToItems converts options to list items.
func optionsToItems(options []core.Option) []list.Item {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = optionItem{option: o}
	}
	return items
}
