// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tfctl/contractdiff/internal/myers"
)

// Page shows d in a scrollable viewer until the user quits. Lines wrap at
// width, or at the terminal width when width is 0.
func Page(in io.Reader, out io.Writer, d Diff, p Palette, width int) error {
	m := newPager(d.Runs, p.Style, width)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := prog.Run()
	return err
}

type pager struct {
	runs    []myers.TextRun
	style   func(myers.Tag, string) string
	width   int
	changes []int
	vp      viewport.Model
	ready   bool
}

func newPager(runs []myers.TextRun, style func(myers.Tag, string) string, width int) pager {
	return pager{runs: runs, style: style, width: width}
}

func (m pager) Init() tea.Cmd { return nil }

func (m pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-1, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.relayout(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.jump(1)
			return m, nil
		case "N":
			m.jump(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pager) View() string {
	if !m.ready {
		return "loading..."
	}
	status := fmt.Sprintf("%d changed lines  n/N next/prev change  q quit  %3.f%%",
		len(m.changes), m.vp.ScrollPercent()*100) //nolint:mnd
	return m.vp.View() + "\n" + status
}

func (m *pager) relayout(termWidth int) {
	w := m.width
	if w <= 0 || w > termWidth {
		w = termWidth
	}
	lines, changes := Layout(m.runs, w, m.style)
	m.changes = changes
	m.vp.SetContent(strings.Join(lines, "\n"))
}

// jump scrolls to the next (dir > 0) or previous change line.
func (m *pager) jump(dir int) {
	at := m.vp.YOffset
	if dir > 0 {
		for _, line := range m.changes {
			if line > at {
				m.vp.SetYOffset(line)
				return
			}
		}
		return
	}
	for i := len(m.changes) - 1; i >= 0; i-- {
		if m.changes[i] < at {
			m.vp.SetYOffset(m.changes[i])
			return
		}
	}
}
