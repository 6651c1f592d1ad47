// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/differ"
	"github.com/tfctl/contractdiff/internal/myers"
)

// Stats summarizes a diff. Sizes are in hex characters.
type Stats struct {
	Left     int
	Right    int
	Equal    int
	Deleted  int
	Inserted int
	Distance int
}

// NewStats counts the runs of d.
func NewStats(d differ.Diff) Stats {
	return Stats{
		Left:     d.Left,
		Right:    d.Right,
		Equal:    d.Count(myers.Equal),
		Deleted:  d.Count(myers.Delete),
		Inserted: d.Count(myers.Insert),
		Distance: d.Distance,
	}
}

// Similarity is the share of both sides that is unchanged, in percent. Two
// empty sides are 100% similar.
func (s Stats) Similarity() float64 {
	total := s.Left + s.Right
	if total == 0 {
		return 100 //nolint:mnd
	}
	return 200 * float64(s.Equal) / float64(total) //nolint:mnd
}

// Rows returns the table body, one stat per row.
func (s Stats) Rows() [][]string {
	size := func(chars int) string {
		return fmt.Sprintf("%s (%s chars)", humanize.Bytes(uint64(chars/2)), humanize.Comma(int64(chars))) //nolint:mnd
	}
	return [][]string{
		{"left", size(s.Left)},
		{"right", size(s.Right)},
		{"equal", humanize.Comma(int64(s.Equal))},
		{"deleted", humanize.Comma(int64(s.Deleted))},
		{"inserted", humanize.Comma(int64(s.Inserted))},
		{"distance", humanize.Comma(int64(s.Distance))},
		{"similarity", fmt.Sprintf("%.2f%%", s.Similarity())},
	}
}

// StatsWriter renders s as a stat/value table on w.
func StatsWriter(w io.Writer, s Stats, colored bool) {
	TableWriter(w, []string{"stat", "value"}, s.Rows(), colored)
}

// TableWriter renders rows under headers on w. With colored set the headers
// and alternating rows take their colors from the config (colors.*) or a
// theme-appropriate default. If w is nil, os.Stdout is used.
func TableWriter(w io.Writer, headers []string, rows [][]string, colored bool) {
	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if colored {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Bold(true).Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(2) //nolint:mnd
			}

			return style
		}).
		Headers(headers...).
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering. Without a
// configured color the default is picked for the terminal background so the
// table stays readable on light and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
