// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/contractdiff/internal/myers"
)

// Output formats.
const (
	FormatText = "text"
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{FormatText, FormatRaw, FormatJSON, FormatYAML}
}

// ColorModes lists the accepted --color values.
func ColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// NewRenderer binds a lipgloss renderer to w. auto leaves profile detection to
// termenv, which honors NO_COLOR and non-terminal writers.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Palette holds the styles for each run tag.
type Palette struct {
	Equal  lipgloss.Style
	Delete lipgloss.Style
	Insert lipgloss.Style
	plain  bool
}

// NewPalette builds the dim/red/green palette on r.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Equal:  r.NewStyle().Faint(true),
		Delete: r.NewStyle().Foreground(lipgloss.Color("1")),
		Insert: r.NewStyle().Foreground(lipgloss.Color("2")),
		plain:  r.ColorProfile() == termenv.Ascii,
	}
}

// Style renders text for tag.
func (p Palette) Style(tag myers.Tag, text string) string {
	if p.plain {
		return text
	}
	switch tag {
	case myers.Delete:
		return p.Delete.Render(text)
	case myers.Insert:
		return p.Insert.Render(text)
	default:
		return p.Equal.Render(text)
	}
}

// Raw marks changes in plain text, [-deleted-] and {+inserted+}.
func Raw(tag myers.Tag, text string) string {
	switch tag {
	case myers.Delete:
		return "[-" + text + "-]"
	case myers.Insert:
		return "{+" + text + "+}"
	default:
		return text
	}
}

// Layout splits runs into lines of at most width characters, styling each
// piece with style. It also returns the indexes of the lines that hold a
// change. width <= 0 puts everything on one line.
func Layout(runs []myers.TextRun, width int, style func(myers.Tag, string) string) (lines []string, changes []int) {
	var (
		line  strings.Builder
		col   int
		dirty bool
	)

	flush := func() {
		if dirty {
			changes = append(changes, len(lines))
		}
		lines = append(lines, line.String())
		line.Reset()
		col = 0
		dirty = false
	}

	for _, run := range runs {
		text := []rune(run.Text)
		for len(text) > 0 {
			n := len(text)
			if width > 0 && col+n > width {
				n = width - col
			}
			line.WriteString(style(run.Tag, string(text[:n])))
			if run.Tag != myers.Equal {
				dirty = true
			}
			col += n
			text = text[n:]
			if width > 0 && col == width {
				flush()
			}
		}
	}

	if col > 0 || len(lines) == 0 {
		flush()
	}
	return lines, changes
}

// Options control Write.
type Options struct {
	Format string
	Width  int
}

// Write renders d to w in the requested format.
func Write(w io.Writer, d Diff, p Palette, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		lines, _ := Layout(d.Runs, opts.Width, p.Style)
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err

	case FormatRaw:
		lines, _ := Layout(d.Runs, opts.Width, Raw)
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q, want one of %s", opts.Format, strings.Join(Formats(), ", "))
	}
}

// ValidFormat reports whether f is an accepted --output value.
func ValidFormat(f string) bool {
	return slices.Contains(Formats(), f)
}

// ValidColorMode reports whether m is an accepted --color value.
func ValidColorMode(m string) bool {
	return slices.Contains(ColorModes(), m)
}
