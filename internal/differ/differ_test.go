// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/contractdiff/internal/myers"
)

func compute(t *testing.T, left, right string) Diff {
	t.Helper()
	d, err := Compute(context.Background(), left, right, 0)
	require.NoError(t, err)
	return d
}

func TestCompute(t *testing.T) {
	d := compute(t, "abcd", "abxd")

	assert.Equal(t, []myers.TextRun{
		{Tag: myers.Equal, Text: "ab"},
		{Tag: myers.Delete, Text: "c"},
		{Tag: myers.Insert, Text: "x"},
		{Tag: myers.Equal, Text: "d"},
	}, d.Runs)
	assert.Equal(t, 4, d.Left)
	assert.Equal(t, 4, d.Right)
	assert.Equal(t, 2, d.Distance)
	assert.Equal(t, 3, d.Count(myers.Equal))
	assert.Equal(t, 1, d.Count(myers.Delete))
	assert.Equal(t, 1, d.Count(myers.Insert))
	assert.False(t, d.Identical())

	assert.True(t, compute(t, "6080", "6080").Identical())
}

func TestCompute_EditLimit(t *testing.T) {
	_, err := Compute(context.Background(), "aaaa", "bbbb", 3)
	assert.ErrorIs(t, err, myers.ErrEditLimit)

	d, err := Compute(context.Background(), "aaaa", "aaab", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Distance)
}

func TestCompute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, "abc", "abd", 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayout(t *testing.T) {
	runs := compute(t, "abcd", "abxd").Runs

	tests := []struct {
		name        string
		width       int
		wantLines   []string
		wantChanges []int
	}{
		{name: "one line", width: 0, wantLines: []string{"ab[-c-]{+x+}d"}, wantChanges: []int{0}},
		{name: "width 2", width: 2, wantLines: []string{"ab", "[-c-]{+x+}", "d"}, wantChanges: []int{1}},
		{name: "width 3", width: 3, wantLines: []string{"ab[-c-]", "{+x+}d"}, wantChanges: []int{0, 1}},
		{name: "exact fit", width: 5, wantLines: []string{"ab[-c-]{+x+}d"}, wantChanges: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, changes := Layout(runs, tt.width, Raw)
			assert.Equal(t, tt.wantLines, lines)
			assert.Equal(t, tt.wantChanges, changes)
		})
	}

	lines, changes := Layout(nil, 10, Raw)
	assert.Equal(t, []string{""}, lines)
	assert.Empty(t, changes)
}

func TestWrite_Text(t *testing.T) {
	d := compute(t, "abcd", "abxd")

	var plain bytes.Buffer
	require.NoError(t, Write(&plain, d, NewPalette(NewRenderer(&plain, ColorNever)), Options{Format: FormatText}))
	assert.Equal(t, "abcxd\n", plain.String())

	var wrapped bytes.Buffer
	require.NoError(t, Write(&wrapped, d, NewPalette(NewRenderer(&wrapped, ColorNever)), Options{Format: FormatText, Width: 2}))
	assert.Equal(t, "ab\ncx\nd\n", wrapped.String())

	var colored bytes.Buffer
	require.NoError(t, Write(&colored, d, NewPalette(NewRenderer(&colored, ColorAlways)), Options{}))
	assert.Contains(t, colored.String(), "\x1b[")
	for _, s := range []string{"ab", "c", "x", "d"} {
		assert.Contains(t, colored.String(), s)
	}
}

func TestWrite_Raw(t *testing.T) {
	var buf bytes.Buffer
	d := compute(t, "kitten", "sitting")
	require.NoError(t, Write(&buf, d, Palette{}, Options{Format: FormatRaw}))
	assert.Equal(t, "[-k-]{+s+}itt[-e-]{+i+}n{+g+}\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	d := compute(t, "abcd", "abxd")
	require.NoError(t, Write(&buf, d, Palette{}, Options{Format: FormatJSON}))

	assert.Contains(t, buf.String(), `"tag": "delete"`)
	assert.Contains(t, buf.String(), `"distance": 2`)

	var back Diff
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, d, back)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	d := compute(t, "abcd", "abxd")
	require.NoError(t, Write(&buf, d, Palette{}, Options{Format: FormatYAML}))

	assert.Contains(t, buf.String(), "distance: 2")
	assert.Contains(t, buf.String(), "tag: insert")

	var back Diff
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, d, back)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Diff{}, Palette{}, Options{Format: "html"})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestValid(t *testing.T) {
	assert.True(t, ValidFormat("json"))
	assert.False(t, ValidFormat("JSON"))
	assert.True(t, ValidColorMode("never"))
	assert.False(t, ValidColorMode("sometimes"))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPager(t *testing.T) {
	runs := []myers.TextRun{
		{Tag: myers.Equal, Text: strings.Repeat("a", 200)},
		{Tag: myers.Insert, Text: "b"},
		{Tag: myers.Equal, Text: strings.Repeat("a", 299)},
		{Tag: myers.Delete, Text: "c"},
		{Tag: myers.Equal, Text: strings.Repeat("a", 500)},
	}

	var m tea.Model = newPager(runs, Raw, 10)
	assert.Nil(t, m.Init())
	assert.Equal(t, "loading...", m.View())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	p := m.(pager)
	assert.Equal(t, []int{20, 50}, p.changes)
	assert.Contains(t, m.View(), "2 changed lines")

	steps := []struct {
		key  string
		want int
	}{
		{"n", 20},
		{"n", 50},
		{"n", 50},
		{"N", 20},
		{"N", 20},
	}
	for _, s := range steps {
		m, _ = m.Update(key(s.key))
		assert.Equal(t, s.want, m.(pager).vp.YOffset, "after %s", s.key)
	}

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
