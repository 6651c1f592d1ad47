// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package myers

// TextRun is a run of characters.
type TextRun struct {
	Tag  Tag    `json:"tag" yaml:"tag"`
	Text string `json:"text" yaml:"text"`
}

// Chars diffs two strings rune by rune.
func Chars(left, right string) []TextRun {
	return TextRuns(Diff([]rune(left), []rune(right)))
}

// CharsBounded is Chars with an edit bound, see DiffBounded.
func CharsBounded(left, right string, maxEdits int) ([]TextRun, error) {
	res, err := DiffBounded([]rune(left), []rune(right), maxEdits)
	if err != nil {
		return nil, err
	}
	return TextRuns(res), nil
}

// TextRuns converts rune runs to string runs.
func TextRuns(res Result[rune]) []TextRun {
	out := make([]TextRun, 0, len(res))
	for tag, units := range res.All() {
		out = append(out, TextRun{Tag: tag, Text: string(units)})
	}
	return out
}
