// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tfctl/contractdiff/internal/log"
	"github.com/tfctl/contractdiff/internal/myers"
)

// Diff is a character diff of two hex strings.
type Diff struct {
	Left     int             `json:"left" yaml:"left"`
	Right    int             `json:"right" yaml:"right"`
	Distance int             `json:"distance" yaml:"distance"`
	Runs     []myers.TextRun `json:"runs" yaml:"runs"`
}

// Count returns the number of characters carrying tag.
func (d Diff) Count(tag myers.Tag) int {
	n := 0
	for _, run := range d.Runs {
		if run.Tag == tag {
			n += utf8.RuneCountInString(run.Text)
		}
	}
	return n
}

// Identical reports whether the two sides are equal.
func (d Diff) Identical() bool {
	return d.Distance == 0
}

// Compute diffs left and right. The search itself cannot be interrupted, so
// it runs in its own goroutine and is abandoned when ctx is done. maxEdits > 0
// bounds the search, see myers.DiffBounded.
func Compute(ctx context.Context, left, right string, maxEdits int) (Diff, error) {
	type outcome struct {
		res myers.Result[rune]
		err error
	}

	if err := ctx.Err(); err != nil {
		return Diff{}, fmt.Errorf("diff not started: %w", err)
	}

	l, r := []rune(left), []rune(right)
	start := time.Now()

	done := make(chan outcome, 1)
	go func() {
		res, err := myers.DiffBounded(l, r, maxEdits)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return Diff{}, fmt.Errorf("diff abandoned after %s: %w", time.Since(start).Round(time.Millisecond), ctx.Err())
	case o := <-done:
		if o.err != nil {
			return Diff{}, o.err
		}
		log.Debugf("diff computed: left=%d right=%d runs=%d took=%s", len(l), len(r), len(o.res), time.Since(start))
		return Diff{
			Left:     len(l),
			Right:    len(r),
			Distance: o.res.Distance(),
			Runs:     myers.TextRuns(o.res),
		}, nil
	}
}
