// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package myers

import (
	"errors"
	"fmt"
	"iter"
)

// ErrEditLimit is returned by DiffBounded when the inputs are further apart
// than the requested number of edits.
var ErrEditLimit = errors.New("edit limit exceeded")

// Result is the ordered list of runs produced by one diff.
type Result[T any] []Run[T]

// All yields each run's tag and units in order.
func (r Result[T]) All() iter.Seq2[Tag, []T] {
	return func(yield func(Tag, []T) bool) {
		for _, run := range r {
			if !yield(run.Tag, run.Units) {
				return
			}
		}
	}
}

// Left reassembles the left input from the Equal and Delete runs.
func (r Result[T]) Left() []T {
	return r.side(Insert)
}

// Right reassembles the right input from the Equal and Insert runs.
func (r Result[T]) Right() []T {
	return r.side(Delete)
}

func (r Result[T]) side(skip Tag) []T {
	var out []T
	for _, run := range r {
		if run.Tag != skip {
			out = append(out, run.Units...)
		}
	}
	return out
}

// Distance is the number of deleted plus inserted units.
func (r Result[T]) Distance() int {
	d := 0
	for _, run := range r {
		if run.Tag != Equal {
			d += len(run.Units)
		}
	}
	return d
}

// Count returns the number of units carrying tag t.
func (r Result[T]) Count(t Tag) int {
	c := 0
	for _, run := range r {
		if run.Tag == t {
			c += len(run.Units)
		}
	}
	return c
}

// Edits returns the shortest edit script transforming left into right.
func Edits[T comparable](left, right []T) EditScript {
	script, _ := edits(left, right, -1)
	return script
}

func edits[T comparable](left, right []T, limit int) (EditScript, bool) {
	n, m := len(left), len(right)

	// Both trivial cases are also what the search produces; they just skip
	// the trace allocation.
	switch {
	case n == 0:
		if limit >= 0 && m > limit {
			return nil, false
		}
		script := make(EditScript, m)
		for j := range script {
			script[j] = ins(j)
		}
		return script, true
	case m == 0:
		if limit >= 0 && n > limit {
			return nil, false
		}
		script := make(EditScript, n)
		for i := range script {
			script[i] = del(i)
		}
		return script, true
	}

	tr, ok := search(left, right, limit)
	if !ok {
		return nil, false
	}
	return backtrace(tr, n, m), true
}

// Distance returns the minimum number of single-unit insertions and deletions
// transforming left into right.
func Distance[T comparable](left, right []T) int {
	tr, _ := search(left, right, -1)
	return len(tr) - 1
}

// Diff computes the runs of the shortest edit script between left and right.
// It never fails; see the package documentation for its cost on dissimilar
// inputs.
func Diff[T comparable](left, right []T) Result[T] {
	return Compact(left, right, Edits(left, right))
}

// DiffBounded is Diff with an upper bound on the edit distance. If left and
// right are more than maxEdits edits apart the search stops and an error
// wrapping ErrEditLimit is returned. maxEdits <= 0 means no bound.
func DiffBounded[T comparable](left, right []T, maxEdits int) (Result[T], error) {
	limit := maxEdits
	if limit <= 0 {
		limit = -1
	}
	script, ok := edits(left, right, limit)
	if !ok {
		return nil, fmt.Errorf("more than %d edits between %d and %d units: %w",
			maxEdits, len(left), len(right), ErrEditLimit)
	}
	return Compact(left, right, script), nil
}
