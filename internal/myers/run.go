// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package myers

import "fmt"

// Tag classifies a run of units.
type Tag int

const (
	// Equal units appear in both left and right.
	Equal Tag = iota
	// Delete units appear only in left.
	Delete
	// Insert units appear only in right.
	Insert
)

// String returns the string representation of a tag.
func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// MarshalText renders the tag as its lowercase name.
func (t Tag) MarshalText() ([]byte, error) {
	switch t {
	case Equal, Delete, Insert:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid tag %d", int(t))
	}
}

// UnmarshalText parses a lowercase tag name.
func (t *Tag) UnmarshalText(b []byte) error {
	switch string(b) {
	case "equal":
		*t = Equal
	case "delete":
		*t = Delete
	case "insert":
		*t = Insert
	default:
		return fmt.Errorf("invalid tag %q", string(b))
	}
	return nil
}

func tagOf(op Op) Tag {
	switch op {
	case OpDelete:
		return Delete
	case OpInsert:
		return Insert
	default:
		return Equal
	}
}

// Run is a maximal contiguous span of units sharing one tag.
type Run[T any] struct {
	Tag   Tag
	Units []T
}

// Compact groups an edit script into maximal runs. Equal and Delete runs are
// sub-slices of left, Insert runs sub-slices of right. Each sub-slice has its
// capacity clipped so appending to a run never writes into the inputs.
//
// The script must have been produced for left and right; Compact does not
// compare units.
func Compact[T any](left, right []T, script EditScript) Result[T] {
	var (
		res   Result[T]
		open  bool
		tag   Tag
		start int
		end   int
	)

	flush := func() {
		if !open {
			return
		}
		src := left
		if tag == Insert {
			src = right
		}
		res = append(res, Run[T]{Tag: tag, Units: src[start:end:end]})
		open = false
	}

	for _, e := range script {
		t := tagOf(e.Op)
		pos := e.I
		if t == Insert {
			pos = e.J
		}
		if open && t == tag && pos == end {
			end++
			continue
		}
		flush()
		open, tag, start, end = true, t, pos, pos+1
	}
	flush()

	return res
}
