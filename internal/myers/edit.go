// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package myers

import "fmt"

// Op is a single-unit edit operation.
type Op int

const (
	// OpKeep keeps left[I], which equals right[J].
	OpKeep Op = iota
	// OpDelete removes left[I].
	OpDelete
	// OpInsert inserts right[J].
	OpInsert
)

// String returns the string representation of an operation.
func (o Op) String() string {
	switch o {
	case OpKeep:
		return "keep"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is one step of an edit script. I indexes left and J indexes right;
// the index a Delete or Insert does not use is -1.
type Edit struct {
	Op Op
	I  int
	J  int
}

func (e Edit) String() string {
	switch e.Op {
	case OpKeep:
		return fmt.Sprintf("Keep(%d,%d)", e.I, e.J)
	case OpDelete:
		return fmt.Sprintf("Delete(%d)", e.I)
	case OpInsert:
		return fmt.Sprintf("Insert(%d)", e.J)
	default:
		return "?"
	}
}

func keep(i, j int) Edit { return Edit{Op: OpKeep, I: i, J: j} }
func del(i int) Edit     { return Edit{Op: OpDelete, I: i, J: -1} }
func ins(j int) Edit     { return Edit{Op: OpInsert, I: -1, J: j} }

// EditScript is an ordered list of edits transforming left into right.
type EditScript []Edit

// Distance is the number of non-Keep edits in the script.
func (s EditScript) Distance() int {
	d := 0
	for _, e := range s {
		if e.Op != OpKeep {
			d++
		}
	}
	return d
}
