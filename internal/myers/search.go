// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package myers

// frontier holds, for one distance level d, the furthest x reached on each
// diagonal k = x - y for k in -d, -d+2, ..., d. Diagonal k lives at index
// (k+d)/2, so level d needs d+1 slots.
type frontier []int

func (f frontier) at(k, d int) int { return f[(k+d)/2] }

func (f frontier) set(k, d, x int) { f[(k+d)/2] = x }

// trace is the list of frontiers, one per level, from d = 0 up to the level
// that reached (n,m). Its length minus one is the edit distance.
type trace []frontier

// fromBelow reports whether the D-path on diagonal k at level d extends the
// path on diagonal k+1 (a vertical step, an insertion) rather than the one on
// k-1 (a horizontal step, a deletion). prev is the frontier for level d-1.
// Forward search and backtrace must use the same rule.
func fromBelow(prev frontier, k, d int) bool {
	if k == -d {
		return true
	}
	if k == d {
		return false
	}
	return prev.at(k-1, d-1) < prev.at(k+1, d-1)
}

// search runs the forward pass of the greedy algorithm. It stops once the
// frontier reaches (len(a), len(b)), or returns ok=false once the distance
// would exceed limit. A negative limit means no limit.
func search[T comparable](a, b []T, limit int) (tr trace, ok bool) {
	n, m := len(a), len(b)
	bound := n + m
	if limit >= 0 && limit < bound {
		bound = limit
	}

	for d := 0; d <= bound; d++ {
		cur := make(frontier, d+1)
		var prev frontier
		if d > 0 {
			prev = tr[d-1]
		}

		for k := -d; k <= d; k += 2 {
			var x int
			switch {
			case d == 0:
				x = 0
			case fromBelow(prev, k, d):
				x = prev.at(k+1, d-1)
			default:
				x = prev.at(k-1, d-1) + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			cur.set(k, d, x)

			if x >= n && y >= m {
				return append(tr, cur), true
			}
		}
		tr = append(tr, cur)
	}

	return tr, false
}

// backtrace walks the recorded frontiers from (n,m) back to (0,0) and returns
// the edit script in left-to-right order. The script is built back to front
// and reversed once, so stack depth does not grow with the input.
func backtrace(tr trace, n, m int) EditScript {
	script := make(EditScript, 0, n+m)
	x, y := n, m

	for d := len(tr) - 1; d > 0; d-- {
		prev := tr[d-1]
		k := x - y

		var prevK, startX, startY int
		below := fromBelow(prev, k, d)
		if below {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev.at(prevK, d-1)
		prevY := prevX - prevK

		if below {
			startX, startY = prevX, prevY+1
		} else {
			startX, startY = prevX+1, prevY
		}

		for x > startX && y > startY {
			x--
			y--
			script = append(script, keep(x, y))
		}

		if below {
			script = append(script, ins(prevY))
		} else {
			script = append(script, del(prevX))
		}
		x, y = prevX, prevY
	}

	for x > 0 && y > 0 {
		x--
		y--
		script = append(script, keep(x, y))
	}

	for i, j := 0, len(script)-1; i < j; i, j = i+1, j-1 {
		script[i], script[j] = script[j], script[i]
	}
	return script
}
