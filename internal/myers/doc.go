// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package myers computes the shortest edit script between two sequences of
// comparable units using Myers' O((N+M)D) difference algorithm, and groups
// the script into maximal runs tagged Equal, Delete or Insert.
//
// Running time and memory are O((N+M)·D) where D is the edit distance. When
// the inputs are almost entirely dissimilar D approaches N+M and the search
// degrades toward O((N+M)^2). Callers comparing very large, very different
// inputs should expect that, or use DiffBounded to stop the search early.
//
// Only insertions and deletions are modeled. A substitution shows up as a
// Delete run immediately followed by an Insert run. No minimal or patience
// refinement pass is applied, so among equally short scripts the one chosen is
// whatever the diagonal extension order produces first. Output is
// deterministic.
package myers
