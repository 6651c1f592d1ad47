// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes character diffs of bytecode and renders them as
// colored text, marked-up plain text, JSON or YAML, or in an interactive
// pager.
package differ
