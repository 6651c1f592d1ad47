// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the contractdiff CLI. It wires flags, validators,
// the diff action, and the chains and completion subcommands.
package command
