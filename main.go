// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/contractdiff/internal/command"
	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/log"
	"github.com/tfctl/contractdiff/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the argument after them is an operand.
var boolFlags = map[string]bool{
	"--help": true, "-h": true,
	"--pager": true, "-p": true,
	"--stats": true, "-s": true,
	"--strict":  true,
	"--version": true, "-v": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set, drops repeated flags and moves the
// operands behind the flags. Subcommands get their args untouched.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && (args[1] == "completion" || args[1] == "chains") {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	return reorderArgs(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}
	log.Debugf("args final: args=%v", args)

	return initAndRunApp(args)
}

// processSetOnly replaces an @set argument with the entries of the config
// list diff.<set>. Each entry is split on whitespace.
func processSetOnly(args []string) []string {
	removeIdx := -1
	set := ""
	for i := 1; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set = args[i][1:]
			removeIdx = i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(command.Namespace + "." + set)
	if err != nil {
		log.Warnf("no argument set %q in config", set)
	}

	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:removeIdx]...)
	out = append(out, expanded...)
	return append(out, args[removeIdx+1:]...)
}

// argGroup is a flag with its value, or a single operand (key "").
type argGroup struct {
	key    string
	tokens []string
}

// groupArgs splits args (without the program name) into flags and operands.
// Everything from "--" on is one operand group.
func groupArgs(args []string) []argGroup {
	var groups []argGroup
	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "--" {
			groups = append(groups, argGroup{tokens: args[i:]})
			break
		}

		if !strings.HasPrefix(a, "-") || a == "-" || isNegativeNumber(a) {
			groups = append(groups, argGroup{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		g := argGroup{key: name, tokens: []string{a}}
		if !hasValue && !boolFlags[name] && i+1 < len(args) {
			next := args[i+1]
			if !strings.HasPrefix(next, "-") || isNegativeNumber(next) {
				g.tokens = append(g.tokens, next)
				i++
			}
		}
		groups = append(groups, g)
	}
	return groups
}

func isNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// deduplicateFlags keeps only the last occurrence of each repeated flag. The
// flag spelling is the key, so -o and --output are distinct.
func deduplicateFlags(args []string) []string {
	if len(args) <= 1 {
		return args
	}

	groups := groupArgs(args[1:])

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := []string{args[0]}
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// reorderArgs moves the operands after the flags, keeping the relative order
// within each.
func reorderArgs(args []string) []string {
	if len(args) <= 1 {
		return args
	}

	var flags, operands []string
	for _, g := range groupArgs(args[1:]) {
		if g.key != "" {
			flags = append(flags, g.tokens...)
		} else {
			operands = append(operands, g.tokens...)
		}
	}

	out := append([]string{args[0]}, flags...)
	return append(out, operands...)
}
