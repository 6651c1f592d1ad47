// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/contractdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for contractdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_contractdiff()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "chains completion" -- "$cur") $(compgen -f -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        chains)
            return 0
            ;;
    esac

    case "$prev" in
        --chain|-c)
            COMPREPLY=( $(compgen -W "bsc ethereum polygon" -- "$cur") )
            return 0
            ;;
        --output|-o)
            COMPREPLY=( $(compgen -W "text raw json yaml" -- "$cur") )
            return 0
            ;;
        --color)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
        --block|-b)
            COMPREPLY=( $(compgen -W "latest earliest pending safe finalized" -- "$cur") )
            return 0
            ;;
        --rpc|--width|-w|--timeout|--diff-timeout|--max-edits)
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        local opts="--chain -c --rpc --block -b --output -o --color --width -w --stats -s --pager -p --timeout --diff-timeout --max-edits --strict --help --version"
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Operands may be files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _contractdiff contractdiff
`

const zshCompletionScript = `#compdef contractdiff

_contractdiff() {
  local -a cmds
  cmds=(
    'chains:list supported chains'
    'completion:generate shell completion script'
  )

  case $words[2] in
    completion)
      _arguments '2: :((bash zsh))'
      return
      ;;
    chains)
      return
      ;;
  esac

  _arguments -C \
    '(-c --chain)'{-c,--chain}'[chain]:chain:(bsc ethereum polygon)' \
    '--rpc[JSON-RPC endpoint]:url' \
    '(-b --block)'{-b,--block}'[block]:block:(latest earliest pending safe finalized)' \
    '(-o --output)'{-o,--output}'[output format]:format:(text raw json yaml)' \
    '--color[colorize output]:when:(auto always never)' \
    '(-w --width)'{-w,--width}'[wrap width]:width' \
    '(-s --stats)'{-s,--stats}'[print summary table]' \
    '(-p --pager)'{-p,--pager}'[browse in a pager]' \
    '--timeout[fetch timeout]:duration' \
    '--diff-timeout[diff timeout]:duration' \
    '--max-edits[edit limit]:count' \
    '--strict[fail on bad checksum]' \
    '1: :->first' \
    '2:right:_files'

  if [[ $state == first ]]; then
    _describe -t commands 'contractdiff commands' cmds
    _files
  fi
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _contractdiff contractdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: contractdiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "contractdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
