// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/contractdiff/internal/differ"
	"github.com/tfctl/contractdiff/internal/rpc"
)

// Namespace is the config file section holding flag defaults.
const Namespace = "diff"

// NewDiffFlags returns the flags of the root diff command. Values come from
// the command line, then CONTRACTDIFF_* env vars, then the config file at
// cfgPath (diff.<flag> before <flag>).
func NewDiffFlags(cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "chain",
			Aliases: []string{"c"},
			Usage:   "chain the addresses live on (bsc, ethereum, polygon)",
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_CHAIN"}, Namespace+".chain", "chain"),
			Validator: func(value string) error {
				return FlagValidators(value, ChainValidator)
			},
		},
		&cli.StringFlag{
			Name:    "rpc",
			Usage:   "JSON-RPC endpoint. Overrides chains.<chain>.rpc and the public default",
			Sources: sourceChain(cfgPath, nil, Namespace+".rpc"),
		},
		&cli.StringFlag{
			Name:    "block",
			Aliases: []string{"b"},
			Usage:   "block to read code at: a number, 0x quantity, or latest, earliest, pending, safe, finalized",
			Value:   rpc.DefaultBlock,
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_BLOCK"}, Namespace+".block", "block"),
			Validator: func(value string) error {
				return FlagValidators(value, BlockValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, raw, json, yaml)",
			Value:   differ.FormatText,
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_OUTPUT"}, Namespace+".output", "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "color",
			Usage:   "colorize text output (auto, always, never)",
			Value:   differ.ColorAuto,
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_COLOR"}, Namespace+".color", "color"),
			Validator: func(value string) error {
				return FlagValidators(value, ColorValidator)
			},
		},
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "wrap output at this many characters, 0 for one line",
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_WIDTH"}, Namespace+".width", "width"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "stats",
			Aliases: []string{"s"},
			Usage:   "print a summary table after the diff",
			Sources: sourceChain(cfgPath, nil, Namespace+".stats", "stats"),
		},
		&cli.BoolFlag{
			Name:    "pager",
			Aliases: []string{"p"},
			Usage:   "browse the diff in a pager (terminal only)",
			Sources: sourceChain(cfgPath, nil, Namespace+".pager", "pager"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "time allowed for fetching both sources",
			Value:   time.Minute,
			Sources: sourceChain(cfgPath, []string{"CONTRACTDIFF_TIMEOUT"}, Namespace+".timeout", "timeout"),
		},
		&cli.DurationFlag{
			Name:    "diff-timeout",
			Usage:   "time allowed for computing the diff, 0 for no limit",
			Sources: sourceChain(cfgPath, nil, Namespace+".diff-timeout", "diff-timeout"),
		},
		&cli.IntFlag{
			Name:    "max-edits",
			Usage:   "give up when the sources are more than this many edits apart, 0 for no limit",
			Sources: sourceChain(cfgPath, nil, Namespace+".max-edits", "max-edits"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "fail instead of warning on a bad address checksum",
			Sources: sourceChain(cfgPath, nil, Namespace+".strict", "strict"),
		},
	}
}

// sourceChain builds a flag's value sources: the env vars in order, then each
// config file key in order. Config keys are skipped when there is no file.
func sourceChain(cfgPath string, envs []string, keys ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if cfgPath == "" {
		return chain
	}
	for _, key := range keys {
		chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(cfgPath)))
	}
	return chain
}
