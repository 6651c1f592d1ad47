// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/log"
	"github.com/tfctl/contractdiff/internal/meta"
)

// InitApp builds the root command. The root action diffs its two operands;
// chains and completion are the only subcommands.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// A missing config file is normal, the flags then fall back to env and
	// built-in defaults.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}
	config.Config.Namespace = Namespace
	cfg.Namespace = Namespace

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:      "contractdiff",
		Usage:     "character diff of deployed EVM contract bytecode",
		ArgsUsage: "<left> <right>",
		Description: "Each operand is a contract address, a file holding hex (file:<path> or an existing path)\n" +
			"or an s3://bucket/key object holding hex.",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "contractdiff version info",
				HideDefault: true,
			},
		}, NewDiffFlags(cfg.Source)...),
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: diffCommandAction,
	}

	app.Commands = append(app.Commands,
		chainsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
