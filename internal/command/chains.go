// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/contractdiff/internal/chain"
	"github.com/tfctl/contractdiff/internal/meta"
	"github.com/tfctl/contractdiff/internal/output"
)

func chainsCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, c := range chain.All() {
		rows = append(rows, []string{c.String(), chain.Endpoint(c, ""), c.DefaultEndpoint()})
	}

	output.TableWriter(w, []string{"chain", "endpoint", "default"}, rows, false)
	return nil
}

func chainsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "chains",
		Usage:     "list supported chains and the RPC endpoint each resolves to",
		UsageText: "contractdiff chains",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: chainsCommandAction,
	}
}
