// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/cacheutil"
	"github.com/tfctl/contractdiff/internal/chain"
	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/differ"
	"github.com/tfctl/contractdiff/internal/log"
	"github.com/tfctl/contractdiff/internal/output"
	"github.com/tfctl/contractdiff/internal/rpc"
	"github.com/tfctl/contractdiff/internal/source"
)

func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 { //nolint:mnd
		return fmt.Errorf("expected two sources, got %d. See contractdiff --help", cmd.NArg())
	}

	left, right, err := source.ParsePair(cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}

	if err := checkChecksums(cmd.Bool("strict"), left, right); err != nil {
		return err
	}

	if clean, _ := config.GetInt("cache.clean", 0); clean > 0 {
		if err := cacheutil.Purge(clean); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
	}

	fetcher := &source.Fetcher{Block: cmd.String("block")}
	if left.Kind == source.KindAddress || right.Kind == source.KindAddress {
		code, err := newCodeGetter(cmd)
		if err != nil {
			return err
		}
		fetcher.Code = code
	}

	fetchCtx, cancel := withOptionalTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	l, r, err := fetcher.FetchPair(fetchCtx, left, right)
	if err != nil {
		return err
	}
	log.Debugf("fetched: left=%d right=%d chars", len(l), len(r))

	diffCtx, cancelDiff := withOptionalTimeout(ctx, cmd.Duration("diff-timeout"))
	defer cancelDiff()

	d, err := differ.Compute(diffCtx, l, r, cmd.Int("max-edits"))
	if err != nil {
		return err
	}

	return render(cmd, d)
}

// newCodeGetter resolves the chain and endpoint for address sources.
func newCodeGetter(cmd *cli.Command) (*rpc.Client, error) {
	name := cmd.String("chain")
	if name == "" {
		return nil, fmt.Errorf("--chain is required for address sources (one of %s)", strings.Join(chain.Names(), ", "))
	}
	ch, err := chain.Parse(name)
	if err != nil {
		return nil, err
	}

	endpoint := chain.Endpoint(ch, cmd.String("rpc"))
	log.Debugf("chain=%s endpoint=%s block=%s", ch, endpoint, cmd.String("block"))

	return rpc.New(ch, endpoint), nil
}

// checkChecksums warns about, or with strict rejects, mixed-case addresses
// whose casing is not a valid EIP-55 checksum.
func checkChecksums(strict bool, sources ...source.Source) error {
	for i, src := range sources {
		if src.Kind != source.KindAddress {
			continue
		}
		if err := address.VerifyChecksum(src.Raw); err != nil {
			if strict {
				return fmt.Errorf("%s %w", source.Ordinal(i+1), err)
			}
			log.Warnf("%s %v, expected %s", source.Ordinal(i+1), err, src.Address.Checksum())
		}
	}
	return nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func render(cmd *cli.Command, d differ.Diff) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	errW := cmd.Root().ErrWriter
	if errW == nil {
		errW = os.Stderr
	}

	renderer := differ.NewRenderer(w, cmd.String("color"))
	palette := differ.NewPalette(renderer)
	colored := renderer.ColorProfile() != termenv.Ascii
	format := cmd.String("output")
	width := cmd.Int("width")

	if cmd.Bool("pager") && format == differ.FormatText {
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if err := differ.Page(os.Stdin, f, d, palette, width); err != nil {
				return fmt.Errorf("pager: %w", err)
			}
			return writeStats(cmd, w, d, colored)
		}
		log.Debug("stdout is not a terminal, pager skipped")
	}

	if err := differ.Write(w, d, palette, differ.Options{Format: format, Width: width}); err != nil {
		return err
	}

	// Keep machine readable output clean.
	statsW := w
	if format == differ.FormatJSON || format == differ.FormatYAML {
		statsW = errW
	}
	return writeStats(cmd, statsW, d, colored)
}

func writeStats(cmd *cli.Command, w io.Writer, d differ.Diff, colored bool) error {
	if !cmd.Bool("stats") {
		return nil
	}
	output.StatsWriter(w, output.NewStats(d), colored)
	return nil
}
