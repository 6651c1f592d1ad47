// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultBlock is the block tag used when none is given.
const DefaultBlock = "latest"

// BlockTags are the named blocks a node understands.
var BlockTags = []string{"latest", "earliest", "pending", "safe", "finalized"}

// NormalizeBlock turns a --block value into its JSON-RPC form. Tags pass
// through, decimal and 0x numbers become a 0x quantity. pinned reports
// whether the block is a fixed number, whose state can never change.
func NormalizeBlock(block string) (string, bool, error) {
	b := strings.ToLower(strings.TrimSpace(block))
	if b == "" {
		return DefaultBlock, false, nil
	}

	if slices.Contains(BlockTags, b) {
		return b, false, nil
	}

	base := 10
	digits := b
	if strings.HasPrefix(b, "0x") {
		base = 16
		digits = b[2:]
	}

	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return "", false, fmt.Errorf("invalid block %q: want a number, 0x quantity or one of %s",
			block, strings.Join(BlockTags, ", "))
	}

	return "0x" + strconv.FormatUint(n, 16), true, nil
}
