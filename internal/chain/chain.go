// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package chain names the EVM networks contractdiff can read bytecode from
// and resolves the JSON-RPC endpoint used for each.
package chain

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/log"
)

// Chain is a supported network name.
type Chain string

const (
	BSC      Chain = "bsc"
	Ethereum Chain = "ethereum"
	Polygon  Chain = "polygon"
)

// ErrUnknown is returned by Parse for a name that is not a supported chain.
var ErrUnknown = errors.New("unknown chain")

var defaultEndpoints = map[Chain]string{
	BSC:      "https://bsc-dataseed.binance.org/",
	Ethereum: "https://rpc.ankr.com/eth",
	Polygon:  "https://polygon-rpc.com/",
}

// All returns the supported chains in display order.
func All() []Chain {
	return []Chain{BSC, Ethereum, Polygon}
}

// Names returns the supported chain names in display order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}

// Parse resolves name case-insensitively.
func Parse(name string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := defaultEndpoints[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

func (c Chain) String() string {
	return string(c)
}

// DefaultEndpoint is the public RPC endpoint used when nothing overrides it.
func (c Chain) DefaultEndpoint() string {
	return defaultEndpoints[c]
}

// Endpoint resolves the RPC URL for c. Precedence: override (the --rpc flag),
// CONTRACTDIFF_RPC, config key chains.<name>.rpc, then the default.
func Endpoint(c Chain, override string) string {
	if override != "" {
		log.Debugf("rpc endpoint from flag: %s", override)
		return override
	}
	if env := os.Getenv("CONTRACTDIFF_RPC"); env != "" {
		log.Debugf("rpc endpoint from env: %s", env)
		return env
	}
	if url, err := config.GetString("chains." + string(c) + ".rpc"); err == nil && url != "" {
		log.Debugf("rpc endpoint from config: %s", url)
		return url
	}
	return c.DefaultEndpoint()
}
