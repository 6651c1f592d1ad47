// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for contractdiff's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/contractdiff.yaml or $HOME/.config/contractdiff.yaml
//   - macOS: $HOME/Library/Application Support/contractdiff.yaml
//   - Windows: %APPDATA%/contractdiff.yaml
//
// CONTRACTDIFF_CFG_FILE overrides the location.
//
// Recognized keys:
//
//	chain: bsc                   # default --chain
//	chains:
//	  ethereum:
//	    rpc: https://eth.example # endpoint override per chain
//	rpc:
//	  retries: 3
//	cache:
//	  clean: 72                  # purge cached code older than N hours
//	colors:
//	  title: "#f6be00"
//	diff:
//	  output: text               # any flag default, namespaced by command
//	  defaults: ["--stats"]      # expanded by @defaults on the command line
package config
