// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package rpc is a small Ethereum JSON-RPC client. It only knows the calls
// contractdiff needs. Requests go through go-retryablehttp, so transient
// transport failures and 5xx answers are retried with backoff, and responses
// are picked apart with gjson rather than decoded into structs.
package rpc
