// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/cacheutil"
	"github.com/tfctl/contractdiff/internal/chain"
	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/log"
)

const (
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
)

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Client talks JSON-RPC 2.0 to a single endpoint.
type Client struct {
	chain    chain.Chain
	endpoint string
	http     *retryablehttp.Client
	nextID   atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets the number of retries after the first attempt.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.HTTPClient.Timeout = d
		}
	}
}

// WithRetryWait sets the backoff bounds between attempts.
func WithRetryWait(lo, hi time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = lo
		c.http.RetryWaitMax = hi
	}
}

// New returns a client for the endpoint serving ch. Retries default to the
// config key rpc.retries.
func New(ch chain.Chain, endpoint string, opts ...Option) *Client {
	retries, _ := config.GetInt("rpc.retries", defaultRetries)

	hc := retryablehttp.NewClient()
	hc.HTTPClient = cleanhttp.DefaultPooledClient()
	hc.HTTPClient.Timeout = defaultTimeout
	hc.Logger = log.RetryLogger{}
	hc.RetryMax = retries

	c := &Client{
		chain:    ch,
		endpoint: endpoint,
		http:     hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// GetCode returns the runtime bytecode of addr at block as lowercase hex
// without the 0x prefix. An empty string means the account has no code.
// Results for a pinned block number are served from and written to the disk
// cache.
func (c *Client) GetCode(ctx context.Context, addr address.Address, block string) (string, error) {
	blk, pinned, err := NormalizeBlock(block)
	if err != nil {
		return "", err
	}

	subdirs := []string{c.chain.String(), "code"}
	key := cacheutil.Key(addr.Hex(), blk)

	if pinned {
		if entry, ok := cacheutil.Read(subdirs, key); ok {
			log.Debugf("code cache hit: %s", entry.Path)
			return string(entry.Data), nil
		}
	}

	res, err := c.call(ctx, "eth_getCode", addr.Hex(), blk)
	if err != nil {
		return "", err
	}

	code, err := hexResult(res)
	if err != nil {
		return "", fmt.Errorf("eth_getCode %s: %w", addr.Hex(), err)
	}

	if pinned {
		if err := cacheutil.Write(subdirs, key, []byte(code)); err != nil {
			log.WithError(err).Warn("failed to write code to cache")
		}
	}

	return code, nil
}

// call posts one JSON-RPC request and returns its result member.
func (c *Client) call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Tracef("rpc request: %s", body)

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%s: unexpected status %s", method, resp.Status)
	}

	if !gjson.ValidBytes(doc) {
		return gjson.Result{}, fmt.Errorf("%s: response is not valid JSON", method)
	}

	parsed := gjson.ParseBytes(doc)
	if e := parsed.Get("error"); e.Exists() {
		return gjson.Result{}, &Error{
			Code:    e.Get("code").Int(),
			Message: e.Get("message").String(),
		}
	}

	result := parsed.Get("result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%s: response has no result", method)
	}
	return result, nil
}

func hexResult(res gjson.Result) (string, error) {
	if res.Type != gjson.String {
		return "", fmt.Errorf("result is not a string: %s", res.Raw)
	}
	s := strings.ToLower(res.Str)
	if !strings.HasPrefix(s, "0x") {
		return "", fmt.Errorf("result is not 0x-prefixed: %q", res.Str)
	}
	s = s[2:]
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("result is not hex: %w", err)
	}
	return s, nil
}
