// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/config"
	"github.com/tfctl/contractdiff/internal/source"
)

const (
	addrA = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	addrB = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
)

// isolate points config and cache at empty temp locations.
func isolate(t *testing.T, cfgBody string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "contractdiff.yaml")
	if cfgBody != "" {
		require.NoError(t, os.WriteFile(cfg, []byte(cfgBody), 0o600))
	}
	t.Setenv("CONTRACTDIFF_CFG_FILE", cfg)
	t.Setenv("CONTRACTDIFF_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("CONTRACTDIFF_RPC", "")
	t.Setenv("CONTRACTDIFF_CHAIN", "")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
	return dir
}

func hexFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// run executes the app and returns stdout, stderr and the run error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ctx := context.Background()
	argv := append([]string{"contractdiff"}, args...)

	app, err := InitApp(ctx, argv)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err = app.Run(ctx, argv)
	return stdout.String(), stderr.String(), err
}

func TestInitApp(t *testing.T) {
	isolate(t, "")

	app, err := InitApp(context.Background(), []string{"contractdiff"})
	require.NoError(t, err)

	assert.Equal(t, "contractdiff", app.Name)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"chains", "completion"}, names)

	for i := 1; i < len(app.Flags); i++ {
		assert.LessOrEqual(t, app.Flags[i-1].Names()[0], app.Flags[i].Names()[0], "flags are sorted")
	}
	assert.Equal(t, Namespace, config.Config.Namespace)
}

func TestDiff_Files(t *testing.T) {
	dir := isolate(t, "")
	left := hexFile(t, dir, "left.hex", "0x6080604052\n")
	right := hexFile(t, dir, "right.hex", "6080604053")

	out, _, err := run(t, "--output", "raw", "--color", "never", left, "file:"+right)
	require.NoError(t, err)
	assert.Equal(t, "608060405[-2-]{+3+}\n", out)

	out, _, err = run(t, "--color", "never", "--width", "4", left, right)
	require.NoError(t, err)
	assert.Equal(t, "6080\n6040\n523\n", out)
}

func TestDiff_JSONWithStats(t *testing.T) {
	dir := isolate(t, "")
	left := hexFile(t, dir, "left.hex", "abcd")
	right := hexFile(t, dir, "right.hex", "abef")

	out, errOut, err := run(t, "-o", "json", "--stats", left, right)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, float64(4), doc["distance"])
	assert.Equal(t, "delete", gjson.Get(out, "runs.1.tag").String())
	assert.Equal(t, "cd", gjson.Get(out, "runs.1.text").String())

	assert.Contains(t, errOut, "similarity")
	assert.Contains(t, errOut, "50.00%")
}

func TestDiff_TextStats(t *testing.T) {
	dir := isolate(t, "")
	left := hexFile(t, dir, "left.hex", "abcd")

	out, _, err := run(t, "--color", "never", "-s", left, left)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "abcd\n"))
	assert.Contains(t, out, "100.00%")
}

func TestDiff_ConfigDefaults(t *testing.T) {
	dir := isolate(t, "diff:\n  output: raw\n  color: never\n")
	left := hexFile(t, dir, "left.hex", "ab")
	right := hexFile(t, dir, "right.hex", "ac")

	out, _, err := run(t, left, right)
	require.NoError(t, err)
	assert.Equal(t, "a[-b-]{+c+}\n", out)
}

func TestDiff_Errors(t *testing.T) {
	dir := isolate(t, "")
	file := hexFile(t, dir, "code.hex", "6080")
	notHex := hexFile(t, dir, "bad.hex", "hello")
	far := hexFile(t, dir, "far.hex", "ffffffff")

	tests := []struct {
		name    string
		args    []string
		wantErr string
		is      error
	}{
		{name: "one operand", args: []string{file}, wantErr: "expected two sources, got 1"},
		{name: "malformed", args: []string{"0x1234", file}, wantErr: "1st address is malformed", is: address.ErrMalformed},
		{name: "missing chain", args: []string{addrA, file}, wantErr: "--chain is required"},
		{name: "bad output", args: []string{"-o", "html", file, file}, wantErr: "must be one of"},
		{name: "bad chain", args: []string{"-c", "solana", file, file}, wantErr: "unknown chain"},
		{name: "bad block", args: []string{"-b", "soon", file, file}, wantErr: "invalid block"},
		{name: "negative width", args: []string{"--width=-1", file, file}, wantErr: "must not be negative"},
		{name: "not hex", args: []string{file, notHex}, wantErr: "2nd source"},
		{name: "edit limit", args: []string{"--max-edits", "1", file, far}, wantErr: "edit limit exceeded"},
		{
			name:    "strict checksum",
			args:    []string{"--strict", "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", file},
			wantErr: "1st address has an invalid EIP-55 checksum",
			is:      address.ErrChecksum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestDiff_Addresses(t *testing.T) {
	isolate(t, "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		req := gjson.ParseBytes(body)
		code := map[string]string{addrA: "0x60806040", addrB: "0x60806041"}[req.Get("params.0").String()]
		if code == "" {
			code = "0x"
		}
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":`+req.Get("id").Raw+`,"result":"`+code+`"}`)
	}))
	t.Cleanup(srv.Close)

	out, _, err := run(t, "-c", "BSC", "--rpc", srv.URL, "-o", "raw", addrA, addrB)
	require.NoError(t, err)
	assert.Equal(t, "6080604[-0-]{+1+}\n", out)

	eoa := "0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb"
	_, _, err = run(t, "-c", "bsc", "--rpc", srv.URL, addrA, eoa)
	require.ErrorIs(t, err, source.ErrNotContract)
	assert.Equal(t, "2nd address is **not** a contract address.", err.Error())
}

func TestChainsCommand(t *testing.T) {
	isolate(t, "chains:\n  polygon:\n    rpc: https://polygon.example/rpc\n")

	out, _, err := run(t, "chains")
	require.NoError(t, err)
	assert.Contains(t, out, "bsc")
	assert.Contains(t, out, "ethereum")
	assert.Contains(t, out, "https://polygon.example/rpc")
	assert.Contains(t, out, "https://polygon-rpc.com/")
}

func TestCompletionCommand(t *testing.T) {
	isolate(t, "")

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _contractdiff contractdiff")

	out, _, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef contractdiff")

	t.Setenv("SHELL", "/bin/fish")
	_, _, err = run(t, "completion")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ChainValidator("Ethereum"))
	assert.NoError(t, ChainValidator(""))
	assert.Error(t, ChainValidator("tron"))
	assert.Error(t, ChainValidator(1))

	assert.NoError(t, BlockValidator("0x10"))
	assert.Error(t, BlockValidator("x"))

	assert.NoError(t, OutputValidator("yaml"))
	assert.Error(t, OutputValidator("csv"))

	assert.NoError(t, ColorValidator("always"))
	assert.Error(t, ColorValidator("yes"))

	assert.NoError(t, NonNegativeValidator(0))
	assert.Error(t, NonNegativeValidator(-3))
	assert.Error(t, NonNegativeValidator("3"))

	assert.NoError(t, FlagValidators("json", OutputValidator, func(any) error { return nil }))
}

func TestSourceChain(t *testing.T) {
	assert.Len(t, sourceChain("", []string{"A", "B"}, "diff.x", "x").Chain, 2)
	assert.Len(t, sourceChain("/tmp/c.yaml", []string{"A"}, "diff.x", "x").Chain, 3)
	assert.Empty(t, sourceChain("", nil, "diff.x").Chain)
}
