// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/aws"
)

const (
	addrA = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	addrB = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
)

type fakeCode struct {
	code  map[string]string
	err   error
	block atomic.Value
}

func (f *fakeCode) GetCode(ctx context.Context, addr address.Address, block string) (string, error) {
	f.block.Store(block)
	if f.err != nil {
		return "", f.err
	}
	return f.code[addr.Hex()], nil
}

type fakeS3 map[string]string

func (f fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	body, ok := f[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "code.hex")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParse(t *testing.T) {
	file := writeFile(t, "6080")

	tests := []struct {
		name    string
		input   string
		want    Kind
		wantStr string
		wantErr error
	}{
		{name: "address", input: addrA, want: KindAddress, wantStr: addrA},
		{name: "address no prefix", input: addrA[2:], want: KindAddress, wantStr: addrA},
		{name: "s3", input: "s3://builds/v1.hex", want: KindS3, wantStr: "s3://builds/v1.hex"},
		{name: "file prefix", input: "file:" + file, want: KindFile, wantStr: file},
		{name: "existing path", input: file, want: KindFile, wantStr: file},
		{name: "garbage", input: "0x1234", wantErr: address.ErrMalformed},
		{name: "missing path", input: filepath.Join(t.TempDir(), "nope"), wantErr: address.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}

	_, err := Parse("s3://bucket-only")
	assert.Error(t, err)
	_, err = Parse("file:")
	assert.Error(t, err)
}

func TestParsePair_Ordinals(t *testing.T) {
	_, _, err := ParsePair("0xdead", addrB)
	require.ErrorIs(t, err, address.ErrMalformed)
	assert.Equal(t, "1st address is malformed. Make sure to prefix with '0x' and has 40 characters in length (exclude 0x).", err.Error())

	_, _, err = ParsePair(addrA, "nope")
	require.ErrorIs(t, err, address.ErrMalformed)
	assert.True(t, strings.HasPrefix(err.Error(), "2nd address is malformed."))

	l, r, err := ParsePair(addrA, addrB)
	require.NoError(t, err)
	assert.Equal(t, addrA, l.String())
	assert.Equal(t, addrB, r.String())
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 102: "102nd"} {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "address", KindAddress.String())
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "s3", KindS3.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "0x6080604052", want: "6080604052"},
		{input: "  0X60AB\n", want: "60ab"},
		{input: "6080\n6040\n52\n", want: "6080604052"},
		{input: "", want: ""},
		{input: "0x", want: ""},
		{input: "608", wantErr: true},
		{input: "60zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeHex(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	code := &fakeCode{code: map[string]string{addrA: "6080aa"}}
	f := &Fetcher{
		Code:  code,
		Block: "1000",
		NewS3: func(context.Context) (aws.ObjectGetter, error) {
			return fakeS3{"builds/v1.hex": "0x6080BB\n"}, nil
		},
	}

	src, err := Parse(addrA)
	require.NoError(t, err)
	got, err := f.Fetch(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "6080aa", got)
	assert.Equal(t, "1000", code.block.Load())

	src, err = Parse("s3://builds/v1.hex")
	require.NoError(t, err)
	got, err = f.Fetch(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "6080bb", got)

	src, err = Parse("file:" + writeFile(t, "0x6080cc"))
	require.NoError(t, err)
	got, err = f.Fetch(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "6080cc", got)

	src, err = Parse("file:" + filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)
	_, err = f.Fetch(ctx, src)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_NotContract(t *testing.T) {
	f := &Fetcher{Code: &fakeCode{code: map[string]string{}}}
	src, err := Parse(addrB)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), src)
	assert.ErrorIs(t, err, ErrNotContract)
}

func TestFetch_S3FactoryOnce(t *testing.T) {
	var calls atomic.Int32
	f := &Fetcher{NewS3: func(context.Context) (aws.ObjectGetter, error) {
		calls.Add(1)
		return fakeS3{"b/l": "60", "b/r": "61"}, nil
	}}

	l, err := Parse("s3://b/l")
	require.NoError(t, err)
	r, err := Parse("s3://b/r")
	require.NoError(t, err)

	left, right, err := f.FetchPair(context.Background(), l, r)
	require.NoError(t, err)
	assert.Equal(t, "60", left)
	assert.Equal(t, "61", right)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchPair(t *testing.T) {
	f := &Fetcher{Code: &fakeCode{code: map[string]string{addrA: "6080", addrB: "6081"}}}
	l, r, err := ParsePair(addrA, addrB)
	require.NoError(t, err)

	left, right, err := f.FetchPair(context.Background(), l, r)
	require.NoError(t, err)
	assert.Equal(t, "6080", left)
	assert.Equal(t, "6081", right)
}

func TestFetchPair_NotContractOrdinal(t *testing.T) {
	f := &Fetcher{Code: &fakeCode{code: map[string]string{addrA: "6080"}}}
	l, r, err := ParsePair(addrA, addrB)
	require.NoError(t, err)

	_, _, err = f.FetchPair(context.Background(), l, r)
	require.ErrorIs(t, err, ErrNotContract)
	assert.Equal(t, "2nd address is **not** a contract address.", err.Error())
}

// blockingCode fails for one address and blocks on the other until its
// context is canceled.
type blockingCode struct {
	fail address.Address
}

func (b blockingCode) GetCode(ctx context.Context, addr address.Address, _ string) (string, error) {
	if addr == b.fail {
		return "", errors.New("connection refused")
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func TestFetchPair_FirstErrorCancels(t *testing.T) {
	l, r, err := ParsePair(addrA, addrB)
	require.NoError(t, err)

	f := &Fetcher{Code: blockingCode{fail: r.Address}}
	_, _, err = f.FetchPair(context.Background(), l, r)
	require.Error(t, err)
	assert.Equal(t, `2nd source "`+addrB+`": connection refused`, err.Error())
}
