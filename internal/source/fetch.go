// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/aws"
	"github.com/tfctl/contractdiff/internal/log"
)

// CodeGetter reads deployed bytecode. *rpc.Client satisfies it.
type CodeGetter interface {
	GetCode(ctx context.Context, addr address.Address, block string) (string, error)
}

// S3Factory builds the S3 client used for s3:// sources.
type S3Factory func(ctx context.Context) (aws.ObjectGetter, error)

// Fetcher turns sources into lowercase hex without a 0x prefix.
type Fetcher struct {
	Code  CodeGetter
	Block string
	NewS3 S3Factory

	mu sync.Mutex
	s3 aws.ObjectGetter
}

// DefaultS3 loads AWS config from the environment and the config file.
// CONTRACTDIFF_S3_ENDPOINT selects an S3-compatible endpoint.
func DefaultS3(ctx context.Context) (aws.ObjectGetter, error) {
	cfg, err := aws.LoadAWSConfig(ctx, aws.FromConfig()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return aws.NewS3(cfg, aws.WithEndpoint(os.Getenv("CONTRACTDIFF_S3_ENDPOINT"))), nil
}

// Fetch returns the bytecode behind src.
func (f *Fetcher) Fetch(ctx context.Context, src Source) (string, error) {
	log.Debugf("fetching %s source %s", src.Kind, src)

	switch src.Kind {
	case KindAddress:
		if f.Code == nil {
			return "", fmt.Errorf("no rpc client for %s", src)
		}
		code, err := f.Code.GetCode(ctx, src.Address, f.Block)
		if err != nil {
			return "", err
		}
		if code == "" {
			return "", ErrNotContract
		}
		return code, nil

	case KindFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", err
		}
		return NormalizeHex(string(data))

	case KindS3:
		api, err := f.s3Client(ctx)
		if err != nil {
			return "", err
		}
		data, err := aws.ReadObject(ctx, api, src.Bucket, src.Key)
		if err != nil {
			return "", err
		}
		return NormalizeHex(string(data))

	default:
		return "", fmt.Errorf("unsupported source kind %s", src.Kind)
	}
}

// FetchPair fetches both sources concurrently. The first failure cancels the
// other fetch and is returned with its ordinal.
func (f *Fetcher) FetchPair(ctx context.Context, left, right Source) (string, string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var codes [2]string
	for i, src := range []Source{left, right} {
		g.Go(func() error {
			code, err := f.Fetch(gctx, src)
			if err != nil {
				return withOrdinal(i+1, src.Raw, err)
			}
			codes[i] = code
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return codes[0], codes[1], nil
}

func (f *Fetcher) s3Client(ctx context.Context) (aws.ObjectGetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.s3 != nil {
		return f.s3, nil
	}
	factory := f.NewS3
	if factory == nil {
		factory = DefaultS3
	}
	api, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	f.s3 = api
	return api, nil
}

// NormalizeHex strips whitespace and an optional 0x prefix, lowercases, and
// checks that what is left is whole bytes of hex.
func NormalizeHex(s string) (string, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "0x")

	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("content is not hex bytecode: %w", err)
	}
	return s, nil
}
