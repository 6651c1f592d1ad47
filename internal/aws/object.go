// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/contractdiff/internal/log"
)

// MaxObjectSize caps how much of an object is read. Deployed bytecode is at
// most 24KiB, so a hex dump of any real contract fits comfortably.
const MaxObjectSize = 4 << 20

// ObjectGetter is the part of the S3 API used to read sources.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// ErrObjectTooLarge is returned when an object exceeds MaxObjectSize.
var ErrObjectTooLarge = errors.New("s3 object too large")

// ParseURI splits s3://bucket/key.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs a bucket and a key: %q", uri)
	}
	return bucket, key, nil
}

// ReadObject returns the body of bucket/key.
func ReadObject(ctx context.Context, api ObjectGetter, bucket, key string) ([]byte, error) {
	out, err := api.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	if len(data) > MaxObjectSize {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectTooLarge, bucket, key)
	}

	log.Debugf("s3 read: bucket=%s key=%s bytes=%d", bucket, key, len(data))
	return data, nil
}
