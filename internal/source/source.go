// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source resolves the two command line operands into hex-encoded
// bytecode. An operand is a contract address read over JSON-RPC, a local
// file, or an S3 object.
package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/contractdiff/internal/address"
	"github.com/tfctl/contractdiff/internal/aws"
)

// Kind says where a source's bytes come from.
type Kind int

const (
	KindAddress Kind = iota
	KindFile
	KindS3
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindFile:
		return "file"
	case KindS3:
		return "s3"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrNotContract is returned for an address that holds no code.
var ErrNotContract = errors.New("address is **not** a contract address.")

// Source is a parsed operand.
type Source struct {
	Kind    Kind
	Raw     string
	Address address.Address
	Path    string
	Bucket  string
	Key     string
}

func (s Source) String() string {
	switch s.Kind {
	case KindAddress:
		return s.Address.Hex()
	case KindS3:
		return "s3://" + s.Bucket + "/" + s.Key
	default:
		return s.Path
	}
}

// Parse classifies arg. An address wins over a file of the same name. Input
// that is none of the three is reported as a malformed address.
func Parse(arg string) (Source, error) {
	arg = strings.TrimSpace(arg)
	src := Source{Raw: arg}

	if a, err := address.Parse(arg); err == nil {
		src.Kind = KindAddress
		src.Address = a
		return src, nil
	}

	if strings.HasPrefix(arg, "s3://") {
		bucket, key, err := aws.ParseURI(arg)
		if err != nil {
			return Source{}, err
		}
		src.Kind = KindS3
		src.Bucket = bucket
		src.Key = key
		return src, nil
	}

	if path, ok := strings.CutPrefix(arg, "file:"); ok {
		if path == "" {
			return Source{}, errors.New("file source needs a path")
		}
		src.Kind = KindFile
		src.Path = path
		return src, nil
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		src.Kind = KindFile
		src.Path = arg
		return src, nil
	}

	return Source{}, address.ErrMalformed
}

// ParsePair parses both operands, naming the failing one by ordinal.
func ParsePair(left, right string) (Source, Source, error) {
	l, err := Parse(left)
	if err != nil {
		return Source{}, Source{}, withOrdinal(1, left, err)
	}
	r, err := Parse(right)
	if err != nil {
		return Source{}, Source{}, withOrdinal(2, right, err)
	}
	return l, r, nil
}

// Ordinal renders n as 1st, 2nd, 3rd, 4th and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// withOrdinal prefixes err with the operand position. Address errors read as
// a sentence ("1st address is malformed..."), others name the operand.
func withOrdinal(n int, raw string, err error) error {
	if errors.Is(err, address.ErrMalformed) || errors.Is(err, ErrNotContract) {
		return fmt.Errorf("%s %w", Ordinal(n), err)
	}
	return fmt.Errorf("%s source %q: %w", Ordinal(n), raw, err)
}
