// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package address parses 20-byte EVM account addresses and implements the
// EIP-55 mixed-case checksum encoding.
package address

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Size is the length of an address in bytes.
const Size = 20

var (
	// ErrMalformed is returned for input that is not 40 hex characters with an
	// optional 0x prefix. Callers prefix it with the argument ordinal.
	ErrMalformed = errors.New("address is malformed. Make sure to prefix with '0x' and has 40 characters in length (exclude 0x).")

	// ErrChecksum is returned by VerifyChecksum for mixed-case input whose
	// casing does not match the EIP-55 checksum.
	ErrChecksum = errors.New("address has an invalid EIP-55 checksum")
)

var pattern = regexp.MustCompile(`^(0x)?[0-9a-f]{40}$`)

// Address is a decoded account address.
type Address [Size]byte

// Parse decodes s. Case is ignored and the 0x prefix is optional.
func Parse(s string) (Address, error) {
	var a Address

	lower := strings.ToLower(strings.TrimSpace(s))
	if !pattern.MatchString(lower) {
		return a, ErrMalformed
	}

	if _, err := hex.Decode(a[:], []byte(strings.TrimPrefix(lower, "0x"))); err != nil {
		return a, ErrMalformed
	}
	return a, nil
}

// IsAddress reports whether s parses as an address.
func IsAddress(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Hex returns the lowercase 0x-prefixed form.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// Checksum returns the EIP-55 mixed-case form. A hex letter is upper-cased
// when the matching nibble of keccak256(lowercase hex) is 8 or more.
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return "0x" + string(out)
}

// VerifyChecksum checks the casing of s. All-lowercase and all-uppercase
// input carries no checksum and is accepted.
func VerifyChecksum(s string) error {
	a, err := Parse(s)
	if err != nil {
		return err
	}

	body := strings.TrimSpace(s)
	if len(body) > 1 && (body[:2] == "0x" || body[:2] == "0X") {
		body = body[2:]
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if body != a.Checksum()[2:] {
		return ErrChecksum
	}
	return nil
}
