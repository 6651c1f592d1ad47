// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/tfctl/contractdiff/internal/chain"
	"github.com/tfctl/contractdiff/internal/differ"
	"github.com/tfctl/contractdiff/internal/rpc"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func ChainValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("chain must be a string")
	}
	if s == "" {
		return nil
	}
	_, err := chain.Parse(s)
	return err
}

func BlockValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("block must be a string")
	}
	_, _, err := rpc.NormalizeBlock(s)
	return err
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !differ.ValidFormat(s) {
		return fmt.Errorf("must be one of %v", differ.Formats())
	}
	return nil
}

func ColorValidator(value any) error {
	s, _ := value.(string)
	if !differ.ValidColorMode(s) {
		return fmt.Errorf("must be one of %v", differ.ColorModes())
	}
	return nil
}

func NonNegativeValidator(value any) error {
	n, ok := value.(int)
	if !ok {
		return fmt.Errorf("must be an integer")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
