// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/program"
)

// AccountSize is the exact number of bytes of an encoded [Account].
const AccountSize = consts.Uint32Len

// Account is the record stored in a counter account: a single little-endian
// uint32 with no header, tag or padding.
type Account struct {
	Count uint32
}

// Decode parses [data] as an [Account]. [data] must be exactly
// [AccountSize] bytes.
func Decode(data []byte) (*Account, error) {
	if len(data) != AccountSize {
		return nil, fmt.Errorf("%w: expected %d bytes but found %d", program.ErrDecode, AccountSize, len(data))
	}
	a := new(Account)
	if err := borsh.Deserialize(a, data); err != nil {
		return nil, fmt.Errorf("%w: %w", program.ErrDecode, err)
	}
	return a, nil
}

// Bytes returns the encoding of [a].
func (a *Account) Bytes() []byte {
	b, err := borsh.Serialize(*a)
	if err != nil {
		// A struct of a single uint32 always serializes.
		panic(err)
	}
	return b
}

// Encode writes [a] at the start of [dst] without changing its length.
func (a *Account) Encode(dst []byte) error {
	if len(dst) < AccountSize {
		return fmt.Errorf("%w: need %d bytes but only %d available", program.ErrEncode, AccountSize, len(dst))
	}
	copy(dst, a.Bytes())
	return nil
}
