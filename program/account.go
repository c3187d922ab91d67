// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/avalanchego/ids"
)

// AccountInfo is the view of an account handed to a program for the duration
// of one invocation. [Data] aliases the host's buffer; programs mutate it in
// place and must not retain it after returning.
type AccountInfo struct {
	ID    ids.ID
	Owner ids.ID
	Data  []byte

	IsSigner   bool
	IsWritable bool
}

// NextAccountInfo returns the first account of [accounts] and the remaining
// accounts.
func NextAccountInfo(accounts []*AccountInfo) (*AccountInfo, []*AccountInfo, error) {
	if len(accounts) == 0 {
		return nil, nil, ErrMissingAccount
	}
	return accounts[0], accounts[1:], nil
}
