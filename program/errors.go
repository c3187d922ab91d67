// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "errors"

// Errors a program may return to the host.
var (
	ErrMissingAccount = errors.New("not enough account keys")
	ErrIncorrectOwner = errors.New("incorrect program id for account")
	ErrDecode         = errors.New("failed to decode account data")
	ErrEncode         = errors.New("failed to encode account data")
)
