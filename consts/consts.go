// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "counter"

	IDLen     = 32
	ByteLen   = 1
	Uint32Len = 4

	MaxUint32 = ^uint32(0)

	// MaxAccounts is the largest number of accounts a single invocation may
	// reference.
	MaxAccounts = 64
	// MaxPayloadSize bounds the opaque instruction payload of an invocation.
	MaxPayloadSize = 1_232
)
