// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/counterprogram/consts"
)

const (
	signerFlag   byte = 1 << 0
	writableFlag byte = 1 << 1
	knownFlags        = signerFlag | writableFlag

	accountMetaLen = consts.IDLen + consts.ByteLen

	// MaxInvocationSize is the largest encoded invocation accepted by
	// [UnmarshalInvocation].
	MaxInvocationSize = consts.IDLen +
		consts.Uint32Len + consts.MaxAccounts*accountMetaLen +
		consts.Uint32Len + consts.MaxPayloadSize
)

// AccountMeta references an account by id along with the flags the caller
// grants the invoked program for it.
type AccountMeta struct {
	ID         ids.ID `json:"id"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

func (a AccountMeta) flags() byte {
	var f byte
	if a.IsSigner {
		f |= signerFlag
	}
	if a.IsWritable {
		f |= writableFlag
	}
	return f
}

// Invocation is a single call into a program: the program to run, the
// ordered accounts it may touch and an opaque payload.
type Invocation struct {
	ProgramID ids.ID        `json:"programID"`
	Accounts  []AccountMeta `json:"accounts"`
	Payload   Bytes         `json:"payload"`
}

// Size returns the number of bytes [Marshal] produces.
func (i *Invocation) Size() int {
	return consts.IDLen +
		consts.Uint32Len + len(i.Accounts)*accountMetaLen +
		consts.Uint32Len + len(i.Payload)
}

// Marshal encodes the invocation as
// programID | len(accounts) | (id | flags)* | len(payload) | payload.
func (i *Invocation) Marshal() ([]byte, error) {
	if len(i.Accounts) > consts.MaxAccounts {
		return nil, fmt.Errorf("%w: %d accounts > %d", ErrTooManyItems, len(i.Accounts), consts.MaxAccounts)
	}
	if len(i.Payload) > consts.MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload %d > %d", ErrTooManyItems, len(i.Payload), consts.MaxPayloadSize)
	}

	p := NewWriter(i.Size(), MaxInvocationSize)
	p.PackID(i.ProgramID)
	p.PackInt(uint32(len(i.Accounts)))
	for _, account := range i.Accounts {
		p.PackID(account.ID)
		p.PackByte(account.flags())
	}
	p.PackBytes(i.Payload)
	return p.Bytes(), p.Err()
}

// UnmarshalInvocation decodes bytes produced by [Invocation.Marshal]. Trailing
// bytes are rejected.
func UnmarshalInvocation(b []byte) (*Invocation, error) {
	var (
		p   = NewReader(b, MaxInvocationSize)
		inv Invocation
	)
	p.UnpackID(true, &inv.ProgramID)

	numAccounts := p.UnpackInt(false)
	if numAccounts > consts.MaxAccounts {
		return nil, fmt.Errorf("%w: %d accounts > %d", ErrTooManyItems, numAccounts, consts.MaxAccounts)
	}
	if numAccounts > 0 {
		inv.Accounts = make([]AccountMeta, 0, numAccounts)
	}
	for j := uint32(0); j < numAccounts; j++ {
		var account AccountMeta
		p.UnpackID(true, &account.ID)
		flags := p.UnpackByte()
		if flags&^knownFlags != 0 {
			return nil, fmt.Errorf("%w: unknown account flags %#x", ErrInvalidInvocation, flags)
		}
		account.IsSigner = flags&signerFlag != 0
		account.IsWritable = flags&writableFlag != 0
		inv.Accounts = append(inv.Accounts, account)
	}

	var payload []byte
	p.UnpackBytes(consts.MaxPayloadSize, false, &payload)
	inv.Payload = payload

	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInvocation, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInvocation, ErrTrailingBytes)
	}
	return &inv, nil
}
