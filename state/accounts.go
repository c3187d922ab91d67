// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/consts"
)

const (
	accountPrefix byte = 0x0

	// MaxAccountSize is the largest data buffer an account may hold.
	MaxAccountSize = 10 * units.MiB
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountTooLarge = errors.New("account too large")
	ErrCorruptAccount  = errors.New("corrupt account")
)

// Account is the stored form of an account: the program that owns it and its
// data buffer.
type Account struct {
	ID    ids.ID
	Owner ids.ID
	Data  []byte
}

// [accountPrefix] + [id]
func AccountKey(id ids.ID) (k []byte) {
	k = make([]byte, 1+consts.IDLen)
	k[0] = accountPrefix
	copy(k[1:], id[:])
	return
}

func GetAccount(ctx context.Context, im Immutable, id ids.ID) (*Account, error) {
	v, err := im.GetValue(ctx, AccountKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if len(v) < consts.IDLen {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrCorruptAccount, id, len(v))
	}
	account := &Account{
		ID:   id,
		Data: make([]byte, len(v)-consts.IDLen),
	}
	copy(account.Owner[:], v[:consts.IDLen])
	copy(account.Data, v[consts.IDLen:])
	return account, nil
}

// HasAccount reports whether an account is stored under [id].
func HasAccount(ctx context.Context, im Immutable, id ids.ID) (bool, error) {
	_, err := im.GetValue(ctx, AccountKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetAccount(ctx context.Context, mu Mutable, account *Account) error {
	if len(account.Data) > MaxAccountSize {
		return fmt.Errorf("%w: %d > %d", ErrAccountTooLarge, len(account.Data), MaxAccountSize)
	}
	size := consts.IDLen + len(account.Data)
	p := codec.NewWriter(size, size)
	p.PackID(account.Owner)
	p.PackFixedBytes(account.Data)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(account.ID), p.Bytes())
}

func DeleteAccount(ctx context.Context, mu Mutable, id ids.ID) error {
	return mu.Remove(ctx, AccountKey(id))
}
