// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestSimpleMutable(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	db := NewMemDB()
	require.NoError(db.Put([]byte("a"), []byte("1")))
	require.NoError(db.Put([]byte("b"), []byte("2")))

	mu := NewSimpleMutable(NewView(db))
	require.NoError(mu.Insert(ctx, []byte("a"), []byte("3")))
	require.NoError(mu.Remove(ctx, []byte("b")))
	require.NoError(mu.Insert(ctx, []byte("c"), []byte("4")))
	require.Equal(3, mu.Len())

	// reads observe pending changes
	v, err := mu.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("3"), v)
	_, err = mu.GetValue(ctx, []byte("b"))
	require.ErrorIs(err, database.ErrNotFound)

	// database is untouched until commit
	v, err = db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	_, err = db.Get([]byte("c"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(mu.Commit(db.NewBatch()))
	require.Zero(mu.Len())

	v, err = db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("3"), v)
	has, err := db.Has([]byte("b"))
	require.NoError(err)
	require.False(has)
	v, err = db.Get([]byte("c"))
	require.NoError(err)
	require.Equal([]byte("4"), v)
}

func TestAccounts(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	mu := MutableStorage{}
	id := ids.GenerateTestID()

	_, err := GetAccount(ctx, mu, id)
	require.ErrorIs(err, ErrAccountNotFound)
	exists, err := HasAccount(ctx, mu, id)
	require.NoError(err)
	require.False(exists)

	account := &Account{
		ID:    id,
		Owner: ids.GenerateTestID(),
		Data:  []byte{1, 2, 3, 4},
	}
	require.NoError(SetAccount(ctx, mu, account))

	stored, err := GetAccount(ctx, mu, id)
	require.NoError(err)
	require.Equal(account, stored)
	exists, err = HasAccount(ctx, mu, id)
	require.NoError(err)
	require.True(exists)

	// returned data does not alias storage
	stored.Data[0] = 9
	again, err := GetAccount(ctx, mu, id)
	require.NoError(err)
	require.Equal(byte(1), again.Data[0])

	// empty data is a valid account
	empty := &Account{ID: ids.GenerateTestID(), Owner: account.Owner, Data: []byte{}}
	require.NoError(SetAccount(ctx, mu, empty))
	stored, err = GetAccount(ctx, mu, empty.ID)
	require.NoError(err)
	require.Empty(stored.Data)

	require.NoError(DeleteAccount(ctx, mu, id))
	_, err = GetAccount(ctx, mu, id)
	require.ErrorIs(err, ErrAccountNotFound)
}

func TestCorruptAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	id := ids.GenerateTestID()
	mu := MutableStorage{string(AccountKey(id)): {1, 2, 3}}
	_, err := GetAccount(ctx, mu, id)
	require.ErrorIs(err, ErrCorruptAccount)
}

func TestAccountTooLarge(t *testing.T) {
	err := SetAccount(context.Background(), MutableStorage{}, &Account{
		ID:   ids.GenerateTestID(),
		Data: make([]byte, MaxAccountSize+1),
	})
	require.ErrorIs(t, err, ErrAccountTooLarge)
}
