// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/counterprogram/consts"
)

var _ Mutable = (*Recorder)(nil)

// The Recorder wraps a [Mutable] state and records which accounts are read
// and written through it. Keys that are not account keys pass through
// unrecorded.
type Recorder struct {
	// State is the underlying [Mutable] object
	state Mutable
	keys  Keys
}

func NewRecorder(mu Mutable) *Recorder {
	return &Recorder{state: mu, keys: Keys{}}
}

func (r *Recorder) record(key []byte, permission Permissions) {
	if len(key) != 1+consts.IDLen || key[0] != accountPrefix {
		return
	}
	var id ids.ID
	copy(id[:], key[1:])
	r.keys.Add(id, permission)
}

func (r *Recorder) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	r.record(key, Read)
	return r.state.GetValue(ctx, key)
}

func (r *Recorder) Insert(ctx context.Context, key []byte, value []byte) error {
	r.record(key, Write)
	return r.state.Insert(ctx, key, value)
}

func (r *Recorder) Remove(ctx context.Context, key []byte) error {
	r.record(key, Write)
	return r.state.Remove(ctx, key)
}

// GetStateKeys returns the permissions exercised so far, by account.
func (r *Recorder) GetStateKeys() Keys {
	return r.keys
}
