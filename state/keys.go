// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/ava-labs/avalanchego/ids"

const (
	Read  Permissions = 1
	Write             = 1<<1 | Read

	None Permissions = 0
	All              = Read | Write
)

// Keys holds the permissions an invocation was granted for each account it
// references.
type Keys map[ids.ID]Permissions

type Permissions byte

// Add grants [permission] for [account]. An account listed more than once is
// granted the union of its permissions.
func (k Keys) Add(account ids.ID, permission Permissions) {
	k[account] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
