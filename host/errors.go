// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "errors"

var (
	ErrNilEntrypoint    = errors.New("nil entrypoint")
	ErrDuplicateProgram = errors.New("program already deployed")
	ErrProgramNotFound  = errors.New("program not found")
	ErrAccountExists    = errors.New("account already exists")
	ErrInvalidSize      = errors.New("invalid account size")
	ErrTooManyAccounts  = errors.New("too many accounts")
	ErrPayloadTooLarge  = errors.New("payload too large")

	ErrProgramFailed           = errors.New("program failed")
	ErrProgramPanicked         = errors.New("program panicked")
	ErrExternalAccountModified = errors.New("program modified data of an account it does not own")
	ErrReadonlyAccountModified = errors.New("program modified a readonly account")
	ErrAccountResized          = errors.New("program changed the size of an account")
	ErrOwnerModified           = errors.New("program changed the owner of an account")
)
