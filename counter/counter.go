// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counter implements a program that keeps a uint32 counter in an
// account it owns and increments it once per invocation.
package counter

import (
	"go.uber.org/zap"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/program"
)

var _ program.Entrypoint = Process

// ProgramID is the id the counter program is deployed under by the simulator.
var ProgramID = ids.ID(hashing.ComputeHash256Array([]byte(consts.Name)))

// Process increments the counter stored in the first account of [accounts].
//
// The account must be owned by [programID] and hold exactly [AccountSize]
// bytes. The counter wraps to zero after [consts.MaxUint32]. Any accounts after
// the first and the payload are ignored.
func Process(log logging.Logger, programID ids.ID, accounts []*program.AccountInfo, _ []byte) error {
	account, _, err := program.NextAccountInfo(accounts)
	if err != nil {
		return err
	}

	if account.Owner != programID {
		log.Info("account is not owned by the executing program",
			zap.Stringer("account", account.ID),
			zap.Stringer("owner", account.Owner),
			zap.Stringer("programID", programID),
		)
		return program.ErrIncorrectOwner
	}

	counter, err := Decode(account.Data)
	if err != nil {
		return err
	}
	counter.Count++
	return counter.Encode(account.Data)
}
