// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
)

// Entrypoint is the single function a program exposes to the host.
//
// [log] receives the program's diagnostic messages, [programID] is the id the
// program is executing as, [accounts] are supplied by the caller in order and
// [payload] is the opaque instruction data of the invocation.
type Entrypoint func(
	log logging.Logger,
	programID ids.ID,
	accounts []*AccountInfo,
	payload []byte,
) error
