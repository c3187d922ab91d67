// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
)

// programLog collects the diagnostic lines a program writes during one
// invocation.
type programLog struct {
	buf bytes.Buffer
}

func (p *programLog) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

func (*programLog) Close() error {
	return nil
}

func (p *programLog) logger() logging.Logger {
	return logging.NewLogger("", logging.NewWrappedCore(logging.Info, p, logging.Plain.ConsoleEncoder()))
}

func (p *programLog) lines() []string {
	s := strings.TrimSpace(p.buf.String())
	if len(s) == 0 {
		return nil
	}
	return strings.Split(s, "\n")
}
