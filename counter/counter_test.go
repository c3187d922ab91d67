// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/program"
)

func encodeCount(n uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, n)
}

func newAccount(owner ids.ID, data []byte) *program.AccountInfo {
	return &program.AccountInfo{
		ID:         ids.GenerateTestID(),
		Owner:      owner,
		Data:       data,
		IsWritable: true,
	}
}

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error {
	return nil
}

func TestProcess(t *testing.T) {
	programID := ids.GenerateTestID()
	otherID := ids.GenerateTestID()

	tests := []struct {
		name     string
		accounts func() []*program.AccountInfo
		payload  []byte
		err      error
		// expected data of the first account after the call
		data []byte
		// expected diagnostic lines
		logs int
	}{
		{
			name: "increment from zero",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, encodeCount(0))}
			},
			data: encodeCount(1),
		},
		{
			name: "increment existing",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, encodeCount(41))}
			},
			data: encodeCount(42),
		},
		{
			name: "wraps at max uint32",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, encodeCount(consts.MaxUint32))}
			},
			data: encodeCount(0),
		},
		{
			name: "extra accounts ignored",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{
					newAccount(programID, encodeCount(7)),
					newAccount(otherID, encodeCount(100)),
				}
			},
			data: encodeCount(8),
		},
		{
			name: "missing account",
			accounts: func() []*program.AccountInfo {
				return nil
			},
			err: program.ErrMissingAccount,
		},
		{
			name: "incorrect owner",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(otherID, encodeCount(5))}
			},
			err:  program.ErrIncorrectOwner,
			data: encodeCount(5),
			logs: 1,
		},
		{
			name: "incorrect owner of uninitialized account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(otherID, []byte{})}
			},
			err:  program.ErrIncorrectOwner,
			data: []byte{},
			logs: 1,
		},
		{
			name: "incorrect owner of short account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(otherID, []byte{1, 2, 3})}
			},
			err:  program.ErrIncorrectOwner,
			data: []byte{1, 2, 3},
			logs: 1,
		},
		{
			name: "incorrect owner of long account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(otherID, []byte{1, 2, 3, 4, 5})}
			},
			err:  program.ErrIncorrectOwner,
			data: []byte{1, 2, 3, 4, 5},
			logs: 1,
		},
		{
			name: "uninitialized account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, []byte{})}
			},
			err:  program.ErrDecode,
			data: []byte{},
		},
		{
			name: "short account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, []byte{1, 2, 3})}
			},
			err:  program.ErrDecode,
			data: []byte{1, 2, 3},
		},
		{
			name: "long account",
			accounts: func() []*program.AccountInfo {
				return []*program.AccountInfo{newAccount(programID, []byte{1, 2, 3, 4, 5})}
			},
			err:  program.ErrDecode,
			data: []byte{1, 2, 3, 4, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			buf := &bufferCloser{}
			log := logging.NewLogger("", logging.NewWrappedCore(logging.Info, buf, logging.Plain.ConsoleEncoder()))

			accounts := tt.accounts()
			err := Process(log, programID, accounts, tt.payload)
			require.ErrorIs(err, tt.err)
			if len(accounts) > 0 {
				require.Equal(tt.data, accounts[0].Data)
			}

			output := bytes.TrimSpace(buf.Bytes())
			if tt.logs == 0 {
				require.Empty(output)
			} else {
				require.Len(bytes.Split(output, []byte("\n")), tt.logs)
			}
		})
	}
}

func TestProcessNotIdempotent(t *testing.T) {
	require := require.New(t)

	programID := ids.GenerateTestID()
	account := newAccount(programID, encodeCount(10))
	accounts := []*program.AccountInfo{account}

	require.NoError(Process(logging.NoLog{}, programID, accounts, nil))
	require.NoError(Process(logging.NoLog{}, programID, accounts, nil))

	a, err := Decode(account.Data)
	require.NoError(err)
	require.Equal(uint32(12), a.Count)
	require.NotEqual(uint32(11), a.Count)
}

func TestProcessPayloadIndependence(t *testing.T) {
	randomPayload := make([]byte, 64)
	_, err := rand.Read(randomPayload)
	require.NoError(t, err)

	payloads := [][]byte{
		nil,
		{},
		randomPayload,
		make([]byte, 10*consts.MaxPayloadSize),
	}

	programID := ids.GenerateTestID()
	otherID := ids.GenerateTestID()
	for _, owner := range []ids.ID{programID, otherID} {
		var (
			expectedData []byte
			expectedErr  error
		)
		for i, payload := range payloads {
			account := newAccount(owner, encodeCount(99))
			err := Process(logging.NoLog{}, programID, []*program.AccountInfo{account}, payload)
			if i == 0 {
				expectedData, expectedErr = account.Data, err
				continue
			}
			require.Equal(t, expectedErr, err)
			require.Equal(t, expectedData, account.Data)
		}
	}
}

func TestProcessOwnershipDiagnostic(t *testing.T) {
	require := require.New(t)

	buf := &bufferCloser{}
	log := logging.NewLogger("", logging.NewWrappedCore(logging.Info, buf, logging.Plain.ConsoleEncoder()))

	programID := ids.GenerateTestID()
	account := newAccount(ids.GenerateTestID(), encodeCount(3))
	err := Process(log, programID, []*program.AccountInfo{account}, []byte("ignored"))
	require.ErrorIs(err, program.ErrIncorrectOwner)
	require.Equal(encodeCount(3), account.Data)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(lines, 1)
	require.Contains(string(lines[0]), "account is not owned by the executing program")
	require.Contains(string(lines[0]), programID.String())

	// Success paths are silent.
	buf.Reset()
	owned := newAccount(programID, encodeCount(3))
	require.NoError(Process(log, programID, []*program.AccountInfo{owned}, nil))
	require.Zero(buf.Len())
}
