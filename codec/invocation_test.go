// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counterprogram/consts"
)

func TestInvocationMarshal(t *testing.T) {
	require := require.New(t)

	inv := &Invocation{
		ProgramID: ids.GenerateTestID(),
		Accounts: []AccountMeta{
			{ID: ids.GenerateTestID(), IsWritable: true},
			{ID: ids.GenerateTestID(), IsSigner: true},
			{ID: ids.GenerateTestID(), IsSigner: true, IsWritable: true},
		},
		Payload: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	b, err := inv.Marshal()
	require.NoError(err)
	require.Len(b, inv.Size())

	parsed, err := UnmarshalInvocation(b)
	require.NoError(err)
	require.Equal(inv.ProgramID, parsed.ProgramID)
	require.Equal(inv.Accounts, parsed.Accounts)
	require.Equal([]byte(inv.Payload), []byte(parsed.Payload))
}

func TestInvocationEmptyPayload(t *testing.T) {
	require := require.New(t)

	inv := &Invocation{ProgramID: ids.GenerateTestID()}
	b, err := inv.Marshal()
	require.NoError(err)
	require.Len(b, consts.IDLen+2*consts.Uint32Len)

	parsed, err := UnmarshalInvocation(b)
	require.NoError(err)
	require.Empty(parsed.Accounts)
	require.Empty(parsed.Payload)
}

func TestInvocationLimits(t *testing.T) {
	require := require.New(t)

	inv := &Invocation{
		ProgramID: ids.GenerateTestID(),
		Accounts:  make([]AccountMeta, consts.MaxAccounts+1),
	}
	_, err := inv.Marshal()
	require.ErrorIs(err, ErrTooManyItems)

	inv = &Invocation{
		ProgramID: ids.GenerateTestID(),
		Payload:   make([]byte, consts.MaxPayloadSize+1),
	}
	_, err = inv.Marshal()
	require.ErrorIs(err, ErrTooManyItems)
}

func TestUnmarshalInvocationInvalid(t *testing.T) {
	valid := &Invocation{
		ProgramID: ids.GenerateTestID(),
		Accounts:  []AccountMeta{{ID: ids.GenerateTestID(), IsWritable: true}},
		Payload:   []byte{1, 2, 3},
	}
	validBytes, err := valid.Marshal()
	require.NoError(t, err)

	badFlags := make([]byte, len(validBytes))
	copy(badFlags, validBytes)
	badFlags[consts.IDLen+consts.Uint32Len+consts.IDLen] = 0x80

	tests := []struct {
		name string
		b    []byte
		err  error
	}{
		{
			name: "empty",
			b:    nil,
			err:  ErrInvalidInvocation,
		},
		{
			name: "truncated",
			b:    validBytes[:len(validBytes)-1],
			err:  ErrInvalidInvocation,
		},
		{
			name: "trailing bytes",
			b:    append(append([]byte{}, validBytes...), 0),
			err:  ErrTrailingBytes,
		},
		{
			name: "unknown flags",
			b:    badFlags,
			err:  ErrInvalidInvocation,
		},
		{
			name: "empty program id",
			b:    append(make([]byte, consts.IDLen), validBytes[consts.IDLen:]...),
			err:  ErrFieldNotPopulated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalInvocation(tt.b)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadHex(t *testing.T) {
	require := require.New(t)

	b, err := LoadHex("0x01ff", 2)
	require.NoError(err)
	require.Equal([]byte{0x01, 0xff}, b)

	_, err = LoadHex("01ff", 3)
	require.ErrorIs(err, ErrInvalidSize)

	var bytes Bytes
	require.NoError(bytes.UnmarshalText([]byte("0a0b")))
	require.Equal("0a0b", bytes.String())
}
