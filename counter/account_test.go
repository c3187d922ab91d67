// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/program"
)

func TestAccountLayout(t *testing.T) {
	require := require.New(t)

	a := &Account{Count: 0x01020304}
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01}, a.Bytes())
	require.Len((&Account{}).Bytes(), AccountSize)
}

func TestAccountRoundTrip(t *testing.T) {
	for _, b := range [][]byte{
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{0xff, 0xff, 0xff, 0xff},
		{0x78, 0x56, 0x34, 0x12},
		{0, 0, 0, 0x80},
	} {
		a, err := Decode(b)
		require.NoError(t, err)
		require.Equal(t, binary.LittleEndian.Uint32(b), a.Count)

		out := make([]byte, AccountSize)
		require.NoError(t, a.Encode(out))
		require.Equal(t, b, out)
	}
}

func TestDecodeInvalidLength(t *testing.T) {
	for _, size := range []int{0, 1, 3, 5, 8} {
		_, err := Decode(make([]byte, size))
		require.ErrorIs(t, err, program.ErrDecode, "size %d", size)
	}
}

func TestEncodeShortBuffer(t *testing.T) {
	require := require.New(t)

	a := &Account{Count: consts.MaxUint32}
	dst := []byte{9, 9, 9}
	require.ErrorIs(a.Encode(dst), program.ErrEncode)
	require.Equal([]byte{9, 9, 9}, dst)

	// Longer buffers keep their length and trailing bytes.
	dst = []byte{0, 0, 0, 0, 7}
	require.NoError(a.Encode(dst))
	require.Equal([]byte{0xff, 0xff, 0xff, 0xff, 7}, dst)
}
