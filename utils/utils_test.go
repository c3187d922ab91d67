// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestToID(t *testing.T) {
	require := require.New(t)

	require.Equal(ToID([]byte("counter")), ToID([]byte("counter")))
	require.NotEqual(ToID([]byte("counter")), ToID([]byte("counter2")))
}

func TestGenerateRandomID(t *testing.T) {
	require := require.New(t)

	a, err := GenerateRandomID()
	require.NoError(err)
	b, err := GenerateRandomID()
	require.NoError(err)
	require.NotEqual(ids.Empty, a)
	require.NotEqual(a, b)
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "db")
	require.NoError(err)
	require.Equal(filepath.Join(root, "db"), p)
	info, err := os.Stat(p)
	require.NoError(err)
	require.True(info.IsDir())

	// existing directories are not an error
	_, err = InitSubDirectory(root, "db")
	require.NoError(err)
}

func TestMap(t *testing.T) {
	require.Equal(t, []string{"1", "2", "3"}, Map(strconv.Itoa, []int{1, 2, 3}))
}
