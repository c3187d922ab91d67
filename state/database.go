// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"io"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
)

var (
	_ Database  = (*memDatabase)(nil)
	_ Immutable = (*View)(nil)
)

// Batch collects writes that are applied atomically by Write.
type Batch interface {
	database.KeyValueWriterDeleter

	Write() error
}

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_database.go . Database,Batch

// Database is the persistent store accounts are committed to.
type Database interface {
	database.KeyValueReader
	database.KeyValueWriterDeleter
	io.Closer

	NewBatch() Batch
}

type memDatabase struct {
	*memdb.Database
}

// NewMemDB returns an in-memory [Database].
func NewMemDB() Database {
	return &memDatabase{Database: memdb.New()}
}

func (m *memDatabase) NewBatch() Batch {
	return m.Database.NewBatch()
}

// View exposes a [Database] as [Immutable].
type View struct {
	db Database
}

func NewView(db Database) *View {
	return &View{db: db}
}

func (v *View) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return v.db.Get(key)
}
