// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Record is implemented by every model persisted in the local cache.
//
// Columns, Values and ScanTargets must list the same columns in the same
// order. The primary key column is always "row_id" and is not part of
// Columns.
type Record interface {
	TableName() string
	Columns() []string
	Values() []any
	ScanTargets() []any
	PrimaryKey() int64
	SetPrimaryKey(id int64)
}

// Model constrains a type parameter to a pointer to M that is a [Record], so
// generic helpers can allocate an M and use it through its pointer methods.
type Model[M any] interface {
	*M
	Record
}

// primaryKeyColumn is the local primary key of every entity table.
const primaryKeyColumn = "row_id"

type identityKey struct {
	table string
	rowID int64
}

func keyOf(r Record) identityKey {
	return identityKey{table: r.TableName(), rowID: r.PrimaryKey()}
}
