// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapper

import (
	"fmt"

	"github.com/dataforge/shardkey"
)

// Row is whatever a query result row exposes to the mapper: column name to
// scanned value. Callers typically build one by scanning a *sql.Rows into
// a map[string]any; this package takes the map directly so it has no
// import-time dependency on a particular driver or scan strategy.
type Row map[string]any

func requireColumn(row Row, name string) (any, error) {
	v, ok := row[name]
	if !ok {
		return nil, fmt.Errorf("mapper: row has no column %q", name)
	}
	return v, nil
}

// RecordFrom materializes a ShardKey[R] from row, per m. It is the mapper's
// half of spec.md §6 for the single-component (record-only) arity.
func RecordFrom[R shardkey.Field](row Row, m ColumnMapping) (shardkey.ShardKey[R], error) {
	var zero R
	shardVal, err := requireColumn(row, m.Shard)
	if err != nil {
		return shardkey.ShardKey[R]{}, err
	}
	shardID, err := parseShardID(shardVal)
	if err != nil {
		return shardkey.ShardKey[R]{}, err
	}
	recordVal, err := requireColumn(row, m.Record)
	if err != nil {
		return shardkey.ShardKey[R]{}, err
	}
	recordField, err := scanField(recordVal, zero.TypeCode())
	if err != nil {
		return shardkey.ShardKey[R]{}, fmt.Errorf("mapper: column %q: %w", m.Record, err)
	}
	record, ok := recordField.(R)
	if !ok {
		return shardkey.ShardKey[R]{}, fmt.Errorf("mapper: column %q decoded as %T, want %T", m.Record, recordField, zero)
	}
	return shardkey.New(m.Origin, shardID, record)
}

// ColumnsOf decomposes k into the column values a provider-specific
// parameter binder passes through to a prepared statement, keyed by the
// column names in m.
func ColumnsOf[R shardkey.Field](k shardkey.ShardKey[R], m ColumnMapping) Row {
	return Row{
		m.Shard:  int64(k.ShardID()),
		m.Record: columnValue(k.RecordID()),
	}
}

// ChildFrom is RecordFrom's arity-2 counterpart.
func ChildFrom[R shardkey.Field, C shardkey.Field](row Row, m ColumnMapping) (shardkey.ShardChildKey[R, C], error) {
	var zr R
	var zc C
	shardVal, err := requireColumn(row, m.Shard)
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, err
	}
	shardID, err := parseShardID(shardVal)
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, err
	}

	recordVal, err := requireColumn(row, m.Record)
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, err
	}
	recordField, err := scanField(recordVal, zr.TypeCode())
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, fmt.Errorf("mapper: column %q: %w", m.Record, err)
	}
	record, ok := recordField.(R)
	if !ok {
		return shardkey.ShardChildKey[R, C]{}, fmt.Errorf("mapper: column %q decoded as %T, want %T", m.Record, recordField, zr)
	}

	childVal, err := requireColumn(row, m.Child)
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, err
	}
	childField, err := scanField(childVal, zc.TypeCode())
	if err != nil {
		return shardkey.ShardChildKey[R, C]{}, fmt.Errorf("mapper: column %q: %w", m.Child, err)
	}
	child, ok := childField.(C)
	if !ok {
		return shardkey.ShardChildKey[R, C]{}, fmt.Errorf("mapper: column %q decoded as %T, want %T", m.Child, childField, zc)
	}

	return shardkey.NewChild(m.Origin, shardID, record, child)
}

// ChildColumnsOf is ColumnsOf's arity-2 counterpart.
func ChildColumnsOf[R shardkey.Field, C shardkey.Field](k shardkey.ShardChildKey[R, C], m ColumnMapping) Row {
	return Row{
		m.Shard:  int64(k.ShardID()),
		m.Record: columnValue(k.RecordID()),
		m.Child:  columnValue(k.ChildID()),
	}
}
