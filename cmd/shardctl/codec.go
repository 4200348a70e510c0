// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/dataforge/shardkey"
)

// kind is the CLI's closed set of addressable record-id types, mirroring
// shardkey's own Type Registry: a small, stable set of concrete Field
// implementations, picked at the command line instead of at compile time.
type kind string

const (
	kindInt32  kind = "int32"
	kindInt64  kind = "int64"
	kindString kind = "string"
	kindGUID   kind = "guid"
)

func parseKindValue(k kind, s string) (shardkey.Field, error) {
	switch k {
	case kindInt32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as int32: %w", s, err)
		}
		return shardkey.Int32(n), nil
	case kindInt64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as int64: %w", s, err)
		}
		return shardkey.Int64(n), nil
	case kindString:
		return shardkey.String(s), nil
	case kindGUID:
		raw, err := hex.DecodeString(s)
		if err != nil || len(raw) != 16 {
			return nil, fmt.Errorf("guid must be 32 hex characters (16 bytes), got %q", s)
		}
		var g shardkey.GUID
		copy(g[:], raw)
		return g, nil
	default:
		return nil, fmt.Errorf("unknown --type %q (want int32, int64, string, or guid)", k)
	}
}

func formatFieldValue(f shardkey.Field) string {
	switch v := f.(type) {
	case shardkey.Int32:
		return strconv.FormatInt(int64(v), 10)
	case shardkey.Int64:
		return strconv.FormatInt(int64(v), 10)
	case shardkey.String:
		return string(v)
	case shardkey.GUID:
		return hex.EncodeToString(v[:])
	default:
		return fmt.Sprintf("%v", f)
	}
}

// encodeExternalOf builds a single-arity ShardKey[R] from a field value
// already known to hold the concrete Go type R, encoding it to its external
// string form. Kept generic so each kind case in dispatch.go is one
// line instead of a duplicated constructor/encode pair per type.
func encodeExternalOf[R shardkey.Field](origin byte, shard int16, record R) (string, error) {
	k, err := shardkey.New(origin, shard, record)
	if err != nil {
		return "", err
	}
	return k.ToExternalString()
}

func decodeExternalOf[R shardkey.Field](s string) (origin byte, shard int16, record R, err error) {
	k, err := shardkey.FromExternalString[R](s)
	if err != nil {
		return 0, 0, record, err
	}
	return k.Origin(), k.ShardID(), k.RecordID(), nil
}
