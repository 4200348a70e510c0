// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shardkey implements the compound record identifiers ("shard
// keys") used to name a record across a horizontally sharded relational
// store: an origin character, a 16-bit shard id, and one to four typed
// component ids (record, child, grandchild, great-grandchild).
//
// A key has three equivalent forms. The binary form (ToBinary/FromBinary) is
// a compact, versioned byte sequence: a header, a bit-packed metadata
// prefix describing the component types, the component payloads in order,
// and a 4-byte tail carrying the origin and shard id. The external form
// (ToExternalString/FromExternalString) wraps that binary form in a 2-
// character checksum plus a URL-safe, padding-free base64 body, with the
// body XOR-masked by a pad derived from the shard id so that two keys
// differing only in their record id look unrelated once exposed to end
// users. The UTF-8 form (ToUTF8/FromUTF8) is the external form as raw bytes.
//
// Every codec function in this package is pure: no I/O, no logging, no
// panics on malformed input. All failures are returned as typed errors
// (InvalidMetadataError, InvalidBinaryError, ErrInvalidShardArguments,
// ErrCorruptExternal); TryParse and its arity-specific siblings trade the
// structured error for a plain boolean when the caller only needs to know
// whether a buffer was well-formed.
package shardkey
