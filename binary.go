// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import "encoding/binary"

// versionTag is the high bit of the header byte. It must be set on every
// binary encoding this package produces or accepts; spec.md reserves it as
// an escape hatch for a future incompatible wire format.
const versionTag = 0x80

// tailSize is the length of the trailing block: origin (1 byte), shard id
// (2 bytes), and a reserved zero byte. There is no single minimum-size
// constant; decodeBinary enforces the structural floor (header, the
// arity-specific metadataLen, and the tail) for each arity.
const tailSize = 4

// encodeBinary composes the header, metadata, payloads, and tail into one
// contiguous buffer. The output buffer is allocated once at its final size
// and never regrown; the type-code list and the packed metadata prefix are
// built in their own small allocations before being copied into it.
func encodeBinary(origin byte, shardID int16, fields []Field) ([]byte, error) {
	arity := len(fields)
	codes := make([]uint8, arity)
	size := 1 + metadataLen(arity)
	for i, f := range fields {
		codes[i] = f.TypeCode()
		size += encodedSize(f)
	}
	size += tailSize

	buf := make([]byte, 0, size)
	buf = append(buf, versionTag|byte(arity-1))
	buf = append(buf, packMetadata(arity, codes)...)

	var err error
	for _, f := range fields {
		buf, err = f.AppendEncoded(buf)
		if err != nil {
			return nil, err
		}
	}

	buf = append(buf, origin)
	var shardBytes [2]byte
	binary.LittleEndian.PutUint16(shardBytes[:], uint16(shardID))
	buf = append(buf, shardBytes[:]...)
	buf = append(buf, 0) // reserved

	return buf, nil
}

// decodeBinary is the exact inverse of encodeBinary. expectedCodes gives the
// type code each of the arity-many components must decode as; a mismatch
// (wrong arity, wrong type code, or a structurally short/malformed buffer)
// returns an InvalidMetadataError or InvalidBinaryError, never a partially
// populated result.
func decodeBinary(buf []byte, expectedCodes []uint8) (origin byte, shardID int16, fields []Field, err error) {
	arity := len(expectedCodes)

	if len(buf) < 1+metadataLen(arity)+tailSize {
		return 0, 0, nil, invalidBinary("buffer shorter than minimum size for arity")
	}

	header := buf[0]
	if header&versionTag == 0 {
		return 0, 0, nil, invalidBinary("version bit not set")
	}
	if int(header&0x03)+1 != arity {
		return 0, 0, nil, invalidMetadataArity()
	}

	metaEnd := 1 + metadataLen(arity)
	codes, err := unpackMetadata(buf[1:metaEnd], arity)
	if err != nil {
		return 0, 0, nil, err
	}
	for i, code := range codes {
		if code != expectedCodes[i] {
			return 0, 0, nil, invalidMetadataType(expectedCodes[i], code)
		}
	}

	offset := metaEnd
	fields = make([]Field, arity)
	for i, code := range codes {
		dec, ok := decoders[code]
		if !ok {
			return 0, 0, nil, invalidBinary("unknown type code")
		}
		if offset > len(buf)-tailSize {
			return 0, 0, nil, invalidBinary("payload would read into tail")
		}
		v, n, derr := dec(buf[offset : len(buf)-tailSize])
		if derr != nil {
			return 0, 0, nil, derr
		}
		fields[i] = v
		offset += n
	}

	if offset != len(buf)-tailSize {
		return 0, 0, nil, invalidBinary("payloads did not exactly fill the buffer")
	}

	tail := buf[offset:]
	if tail[3] != 0 {
		return 0, 0, nil, invalidBinary("reserved tail byte is nonzero")
	}

	origin = tail[0]
	shardID = int16(binary.LittleEndian.Uint16(tail[1:3]))
	return origin, shardID, fields, nil
}

// tryParseBinary is the non-throwing form of decodeBinary: it never returns
// an error, only a success flag.
func tryParseBinary(buf []byte, expectedCodes []uint8) (ok bool, origin byte, shardID int16, fields []Field) {
	origin, shardID, fields, err := decodeBinary(buf, expectedCodes)
	if err != nil {
		return false, 0, 0, nil
	}
	return true, origin, shardID, fields
}
