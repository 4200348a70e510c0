// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

// packMetadata packs arity (1-4) and the 5-bit type code of each of the
// arity components into a bit stream read MSB-first across consecutive
// bytes: [arity-1:2][code0:5][code1:5]?[code2:5]?[code3:5]?, right-padded
// with zero bits to the next byte boundary. The arity field stores
// arity-1 (0-3) since it is only 2 bits wide and arity itself ranges 1-4.
//
// codes must have exactly arity entries. The byte count follows directly
// from the bit count: ceil((2+5*arity)/8), which is 1, 2, 3, 3 bytes for
// arities 1, 2, 3, 4.
func packMetadata(arity int, codes []uint8) []byte {
	totalBits := 2 + 5*arity
	out := make([]byte, (totalBits+7)/8)

	bitPos := 0
	putBits := func(value uint32, width int) {
		for i := width - 1; i >= 0; i-- {
			bit := (value >> uint(i)) & 1
			byteIdx := bitPos / 8
			shift := 7 - (bitPos % 8)
			out[byteIdx] |= byte(bit << uint(shift))
			bitPos++
		}
	}

	putBits(uint32(arity-1), 2)
	for _, c := range codes {
		putBits(uint32(c), 5)
	}
	return out
}

// metadataLen returns the number of metadata bytes for the given arity.
func metadataLen(arity int) int {
	return (2 + 5*arity + 7) / 8
}

// unpackMetadata reads the arity and arity-many type codes out of buf's bit
// stream. It reports InvalidBinaryError if buf is shorter than the metadata
// this arity requires, and InvalidMetadataError if the arity stored in the
// stream differs from arity.
func unpackMetadata(buf []byte, arity int) ([]uint8, error) {
	need := metadataLen(arity)
	if len(buf) < need {
		return nil, invalidBinary("buffer too short for declared metadata")
	}

	bitPos := 0
	getBits := func(width int) uint32 {
		var v uint32
		for i := 0; i < width; i++ {
			byteIdx := bitPos / 8
			shift := 7 - (bitPos % 8)
			bit := (buf[byteIdx] >> uint(shift)) & 1
			v = (v << 1) | uint32(bit)
			bitPos++
		}
		return v
	}

	gotArity := int(getBits(2)) + 1
	if gotArity != arity {
		return nil, invalidMetadataArity()
	}

	codes := make([]uint8, arity)
	for i := range codes {
		codes[i] = uint8(getBits(5))
	}
	return codes, nil
}
