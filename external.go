// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import (
	"encoding/base64"
)

// externalAlphabet is URL-safe and padding-free: A-Z a-z 0-9 - _. It is the
// same alphabet base64.RawURLEncoding uses, which is what the body of an
// external string is encoded with; the checksum prefix is drawn from the
// identical alphabet by direct indexing so the whole string is safe for
// URLs, cookies, and RPC fields with no further escaping.
const externalAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// maskPad derives a 2-byte repeating pad from shardID and XORs it over dst
// in place, mixing in the byte position so that runs of identical bytes in
// the input don't mask to runs of identical bytes in the output. This is
// diffusion for opacity, not a cryptographic transform: two keys differing
// only in their record-id payload produce unrelated-looking external
// strings, which matters because those strings are handed to end users as
// opaque identifiers. It is not a substitute for key management and must
// not be strengthened into one.
func maskPad(dst []byte, shardID int16) {
	k0 := byte(uint16(shardID))
	k1 := byte(uint16(shardID) >> 8)
	for i := range dst {
		if i%2 == 0 {
			dst[i] ^= k0 ^ byte(i)
		} else {
			dst[i] ^= k1 ^ byte(i)
		}
	}
}

// maskedBody returns a copy of bin with the mask applied to everything
// except the 1-byte header and the 4-byte tail, which callers need to
// inspect (or re-derive the mask from) without decoding the payloads.
func maskedBody(bin []byte, shardID int16) []byte {
	out := make([]byte, len(bin))
	copy(out, bin)
	maskPad(out[1:len(out)-tailSize], shardID)
	return out
}

// checksum computes the 2-character external-string checksum over the
// pre-mask binary form: a 12-bit Fletcher-style rolling sum with both sums
// reduced modulo 4093, the first sum seeded with 1 so that zero bytes still
// advance the second sum. It is a total function of the input bytes, stable forever once
// shipped, and detects any single-byte substitution with very high
// probability (it is not a cryptographic MAC, and spec Non-goals rule that
// out deliberately).
func checksum(bin []byte) [2]byte {
	const mod = 4093 // largest prime below 4096, keeps both sums in 12 bits
	sum1 := uint32(1)
	sum2 := uint32(0)
	for _, b := range bin {
		sum1 = (sum1 + uint32(b)) % mod
		sum2 = (sum2 + sum1) % mod
	}
	combined := (sum1 ^ (sum2 << 6) ^ (sum2 >> 6)) & 0xFFF
	return [2]byte{
		externalAlphabet[(combined>>6)&0x3F],
		externalAlphabet[combined&0x3F],
	}
}

// encodeExternal turns a binary-encoded key into its external string form:
// a 2-character checksum followed by the URL-safe, padding-free base64
// encoding of the XOR-masked binary form.
func encodeExternal(bin []byte, shardID int16) string {
	sum := checksum(bin)
	masked := maskedBody(bin, shardID)
	encoded := base64.RawURLEncoding.EncodeToString(masked)
	out := make([]byte, 0, 2+len(encoded))
	out = append(out, sum[0], sum[1])
	out = append(out, encoded...)
	return string(out)
}

// decodeExternal reverses encodeExternal, verifying the checksum before
// returning the unmasked binary form. Any structural problem — too short,
// an invalid base64 character, or a checksum mismatch — is reported as
// ErrCorruptExternal, which is this package's primary defense against
// casual tampering and against one system's key being submitted to another.
func decodeExternal(s string) ([]byte, error) {
	if len(s) < 2 {
		return nil, ErrCorruptExternal
	}
	wantSum := [2]byte{s[0], s[1]}

	masked, err := base64.RawURLEncoding.DecodeString(s[2:])
	if err != nil {
		return nil, ErrCorruptExternal
	}
	if len(masked) < 1+tailSize {
		return nil, ErrCorruptExternal
	}

	// The tail is never masked, so the shard id needed to unmask the body
	// can be read straight out of it.
	shardID := int16(uint16(masked[len(masked)-3]) | uint16(masked[len(masked)-2])<<8)

	bin := make([]byte, len(masked))
	copy(bin, masked)
	maskPad(bin[1:len(bin)-tailSize], shardID)

	gotSum := checksum(bin)
	if gotSum != wantSum {
		return nil, ErrCorruptExternal
	}
	return bin, nil
}
