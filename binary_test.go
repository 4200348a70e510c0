// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import "testing"

func TestEncodeDecodeBinaryRoundTrip(t *testing.T) {
	fields := []Field{Int32(42)}
	bin, err := encodeBinary('q', 99, fields)
	if err != nil {
		t.Fatalf("encodeBinary: %v", err)
	}
	origin, shardID, got, err := decodeBinary(bin, []uint8{TypeInt32})
	if err != nil {
		t.Fatalf("decodeBinary: %v", err)
	}
	if origin != 'q' {
		t.Fatalf("origin = %q, want %q", origin, 'q')
	}
	if shardID != 99 {
		t.Fatalf("shardID = %d, want 99", shardID)
	}
	if !got[0].EqualField(Int32(42)) {
		t.Fatalf("record = %#v, want Int32(42)", got[0])
	}
}

func TestDecodeBinaryRejectsWrongArity(t *testing.T) {
	bin, _ := encodeBinary('q', 1, []Field{Int32(1)})
	if _, _, _, err := decodeBinary(bin, []uint8{TypeInt32, TypeInt16}); err == nil {
		t.Fatalf("expected an arity mismatch error")
	}
}

func TestDecodeBinaryRejectsWrongTypeCode(t *testing.T) {
	bin, _ := encodeBinary('q', 1, []Field{Int32(1)})
	if _, _, _, err := decodeBinary(bin, []uint8{TypeInt16}); err == nil {
		t.Fatalf("expected a type code mismatch error")
	}
}

func TestDecodeBinaryRejectsMissingVersionBit(t *testing.T) {
	bin, _ := encodeBinary('q', 1, []Field{Int32(1)})
	bin[0] &^= versionTag
	if _, _, _, err := decodeBinary(bin, []uint8{TypeInt32}); err == nil {
		t.Fatalf("expected an error when the version bit is unset")
	}
}

func TestDecodeBinaryRejectsTruncatedBuffer(t *testing.T) {
	bin, _ := encodeBinary('q', 1, []Field{Int32(1)})
	if _, _, _, err := decodeBinary(bin[:len(bin)-2], []uint8{TypeInt32}); err == nil {
		t.Fatalf("expected an error decoding a truncated buffer")
	}
}

func TestDecodeBinaryRejectsNonzeroReservedByte(t *testing.T) {
	bin, _ := encodeBinary('q', 1, []Field{Int32(1)})
	bin[len(bin)-1] = 0xFF
	if _, _, _, err := decodeBinary(bin, []uint8{TypeInt32}); err == nil {
		t.Fatalf("expected an error when the reserved tail byte is nonzero")
	}
}

func TestTryParseBinaryNeverPanics(t *testing.T) {
	for n := 0; n < 8; n++ {
		buf := make([]byte, n)
		ok, _, _, _ := tryParseBinary(buf, []uint8{TypeInt32})
		if n < 7 && ok {
			t.Fatalf("buffer of length %d should not parse successfully", n)
		}
	}
}

func TestEncodeBinaryVariableWidthField(t *testing.T) {
	bin, err := encodeBinary('z', -7, []Field{String("hello")})
	if err != nil {
		t.Fatalf("encodeBinary: %v", err)
	}
	origin, shardID, fields, err := decodeBinary(bin, []uint8{TypeString})
	if err != nil {
		t.Fatalf("decodeBinary: %v", err)
	}
	if origin != 'z' || shardID != -7 {
		t.Fatalf("origin/shardID mismatch: %q/%d", origin, shardID)
	}
	if !fields[0].EqualField(String("hello")) {
		t.Fatalf("field mismatch: %#v", fields[0])
	}
}
