// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import (
	"math"
	"testing"
)

// S1
func TestScenario1IntRoundTrip(t *testing.T) {
	k, err := New('a', 3, Int16(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := k.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	got, err := FromExternalString[Int16](s)
	if err != nil {
		t.Fatalf("FromExternalString: %v", err)
	}
	if !k.Equal(got) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, k)
	}
}

// S2
func TestScenario2StringRoundTrip(t *testing.T) {
	k, err := New('a', 0, String("two"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := k.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	got, err := FromExternalString[String](s)
	if err != nil {
		t.Fatalf("FromExternalString: %v", err)
	}
	if !k.Equal(got) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, k)
	}
}

// S3
func TestScenario3FloatBitEquality(t *testing.T) {
	k, err := New('a', 0, Float64(0.3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := k.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	got, err := FromExternalString[Float64](s)
	if err != nil {
		t.Fatalf("FromExternalString: %v", err)
	}
	if math.Float64bits(float64(got.RecordID())) != math.Float64bits(0.3) {
		t.Fatalf("bit pattern mismatch: got %x want %x",
			math.Float64bits(float64(got.RecordID())), math.Float64bits(0.3))
	}
}

// S4
func TestScenario4UUIDViaUTF8(t *testing.T) {
	var g GUID
	for i := range g {
		g[i] = byte(i + 1)
	}
	k, err := New('a', 0, g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := k.ToUTF8()
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	got, err := FromUTF8[GUID](b)
	if err != nil {
		t.Fatalf("FromUTF8: %v", err)
	}
	if !k.Equal(got) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, k)
	}
}

// S5
func TestScenario5ChildVariantRoundTrip(t *testing.T) {
	k, err := NewChild('a', 5, Int32(6), Int16(7))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	s, err := k.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	got, err := FromExternalStringChild[Int32, Int16](s)
	if err != nil {
		t.Fatalf("FromExternalStringChild: %v", err)
	}
	if !k.Equal(got) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, k)
	}
}

// S6
func TestScenario6SingleCharFlipCorruptsExternal(t *testing.T) {
	k, err := New('a', 3, Int16(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := k.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	if len(s) < 4 {
		t.Fatalf("external string too short to flip a non-checksum char: %q", s)
	}
	flipped := []byte(s)
	// Flip a character at position >= 2, i.e. in the encoded body, not the
	// checksum prefix.
	pos := 2
	orig := flipped[pos]
	for _, c := range []byte(externalAlphabet) {
		if c != orig {
			flipped[pos] = c
			break
		}
	}
	if _, err := FromExternalString[Int16](string(flipped)); err == nil {
		t.Fatalf("expected CorruptExternal after flipping byte %d of %q", pos, s)
	}
}

// S7
func TestScenario7ForeignShards(t *testing.T) {
	self, err := New('x', 5, Int32(10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mk := func(shard int16, record int32) ShardKey[Int32] {
		k, err := New('x', shard, Int32(record))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return k
	}
	keys := []ShardKey[Int32]{
		mk(5, 10),
		mk(6, 11),
		mk(6, 12),
		mk(7, 13),
	}
	out := ForeignShards(self, keys)
	if _, ok := out[5]; ok {
		t.Fatalf("self's own shard 5 must not appear in foreign shards, got %v", out)
	}
	if len(out) != 2 {
		t.Fatalf("expected exactly 2 foreign shards, got %d: %v", len(out), out)
	}
	if len(out[6]) != 2 {
		t.Fatalf("expected 2 keys on shard 6, got %d", len(out[6]))
	}
	if len(out[7]) != 1 {
		t.Fatalf("expected 1 key on shard 7, got %d", len(out[7]))
	}
}

// S8
func TestScenario8Merge(t *testing.T) {
	type model struct {
		key   ShardKey[Int32]
		value string
	}
	k1, _ := New('m', 1, Int32(1))
	k2, _ := New('m', 1, Int32(2))

	original := []model{{k1, "old10"}, {k2, "old11"}}
	replacements := []model{{k2, "new11"}}

	out := Merge(original, replacements, func(m model) ShardKey[Int32] { return m.key }, false)
	if len(out) != 2 {
		t.Fatalf("expected length 2, got %d", len(out))
	}
	if out[0].value != "old10" {
		t.Fatalf("expected first element unchanged, got %q", out[0].value)
	}
	if out[1].value != "new11" {
		t.Fatalf("expected second element replaced, got %q", out[1].value)
	}
}

func TestMergeAppendUnmatched(t *testing.T) {
	type model struct {
		key   ShardKey[Int32]
		value string
	}
	k1, _ := New('m', 1, Int32(1))
	k2, _ := New('m', 1, Int32(2))
	k3, _ := New('m', 1, Int32(3))

	original := []model{{k1, "old1"}}
	replacements := []model{{k2, "new2"}, {k3, "new3"}}

	out := Merge(original, replacements, func(m model) ShardKey[Int32] { return m.key }, true)
	if len(out) != 3 {
		t.Fatalf("expected length 3 (1 original + 2 unmatched), got %d", len(out))
	}
	seen := map[string]bool{}
	for _, m := range out {
		seen[m.value] = true
	}
	for _, want := range []string{"old1", "new2", "new3"} {
		if !seen[want] {
			t.Fatalf("expected %q in output, got %+v", want, out)
		}
	}
}

func TestEmptyKeyInvariants(t *testing.T) {
	e := Empty[Int32]()
	if !e.IsEmpty() {
		t.Fatalf("Empty() key must report IsEmpty() true")
	}
	if e.Origin() != EmptyOrigin {
		t.Fatalf("Empty() key must carry origin %q, got %q", EmptyOrigin, e.Origin())
	}
	s, err := e.ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	s2, err := Empty[Int32]().ToExternalString()
	if err != nil {
		t.Fatalf("ToExternalString: %v", err)
	}
	if s != s2 {
		t.Fatalf("Empty external string must be a variant-specific constant: %q != %q", s, s2)
	}
}

func TestInvalidShardArguments(t *testing.T) {
	if _, err := New(EmptyOrigin, 0, Int32(1)); err != ErrInvalidShardArguments {
		t.Fatalf("expected ErrInvalidShardArguments, got %v", err)
	}
	if _, err := New('z', 0, Int32(0)); err != nil {
		t.Fatalf("non-empty origin with zero payload must be allowed: %v", err)
	}
}

func TestNaNEquality(t *testing.T) {
	k1, err := New('n', 0, Float64(math.NaN()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	k2, err := New('n', 0, Float64(math.NaN()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !k1.Equal(k2) {
		t.Fatalf("two NaN-payload keys must compare equal")
	}
	if k1.Hash() != k2.Hash() {
		t.Fatalf("two equal keys must hash equal")
	}
}

func TestShardIDBoundaries(t *testing.T) {
	for _, shard := range []int16{math.MinInt16, math.MaxInt16, 0} {
		k, err := New('b', shard, Int32(1))
		if err != nil {
			t.Fatalf("New(shard=%d): %v", shard, err)
		}
		s, err := k.ToExternalString()
		if err != nil {
			t.Fatalf("ToExternalString(shard=%d): %v", shard, err)
		}
		got, err := FromExternalString[Int32](s)
		if err != nil {
			t.Fatalf("FromExternalString(shard=%d): %v", shard, err)
		}
		if !k.Equal(got) {
			t.Fatalf("round trip mismatch at shard=%d", shard)
		}
	}
}

func TestMaxLengthStringPayload(t *testing.T) {
	big := make([]byte, maxVariableLength)
	for i := range big {
		big[i] = 'x'
	}
	k, err := New('s', 1, String(big))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bin, err := k.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	got, err := FromBinary[String](bin)
	if err != nil {
		t.Fatalf("FromBinary: %v", err)
	}
	if !k.Equal(got) {
		t.Fatalf("max-length string payload round trip mismatch")
	}

	tooBig := make([]byte, maxVariableLength+1)
	if _, err := New('s', 1, String(tooBig)); err != nil {
		t.Fatalf("New should not itself reject oversize strings: %v", err)
	}
	if k2, err := New('s', 1, String(tooBig)); err == nil {
		if _, err := k2.ToBinary(); err == nil {
			t.Fatalf("ToBinary must reject a string payload over %d bytes", maxVariableLength)
		}
	}
}

func TestTryParseAllArities(t *testing.T) {
	k1, _ := New('a', 1, Int32(1))
	bin1, _ := k1.ToBinary()
	if ok, got := TryParse[Int32](bin1); !ok || !got.Equal(k1) {
		t.Fatalf("TryParse arity 1 should succeed on a well-formed buffer")
	}

	k2, _ := NewChild('a', 1, Int32(1), Int16(2))
	bin2, _ := k2.ToBinary()
	if ok, got := TryParseChild[Int32, Int16](bin2); !ok || !got.Equal(k2) {
		t.Fatalf("TryParse arity 2 should succeed on a well-formed buffer (documented regression surface, see spec.md §9)")
	}

	k3, _ := NewGrandchild('a', 1, Int32(1), Int16(2), Int8(3))
	bin3, _ := k3.ToBinary()
	if ok, got := TryParseGrandchild[Int32, Int16, Int8](bin3); !ok || !got.Equal(k3) {
		t.Fatalf("TryParse arity 3 should succeed on a well-formed buffer")
	}

	k4, _ := NewGreatGrandchild('a', 1, Int32(1), Int16(2), Int8(3), Bool(true))
	bin4, _ := k4.ToBinary()
	if ok, got := TryParseGreatGrandchild[Int32, Int16, Int8, Bool](bin4); !ok || !got.Equal(k4) {
		t.Fatalf("TryParse arity 4 should succeed on a well-formed buffer")
	}
}

func TestTryParseOneByteBuffer(t *testing.T) {
	if ok, got := TryParse[Int32]([]byte{0x81}); ok {
		t.Fatalf("expected failure on a 1-byte buffer, got %+v", got)
	} else if !got.IsEmpty() {
		t.Fatalf("failed TryParse must return the type's Empty value")
	}
}

func TestEncodingDeterminism(t *testing.T) {
	k1, _ := New('a', 7, String("same"))
	k2, _ := New('a', 7, String("same"))
	b1, err := k1.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	b2, err := k2.ToBinary()
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatalf("equal keys must produce byte-identical binary forms")
	}
}
