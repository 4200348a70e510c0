// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import "hash/fnv"

// EmptyOrigin is the reserved origin character denoting an Empty key. A key
// is Empty iff its origin is EmptyOrigin and every one of its payloads is
// that type's canonical zero value (see Field.IsZero).
const EmptyOrigin = '0'

func validateOrigin(origin byte, fields []Field) error {
	allZero := true
	for _, f := range fields {
		if !f.IsZero() {
			allZero = false
			break
		}
	}
	if origin == EmptyOrigin && !allZero {
		return ErrInvalidShardArguments
	}
	return nil
}

func hashBytes(bin []byte) uint64 {
	h := fnv.New64a()
	h.Write(bin)
	return h.Sum64()
}

// ---- arity 1: (origin, shard, record) ----

// ShardKey names a record across shards: an origin, a shard id, and a
// record id of type R.
type ShardKey[R Field] struct {
	origin  byte
	shardID int16
	record  R
}

// New constructs a ShardKey. It returns ErrInvalidShardArguments if origin
// is EmptyOrigin but record is not its type's zero value. Any other origin
// is accepted with any record, including the zero value.
func New[R Field](origin byte, shardID int16, record R) (ShardKey[R], error) {
	if err := validateOrigin(origin, []Field{record}); err != nil {
		return ShardKey[R]{}, err
	}
	return ShardKey[R]{origin: origin, shardID: shardID, record: record}, nil
}

// Empty returns the canonical Empty key for this variant.
func Empty[R Field]() ShardKey[R] {
	var zero R
	return ShardKey[R]{origin: EmptyOrigin, record: zero}
}

func (k ShardKey[R]) Origin() byte     { return k.origin }
func (k ShardKey[R]) ShardID() int16   { return k.shardID }
func (k ShardKey[R]) RecordID() R      { return k.record }
func (k ShardKey[R]) IsEmpty() bool    { return k.origin == EmptyOrigin && k.record.IsZero() }
func (k ShardKey[R]) fields() []Field  { return []Field{k.record} }
func (k ShardKey[R]) arity() int       { return 1 }

// Equal reports structural equality: same origin, shard id, and record id,
// with floating-point fields compared by bit pattern.
func (k ShardKey[R]) Equal(other ShardKey[R]) bool {
	return k.origin == other.origin && k.shardID == other.shardID && k.record.EqualField(other.record)
}

// Hash is stable and matches Equal: equal keys always hash equal.
func (k ShardKey[R]) Hash() uint64 {
	bin, _ := k.ToBinary()
	return hashBytes(bin)
}

// ToBinary encodes k into its compact binary form.
func (k ShardKey[R]) ToBinary() ([]byte, error) {
	return encodeBinary(k.origin, k.shardID, k.fields())
}

// FromBinary decodes a ShardKey[R] previously produced by ToBinary.
func FromBinary[R Field](buf []byte) (ShardKey[R], error) {
	var zero R
	origin, shardID, fields, err := decodeBinary(buf, []uint8{zero.TypeCode()})
	if err != nil {
		return ShardKey[R]{}, err
	}
	record, ok := fields[0].(R)
	if !ok {
		return ShardKey[R]{}, invalidBinary("decoded field type does not match requested variant")
	}
	return ShardKey[R]{origin: origin, shardID: shardID, record: record}, nil
}

// TryParse is the non-throwing form of FromBinary.
func TryParse[R Field](buf []byte) (bool, ShardKey[R]) {
	var zero R
	ok, origin, shardID, fields := tryParseBinary(buf, []uint8{zero.TypeCode()})
	if !ok {
		return false, Empty[R]()
	}
	record, cast := fields[0].(R)
	if !cast {
		return false, Empty[R]()
	}
	return true, ShardKey[R]{origin: origin, shardID: shardID, record: record}
}

// ToExternalString renders k as a checksum-prefixed, URL-safe string.
func (k ShardKey[R]) ToExternalString() (string, error) {
	bin, err := k.ToBinary()
	if err != nil {
		return "", err
	}
	return encodeExternal(bin, k.shardID), nil
}

// FromExternalString parses the output of ToExternalString.
func FromExternalString[R Field](s string) (ShardKey[R], error) {
	bin, err := decodeExternal(s)
	if err != nil {
		return ShardKey[R]{}, err
	}
	return FromBinary[R](bin)
}

// ToUTF8 is ToExternalString encoded as UTF-8 bytes.
func (k ShardKey[R]) ToUTF8() ([]byte, error) {
	s, err := k.ToExternalString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// FromUTF8 is exactly FromExternalString(string(data)).
func FromUTF8[R Field](data []byte) (ShardKey[R], error) {
	return FromExternalString[R](string(data))
}

// ---- arity 2: (origin, shard, record, child) ----

// ShardChildKey names a record and its child across shards.
type ShardChildKey[R Field, C Field] struct {
	origin  byte
	shardID int16
	record  R
	child   C
}

func NewChild[R Field, C Field](origin byte, shardID int16, record R, child C) (ShardChildKey[R, C], error) {
	if err := validateOrigin(origin, []Field{record, child}); err != nil {
		return ShardChildKey[R, C]{}, err
	}
	return ShardChildKey[R, C]{origin: origin, shardID: shardID, record: record, child: child}, nil
}

func EmptyChild[R Field, C Field]() ShardChildKey[R, C] {
	var r R
	var c C
	return ShardChildKey[R, C]{origin: EmptyOrigin, record: r, child: c}
}

func (k ShardChildKey[R, C]) Origin() byte   { return k.origin }
func (k ShardChildKey[R, C]) ShardID() int16 { return k.shardID }
func (k ShardChildKey[R, C]) RecordID() R    { return k.record }
func (k ShardChildKey[R, C]) ChildID() C     { return k.child }
func (k ShardChildKey[R, C]) IsEmpty() bool {
	return k.origin == EmptyOrigin && k.record.IsZero() && k.child.IsZero()
}
func (k ShardChildKey[R, C]) fields() []Field { return []Field{k.record, k.child} }

func (k ShardChildKey[R, C]) Equal(other ShardChildKey[R, C]) bool {
	return k.origin == other.origin && k.shardID == other.shardID &&
		k.record.EqualField(other.record) && k.child.EqualField(other.child)
}

func (k ShardChildKey[R, C]) Hash() uint64 {
	bin, _ := k.ToBinary()
	return hashBytes(bin)
}

func (k ShardChildKey[R, C]) ToBinary() ([]byte, error) {
	return encodeBinary(k.origin, k.shardID, k.fields())
}

func FromBinaryChild[R Field, C Field](buf []byte) (ShardChildKey[R, C], error) {
	var r R
	var c C
	origin, shardID, fields, err := decodeBinary(buf, []uint8{r.TypeCode(), c.TypeCode()})
	if err != nil {
		return ShardChildKey[R, C]{}, err
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	if !ok1 || !ok2 {
		return ShardChildKey[R, C]{}, invalidBinary("decoded field type does not match requested variant")
	}
	return ShardChildKey[R, C]{origin: origin, shardID: shardID, record: record, child: child}, nil
}

func TryParseChild[R Field, C Field](buf []byte) (bool, ShardChildKey[R, C]) {
	var r R
	var c C
	ok, origin, shardID, fields := tryParseBinary(buf, []uint8{r.TypeCode(), c.TypeCode()})
	if !ok {
		return false, EmptyChild[R, C]()
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	if !ok1 || !ok2 {
		return false, EmptyChild[R, C]()
	}
	return true, ShardChildKey[R, C]{origin: origin, shardID: shardID, record: record, child: child}
}

func (k ShardChildKey[R, C]) ToExternalString() (string, error) {
	bin, err := k.ToBinary()
	if err != nil {
		return "", err
	}
	return encodeExternal(bin, k.shardID), nil
}

func FromExternalStringChild[R Field, C Field](s string) (ShardChildKey[R, C], error) {
	bin, err := decodeExternal(s)
	if err != nil {
		return ShardChildKey[R, C]{}, err
	}
	return FromBinaryChild[R, C](bin)
}

func (k ShardChildKey[R, C]) ToUTF8() ([]byte, error) {
	s, err := k.ToExternalString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func FromUTF8Child[R Field, C Field](data []byte) (ShardChildKey[R, C], error) {
	return FromExternalStringChild[R, C](string(data))
}

// ---- arity 3: (origin, shard, record, child, grandchild) ----

// ShardGrandchildKey names a record, child, and grandchild across shards.
type ShardGrandchildKey[R Field, C Field, G Field] struct {
	origin     byte
	shardID    int16
	record     R
	child      C
	grandchild G
}

func NewGrandchild[R Field, C Field, G Field](origin byte, shardID int16, record R, child C, grandchild G) (ShardGrandchildKey[R, C, G], error) {
	if err := validateOrigin(origin, []Field{record, child, grandchild}); err != nil {
		return ShardGrandchildKey[R, C, G]{}, err
	}
	return ShardGrandchildKey[R, C, G]{origin: origin, shardID: shardID, record: record, child: child, grandchild: grandchild}, nil
}

func EmptyGrandchild[R Field, C Field, G Field]() ShardGrandchildKey[R, C, G] {
	var r R
	var c C
	var g G
	return ShardGrandchildKey[R, C, G]{origin: EmptyOrigin, record: r, child: c, grandchild: g}
}

func (k ShardGrandchildKey[R, C, G]) Origin() byte     { return k.origin }
func (k ShardGrandchildKey[R, C, G]) ShardID() int16   { return k.shardID }
func (k ShardGrandchildKey[R, C, G]) RecordID() R      { return k.record }
func (k ShardGrandchildKey[R, C, G]) ChildID() C       { return k.child }
func (k ShardGrandchildKey[R, C, G]) GrandchildID() G  { return k.grandchild }
func (k ShardGrandchildKey[R, C, G]) IsEmpty() bool {
	return k.origin == EmptyOrigin && k.record.IsZero() && k.child.IsZero() && k.grandchild.IsZero()
}
func (k ShardGrandchildKey[R, C, G]) fields() []Field {
	return []Field{k.record, k.child, k.grandchild}
}

func (k ShardGrandchildKey[R, C, G]) Equal(other ShardGrandchildKey[R, C, G]) bool {
	return k.origin == other.origin && k.shardID == other.shardID &&
		k.record.EqualField(other.record) && k.child.EqualField(other.child) &&
		k.grandchild.EqualField(other.grandchild)
}

func (k ShardGrandchildKey[R, C, G]) Hash() uint64 {
	bin, _ := k.ToBinary()
	return hashBytes(bin)
}

func (k ShardGrandchildKey[R, C, G]) ToBinary() ([]byte, error) {
	return encodeBinary(k.origin, k.shardID, k.fields())
}

func FromBinaryGrandchild[R Field, C Field, G Field](buf []byte) (ShardGrandchildKey[R, C, G], error) {
	var r R
	var c C
	var g G
	origin, shardID, fields, err := decodeBinary(buf, []uint8{r.TypeCode(), c.TypeCode(), g.TypeCode()})
	if err != nil {
		return ShardGrandchildKey[R, C, G]{}, err
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	grandchild, ok3 := fields[2].(G)
	if !ok1 || !ok2 || !ok3 {
		return ShardGrandchildKey[R, C, G]{}, invalidBinary("decoded field type does not match requested variant")
	}
	return ShardGrandchildKey[R, C, G]{origin: origin, shardID: shardID, record: record, child: child, grandchild: grandchild}, nil
}

func TryParseGrandchild[R Field, C Field, G Field](buf []byte) (bool, ShardGrandchildKey[R, C, G]) {
	var r R
	var c C
	var g G
	ok, origin, shardID, fields := tryParseBinary(buf, []uint8{r.TypeCode(), c.TypeCode(), g.TypeCode()})
	if !ok {
		return false, EmptyGrandchild[R, C, G]()
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	grandchild, ok3 := fields[2].(G)
	if !ok1 || !ok2 || !ok3 {
		return false, EmptyGrandchild[R, C, G]()
	}
	return true, ShardGrandchildKey[R, C, G]{origin: origin, shardID: shardID, record: record, child: child, grandchild: grandchild}
}

func (k ShardGrandchildKey[R, C, G]) ToExternalString() (string, error) {
	bin, err := k.ToBinary()
	if err != nil {
		return "", err
	}
	return encodeExternal(bin, k.shardID), nil
}

func FromExternalStringGrandchild[R Field, C Field, G Field](s string) (ShardGrandchildKey[R, C, G], error) {
	bin, err := decodeExternal(s)
	if err != nil {
		return ShardGrandchildKey[R, C, G]{}, err
	}
	return FromBinaryGrandchild[R, C, G](bin)
}

func (k ShardGrandchildKey[R, C, G]) ToUTF8() ([]byte, error) {
	s, err := k.ToExternalString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func FromUTF8Grandchild[R Field, C Field, G Field](data []byte) (ShardGrandchildKey[R, C, G], error) {
	return FromExternalStringGrandchild[R, C, G](string(data))
}

// ---- arity 4: (origin, shard, record, child, grandchild, great-grandchild) ----

// ShardGreatGrandchildKey names a record down to its great-grandchild across
// shards — the deepest arity the format supports.
type ShardGreatGrandchildKey[R Field, C Field, G Field, H Field] struct {
	origin          byte
	shardID         int16
	record          R
	child           C
	grandchild      G
	greatGrandchild H
}

func NewGreatGrandchild[R Field, C Field, G Field, H Field](origin byte, shardID int16, record R, child C, grandchild G, greatGrandchild H) (ShardGreatGrandchildKey[R, C, G, H], error) {
	if err := validateOrigin(origin, []Field{record, child, grandchild, greatGrandchild}); err != nil {
		return ShardGreatGrandchildKey[R, C, G, H]{}, err
	}
	return ShardGreatGrandchildKey[R, C, G, H]{
		origin: origin, shardID: shardID, record: record, child: child,
		grandchild: grandchild, greatGrandchild: greatGrandchild,
	}, nil
}

func EmptyGreatGrandchild[R Field, C Field, G Field, H Field]() ShardGreatGrandchildKey[R, C, G, H] {
	var r R
	var c C
	var g G
	var h H
	return ShardGreatGrandchildKey[R, C, G, H]{origin: EmptyOrigin, record: r, child: c, grandchild: g, greatGrandchild: h}
}

func (k ShardGreatGrandchildKey[R, C, G, H]) Origin() byte          { return k.origin }
func (k ShardGreatGrandchildKey[R, C, G, H]) ShardID() int16        { return k.shardID }
func (k ShardGreatGrandchildKey[R, C, G, H]) RecordID() R           { return k.record }
func (k ShardGreatGrandchildKey[R, C, G, H]) ChildID() C            { return k.child }
func (k ShardGreatGrandchildKey[R, C, G, H]) GrandchildID() G       { return k.grandchild }
func (k ShardGreatGrandchildKey[R, C, G, H]) GreatGrandchildID() H  { return k.greatGrandchild }
func (k ShardGreatGrandchildKey[R, C, G, H]) IsEmpty() bool {
	return k.origin == EmptyOrigin && k.record.IsZero() && k.child.IsZero() &&
		k.grandchild.IsZero() && k.greatGrandchild.IsZero()
}
func (k ShardGreatGrandchildKey[R, C, G, H]) fields() []Field {
	return []Field{k.record, k.child, k.grandchild, k.greatGrandchild}
}

func (k ShardGreatGrandchildKey[R, C, G, H]) Equal(other ShardGreatGrandchildKey[R, C, G, H]) bool {
	return k.origin == other.origin && k.shardID == other.shardID &&
		k.record.EqualField(other.record) && k.child.EqualField(other.child) &&
		k.grandchild.EqualField(other.grandchild) && k.greatGrandchild.EqualField(other.greatGrandchild)
}

func (k ShardGreatGrandchildKey[R, C, G, H]) Hash() uint64 {
	bin, _ := k.ToBinary()
	return hashBytes(bin)
}

func (k ShardGreatGrandchildKey[R, C, G, H]) ToBinary() ([]byte, error) {
	return encodeBinary(k.origin, k.shardID, k.fields())
}

func FromBinaryGreatGrandchild[R Field, C Field, G Field, H Field](buf []byte) (ShardGreatGrandchildKey[R, C, G, H], error) {
	var r R
	var c C
	var g G
	var h H
	origin, shardID, fields, err := decodeBinary(buf, []uint8{r.TypeCode(), c.TypeCode(), g.TypeCode(), h.TypeCode()})
	if err != nil {
		return ShardGreatGrandchildKey[R, C, G, H]{}, err
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	grandchild, ok3 := fields[2].(G)
	greatGrandchild, ok4 := fields[3].(H)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return ShardGreatGrandchildKey[R, C, G, H]{}, invalidBinary("decoded field type does not match requested variant")
	}
	return ShardGreatGrandchildKey[R, C, G, H]{
		origin: origin, shardID: shardID, record: record, child: child,
		grandchild: grandchild, greatGrandchild: greatGrandchild,
	}, nil
}

func TryParseGreatGrandchild[R Field, C Field, G Field, H Field](buf []byte) (bool, ShardGreatGrandchildKey[R, C, G, H]) {
	var r R
	var c C
	var g G
	var h H
	ok, origin, shardID, fields := tryParseBinary(buf, []uint8{r.TypeCode(), c.TypeCode(), g.TypeCode(), h.TypeCode()})
	if !ok {
		return false, EmptyGreatGrandchild[R, C, G, H]()
	}
	record, ok1 := fields[0].(R)
	child, ok2 := fields[1].(C)
	grandchild, ok3 := fields[2].(G)
	greatGrandchild, ok4 := fields[3].(H)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false, EmptyGreatGrandchild[R, C, G, H]()
	}
	return true, ShardGreatGrandchildKey[R, C, G, H]{
		origin: origin, shardID: shardID, record: record, child: child,
		grandchild: grandchild, greatGrandchild: greatGrandchild,
	}
}

func (k ShardGreatGrandchildKey[R, C, G, H]) ToExternalString() (string, error) {
	bin, err := k.ToBinary()
	if err != nil {
		return "", err
	}
	return encodeExternal(bin, k.shardID), nil
}

func FromExternalStringGreatGrandchild[R Field, C Field, G Field, H Field](s string) (ShardGreatGrandchildKey[R, C, G, H], error) {
	bin, err := decodeExternal(s)
	if err != nil {
		return ShardGreatGrandchildKey[R, C, G, H]{}, err
	}
	return FromBinaryGreatGrandchild[R, C, G, H](bin)
}

func (k ShardGreatGrandchildKey[R, C, G, H]) ToUTF8() ([]byte, error) {
	s, err := k.ToExternalString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func FromUTF8GreatGrandchild[R Field, C Field, G Field, H Field](data []byte) (ShardGreatGrandchildKey[R, C, G, H], error) {
	return FromExternalStringGreatGrandchild[R, C, G, H](string(data))
}
