// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import (
	"encoding/binary"
	"math"
)

// Field is the closed set of wire-encodable payload types a ShardKey
// component can hold. Every concrete type in this file (Int8, ..., Blob)
// implements it with a value receiver so encoding never goes through
// reflection, and fixed-width fields never go through a type switch (only
// String and Blob are sized by one, in encodedSize) — the type code
// recorded in the metadata is only ever consulted at decode time, to verify
// the buffer actually holds what the target variant expects.
//
// Codes are hard-coded and stable: a retired code is never reused, and a new
// type always gets the next unused code.
type Field interface {
	// TypeCode returns this field's 5-bit wire type code (0-31).
	TypeCode() uint8

	// Size returns the encoded length in bytes, or -1 for variable-width
	// types whose length depends on the value.
	Size() int

	// AppendEncoded appends this value's encoded bytes to buf and returns
	// the extended slice.
	AppendEncoded(buf []byte) ([]byte, error)

	// EqualField reports whether other holds the same logical value.
	// Floating-point fields compare by bit pattern, so NaN == NaN.
	EqualField(other Field) bool

	// IsZero reports whether this is the type's canonical empty value.
	IsZero() bool
}

// Type codes. Hard-coded and append-only: never reuse a retired code.
const (
	TypeInt8 uint8 = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeBool
	TypeFloat32
	TypeFloat64
	TypeChar
	TypeDecimal
	TypeGUID
	TypeTimestamp
	TypeDate
	TypeTimeOfDay
	TypeTimeSpan
	TypeString
	TypeBlob
)

// maxVariableLength is the largest encodable length for String and Blob: the
// field carries a 2-byte little-endian length prefix.
const maxVariableLength = 65535

// fieldDecoder decodes one Field value starting at buf[0]. It returns the
// decoded value and the number of bytes consumed. It must not read past
// len(buf).
type fieldDecoder func(buf []byte) (Field, int, error)

// decoders is the Type Registry's lookup table: type code -> decode routine.
// It is consulted only at decode time, after the metadata's declared type
// code has already been checked against the target variant's expected code;
// by the time a decoder runs here, the code match is already known-good.
var decoders = map[uint8]fieldDecoder{
	TypeInt8:      decodeInt8,
	TypeInt16:     decodeInt16,
	TypeInt32:     decodeInt32,
	TypeInt64:     decodeInt64,
	TypeUint8:     decodeUint8,
	TypeUint16:    decodeUint16,
	TypeUint32:    decodeUint32,
	TypeUint64:    decodeUint64,
	TypeBool:      decodeBool,
	TypeFloat32:   decodeFloat32,
	TypeFloat64:   decodeFloat64,
	TypeChar:      decodeChar,
	TypeDecimal:   decodeDecimal,
	TypeGUID:      decodeGUID,
	TypeTimestamp: decodeTimestamp,
	TypeDate:      decodeDate,
	TypeTimeOfDay: decodeTimeOfDay,
	TypeTimeSpan:  decodeTimeSpan,
	TypeString:    decodeString,
	TypeBlob:      decodeBlob,
}

func needBytes(buf []byte, n int) error {
	if len(buf) < n {
		return invalidBinary("buffer too short for declared payload width")
	}
	return nil
}

// ---- Int8 ----

type Int8 int8

func (v Int8) TypeCode() uint8 { return TypeInt8 }
func (Int8) Size() int         { return 1 }
func (v Int8) AppendEncoded(buf []byte) ([]byte, error) {
	return append(buf, byte(v)), nil
}
func (v Int8) EqualField(other Field) bool { o, ok := other.(Int8); return ok && o == v }
func (v Int8) IsZero() bool                { return v == 0 }

func decodeInt8(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 1); err != nil {
		return nil, 0, err
	}
	return Int8(int8(buf[0])), 1, nil
}

// ---- Int16 ----

type Int16 int16

func (v Int16) TypeCode() uint8 { return TypeInt16 }
func (Int16) Size() int         { return 2 }
func (v Int16) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	return append(buf, tmp[:]...), nil
}
func (v Int16) EqualField(other Field) bool { o, ok := other.(Int16); return ok && o == v }
func (v Int16) IsZero() bool                { return v == 0 }

func decodeInt16(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 2); err != nil {
		return nil, 0, err
	}
	return Int16(int16(binary.LittleEndian.Uint16(buf))), 2, nil
}

// ---- Int32 ----

type Int32 int32

func (v Int32) TypeCode() uint8 { return TypeInt32 }
func (Int32) Size() int         { return 4 }
func (v Int32) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...), nil
}
func (v Int32) EqualField(other Field) bool { o, ok := other.(Int32); return ok && o == v }
func (v Int32) IsZero() bool                { return v == 0 }

func decodeInt32(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 4); err != nil {
		return nil, 0, err
	}
	return Int32(int32(binary.LittleEndian.Uint32(buf))), 4, nil
}

// ---- Int64 ----

type Int64 int64

func (v Int64) TypeCode() uint8 { return TypeInt64 }
func (Int64) Size() int         { return 8 }
func (v Int64) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...), nil
}
func (v Int64) EqualField(other Field) bool { o, ok := other.(Int64); return ok && o == v }
func (v Int64) IsZero() bool                { return v == 0 }

func decodeInt64(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 8); err != nil {
		return nil, 0, err
	}
	return Int64(int64(binary.LittleEndian.Uint64(buf))), 8, nil
}

// ---- Uint8 ----

type Uint8 uint8

func (v Uint8) TypeCode() uint8 { return TypeUint8 }
func (Uint8) Size() int         { return 1 }
func (v Uint8) AppendEncoded(buf []byte) ([]byte, error) {
	return append(buf, byte(v)), nil
}
func (v Uint8) EqualField(other Field) bool { o, ok := other.(Uint8); return ok && o == v }
func (v Uint8) IsZero() bool                { return v == 0 }

func decodeUint8(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 1); err != nil {
		return nil, 0, err
	}
	return Uint8(buf[0]), 1, nil
}

// ---- Uint16 ----

type Uint16 uint16

func (v Uint16) TypeCode() uint8 { return TypeUint16 }
func (Uint16) Size() int         { return 2 }
func (v Uint16) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	return append(buf, tmp[:]...), nil
}
func (v Uint16) EqualField(other Field) bool { o, ok := other.(Uint16); return ok && o == v }
func (v Uint16) IsZero() bool                { return v == 0 }

func decodeUint16(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 2); err != nil {
		return nil, 0, err
	}
	return Uint16(binary.LittleEndian.Uint16(buf)), 2, nil
}

// ---- Uint32 ----

type Uint32 uint32

func (v Uint32) TypeCode() uint8 { return TypeUint32 }
func (Uint32) Size() int         { return 4 }
func (v Uint32) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...), nil
}
func (v Uint32) EqualField(other Field) bool { o, ok := other.(Uint32); return ok && o == v }
func (v Uint32) IsZero() bool                { return v == 0 }

func decodeUint32(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 4); err != nil {
		return nil, 0, err
	}
	return Uint32(binary.LittleEndian.Uint32(buf)), 4, nil
}

// ---- Uint64 ----

type Uint64 uint64

func (v Uint64) TypeCode() uint8 { return TypeUint64 }
func (Uint64) Size() int         { return 8 }
func (v Uint64) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...), nil
}
func (v Uint64) EqualField(other Field) bool { o, ok := other.(Uint64); return ok && o == v }
func (v Uint64) IsZero() bool                { return v == 0 }

func decodeUint64(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 8); err != nil {
		return nil, 0, err
	}
	return Uint64(binary.LittleEndian.Uint64(buf)), 8, nil
}

// ---- Bool ----

type Bool bool

func (v Bool) TypeCode() uint8 { return TypeBool }
func (Bool) Size() int         { return 1 }
func (v Bool) AppendEncoded(buf []byte) ([]byte, error) {
	if v {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}
func (v Bool) EqualField(other Field) bool { o, ok := other.(Bool); return ok && o == v }
func (v Bool) IsZero() bool                { return !bool(v) }

func decodeBool(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 1); err != nil {
		return nil, 0, err
	}
	return Bool(buf[0] != 0), 1, nil
}

// ---- Float32 ----

// Float32 is compared and hashed by bit pattern: two NaN values are equal
// because ShardKey fields are identifiers, not arithmetic quantities.
type Float32 float32

func (v Float32) TypeCode() uint8 { return TypeFloat32 }
func (Float32) Size() int         { return 4 }
func (v Float32) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(float32(v)))
	return append(buf, tmp[:]...), nil
}
func (v Float32) EqualField(other Field) bool {
	o, ok := other.(Float32)
	return ok && math.Float32bits(float32(o)) == math.Float32bits(float32(v))
}
func (v Float32) IsZero() bool { return math.Float32bits(float32(v)) == 0 }

func decodeFloat32(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 4); err != nil {
		return nil, 0, err
	}
	return Float32(math.Float32frombits(binary.LittleEndian.Uint32(buf))), 4, nil
}

// ---- Float64 ----

// Float64 is compared and hashed by bit pattern, same rationale as Float32.
type Float64 float64

func (v Float64) TypeCode() uint8 { return TypeFloat64 }
func (Float64) Size() int         { return 8 }
func (v Float64) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(float64(v)))
	return append(buf, tmp[:]...), nil
}
func (v Float64) EqualField(other Field) bool {
	o, ok := other.(Float64)
	return ok && math.Float64bits(float64(o)) == math.Float64bits(float64(v))
}
func (v Float64) IsZero() bool { return math.Float64bits(float64(v)) == 0 }

func decodeFloat64(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 8); err != nil {
		return nil, 0, err
	}
	return Float64(math.Float64frombits(binary.LittleEndian.Uint64(buf))), 8, nil
}

// ---- Char ----

// Char is a single Unicode scalar value, wire-encoded as its 4-byte
// little-endian code point.
type Char rune

func (v Char) TypeCode() uint8 { return TypeChar }
func (Char) Size() int         { return 4 }
func (v Char) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...), nil
}
func (v Char) EqualField(other Field) bool { o, ok := other.(Char); return ok && o == v }
func (v Char) IsZero() bool                { return v == 0 }

func decodeChar(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 4); err != nil {
		return nil, 0, err
	}
	return Char(rune(binary.LittleEndian.Uint32(buf))), 4, nil
}

// ---- Decimal ----

// Decimal is a 128-bit fixed-point value: a sign byte, a 96-bit big-endian
// mantissa, a scale byte, and 2 reserved bytes (16 bytes total).
type Decimal struct {
	Negative bool
	Mantissa [12]byte // 96-bit magnitude, big-endian
	Scale    uint8
}

func (Decimal) TypeCode() uint8 { return TypeDecimal }
func (Decimal) Size() int       { return 16 }
func (v Decimal) AppendEncoded(buf []byte) ([]byte, error) {
	var sign byte
	if v.Negative {
		sign = 1
	}
	buf = append(buf, sign)
	buf = append(buf, v.Mantissa[:]...)
	buf = append(buf, v.Scale, 0, 0)
	return buf, nil
}
func (v Decimal) EqualField(other Field) bool {
	o, ok := other.(Decimal)
	return ok && o.Negative == v.Negative && o.Mantissa == v.Mantissa && o.Scale == v.Scale
}
func (v Decimal) IsZero() bool {
	if v.Negative || v.Scale != 0 {
		return false
	}
	for _, b := range v.Mantissa {
		if b != 0 {
			return false
		}
	}
	return true
}

func decodeDecimal(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 16); err != nil {
		return nil, 0, err
	}
	var d Decimal
	d.Negative = buf[0] != 0
	copy(d.Mantissa[:], buf[1:13])
	d.Scale = buf[13]
	return d, 16, nil
}

// ---- GUID ----

// GUID is a 16-byte universally unique identifier, stored and compared
// byte-for-byte with no endianness reinterpretation.
type GUID [16]byte

func (GUID) TypeCode() uint8 { return TypeGUID }
func (GUID) Size() int       { return 16 }
func (v GUID) AppendEncoded(buf []byte) ([]byte, error) {
	return append(buf, v[:]...), nil
}
func (v GUID) EqualField(other Field) bool { o, ok := other.(GUID); return ok && o == v }
func (v GUID) IsZero() bool                { return v == GUID{} }

func decodeGUID(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 16); err != nil {
		return nil, 0, err
	}
	var g GUID
	copy(g[:], buf[:16])
	return g, 16, nil
}

// Timestamp kinds.
const (
	TimestampUnspecified uint8 = 0
	TimestampUTC         uint8 = 1
	TimestampLocal       uint8 = 2
)

// Timestamp is a tick count (100-nanosecond units since a reference epoch)
// plus a 1-byte kind discriminator.
type Timestamp struct {
	Ticks int64
	Kind  uint8
}

func (Timestamp) TypeCode() uint8 { return TypeTimestamp }
func (Timestamp) Size() int       { return 9 }
func (v Timestamp) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v.Ticks))
	buf = append(buf, tmp[:]...)
	buf = append(buf, v.Kind)
	return buf, nil
}
func (v Timestamp) EqualField(other Field) bool {
	o, ok := other.(Timestamp)
	return ok && o.Ticks == v.Ticks && o.Kind == v.Kind
}
func (v Timestamp) IsZero() bool { return v.Ticks == 0 && v.Kind == 0 }

func decodeTimestamp(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 9); err != nil {
		return nil, 0, err
	}
	return Timestamp{
		Ticks: int64(binary.LittleEndian.Uint64(buf)),
		Kind:  buf[8],
	}, 9, nil
}

// ---- Date ----

// Date is a day count since a reference epoch.
type Date int32

func (Date) TypeCode() uint8 { return TypeDate }
func (Date) Size() int       { return 4 }
func (v Date) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...), nil
}
func (v Date) EqualField(other Field) bool { o, ok := other.(Date); return ok && o == v }
func (v Date) IsZero() bool                { return v == 0 }

func decodeDate(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 4); err != nil {
		return nil, 0, err
	}
	return Date(int32(binary.LittleEndian.Uint32(buf))), 4, nil
}

// ---- TimeOfDay ----

// TimeOfDay is a tick count (100-nanosecond units) since midnight.
type TimeOfDay int64

func (TimeOfDay) TypeCode() uint8 { return TypeTimeOfDay }
func (TimeOfDay) Size() int       { return 8 }
func (v TimeOfDay) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...), nil
}
func (v TimeOfDay) EqualField(other Field) bool { o, ok := other.(TimeOfDay); return ok && o == v }
func (v TimeOfDay) IsZero() bool                { return v == 0 }

func decodeTimeOfDay(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 8); err != nil {
		return nil, 0, err
	}
	return TimeOfDay(int64(binary.LittleEndian.Uint64(buf))), 8, nil
}

// ---- TimeSpan ----

// TimeSpan is a signed tick count (100-nanosecond units) duration.
type TimeSpan int64

func (TimeSpan) TypeCode() uint8 { return TypeTimeSpan }
func (TimeSpan) Size() int       { return 8 }
func (v TimeSpan) AppendEncoded(buf []byte) ([]byte, error) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...), nil
}
func (v TimeSpan) EqualField(other Field) bool { o, ok := other.(TimeSpan); return ok && o == v }
func (v TimeSpan) IsZero() bool                { return v == 0 }

func decodeTimeSpan(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 8); err != nil {
		return nil, 0, err
	}
	return TimeSpan(int64(binary.LittleEndian.Uint64(buf))), 8, nil
}

// ---- String ----

// String is UTF-8 text with a 2-byte little-endian length prefix. Maximum
// encoded length is maxVariableLength bytes.
type String string

func (String) TypeCode() uint8 { return TypeString }
func (String) Size() int       { return -1 }
func (v String) AppendEncoded(buf []byte) ([]byte, error) {
	if len(v) > maxVariableLength {
		return nil, invalidBinary("string payload exceeds maximum encodable length")
	}
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(len(v)))
	buf = append(buf, tmp[:]...)
	buf = append(buf, v...)
	return buf, nil
}
func (v String) EqualField(other Field) bool { o, ok := other.(String); return ok && o == v }
func (v String) IsZero() bool                { return v == "" }

func decodeString(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 2); err != nil {
		return nil, 0, err
	}
	n := int(binary.LittleEndian.Uint16(buf))
	if err := needBytes(buf[2:], n); err != nil {
		return nil, 0, err
	}
	return String(buf[2 : 2+n]), 2 + n, nil
}

// ---- Blob ----

// Blob is an opaque byte sequence with a 2-byte little-endian length prefix.
// Maximum encoded length is maxVariableLength bytes.
type Blob []byte

func (Blob) TypeCode() uint8 { return TypeBlob }
func (Blob) Size() int       { return -1 }
func (v Blob) AppendEncoded(buf []byte) ([]byte, error) {
	if len(v) > maxVariableLength {
		return nil, invalidBinary("blob payload exceeds maximum encodable length")
	}
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(len(v)))
	buf = append(buf, tmp[:]...)
	buf = append(buf, v...)
	return buf, nil
}
func (v Blob) EqualField(other Field) bool {
	o, ok := other.(Blob)
	if !ok || len(o) != len(v) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}
func (v Blob) IsZero() bool { return len(v) == 0 }

func decodeBlob(buf []byte) (Field, int, error) {
	if err := needBytes(buf, 2); err != nil {
		return nil, 0, err
	}
	n := int(binary.LittleEndian.Uint16(buf))
	if err := needBytes(buf[2:], n); err != nil {
		return nil, 0, err
	}
	out := make([]byte, n)
	copy(out, buf[2:2+n])
	return Blob(out), 2 + n, nil
}

// encodedSize returns f's encoded length in bytes, computing it for
// variable-width types rather than relying on Size(), which reports -1 for
// those.
func encodedSize(f Field) int {
	if n := f.Size(); n >= 0 {
		return n
	}
	switch v := f.(type) {
	case String:
		return 2 + len(v)
	case Blob:
		return 2 + len(v)
	default:
		return 0
	}
}
