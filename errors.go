// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

import (
	"errors"
	"fmt"
)

// ErrInvalidShardArguments is returned when a caller tries to construct an
// Empty-origin key ('0') carrying a nonzero payload. A non-Empty-origin key
// whose every payload is the zero value is accepted.
var ErrInvalidShardArguments = errors.New("shardkey: origin '0' requires every payload to be the type's empty value")

// ErrCorruptExternal is returned when an external string's checksum does not
// match its decoded body, the base-64 body contains a character outside the
// safe alphabet, or the string is shorter than the 2-character checksum
// prefix plus the minimum encoded binary length.
var ErrCorruptExternal = errors.New("shardkey: corrupt external string")

// InvalidMetadataError reports a mismatch between the metadata a buffer
// declares and the metadata the target key variant expects.
type InvalidMetadataError struct {
	// Reason is a short human description ("arity mismatch", "type code
	// mismatch", ...).
	Reason string

	// ExpectedType is the type code the target variant expected at the
	// position that failed to match. Zero when the mismatch was about arity
	// rather than a specific component.
	ExpectedType uint8

	// ActualType is the type code actually found in the metadata.
	ActualType uint8
}

func (e *InvalidMetadataError) Error() string {
	if e.Reason == "arity mismatch" {
		return fmt.Sprintf("shardkey: invalid metadata: %s", e.Reason)
	}
	return fmt.Sprintf("shardkey: invalid metadata: %s (expected type %d, got %d)",
		e.Reason, e.ExpectedType, e.ActualType)
}

// InvalidBinaryError reports a structural problem with a binary-encoded key
// that prevented it from being decoded.
type InvalidBinaryError struct {
	Reason string
}

func (e *InvalidBinaryError) Error() string {
	return fmt.Sprintf("shardkey: invalid binary encoding: %s", e.Reason)
}

// InvalidDataOriginError is raised by consumers of a decoded key (not by the
// codec itself) when the origin does not match the one a specific API
// endpoint expects.
type InvalidDataOriginError struct {
	Expected byte
	Actual   byte
}

func (e *InvalidDataOriginError) Error() string {
	return fmt.Sprintf("shardkey: invalid data origin: expected %q, got %q",
		e.Expected, e.Actual)
}

func invalidBinary(reason string) error {
	return &InvalidBinaryError{Reason: reason}
}

func invalidMetadataArity() error {
	return &InvalidMetadataError{Reason: "arity mismatch"}
}

func invalidMetadataType(expected, actual uint8) error {
	return &InvalidMetadataError{
		Reason:       "type code mismatch",
		ExpectedType: expected,
		ActualType:   actual,
	}
}
