// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapper

import (
	"fmt"

	"github.com/dataforge/shardkey"
)

// scanField converts a raw database/sql-shaped column value (int64, float64,
// bool, string, or []byte, the concrete types database/sql.Rows.Scan
// produces for NUMBER/TEXT/BLOB columns without a custom Scanner) into the
// shardkey.Field concrete type identified by code. Decimal, Timestamp,
// Date, TimeOfDay, and TimeSpan are not handled by this mapper and return
// an error; a provider-specific model that needs them should convert them
// to and from scalar columns itself.
func scanField(v any, code uint8) (shardkey.Field, error) {
	switch code {
	case shardkey.TypeInt8:
		n, err := asInt64(v)
		return shardkey.Int8(n), err
	case shardkey.TypeInt16:
		n, err := asInt64(v)
		return shardkey.Int16(n), err
	case shardkey.TypeInt32:
		n, err := asInt64(v)
		return shardkey.Int32(n), err
	case shardkey.TypeInt64:
		n, err := asInt64(v)
		return shardkey.Int64(n), err
	case shardkey.TypeUint8:
		n, err := asInt64(v)
		return shardkey.Uint8(n), err
	case shardkey.TypeUint16:
		n, err := asInt64(v)
		return shardkey.Uint16(n), err
	case shardkey.TypeUint32:
		n, err := asInt64(v)
		return shardkey.Uint32(n), err
	case shardkey.TypeUint64:
		n, err := asInt64(v)
		return shardkey.Uint64(n), err
	case shardkey.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("mapper: column value %v (%T) is not a bool", v, v)
		}
		return shardkey.Bool(b), nil
	case shardkey.TypeFloat32:
		f, err := asFloat64(v)
		return shardkey.Float32(f), err
	case shardkey.TypeFloat64:
		f, err := asFloat64(v)
		return shardkey.Float64(f), err
	case shardkey.TypeChar:
		s, ok := v.(string)
		if !ok || len([]rune(s)) != 1 {
			return nil, fmt.Errorf("mapper: column value %v (%T) is not a single-character string", v, v)
		}
		return shardkey.Char([]rune(s)[0]), nil
	case shardkey.TypeGUID:
		b, ok := v.([]byte)
		if !ok || len(b) != 16 {
			return nil, fmt.Errorf("mapper: column value %v (%T) is not a 16-byte GUID", v, v)
		}
		var g shardkey.GUID
		copy(g[:], b)
		return g, nil
	case shardkey.TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("mapper: column value %v (%T) is not a string", v, v)
		}
		return shardkey.String(s), nil
	case shardkey.TypeBlob:
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("mapper: column value %v (%T) is not a []byte", v, v)
		}
		return shardkey.Blob(b), nil
	default:
		return nil, fmt.Errorf("mapper: type code %d is not a single-column scalar", code)
	}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("mapper: column value %v (%T) is not an integer", v, v)
	}
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mapper: column value %v (%T) is not a float", v, v)
	}
}

// columnValue is scanField's inverse: it converts a Field back into the
// plain Go value a database/sql parameter binder expects.
func columnValue(f shardkey.Field) any {
	switch v := f.(type) {
	case shardkey.Int8:
		return int64(v)
	case shardkey.Int16:
		return int64(v)
	case shardkey.Int32:
		return int64(v)
	case shardkey.Int64:
		return int64(v)
	case shardkey.Uint8:
		return int64(v)
	case shardkey.Uint16:
		return int64(v)
	case shardkey.Uint32:
		return int64(v)
	case shardkey.Uint64:
		return int64(v)
	case shardkey.Bool:
		return bool(v)
	case shardkey.Float32:
		return float64(v)
	case shardkey.Float64:
		return float64(v)
	case shardkey.Char:
		return string(v)
	case shardkey.GUID:
		b := make([]byte, 16)
		copy(b, v[:])
		return b
	case shardkey.String:
		return string(v)
	case shardkey.Blob:
		b := make([]byte, len(v))
		copy(b, v)
		return b
	default:
		return nil
	}
}
