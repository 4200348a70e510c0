// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/dataforge/shardkey"
)

// encodeField, decodeField, runForeignShards, and runMerge are where
// shardctl's runtime --type flag meets shardkey's compile-time type
// parameter: each is a small switch, one arm per supported kind, each
// instantiating the generic call directly.
func encodeField(origin byte, shard int16, f shardkey.Field) (string, error) {
	switch v := f.(type) {
	case shardkey.Int32:
		return encodeExternalOf(origin, shard, v)
	case shardkey.Int64:
		return encodeExternalOf(origin, shard, v)
	case shardkey.String:
		return encodeExternalOf(origin, shard, v)
	case shardkey.GUID:
		return encodeExternalOf(origin, shard, v)
	default:
		return "", fmt.Errorf("unsupported record type %T", f)
	}
}

func decodeField(k kind, s string) (origin byte, shard int16, record shardkey.Field, err error) {
	switch k {
	case kindInt32:
		o, sh, r, err := decodeExternalOf[shardkey.Int32](s)
		return o, sh, r, err
	case kindInt64:
		o, sh, r, err := decodeExternalOf[shardkey.Int64](s)
		return o, sh, r, err
	case kindString:
		o, sh, r, err := decodeExternalOf[shardkey.String](s)
		return o, sh, r, err
	case kindGUID:
		o, sh, r, err := decodeExternalOf[shardkey.GUID](s)
		return o, sh, r, err
	default:
		return 0, 0, nil, fmt.Errorf("unknown --type %q (want int32, int64, string, or guid)", k)
	}
}

func runForeignShards(k kind, self string, candidates []string) error {
	switch k {
	case kindInt32:
		return foreignShardsOf[shardkey.Int32](self, candidates)
	case kindInt64:
		return foreignShardsOf[shardkey.Int64](self, candidates)
	case kindString:
		return foreignShardsOf[shardkey.String](self, candidates)
	case kindGUID:
		return foreignShardsOf[shardkey.GUID](self, candidates)
	default:
		return fmt.Errorf("unknown --type %q (want int32, int64, string, or guid)", k)
	}
}

func foreignShardsOf[R shardkey.Field](self string, candidates []string) error {
	selfKey, err := shardkey.FromExternalString[R](self)
	if err != nil {
		return fmt.Errorf("parsing --self: %w", err)
	}
	keys := make([]shardkey.ShardKey[R], 0, len(candidates))
	for _, c := range candidates {
		k, err := shardkey.FromExternalString[R](c)
		if err != nil {
			return fmt.Errorf("parsing candidate %q: %w", c, err)
		}
		keys = append(keys, k)
	}
	grouped := shardkey.ForeignShards(selfKey, keys)
	for shard, ks := range grouped {
		fmt.Printf("shard %d:\n", shard)
		for _, k := range ks {
			s, err := k.ToExternalString()
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n", s)
		}
	}
	return nil
}

func runMerge(k kind, original, replacements []string, appendUnmatched bool) error {
	switch k {
	case kindInt32:
		return mergeOf[shardkey.Int32](original, replacements, appendUnmatched)
	case kindInt64:
		return mergeOf[shardkey.Int64](original, replacements, appendUnmatched)
	case kindString:
		return mergeOf[shardkey.String](original, replacements, appendUnmatched)
	case kindGUID:
		return mergeOf[shardkey.GUID](original, replacements, appendUnmatched)
	default:
		return fmt.Errorf("unknown --type %q (want int32, int64, string, or guid)", k)
	}
}

func mergeOf[R shardkey.Field](originalStrs, replacementStrs []string, appendUnmatched bool) error {
	parse := func(strs []string) ([]shardkey.ShardKey[R], error) {
		out := make([]shardkey.ShardKey[R], 0, len(strs))
		for _, s := range strs {
			k, err := shardkey.FromExternalString[R](s)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", s, err)
			}
			out = append(out, k)
		}
		return out, nil
	}

	original, err := parse(originalStrs)
	if err != nil {
		return err
	}
	replacements, err := parse(replacementStrs)
	if err != nil {
		return err
	}

	merged := shardkey.Merge(original, replacements, func(k shardkey.ShardKey[R]) shardkey.ShardKey[R] { return k }, appendUnmatched)
	for _, k := range merged {
		s, err := k.ToExternalString()
		if err != nil {
			return err
		}
		fmt.Println(s)
	}
	return nil
}
