// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shardkey

// HashEqualKey is satisfied by every ShardKey arity in this package. The
// collection operations below (ForeignShards, Merge) are written against it
// instead of a concrete arity so callers working with
// ShardKey/ShardChildKey/ShardGrandchildKey/ShardGreatGrandchildKey all get
// the same algebra for free.
type HashEqualKey[K any] interface {
	Equal(other K) bool
	Hash() uint64
}

// ShardedKey is satisfied by every ShardKey arity; it is the one method
// ForeignShards needs.
type ShardedKey interface {
	ShardID() int16
}

// ForeignShards groups keys by shard id, excluding any key on self's shard.
// Keys on the same foreign shard retain their relative input order;
// duplicates are preserved. Never fails: a self with no foreign peers in
// keys simply returns an empty map.
func ForeignShards[K ShardedKey](self K, keys []K) map[int16][]K {
	selfShard := self.ShardID()
	out := make(map[int16][]K)
	for _, k := range keys {
		shard := k.ShardID()
		if shard == selfShard {
			continue
		}
		out[shard] = append(out[shard], k)
	}
	return out
}

// Merge produces a new slice: for each element of original, substitutes the
// first (by input order) element of replacements whose key equals it, or
// keeps the original if none match. If appendUnmatched is true, every
// replacement whose key does not match any element of original is appended,
// in input order, to the tail. Never fails on well-typed input; it may
// return an empty slice if original is empty and appendUnmatched is false.
func Merge[M any, K HashEqualKey[K]](original, replacements []M, keyOf func(M) K, appendUnmatched bool) []M {
	// Index replacements by hash bucket so the substitution scan below is
	// O(len(original) + len(replacements)) in the common case rather than
	// O(len(original) * len(replacements)).
	replByHash := make(map[uint64][]int, len(replacements))
	for i, r := range replacements {
		h := keyOf(r).Hash()
		replByHash[h] = append(replByHash[h], i)
	}

	origKeys := make([]K, len(original))
	origByHash := make(map[uint64][]int, len(original))
	for i, o := range original {
		k := keyOf(o)
		origKeys[i] = k
		h := k.Hash()
		origByHash[h] = append(origByHash[h], i)
	}

	out := make([]M, 0, len(original)+len(replacements))
	for i, o := range original {
		k := origKeys[i]
		chosen := o
		for _, idx := range replByHash[k.Hash()] {
			if keyOf(replacements[idx]).Equal(k) {
				chosen = replacements[idx]
				break
			}
		}
		out = append(out, chosen)
	}

	if appendUnmatched {
		for _, r := range replacements {
			rk := keyOf(r)
			found := false
			for _, idx := range origByHash[rk.Hash()] {
				if origKeys[idx].Equal(rk) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, r)
			}
		}
	}

	return out
}
