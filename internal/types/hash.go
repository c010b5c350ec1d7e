// This file is part of euphrates.
//
// Copyright 2026 The Euphrates Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

// Hash computes a structural hash of v, consistent with Equal: equal values
// hash identically (spec §4.1.5). Numeric variants hash by their tower
// value so that e.g. I32(1) and F64(1.0) collide, matching cross-variant
// numeric equality (§4.1.3). A Seq is hashed by consuming a snapshot.
func Hash(v Value) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	hashInto(&h, v)
	return h.Sum64()
}

func hashInto(h *maphash.Hash, v Value) {
	switch {
	case v.IsNumLike():
		h.WriteByte(byte(KF64))
		f, _ := v.toF64Exact()
		if f == 0 {
			f = 0 // -0 and +0 are Equal
		}
		writeFloat(h, f)
	default:
		h.WriteByte(byte(v.kind))
		switch v.kind {
		case KBool:
			if v.b {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
		case KChar:
			writeUint(h, uint64(v.ch))
		case KStr, KWord:
			_, _ = h.WriteString(v.str)
		case KOpt:
			if t, ok := v.optVal(); ok {
				h.WriteByte(1)
				hashInto(h, t)
			} else {
				h.WriteByte(0)
			}
		case KRes:
			t, ok := v.resVal_()
			if ok {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
			hashInto(h, t)
		case KVec, KExpr:
			vs := v.vec
			if v.kind == KExpr {
				vs = exprValues(v.expr)
			}
			writeUint(h, uint64(len(vs)))
			for _, t := range vs {
				hashInto(h, t)
			}
		case KMap:
			// Summed so that insertion order does not change the hash.
			var sum uint64
			for _, k := range v.mp.keys {
				sum += Hash(k)
			}
			writeUint(h, sum)
		case KSet:
			var sum uint64
			for _, k := range v.set.keys {
				sum += Hash(k)
			}
			writeUint(h, sum)
		case KSeq:
			snap := v.seq.Clone()
			for {
				t, ok, err := snap.Next()
				if err != nil || !ok {
					break
				}
				hashInto(h, t)
			}
		}
	}
}

func writeUint(h *maphash.Hash, n uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(n >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

func writeFloat(h *maphash.Hash, f float64) {
	writeUint(h, mathFloat64bits(f))
}

// exprValues renders the literal, non-syntactic values of an Expr's Raw
// nodes for hashing purposes; used only when an Expr participates in a
// Set/Map key, which requires its elements to already be concrete values.
func exprValues(nodes []SynNode) []Value {
	vs := make([]Value, len(nodes))
	for i, n := range nodes {
		if n.kind == SynRaw {
			vs[i] = n.raw
		}
	}
	return vs
}
