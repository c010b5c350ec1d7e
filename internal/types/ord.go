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

// eqvRank gives every variant a fixed secondary rank, used only to break
// ties between values whose primary (numeric-tower / lexical) comparison
// came back equal but whose variants differ (spec §9 "equivalence order";
// original_source/src/types/ord.rs's eqv_ord). Without this tie-break,
// `sort` over a mix of e.g. I32(1) and I64(1) would be unstable across
// runs, breaking the idempotence property §8.3 requires.
func eqvRank(k Kind) int {
	switch k {
	case KBool:
		return 0
	case KI32:
		return 1
	case KI64:
		return 2
	case KIBig:
		return 3
	case KF32:
		return 4
	case KF64:
		return 5
	case KChar:
		return 6
	case KStr:
		return 7
	case KWord:
		return 8
	case KOpt:
		return 9
	case KRes:
		return 10
	case KVec:
		return 11
	case KExpr:
		return 12
	case KMap:
		return 13
	case KSet:
		return 14
	case KSeq:
		return 15
	default:
		return 99
	}
}

// Equal implements structural, cross-variant-numeric equality (spec
// §4.1.3): two numeric values of different variants are equal iff their
// tower values coincide; Opt/Res/Vec/Map/Set/Expr/Seq compare element-wise;
// everything else compares by kind and payload.
func Equal(a, b Value) bool {
	if a.IsNumLike() && b.IsNumLike() {
		pa, pb, ok := numTower(a, b)
		if ok {
			return numEqual(pa, pb)
		}
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KBool:
		return a.b == b.b
	case KStr, KWord:
		return a.str == b.str
	case KOpt:
		ta, oka := a.optVal()
		tb, okb := b.optVal()
		if oka != okb {
			return false
		}
		return !oka || Equal(ta, tb)
	case KRes:
		ta, oka := a.resVal_()
		tb, okb := b.resVal_()
		if oka != okb {
			return false
		}
		return Equal(ta, tb)
	case KVec:
		return equalSlices(a.vec, b.vec)
	case KExpr:
		return equalSlices(exprValues(a.expr), exprValues(b.expr))
	case KMap:
		return equalMaps(a.mp, b.mp)
	case KSet:
		return equalSets(a.set, b.set)
	case KSeq:
		return equalSeqs(a.seq, b.seq)
	default:
		return false
	}
}

func numEqual(a, b Value) bool {
	switch a.kind {
	case KI32:
		return a.i32 == b.i32
	case KI64:
		return a.i64 == b.i64
	case KIBig:
		return a.ibig.Cmp(b.ibig) == 0
	case KF32:
		return a.f32 == b.f32
	case KF64:
		return a.f64 == b.f64
	default:
		return false
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMaps(a, b *OMap) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.keys {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalSets(a, b *OSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.keys {
		if !b.Has(k) {
			return false
		}
	}
	return true
}

func equalSeqs(a, b Seq) bool {
	ca, cb := a.Clone(), b.Clone()
	for {
		va, oka, erra := ca.Next()
		vb, okb, errb := cb.Next()
		if erra != nil || errb != nil {
			return erra == nil && errb == nil
		}
		if oka != okb {
			return false
		}
		if !oka {
			return true
		}
		if !Equal(va, vb) {
			return false
		}
	}
}

// Compare implements the total order of spec §4.1.4: numeric variants
// compare by tower value; same-kind non-numeric values compare lexically
// /element-wise; different, non-numeric-compatible kinds fall back to
// eqvRank so that Compare is always total, never panicking on a mixed
// comparison the way the Rust original does.
func Compare(a, b Value) int {
	if a.IsNumLike() && b.IsNumLike() {
		pa, pb, ok := numTower(a, b)
		if ok {
			if c := numCompare(pa, pb); c != 0 {
				return c
			}
			return rankCompare(a.kind, b.kind)
		}
	}
	if a.kind != b.kind {
		return rankCompare(a.kind, b.kind)
	}
	switch a.kind {
	case KBool:
		return boolCompare(a.b, b.b)
	case KStr, KWord:
		return strCompare(a.str, b.str)
	case KChar:
		return intCompare(int64(a.ch), int64(b.ch))
	case KOpt:
		ta, oka := a.optVal()
		tb, okb := b.optVal()
		if !oka && !okb {
			return 0
		}
		if !oka {
			return -1
		}
		if !okb {
			return 1
		}
		return Compare(ta, tb)
	case KRes:
		ta, oka := a.resVal_()
		tb, okb := b.resVal_()
		if oka != okb {
			if oka {
				return 1
			}
			return -1
		}
		return Compare(ta, tb)
	case KVec:
		return compareSlices(a.vec, b.vec)
	case KExpr:
		return compareSlices(exprValues(a.expr), exprValues(b.expr))
	case KMap:
		return compareSlices(flattenPairs(a.mp), flattenPairs(b.mp))
	case KSet:
		return compareSlices(a.set.keys, b.set.keys)
	case KSeq:
		return compareSeqs(a.seq, b.seq)
	default:
		return 0
	}
}

func rankCompare(ka, kb Kind) int { return intCompare(int64(eqvRank(ka)), int64(eqvRank(kb))) }

func numCompare(a, b Value) int {
	switch a.kind {
	case KI32:
		return intCompare(int64(a.i32), int64(b.i32))
	case KI64:
		return intCompare(a.i64, b.i64)
	case KIBig:
		return a.ibig.Cmp(b.ibig)
	case KF32:
		return floatCompare(float64(a.f32), float64(b.f32))
	case KF64:
		return floatCompare(a.f64, b.f64)
	default:
		return 0
	}
}

func intCompare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func strCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// floatCompare orders NaN last (spec §9 Open Question resolution, matching
// original_source/src/types/ord.rs's NaN-last total order).
func floatCompare(a, b float64) int {
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareSlices(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return intCompare(int64(len(a)), int64(len(b)))
}

func compareSeqs(a, b Seq) int {
	ca, cb := a.Clone(), b.Clone()
	for {
		va, oka, erra := ca.Next()
		vb, okb, errb := cb.Next()
		_ = erra
		_ = errb
		if !oka && !okb {
			return 0
		}
		if !oka {
			return -1
		}
		if !okb {
			return 1
		}
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
}

func flattenPairs(m *OMap) []Value {
	out := make([]Value, 0, len(m.keys)*2)
	for _, k := range m.keys {
		v, _ := m.Get(k)
		out = append(out, k, v)
	}
	return out
}

// Less reports whether a sorts strictly before b under Compare; convenience
// for sort.Slice call sites in iter.go.
func Less(a, b Value) bool { return Compare(a, b) < 0 }
