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
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// ToI32/ToI64/ToIBig/ToF32/ToF64 implement the `to_V` family (spec §4.1.1):
// unconditional, "best effort" coercion to the named numeric type. Str
// parses; Bool/Char normalize through I32 first; a value with no sensible
// numeric reading converts to the zero value of the target type, mirroring
// original_source/src/types/num.rs's infallible `to_*` (as opposed to the
// fallible `try_*` family below).

func (v Value) ToI32() int32 {
	if n, ok := v.tryNum(); ok {
		i, _ := n.toI32()
		return i
	}
	return 0
}

func (v Value) ToI64() int64 {
	if n, ok := v.tryNum(); ok {
		i, _ := n.toI64()
		return i
	}
	return 0
}

func (v Value) ToIBig() *big.Int {
	if n, ok := v.tryNum(); ok {
		i, _ := n.toIBig()
		return i
	}
	return new(big.Int)
}

func (v Value) ToF32() float32 {
	if n, ok := v.tryNum(); ok {
		f, _ := n.toF64()
		return float32(f)
	}
	return 0
}

func (v Value) ToF64() float64 {
	if n, ok := v.tryNum(); ok {
		f, _ := n.toF64()
		return f
	}
	return 0
}

func (v Value) tryNum() (Value, bool) {
	v = numLikeToI32(v)
	if v.IsNum() {
		return v, true
	}
	if v.kind == KStr {
		if f, err := strconv.ParseFloat(v.str, 64); err == nil {
			return F64(f), true
		}
	}
	return Value{}, false
}

// TryI32/TryI64/TryIBig/TryF32/TryF64 implement `try_V`: fallible coercion
// returning an Opt, per spec §4.1.1.

func (v Value) TryI32() Value { return OptOf(I32(v.ToI32()), v.parsesAsNum()) }
func (v Value) TryI64() Value { return OptOf(I64(v.ToI64()), v.parsesAsNum()) }
func (v Value) TryIBig() Value {
	n, ok := v.tryNum()
	if !ok {
		return None()
	}
	i, _ := n.toIBig()
	return Some(IBig(i))
}
func (v Value) TryF32() Value { return OptOf(F32(v.ToF32()), v.parsesAsNum()) }
func (v Value) TryF64() Value { return OptOf(F64(v.ToF64()), v.parsesAsNum()) }

func (v Value) parsesAsNum() bool {
	_, ok := v.tryNum()
	return ok
}

// ToVec converts v to its "many" representation, per spec's coercion rules
// used by builtins that accept any carrier but operate on Vec internally
// (e.g. `sort`, `rev`): scalars and Opt/Res wrap as a 0-or-1 element Vec,
// Map/Set expose their elements, Seq materializes, Str explodes to Chars.
func (v Value) ToVec() (Value, error) {
	switch v.kind {
	case KVec:
		return v, nil
	case KStr:
		rs := []rune(v.str)
		out := make([]Value, len(rs))
		for i, r := range rs {
			out[i] = Char(r)
		}
		return VecFrom(out), nil
	case KMap:
		out := make([]Value, len(v.mp.keys))
		for i, k := range v.mp.keys {
			val, _ := v.mp.Get(k)
			out[i] = VecOf(k, val)
		}
		return VecFrom(out), nil
	case KSet:
		return VecFrom(append([]Value(nil), v.set.keys...)), nil
	case KExpr:
		return VecFrom(exprValues(v.expr)), nil
	case KSeq:
		return Materialize(v.seq.Clone())
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			return VecOf(), nil
		}
		return VecOf(t), nil
	case KRes:
		t, ok := v.resVal_()
		if !ok {
			return VecOf(), nil
		}
		return VecOf(t), nil
	default:
		return VecOf(v), nil
	}
}

// ToExpr converts v to a quoted Expr: Vec/Seq elements become Raw nodes in
// order, an existing Expr passes through, and a scalar wraps as a
// single-Raw-node Expr.
func (v Value) ToExpr() (Value, error) {
	if v.kind == KExpr {
		return v, nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	nodes := make([]SynNode, len(vec.vec))
	for i, t := range vec.vec {
		nodes[i] = Raw(t)
	}
	return ExprFrom(nodes), nil
}

// ToSeq converts v to a lazy Seq, per the Vecz "many" family: Vec/Map/Set
// wrap their (materialized) elements, a Seq passes through, and a scalar
// wraps as a 1-element Seq.
func (v Value) ToSeq() (Value, error) {
	if v.kind == KSeq {
		return v, nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	return SeqFrom(SeqOfSlice(vec.vec)), nil
}

// ToPair splits a 2-element Vec into its components, for builtins that take
// a `[k v]` pair (e.g. Map construction, `zip`'s inverse).
func ToPair(v Value) (Value, Value, error) {
	if v.kind != KVec || len(v.vec) != 2 {
		return Value{}, Value{}, errors.Errorf("expected a 2-Vec, got `%s`", v.GoString())
	}
	return v.vec[0], v.vec[1], nil
}
