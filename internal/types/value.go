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

// Package types implements the runtime value algebra of the euphrates
// evaluator: the tagged-union Value type, the numeric tower, total
// ordering/equality/hashing, the iteration engine and its vectorisation
// ("vecz") lifting rule, and the lazy cloneable Seq carrier.
package types

import (
	"math/big"
)

// Kind identifies which variant of the value tagged union a Value holds.
type Kind uint8

// The closed set of runtime value variants.
const (
	KBool Kind = iota
	KI32
	KI64
	KIBig
	KF32
	KF64
	KChar
	KStr
	KWord
	KOpt
	KRes
	KVec
	KMap
	KSet
	KExpr
	KSeq
)

func (k Kind) String() string {
	switch k {
	case KBool:
		return "Bool"
	case KI32:
		return "I32"
	case KI64:
		return "I64"
	case KIBig:
		return "IBig"
	case KF32:
		return "F32"
	case KF64:
		return "F64"
	case KChar:
		return "Char"
	case KStr:
		return "Str"
	case KWord:
		return "Word"
	case KOpt:
		return "Opt"
	case KRes:
		return "Res"
	case KVec:
		return "Vec"
	case KMap:
		return "Map"
	case KSet:
		return "Set"
	case KExpr:
		return "Expr"
	case KSeq:
		return "Seq"
	default:
		return "?"
	}
}

// Value is the runtime value tagged union described in spec §3.1. Go has no
// sum types, so every variant's payload lives in its own field and `kind`
// says which one is live; this mirrors how the teacher keeps a single
// narrow Cell type but generalizes it to many variants.
type Value struct {
	kind Kind

	b    bool
	i32  int32
	i64  int64
	ibig *big.Int
	f32  float32
	f64  float64
	ch   rune
	str  string

	// Opt: opt == nil means None, else Some(*opt).
	opt *Value
	// Res: resOk selects the Ok/Err arm; resVal is the carried payload.
	resOk  bool
	resVal *Value

	vec  []Value
	mp   *OMap
	set  *OSet
	expr []SynNode
	seq  Seq
}

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// --- constructors ---

func Bool(b bool) Value { return Value{kind: KBool, b: b} }
func I32(n int32) Value { return Value{kind: KI32, i32: n} }
func I64(n int64) Value { return Value{kind: KI64, i64: n} }
func IBig(n *big.Int) Value {
	if n == nil {
		n = new(big.Int)
	}
	return Value{kind: KIBig, ibig: n}
}
func IBigI64(n int64) Value { return IBig(big.NewInt(n)) }
func F32(f float32) Value   { return Value{kind: KF32, f32: f} }
func F64(f float64) Value   { return Value{kind: KF64, f64: f} }
func Char(r rune) Value     { return Value{kind: KChar, ch: r} }
func Str(s string) Value    { return Value{kind: KStr, str: s} }
func Word(s string) Value   { return Value{kind: KWord, str: s} }

// None is the empty optional value.
func None() Value { return Value{kind: KOpt} }

// Some wraps v in an optional.
func Some(v Value) Value { return Value{kind: KOpt, opt: &v} }

// OptOf converts a (Value, bool) pair, as produced by many Go APIs, into an
// Opt value.
func OptOf(v Value, ok bool) Value {
	if !ok {
		return None()
	}
	return Some(v)
}

// Ok wraps v as the Ok arm of a Res.
func Ok(v Value) Value { return Value{kind: KRes, resOk: true, resVal: &v} }

// Err wraps v as the Err arm of a Res.
func Err(v Value) Value { return Value{kind: KRes, resOk: false, resVal: &v} }

// ResOf converts a Go (Value, error) pair into a Res, stringifying the error
// as the Err payload.
func ResOf(v Value, err error) Value {
	if err != nil {
		return Err(Str(err.Error()))
	}
	return Ok(v)
}

// VecOf builds a Vec from the given elements (copied, so the caller's slice
// may be reused).
func VecOf(vs ...Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KVec, vec: cp}
}

// VecFrom wraps an already-owned slice as a Vec without copying.
func VecFrom(vs []Value) Value { return Value{kind: KVec, vec: vs} }

// ExprFrom wraps a slice of syntactic nodes as a quoted Expr value.
func ExprFrom(nodes []SynNode) Value { return Value{kind: KExpr, expr: nodes} }

// MapFrom wraps an ordered map as a Map value.
func MapFrom(m *OMap) Value { return Value{kind: KMap, mp: m} }

// SetFrom wraps an ordered set as a Set value.
func SetFrom(s *OSet) Value { return Value{kind: KSet, set: s} }

// SeqFrom wraps a lazy cloneable sequence as a Seq value.
func SeqFrom(s Seq) Value { return Value{kind: KSeq, seq: s} }

// --- variant predicates ---

func (v Value) IsBool() bool { return v.kind == KBool }
func (v Value) IsI32() bool  { return v.kind == KI32 }
func (v Value) IsI64() bool  { return v.kind == KI64 }
func (v Value) IsIBig() bool { return v.kind == KIBig }
func (v Value) IsF32() bool  { return v.kind == KF32 }
func (v Value) IsF64() bool  { return v.kind == KF64 }
func (v Value) IsChar() bool { return v.kind == KChar }
func (v Value) IsStr() bool  { return v.kind == KStr }
func (v Value) IsWord() bool { return v.kind == KWord }
func (v Value) IsOpt() bool  { return v.kind == KOpt }
func (v Value) IsRes() bool  { return v.kind == KRes }
func (v Value) IsVec() bool  { return v.kind == KVec }
func (v Value) IsMap() bool  { return v.kind == KMap }
func (v Value) IsSet() bool  { return v.kind == KSet }
func (v Value) IsExpr() bool { return v.kind == KExpr }
func (v Value) IsSeq() bool  { return v.kind == KSeq }

// IsNum reports whether v is one of the fixed-width or arbitrary precision
// numeric variants (spec §4.1.1/§4.2).
func (v Value) IsNum() bool {
	switch v.kind {
	case KI32, KI64, KIBig, KF32, KF64:
		return true
	default:
		return false
	}
}

// IsNumLike reports whether v can participate in tower promotion directly
// (numeric, Bool, or Char; spec §4.2 "Bool and Char are promoted to I32").
func (v Value) IsNumLike() bool { return v.IsNum() || v.kind == KBool || v.kind == KChar }

// IsNumParse reports whether v is numeric-like or a Str that might parse as
// a number (spec §4.1.1 `to_V`/`try_V`, §4.2 `parse_num_tower`).
func (v Value) IsNumParse() bool { return v.IsNumLike() || v.kind == KStr }

// IsOnce reports whether v has the "once" dimension (spec §4.3/§4.4: Opt/Res
// apply a function at most once).
func (v Value) IsOnce() bool { return v.kind == KOpt || v.kind == KRes }

// IsMany reports whether v has the "many" dimension (Vec/Map/Set/Seq).
func (v Value) IsMany() bool {
	switch v.kind {
	case KVec, KMap, KSet, KSeq:
		return true
	default:
		return false
	}
}

// IsVecz reports whether v is a vectorisable carrier: "once" or "many"
// (spec §4.1.1 `is_vecz`, §4.4).
func (v Value) IsVecz() bool { return v.IsOnce() || v.IsMany() }

// --- truthiness (spec §4.1.2) ---

// Bool reports v's truthiness under the rules of §4.1.2.
func (v Value) Bool() bool {
	switch v.kind {
	case KBool:
		return v.b
	case KI32:
		return v.i32 != 0
	case KI64:
		return v.i64 != 0
	case KIBig:
		return v.ibig.Sign() != 0
	case KF32:
		return v.f32 != 0
	case KF64:
		return v.f64 != 0
	case KChar:
		return v.ch != 0
	case KStr:
		return v.str != ""
	case KWord:
		return true
	case KOpt:
		return v.opt != nil
	case KRes:
		return v.resOk
	case KVec:
		return len(v.vec) > 0
	case KMap:
		return v.mp.Len() > 0
	case KSet:
		return v.set.Len() > 0
	case KExpr:
		return len(v.expr) > 0
	case KSeq:
		_, ok, err := v.seq.Clone().Next()
		return ok && err == nil
	default:
		return false
	}
}

// --- accessors used by sibling files in this package ---

func (v Value) optVal() (Value, bool) {
	if v.opt == nil {
		return Value{}, false
	}
	return *v.opt, true
}

func (v Value) resVal_() (Value, bool) {
	if v.resVal == nil {
		return Value{}, v.resOk
	}
	return *v.resVal, v.resOk
}

// TryUnwrapOpt returns (inner, true) for Some(inner), (_, false) for None.
func (v Value) TryUnwrapOpt() (Value, bool) { return v.optVal() }

// TryUnwrapOk returns (inner, true) for Ok(inner), (_, false) for Err(_).
func (v Value) TryUnwrapOk() (Value, bool) {
	inner, ok := v.resVal_()
	return inner, ok
}

// WordName returns the bare name carried by a Word value (no call site
// outside the evaluator's dispatch needs the raw string otherwise).
func (v Value) WordName() string { return v.str }

// ExprNodes returns the syntactic nodes quoted by an Expr value.
func (v Value) ExprNodes() []SynNode { return v.expr }

// VecElems returns the elements of a Vec value.
func (v Value) VecElems() []Value { return v.vec }

// ExprWordNames returns the names of an Expr's top-level Var/Raw(Word)
// nodes, in order, for `->`'s argument-binding list (spec §4.5.3).
func (v Value) ExprWordNames() []string {
	names := make([]string, 0, len(v.expr))
	for _, n := range v.expr {
		switch n.Kind() {
		case SynVar:
			names = append(names, n.Name())
		case SynRaw:
			if n.RawValue().kind == KWord {
				names = append(names, n.RawValue().str)
			}
		}
	}
	return names
}
