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
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// towerRank orders the numeric variants from lowest to highest, per spec
// §4.2: I32 < I64 < IBig < F64 (F32 ranks alongside F64 here; an F32 that
// must combine with an F64 promotes to F64, matching "F32 ranks with F64
// when provided; otherwise F32 is promoted to F64").
func towerRank(k Kind) int {
	switch k {
	case KI32:
		return 0
	case KI64:
		return 1
	case KIBig:
		return 2
	case KF32:
		return 3
	case KF64:
		return 3
	default:
		return -1
	}
}

// numTower promotes a and b to a common numeric type, per spec §4.2. Bool
// and Char are promoted to I32 first. Returns ok=false if either side is
// not numeric-like.
func numTower(a, b Value) (Value, Value, bool) {
	a = numLikeToI32(a)
	b = numLikeToI32(b)
	if !a.IsNum() || !b.IsNum() {
		return a, b, false
	}
	ra, rb := towerRank(a.kind), towerRank(b.kind)
	target := a.kind
	if rb > ra {
		target = b.kind
	} else if rb == ra && (a.kind == KF64 || b.kind == KF64) {
		target = KF64
	}
	return promoteTo(a, target), promoteTo(b, target), true
}

func numLikeToI32(v Value) Value {
	switch v.kind {
	case KBool:
		if v.b {
			return I32(1)
		}
		return I32(0)
	case KChar:
		return I32(int32(v.ch))
	default:
		return v
	}
}

func promoteTo(v Value, target Kind) Value {
	if v.kind == target {
		return v
	}
	switch target {
	case KI64:
		n, _ := v.toI64()
		return I64(n)
	case KIBig:
		n, _ := v.toIBig()
		return IBig(n)
	case KF64:
		f, _ := v.toF64()
		return F64(f)
	case KF32:
		f, _ := v.toF64()
		return F32(float32(f))
	default:
		n, _ := v.toI32()
		return I32(n)
	}
}

// parseNumTower is numTower generalized to accept Str operands that parse
// as numbers (spec §4.2 "For string operands, parse_num_tower..."). Returns
// ok=false if the pair can't be reconciled to a common numeric type.
func parseNumTower(a, b Value) (Value, Value, bool) {
	if a.kind == KStr && b.kind == KStr {
		fa, erra := strconv.ParseFloat(a.str, 64)
		fb, errb := strconv.ParseFloat(b.str, 64)
		if erra != nil || errb != nil {
			return a, b, false
		}
		return F64(fa), F64(fb), true
	}
	if a.kind == KStr {
		pa, ok := parseStrLike(a.str, b)
		if !ok {
			return a, b, false
		}
		return numTower(pa, b)
	}
	if b.kind == KStr {
		pb, ok := parseStrLike(b.str, a)
		if !ok {
			return a, b, false
		}
		return numTower(a, pb)
	}
	return numTower(a, b)
}

// parseStrLike parses s as the numeric type of "like" (spec: "otherwise as
// the other operand's type"), after Bool/Char have been normalized to I32
// and considering F64 contagion.
func parseStrLike(s string, like Value) (Value, bool) {
	like = numLikeToI32(like)
	if like.kind == KF32 || like.kind == KF64 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, false
		}
		return F64(f), true
	}
	switch like.kind {
	case KI32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, false
		}
		return I32(int32(n)), true
	case KI64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return I64(n), true
	case KIBig:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Value{}, false
		}
		return IBig(n), true
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, false
		}
		return F64(f), true
	}
}

// --- scalar conversions used by the tower (not the public to_V family in
// convert.go, which also handles Str/Char/Bool inputs for user-facing
// coercion builtins) ---

func (v Value) toI32() (int32, bool) {
	switch v.kind {
	case KI32:
		return v.i32, true
	case KI64:
		return int32(v.i64), true
	case KIBig:
		if v.ibig.IsInt64() {
			return int32(v.ibig.Int64()), true
		}
		return 0, false
	case KF32:
		return int32(v.f32), true
	case KF64:
		return int32(v.f64), true
	default:
		return 0, false
	}
}

func (v Value) toI64() (int64, bool) {
	switch v.kind {
	case KI32:
		return int64(v.i32), true
	case KI64:
		return v.i64, true
	case KIBig:
		if v.ibig.IsInt64() {
			return v.ibig.Int64(), true
		}
		return 0, false
	case KF32:
		return int64(v.f32), true
	case KF64:
		return int64(v.f64), true
	default:
		return 0, false
	}
}

func (v Value) toIBig() (*big.Int, bool) {
	switch v.kind {
	case KI32:
		return big.NewInt(int64(v.i32)), true
	case KI64:
		return big.NewInt(v.i64), true
	case KIBig:
		return v.ibig, true
	case KF32:
		return bigFromFloat(float64(v.f32)), true
	case KF64:
		return bigFromFloat(v.f64), true
	default:
		return nil, false
	}
}

func bigFromFloat(f float64) *big.Int {
	bf := new(big.Float).SetFloat64(f)
	n, _ := bf.Int(nil)
	return n
}

func (v Value) toF64() (float64, bool) {
	switch v.kind {
	case KI32:
		return float64(v.i32), true
	case KI64:
		return float64(v.i64), true
	case KIBig:
		f := new(big.Float).SetInt(v.ibig)
		r, _ := f.Float64()
		return r, true
	case KF32:
		return float64(v.f32), true
	case KF64:
		return v.f64, true
	default:
		return 0, false
	}
}

// toF64Exact is toF64 widened to cover Bool/Char as well, used only for
// hashing (numeric equality is defined across those too via num_tower).
func (v Value) toF64Exact() (float64, bool) {
	return numLikeToI32(v).toF64()
}

func mathFloat64bits(f float64) uint64 { return math.Float64bits(f) }

// --- arithmetic (spec §4.2) ---

// Neg implements unary `_`.
func (v Value) Neg() Value {
	switch v.kind {
	case KI32:
		return I32(-v.i32)
	case KI64:
		return I64(-v.i64)
	case KIBig:
		return IBig(new(big.Int).Neg(v.ibig))
	case KF32:
		return F32(-v.f32)
	case KF64:
		return F64(-v.f64)
	case KBool:
		n := int32(0)
		if v.b {
			n = 1
		}
		return I32(-n)
	case KChar:
		return I32(-int32(v.ch))
	case KStr:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return None()
		}
		return Some(F64(-f))
	default:
		if v.IsVecz() {
			r, _ := v.Map(func(t Value) (Value, error) { return t.Neg(), nil })
			return r
		}
		return None()
	}
}

type ArithOp byte

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// Arith implements the cross-type arithmetic operators `+ - * / % ^`
// (spec §4.2), including Vec-lifting via vecz2.
func Arith(op ArithOp, a, b Value) (Value, error) {
	if a.kind == b.kind && a.IsNum() {
		return arithSamePair(op, a, b)
	}
	if a.IsNumLike() && b.IsNumLike() {
		pa, pb, ok := numTower(a, b)
		if !ok {
			return Value{}, errors.Errorf("cannot %s `%s` and `%s`", op, a.GoString(), b.GoString())
		}
		return arithSamePair(op, pa, pb)
	}
	if a.IsNumParse() && b.IsNumParse() {
		pa, pb, ok := parseNumTower(a, b)
		if !ok {
			return Value{}, errors.Errorf("failed to parse before %s", op)
		}
		return arithSamePair(op, pa, pb)
	}
	if a.IsVecz() || b.IsVecz() {
		return Vecz2(a, b, func(x, y Value) (Value, error) { return Arith(op, x, y) })
	}
	return Value{}, errors.Errorf("cannot %s `%s` and `%s`", op, a.GoString(), b.GoString())
}

func arithSamePair(op ArithOp, a, b Value) (Value, error) {
	switch a.kind {
	case KI32:
		return arithI32(op, a.i32, b.i32)
	case KI64:
		return arithI64(op, a.i64, b.i64)
	case KIBig:
		return arithIBig(op, a.ibig, b.ibig)
	case KF32:
		return arithF32(op, a.f32, b.f32), nil
	case KF64:
		return arithF64(op, a.f64, b.f64), nil
	default:
		return Value{}, errors.Errorf("cannot %s non-numeric values", op)
	}
}

func arithI32(op ArithOp, a, b int32) (Value, error) {
	switch op {
	case OpAdd:
		r := int64(a) + int64(b)
		if r != int64(int32(r)) {
			return Value{}, errors.Errorf("+ on `%d` and `%d` overflowed i32", a, b)
		}
		return I32(int32(r)), nil
	case OpSub:
		r := int64(a) - int64(b)
		if r != int64(int32(r)) {
			return Value{}, errors.Errorf("- on `%d` and `%d` overflowed i32", a, b)
		}
		return I32(int32(r)), nil
	case OpMul:
		r := int64(a) * int64(b)
		if r != int64(int32(r)) {
			return Value{}, errors.Errorf("* on `%d` and `%d` overflowed i32", a, b)
		}
		return I32(int32(r)), nil
	case OpDiv:
		if b == 0 {
			return Value{}, errors.Errorf("/ on `%d` and `0` is undefined", a)
		}
		return I32(a / b), nil
	case OpRem:
		if b == 0 {
			return Value{}, errors.Errorf("%% on `%d` and `0` is undefined", a)
		}
		return I32(a % b), nil
	case OpPow:
		return powInt(int64(a), int64(b), KI32)
	default:
		return Value{}, errors.New("unknown operator")
	}
}

func arithI64(op ArithOp, a, b int64) (Value, error) {
	switch op {
	case OpAdd:
		bigR := new(big.Int).Add(big.NewInt(a), big.NewInt(b))
		if !bigR.IsInt64() {
			return Value{}, errors.Errorf("+ on `%d` and `%d` overflowed i64", a, b)
		}
		return I64(bigR.Int64()), nil
	case OpSub:
		bigR := new(big.Int).Sub(big.NewInt(a), big.NewInt(b))
		if !bigR.IsInt64() {
			return Value{}, errors.Errorf("- on `%d` and `%d` overflowed i64", a, b)
		}
		return I64(bigR.Int64()), nil
	case OpMul:
		bigR := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
		if !bigR.IsInt64() {
			return Value{}, errors.Errorf("* on `%d` and `%d` overflowed i64", a, b)
		}
		return I64(bigR.Int64()), nil
	case OpDiv:
		if b == 0 {
			return Value{}, errors.Errorf("/ on `%d` and `0` is undefined", a)
		}
		return I64(a / b), nil
	case OpRem:
		if b == 0 {
			return Value{}, errors.Errorf("%% on `%d` and `0` is undefined", a)
		}
		return I64(a % b), nil
	case OpPow:
		return powInt(a, b, KI64)
	default:
		return Value{}, errors.New("unknown operator")
	}
}

func arithIBig(op ArithOp, a, b *big.Int) (Value, error) {
	switch op {
	case OpAdd:
		return IBig(new(big.Int).Add(a, b)), nil
	case OpSub:
		return IBig(new(big.Int).Sub(a, b)), nil
	case OpMul:
		return IBig(new(big.Int).Mul(a, b)), nil
	case OpDiv:
		if b.Sign() == 0 {
			return Value{}, errors.Errorf("/ on `%s` and `0` is undefined", a)
		}
		return IBig(new(big.Int).Quo(a, b)), nil
	case OpRem:
		if b.Sign() == 0 {
			return Value{}, errors.Errorf("%% on `%s` and `0` is undefined", a)
		}
		return IBig(new(big.Int).Rem(a, b)), nil
	case OpPow:
		if b.Sign() < 0 {
			fa := new(big.Float).SetInt(a)
			fb := new(big.Float).SetInt(b)
			ffa, _ := fa.Float64()
			ffb, _ := fb.Float64()
			return F64(math.Pow(ffa, ffb)), nil
		}
		return IBig(new(big.Int).Exp(a, b, nil)), nil
	default:
		return Value{}, errors.New("unknown operator")
	}
}

func arithF32(op ArithOp, a, b float32) Value {
	switch op {
	case OpAdd:
		return F32(a + b)
	case OpSub:
		return F32(a - b)
	case OpMul:
		return F32(a * b)
	case OpDiv:
		return F32(a / b)
	case OpRem:
		return F32(float32(math.Mod(float64(a), float64(b))))
	case OpPow:
		return F32(float32(math.Pow(float64(a), float64(b))))
	default:
		return F32(float32(math.NaN()))
	}
}

func arithF64(op ArithOp, a, b float64) Value {
	switch op {
	case OpAdd:
		return F64(a + b)
	case OpSub:
		return F64(a - b)
	case OpMul:
		return F64(a * b)
	case OpDiv:
		return F64(a / b)
	case OpRem:
		return F64(math.Mod(a, b))
	case OpPow:
		return F64(math.Pow(a, b))
	default:
		return F64(math.NaN())
	}
}

// powInt implements integer exponentiation with a non-negative exponent
// using checked multiplication; a negative exponent promotes to F64 (spec
// §4.2 "Exponent").
func powInt(base, exp int64, target Kind) (Value, error) {
	if exp < 0 {
		return F64(math.Pow(float64(base), float64(exp))), nil
	}
	acc := big.NewInt(1)
	b := big.NewInt(base)
	e := big.NewInt(exp)
	acc.Exp(b, e, nil)
	switch target {
	case KI32:
		if !acc.IsInt64() || acc.Int64() != int64(int32(acc.Int64())) {
			return Value{}, errors.Errorf("^ on `%d` and `%d` overflowed i32", base, exp)
		}
		return I32(int32(acc.Int64())), nil
	case KI64:
		if !acc.IsInt64() {
			return Value{}, errors.Errorf("^ on `%d` and `%d` overflowed i64", base, exp)
		}
		return I64(acc.Int64()), nil
	default:
		return IBig(acc), nil
	}
}
