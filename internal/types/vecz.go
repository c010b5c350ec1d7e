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

import "github.com/pkg/errors"

// Vecz1 lifts a scalar function f over a single vectorisable carrier (spec
// §4.4): Opt/Res apply f "once" to their inner value (passing through
// None/Err unchanged); Vec/Map/Set/Seq apply f to every element ("many").
// Scalars are passed to f directly. This is the single lifting rule every
// arithmetic/comparison/conversion builtin routes non-scalar operands
// through, rather than each builtin special-casing its own carriers.
func Vecz1(v Value, f func(Value) (Value, error)) (Value, error) {
	switch v.kind {
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			return v, nil
		}
		r, err := f(t)
		if err != nil {
			return Value{}, err
		}
		return Some(r), nil
	case KRes:
		t, ok := v.resVal_()
		if !ok {
			return v, nil
		}
		r, err := f(t)
		if err != nil {
			return Value{}, err
		}
		return Ok(r), nil
	case KVec:
		out := make([]Value, len(v.vec))
		for i, t := range v.vec {
			r, err := f(t)
			if err != nil {
				return Value{}, err
			}
			out[i] = r
		}
		return VecFrom(out), nil
	case KMap:
		out := NewOMap()
		for _, k := range v.mp.keys {
			val, _ := v.mp.Get(k)
			r, err := f(val)
			if err != nil {
				return Value{}, err
			}
			out.Set(k, r)
		}
		return MapFrom(out), nil
	case KSet:
		out := NewOSet()
		for _, k := range v.set.keys {
			r, err := f(k)
			if err != nil {
				return Value{}, err
			}
			out.Add(r)
		}
		return SetFrom(out), nil
	case KSeq:
		return SeqFrom(SeqMap(v.seq, f)), nil
	default:
		return f(v)
	}
}

// Map is Vecz1 as a method, used where a scalar transform is applied to
// a single value that may or may not be a carrier (e.g. unary `_`).
func (v Value) Map(f func(Value) (Value, error)) (Value, error) { return Vecz1(v, f) }

// Vecz2 lifts a binary scalar function f over a pair of values, at least
// one of which is vectorisable (spec §4.4). Rules, matching
// original_source/src/types/vecz.rs:
//   - once×once (Opt/Res paired with Opt/Res): both must be "present"
//     (Some/Ok) for f to run; otherwise the result takes on the "absent"
//     shape of whichever operand is absent.
//   - once×scalar / scalar×once: unwrap the once side, apply f to the pair,
//     rewrap in the same once shape.
//   - many×many of equal length: zip and apply f pairwise, producing a Vec
//     (Map/Set are treated as their ordered value-slice for this purpose
//     when paired with another many value, since there is no general
//     positional correspondence across different Map/Set key sets).
//   - many×scalar / scalar×many: broadcast the scalar against every element.
func Vecz2(a, b Value, f func(Value, Value) (Value, error)) (Value, error) {
	switch {
	case a.IsOnce() && b.IsOnce():
		return vecz2OnceOnce(a, b, f)
	case a.IsOnce():
		return vecz2OnceScalar(a, b, f, false)
	case b.IsOnce():
		return vecz2OnceScalar(b, a, f, true)
	case a.IsMany() && b.IsMany():
		return vecz2ManyMany(a, b, f)
	case a.IsMany():
		return vecz2ManyScalar(a, b, f, false)
	case b.IsMany():
		return vecz2ManyScalar(b, a, f, true)
	default:
		return f(a, b)
	}
}

func vecz2OnceOnce(a, b Value, f func(Value, Value) (Value, error)) (Value, error) {
	if a.kind == KOpt || b.kind == KOpt {
		ta, oka := a.optVal()
		if a.kind == KRes {
			ta, oka = a.resVal_()
		}
		tb, okb := b.optVal()
		if b.kind == KRes {
			tb, okb = b.resVal_()
		}
		if !oka {
			return a, nil
		}
		if !okb {
			return b, nil
		}
		r, err := f(ta, tb)
		if err != nil {
			return Value{}, err
		}
		return Some(r), nil
	}
	ta, oka := a.resVal_()
	tb, okb := b.resVal_()
	if !oka {
		return a, nil
	}
	if !okb {
		return b, nil
	}
	r, err := f(ta, tb)
	if err != nil {
		return Value{}, err
	}
	return Ok(r), nil
}

func vecz2OnceScalar(once, scalar Value, f func(Value, Value) (Value, error), flip bool) (Value, error) {
	apply := func(t Value) (Value, error) {
		if flip {
			return f(scalar, t)
		}
		return f(t, scalar)
	}
	return Vecz1(once, apply)
}

func vecz2ManyMany(a, b Value, f func(Value, Value) (Value, error)) (Value, error) {
	as, aok := manyElems(a)
	bs, bok := manyElems(b)
	if !aok || !bok {
		return Value{}, errors.Errorf("cannot combine `%s` and `%s` elementwise", a.GoString(), b.GoString())
	}
	if len(as) != len(bs) {
		return Value{}, errors.Errorf("length mismatch: %d vs %d", len(as), len(bs))
	}
	out := make([]Value, len(as))
	for i := range as {
		r, err := f(as[i], bs[i])
		if err != nil {
			return Value{}, err
		}
		out[i] = r
	}
	return VecFrom(out), nil
}

func vecz2ManyScalar(many, scalar Value, f func(Value, Value) (Value, error), flip bool) (Value, error) {
	apply := func(t Value) (Value, error) {
		if flip {
			return f(scalar, t)
		}
		return f(t, scalar)
	}
	return Vecz1(many, apply)
}

func manyElems(v Value) ([]Value, bool) {
	switch v.kind {
	case KVec:
		return v.vec, true
	case KMap:
		out := make([]Value, len(v.mp.keys))
		for i, k := range v.mp.keys {
			out[i], _ = v.mp.Get(k)
		}
		return out, true
	case KSet:
		return v.set.keys, true
	case KSeq:
		val, err := Materialize(v.seq.Clone())
		if err != nil {
			return nil, false
		}
		return val.vec, true
	default:
		return nil, false
	}
}

// --- collection editing (spec §4.6 indexing/editing family) ---

// Len reports the element count of a Vec/Map/Set/Str/Expr, or 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KVec:
		return len(v.vec)
	case KStr:
		return len([]rune(v.str))
	case KMap:
		return v.mp.Len()
	case KSet:
		return v.set.Len()
	case KExpr:
		return len(v.expr)
	default:
		return 0
	}
}

// Get implements `:`, indexing into Vec/Str by position (negative indices
// count from the end) or into Map by key.
func (v Value) Get(key Value) (Value, bool) {
	switch v.kind {
	case KVec:
		i, ok := normIndex(key, len(v.vec))
		if !ok {
			return Value{}, false
		}
		return v.vec[i], true
	case KStr:
		rs := []rune(v.str)
		i, ok := normIndex(key, len(rs))
		if !ok {
			return Value{}, false
		}
		return Char(rs[i]), true
	case KMap:
		return v.mp.Get(key)
	case KSet:
		return key, v.set.Has(key)
	default:
		return Value{}, false
	}
}

// Has reports membership: key existence for Map, element membership for
// Set/Vec, substring for Str.
func (v Value) Has(key Value) bool {
	switch v.kind {
	case KMap:
		return v.mp.Has(key)
	case KSet:
		return v.set.Has(key)
	case KVec:
		for _, t := range v.vec {
			if Equal(t, key) {
				return true
			}
		}
		return false
	case KStr:
		if key.kind == KStr {
			return containsStr(v.str, key.str)
		}
		return false
	default:
		return false
	}
}

func containsStr(haystack, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func normIndex(key Value, n int) (int, bool) {
	i64, ok := key.toI64()
	if !ok {
		return 0, false
	}
	i := int(i64)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Push appends v to the end of the receiver collection (`:+`), returning a
// new collection (collections are value types here; callers rebind).
func (v Value) Push(item Value) (Value, error) {
	switch v.kind {
	case KVec:
		out := append(append([]Value(nil), v.vec...), item)
		return VecFrom(out), nil
	case KSet:
		out := v.set.Clone()
		out.Add(item)
		return SetFrom(out), nil
	case KMap:
		if item.kind != KVec || len(item.vec) != 2 {
			return Value{}, errors.New("pushing onto a Map requires a 2-Vec [key value]")
		}
		out := v.mp.Clone()
		out.Set(item.vec[0], item.vec[1])
		return MapFrom(out), nil
	default:
		return Value{}, errors.Errorf("cannot push onto `%s`", v.GoString())
	}
}

// PushFront prepends v to the start of the receiver (`+:`).
func (v Value) PushFront(item Value) (Value, error) {
	switch v.kind {
	case KVec:
		out := append([]Value{item}, v.vec...)
		return VecFrom(out), nil
	default:
		return v.Push(item)
	}
}

// Insert inserts item at position idx (`ins`), for Vec only.
func (v Value) Insert(idx int, item Value) (Value, error) {
	if v.kind != KVec {
		return Value{}, errors.Errorf("cannot insert into `%s`", v.GoString())
	}
	if idx < 0 || idx > len(v.vec) {
		return Value{}, errors.Errorf("index %d out of range", idx)
	}
	out := make([]Value, 0, len(v.vec)+1)
	out = append(out, v.vec[:idx]...)
	out = append(out, item)
	out = append(out, v.vec[idx:]...)
	return VecFrom(out), nil
}

// Remove deletes the element at idx from a Vec, or the key/member from a
// Map/Set (`rmv`; `:-`/`-:` call it with index -1/0).
func (v Value) Remove(key Value) (Value, error) {
	switch v.kind {
	case KVec:
		i, ok := normIndex(key, len(v.vec))
		if !ok {
			return Value{}, errors.New("index out of range")
		}
		out := append(append([]Value(nil), v.vec[:i]...), v.vec[i+1:]...)
		return VecFrom(out), nil
	case KMap:
		out := v.mp.Clone()
		out.Delete(key)
		return MapFrom(out), nil
	case KSet:
		out := v.set.Clone()
		out.Delete(key)
		return SetFrom(out), nil
	default:
		return Value{}, errors.Errorf("cannot remove from `%s`", v.GoString())
	}
}

// Append concatenates two collections end to end (`++`), per
// original_source's vecz.rs general-concatenation resolution: Str+Str
// concatenates text, Char+Char promotes to Str, any two scalars wrap into
// a 2-Vec, and Vec/Set/Map/Seq/Expr append their elements/entries.
func Append(a, b Value) (Value, error) {
	switch {
	case a.kind == KStr || b.kind == KStr:
		return Str(a.GoString() + b.GoString()), nil
	case a.kind == KChar && b.kind == KChar:
		return Str(string(a.ch) + string(b.ch)), nil
	case a.kind == KVec && b.kind == KVec:
		return VecFrom(append(append([]Value(nil), a.vec...), b.vec...)), nil
	case a.kind == KSet && b.kind == KSet:
		out := a.set.Clone()
		for _, k := range b.set.keys {
			out.Add(k)
		}
		return SetFrom(out), nil
	case a.kind == KMap && b.kind == KMap:
		out := a.mp.Clone()
		for _, k := range b.mp.keys {
			bv, _ := b.mp.Get(k)
			out.Set(k, bv)
		}
		return MapFrom(out), nil
	case a.kind == KExpr && b.kind == KExpr:
		return ExprFrom(append(append([]SynNode(nil), a.expr...), b.expr...)), nil
	case a.kind == KSeq && b.kind == KSeq:
		return SeqFrom(SeqFlatMap(SeqOfSlice([]Value{a, b}), func(t Value) (Seq, error) {
			return t.seq.Clone(), nil
		})), nil
	case a.kind == KVec:
		return VecFrom(append(append([]Value(nil), a.vec...), b)), nil
	case b.kind == KVec:
		return VecFrom(append([]Value{a}, b.vec...)), nil
	default:
		return VecOf(a, b), nil
	}
}
