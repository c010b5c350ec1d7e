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
	"sort"

	"github.com/pkg/errors"
)

// This file implements the carrier-polymorphic Iteration Engine (spec
// §4.3): every operation here takes a plain Go closure, not a quoted
// Expr. The "_env" bridge in internal/builtins/iterops.go wraps these
// with closures that spawn evaluator child frames, per
// original_source/src/types/iter.rs's map/map_env split.
//
// Each function dispatches on the "once" (Opt/Res) vs "many" (Vec/Map/Set/
// Seq) dimension of its carrier; Map/Set reduce to their Vec-of-[k,v]-pairs
// (resp. Vec-of-elements) view and rebuild the same kind of collection
// on the way out where that's meaningful, otherwise degrading to Vec.

// FlatMap applies f to each element, expecting a Vec-shaped result per
// call, and concatenates the results. Once-level carriers apply f at most
// once and adopt the single resulting carrier's shape.
func FlatMap(v Value, f func(Value) (Value, error)) (Value, error) {
	switch v.kind {
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			return v, nil
		}
		return f(t)
	case KRes:
		t, ok := v.resVal_()
		if !ok {
			return v, nil
		}
		return f(t)
	case KSeq:
		return SeqFrom(SeqFlatMap(v.seq, func(t Value) (Seq, error) {
			r, err := f(t)
			if err != nil {
				return nil, err
			}
			s, err := r.ToSeq()
			if err != nil {
				return nil, err
			}
			return s.seq, nil
		})), nil
	default:
		vec, err := v.ToVec()
		if err != nil {
			return Value{}, err
		}
		var out []Value
		for _, t := range vec.vec {
			r, err := f(t)
			if err != nil {
				return Value{}, err
			}
			rv, err := r.ToVec()
			if err != nil {
				return Value{}, err
			}
			out = append(out, rv.vec...)
		}
		return VecFrom(out), nil
	}
}

// Filter keeps elements for which pred returns true. A Res is returned
// unchanged; pred is not called on it.
func Filter(v Value, pred func(Value) (bool, error)) (Value, error) {
	switch v.kind {
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			return v, nil
		}
		keep, err := pred(t)
		if err != nil {
			return Value{}, err
		}
		if !keep {
			return None(), nil
		}
		return v, nil
	case KRes:
		return v, nil
	case KSeq:
		return SeqFrom(SeqFilter(v.seq, pred)), nil
	case KSet:
		out := NewOSet()
		for _, t := range v.set.keys {
			keep, err := pred(t)
			if err != nil {
				return Value{}, err
			}
			if keep {
				out.Add(t)
			}
		}
		return SetFrom(out), nil
	case KMap:
		out := NewOMap()
		for _, k := range v.mp.keys {
			val, _ := v.mp.Get(k)
			keep, err := pred(VecOf(k, val))
			if err != nil {
				return Value{}, err
			}
			if keep {
				out.Set(k, val)
			}
		}
		return MapFrom(out), nil
	default:
		vec, err := v.ToVec()
		if err != nil {
			return Value{}, err
		}
		var out []Value
		for _, t := range vec.vec {
			keep, err := pred(t)
			if err != nil {
				return Value{}, err
			}
			if keep {
				out = append(out, t)
			}
		}
		return VecFrom(out), nil
	}
}

// Zip pairs up two carriers elementwise into 2-Vecs.
func Zip(a, b Value) (Value, error) {
	if a.kind == KSeq || b.kind == KSeq {
		sa, err := a.ToSeq()
		if err != nil {
			return Value{}, err
		}
		sb, err := b.ToSeq()
		if err != nil {
			return Value{}, err
		}
		return SeqFrom(SeqZip(sa.seq, sb.seq)), nil
	}
	va, err := a.ToVec()
	if err != nil {
		return Value{}, err
	}
	vb, err := b.ToVec()
	if err != nil {
		return Value{}, err
	}
	n := len(va.vec)
	if len(vb.vec) < n {
		n = len(vb.vec)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = VecOf(va.vec[i], vb.vec[i])
	}
	return VecFrom(out), nil
}

// Fold reduces v to a single value via f(acc, elem), starting from init.
// On Opt/Res, f is applied at most once.
func Fold(v Value, init Value, f func(Value, Value) (Value, error)) (Value, error) {
	switch v.kind {
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			return init, nil
		}
		return f(init, t)
	case KRes:
		t, ok := v.resVal_()
		if !ok {
			return init, nil
		}
		return f(init, t)
	case KSeq:
		acc := init
		snap := v.seq.Clone()
		for {
			t, ok, err := snap.Next()
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return acc, nil
			}
			acc, err = f(acc, t)
			if err != nil {
				return Value{}, err
			}
		}
	default:
		vec, err := v.ToVec()
		if err != nil {
			return Value{}, err
		}
		acc := init
		for _, t := range vec.vec {
			acc, err = f(acc, t)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	}
}

// Scan is Fold but returns every intermediate accumulator as a Vec/Seq.
func Scan(v Value, init Value, f func(Value, Value) (Value, error)) (Value, error) {
	if v.kind == KSeq {
		return SeqFrom(SeqScan(v.seq, init, f)), nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	acc := init
	out := make([]Value, 0, len(vec.vec))
	for _, t := range vec.vec {
		acc, err = f(acc, t)
		if err != nil {
			return Value{}, err
		}
		out = append(out, acc)
	}
	return VecFrom(out), nil
}

// Find returns the first element satisfying pred, as an Opt.
func Find(v Value, pred func(Value) (bool, error)) (Value, error) {
	switch v.kind {
	case KSeq:
		snap := v.seq.Clone()
		for {
			t, ok, err := snap.Next()
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return None(), nil
			}
			match, err := pred(t)
			if err != nil {
				return Value{}, err
			}
			if match {
				return Some(t), nil
			}
		}
	default:
		vec, err := v.ToVec()
		if err != nil {
			return Value{}, err
		}
		for _, t := range vec.vec {
			match, err := pred(t)
			if err != nil {
				return Value{}, err
			}
			if match {
				return Some(t), nil
			}
		}
		return None(), nil
	}
}

// Any reports whether pred holds for at least one element.
func Any(v Value, pred func(Value) (bool, error)) (bool, error) {
	r, err := Find(v, pred)
	if err != nil {
		return false, err
	}
	return r.Bool(), nil
}

// All reports whether pred holds for every element.
func All(v Value, pred func(Value) (bool, error)) (bool, error) {
	found, err := Find(v, func(t Value) (bool, error) {
		ok, err := pred(t)
		return !ok, err
	})
	if err != nil {
		return false, err
	}
	return !found.Bool(), nil
}

// Sorted sorts v's elements under the total order of Compare (spec §4.1.4).
// A Seq is materialized first (§9 Open Question: Seq has no in-place sort,
// so `sorted` always terminates a Seq pipeline; an unbounded Seq piped
// into `sorted` will not return).
func Sorted(v Value) (Value, error) {
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	out := append([]Value(nil), vec.vec...)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return VecFrom(out), nil
}

// SortedBy sorts by a caller-supplied comparator returning <0/0/>0, using a
// recover boundary (teacher's vm/run.go panic-recover idiom) so a
// comparator panic (e.g. from a malformed closure) becomes an error rather
// than crashing the process.
func SortedBy(v Value, cmp func(Value, Value) (int, error)) (result Value, err error) {
	vec, convErr := v.ToVec()
	if convErr != nil {
		return Value{}, convErr
	}
	out := append([]Value(nil), vec.vec...)
	var sortErr error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("sorted_by comparator panicked: %v", r)
		}
	}()
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, e := cmp(out[i], out[j])
		if e != nil {
			sortErr = e
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return Value{}, sortErr
	}
	return VecFrom(out), nil
}

// Take yields the first n elements (negative n takes the last -n, per
// original_source/src/types/iter.rs's negative-n take/drop semantics).
func Take(v Value, n int) (Value, error) {
	if v.kind == KSeq && n >= 0 {
		return SeqFrom(SeqTake(v.seq, n)), nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	return VecFrom(takeSlice(vec.vec, n)), nil
}

func takeSlice(vs []Value, n int) []Value {
	if n >= 0 {
		if n > len(vs) {
			n = len(vs)
		}
		return append([]Value(nil), vs[:n]...)
	}
	n = -n
	if n > len(vs) {
		n = len(vs)
	}
	return append([]Value(nil), vs[len(vs)-n:]...)
}

// Drop skips the first n elements (negative n drops the last -n).
func Drop(v Value, n int) (Value, error) {
	if v.kind == KSeq && n >= 0 {
		return SeqFrom(SeqDrop(v.seq, n)), nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	return VecFrom(dropSlice(vec.vec, n)), nil
}

func dropSlice(vs []Value, n int) []Value {
	if n >= 0 {
		if n > len(vs) {
			n = len(vs)
		}
		return append([]Value(nil), vs[n:]...)
	}
	n = -n
	if n > len(vs) {
		n = len(vs)
	}
	return append([]Value(nil), vs[:len(vs)-n]...)
}

// Chunk splits v into consecutive groups of size n (the last group may be
// shorter). Negative n instead partitions into exactly |n| groups, as even
// as possible, with the remainder distributed to the leading groups.
func Chunk(v Value, n int) (Value, error) {
	if n == 0 {
		return Value{}, errors.New("chunk size must be nonzero")
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	if n < 0 {
		return evenGroups(vec.vec, -n), nil
	}
	var out []Value
	for i := 0; i < len(vec.vec); i += n {
		end := i + n
		if end > len(vec.vec) {
			end = len(vec.vec)
		}
		out = append(out, VecOf(vec.vec[i:end]...))
	}
	return VecFrom(out), nil
}

// evenGroups splits vs into count contiguous groups as even as possible,
// handing the remainder to the leading groups.
func evenGroups(vs []Value, count int) Value {
	total := len(vs)
	base := total / count
	rem := total % count
	var out []Value
	idx := 0
	for i := 0; i < count; i++ {
		size := base
		if i < rem {
			size++
		}
		out = append(out, VecOf(vs[idx:idx+size]...))
		idx += size
	}
	return VecFrom(out)
}

// Window yields every contiguous sub-slice of length n (a sliding window),
// i.e. divvy(n, 1).
func Window(v Value, n int) (Value, error) {
	return Divvy(v, n, 1)
}

// Divvy yields sliding windows of exact size n stepping by m. Negative m
// instead chooses the step so that ⌈(len−n)/|m|⌉ windows (at least one)
// emerge, evenly spaced across the input: the first window starts at 0 and,
// when there are two or more, the last ends at the final element.
func Divvy(v Value, n int, m int) (Value, error) {
	if n <= 0 {
		return Value{}, errors.New("divvy window size must be positive")
	}
	if m == 0 {
		return Value{}, errors.New("divvy step must be nonzero")
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	elems := vec.vec
	total := len(elems)
	if total < n {
		return VecFrom(nil), nil
	}
	span := total - n
	var positions []int
	if m > 0 {
		for i := 0; i <= span; i += m {
			positions = append(positions, i)
		}
	} else {
		step := -m
		count := (span + step - 1) / step
		if count < 1 {
			count = 1
		}
		positions = make([]int, count)
		if count == 1 {
			positions[0] = 0
		} else {
			for i := 0; i < count; i++ {
				positions[i] = i * span / (count - 1)
			}
		}
	}
	out := make([]Value, len(positions))
	for i, p := range positions {
		out[i] = VecOf(elems[p : p+n]...)
	}
	return VecFrom(out), nil
}

// Unfold builds a Seq by repeatedly applying gen to seed, per spec's
// `unfold`: gen returns (value, nextSeed, more, err).
func Unfold(seed Value, gen func(Value) (Value, Value, bool, error)) Value {
	return SeqFrom(SeqOfUnfold(seed, gen))
}

// Flatten concatenates one level of nested Vec/Set/Seq elements.
func Flatten(v Value) (Value, error) {
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, t := range vec.vec {
		if t.IsMany() {
			sub, err := t.ToVec()
			if err != nil {
				return Value{}, err
			}
			out = append(out, sub.vec...)
		} else {
			out = append(out, t)
		}
	}
	return VecFrom(out), nil
}

// FlattenRec recursively flattens every level of nesting.
func FlattenRec(v Value) (Value, error) {
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, t := range vec.vec {
		if t.IsMany() {
			sub, err := FlattenRec(t)
			if err != nil {
				return Value{}, err
			}
			out = append(out, sub.vec...)
		} else {
			out = append(out, t)
		}
	}
	return VecFrom(out), nil
}

// Enumerate pairs each element with its 0-based index.
func Enumerate(v Value) (Value, error) {
	if v.kind == KSeq {
		return SeqFrom(SeqEnumerate(v.seq)), nil
	}
	vec, err := v.ToVec()
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(vec.vec))
	for i, t := range vec.vec {
		out[i] = VecOf(I64(int64(i)), t)
	}
	return VecFrom(out), nil
}

// Pairs converts a Map into its [k v] entry Vec (the inverse of building a
// Map from pairs); any other carrier is returned as its ToVec (a Seq is
// materialized, a Set becomes a Vec), without grouping elements into pairs.
func Pairs(v Value) (Value, error) {
	if v.kind == KMap {
		out := make([]Value, len(v.mp.keys))
		for i, k := range v.mp.keys {
			val, _ := v.mp.Get(k)
			out[i] = VecOf(k, val)
		}
		return VecFrom(out), nil
	}
	return v.ToVec()
}
