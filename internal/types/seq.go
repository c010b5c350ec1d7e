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

// Seq is a lazy, independently cloneable sequence of values (spec §3.1,
// §9 "Lazy, clonable sequences"). Rust expresses this as `Box<dyn Iterator
// + Clone>`; Go has no clonable trait object, so Seq is a small closed
// interface and every adaptor below holds enough state to rebuild an
// independent copy of itself plus its parent(s) in Clone.
//
// Next returns (value, true, nil) while elements remain, (_, false, nil)
// once exhausted, or (_, _, err) if evaluating the next element failed
// (e.g. a closure-backed map/filter seq whose underlying call errored).
// Once Next returns end-of-sequence, subsequent calls keep returning
// end-of-sequence (a Seq does not resurrect). An error is not recorded:
// after one, a map/filter adaptor's next call moves on to the following
// element, and an unfold seq reports end-of-sequence.
type Seq interface {
	Next() (Value, bool, error)
	Clone() Seq
}

// --- base adaptors: materialized / generated sources ---

// sliceSeq walks a fixed slice of values; Clone is a cheap index copy.
type sliceSeq struct {
	vs  []Value
	pos int
}

// SeqOfSlice builds a Seq walking vs in order. vs is not copied; pass an
// owned slice.
func SeqOfSlice(vs []Value) Seq { return &sliceSeq{vs: vs} }

func (s *sliceSeq) Next() (Value, bool, error) {
	if s.pos >= len(s.vs) {
		return Value{}, false, nil
	}
	v := s.vs[s.pos]
	s.pos++
	return v, true, nil
}

func (s *sliceSeq) Clone() Seq { cp := *s; return &cp }

// rangeSeq generates an arithmetic progression lazily (spec §4.6 `to`/
// `range`-style builtins), stopping when it would cross stop (exclusive).
type rangeSeq struct {
	cur, stop, step int64
	done            bool
}

// SeqOfRange builds a Seq over [start, stop) stepping by step. A step of 0
// yields an immediately-exhausted sequence rather than looping forever.
func SeqOfRange(start, stop, step int64) Seq {
	return &rangeSeq{cur: start, stop: stop, step: step, done: step == 0}
}

func (s *rangeSeq) Next() (Value, bool, error) {
	if s.done {
		return Value{}, false, nil
	}
	if s.step > 0 && s.cur >= s.stop {
		s.done = true
		return Value{}, false, nil
	}
	if s.step < 0 && s.cur <= s.stop {
		s.done = true
		return Value{}, false, nil
	}
	v := I64(s.cur)
	s.cur += s.step
	return v, true, nil
}

func (s *rangeSeq) Clone() Seq { cp := *s; return &cp }

// repeatSeq yields the same value forever (spec's `repeat`, infinite-seq
// builtins, always paired downstream with a `take`).
type repeatSeq struct{ v Value }

// SeqOfRepeat builds an infinite Seq of v.
func SeqOfRepeat(v Value) Seq { return repeatSeq{v: v} }

func (s repeatSeq) Next() (Value, bool, error) { return s.v, true, nil }
func (s repeatSeq) Clone() Seq                 { return s }

// cycleSeq repeats a fixed slice of values forever.
type cycleSeq struct {
	vs  []Value
	pos int
}

// SeqOfCycle builds an infinite Seq repeating vs in order. Returns an
// empty (always-exhausted) Seq if vs is empty.
func SeqOfCycle(vs []Value) Seq { return &cycleSeq{vs: vs} }

func (s *cycleSeq) Next() (Value, bool, error) {
	if len(s.vs) == 0 {
		return Value{}, false, nil
	}
	v := s.vs[s.pos%len(s.vs)]
	s.pos++
	return v, true, nil
}

func (s *cycleSeq) Clone() Seq { cp := *s; return &cp }

// unfoldSeq generates values by repeatedly calling gen on an evolving
// accumulator, per spec's `unfold` (§4.3): gen returns (nextValue,
// nextAcc, more); more=false ends the sequence.
type unfoldSeq struct {
	acc  Value
	gen  func(Value) (Value, Value, bool, error)
	done bool
}

// SeqOfUnfold builds a Seq generated by repeatedly applying gen to seed.
func SeqOfUnfold(seed Value, gen func(Value) (Value, Value, bool, error)) Seq {
	return &unfoldSeq{acc: seed, gen: gen}
}

func (s *unfoldSeq) Next() (Value, bool, error) {
	if s.done {
		return Value{}, false, nil
	}
	v, next, more, err := s.gen(s.acc)
	if err != nil {
		s.done = true
		return Value{}, false, err
	}
	if !more {
		s.done = true
		return Value{}, false, nil
	}
	s.acc = next
	return v, true, nil
}

func (s *unfoldSeq) Clone() Seq {
	cp := *s
	return &cp
}

// --- adaptors over a parent Seq ---

type mapSeq struct {
	parent Seq
	f      func(Value) (Value, error)
}

// SeqMap lazily applies f to each element of parent.
func SeqMap(parent Seq, f func(Value) (Value, error)) Seq { return &mapSeq{parent: parent, f: f} }

func (s *mapSeq) Next() (Value, bool, error) {
	v, ok, err := s.parent.Next()
	if err != nil || !ok {
		return Value{}, false, err
	}
	r, err := s.f(v)
	if err != nil {
		return Value{}, false, err
	}
	return r, true, nil
}

func (s *mapSeq) Clone() Seq { return &mapSeq{parent: s.parent.Clone(), f: s.f} }

type filterSeq struct {
	parent Seq
	pred   func(Value) (bool, error)
}

// SeqFilter lazily keeps only the elements of parent satisfying pred.
func SeqFilter(parent Seq, pred func(Value) (bool, error)) Seq {
	return &filterSeq{parent: parent, pred: pred}
}

func (s *filterSeq) Next() (Value, bool, error) {
	for {
		v, ok, err := s.parent.Next()
		if err != nil || !ok {
			return Value{}, false, err
		}
		keep, err := s.pred(v)
		if err != nil {
			return Value{}, false, err
		}
		if keep {
			return v, true, nil
		}
	}
}

func (s *filterSeq) Clone() Seq { return &filterSeq{parent: s.parent.Clone(), pred: s.pred} }

type flatMapSeq struct {
	parent Seq
	f      func(Value) (Seq, error)
	cur    Seq
}

// SeqFlatMap lazily expands each element of parent into a sub-Seq via f
// and concatenates the results (spec's `flat_map`).
func SeqFlatMap(parent Seq, f func(Value) (Seq, error)) Seq {
	return &flatMapSeq{parent: parent, f: f}
}

func (s *flatMapSeq) Next() (Value, bool, error) {
	for {
		if s.cur != nil {
			v, ok, err := s.cur.Next()
			if err != nil {
				return Value{}, false, err
			}
			if ok {
				return v, true, nil
			}
			s.cur = nil
		}
		pv, ok, err := s.parent.Next()
		if err != nil || !ok {
			return Value{}, false, err
		}
		sub, err := s.f(pv)
		if err != nil {
			return Value{}, false, err
		}
		s.cur = sub
	}
}

func (s *flatMapSeq) Clone() Seq {
	cp := &flatMapSeq{parent: s.parent.Clone(), f: s.f}
	if s.cur != nil {
		cp.cur = s.cur.Clone()
	}
	return cp
}

type takeSeq struct {
	parent Seq
	n      int
	taken  int
}

// SeqTake yields at most the first n elements of parent.
func SeqTake(parent Seq, n int) Seq { return &takeSeq{parent: parent, n: n} }

func (s *takeSeq) Next() (Value, bool, error) {
	if s.taken >= s.n {
		return Value{}, false, nil
	}
	v, ok, err := s.parent.Next()
	if err != nil || !ok {
		return Value{}, false, err
	}
	s.taken++
	return v, true, nil
}

func (s *takeSeq) Clone() Seq { return &takeSeq{parent: s.parent.Clone(), n: s.n, taken: s.taken} }

type dropSeq struct {
	parent  Seq
	n       int
	dropped bool
}

// SeqDrop skips the first n elements of parent, then yields the rest.
func SeqDrop(parent Seq, n int) Seq { return &dropSeq{parent: parent, n: n} }

func (s *dropSeq) Next() (Value, bool, error) {
	if !s.dropped {
		for i := 0; i < s.n; i++ {
			_, ok, err := s.parent.Next()
			if err != nil || !ok {
				s.dropped = true
				return Value{}, false, err
			}
		}
		s.dropped = true
	}
	return s.parent.Next()
}

func (s *dropSeq) Clone() Seq {
	return &dropSeq{parent: s.parent.Clone(), n: s.n, dropped: s.dropped}
}

type zipSeq struct {
	a, b Seq
}

// SeqZip pairs up elements of a and b into 2-Vecs, stopping at the shorter.
func SeqZip(a, b Seq) Seq { return &zipSeq{a: a, b: b} }

func (s *zipSeq) Next() (Value, bool, error) {
	va, oka, erra := s.a.Next()
	if erra != nil {
		return Value{}, false, erra
	}
	vb, okb, errb := s.b.Next()
	if errb != nil {
		return Value{}, false, errb
	}
	if !oka || !okb {
		return Value{}, false, nil
	}
	return VecOf(va, vb), true, nil
}

func (s *zipSeq) Clone() Seq { return &zipSeq{a: s.a.Clone(), b: s.b.Clone()} }

type scanSeq struct {
	parent Seq
	acc    Value
	f      func(Value, Value) (Value, error)
}

// SeqScan yields a running fold of parent through f, starting from init
// (spec's `scan`: unlike fold, every intermediate accumulator is emitted).
func SeqScan(parent Seq, init Value, f func(Value, Value) (Value, error)) Seq {
	return &scanSeq{parent: parent, acc: init, f: f}
}

func (s *scanSeq) Next() (Value, bool, error) {
	v, ok, err := s.parent.Next()
	if err != nil || !ok {
		return Value{}, false, err
	}
	next, err := s.f(s.acc, v)
	if err != nil {
		return Value{}, false, err
	}
	s.acc = next
	return next, true, nil
}

func (s *scanSeq) Clone() Seq { return &scanSeq{parent: s.parent.Clone(), acc: s.acc, f: s.f} }

type enumerateSeq struct {
	parent Seq
	idx    int64
}

// SeqEnumerate pairs each element of parent with its 0-based index.
func SeqEnumerate(parent Seq) Seq { return &enumerateSeq{parent: parent} }

func (s *enumerateSeq) Next() (Value, bool, error) {
	v, ok, err := s.parent.Next()
	if err != nil || !ok {
		return Value{}, false, err
	}
	r := VecOf(I64(s.idx), v)
	s.idx++
	return r, true, nil
}

func (s *enumerateSeq) Clone() Seq { return &enumerateSeq{parent: s.parent.Clone(), idx: s.idx} }

// Materialize fully drains s into a Vec, per the `sorted`-on-Seq pitfall
// (spec §9 Open Question): any infinite Seq must be bounded with take
// before this is called, since there is no other termination signal.
func Materialize(s Seq) (Value, error) {
	var out []Value
	for {
		v, ok, err := s.Next()
		if err != nil {
			return Value{}, errors.Wrap(err, "materializing seq failed")
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	return VecFrom(out), nil
}
