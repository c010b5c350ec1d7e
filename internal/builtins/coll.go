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

package builtins

import (
	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	registerCtors()
	registerIndexEdit()
}

// registerCtors wires the collection constructor family: `>Vec` coerces
// the top value to a Vec; a bare `Vec` wraps a single value; `*Vec` wraps
// the entire stack; `#Vec` evaluates a quoted Expr and wraps its resulting
// stack. Map/Set/Expr mirror the same four forms.
func registerCtors() {
	eval.Register(">Vec", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		r, err := v.ToVec()
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("Vec", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.VecOf(v))
		return nil
	})
	eval.Register("*Vec", func(e *eval.Env) error {
		vs := append([]types.Value(nil), e.Stack()...)
		if _, err := e.PopN(len(vs)); err != nil {
			return err
		}
		e.Push(types.VecFrom(vs))
		return nil
	})
	eval.Register("#Vec", withEvaluatedStack(func(vs []types.Value) types.Value {
		return types.VecFrom(vs)
	}))

	eval.Register(">Expr", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		r, err := v.ToExpr()
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("Expr", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.ExprFrom([]types.SynNode{types.Raw(v)}))
		return nil
	})
	eval.Register("*Expr", func(e *eval.Env) error {
		vs := append([]types.Value(nil), e.Stack()...)
		if _, err := e.PopN(len(vs)); err != nil {
			return err
		}
		e.Push(types.ExprFrom(valuesToRawNodes(vs)))
		return nil
	})
	eval.Register("#Expr", withEvaluatedStack(func(vs []types.Value) types.Value {
		return types.ExprFrom(valuesToRawNodes(vs))
	}))

	eval.Register(">Set", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		vec, err := v.ToVec()
		if err != nil {
			return err
		}
		e.Push(types.SetFrom(types.OSetFromValues(vec.VecElems())))
		return nil
	})
	eval.Register("Set", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.SetFrom(types.OSetFromValues([]types.Value{v})))
		return nil
	})
	eval.Register("*Set", func(e *eval.Env) error {
		vs := append([]types.Value(nil), e.Stack()...)
		if _, err := e.PopN(len(vs)); err != nil {
			return err
		}
		e.Push(types.SetFrom(types.OSetFromValues(vs)))
		return nil
	})
	eval.Register("#Set", withEvaluatedStack(func(vs []types.Value) types.Value {
		return types.SetFrom(types.OSetFromValues(vs))
	}))

	eval.Register(">Map", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		vec, err := v.ToVec()
		if err != nil {
			return err
		}
		m, err := pairsToMap(vec.VecElems())
		if err != nil {
			return err
		}
		e.Push(types.MapFrom(m))
		return nil
	})
	eval.Register("Map", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		k, val, err := types.ToPair(v)
		if err != nil {
			return err
		}
		m := types.NewOMap()
		m.Set(k, val)
		e.Push(types.MapFrom(m))
		return nil
	})
	eval.Register("*Map", func(e *eval.Env) error {
		vs := append([]types.Value(nil), e.Stack()...)
		if _, err := e.PopN(len(vs)); err != nil {
			return err
		}
		m, err := pairsToMap(vs)
		if err != nil {
			return err
		}
		e.Push(types.MapFrom(m))
		return nil
	})
	eval.Register("#Map", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("#Map expected a closure, got `%s`", f.GoString())
		}
		sub := eval.New(eval.WithScope(e.Scope()))
		if err := sub.Eval(f.ExprNodes()); err != nil {
			return err
		}
		m, err := pairsToMap(sub.Stack())
		if err != nil {
			return err
		}
		e.Push(types.MapFrom(m))
		return nil
	})
}

// valuesToRawNodes quotes already-evaluated stack values as Raw syntax
// nodes, the inverse of what running an Expr's nodes does — used by
// `*Expr`/`#Expr` to turn a finished stack back into quoted code.
func valuesToRawNodes(vs []types.Value) []types.SynNode {
	nodes := make([]types.SynNode, len(vs))
	for i, v := range vs {
		nodes[i] = types.Raw(v)
	}
	return nodes
}

func pairsToMap(vs []types.Value) (*types.OMap, error) {
	if len(vs)%2 != 0 {
		return nil, errors.New("Map construction requires an even number of elements")
	}
	m := types.NewOMap()
	for i := 0; i+1 < len(vs); i += 2 {
		m.Set(vs[i], vs[i+1])
	}
	return m, nil
}

func withEvaluatedStack(wrap func([]types.Value) types.Value) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("expected a closure, got `%s`", f.GoString())
		}
		sub := eval.New(eval.WithScope(e.Scope()))
		if err := sub.Eval(f.ExprNodes()); err != nil {
			return err
		}
		e.Push(wrap(sub.Stack()))
		return nil
	}
}

// registerIndexEdit wires the polymorphic indexing/editing family (spec
// §4.6), each a thin stack adapter over internal/types' Value methods.
func registerIndexEdit() {
	eval.Register(":", func(e *eval.Env) error {
		kv, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, ok := kv[0].Get(kv[1])
		if !ok {
			return errors.Errorf(": has no entry for `%s`", kv[1].GoString())
		}
		e.Push(r)
		return nil
	})
	eval.Register("has", func(e *eval.Env) error {
		kv, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(types.Bool(kv[0].Has(kv[1])))
		return nil
	})
	eval.Register(":+", editOp(func(c, item types.Value) (types.Value, error) { return c.Push(item) }))
	eval.Register("+:", editOp(func(c, item types.Value) (types.Value, error) { return c.PushFront(item) }))
	// :- / -: mirror the :+/+: back/front pairing but for removal: no key
	// argument, drop the last or first element respectively.
	eval.Register(":-", unaryErr(func(v types.Value) (types.Value, error) { return v.Remove(types.I64(-1)) }))
	eval.Register("-:", unaryErr(func(v types.Value) (types.Value, error) { return v.Remove(types.I64(0)) }))
	eval.Register("rmv", editOp(func(c, key types.Value) (types.Value, error) { return c.Remove(key) }))
	// del removes the first element equal to the given value (Vec scan);
	// for Map/Set, where value-equality removal has no cheaper shape than
	// key removal, it degrades to the same key/member removal as rmv.
	eval.Register("del", func(e *eval.Env) error {
		cv, err := e.PopN(2)
		if err != nil {
			return err
		}
		c, target := cv[0], cv[1]
		if c.Kind() == types.KVec {
			elems := c.VecElems()
			for i, t := range elems {
				if types.Equal(t, target) {
					out := append(append([]types.Value(nil), elems[:i]...), elems[i+1:]...)
					e.Push(types.VecFrom(out))
					return nil
				}
			}
			e.Push(c)
			return nil
		}
		r, err := c.Remove(target)
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	// :~ / ~: update the last/first element via a closure, the same
	// back/front pairing as :+/+: and :-/-: but reading-modifying-writing
	// in place rather than pushing/popping.
	eval.Register(":~", closureOverCarrierColl(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return updateEnd(e, v, f, true)
	}))
	eval.Register("~:", closureOverCarrierColl(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return updateEnd(e, v, f, false)
	}))
	eval.Register("mov", func(e *eval.Env) error {
		vft, err := e.PopN(3)
		if err != nil {
			return err
		}
		v, from, to := vft[0], vft[1], vft[2]
		vec, err := v.ToVec()
		if err != nil {
			return err
		}
		elems := append([]types.Value(nil), vec.VecElems()...)
		fi, err := resolveIndex(from.ToI64(), len(elems))
		if err != nil {
			return err
		}
		ti, err := resolveIndex(to.ToI64(), len(elems))
		if err != nil {
			return err
		}
		item := elems[fi]
		elems = append(elems[:fi], elems[fi+1:]...)
		// ti was resolved against the pre-removal length, which already
		// equals the valid insertion range [0, len(elems)] post-removal
		// (one slot shorter, one fewer valid index) — it's the final
		// position the moved item should land at, not an index into the
		// original array, so no further adjustment is needed.
		out := make([]types.Value, 0, len(elems)+1)
		out = append(out, elems[:ti]...)
		out = append(out, item)
		out = append(out, elems[ti:]...)
		e.Push(types.VecFrom(out))
		return nil
	})
	eval.Register("++", func(e *eval.Env) error {
		ab, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, err := types.Append(ab[0], ab[1])
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("ins", func(e *eval.Env) error {
		civ, err := e.PopN(3)
		if err != nil {
			return err
		}
		r, err := civ[0].Insert(int(civ[1].ToI64()), civ[2])
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("@", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.I64(int64(v.Len())))
		return nil
	})
	eval.Register("tk", intOp(types.Take))
	eval.Register("dp", intOp(types.Drop))
	eval.Register("chunk", intOp(types.Chunk))
	eval.Register("window", intOp(types.Window))
	eval.Register("divvy", func(e *eval.Env) error {
		vnm, err := e.PopN(3)
		if err != nil {
			return err
		}
		r, err := types.Divvy(vnm[0], int(vnm[1].ToI64()), int(vnm[2].ToI64()))
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("flat", unaryErr(types.Flatten))
	eval.Register("flatR", unaryErr(types.FlattenRec))
	eval.Register("sort", unaryErr(types.Sorted))
	eval.Register("enum", unaryErr(types.Enumerate))
	eval.Register("pairs", unaryErr(types.Pairs))
	eval.Register("zipN", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		outer, err := v.ToVec()
		if err != nil {
			return err
		}
		cols := outer.VecElems()
		vecs := make([][]types.Value, len(cols))
		minLen := -1
		for i, c := range cols {
			cv, err := c.ToVec()
			if err != nil {
				return err
			}
			vecs[i] = cv.VecElems()
			if minLen == -1 || len(vecs[i]) < minLen {
				minLen = len(vecs[i])
			}
		}
		if minLen < 0 {
			minLen = 0
		}
		rows := make([]types.Value, minLen)
		for i := 0; i < minLen; i++ {
			row := make([]types.Value, len(vecs))
			for j := range vecs {
				row[j] = vecs[j][i]
			}
			rows[i] = types.VecFrom(row)
		}
		e.Push(types.VecFrom(rows))
		return nil
	})
	eval.Register("cprodN", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		outer, err := v.ToVec()
		if err != nil {
			return err
		}
		cols := outer.VecElems()
		vecs := make([][]types.Value, len(cols))
		for i, c := range cols {
			cv, err := c.ToVec()
			if err != nil {
				return err
			}
			vecs[i] = cv.VecElems()
		}
		rows := [][]types.Value{{}}
		for _, col := range vecs {
			var next [][]types.Value
			for _, row := range rows {
				for _, item := range col {
					nr := append(append([]types.Value(nil), row...), item)
					next = append(next, nr)
				}
			}
			rows = next
		}
		out := make([]types.Value, len(rows))
		for i, row := range rows {
			out[i] = types.VecFrom(row)
		}
		e.Push(types.VecFrom(out))
		return nil
	})
}

// resolveIndex normalises a signed index (negative counts from the end,
// per Get's convention) against length n, erroring if out of range.
func resolveIndex(i int64, n int) (int, error) {
	idx := int(i)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, errors.Errorf("index %d out of range", i)
	}
	return idx, nil
}

// closureOverCarrierColl mirrors closureOverCarrier (iterops.go) for
// editing ops that return an edited collection rather than an iteration
// result; kept local since :~/~: live in the indexing/editing family.
func closureOverCarrierColl(op func(e *eval.Env, v, f types.Value) (types.Value, error)) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		vf, err := e.PopN(2)
		if err != nil {
			return err
		}
		v, f := vf[0], vf[1]
		if f.Kind() != types.KExpr {
			return errors.Errorf("expected a closure, got `%s`", f.GoString())
		}
		r, err := op(e, v, f)
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	}
}

// updateEnd implements :~/~:: apply f to the last (last=true) or first
// element of v and splice the result back in place.
func updateEnd(e *eval.Env, v, f types.Value, last bool) (types.Value, error) {
	n := v.Len()
	if n == 0 {
		return types.Value{}, errors.New("update on an empty collection")
	}
	idx := int64(0)
	if last {
		idx = int64(n - 1)
	}
	cur, ok := v.Get(types.I64(idx))
	if !ok {
		return types.Value{}, errors.New("update index out of range")
	}
	r, err := e.Apply1(f, cur)
	if err != nil {
		return types.Value{}, err
	}
	removed, err := v.Remove(types.I64(idx))
	if err != nil {
		return types.Value{}, err
	}
	insertAt := 0
	if last {
		insertAt = removed.Len()
	}
	return removed.Insert(insertAt, r)
}

func editOp(f func(c, arg types.Value) (types.Value, error)) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		ca, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, err := f(ca[0], ca[1])
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	}
}

func unaryErr(f func(types.Value) (types.Value, error)) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		r, err := f(v)
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	}
}

func intOp(f func(types.Value, int) (types.Value, error)) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		vn, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, err := f(vn[0], int(vn[1].ToI64()))
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	}
}
