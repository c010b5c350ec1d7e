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

// Sequence family: lazy cloneable Seq construction (spec §4.6 "Sequence").
package builtins

import (
	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("SeqN0", constOf(types.SeqFrom(types.SeqOfUnfold(types.I64(0), func(acc types.Value) (types.Value, types.Value, bool, error) {
		return acc, types.I64(acc.ToI64() + 1), true, nil
	}))))

	eval.Register(">Seq", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		r, err := v.ToSeq()
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("Seq", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.SeqFrom(types.SeqOfSlice([]types.Value{v})))
		return nil
	})

	eval.Register("rpt", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.SeqFrom(types.SeqOfRepeat(v)))
		return nil
	})
	eval.Register("rptN", func(e *eval.Env) error {
		vn, err := e.PopN(2)
		if err != nil {
			return err
		}
		v, n := vn[0], int(vn[1].ToI64())
		elems := make([]types.Value, n)
		for i := range elems {
			elems[i] = v
		}
		e.Push(types.VecFrom(elems))
		return nil
	})
	eval.Register("cyc", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		vec, err := v.ToVec()
		if err != nil {
			return err
		}
		e.Push(types.SeqFrom(types.SeqOfCycle(vec.VecElems())))
		return nil
	})

	eval.Register("unfold", func(e *eval.Env) error {
		sf, err := e.PopN(2)
		if err != nil {
			return err
		}
		seed, f := sf[0], sf[1]
		if f.Kind() != types.KExpr {
			return errors.Errorf("unfold expected a closure, got `%s`", f.GoString())
		}
		e.Push(types.SeqFrom(types.SeqOfUnfold(seed, func(acc types.Value) (types.Value, types.Value, bool, error) {
			r, err := e.Apply1(f, acc)
			if err != nil {
				return types.Value{}, types.Value{}, false, err
			}
			inner, ok := r.TryUnwrapOpt()
			if !ok {
				return types.Value{}, types.Value{}, false, nil
			}
			pair := inner.VecElems()
			if len(pair) != 2 {
				return types.Value{}, types.Value{}, false, errors.New("unfold closure must return Some([value, nextAcc]) or None")
			}
			return pair[0], pair[1], true, nil
		})))
		return nil
	})
}
