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

// Package builtins is the named-operator catalogue of spec §4.6, split by
// family and registered into a single flat table (eval.Register),
// mirroring the shape of the teacher's vm/core.go opcode block and
// original_source/src/fns/core.rs's phf_map! CORE catalogue.
package builtins

import (
	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("dup", func(e *eval.Env) error {
		v, err := e.Peek()
		if err != nil {
			return err
		}
		e.Push(v)
		return nil
	})
	eval.Register("dupd", func(e *eval.Env) error {
		xy, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(xy[0])
		e.Push(xy[0])
		e.Push(xy[1])
		return nil
	})
	eval.Register("over", func(e *eval.Env) error {
		xy, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(xy[0])
		e.Push(xy[1])
		e.Push(xy[0])
		return nil
	})
	eval.Register("swap", func(e *eval.Env) error {
		xy, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(xy[1])
		e.Push(xy[0])
		return nil
	})
	eval.Register("rot", func(e *eval.Env) error {
		xyz, err := e.PopN(3)
		if err != nil {
			return err
		}
		e.Push(xyz[1])
		e.Push(xyz[2])
		e.Push(xyz[0])
		return nil
	})
	eval.Register("unrot", func(e *eval.Env) error {
		xyz, err := e.PopN(3)
		if err != nil {
			return err
		}
		e.Push(xyz[2])
		e.Push(xyz[0])
		e.Push(xyz[1])
		return nil
	})
	eval.Register("nip", func(e *eval.Env) error {
		xy, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(xy[1])
		return nil
	})
	eval.Register("tuck", func(e *eval.Env) error {
		xy, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(xy[1])
		e.Push(xy[0])
		e.Push(xy[1])
		return nil
	})
	eval.Register("drop", func(e *eval.Env) error {
		_, err := e.Pop()
		return err
	})
	eval.Register("pick", func(e *eval.Env) error {
		n, err := popIndex(e)
		if err != nil {
			return err
		}
		stk := e.Stack()
		i := len(stk) - 1 - n
		if i < 0 || i >= len(stk) {
			return errors.Errorf("pick index %d out of range", n)
		}
		e.Push(stk[i])
		return nil
	})
	eval.Register("roll", func(e *eval.Env) error { return rollUnroll(e, true) })
	eval.Register("unroll", func(e *eval.Env) error { return rollUnroll(e, false) })
	eval.Register("wrap", func(e *eval.Env) error {
		vs := append([]types.Value(nil), e.Stack()...)
		for range vs {
			if _, err := e.Pop(); err != nil {
				return err
			}
		}
		e.Push(types.VecFrom(vs))
		return nil
	})
	eval.Register("unwrap", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		if v.Kind() != types.KVec {
			return errors.Errorf("unwrap expected a Vec, got `%s`", v.GoString())
		}
		for _, t := range v.VecElems() {
			e.Push(t)
		}
		return nil
	})
	eval.Register("dip", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		x, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("dip expected a closure, got `%s`", f.GoString())
		}
		return e.InvokeThenPush(f, x)
	})
	eval.Register("sub", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		v, err := e.Pop()
		if err != nil {
			return err
		}
		if v.Kind() != types.KVec {
			return errors.Errorf("sub expected a Vec, got `%s`", v.GoString())
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("sub expected a closure, got `%s`", f.GoString())
		}
		sub := eval.New(eval.WithStack(v.VecElems()), eval.WithScope(e.Scope()))
		if err := sub.Eval(f.ExprNodes()); err != nil {
			return err
		}
		e.Push(types.VecFrom(sub.Stack()))
		return nil
	})
}

func popIndex(e *eval.Env) (int, error) {
	v, err := e.Pop()
	if err != nil {
		return 0, err
	}
	return int(v.ToI64()), nil
}

// rollUnroll implements `roll`/`unroll`: rotate the top n+1 stack items
// (n popped first) by one position in opposite directions.
func rollUnroll(e *eval.Env, toTop bool) error {
	n, err := popIndex(e)
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("roll/unroll count must be non-negative")
	}
	vs, err := e.PopN(n + 1)
	if err != nil {
		return err
	}
	if toTop {
		rotated := append(append([]types.Value(nil), vs[1:]...), vs[0])
		for _, v := range rotated {
			e.Push(v)
		}
	} else {
		rotated := append([]types.Value{vs[len(vs)-1]}, vs[:len(vs)-1]...)
		for _, v := range rotated {
			e.Push(v)
		}
	}
	return nil
}
