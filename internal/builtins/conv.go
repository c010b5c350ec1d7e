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
	eval.Register("bool", unary(func(v types.Value) (types.Value, error) {
		return types.Bool(v.Bool()), nil
	}))
	eval.Register("i32", unary(func(v types.Value) (types.Value, error) {
		return types.I32(v.ToI32()), nil
	}))
	eval.Register("i64", unary(func(v types.Value) (types.Value, error) {
		return types.I64(v.ToI64()), nil
	}))
	eval.Register("ibig", unary(func(v types.Value) (types.Value, error) {
		return types.IBig(v.ToIBig()), nil
	}))
	eval.Register("f64", unary(func(v types.Value) (types.Value, error) {
		return types.F64(v.ToF64()), nil
	}))
	eval.Register(">str", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.Str(v.GoString()))
		return nil
	})

	eval.Register("None", constOf(types.None()))
	eval.Register("Some", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.Some(v))
		return nil
	})
	eval.Register("Ok", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.Ok(v))
		return nil
	})
	eval.Register("Err", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(types.Err(v))
		return nil
	})
	// #Res is the Try family's catching form: run a closure as a child
	// frame and turn whatever it does into a Res instead of letting a
	// failure abort the current frame (spec §4.5.5's error propagation
	// otherwise gives a built-in error no way to become a value). A
	// closure that doesn't leave exactly one value is itself a structural
	// error (SPEC_FULL.md §C.7), which #Res reports as Err rather than
	// propagating, since catching errors is the entire point of this one.
	eval.Register("#Res", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("#Res expected a closure, got `%s`", f.GoString())
		}
		sub := eval.New(eval.WithScope(e.Scope()))
		if err := sub.Eval(f.ExprNodes()); err != nil {
			e.Push(types.Err(types.Str(err.Error())))
			return nil
		}
		st := sub.Stack()
		if len(st) != 1 {
			e.Push(types.Err(types.Str("#Res: closure left 0 or >1 values, expected 1")))
			return nil
		}
		e.Push(types.Ok(st[0]))
		return nil
	})
}

// unary lifts a scalar Value transform through Vecz1 automatically, per
// spec §4.4: every conversion builtin registered through it distributes
// over Opt/Res/Vec/Map/Set/Seq without its own special-casing. `>str` is
// not registered through it and renders its operand whole.
func unary(f func(types.Value) (types.Value, error)) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		r, err := types.Vecz1(v, f)
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	}
}
