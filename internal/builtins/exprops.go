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

// Expression family: invocation, conditional invocation, argument binding,
// and queue-clearing coalesce (spec §4.5.3, §4.5.4).
package builtins

import (
	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("#", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("# expected a closure, got `%s`", f.GoString())
		}
		return e.Invoke(f)
	})

	eval.Register("tap", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("tap expected a closure, got `%s`", f.GoString())
		}
		v, err := e.Peek()
		if err != nil {
			return err
		}
		r, err := e.Apply1(f, v)
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})

	eval.Register("&#", func(e *eval.Env) error {
		cf, err := e.PopN(2)
		if err != nil {
			return err
		}
		cond, f := cf[0], cf[1]
		if !cond.Bool() {
			return nil
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("&# expected a closure, got `%s`", f.GoString())
		}
		return e.Invoke(f)
	})
	eval.Register("|#", func(e *eval.Env) error {
		cf, err := e.PopN(2)
		if err != nil {
			return err
		}
		cond, f := cf[0], cf[1]
		if cond.Bool() {
			return nil
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("|# expected a closure, got `%s`", f.GoString())
		}
		return e.Invoke(f)
	})
	eval.Register("&|#", func(e *eval.Env) error {
		ctf, err := e.PopN(3)
		if err != nil {
			return err
		}
		cond, then, els := ctf[0], ctf[1], ctf[2]
		f := els
		if cond.Bool() {
			f = then
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("&|# expected a closure, got `%s`", f.GoString())
		}
		return e.Invoke(f)
	})

	eval.Register("->", func(e *eval.Env) error {
		f, err := e.Pop()
		if err != nil {
			return err
		}
		if f.Kind() != types.KExpr {
			return errors.Errorf("-> expected a closure of Words, got `%s`", f.GoString())
		}
		return e.BindArgs(f)
	})

	eval.Register("?", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		switch v.Kind() {
		case types.KOpt:
			if inner, ok := v.TryUnwrapOpt(); ok {
				e.Push(inner)
				return nil
			}
			e.ClearQueue()
			e.Push(v)
			return nil
		case types.KRes:
			if inner, ok := v.TryUnwrapOk(); ok {
				e.Push(inner)
				return nil
			}
			e.ClearQueue()
			e.Push(v)
			return nil
		default:
			e.Push(v)
			return nil
		}
	})
}
