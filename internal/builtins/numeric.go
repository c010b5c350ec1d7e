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
	"math"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	registerArith("+", types.OpAdd)
	registerArith("-", types.OpSub)
	registerArith("*", types.OpMul)
	registerArith("/", types.OpDiv)
	registerArith("%", types.OpRem)
	registerArith("^", types.OpPow)

	eval.Register("_", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		e.Push(v.Neg())
		return nil
	})

	eval.Register("MinI32", constOf(types.I32(math.MinInt32)))
	eval.Register("MaxI32", constOf(types.I32(math.MaxInt32)))
	eval.Register("MinI64", constOf(types.I64(math.MinInt64)))
	eval.Register("MaxI64", constOf(types.I64(math.MaxInt64)))
	eval.Register("MinF64", constOf(types.F64(-math.MaxFloat64)))
	eval.Register("MaxF64", constOf(types.F64(math.MaxFloat64)))
	eval.Register("Inf", constOf(types.F64(math.Inf(1))))
	eval.Register("NaN", constOf(types.F64(math.NaN())))
}

func constOf(v types.Value) eval.BuiltinFunc {
	return func(e *eval.Env) error {
		e.Push(v)
		return nil
	}
}

func registerArith(name string, op types.ArithOp) {
	eval.Register(name, func(e *eval.Env) error {
		ab, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, err := types.Arith(op, ab[0], ab[1])
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
}
