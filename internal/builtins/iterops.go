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

// This file is the "_env" bridge (SPEC_FULL.md §C.7): it wraps
// internal/types' carrier-polymorphic Iteration Engine, which takes plain
// Go closures, with closures that invoke a quoted Expr as a child frame
// via (*eval.Env).Apply1/Apply2. Most builtins here pop a closure and a
// carrier, then delegate the traversal to internal/types so the "once vs
// many" dispatch lives in one place; `zipR` takes no closure, and `fold1`,
// `tk?` and `dp?` materialize the carrier with ToVec and loop here.
package builtins

import (
	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("map", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return types.FlatMap(v, func(t types.Value) (types.Value, error) {
			r, err := e.Apply1(f, t)
			if err != nil {
				return types.Value{}, err
			}
			return types.VecOf(r), nil
		})
	}))
	eval.Register("mapF", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return types.FlatMap(v, func(t types.Value) (types.Value, error) {
			return e.Apply1(f, t)
		})
	}))
	eval.Register("mapR", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		enumerated, err := types.Enumerate(v)
		if err != nil {
			return types.Value{}, err
		}
		return types.FlatMap(enumerated, func(pair types.Value) (types.Value, error) {
			elems := pair.VecElems()
			r, err := e.Apply2(f, elems[0], elems[1])
			if err != nil {
				return types.Value{}, err
			}
			return types.VecOf(r), nil
		})
	}))
	eval.Register("tk?", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return takeDropWhile(e, v, f, true)
	}))
	eval.Register("dp?", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return takeDropWhile(e, v, f, false)
	}))
	eval.Register("fltr", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return types.Filter(v, func(t types.Value) (bool, error) {
			r, err := e.Apply1(f, t)
			if err != nil {
				return false, err
			}
			return r.Bool(), nil
		})
	}))
	eval.Register("find", closureOverCarrier(func(e *eval.Env, v, f types.Value) (types.Value, error) {
		return types.Find(v, func(t types.Value) (bool, error) {
			r, err := e.Apply1(f, t)
			if err != nil {
				return false, err
			}
			return r.Bool(), nil
		})
	}))
	eval.Register("any", closureOverCarrierBool(func(e *eval.Env, v, f types.Value) (bool, error) {
		return types.Any(v, func(t types.Value) (bool, error) {
			r, err := e.Apply1(f, t)
			if err != nil {
				return false, err
			}
			return r.Bool(), nil
		})
	}))
	eval.Register("all", closureOverCarrierBool(func(e *eval.Env, v, f types.Value) (bool, error) {
		return types.All(v, func(t types.Value) (bool, error) {
			r, err := e.Apply1(f, t)
			if err != nil {
				return false, err
			}
			return r.Bool(), nil
		})
	}))

	eval.Register("fold", func(e *eval.Env) error {
		vif, err := e.PopN(3)
		if err != nil {
			return err
		}
		v, init, f := vif[0], vif[1], vif[2]
		if f.Kind() != types.KExpr {
			return errors.Errorf("fold expected a closure, got `%s`", f.GoString())
		}
		r, err := types.Fold(v, init, func(acc, t types.Value) (types.Value, error) {
			return e.Apply2(f, acc, t)
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("fold1", func(e *eval.Env) error {
		vf, err := e.PopN(2)
		if err != nil {
			return err
		}
		v, f := vf[0], vf[1]
		if f.Kind() != types.KExpr {
			return errors.Errorf("fold1 expected a closure, got `%s`", f.GoString())
		}
		vec, err := v.ToVec()
		if err != nil {
			return err
		}
		elems := vec.VecElems()
		if len(elems) == 0 {
			return errors.New("fold1 on an empty collection")
		}
		r, err := types.Fold(types.VecFrom(elems[1:]), elems[0], func(acc, t types.Value) (types.Value, error) {
			return e.Apply2(f, acc, t)
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("scan", func(e *eval.Env) error {
		vif, err := e.PopN(3)
		if err != nil {
			return err
		}
		v, init, f := vif[0], vif[1], vif[2]
		if f.Kind() != types.KExpr {
			return errors.Errorf("scan expected a closure, got `%s`", f.GoString())
		}
		r, err := types.Scan(v, init, func(acc, t types.Value) (types.Value, error) {
			return e.Apply2(f, acc, t)
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})

	eval.Register("sort/", func(e *eval.Env) error {
		vf, err := e.PopN(2)
		if err != nil {
			return err
		}
		v, f := vf[0], vf[1]
		if f.Kind() != types.KExpr {
			return errors.Errorf("sort/ expected a closure, got `%s`", f.GoString())
		}
		r, err := types.SortedBy(v, func(a, b types.Value) (int, error) {
			c, err := e.Apply2(f, a, b)
			if err != nil {
				return 0, err
			}
			return int(c.ToI32()), nil
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("sort#", func(e *eval.Env) error {
		vf, err := e.PopN(2)
		if err != nil {
			return err
		}
		v, f := vf[0], vf[1]
		if f.Kind() != types.KExpr {
			return errors.Errorf("sort# expected a closure, got `%s`", f.GoString())
		}
		r, err := types.SortedBy(v, func(a, b types.Value) (int, error) {
			ka, err := e.Apply1(f, a)
			if err != nil {
				return 0, err
			}
			kb, err := e.Apply1(f, b)
			if err != nil {
				return 0, err
			}
			return types.Compare(ka, kb), nil
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})

	eval.Register("zip", func(e *eval.Env) error {
		abf, err := e.PopN(3)
		if err != nil {
			return err
		}
		a, b, f := abf[0], abf[1], abf[2]
		if f.Kind() != types.KExpr {
			return errors.Errorf("zip expected a closure, got `%s`", f.GoString())
		}
		zipped, err := types.Zip(a, b)
		if err != nil {
			return err
		}
		r, err := types.FlatMap(zipped, func(pair types.Value) (types.Value, error) {
			elems := pair.VecElems()
			out, err := e.Apply2(f, elems[0], elems[1])
			if err != nil {
				return types.Value{}, err
			}
			return types.VecOf(out), nil
		})
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
	eval.Register("zipR", func(e *eval.Env) error {
		ab, err := e.PopN(2)
		if err != nil {
			return err
		}
		r, err := types.Zip(ab[0], ab[1])
		if err != nil {
			return err
		}
		e.Push(r)
		return nil
	})
}

// closureOverCarrier registers a builtin of the stack shape `carrier
// closure -- result`, delegating to op once both operands are popped.
func closureOverCarrier(op func(e *eval.Env, v, f types.Value) (types.Value, error)) eval.BuiltinFunc {
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

// takeDropWhile implements tk?/dp?: take, resp. drop, the longest prefix
// for which f holds, materializing v first since the prefix length isn't
// known ahead of a scan.
func takeDropWhile(e *eval.Env, v, f types.Value, take bool) (types.Value, error) {
	vec, err := v.ToVec()
	if err != nil {
		return types.Value{}, err
	}
	elems := vec.VecElems()
	i := 0
	for ; i < len(elems); i++ {
		r, err := e.Apply1(f, elems[i])
		if err != nil {
			return types.Value{}, err
		}
		if !r.Bool() {
			break
		}
	}
	if take {
		return types.VecFrom(elems[:i]), nil
	}
	return types.VecFrom(elems[i:]), nil
}

func closureOverCarrierBool(op func(e *eval.Env, v, f types.Value) (bool, error)) eval.BuiltinFunc {
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
		e.Push(types.Bool(r))
		return nil
	}
}
