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
	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("<=>", func(e *eval.Env) error {
		ab, err := e.PopN(2)
		if err != nil {
			return err
		}
		e.Push(types.I32(int32(types.Compare(ab[0], ab[1]))))
		return nil
	})
	registerCmp("=", func(c int) bool { return c == 0 }, true)
	registerCmp("!=", func(c int) bool { return c != 0 }, true)
	registerCmp("<", func(c int) bool { return c < 0 }, false)
	registerCmp("<=", func(c int) bool { return c <= 0 }, false)
	registerCmp(">", func(c int) bool { return c > 0 }, false)
	registerCmp(">=", func(c int) bool { return c >= 0 }, false)
}

// registerCmp registers a binary comparison builtin. `=`/`!=` use
// structural Equal directly (so e.g. two Vecs compare by contents without
// going through Compare's rank fallback); ordering operators use Compare.
func registerCmp(name string, test func(int) bool, useEqual bool) {
	eval.Register(name, func(e *eval.Env) error {
		ab, err := e.PopN(2)
		if err != nil {
			return err
		}
		var result bool
		if useEqual {
			eq := types.Equal(ab[0], ab[1])
			if name == "!=" {
				result = !eq
			} else {
				result = eq
			}
		} else {
			result = test(types.Compare(ab[0], ab[1]))
		}
		e.Push(types.Bool(result))
		return nil
	})
}
