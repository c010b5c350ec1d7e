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

// External IO family (spec §4.6 "IO (external)"). These are the only
// builtins that touch the Env's stdin/stdout streams; everything else is
// pure over the stack (spec §5 "no I/O is interleaved with evaluation
// except through the blocking read/readL primitives").
package builtins

import (
	"fmt"
	"io"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func init() {
	eval.Register("read", func(e *eval.Env) error {
		r := e.BufStdin()
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				e.Push(types.None())
				return nil
			}
			return err
		}
		e.Push(types.Some(types.Char(rune(b))))
		return nil
	})
	eval.Register("readL", func(e *eval.Env) error {
		r := e.BufStdin()
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				e.Push(types.None())
				return nil
			}
			return err
		}
		line = trimNewline(line)
		e.Push(types.Some(types.Str(line)))
		return nil
	})
	eval.Register("print", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(e.Stdout(), v.GoString())
		return err
	})
	eval.Register("printL", func(e *eval.Env) error {
		v, err := e.Pop()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.Stdout(), v.GoString())
		return err
	})
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
		if n > 0 && s[n-1] == '\r' {
			n--
		}
	}
	return s[:n]
}
