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

import (
	"strconv"
	"strings"
)

// GoString renders v the way the `>str` builtin and the REPL's
// result line do (spec §6.2/§7): Str unwraps to its own text (so `++` on a
// Str and anything else stringifies the other side in place), everything
// else renders as a literal that would re-parse to an equal value where
// that's practical.
func (v Value) GoString() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// String implements fmt.Stringer as GoString, so %v/%s on a Value in log
// or error-wrapping call sites renders sensibly without an explicit call.
func (v Value) String() string { return v.GoString() }

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case KBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KI32:
		b.WriteString(strconv.FormatInt(int64(v.i32), 10))
	case KI64:
		b.WriteString(strconv.FormatInt(v.i64, 10))
		b.WriteString("i64")
	case KIBig:
		b.WriteString(v.ibig.String())
		b.WriteString("ibig")
	case KF32:
		b.WriteString(strconv.FormatFloat(float64(v.f32), 'g', -1, 32))
	case KF64:
		b.WriteString(strconv.FormatFloat(v.f64, 'g', -1, 64))
	case KChar:
		b.WriteByte('\'')
		b.WriteRune(v.ch)
	case KStr:
		b.WriteString(v.str)
	case KWord:
		b.WriteByte('$')
		b.WriteString(v.str)
	case KOpt:
		t, ok := v.optVal()
		if !ok {
			b.WriteString("none")
			return
		}
		b.WriteString("some(")
		writeValue(b, t)
		b.WriteByte(')')
	case KRes:
		t, ok := v.resVal_()
		if ok {
			b.WriteString("ok(")
		} else {
			b.WriteString("err(")
		}
		writeValue(b, t)
		b.WriteByte(')')
	case KVec:
		b.WriteByte('[')
		for i, t := range v.vec {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, t)
		}
		b.WriteByte(']')
	case KMap:
		b.WriteByte('{')
		for i, k := range v.mp.keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			val, _ := v.mp.Get(k)
			writeValue(b, k)
			b.WriteByte(' ')
			writeValue(b, val)
		}
		b.WriteByte('}')
	case KSet:
		b.WriteString("{#")
		for i, k := range v.set.keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, k)
		}
		b.WriteByte('}')
	case KExpr:
		b.WriteByte('(')
		for i, n := range v.expr {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSynNode(b, n)
		}
		b.WriteByte(')')
	case KSeq:
		b.WriteString("<seq>")
	}
}

func writeSynNode(b *strings.Builder, n SynNode) {
	switch n.kind {
	case SynRaw:
		writeValue(b, n.raw)
	case SynVar:
		b.WriteByte('$')
		b.WriteString(n.name)
	case SynVec:
		b.WriteByte('[')
		for i, c := range n.nodes {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSynNode(b, c)
		}
		b.WriteByte(']')
	case SynMap:
		b.WriteByte('{')
		for i, c := range n.nodes {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSynNode(b, c)
		}
		b.WriteByte('}')
	case SynExpr:
		b.WriteByte('(')
		for i, c := range n.nodes {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSynNode(b, c)
		}
		b.WriteByte(')')
	}
}
