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

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/molarmanful/euphrates/internal/builtins"
	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/parser"
	"github.com/molarmanful/euphrates/internal/types"
)

func mustParse(t *testing.T, src string) []types.SynNode {
	t.Helper()
	nodes, err := parser.Parse(src)
	require.NoError(t, err)
	return nodes
}

func TestPushLiteralsAndWords(t *testing.T) {
	e := eval.New()
	require.NoError(t, e.Eval(mustParse(t, "1 2 3 dup")))
	assert.Len(t, e.Stack(), 4)
}

func TestExprQuotesWithoutInvoking(t *testing.T) {
	e := eval.New()
	require.NoError(t, e.Eval(mustParse(t, "(1 2)")))
	require.Len(t, e.Stack(), 1)
	assert.Equal(t, types.KExpr, e.Stack()[0].Kind())
}

func TestTailInvocationViaHash(t *testing.T) {
	e := eval.New()
	require.NoError(t, e.Eval(mustParse(t, "(1 2) #")))
	assert.Len(t, e.Stack(), 2)
}

func TestBindArgs(t *testing.T) {
	e := eval.New()
	require.NoError(t, e.Eval(mustParse(t, "1 2 ($x $y)->")))
	assert.True(t, types.Equal(types.I32(1), e.Scope()["x"]))
	assert.True(t, types.Equal(types.I32(2), e.Scope()["y"]))
}

func TestUnknownWordErrors(t *testing.T) {
	e := eval.New()
	err := e.Eval(mustParse(t, "nosuchword"))
	assert.Error(t, err)
}

// recScope binds "rec" to a quoted expr that calls itself followed by a
// trailing literal, so every recursive step after the first is non-tail
// (the trailing literal keeps the queue non-empty across the call) and
// must spawn a child frame rather than reuse the loop.
func recScope() eval.Scope {
	body := []types.SynNode{types.Var("rec"), types.Raw(types.I64(9))}
	return eval.Scope{"rec": types.ExprFrom(body)}
}

func TestMaxDepthBoundsNonTailRecursion(t *testing.T) {
	e := eval.New(eval.MaxDepth(3), eval.WithScope(recScope()))
	err := e.Eval([]types.SynNode{types.Var("rec")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum evaluation depth exceeded")
}

func TestVecMaterializationRunsNestedWords(t *testing.T) {
	e := eval.New()
	require.NoError(t, e.Eval(mustParse(t, "[1 2 (3 4) #]")))
	require.Len(t, e.Stack(), 1)
	v := e.Stack()[0]
	require.Equal(t, types.KVec, v.Kind())
	assert.Len(t, v.VecElems(), 4)
}
