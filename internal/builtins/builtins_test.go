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

package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/molarmanful/euphrates/internal/builtins"
	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/types"
)

func run(t *testing.T, src string) []types.Value {
	t.Helper()
	e, err := eval.RunString(src)
	require.NoError(t, err)
	return e.Stack()
}

func TestStackOps(t *testing.T) {
	st := run(t, "1 2 swap")
	require.Len(t, st, 2)
	assert.True(t, types.Equal(types.I32(2), st[0]))
	assert.True(t, types.Equal(types.I32(1), st[1]))
}

func TestArithmeticAndComparison(t *testing.T) {
	st := run(t, "1 2 + 3 =")
	require.Len(t, st, 1)
	assert.True(t, st[0].Bool())
}

func TestDipRestoresSavedValue(t *testing.T) {
	st := run(t, "1 2 (10 +) dip")
	require.Len(t, st, 2)
	assert.True(t, types.Equal(types.I32(11), st[0]))
	assert.True(t, types.Equal(types.I32(2), st[1]))
}

func TestSubRunsClosureAgainstIsolatedStack(t *testing.T) {
	st := run(t, "[1 2 3] (+) sub")
	require.Len(t, st, 1)
	require.Equal(t, types.KVec, st[0].Kind())
}

func TestMapOverVec(t *testing.T) {
	st := run(t, "[1 2 3] (($x)-> $x 1 +) map")
	require.Len(t, st, 1)
	got := st[0].VecElems()
	want := []int32{2, 3, 4}
	for i, w := range want {
		assert.True(t, types.Equal(types.I32(w), got[i]))
	}
}

func TestFoldSum(t *testing.T) {
	st := run(t, "[1 2 3 4] 0 (+) fold")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(10), st[0]))
}

func TestCoalesceStopsOnNone(t *testing.T) {
	st := run(t, "None ? 99")
	require.Len(t, st, 1)
	assert.Equal(t, types.KOpt, st[0].Kind())
}

func TestCoalescePassesThroughSome(t *testing.T) {
	st := run(t, "1 Some ? 99 +")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(100), st[0]))
}

func TestConditionalInvoke(t *testing.T) {
	st := run(t, "True (1) (2) &|#")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(1), st[0]))

	st = run(t, "False (1) (2) &|#")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(2), st[0]))
}

func TestIndexingFamily(t *testing.T) {
	st := run(t, "[10 20 30] 1 :")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(20), st[0]))
}

func TestCollectionConstructors(t *testing.T) {
	st := run(t, "1 2 3 *Vec")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 3)
}

func TestBackFrontRemoval(t *testing.T) {
	st := run(t, "[1 2 3] :-")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 2)
	assert.True(t, types.Equal(types.I32(1), st[0].VecElems()[0]))

	st = run(t, "[1 2 3] -:")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 2)
	assert.True(t, types.Equal(types.I32(2), st[0].VecElems()[0]))
}

func TestDelScansByValue(t *testing.T) {
	st := run(t, "[1 2 3] 2 del")
	require.Len(t, st, 1)
	got := st[0].VecElems()
	require.Len(t, got, 2)
	assert.True(t, types.Equal(types.I32(1), got[0]))
	assert.True(t, types.Equal(types.I32(3), got[1]))
}

func TestUpdateEndClosures(t *testing.T) {
	st := run(t, "[1 2 3] (10 +) :~")
	require.Len(t, st, 1)
	got := st[0].VecElems()
	require.Len(t, got, 3)
	assert.True(t, types.Equal(types.I32(13), got[2]))

	st = run(t, "[1 2 3] (10 +) ~:")
	require.Len(t, st, 1)
	got = st[0].VecElems()
	require.Len(t, got, 3)
	assert.True(t, types.Equal(types.I32(11), got[0]))
}

func TestMov(t *testing.T) {
	st := run(t, "[1 2 3] 0 2 mov")
	require.Len(t, st, 1)
	got := st[0].VecElems()
	want := []int32{2, 3, 1}
	for i, w := range want {
		assert.True(t, types.Equal(types.I32(w), got[i]))
	}
}

func TestZipNAndCprodN(t *testing.T) {
	st := run(t, "[[1 2] [3 4]] zipN")
	require.Len(t, st, 1)
	rows := st[0].VecElems()
	require.Len(t, rows, 2)
	assert.True(t, types.Equal(types.I32(1), rows[0].VecElems()[0]))
	assert.True(t, types.Equal(types.I32(3), rows[0].VecElems()[1]))

	st = run(t, "[[1 2] [3 4]] cprodN")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 4)
}

func TestMapRProvidesIndex(t *testing.T) {
	st := run(t, "[10 20 30] (($i $x)-> $i $x +) mapR")
	require.Len(t, st, 1)
	got := st[0].VecElems()
	want := []int32{10, 21, 32}
	for i, w := range want {
		assert.True(t, types.Equal(types.I32(w), got[i]))
	}
}

func TestResCatchesErrorsAndWrongArity(t *testing.T) {
	st := run(t, "(1 0 /) #Res")
	require.Len(t, st, 1)
	assert.Equal(t, types.KRes, st[0].Kind())
	_, ok := st[0].TryUnwrapOk()
	assert.False(t, ok)

	st = run(t, "(1 2 +) #Res")
	require.Len(t, st, 1)
	inner, ok := st[0].TryUnwrapOk()
	require.True(t, ok)
	assert.True(t, types.Equal(types.I32(3), inner))

	st = run(t, "(1 2) #Res")
	require.Len(t, st, 1)
	assert.Equal(t, types.KRes, st[0].Kind())
	_, ok = st[0].TryUnwrapOk()
	assert.False(t, ok)
}

func TestMapWrapOne(t *testing.T) {
	st := run(t, "[1 2] Map")
	require.Len(t, st, 1)
	require.Equal(t, types.KMap, st[0].Kind())
	v, ok := st[0].Get(types.I32(1))
	require.True(t, ok)
	assert.True(t, types.Equal(types.I32(2), v))
}

func TestExprStarAndHashQuoteTheStack(t *testing.T) {
	st := run(t, "1 2 *Expr #")
	require.Len(t, st, 2)
	assert.True(t, types.Equal(types.I32(1), st[0]))
	assert.True(t, types.Equal(types.I32(2), st[1]))

	st = run(t, "(1 2 +) #Expr #")
	require.Len(t, st, 1)
	assert.True(t, types.Equal(types.I32(3), st[0]))
}

func TestChunkPositiveAndNegative(t *testing.T) {
	st := run(t, "[0 1 2 3 4 5 6 7 8 9] 4 chunk")
	require.Len(t, st, 1)
	groups := st[0].VecElems()
	require.Len(t, groups, 3)
	assert.Len(t, groups[0].VecElems(), 4)
	assert.Len(t, groups[1].VecElems(), 4)
	assert.Len(t, groups[2].VecElems(), 2)

	st = run(t, "[0 1 2 3 4 5 6 7 8 9] -3 chunk")
	require.Len(t, st, 1)
	groups = st[0].VecElems()
	require.Len(t, groups, 3)
	assert.Len(t, groups[0].VecElems(), 4)
	assert.Len(t, groups[1].VecElems(), 3)
	assert.Len(t, groups[2].VecElems(), 3)
}

func TestWindowIsDivvyByOne(t *testing.T) {
	st := run(t, "[1 2 3 4] 2 window")
	require.Len(t, st, 1)
	windows := st[0].VecElems()
	require.Len(t, windows, 3)
	assert.True(t, types.Equal(types.I32(1), windows[0].VecElems()[0]))
	assert.True(t, types.Equal(types.I32(2), windows[0].VecElems()[1]))
	assert.True(t, types.Equal(types.I32(3), windows[2].VecElems()[0]))
	assert.True(t, types.Equal(types.I32(4), windows[2].VecElems()[1]))
}

func TestDivvyNegativeStepSpreadsEvenly(t *testing.T) {
	st := run(t, "[0 1 2 3 4 5 6 7 8 9] 3 -3 divvy")
	require.Len(t, st, 1)
	windows := st[0].VecElems()
	require.Len(t, windows, 3)
	assert.True(t, types.Equal(types.I32(0), windows[0].VecElems()[0]))
	assert.True(t, types.Equal(types.I32(3), windows[1].VecElems()[0]))
	assert.True(t, types.Equal(types.I32(7), windows[2].VecElems()[0]))
}

func TestTakeDropWhile(t *testing.T) {
	st := run(t, "[1 2 3 4 1] (3 <) tk?")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 2)

	st = run(t, "[1 2 3 4 1] (3 <) dp?")
	require.Len(t, st, 1)
	assert.Len(t, st[0].VecElems(), 3)
}
