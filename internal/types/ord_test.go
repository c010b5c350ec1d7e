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

package types_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/molarmanful/euphrates/internal/types"
)

func TestEqualCrossVariantNumeric(t *testing.T) {
	assert.True(t, types.Equal(types.I32(1), types.I64(1)))
	assert.True(t, types.Equal(types.I32(1), types.F64(1.0)))
	assert.False(t, types.Equal(types.I32(1), types.I32(2)))
}

func TestEqualCollections(t *testing.T) {
	a := types.VecOf(types.I32(1), types.I32(2))
	b := types.VecOf(types.I64(1), types.I64(2))
	assert.True(t, types.Equal(a, b))
}

func TestCompareNaNLast(t *testing.T) {
	nan := types.F64(math.NaN())
	one := types.F64(1.0)
	assert.Equal(t, 1, types.Compare(nan, one))
	assert.Equal(t, -1, types.Compare(one, nan))
	assert.Equal(t, 0, types.Compare(nan, nan))
}

func TestCompareEqvRankTieBreak(t *testing.T) {
	// I32(1) and I64(1) are numerically equal but must still have a
	// deterministic, stable relative order for sort idempotence (spec
	// §8.3, SPEC_FULL.md §C.4).
	c1 := types.Compare(types.I32(1), types.I64(1))
	c2 := types.Compare(types.I64(1), types.I32(1))
	assert.NotEqual(t, 0, c1)
	assert.Equal(t, -c1, c2)
}

func TestSortedByCompareIsStableUnderRepeatedSort(t *testing.T) {
	vs := []types.Value{types.I64(1), types.I32(1), types.F64(1), types.I32(0)}
	sort.SliceStable(vs, func(i, j int) bool { return types.Less(vs[i], vs[j]) })
	first := append([]types.Value(nil), vs...)
	sort.SliceStable(vs, func(i, j int) bool { return types.Less(vs[i], vs[j]) })
	for i := range vs {
		assert.True(t, types.Equal(first[i], vs[i]) && first[i].Kind() == vs[i].Kind())
	}
}
