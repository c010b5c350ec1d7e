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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molarmanful/euphrates/internal/types"
)

func TestArithSameKind(t *testing.T) {
	r, err := types.Arith(types.OpAdd, types.I32(2), types.I32(3))
	require.NoError(t, err)
	assert.Equal(t, types.I32(5), r)
}

func TestArithTowerPromotion(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Value
		want types.Value
	}{
		{"i32+i64", types.I32(2), types.I64(3), types.I64(5)},
		{"i64+ibig", types.I64(2), types.IBig(big.NewInt(3)), types.IBig(big.NewInt(5))},
		{"ibig+f64", types.IBig(big.NewInt(2)), types.F64(0.5), types.F64(2.5)},
		{"bool+i32", types.Bool(true), types.I32(1), types.I32(2)},
		{"char+i32", types.Char('a'), types.I32(1), types.I32(int32('a') + 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := types.Arith(types.OpAdd, tt.a, tt.b)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.want, r), "got %s want %s", r.GoString(), tt.want.GoString())
		})
	}
}

func TestArithI32OverflowErrors(t *testing.T) {
	_, err := types.Arith(types.OpAdd, types.I32(math.MaxInt32), types.I32(1))
	assert.Error(t, err)
}

func TestArithDivByZeroErrors(t *testing.T) {
	_, err := types.Arith(types.OpDiv, types.I32(1), types.I32(0))
	assert.Error(t, err)
}

func TestArithVecLifting(t *testing.T) {
	r, err := types.Arith(types.OpAdd, types.VecOf(types.I32(1), types.I32(2)), types.I32(10))
	require.NoError(t, err)
	want := types.VecOf(types.I32(11), types.I32(12))
	assert.True(t, types.Equal(want, r))
}

func TestNeg(t *testing.T) {
	assert.True(t, types.Equal(types.I32(-5), types.I32(5).Neg()))
	assert.True(t, types.Equal(types.F64(-2.5), types.F64(2.5).Neg()))
}

func TestPowNegativeExponentPromotesToFloat(t *testing.T) {
	r, err := types.Arith(types.OpPow, types.I32(2), types.I32(-1))
	require.NoError(t, err)
	assert.Equal(t, types.KF64, r.Kind())
}
