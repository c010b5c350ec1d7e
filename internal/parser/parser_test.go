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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molarmanful/euphrates/internal/parser"
	"github.com/molarmanful/euphrates/internal/types"
)

func TestParseNumberLiterals(t *testing.T) {
	nodes, err := parser.Parse("123 123i64 123ibig 1.5 1.5f32 1e3")
	require.NoError(t, err)
	require.Len(t, nodes, 6)
	assert.Equal(t, types.KIBig, nodes[0].RawValue().Kind())
	assert.Equal(t, types.KI64, nodes[1].RawValue().Kind())
	assert.Equal(t, types.KIBig, nodes[2].RawValue().Kind())
	assert.Equal(t, types.KF64, nodes[3].RawValue().Kind())
	assert.Equal(t, types.KF32, nodes[4].RawValue().Kind())
	assert.Equal(t, types.KF64, nodes[5].RawValue().Kind())
}

func TestParseStringEscapes(t *testing.T) {
	nodes, err := parser.Parse(`"a\nb\t\"c\""`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "a\nb\t\"c\"", nodes[0].RawValue().GoString())
}

func TestParseStringLineContinuation(t *testing.T) {
	nodes, err := parser.Parse("\"a\\\nb\"")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "ab", nodes[0].RawValue().GoString())
}

func TestParseUnterminatedStringAutoCloses(t *testing.T) {
	nodes, err := parser.Parse(`"abc`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, types.KStr, nodes[0].RawValue().Kind())
}

func TestParseUnterminatedCharErrors(t *testing.T) {
	_, err := parser.Parse(`'`)
	assert.Error(t, err)
}

func TestParseGroups(t *testing.T) {
	nodes, err := parser.Parse("(dup +) [1 2 3] {1 2}")
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, types.SynExpr, nodes[0].Kind())
	assert.Equal(t, types.SynVec, nodes[1].Kind())
	assert.Equal(t, types.SynMap, nodes[2].Kind())
}

func TestParseUnterminatedGroupAutoCloses(t *testing.T) {
	nodes, err := parser.Parse("(dup +")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, types.SynExpr, nodes[0].Kind())
}

func TestParseVar(t *testing.T) {
	nodes, err := parser.Parse("$x")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, types.SynVar, nodes[0].Kind())
	assert.Equal(t, "x", nodes[0].Name())
}
