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

// SynKind identifies which shape of syntactic node a SynNode is (spec §3.2).
type SynKind uint8

const (
	// SynRaw is a ready-to-push literal.
	SynRaw SynKind = iota
	// SynVar is a scope lookup request (`$word`).
	SynVar
	// SynVec is a `[...]` structural grouping node.
	SynVec
	// SynMap is a `{...}` structural grouping node.
	SynMap
	// SynExpr is a `(...)` structural grouping node — quoted code.
	SynExpr
)

// SynNode is a syntactic node as delivered by the parser: the evaluator
// converts these into Values before pushing or applying them (§4.5.1). Expr
// values carry SynNode slices verbatim rather than pre-evaluated Values, so
// that Var lookups inside a quoted expression resolve in the invocation
// scope rather than the definition scope (spec §9 "Quoted code as data").
type SynNode struct {
	kind  SynKind
	raw   Value
	name  string
	nodes []SynNode
}

// Raw builds a SynRaw node wrapping an already-constructed literal value.
func Raw(v Value) SynNode { return SynNode{kind: SynRaw, raw: v} }

// Var builds a SynVar node naming a scope lookup.
func Var(name string) SynNode { return SynNode{kind: SynVar, name: name} }

// VecNode builds a SynVec grouping node.
func VecNode(nodes []SynNode) SynNode { return SynNode{kind: SynVec, nodes: nodes} }

// MapNode builds a SynMap grouping node.
func MapNode(nodes []SynNode) SynNode { return SynNode{kind: SynMap, nodes: nodes} }

// ExprNode builds a SynExpr grouping node (quoted code).
func ExprNode(nodes []SynNode) SynNode { return SynNode{kind: SynExpr, nodes: nodes} }

func (n SynNode) Kind() SynKind    { return n.kind }
func (n SynNode) RawValue() Value  { return n.raw }
func (n SynNode) Name() string     { return n.name }
func (n SynNode) Nodes() []SynNode { return n.nodes }

// AsExprValue wraps nodes directly as an Expr Value, e.g. when a Word
// resolves to a quoted expression already stored in scope.
func AsExprValue(nodes []SynNode) Value { return ExprFrom(nodes) }
