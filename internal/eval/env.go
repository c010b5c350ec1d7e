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

// Package eval implements the stack-machine evaluator: token dispatch,
// scope lookup, quoted-code invocation, sub-frame evaluation, argument
// binding, and early termination (spec §4.5). Construction follows the
// teacher's (db47h/ngaro) functional-options pattern (vm.Option, vm.New).
package eval

import (
	"bufio"
	"io"
	"maps"
	"os"

	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/parser"
	"github.com/molarmanful/euphrates/internal/types"
)

// Scope is a name → value mapping with copy-on-write semantics (spec §3.3):
// a child frame clones it cheaply and its own bindings never leak back to
// the parent. A plain cloned Go map stands in for a persistent HAMT here —
// no persistent-map library appears anywhere in the retrieval pack (see
// DESIGN.md), and clone-per-frame is the simplest faithful rendering of
// "copy-on-write" for a tree-walking evaluator whose frame depth is bounded
// by the host call stack already (spec §5).
type Scope map[string]types.Value

// Clone returns an independent copy of s.
func (s Scope) Clone() Scope { return maps.Clone(s) }

// BuiltinFunc is a named operator in the catalogue (spec §4.6): it acts
// directly on the evaluator state, typically popping arguments off the
// stack and pushing results.
type BuiltinFunc func(*Env) error

var builtins = map[string]BuiltinFunc{}

// Register adds a builtin to the catalogue under name. Builtin families
// (internal/builtins) call this from their init() funcs, mirroring the
// teacher's single flat opcode table (vm/core.go) built from many small
// per-op definitions.
func Register(name string, fn BuiltinFunc) {
	if _, dup := builtins[name]; dup {
		panic("eval: duplicate builtin " + name)
	}
	builtins[name] = fn
}

// Env is the evaluator state of spec §3.4: queue (remaining syntactic
// nodes), stack (operand stack), and scope.
type Env struct {
	queue []types.SynNode
	stack []types.Value
	scope Scope

	stdin    io.Reader
	stdinBuf *bufio.Reader
	stdout   io.Writer

	depth    int
	maxDepth int
}

// Option configures a new Env, following the teacher's vm.Option pattern
// (vm/vm.go: DataSize, AddressSize, Input, Output, Shrink).
type Option func(*Env)

// Stdin sets the reader backing the `read`/`readL` builtins.
func Stdin(r io.Reader) Option { return func(e *Env) { e.stdin = r } }

// Stdout sets the writer backing the `print`/`printL` builtins.
func Stdout(w io.Writer) Option { return func(e *Env) { e.stdout = w } }

// MaxDepth bounds non-tail child-frame nesting (spec §5 "bounded only by
// the host call stack"); 0 means unbounded.
func MaxDepth(n int) Option { return func(e *Env) { e.maxDepth = n } }

// WithScope seeds the new Env's scope, e.g. to carry REPL state across
// turns (SPEC_FULL.md §C.8).
func WithScope(s Scope) Option { return func(e *Env) { e.scope = s.Clone() } }

// WithStack seeds the new Env's initial stack.
func WithStack(vs []types.Value) Option {
	return func(e *Env) { e.stack = append([]types.Value(nil), vs...) }
}

// New constructs an Env ready to evaluate, applying opts over the defaults
// (empty stack/scope, stdin/stdout from the process).
func New(opts ...Option) *Env {
	e := &Env{
		scope:  make(Scope),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Stack returns the current operand stack, top-last (spec §3.4). The
// returned slice must not be mutated by the caller.
func (e *Env) Stack() []types.Value { return e.stack }

// Scope returns the current scope. The returned map must not be mutated
// by the caller.
func (e *Env) Scope() Scope { return e.scope }

// Stdin/Stdout expose the Env's I/O streams to builtins.
func (e *Env) Stdin() io.Reader  { return e.stdin }
func (e *Env) Stdout() io.Writer { return e.stdout }

// BufStdin returns a buffered reader over Stdin, created once and reused
// across calls so `read`/`readL` don't drop look-ahead bytes buffered by a
// fresh bufio.Reader on every invocation.
func (e *Env) BufStdin() *bufio.Reader {
	if e.stdinBuf == nil {
		e.stdinBuf = bufio.NewReader(e.stdin)
	}
	return e.stdinBuf
}

// Push appends v to the top of the stack.
func (e *Env) Push(v types.Value) { e.stack = append(e.stack, v) }

// Pop removes and returns the top of the stack, failing with an Arity
// error if the stack is empty (spec §7).
func (e *Env) Pop() (types.Value, error) {
	if len(e.stack) == 0 {
		return types.Value{}, errors.New("stack underflow")
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

// PopN pops n values and returns them in original (bottom-first) order.
func (e *Env) PopN(n int) ([]types.Value, error) {
	if len(e.stack) < n {
		return nil, errors.Errorf("stack underflow: needed %d, had %d", n, len(e.stack))
	}
	out := append([]types.Value(nil), e.stack[len(e.stack)-n:]...)
	e.stack = e.stack[:len(e.stack)-n]
	return out, nil
}

// Peek returns the top of the stack without removing it.
func (e *Env) Peek() (types.Value, error) {
	if len(e.stack) == 0 {
		return types.Value{}, errors.New("stack underflow")
	}
	return e.stack[len(e.stack)-1], nil
}

// ClearQueue empties the remaining queue, ending the current frame's
// dispatch loop immediately (spec §4.5.4 `?`).
func (e *Env) ClearQueue() { e.queue = nil }

// Prepend pushes nodes onto the front of the queue (spec §4.5.2 tail call).
func (e *Env) Prepend(nodes []types.SynNode) { e.queue = append(nodes, e.queue...) }

// QueueEmpty reports whether the current frame's queue has no more nodes
// (spec §4.5.2 "tail position").
func (e *Env) QueueEmpty() bool { return len(e.queue) == 0 }

// RunString parses source and evaluates it as a fresh top-level frame,
// implementing the `run` entry point of spec §6.2.
func RunString(source string, opts ...Option) (*Env, error) {
	nodes, err := parser.Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse failed")
	}
	e := New(opts...)
	if err := e.Eval(nodes); err != nil {
		return e, err
	}
	return e, nil
}

// Eval runs nodes to completion against e's existing stack/scope (the
// dispatch loop of spec §4.5.1), leaving the final stack in e.Stack().
func (e *Env) Eval(nodes []types.SynNode) error {
	e.queue = nodes
	for {
		if len(e.queue) == 0 {
			return nil
		}
		node := e.queue[0]
		e.queue = e.queue[1:]
		if err := e.step(node); err != nil {
			return err
		}
	}
}

// step converts one syntactic node to a value and dispatches it (spec
// §4.5.1 steps 2-4).
func (e *Env) step(node types.SynNode) error {
	switch node.Kind() {
	case types.SynRaw:
		return e.dispatchValue(node.RawValue())
	case types.SynVar:
		return e.dispatchValue(types.Word(node.Name()))
	case types.SynVec:
		v, err := e.materializeVec(node.Nodes())
		if err != nil {
			return err
		}
		e.Push(v)
		return nil
	case types.SynMap:
		v, err := e.materializeMap(node.Nodes())
		if err != nil {
			return err
		}
		e.Push(v)
		return nil
	case types.SynExpr:
		e.Push(types.AsExprValue(node.Nodes()))
		return nil
	default:
		return errors.Errorf("unknown syntactic node kind %d", node.Kind())
	}
}

// materializeVec evaluates nodes in a fresh child frame (so nested Words
// resolve and nested invocations run) and collects the resulting stack as
// the Vec's elements, per spec §4.5.1 step 2 "materialise by recursively
// converting and pushing into a fresh Vec".
func (e *Env) materializeVec(nodes []types.SynNode) (types.Value, error) {
	child, err := e.runChild(nodes)
	if err != nil {
		return types.Value{}, err
	}
	return types.VecFrom(child.stack), nil
}

// materializeMap evaluates nodes the same way as a Vec, then groups the
// resulting stack into key/value pairs (spec §4.5.1, §7 Structural errors
// on an odd element count).
func (e *Env) materializeMap(nodes []types.SynNode) (types.Value, error) {
	child, err := e.runChild(nodes)
	if err != nil {
		return types.Value{}, err
	}
	if len(child.stack)%2 != 0 {
		return types.Value{}, errors.New("Map literal requires an even number of elements")
	}
	m := types.NewOMap()
	for i := 0; i+1 < len(child.stack); i += 2 {
		m.Set(child.stack[i], child.stack[i+1])
	}
	return types.MapFrom(m), nil
}

// dispatchValue implements spec §4.5.1 step 3/4: a Word resolves against
// scope then the builtin table; anything else is simply pushed.
func (e *Env) dispatchValue(v types.Value) error {
	if v.Kind() != types.KWord {
		e.Push(v)
		return nil
	}
	name := v.WordName()
	if bound, ok := e.scope[name]; ok {
		if bound.Kind() == types.KExpr {
			return e.Invoke(bound)
		}
		e.Push(bound)
		return nil
	}
	if fn, ok := builtins[name]; ok {
		if err := fn(e); err != nil {
			return errors.Wrapf(err, "`%s` failed", name)
		}
		return nil
	}
	return errors.Errorf("unknown word `%s`", name)
}

// Invoke applies a quoted Expr value: in tail position (empty queue) its
// nodes are prepended onto the current queue (spec §4.5.2); otherwise a
// child frame runs it to completion and the child's final stack replaces
// the current stack.
func (e *Env) Invoke(expr types.Value) error {
	nodes := expr.ExprNodes()
	if e.QueueEmpty() {
		e.Prepend(nodes)
		return nil
	}
	child, err := e.runChild(nodes)
	if err != nil {
		return err
	}
	e.stack = child.stack
	return nil
}

// InvokeThenPush runs expr the same way Invoke does, then pushes after on
// top once expr's body has actually executed. A plain `e.Invoke(expr)`
// followed by `e.Push(after)` is wrong in tail position: Invoke's tail
// branch only *queues* expr's nodes and returns immediately, so a
// synchronous push right after it would land before expr's body ever
// runs. Builtins like `dip` that must restore a saved value once the
// closure completes use this instead of open-coding Invoke.
func (e *Env) InvokeThenPush(expr types.Value, after types.Value) error {
	nodes := expr.ExprNodes()
	if e.QueueEmpty() {
		e.Prepend(append(append([]types.SynNode(nil), nodes...), types.Raw(after)))
		return nil
	}
	child, err := e.runChild(nodes)
	if err != nil {
		return err
	}
	e.stack = child.stack
	e.Push(after)
	return nil
}

// runChild spawns a frame inheriting the current stack and scope,
// evaluates nodes to completion, and returns it (spec §3.4 "child frame").
// The child's scope is discarded by the caller; only its stack is used.
func (e *Env) runChild(nodes []types.SynNode) (*Env, error) {
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return nil, errors.New("maximum evaluation depth exceeded")
	}
	child := &Env{
		stack:    append([]types.Value(nil), e.stack...),
		scope:    e.scope.Clone(),
		stdin:    e.stdin,
		stdout:   e.stdout,
		depth:    e.depth + 1,
		maxDepth: e.maxDepth,
	}
	if err := child.Eval(nodes); err != nil {
		return child, err
	}
	return child, nil
}

// Apply1 invokes expr as a closure of arity 1: pushes arg onto a child
// frame (inheriting scope), evaluates expr, and expects the child to leave
// exactly one value on its stack, per original_source/src/env.rs's
// apply_n_1 convention (SPEC_FULL.md §C.7) — the bridge every Iteration
// Engine "_env" combinator uses to call a quoted Expr as a plain closure.
func (e *Env) Apply1(expr types.Value, arg types.Value) (types.Value, error) {
	return e.applyN(expr, []types.Value{arg}, 1)
}

// Apply2 is Apply1 generalized to two arguments (e.g. fold_env's
// accumulator+element, scan_env's seed+value), per apply_n_2.
func (e *Env) Apply2(expr types.Value, a, b types.Value) (types.Value, error) {
	return e.applyN(expr, []types.Value{a, b}, 1)
}

// Apply2Ret2 invokes expr with two arguments and expects exactly two
// results back, returned in stack order. No builtin calls it; `scan` uses
// Apply2.
func (e *Env) Apply2Ret2(expr types.Value, a, b types.Value) (types.Value, types.Value, error) {
	r, err := e.applyN(expr, []types.Value{a, b}, 2)
	if err != nil {
		return types.Value{}, types.Value{}, err
	}
	pair := r.VecElems()
	return pair[0], pair[1], nil
}

func (e *Env) applyN(expr types.Value, args []types.Value, nret int) (types.Value, error) {
	if expr.Kind() != types.KExpr {
		return types.Value{}, errors.Errorf("expected a closure, got `%s`", expr.GoString())
	}
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return types.Value{}, errors.New("maximum evaluation depth exceeded")
	}
	child := &Env{
		stack:    append([]types.Value(nil), args...),
		scope:    e.scope.Clone(),
		stdin:    e.stdin,
		stdout:   e.stdout,
		depth:    e.depth + 1,
		maxDepth: e.maxDepth,
	}
	if err := child.Eval(expr.ExprNodes()); err != nil {
		return types.Value{}, err
	}
	if len(child.stack) != nret {
		return types.Value{}, errors.Errorf("closure left %d values on the stack, expected %d", len(child.stack), nret)
	}
	if nret == 1 {
		return child.stack[0], nil
	}
	return types.VecFrom(child.stack), nil
}

// BindArgs implements `->` (spec §4.5.3): pops a quoted Expr of Word
// nodes, then for each Word in reverse order pops a stack value into the
// current scope.
func (e *Env) BindArgs(expr types.Value) error {
	names := expr.ExprWordNames()
	for i := len(names) - 1; i >= 0; i-- {
		v, err := e.Pop()
		if err != nil {
			return errors.Wrapf(err, "-> needs %d values to bind", len(names))
		}
		e.scope[names[i]] = v
	}
	return nil
}
