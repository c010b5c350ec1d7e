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

package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/molarmanful/euphrates/internal/types"
)

type parser struct {
	lex  *lexer
	tok  token
	errs []error
}

// Parse turns source into the top-level sequence of syntactic nodes (spec
// §6.1): a flat token stream grouped only by `(...)`/`[...]`/`{...}`.
// Unterminated groups are auto-closed at EOF rather than treated as
// errors, per the grammar's own stated recovery rule.
func Parse(source string) ([]types.SynNode, error) {
	p := &parser{lex: newLexer(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	nodes, err := p.parseUntil(tokEOF)
	if err != nil {
		return nil, err
	}
	if len(p.errs) > 0 {
		msgs := make([]string, len(p.errs))
		for i, e := range p.errs {
			msgs[i] = e.Error()
		}
		return nodes, errors.New(strings.Join(msgs, "; "))
	}
	return nodes, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// parseUntil parses nodes until the current token is `closing` (or EOF,
// which always also ends a group — auto-close).
func (p *parser) parseUntil(closing tokKind) ([]types.SynNode, error) {
	var nodes []types.SynNode
	for {
		if p.tok.kind == tokEOF {
			return nodes, nil
		}
		if closing != tokEOF && p.tok.kind == closing {
			if err := p.advance(); err != nil {
				return nodes, err
			}
			return nodes, nil
		}
		n, err := p.parseNode()
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}
}

func (p *parser) parseNode() (types.SynNode, error) {
	switch p.tok.kind {
	case tokLParen:
		return p.parseGroup(tokRParen, types.ExprNode)
	case tokLBrack:
		return p.parseGroup(tokRBrack, types.VecNode)
	case tokLBrace:
		return p.parseGroup(tokRBrace, types.MapNode)
	case tokVar:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Var(name), nil
	case tokStr:
		v := types.Str(p.tok.text)
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(v), nil
	case tokRawStr:
		v := types.Str(p.tok.text)
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(v), nil
	case tokChar:
		v := types.Char(p.tok.ch)
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(v), nil
	case tokNum:
		v, err := parseNumLiteral(p.tok.text)
		if err != nil {
			return types.SynNode{}, err
		}
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(v), nil
	case tokWord:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(types.Word(name)), nil
	default:
		// A stray close-bracket with no matching open: consume it rather
		// than erroring and yield an empty Vec literal in its place.
		if err := p.advance(); err != nil {
			return types.SynNode{}, err
		}
		return types.Raw(types.VecOf()), nil
	}
}

func (p *parser) parseGroup(closing tokKind, wrap func([]types.SynNode) types.SynNode) (types.SynNode, error) {
	if err := p.advance(); err != nil { // consume opening bracket
		return types.SynNode{}, err
	}
	nodes, err := p.parseUntil(closing)
	if err != nil {
		return types.SynNode{}, err
	}
	return wrap(nodes), nil
}

// parseNumLiteral parses a numeric atom per spec §6.1: optional sign,
// digits, optional `.digits`, optional `[eE][+-]?digits`, optional type
// suffix (i32|i64|ibig|f32|f64). A bare integer literal becomes IBig; a
// bare real literal becomes F64 (spec's default-widest rule).
func parseNumLiteral(text string) (types.Value, error) {
	body, suffix := splitSuffix(text)
	isReal := strings.ContainsAny(body, ".eE")

	switch suffix {
	case "i32":
		n, err := strconv.ParseInt(body, 10, 32)
		if err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid i32 literal %q", text)
		}
		return types.I32(int32(n)), nil
	case "i64":
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid i64 literal %q", text)
		}
		return types.I64(n), nil
	case "ibig":
		n, ok := new(big.Int).SetString(body, 10)
		if !ok {
			return types.Value{}, errors.Errorf("invalid ibig literal %q", text)
		}
		return types.IBig(n), nil
	case "f32":
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid f32 literal %q", text)
		}
		return types.F32(float32(f)), nil
	case "f64":
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return types.Value{}, errors.Wrapf(err, "invalid f64 literal %q", text)
		}
		return types.F64(f), nil
	case "":
		if isReal {
			f, err := strconv.ParseFloat(body, 64)
			if err != nil {
				return types.Value{}, errors.Wrapf(err, "invalid numeric literal %q", text)
			}
			return types.F64(f), nil
		}
		n, ok := new(big.Int).SetString(body, 10)
		if !ok {
			return types.Value{}, errors.Errorf("invalid numeric literal %q", text)
		}
		return types.IBig(n), nil
	default:
		return types.Value{}, errors.Errorf("unknown numeric suffix in %q", text)
	}
}

var knownSuffixes = []string{"ibig", "i32", "i64", "f32", "f64"}

func splitSuffix(text string) (body, suffix string) {
	for _, s := range knownSuffixes {
		if strings.HasSuffix(text, s) {
			rest := text[:len(text)-len(s)]
			if rest != "" && (rest[len(rest)-1] < '0' || rest[len(rest)-1] > '9') {
				continue
			}
			if rest == "" {
				continue
			}
			return rest, s
		}
	}
	return text, ""
}
