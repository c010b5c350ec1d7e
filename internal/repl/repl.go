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

// Package repl implements an interactive line-editing REPL over the
// evaluator: each line runs in a frame that inherits the previous turn's
// stack and scope (SPEC_FULL.md §C.8), generalizing the teacher's
// (db47h/ngaro) cmd/retro interactive mode with line editing and history
// from github.com/chzyer/readline instead of hand-rolled raw-terminal code.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/parser"
)

const prompt = "euphrates> "

// Run drives an interactive session against stdin/stdout, evaluating each
// line against a scope/stack carried forward from the prior turn. It
// returns when the user exits (Ctrl-D / `.exit`) or readline fails.
func Run(stdout io.Writer, stdoutFD uintptr) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return errors.Wrap(err, "readline init failed")
	}
	defer rl.Close()

	colorize := term.IsTerminal(int(stdoutFD))
	errColor := color.New(color.FgRed)
	resColor := color.New(color.FgGreen)

	env := eval.New(eval.Stdout(stdout))

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}
		nodes, perr := parser.Parse(line)
		if perr != nil {
			printErr(errColor, colorize, stdout, perr)
			continue
		}
		if err := env.Eval(nodes); err != nil {
			printErr(errColor, colorize, stdout, err)
			continue
		}
		printStack(resColor, colorize, stdout, env)
	}
}

func printErr(c *color.Color, colorize bool, w io.Writer, err error) {
	msg := err.Error()
	if colorize {
		c.Fprintln(w, msg)
		return
	}
	fmt.Fprintln(w, msg)
}

func printStack(c *color.Color, colorize bool, w io.Writer, env *eval.Env) {
	stack := env.Stack()
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = v.GoString()
	}
	line := strings.Join(parts, " ")
	if colorize {
		c.Fprintln(w, line)
		return
	}
	fmt.Fprintln(w, line)
}
