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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/molarmanful/euphrates/internal/builtins"
	"github.com/molarmanful/euphrates/internal/eval"
	"github.com/molarmanful/euphrates/internal/repl"
)

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	flag.BoolVar(&debug, "debug", false, "print errors with stack traces (%+v)")
	maxDepth := flag.Int("maxdepth", 0, "maximum non-tail evaluation frame depth (0 = unbounded)")
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		err = repl.Run(os.Stdout, os.Stdout.Fd())
		return
	}

	var src []byte
	if args[0] == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		return
	}

	opts := []eval.Option{eval.Stdin(os.Stdin), eval.Stdout(os.Stdout)}
	if *maxDepth > 0 {
		opts = append(opts, eval.MaxDepth(*maxDepth))
	}

	env, runErr := eval.RunString(string(src), opts...)
	if runErr != nil {
		err = runErr
		return
	}

	for _, v := range env.Stack() {
		fmt.Println(v.GoString())
	}
}
