// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for the scope engine.
//
// It supports readline-style command editing, and interrupts through
// Control-C. Each line is a scopescript command; query commands print
// their result, and "help" lists the command language.
package repl // import "go.pyscope.net/repl"

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"go.pyscope.net/internal/scopescript"
)

// REPL executes a read, eval, print loop over a fresh scope registry.
func REPL() {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	in := scopescript.New("<stdin>")
	for {
		if err := rep(rl, in); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one command.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Script errors are printed.
func rep(rl *readline.Instance, in *scopescript.Interp) error {
	line, err := rl.Readline()
	if err != nil {
		return err // EOF or interrupt
	}
	out, err := in.Exec(line)
	if err != nil {
		PrintError(err)
	} else if out != "" {
		fmt.Println(out)
	}
	return nil
}

// ExecReader executes a script from r, one command per line, printing
// query results to stdout and failures to stderr. It returns an error if
// any line failed.
func ExecReader(filename string, r io.Reader) error {
	in := scopescript.New(filename)
	scanner := bufio.NewScanner(r)
	nerr := 0
	for linenum := 1; scanner.Scan(); linenum++ {
		out, err := in.ExecLine(linenum, scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", filename, linenum, err)
			nerr++
		} else if out != "" {
			fmt.Println(out)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if nerr > 0 {
		return fmt.Errorf("%s: %d command(s) failed", filename, nerr)
	}
	return nil
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
