// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The pyscope command runs scope scripts against the resolution engine.
// With no arguments and a terminal on stdin, it starts a
// read-eval-print loop (REPL); with piped input it reads a script from
// stdin.
package main // import "go.pyscope.net/cmd/pyscope"

import (
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"golang.org/x/term"

	"go.pyscope.net/repl"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	execprog   = flag.String("c", "", "execute program `prog`")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("pyscope: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(err)
			err = f.Close()
			check(err)
		}()
	}

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      *strings.Reader
		)
		if *execprog != "" {
			// Execute provided program.
			filename = "cmdline"
			src = strings.NewReader(*execprog)
			if err := repl.ExecReader(filename, src); err != nil {
				return 1
			}
		} else {
			// Execute specified file.
			filename = flag.Arg(0)
			f, err := os.Open(filename)
			if err != nil {
				repl.PrintError(err)
				return 1
			}
			defer f.Close()
			if err := repl.ExecReader(filename, f); err != nil {
				return 1
			}
		}
	case flag.NArg() == 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			repl.REPL()
		} else if err := repl.ExecReader("<stdin>", os.Stdin); err != nil {
			return 1
		}
	default:
		log.Print("want at most one scope script file name")
		return 1
	}
	return 0
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
