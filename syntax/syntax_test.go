// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"testing"

	"go.pyscope.net/syntax"
)

func TestPosition(t *testing.T) {
	file := "a/b.py"
	p := syntax.MakePosition(&file, 7, 3)
	if !p.IsValid() {
		t.Error("IsValid = false")
	}
	if got, want := p.String(), "a/b.py:7:3"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	if got, want := p.Filename(), "a/b.py"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}

	var zero syntax.Position
	if zero.IsValid() {
		t.Error("zero position IsValid = true")
	}
	if got, want := zero.String(), "<invalid>"; got != want {
		t.Errorf("zero String = %q, want %q", got, want)
	}
}

func TestIdentSpan(t *testing.T) {
	file := "b.py"
	id := &syntax.Ident{
		NamePos: syntax.MakePosition(&file, 2, 5),
		Name:    "count",
	}
	start, end := id.Span()
	if got, want := start.String(), "b.py:2:5"; got != want {
		t.Errorf("start = %q, want %q", got, want)
	}
	if got, want := end.String(), "b.py:2:10"; got != want {
		t.Errorf("end = %q, want %q", got, want)
	}
	if got := syntax.Start(id); got != start {
		t.Errorf("Start = %v, want %v", got, start)
	}
	if got := syntax.End(id); got != end {
		t.Errorf("End = %v, want %v", got, end)
	}
}
