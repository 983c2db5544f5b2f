// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.pyscope.net/types"
)

func TestJoinNeutralElement(t *testing.T) {
	if got := types.Join(nil, nil); got != types.Unknown {
		t.Errorf("Join(nil, nil) = %v, want Unknown", got)
	}
	if got := types.Join(nil, types.Int); got != types.Int {
		t.Errorf("Join(nil, int) = %v, want int", got)
	}
	if got := types.Join(types.Unknown, types.Int); got != types.Int {
		t.Errorf("Join(?, int) = %v, want int", got)
	}
	if got := types.Join(types.Int, types.Unknown); got != types.Int {
		t.Errorf("Join(int, ?) = %v, want int", got)
	}
	if got := types.Join(types.Unknown, types.Unknown); got != types.Unknown {
		t.Errorf("Join(?, ?) = %v, want Unknown", got)
	}
}

func TestJoinIdempotent(t *testing.T) {
	if got := types.Join(types.Int, types.Int); got != types.Int {
		t.Errorf("Join(int, int) = %v, want int", got)
	}
	u := types.Join(types.Int, types.Str)
	if got := types.Join(u, u); got != u {
		t.Errorf("Join(u, u) = %v, want u", got)
	}
	if got := types.Join(u, types.Int).String(); got != "int|str" {
		t.Errorf("Join(int|str, int) = %q, want %q", got, "int|str")
	}
}

func TestJoinCommutesAndFlattens(t *testing.T) {
	ab := types.Join(types.Int, types.Str)
	ba := types.Join(types.Str, types.Int)
	if ab.String() != ba.String() {
		t.Errorf("Join not commutative: %q vs %q", ab, ba)
	}

	// Nested joins flatten; grouping does not matter.
	left := types.Join(types.Join(types.Int, types.Str), types.Bool)
	right := types.Join(types.Int, types.Join(types.Str, types.Bool))
	if got, want := left.String(), "bool|int|str"; got != want {
		t.Errorf("left-grouped join = %q, want %q", got, want)
	}
	if left.String() != right.String() {
		t.Errorf("Join not associative: %q vs %q", left, right)
	}

	u := left.(*types.Union)
	if got, want := u.Len(), 3; got != want {
		t.Errorf("union Len = %d, want %d", got, want)
	}
	if !u.Has(types.Bool) || !u.Has(types.Int) || !u.Has(types.Str) {
		t.Errorf("union members missing: %v", u.Types())
	}
	if u.Has(types.Float) {
		t.Error("union reports absent member float")
	}
}

func TestJoinDistinctObjects(t *testing.T) {
	m := &types.Module{Name: "os", Qname: "os"}
	c := &types.Class{Name: "Path"}
	u := types.Join(m, c)
	want := "class Path|module os"
	if got := u.String(); got != want {
		t.Errorf("Join(module, class) = %q, want %q", got, want)
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"", ""},
		{"foo", "foo"},
		{"foo.py", "foo"},
		{"a/b/foo.py", "foo"},
		{"pkg/__init__.py", "pkg"},
		{"os.path", "os.path"},
	}
	for _, test := range tests {
		if got := types.ModuleName(test.raw); got != test.want {
			t.Errorf("ModuleName(%q) = %q, want %q", test.raw, got, test.want)
		}
	}
}

func TestTypeStrings(t *testing.T) {
	got := []string{
		types.Unknown.String(),
		types.None.String(),
		types.Int.String(),
		(&types.Module{Name: "path", Qname: "os.path"}).String(),
		(&types.Class{Name: "C"}).String(),
		(&types.Function{Name: "f"}).String(),
	}
	want := []string{"?", "None", "int", "module os.path", "class C", "function f"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("type strings mismatch (-want +got):\n%s", diff)
	}
}
