// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types defines the type lattice consulted by the scope resolver.
//
// The resolver needs very little from a type: a join operation that
// accumulates the possibilities a name may hold across control-flow paths,
// a neutral "unknown" element to seed it, and, for module values, the
// module's own canonical qualified name. This package supplies a concrete
// lattice with those capabilities plus the handful of type forms that
// bindings for Python-like programs produce.
package types // import "go.pyscope.net/types"

import (
	"path/filepath"
	"strings"
)

// A Type is a value in the lattice.
type Type interface {
	String() string
	typ() // sealed
}

func (*Basic) typ()    {}
func (*Module) typ()   {}
func (*Class) typ()    {}
func (*Function) typ() {}
func (*Union) typ()    {}

// A Basic is a built-in scalar type with no further structure.
// The package-level singletons are the only instances;
// identity comparison is the equality rule.
type Basic struct {
	name string
}

func (b *Basic) String() string { return b.name }

var (
	Unknown = &Basic{"?"} // bottom of the lattice; the neutral element of Join
	None    = &Basic{"None"}
	Bool    = &Basic{"bool"}
	Int     = &Basic{"int"}
	Float   = &Basic{"float"}
	Str     = &Basic{"str"}
)

// A Module is the type of an imported or analyzed module object.
// Qname is the module's intrinsic dotted path; a binding whose value is a
// module keeps this path no matter what name the importer gave it.
type Module struct {
	Name  string // canonical short name
	Qname string // dotted qualified name, e.g. "os.path"
	File  string // defining source file, if known
}

func (m *Module) String() string { return "module " + m.Qname }

// A Class is the type of a class object.
type Class struct {
	Name string
}

func (c *Class) String() string { return "class " + c.Name }

// A Function is the type of a function object.
type Function struct {
	Name string
}

func (f *Function) String() string { return "function " + f.Name }

// ModuleName canonicalizes a raw module name, which may be a file path:
// "a/b/foo.py" becomes "foo", a package's "__init__.py" takes its
// directory's name, and anything without path structure passes through.
func ModuleName(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "/\\.") {
		return raw
	}
	if filepath.Base(raw) == "__init__.py" {
		return filepath.Base(filepath.Dir(raw))
	}
	return strings.TrimSuffix(filepath.Base(raw), ".py")
}
