// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"

	"go.pyscope.net/syntax"
	"go.pyscope.net/types"
)

// The Kind of a Binding records what sort of construct introduced it.
type Kind uint8

const (
	Attribute Kind = iota // object attribute (a.x = ...)
	Class                 // class statement
	Function              // def statement
	Module                // module object
	Parameter             // function parameter
	Variable              // ordinary assignment
	Import                // import statement
)

var kindNames = [...]string{
	Attribute: "attribute",
	Class:     "class",
	Function:  "function",
	Module:    "module",
	Parameter: "parameter",
	Variable:  "variable",
	Import:    "import",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("<invalid Kind %d>", k)
}

// A Binding records one association of a name with a definition site, a
// role, a qualified path, and the type the name has been seen to hold.
//
// A Binding is immutable once inserted into a scope, with one exception:
// its type cell, which may only widen through the lattice join as the
// analysis discovers more possibilities (see AddType). In particular Qname
// never changes after Scope.Insert has computed it.
type Binding struct {
	Name  string      // identifier text
	Def   syntax.Node // defining site; shares the syntax tree, never owns it
	Qname string      // dotted qualified path; set by Scope.Insert
	Kind  Kind

	typ types.Type // accumulated type; nil means no information yet
}

// NewBinding returns a binding with no qualified path.
// Scope.Insert is the usual constructor; NewBinding is for drivers that
// place bindings themselves via Scope.Update.
func NewBinding(name string, def syntax.Node, t types.Type, kind Kind) *Binding {
	return &Binding{Name: name, Def: def, Kind: kind, typ: t}
}

// Type returns the accumulated type of the binding, or nil if unknown.
func (b *Binding) Type() types.Type { return b.typ }

// SetType replaces the binding's type.
func (b *Binding) SetType(t types.Type) { b.typ = t }

// AddType widens the binding's type to cover t as a further possibility.
func (b *Binding) AddType(t types.Type) { b.typ = types.Join(b.typ, t) }

func (b *Binding) String() string {
	t := "?"
	if b.typ != nil {
		t = b.typ.String()
	}
	return fmt.Sprintf("<binding %s %s %s>", b.Qname, t, b.Kind)
}
