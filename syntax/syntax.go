// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax defines the syntax-tree surface shared between a parser
// front end and the scope resolver.
//
// The resolver records a Node as the defining location of each binding but
// never looks inside it; any front end whose nodes implement Node can feed
// the resolver. This package deliberately defines only the node forms the
// resolver and its clients create themselves.
package syntax // import "go.pyscope.net/syntax"

// A Node is a node in a syntax tree.
type Node interface {
	// Span returns the start and end position of the expression.
	Span() (start, end Position)
}

// Start returns the start position of the expression.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the expression.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    string
}

func (x *Ident) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Name)
}
