// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve implements the scope-and-binding engine of a static
// analyzer for a Python-like language.
//
// The analyzer's tree walk creates one Scope per lexical construct
// (module, class body, function body, or block), records definitions with
// Insert, and resolves references with Lookup and LookupAttr. Because the
// analyzer explores control-flow branches rather than running the program,
// a name may hold several types at once; colliding bindings accumulate
// their possibilities through the type lattice join (see Merge and
// Binding.AddType).
//
// Two resolution relations coexist and must not be conflated:
//
//   - parent is static lexical nesting, used by Lookup and by global-name
//     declarations;
//   - forwarding is the nearest enclosing non-class scope, used to decide
//     where a closure created inside a class body actually nests, since
//     class bodies do not extend into nested function scopes.
//
// A third relation, supers, is the base-class graph, used only by
// LookupAttr and never by plain name lookup.
//
// Failed lookups are not errors: they return nil, and callers typically
// substitute the lattice's unknown type and continue.
package resolve // import "go.pyscope.net/resolve"

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"go.pyscope.net/syntax"
	"go.pyscope.net/types"
)

// The ScopeKind of a Scope records which lexical construct it models.
type ScopeKind uint8

const (
	ClassScope ScopeKind = iota
	InstanceScope
	FunctionScope
	ModuleScope
	GlobalScope
	BlockScope
)

var scopeKindNames = [...]string{
	ClassScope:    "class",
	InstanceScope: "instance",
	FunctionScope: "function",
	ModuleScope:   "module",
	GlobalScope:   "global",
	BlockScope:    "block",
}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return fmt.Sprintf("<invalid ScopeKind %d>", k)
}

// A Scope is a hierarchical symbol table mapping names to bindings.
//
// A Scope is not safe for concurrent use. Scope graphs of independently
// analyzed modules share no state and may be used from different
// goroutines.
type Scope struct {
	table       map[string]*Binding // nil until the first insertion; most scopes stay empty
	parent      *Scope              // lexically enclosing scope; nil only at the root
	forwarding  *Scope              // nearest enclosing non-class scope; see Forwarding
	supers      []*Scope            // base-class scopes, in declaration order
	globalNames map[string]bool     // names redirected to module scope; nil inherits parent's
	kind        ScopeKind
	typ         types.Type // type of the object this scope denotes (class, module), if any
	path        string     // dotted prefix for qualified names; "" at the root
}

// NewScope returns a scope of the given kind lexically nested in parent
// (which may be nil for a root or module scope).
//
// The forwarding target is resolved here, once: a class scope forwards to
// its parent's forwarding target, so it can never be a class scope itself;
// every other kind forwards to the new scope.
func NewScope(parent *Scope, kind ScopeKind) *Scope {
	s := &Scope{parent: parent, kind: kind}
	if kind == ClassScope {
		if parent != nil {
			s.forwarding = parent.Forwarding()
		}
	} else {
		s.forwarding = s
	}
	return s
}

// Copy returns a structural snapshot of s for exploring one control-flow
// branch without disturbing the original: the name-to-binding table gets
// fresh backing storage, while bindings themselves, parent, forwarding,
// supers, global names, type, and path are shared.
func (s *Scope) Copy() *Scope {
	c := &Scope{
		parent:      s.parent,
		forwarding:  s.forwarding,
		supers:      s.supers,
		globalNames: s.globalNames,
		kind:        s.kind,
		typ:         s.typ,
		path:        s.path,
	}
	if s.table != nil {
		c.table = make(map[string]*Binding, len(s.table))
		maps.Copy(c.table, s.table)
	}
	return c
}

// Overwrite replaces every field of s with other's, aliasing other's
// binding table rather than copying it. It is the counterpart of Copy:
// the driver uses it to discard a fork in favor of a rejoined result.
func (s *Scope) Overwrite(other *Scope) {
	*s = *other
}

// Merge folds other's local bindings into s. A name bound on both sides
// keeps s's binding metadata but takes the join of the two types; the
// operands' own bindings are left untouched. Merge order cannot change the
// resulting type sets, though which side's defining location survives a
// collision is implementation-defined.
func (s *Scope) Merge(other *Scope) {
	for name, b := range other.table {
		prev := s.LookupLocal(name)
		switch {
		case prev == nil:
			s.Update(name, b)
		case prev == b:
			// common after Copy: both sides share the binding
		default:
			joined := NewBinding(prev.Name, prev.Def, types.Join(prev.Type(), b.Type()), prev.Kind)
			joined.Qname = prev.Qname
			s.Update(name, joined)
		}
	}
}

// Merge returns the union of a and b as a new scope, leaving both intact.
func Merge(a, b *Scope) *Scope {
	c := a.Copy()
	c.Merge(b)
	return c
}

// Insert records a definition of name at node def with type t, computing
// the binding's qualified path from the owning scope. A module-typed value
// keeps the module's own canonical path rather than taking a path from the
// alias that imported it.
//
// If name has been declared global, the binding lands in the module table
// instead of this scope, so a write through any nested block honors the
// declaration.
func (s *Scope) Insert(name string, def syntax.Node, t types.Type, kind Kind) *Binding {
	target := s
	if s.IsGlobalName(name) {
		target = s.GlobalTable()
	}
	b := NewBinding(name, def, t, kind)
	if mt, ok := t.(*types.Module); ok {
		b.Qname = mt.Qname
	} else {
		b.Qname = target.ExtendPath(name)
	}
	target.Update(name, b)
	return b
}

// Update stores b under name in this scope's local table, unconditionally
// replacing any existing binding. Callers that want accumulation rather
// than replacement must read, join, and insert explicitly.
func (s *Scope) Update(name string, b *Binding) {
	s.internalTable()[name] = b
}

// Remove deletes the local binding for name, if any.
func (s *Scope) Remove(name string) {
	if s.table != nil {
		delete(s.table, name)
	}
}

// LookupLocal returns the binding for name in this scope's own table,
// or nil. It never consults the parent.
func (s *Scope) LookupLocal(name string) *Binding {
	if s.table == nil {
		return nil
	}
	return s.table[name]
}

// Lookup resolves name for read access: a name declared global resolves in
// the module table (unless the search already started there); otherwise
// the local table is tried, then the parent chain. A nil result means the
// name is unbound, which is not an error.
func (s *Scope) Lookup(name string) *Binding {
	if s.IsGlobalName(name) {
		if module := s.GlobalTable(); module != s {
			return module.LookupLocal(name)
		}
	}
	if b := s.LookupLocal(name); b != nil {
		return b
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil
}

// LookupType returns the type of the binding Lookup finds, or nil.
func (s *Scope) LookupType(name string) types.Type {
	if b := s.Lookup(name); b != nil {
		return b.Type()
	}
	return nil
}

// LookupAttr resolves attr through the class hierarchy only, never the
// lexical parent chain: the local table first, then each super scope in
// declaration order, depth first. The first match wins, as in Python's
// old-style multiple-inheritance rule; the C3 linearization would rarely
// differ and is deliberately not used.
//
// The hierarchy may contain cycles. A scope already on the current search
// path yields nil for that branch. The visited set is local to each
// top-level call, so unrelated lookups, including concurrent ones on
// disjoint scope graphs, cannot disturb one another.
func (s *Scope) LookupAttr(attr string) *Binding {
	return s.lookupAttr(attr, nil)
}

func (s *Scope) lookupAttr(attr string, visiting map[*Scope]bool) *Binding {
	if visiting[s] {
		return nil
	}
	if b := s.LookupLocal(attr); b != nil {
		return b
	}
	if len(s.supers) == 0 {
		return nil
	}
	if visiting == nil {
		visiting = make(map[*Scope]bool)
	}
	visiting[s] = true
	for _, sup := range s.supers {
		if b := sup.lookupAttr(attr, visiting); b != nil {
			delete(visiting, s)
			return b
		}
	}
	delete(visiting, s)
	return nil
}

// LookupAttrType returns the type of the binding LookupAttr finds, or nil.
func (s *Scope) LookupAttrType(attr string) types.Type {
	if b := s.LookupAttr(attr); b != nil {
		return b.Type()
	}
	return nil
}

// AddGlobalName declares name to bind at module scope for this scope and
// any nested scope that does not declare otherwise.
func (s *Scope) AddGlobalName(name string) {
	if s.globalNames == nil {
		s.globalNames = make(map[string]bool)
	}
	s.globalNames[name] = true
}

// IsGlobalName reports whether name has been declared global here. A scope
// with its own declaration set answers from it alone; a scope without one
// inherits its parent's declarations. The walk follows parent, not
// forwarding: global declarations obey static lexical nesting.
func (s *Scope) IsGlobalName(name string) bool {
	if s.globalNames != nil {
		return s.globalNames[name]
	}
	if s.parent != nil {
		return s.parent.IsGlobalName(name)
	}
	return false
}

// AddSuper appends a base-class scope for attribute resolution.
func (s *Scope) AddSuper(sup *Scope) {
	s.supers = append(s.supers, sup)
}

// Supers returns the base-class scopes in declaration order.
func (s *Scope) Supers() []*Scope { return s.supers }

// GlobalTable returns the module scope enclosing s, possibly s itself.
//
// Every scope chain must close at a module scope; a chain that does not is
// a bug in the driver that built it, and GlobalTable panics rather than
// return an arbitrary scope that would silently misresolve names.
func (s *Scope) GlobalTable() *Scope {
	for t := s; t != nil; t = t.parent {
		if t.kind == ModuleScope {
			return t
		}
	}
	panic(fmt.Sprintf("resolve: no module scope reachable from %v; scope graph built without one", s))
}

// ExtendPath returns the qualified path a child named name would have in
// this scope: the name alone at the root, else dot-joined onto the scope's
// path. File-path-shaped names are first canonicalized to module names.
func (s *Scope) ExtendPath(name string) string {
	name = types.ModuleName(name)
	if s.path == "" {
		return name
	}
	return s.path + "." + name
}

// Parent returns the lexically enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// SetParent re-links s under a different enclosing scope.
func (s *Scope) SetParent(parent *Scope) { s.parent = parent }

// Forwarding returns the nearest enclosing non-class scope: the scope a
// closure created here lexically nests in. A non-class scope forwards to
// itself; a class scope answers with its surroundings. A rootless class
// scope forwards to itself.
func (s *Scope) Forwarding() *Scope {
	if s.forwarding != nil {
		return s.forwarding
	}
	return s
}

// Kind returns the scope's kind tag.
func (s *Scope) Kind() ScopeKind { return s.kind }

// SetKind replaces the scope's kind tag.
func (s *Scope) SetKind(kind ScopeKind) { s.kind = kind }

// Type returns the type of the object this scope denotes, or nil.
func (s *Scope) Type() types.Type { return s.typ }

// SetType associates the scope with the type of the object it denotes.
func (s *Scope) SetType(t types.Type) { s.typ = t }

// Path returns the scope's dotted qualified-name prefix.
func (s *Scope) Path() string { return s.path }

// SetPath sets the scope's dotted qualified-name prefix.
func (s *Scope) SetPath(path string) { s.path = path }

// IsEmpty reports whether the scope has no local bindings.
func (s *Scope) IsEmpty() bool { return len(s.table) == 0 }

// Len returns the number of local bindings.
func (s *Scope) Len() int { return len(s.table) }

// Keys returns the locally bound names in sorted order.
// It is never nil, even for a scope with no backing table.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.table))
	keys = append(keys, maps.Keys(s.table)...)
	slices.Sort(keys)
	return keys
}

// Values returns the local bindings, ordered by name.
// It is never nil, even for a scope with no backing table.
func (s *Scope) Values() []*Binding {
	bindings := make([]*Binding, 0, len(s.table))
	for _, name := range s.Keys() {
		bindings = append(bindings, s.table[name])
	}
	return bindings
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s %v>", s.kind, s.Keys())
}

// internalTable returns the binding table, allocating it on first use.
// The table stays nil until then: most scopes in a large program bind
// nothing, and an eager allocation per scope is measurable at scale.
func (s *Scope) internalTable() map[string]*Binding {
	if s.table == nil {
		s.table = make(map[string]*Binding)
	}
	return s.table
}
