// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scopescript interprets a small line-oriented command language
// for driving the scope engine by hand: building scope graphs, recording
// bindings, and querying resolution. It stands in for the analyzer's tree
// walk in the REPL and in scripted tests.
//
// One command per line; '#' starts a comment. Query commands may carry a
// trailing "= want" clause, turning the query into an assertion that
// fails (returns an error) unless the result prints exactly as want.
//
// Example:
//
//	module M pkg.mod
//	func F M f
//	global F x
//	block G F
//	insert G x int
//	lookup M x = int
//	qname G x = pkg.mod.x
package scopescript

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"go.pyscope.net/resolve"
	"go.pyscope.net/syntax"
	"go.pyscope.net/types"
)

// An Interp holds the scopes a script has built, keyed by the identifier
// the script gave them.
type Interp struct {
	file   *string // for binding positions
	line   int32   // last line executed via Exec
	scopes map[string]*resolve.Scope
}

// New returns an interpreter with an empty scope registry.
// Binding positions produced by insert commands name the given file.
func New(filename string) *Interp {
	return &Interp{file: &filename, scopes: make(map[string]*resolve.Scope)}
}

// Exec executes one command, counting lines from the start of the session.
func (in *Interp) Exec(line string) (string, error) {
	in.line++
	return in.ExecLine(int(in.line), line)
}

// ExecLine executes one command attributed to the given 1-based line
// number. The result string is empty for commands that only mutate state.
func (in *Interp) ExecLine(linenum int, line string) (string, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	// A trailing "= want" clause turns a query into an assertion.
	var want string
	assert := false
	if cmd, rest, ok := strings.Cut(line, " = "); ok {
		line, want, assert = cmd, strings.TrimSpace(rest), true
	} else if rest, ok := strings.CutSuffix(line, " ="); ok {
		line, assert = rest, true // asserts an empty result
	}

	args := strings.Fields(line)
	out, err := in.exec(linenum, args[0], args[1:])
	if err != nil {
		return "", fmt.Errorf("%s: %w", args[0], err)
	}
	if assert && out != want {
		return "", fmt.Errorf("%s: got %q, want %q", strings.Join(args, " "), out, want)
	}
	return out, nil
}

func (in *Interp) exec(linenum int, cmd string, args []string) (string, error) {
	switch cmd {
	case "module":
		s, err := in.newScope(resolve.ModuleScope, nil, args, 1, 2)
		if err != nil {
			return "", err
		}
		path := args[0]
		if len(args) == 2 {
			path = args[1]
			s.SetPath(path)
		}
		s.SetType(&types.Module{Name: lastDotted(path), Qname: path, File: *in.file})
		return "", nil

	case "class", "func", "instance", "block":
		if len(args) < 2 || len(args) > 3 {
			return "", fmt.Errorf("want: %s id parent [name]", cmd)
		}
		parent, err := in.scope(args[1])
		if err != nil {
			return "", err
		}
		// A function body nests at its defining scope's forwarding target:
		// a def inside a class body closes over the class's surroundings,
		// not the class namespace. Its qualified path still extends the
		// defining scope's.
		env := parent
		if cmd == "func" {
			env = parent.Forwarding()
		}
		s, err := in.newScope(scopeKinds[cmd], env, args[:1], 1, 1)
		if err != nil {
			return "", err
		}
		switch cmd {
		case "block":
			if len(args) > 2 {
				return "", fmt.Errorf("block takes no name")
			}
			s.SetPath(parent.Path())
		default:
			name := args[0]
			if len(args) == 3 {
				name = args[2]
			}
			s.SetPath(parent.ExtendPath(name))
			if cmd == "class" {
				s.SetType(&types.Class{Name: name})
			} else if cmd == "func" {
				s.SetType(&types.Function{Name: name})
			}
		}
		return "", nil

	case "super":
		cls, base, err := in.scopePair(args)
		if err != nil {
			return "", err
		}
		cls.AddSuper(base)
		return "", nil

	case "global":
		s, name, err := in.scopeName(args)
		if err != nil {
			return "", err
		}
		s.AddGlobalName(name)
		return "", nil

	case "insert":
		if len(args) < 3 || len(args) > 4 {
			return "", fmt.Errorf("want: insert scope name type [kind]")
		}
		s, err := in.scope(args[0])
		if err != nil {
			return "", err
		}
		t, err := parseType(args[1:3])
		if err != nil {
			return "", err
		}
		kind := resolve.Variable
		if len(args) == 4 {
			k, ok := bindingKinds[args[3]]
			if !ok {
				return "", fmt.Errorf("unknown binding kind %q", args[3])
			}
			kind = k
		}
		name := args[1]
		def := &syntax.Ident{
			NamePos: syntax.MakePosition(in.file, int32(linenum), 1),
			Name:    name,
		}
		s.Insert(name, def, t, kind)
		return "", nil

	case "remove":
		s, name, err := in.scopeName(args)
		if err != nil {
			return "", err
		}
		s.Remove(name)
		return "", nil

	case "copy":
		if len(args) != 2 {
			return "", fmt.Errorf("want: copy newid scope")
		}
		src, err := in.scope(args[1])
		if err != nil {
			return "", err
		}
		if _, ok := in.scopes[args[0]]; ok {
			return "", fmt.Errorf("scope %q already defined", args[0])
		}
		in.scopes[args[0]] = src.Copy()
		return "", nil

	case "merge":
		dst, src, err := in.scopePair(args)
		if err != nil {
			return "", err
		}
		dst.Merge(src)
		return "", nil

	case "overwrite":
		dst, src, err := in.scopePair(args)
		if err != nil {
			return "", err
		}
		dst.Overwrite(src)
		return "", nil

	case "lookup", "local", "attr", "qname":
		s, name, err := in.scopeName(args)
		if err != nil {
			return "", err
		}
		var b *resolve.Binding
		switch cmd {
		case "local":
			b = s.LookupLocal(name)
		case "attr":
			b = s.LookupAttr(name)
		default:
			b = s.Lookup(name)
		}
		if b == nil {
			return "unresolved", nil
		}
		if cmd == "qname" {
			return b.Qname, nil
		}
		return typeString(b.Type()), nil

	case "parent", "forward":
		if len(args) != 1 {
			return "", fmt.Errorf("want: %s scope", cmd)
		}
		s, err := in.scope(args[0])
		if err != nil {
			return "", err
		}
		t := s.Parent()
		if cmd == "forward" {
			t = s.Forwarding()
		}
		if t == nil {
			return "none", nil
		}
		return in.idOf(t), nil

	case "keys":
		if len(args) != 1 {
			return "", fmt.Errorf("want: keys scope")
		}
		s, err := in.scope(args[0])
		if err != nil {
			return "", err
		}
		return strings.Join(s.Keys(), " "), nil

	case "dump":
		if len(args) != 1 {
			return "", fmt.Errorf("want: dump scope")
		}
		s, err := in.scope(args[0])
		if err != nil {
			return "", err
		}
		var lines []string
		for _, b := range s.Values() {
			lines = append(lines, fmt.Sprintf("%s: %s %s (%s)", b.Name, b.Qname, typeString(b.Type()), b.Kind))
		}
		return strings.Join(lines, "\n"), nil

	case "scopes":
		ids := maps.Keys(in.scopes)
		slices.Sort(ids)
		return strings.Join(ids, " "), nil

	case "help":
		return strings.TrimSpace(usage), nil
	}
	return "", fmt.Errorf("unknown command %q (try help)", cmd)
}

const usage = `
module id [path]           new module scope
class id parent [name]     new class-body scope under parent
func id parent [name]      new function-body scope; nests at parent's
                           forwarding target, paths under parent
instance id parent [name]  new instance scope under parent
block id parent            new block scope under parent
super class base           append a base class for attribute lookup
global scope name          declare name to bind at module scope
insert scope name type [kind]
remove scope name
copy newid scope           fork scope into newid
merge dst src              fold src's bindings into dst, joining types
overwrite dst src          replace dst with src, aliasing its table
lookup scope name          resolve lexically (prints type or unresolved)
local scope name           local table only
attr scope name            resolve through base classes only
qname scope name           qualified path of the lexical resolution
parent scope               id of the lexically enclosing scope
forward scope              id of the forwarding (non-class) target
keys scope                 locally bound names
dump scope                 all local bindings
scopes                     registered scope ids
Any query may end with "= want" to assert its printed result.
Types: int str bool float None ? module:a.b class:Name function:name,
joined with "|".`

// newScope registers a scope under args[0], checking the argument count
// against [min, max] and rejecting duplicate ids.
func (in *Interp) newScope(kind resolve.ScopeKind, parent *resolve.Scope, args []string, min, max int) (*resolve.Scope, error) {
	if len(args) < min || len(args) > max {
		return nil, fmt.Errorf("wrong argument count")
	}
	id := args[0]
	if _, ok := in.scopes[id]; ok {
		return nil, fmt.Errorf("scope %q already defined", id)
	}
	s := resolve.NewScope(parent, kind)
	in.scopes[id] = s
	return s, nil
}

// idOf returns the registered id of s, or "?" if the script never named it.
func (in *Interp) idOf(s *resolve.Scope) string {
	ids := maps.Keys(in.scopes)
	slices.Sort(ids)
	for _, id := range ids {
		if in.scopes[id] == s {
			return id
		}
	}
	return "?"
}

func (in *Interp) scope(id string) (*resolve.Scope, error) {
	s, ok := in.scopes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scope %q", id)
	}
	return s, nil
}

func (in *Interp) scopeName(args []string) (*resolve.Scope, string, error) {
	if len(args) != 2 {
		return nil, "", fmt.Errorf("want: scope name")
	}
	s, err := in.scope(args[0])
	return s, args[1], err
}

func (in *Interp) scopePair(args []string) (*resolve.Scope, *resolve.Scope, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("want: two scope ids")
	}
	a, err := in.scope(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := in.scope(args[1])
	return a, b, err
}

var scopeKinds = map[string]resolve.ScopeKind{
	"class":    resolve.ClassScope,
	"func":     resolve.FunctionScope,
	"instance": resolve.InstanceScope,
	"block":    resolve.BlockScope,
}

var bindingKinds = map[string]resolve.Kind{
	"attribute": resolve.Attribute,
	"class":     resolve.Class,
	"function":  resolve.Function,
	"module":    resolve.Module,
	"parameter": resolve.Parameter,
	"variable":  resolve.Variable,
	"import":    resolve.Import,
}

// parseType parses the type argument of an insert command (args[1] is the
// inserted name, args[2] the type; the name is wanted only for error text).
func parseType(args []string) (types.Type, error) {
	var t types.Type
	for _, part := range strings.Split(args[1], "|") {
		p, err := parseOneType(part)
		if err != nil {
			return nil, fmt.Errorf("name %q: %w", args[0], err)
		}
		t = types.Join(t, p)
	}
	return t, nil
}

func parseOneType(s string) (types.Type, error) {
	switch s {
	case "int":
		return types.Int, nil
	case "str":
		return types.Str, nil
	case "bool":
		return types.Bool, nil
	case "float":
		return types.Float, nil
	case "None":
		return types.None, nil
	case "?", "unknown":
		return types.Unknown, nil
	}
	if qname, ok := strings.CutPrefix(s, "module:"); ok {
		return &types.Module{Name: lastDotted(qname), Qname: qname}, nil
	}
	if name, ok := strings.CutPrefix(s, "class:"); ok {
		return &types.Class{Name: name}, nil
	}
	if name, ok := strings.CutPrefix(s, "function:"); ok {
		return &types.Function{Name: name}, nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}

func typeString(t types.Type) string {
	if t == nil {
		return types.Unknown.String()
	}
	return t.String()
}

func lastDotted(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// RunChunk executes a newline-separated script in a fresh interpreter,
// reporting each failed line through report. Chunked-file tests use this;
// the interpreter state is discarded afterwards.
func RunChunk(src, filename string, report func(linenum int, msg string)) {
	in := New(filename)
	for i, line := range strings.Split(src, "\n") {
		if _, err := in.ExecLine(i+1, line); err != nil {
			report(i+1, err.Error())
		}
	}
}
