// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Union is a set of two or more alternative types.
// Unions are created only by Join and are never nested.
type Union struct {
	members map[Type]bool
}

// Has reports whether t is a member of the union.
func (u *Union) Has(t Type) bool { return u.members[t] }

// Len returns the number of members.
func (u *Union) Len() int { return len(u.members) }

// Types returns the members, ordered by their printed form
// so that the result is deterministic.
func (u *Union) Types() []Type {
	ts := maps.Keys(u.members)
	slices.SortFunc(ts, func(x, y Type) int { return strings.Compare(x.String(), y.String()) })
	return ts
}

func (u *Union) String() string {
	var names []string
	for _, t := range u.Types() {
		names = append(names, t.String())
	}
	return strings.Join(names, "|")
}

// Join returns the lattice join of x and y: the smallest type covering both.
// A nil operand is treated as Unknown, and Unknown is the neutral element.
// Join is commutative and associative up to member-set equality.
func Join(x, y Type) Type {
	if x == nil || x == Unknown {
		if y == nil {
			return Unknown
		}
		return y
	}
	if y == nil || y == Unknown || x == y {
		return x
	}
	members := make(map[Type]bool)
	addMember(members, x)
	addMember(members, y)
	if len(members) == 1 {
		for t := range members {
			return t
		}
	}
	return &Union{members}
}

func addMember(members map[Type]bool, t Type) {
	if u, ok := t.(*Union); ok {
		for m := range u.members {
			members[m] = true
		}
	} else {
		members[t] = true
	}
}
