package linter

import (
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// varSlot is one resolved variable binding: its root address, resolved
// type, and whether it was DIM'd as an array.
type varSlot struct {
	path    names.RootPath
	typ     typedast.Type
	isArray bool
}

// scope is the active body-conversion environment for pass L4: one global
// scope, plus one fresh scope per subprogram body chained to it so a
// subprogram can still see variables explicitly declared DIM SHARED at
// module level (spec.md §4.4's name-resolution search order).
type scope struct {
	parent     *scope
	vars       map[string]*varSlot
	subprogram *typedast.SubprogramInfo

	// hoisted accumulates the synthetic DIM entries for variables used
	// before any explicit declaration (spec.md §4.4, "implicit-variable
	// hoisting"); hoistedPos is the position of the first such use, so the
	// synthetic DIM statement carries a sensible diagnostic position.
	hoisted    []typedast.DimVar
	hoistedPos token.Position
}

func newGlobalScope() *scope {
	return &scope{vars: make(map[string]*varSlot)}
}

func (s *scope) child(sub *typedast.SubprogramInfo) *scope {
	return &scope{parent: s, vars: make(map[string]*varSlot), subprogram: sub}
}

func (s *scope) declare(key string, slot *varSlot) {
	s.vars[key] = slot
}

// lookup searches this scope, then (for a subprogram scope) the enclosing
// module scope but only for bindings explicitly marked Shared -- an
// ordinary global implicit/DIM'd variable is invisible inside a
// subprogram unless it was declared DIM SHARED.
func (s *scope) lookup(key string) (*varSlot, bool) {
	if v, ok := s.vars[key]; ok {
		return v, true
	}
	if s.parent != nil {
		if v, ok := s.parent.vars[key]; ok && v.path.Shared {
			return v, true
		}
	}
	return nil, false
}

// inSubprogram reports whether this scope belongs to a SUB/FUNCTION body.
func (s *scope) inSubprogram() bool { return s.subprogram != nil }

// hoist records a synthetic DIM entry for a variable resolved by implicit
// use rather than explicit DIM, remembering the first-use position.
func (s *scope) hoist(v typedast.DimVar, at token.Position) {
	if len(s.hoisted) == 0 {
		s.hoistedPos = at
	}
	s.hoisted = append(s.hoisted, v)
}
