package linter

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/names"
)

// runDefTypePass is spec.md §4.4 pass L0: walk every top-level DEF<type>
// statement and build the letter -> default-qualifier map consulted by
// implicit-variable hoisting during pass L4.
func (l *Linter) runDefTypePass(prog *ast.Program) {
	l.defTypeMap = make(map[byte]names.Qualifier)
	for _, g := range prog.Statements {
		d, ok := asDefType(g)
		if !ok {
			continue
		}
		q := qualifierForDefType(d.Qualifier)
		for _, r := range d.Ranges {
			for c := r.From; c <= r.To; c++ {
				l.defTypeMap[c] = q
			}
		}
	}
}

func asDefType(g ast.GlobalStatement) (*ast.DefTypeStatement, bool) {
	if d, ok := g.(*ast.DefTypeStatement); ok {
		return d, true
	}
	if wrapped, ok := g.(ast.StatementAsGlobal); ok {
		if d, ok := wrapped.Statement.(*ast.DefTypeStatement); ok {
			return d, true
		}
	}
	return nil, false
}

func qualifierForDefType(kind string) names.Qualifier {
	switch kind {
	case "INT":
		return names.QInteger
	case "LNG":
		return names.QLong
	case "SNG":
		return names.QSingle
	case "DBL":
		return names.QDouble
	case "STR":
		return names.QString
	default:
		return names.QSingle
	}
}
