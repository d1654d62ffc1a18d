package linter

import (
	"fmt"
	"strings"

	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// bodyContext carries the state spec.md §4.4 pass L5 needs while walking one
// procedure body (or the global body): the labels defined anywhere in it,
// and which EXIT kinds are currently legal at the statement being checked.
type bodyContext struct {
	labels     map[string]bool
	inFor      int
	isFunction bool
	isSub      bool
}

// runPostChecks is spec.md §4.4 pass L5: GOTO/GOSUB targets must resolve to
// a label defined somewhere in the same procedure (or global scope); EXIT
// FOR/SUB/FUNCTION must appear only inside its matching construct; READ
// targets must be assignable scalars.
func (l *Linter) runPostChecks(typed *typedast.Program) {
	var globalBody []typedast.Statement
	for _, g := range typed.Statements {
		switch n := g.(type) {
		case *typedast.SubImplementation:
			ctx := &bodyContext{labels: collectLabels(n.Body), isSub: true}
			l.checkBody(ctx, n.Body)
		case *typedast.FunctionImplementation:
			ctx := &bodyContext{labels: collectLabels(n.Body), isFunction: true}
			l.checkBody(ctx, n.Body)
		default:
			if st, ok := g.(typedast.Statement); ok {
				globalBody = append(globalBody, st)
			}
		}
	}

	ctx := &bodyContext{labels: collectLabels(globalBody)}
	l.checkBody(ctx, globalBody)
}

func collectLabels(stmts []typedast.Statement) map[string]bool {
	labels := make(map[string]bool)
	var walk func([]typedast.Statement)
	walk = func(body []typedast.Statement) {
		for _, st := range body {
			switch n := st.(type) {
			case *typedast.LabelStatement:
				labels[normalizeLabel(n.Name)] = true
			case *typedast.IfStatement:
				for _, b := range n.Branches {
					walk(b.Body)
				}
				walk(n.Else)
			case *typedast.SelectCaseStatement:
				for _, c := range n.Cases {
					walk(c.Body)
				}
			case *typedast.ForStatement:
				walk(n.Body)
			case *typedast.WhileStatement:
				walk(n.Body)
			}
		}
	}
	walk(stmts)
	return labels
}

// normalizeLabel case-folds a label name, since BASIC identifiers (and
// labels) are case-insensitive everywhere else in this dialect.
func normalizeLabel(name string) string {
	return strings.ToUpper(name)
}

func (l *Linter) checkBody(ctx *bodyContext, stmts []typedast.Statement) {
	for _, st := range stmts {
		l.checkStatement(ctx, st)
	}
}

func (l *Linter) checkStatement(ctx *bodyContext, st typedast.Statement) {
	switch n := st.(type) {
	case *typedast.GotoStatement:
		l.checkLabelTarget(ctx, n.Label, n.Pos())
	case *typedast.GosubStatement:
		l.checkLabelTarget(ctx, n.Label, n.Pos())
	case *typedast.OnErrorStatement:
		if n.Kind == typedast.OnErrorGoToLabel {
			l.checkLabelTarget(ctx, n.Label, n.Pos())
		}
	case *typedast.ResumeStatement:
		if n.Kind == typedast.ResumeAtLabel {
			l.checkLabelTarget(ctx, n.Label, n.Pos())
		}
	case *typedast.ExitStatement:
		l.checkExit(ctx, n)
	case *typedast.ReadStatement:
		l.checkReadTargets(n)
	case *typedast.IfStatement:
		for _, b := range n.Branches {
			l.checkBody(ctx, b.Body)
		}
		l.checkBody(ctx, n.Else)
	case *typedast.SelectCaseStatement:
		for _, c := range n.Cases {
			l.checkBody(ctx, c.Body)
		}
	case *typedast.ForStatement:
		ctx.inFor++
		l.checkBody(ctx, n.Body)
		ctx.inFor--
	case *typedast.WhileStatement:
		l.checkBody(ctx, n.Body)
	}
}

func (l *Linter) checkLabelTarget(ctx *bodyContext, label string, at token.Position) {
	if !ctx.labels[normalizeLabel(label)] {
		l.fail(cerrors.New(cerrors.ElementNotDefined, at, fmt.Sprintf("label %q is not defined", label)))
	}
}

func (l *Linter) checkExit(ctx *bodyContext, n *typedast.ExitStatement) {
	switch n.Kind {
	case typedast.ExitFor:
		if ctx.inFor == 0 {
			l.fail(cerrors.New(cerrors.SyntaxError, n.Pos(), "EXIT FOR outside a FOR loop"))
		}
	case typedast.ExitSub:
		if !ctx.isSub {
			l.fail(cerrors.New(cerrors.SyntaxError, n.Pos(), "EXIT SUB outside a SUB"))
		}
	case typedast.ExitFunction:
		if !ctx.isFunction {
			l.fail(cerrors.New(cerrors.SyntaxError, n.Pos(), "EXIT FUNCTION outside a FUNCTION"))
		}
	}
}

// checkReadTargets enforces that every READ target is a scalar built-in or
// fixed-length-string variable, not a record or array as a whole (spec.md
// §4.4 L5, "READ target types").
func (l *Linter) checkReadTargets(n *typedast.ReadStatement) {
	for _, t := range n.Targets {
		typ := t.ExprType()
		if typ.Kind == typedast.TRecord || typ.Kind == typedast.TArray {
			l.fail(cerrors.New(cerrors.TypeMismatch, t.Pos(), fmt.Sprintf("cannot READ into %s", typ)))
		}
	}
}
