// Package parser implements the generic combinator kernel of spec.md §4.2
// and, on top of it, the BASIC grammar itself.
//
// The kernel's single most important invariant (spec.md §4.2) is the
// three-way parse outcome: a parser either matches and produces a value, is
// incomplete (consumed nothing, so alternation may try the next branch), or
// is fatal (consumed tokens and then hit a diagnosable error, which aborts
// alternation immediately rather than silently falling through to a
// confusing later error). Outcome/Result make that distinction a value
// instead of a (nil, error) idiom that a caller could misuse.
package parser

import "github.com/basiclang/basiccomp/internal/cerrors"

// Outcome is the three-way kernel result.
type Outcome int

const (
	Matched Outcome = iota
	Incomplete
	Fatal
)

// Result is the generic outcome of any kernel-level parser.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     *cerrors.CompilerError
}

func Ok[T any](v T) Result[T] { return Result[T]{Outcome: Matched, Value: v} }

func IncompleteResult[T any]() Result[T] { return Result[T]{Outcome: Incomplete} }

func FatalResult[T any](err *cerrors.CompilerError) Result[T] {
	return Result[T]{Outcome: Fatal, Err: err}
}

// Pair is the payload of Seq2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq2 matches pa, then pb, only if pa matched. An incomplete pb after a
// matched pa is promoted to Fatal: once the sequence has committed by
// matching its first element, failing the rest is a real syntax error, not
// a signal to try a different alternative.
func Seq2[A, B any](pa func() Result[A], pb func() Result[B]) Result[Pair[A, B]] {
	ra := pa()
	if ra.Outcome == Incomplete {
		return IncompleteResult[Pair[A, B]]()
	}
	if ra.Outcome == Fatal {
		return FatalResult[Pair[A, B]](ra.Err)
	}
	rb := pb()
	switch rb.Outcome {
	case Matched:
		return Ok(Pair[A, B]{First: ra.Value, Second: rb.Value})
	case Incomplete:
		return FatalResult[Pair[A, B]](rb.Err)
	default:
		return FatalResult[Pair[A, B]](rb.Err)
	}
}

// Then chains a matched result into a follow-up parser, propagating
// Incomplete/Fatal untouched. This is the kernel's context-passing
// combinator: later parsers can branch on what an earlier one produced.
func Then[A, B any](ra Result[A], f func(A) Result[B]) Result[B] {
	switch ra.Outcome {
	case Matched:
		return f(ra.Value)
	case Incomplete:
		return IncompleteResult[B]()
	default:
		return FatalResult[B](ra.Err)
	}
}

// Alt tries each parser in order while it returns Incomplete; the first
// Matched or Fatal result short-circuits the rest (spec.md §4.2: "a fatal
// in any branch aborts immediately").
func Alt[T any](parsers ...func() Result[T]) Result[T] {
	for _, p := range parsers {
		r := p()
		if r.Outcome != Incomplete {
			return r
		}
	}
	return IncompleteResult[T]()
}

// OptionalResult turns Incomplete into a Matched nil-ish zero value;
// Fatal still propagates.
func OptionalResult[T any](p func() Result[T]) Result[Result[T]] {
	r := p()
	if r.Outcome == Fatal {
		return FatalResult[Result[T]](r.Err)
	}
	return Ok(r)
}

// ZeroOrMore repeatedly applies p until it returns Incomplete (success,
// possibly zero items) or Fatal (propagated).
func ZeroOrMore[T any](p func() Result[T]) Result[[]T] {
	var out []T
	for {
		r := p()
		switch r.Outcome {
		case Matched:
			out = append(out, r.Value)
		case Incomplete:
			return Ok(out)
		default:
			return FatalResult[[]T](r.Err)
		}
	}
}

// OneOrMore requires at least one successful match.
func OneOrMore[T any](p func() Result[T]) Result[[]T] {
	r := ZeroOrMore(p)
	if r.Outcome == Matched && len(r.Value) == 0 {
		return IncompleteResult[[]T]()
	}
	return r
}

// Peek runs fn without consuming: the cursor is always restored regardless
// of outcome.
func Peek[T any](c *Cursor, fn func() Result[T]) Result[T] {
	mark := c.Mark()
	r := fn()
	c.Reset(mark)
	return r
}

// OrExpected promotes an Incomplete result to Fatal with the given
// diagnostic, used at points in the grammar where, after committing to a
// production, a specific construct is now mandatory.
func OrExpected[T any](r Result[T], err *cerrors.CompilerError) Result[T] {
	if r.Outcome == Incomplete {
		return FatalResult[T](err)
	}
	return r
}
