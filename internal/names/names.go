// Package names implements the case-insensitive identifier model of
// spec.md §3: BareName, qualified Name, the five type-sigil qualifiers, and
// the root-path wrapper the instruction generator uses for L-value
// addressing.
package names

import "strings"

// Qualifier is one of the five built-in type sigils, or QNone for a bare
// (unqualified) name.
type Qualifier byte

const (
	QNone Qualifier = iota
	QSingle
	QDouble
	QString
	QInteger
	QLong
)

func (q Qualifier) Sigil() string {
	switch q {
	case QSingle:
		return "!"
	case QDouble:
		return "#"
	case QString:
		return "$"
	case QInteger:
		return "%"
	case QLong:
		return "&"
	default:
		return ""
	}
}

func (q Qualifier) String() string {
	switch q {
	case QSingle:
		return "single"
	case QDouble:
		return "double"
	case QString:
		return "string"
	case QInteger:
		return "integer"
	case QLong:
		return "long"
	default:
		return "none"
	}
}

// QualifierFromSigil maps a sigil rune to its Qualifier, or (QNone, false)
// if ch is not one of the five recognized sigils.
func QualifierFromSigil(ch byte) (Qualifier, bool) {
	switch ch {
	case '!':
		return QSingle, true
	case '#':
		return QDouble, true
	case '$':
		return QString, true
	case '%':
		return QInteger, true
	case '&':
		return QLong, true
	default:
		return QNone, false
	}
}

// BareName is a case-insensitive identifier, normalized for comparison and
// hashing but preserving its original casing for diagnostics. It is never
// a raw string; every name-keyed map in the pipeline is keyed by BareName.
type BareName struct {
	original string
	folded   string
}

// NewBareName wraps s, case-folding it for comparisons.
func NewBareName(s string) BareName {
	return BareName{original: s, folded: strings.ToUpper(s)}
}

func (b BareName) String() string { return b.original }

// Key returns the case-folded form suitable for use as a map key.
func (b BareName) Key() string { return b.folded }

func (b BareName) Equal(other BareName) bool { return b.folded == other.folded }

func (b BareName) IsEmpty() bool { return b.original == "" }

// Name is either bare or qualified with one of the five sigils. Only the
// trailing component of a dotted identifier may carry a sigil (spec.md §3).
type Name struct {
	Base      BareName
	Qualifier Qualifier
}

func NewBareOnly(bare BareName) Name { return Name{Base: bare, Qualifier: QNone} }

func NewQualified(bare BareName, q Qualifier) Name { return Name{Base: bare, Qualifier: q} }

func (n Name) IsQualified() bool { return n.Qualifier != QNone }

func (n Name) String() string {
	return n.Base.String() + n.Qualifier.Sigil()
}

// Key is the case-insensitive, qualifier-distinguishing map key: two names
// with the same bare spelling but different sigils are different keys,
// because "X%" and "X$" are different variables.
func (n Name) Key() string {
	return n.Base.Key() + n.Qualifier.Sigil()
}

func (n Name) Equal(other Name) bool {
	return n.Base.Equal(other.Base) && n.Qualifier == other.Qualifier
}

// PropertyPath is a dotted identifier A.B.C split into its root and
// subsequent bare-name steps. Only the final step may carry a sigil,
// reflected by Qualifier on the synthesized Name once resolved.
type PropertyPath struct {
	Root  BareName
	Steps []BareName
}

// Split parses a dotted bare name like "A.B.C" into its components. A
// leading dot is invalid and must already have been rejected at the
// tokenizer/parser layer (spec.md §4.1).
func Split(dotted string) PropertyPath {
	parts := strings.Split(dotted, ".")
	pp := PropertyPath{Root: NewBareName(parts[0])}
	for _, p := range parts[1:] {
		pp.Steps = append(pp.Steps, NewBareName(p))
	}
	return pp
}

// RootPath is the base of an L-value address as used by the instruction
// generator's VarPathName opcode: a root variable Name plus whether it was
// declared DIM SHARED (and therefore lives in the global frame regardless
// of the current subprogram context).
type RootPath struct {
	Name   Name
	Shared bool
}
