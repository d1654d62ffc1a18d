// Package variant implements the runtime value tag described in spec.md §3:
// a tagged union over the five built-in scalar kinds plus user-defined
// records and arrays, with the widening/narrowing cast rules, comparisons,
// and bitwise operations the linter and instruction generator rely on when
// folding constants and checking assignment compatibility.
//
// Full numeric-variant arithmetic is explicitly out of scope per spec.md
// §1 ("numeric-variant arithmetic primitives (specified only at the
// interface level)"); this package implements exactly the interface the
// spec names (Cast, Compare, fit-to-type, bitwise AND/OR) and nothing more.
package variant

import (
	"fmt"
	"math"
	"strings"

	"github.com/basiclang/basiccomp/internal/names"
)

// Kind tags the payload carried by a Variant.
type Kind byte

const (
	KindSingle Kind = iota
	KindDouble
	KindString
	KindInteger
	KindLong
	KindRecord
	KindArray
)

// Variant is the tagged runtime value. Only one of the payload fields is
// meaningful, selected by Kind.
type Variant struct {
	Kind    Kind
	Single  float32
	Double  float64
	Str     string
	Integer int32
	Long    int64
	Record  *RecordValue
	Array   *ArrayValue
}

// RecordValue is an insertion-ordered mapping from field bare-name to
// Variant, matching spec.md's "mapping ordered-by-insertion" contract
// (needed for deterministic binary layout / size computation, spec.md §9).
type RecordValue struct {
	TypeName names.BareName
	order    []names.BareName
	fields   map[string]*Variant
}

func NewRecordValue(typeName names.BareName) *RecordValue {
	return &RecordValue{TypeName: typeName, fields: make(map[string]*Variant)}
}

func (r *RecordValue) Set(field names.BareName, v Variant) {
	key := field.Key()
	if _, ok := r.fields[key]; !ok {
		r.order = append(r.order, field)
	}
	vv := v
	r.fields[key] = &vv
}

func (r *RecordValue) Get(field names.BareName) (Variant, bool) {
	v, ok := r.fields[field.Key()]
	if !ok {
		return Variant{}, false
	}
	return *v, true
}

// Fields returns fields in insertion order.
func (r *RecordValue) Fields() []names.BareName {
	out := make([]names.BareName, len(r.order))
	copy(out, r.order)
	return out
}

// ArrayValue is a fixed-dimension array with flat element storage, as
// described by spec.md's Variant data model and
// original_source/rusty_basic/src/variant/array_value.rs.
type ArrayValue struct {
	ElementQualifier names.Qualifier
	ElementTypeName  names.BareName // non-empty only for arrays of records
	LBounds          []int32
	UBounds          []int32
	Elements         []Variant
}

// NewArrayValue allocates a flat backing store sized to the product of
// (ubound-lbound+1) across dimensions, each initialized to fill.
func NewArrayValue(lbounds, ubounds []int32, fill Variant) (*ArrayValue, error) {
	if len(lbounds) != len(ubounds) || len(lbounds) == 0 {
		return nil, fmt.Errorf("array bounds mismatch")
	}
	total := 1
	for i := range lbounds {
		if ubounds[i] < lbounds[i] {
			return nil, fmt.Errorf("subscript out of range: dimension %d has ubound < lbound", i)
		}
		total *= int(ubounds[i]-lbounds[i]) + 1
	}
	elems := make([]Variant, total)
	for i := range elems {
		elems[i] = fill
	}
	return &ArrayValue{LBounds: lbounds, UBounds: ubounds, Elements: elems}, nil
}

func (a *ArrayValue) flatIndex(indices []int32) (int, error) {
	if len(indices) != len(a.LBounds) {
		return 0, fmt.Errorf("SubscriptOutOfRange: dimension count mismatch")
	}
	idx := 0
	for i, ix := range indices {
		if ix < a.LBounds[i] || ix > a.UBounds[i] {
			return 0, fmt.Errorf("SubscriptOutOfRange")
		}
		span := int(a.UBounds[i]-a.LBounds[i]) + 1
		idx = idx*span + int(ix-a.LBounds[i])
	}
	return idx, nil
}

func (a *ArrayValue) Get(indices []int32) (Variant, error) {
	idx, err := a.flatIndex(indices)
	if err != nil {
		return Variant{}, err
	}
	return a.Elements[idx], nil
}

func (a *ArrayValue) Set(indices []int32, v Variant) error {
	idx, err := a.flatIndex(indices)
	if err != nil {
		return err
	}
	a.Elements[idx] = v
	return nil
}

// LBound/UBound mirror the LBOUND/UBOUND built-in functions of spec.md §6.
func (a *ArrayValue) LBound(dimension int) (int32, error) {
	if dimension < 1 || dimension > len(a.LBounds) {
		return 0, fmt.Errorf("SubscriptOutOfRange")
	}
	return a.LBounds[dimension-1], nil
}

func (a *ArrayValue) UBound(dimension int) (int32, error) {
	if dimension < 1 || dimension > len(a.UBounds) {
		return 0, fmt.Errorf("SubscriptOutOfRange")
	}
	return a.UBounds[dimension-1], nil
}

// Constructors.

func Single(v float32) Variant  { return Variant{Kind: KindSingle, Single: v} }
func Double(v float64) Variant  { return Variant{Kind: KindDouble, Double: v} }
func Str(v string) Variant      { return Variant{Kind: KindString, Str: v} }
func Integer(v int32) Variant   { return Variant{Kind: KindInteger, Integer: v} }
func Long(v int64) Variant      { return Variant{Kind: KindLong, Long: v} }
func Record(v *RecordValue) Variant { return Variant{Kind: KindRecord, Record: v} }
func Array(v *ArrayValue) Variant   { return Variant{Kind: KindArray, Array: v} }

// ZeroOf returns the default value for a built-in qualifier, used by the
// instruction generator's AllocateBuiltIn opcode.
func ZeroOf(q names.Qualifier) Variant {
	switch q {
	case names.QSingle:
		return Single(0)
	case names.QDouble:
		return Double(0)
	case names.QString:
		return Str("")
	case names.QInteger:
		return Integer(0)
	case names.QLong:
		return Long(0)
	default:
		return Single(0)
	}
}

// FixedLengthSpaces returns a string Variant of n spaces, the default value
// for a STRING * n field (AllocateFixedLengthString).
func FixedLengthSpaces(n int) Variant {
	return Str(strings.Repeat(" ", n))
}

// AsFloat64 widens any numeric Variant to float64 for comparison/arithmetic
// staging; it is an error to call it on String/Record/Array.
func (v Variant) AsFloat64() (float64, error) {
	switch v.Kind {
	case KindSingle:
		return float64(v.Single), nil
	case KindDouble:
		return v.Double, nil
	case KindInteger:
		return float64(v.Integer), nil
	case KindLong:
		return float64(v.Long), nil
	default:
		return 0, fmt.Errorf("TypeMismatch: %v is not numeric", v.Kind)
	}
}

// FitToType promotes a numeric result to the smallest type that represents
// it, matching spec.md's "fit_to_type" invariant: integer overflow yields
// Overflow rather than silently wrapping or auto-widening past long.
func FitToType(f float64) (Variant, error) {
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		if f >= -32768 && f <= 32767 {
			return Integer(int32(f)), nil
		}
		return Long(int64(f)), nil
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return Long(int64(f)), nil
	}
	if float64(float32(f)) == f {
		return Single(float32(f)), nil
	}
	return Double(f), nil
}

// Cast converts v to the given built-in qualifier, applying the
// widening/narrowing rules of the variant arithmetic layer. Overflow on
// narrowing (e.g. Long -> Integer outside -32768..32767) returns an error
// the linter/generator surface as cerrors.Overflow.
func Cast(v Variant, q names.Qualifier) (Variant, error) {
	switch q {
	case names.QString:
		if v.Kind != KindString {
			return Variant{}, fmt.Errorf("TypeMismatch: cannot cast %v to string", v.Kind)
		}
		return v, nil
	case names.QSingle, names.QDouble, names.QInteger, names.QLong:
		if v.Kind == KindString || v.Kind == KindRecord || v.Kind == KindArray {
			return Variant{}, fmt.Errorf("TypeMismatch: cannot cast %v to %v", v.Kind, q)
		}
	}
	f, err := v.AsFloat64()
	if err != nil {
		return Variant{}, err
	}
	switch q {
	case names.QSingle:
		return Single(float32(f)), nil
	case names.QDouble:
		return Double(f), nil
	case names.QInteger:
		if f < -32768 || f > 32767 {
			return Variant{}, fmt.Errorf("Overflow: %v does not fit in integer", f)
		}
		return Integer(int32(f)), nil
	case names.QLong:
		if f < math.MinInt32 || f > math.MaxInt32 {
			return Variant{}, fmt.Errorf("Overflow: %v does not fit in long", f)
		}
		return Long(int64(f)), nil
	default:
		return Variant{}, fmt.Errorf("InternalError: unknown qualifier %v", q)
	}
}

// Qualifier returns the built-in qualifier tag for scalar variants.
func (v Variant) Qualifier() names.Qualifier {
	switch v.Kind {
	case KindSingle:
		return names.QSingle
	case KindDouble:
		return names.QDouble
	case KindString:
		return names.QString
	case KindInteger:
		return names.QInteger
	case KindLong:
		return names.QLong
	default:
		return names.QNone
	}
}

// Compare returns -1, 0, or 1 for ordering, used by the constant evaluator
// and the instruction generator's comparison opcodes.
func Compare(a, b Variant) (int, error) {
	if a.Kind == KindString && b.Kind == KindString {
		return strings.Compare(a.Str, b.Str), nil
	}
	af, err := a.AsFloat64()
	if err != nil {
		return 0, err
	}
	bf, err := b.AsFloat64()
	if err != nil {
		return 0, err
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

// And/Or implement the bitwise AND/OR semantics of the keyword operators
// when both operands are integral (QBasic's AND/OR double as both logical
// and bitwise operators, since booleans are represented as -1/0 integers).
func And(a, b Variant) (Variant, error) {
	af, err := a.AsFloat64()
	if err != nil {
		return Variant{}, err
	}
	bf, err := b.AsFloat64()
	if err != nil {
		return Variant{}, err
	}
	return FitToType(float64(int64(af) & int64(bf)))
}

func Or(a, b Variant) (Variant, error) {
	af, err := a.AsFloat64()
	if err != nil {
		return Variant{}, err
	}
	bf, err := b.AsFloat64()
	if err != nil {
		return Variant{}, err
	}
	return FitToType(float64(int64(af) | int64(bf)))
}
