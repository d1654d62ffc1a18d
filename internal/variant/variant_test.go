package variant

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/names"
)

func TestCast_NarrowingOverflow(t *testing.T) {
	_, err := Cast(Long(100000), names.QInteger)
	if err == nil {
		t.Fatal("expected Overflow error casting 100000 to integer")
	}
}

func TestCast_Widening(t *testing.T) {
	v, err := Cast(Integer(5), names.QDouble)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindDouble || v.Double != 5 {
		t.Fatalf("got %+v", v)
	}
}

func TestFitToType(t *testing.T) {
	tests := []struct {
		in   float64
		kind Kind
	}{
		{5, KindInteger},
		{40000, KindLong},
		{1.5, KindSingle},
	}
	for _, tt := range tests {
		v, err := FitToType(tt.in)
		if err != nil {
			t.Fatalf("FitToType(%v): %v", tt.in, err)
		}
		if v.Kind != tt.kind {
			t.Fatalf("FitToType(%v) = kind %v, want %v", tt.in, v.Kind, tt.kind)
		}
	}
}

func TestArrayValue_BoundsAndIndex(t *testing.T) {
	arr, err := NewArrayValue([]int32{0}, []int32{4}, Integer(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := arr.Set([]int32{2}, Integer(42)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := arr.Get([]int32{2})
	if err != nil || v.Integer != 42 {
		t.Fatalf("Get = %+v, %v", v, err)
	}
	if _, err := arr.Get([]int32{5}); err == nil {
		t.Fatal("expected SubscriptOutOfRange")
	}
}

func TestRecordValue_InsertionOrder(t *testing.T) {
	r := NewRecordValue(names.NewBareName("Card"))
	r.Set(names.NewBareName("Suit"), Str("Hearts"))
	r.Set(names.NewBareName("Value"), Integer(7))
	fields := r.Fields()
	if len(fields) != 2 || fields[0].String() != "Suit" || fields[1].String() != "Value" {
		t.Fatalf("unexpected field order: %v", fields)
	}
}

func TestCompare_Strings(t *testing.T) {
	c, err := Compare(Str("abc"), Str("abd"))
	if err != nil || c >= 0 {
		t.Fatalf("Compare = %d, %v", c, err)
	}
}
