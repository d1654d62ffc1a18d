package typedast

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/names"
)

func TestType_IsNumeric(t *testing.T) {
	tests := []struct {
		in   Type
		want bool
	}{
		{Builtin(names.QInteger), true},
		{Builtin(names.QLong), true},
		{Builtin(names.QSingle), true},
		{Builtin(names.QDouble), true},
		{Builtin(names.QString), false},
		{FixedString(10), false},
		{Record(names.NewBareName("CARD")), false},
		{ArrayOf(Builtin(names.QInteger)), false},
	}
	for _, tt := range tests {
		if got := tt.in.IsNumeric(); got != tt.want {
			t.Errorf("IsNumeric(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestType_IsString(t *testing.T) {
	if !Builtin(names.QString).IsString() {
		t.Error("QString builtin should be a string type")
	}
	if !FixedString(5).IsString() {
		t.Error("fixed-length string should be a string type")
	}
	if Builtin(names.QInteger).IsString() {
		t.Error("integer should not be a string type")
	}
}

func TestType_Equal(t *testing.T) {
	card := names.NewBareName("CARD")
	otherCard := names.NewBareName("card")

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same builtin qualifier", Builtin(names.QInteger), Builtin(names.QInteger), true},
		{"different builtin qualifier", Builtin(names.QInteger), Builtin(names.QSingle), false},
		{"fixed strings always equal regardless of length", FixedString(5), FixedString(32000), true},
		{"record names fold case", Record(card), Record(otherCard), true},
		{"different record names", Record(card), Record(names.NewBareName("DECK")), false},
		{"array of same element type", ArrayOf(Builtin(names.QInteger)), ArrayOf(Builtin(names.QInteger)), true},
		{"array of different element type", ArrayOf(Builtin(names.QInteger)), ArrayOf(Builtin(names.QSingle)), false},
		{"different kinds never equal", Builtin(names.QInteger), FixedString(5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		in   Type
		want string
	}{
		{Builtin(names.QInteger), "integer"},
		{FixedString(10), "STRING * 10"},
		{Record(names.NewBareName("Card")), "Card"},
		{ArrayOf(Builtin(names.QSingle)), "single()"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestUserType_Field(t *testing.T) {
	ut := &UserType{
		Name: names.NewBareName("Card"),
		Fields: []FieldDef{
			{Name: names.NewBareName("Suit"), Type: Builtin(names.QString)},
			{Name: names.NewBareName("Rank"), Type: Builtin(names.QInteger)},
		},
	}

	f, ok := ut.Field(names.NewBareName("suit"))
	if !ok || f.Type.Qualifier != names.QString {
		t.Fatalf("Field(suit) = %+v, %v", f, ok)
	}

	if _, ok := ut.Field(names.NewBareName("Missing")); ok {
		t.Fatal("expected Field(Missing) to report false")
	}
}
