package value

import (
	"math"
	"testing"
)

func TestSameValue(t *testing.T) {
	s1 := NewString("abc")
	s2 := NewString("abc")
	if !SameValue(s1, s2) {
		t.Errorf("equal strings should be the same value")
	}
	if SameValue(NewString("a"), NewString("b")) {
		t.Errorf("distinct strings should differ")
	}

	if !SameValue(NaN, NaN) {
		t.Errorf("NaN should be the same value as itself")
	}
	if SameValue(NumberValue(0), NumberValue(math.Copysign(0, -1))) {
		t.Errorf("+0 and -0 should differ under SameValue")
	}
	if !SameValue(IntegerValue(3), IntegerValue(3)) {
		t.Errorf("equal integers should be the same value")
	}

	sym := NewSymbol("s")
	if !SameValue(sym, sym) {
		t.Errorf("a symbol should be the same value as itself")
	}
	if SameValue(NewSymbol("s"), NewSymbol("s")) {
		t.Errorf("symbols with equal descriptions should still differ")
	}

	ref := &struct{ n int }{1}
	if !SameValue(NewObjectRef(ref), NewObjectRef(ref)) {
		t.Errorf("references to the same object should be the same value")
	}
	if SameValue(Undefined, Null) {
		t.Errorf("undefined and null should differ")
	}
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{IntegerValue(42), 42},
		{NumberValue(1.5), 1.5},
	}
	for _, c := range cases {
		if got := c.v.ToFloat(); got != c.want {
			t.Errorf("ToFloat(%s) = %v, want %v", c.v.Inspect(), got, c.want)
		}
	}
	for _, v := range []Value{Undefined, Null, True, NewString("3")} {
		if !math.IsNaN(v.ToFloat()) {
			t.Errorf("ToFloat(%s) should be NaN", v.Inspect())
		}
	}
}

func TestInspect(t *testing.T) {
	if got := NewString("hi").Inspect(); got != `"hi"` {
		t.Errorf("string Inspect = %q", got)
	}
	if got := IntegerValue(7).Inspect(); got != "7" {
		t.Errorf("integer Inspect = %q", got)
	}
	if got := Undefined.Inspect(); got != "undefined" {
		t.Errorf("undefined Inspect = %q", got)
	}
	if got := True.Inspect(); got != "true" {
		t.Errorf("true Inspect = %q", got)
	}
}
