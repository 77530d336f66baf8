package key

import (
	"testing"

	"propcache/pkg/value"
)

func TestClassifyIntegerKeys(t *testing.T) {
	tests := []struct {
		name   string
		in     value.Value
		index  uint32
		native bool
	}{
		{"zero", value.IntegerValue(0), 0, true},
		{"small", value.IntegerValue(7), 7, true},
		{"max index", value.IntegerValue(MaxArrayIndex), MaxArrayIndex, true},
		{"whole float", value.NumberValue(42), 42, false},
		{"negative zero float", value.NumberValue(-0.0), 0, false},
		{"canonical string", value.NewString("123"), 123, false},
		{"string zero", value.NewString("0"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Classify(tt.in)
			if !k.IsArrayIndex() {
				t.Fatalf("expected %s to classify as array index", tt.in.Inspect())
			}
			if k.Index() != tt.index {
				t.Errorf("expected index %d, got %d", tt.index, k.Index())
			}
			if k.IsNativeIndex() != tt.native {
				t.Errorf("expected native=%v, got %v", tt.native, k.IsNativeIndex())
			}
		})
	}
}

func TestClassifyNameKeys(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"plain name", value.NewString("x"), "x"},
		{"empty string", value.NewString(""), ""},
		{"leading zero", value.NewString("01"), "01"},
		{"sign prefix", value.NewString("+1"), "+1"},
		{"negative", value.IntegerValue(-1), "-1"},
		{"too large int", value.IntegerValue(1 << 33), "8589934592"},
		{"reserved length value", value.IntegerValue(MaxArrayIndex + 1), "4294967295"},
		{"fractional float", value.NumberValue(1.5), "1.5"},
		{"bool true", value.True, "true"},
		{"null", value.Null, "null"},
		{"undefined", value.Undefined, "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Classify(tt.in)
			if k.IsArrayIndex() {
				t.Fatalf("expected %s to classify as name, got index %d", tt.in.Inspect(), k.Index())
			}
			if got := k.Name().String(); got != tt.want {
				t.Errorf("expected name %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClassifyStringIndexBounds(t *testing.T) {
	// 2^32-2 is the largest index; 2^32-1 is reserved for array length.
	if k := Classify(value.NewString("4294967294")); !k.IsArrayIndex() {
		t.Errorf("expected 4294967294 to be an index")
	}
	if k := Classify(value.NewString("4294967295")); k.IsArrayIndex() {
		t.Errorf("expected 4294967295 to be a name")
	}
	if k := Classify(value.NewString("99999999999")); k.IsArrayIndex() {
		t.Errorf("expected out-of-range digits to be a name")
	}
}

func TestClassifySymbol(t *testing.T) {
	sym := value.NewSymbol("tag")
	k := Classify(sym)
	if k.IsArrayIndex() {
		t.Fatalf("symbols never classify as indexes")
	}
	if !k.Name().IsSymbol() {
		t.Fatalf("expected symbol name")
	}
	if k.Name().Symbol() != sym.AsSymbol() {
		t.Errorf("symbol identity lost in classification")
	}
	// Two symbols with the same description stay distinct.
	other := Classify(value.NewSymbol("tag"))
	if k.Name().Equals(other.Name()) {
		t.Errorf("distinct symbols with equal descriptions must not compare equal")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []value.Value{
		value.IntegerValue(3),
		value.NewString("3"),
		value.NewString("foo"),
		value.NumberValue(2.5),
		value.NewSymbol("s"),
	}
	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 5; i++ {
			again := Classify(in)
			if again.Kind() != first.Kind() || again.String() != first.String() {
				t.Errorf("classification of %s unstable: %v vs %v", in.Inspect(), first, again)
			}
		}
	}
}

func TestPropertyNameOfIndex(t *testing.T) {
	k := Classify(value.IntegerValue(12))
	if got := k.PropertyName().String(); got != "12" {
		t.Errorf("expected canonical decimal \"12\", got %q", got)
	}
}

func TestFromName(t *testing.T) {
	// Pre-classified names still detect canonical index strings.
	if k := FromName(StringName("10")); !k.IsArrayIndex() || k.Index() != 10 {
		t.Errorf("FromName(\"10\") should classify as index 10")
	}
	if k := FromName(StringName("x")); k.IsArrayIndex() {
		t.Errorf("FromName(\"x\") should stay a name")
	}
}
