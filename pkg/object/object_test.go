package object

import (
	"testing"

	"propcache/pkg/key"
	"propcache/pkg/value"
)

func TestPlainObjectBasic(t *testing.T) {
	po := NewPlainObject(value.Null)
	foo := key.StringName("foo")
	// No properties initially
	if po.HasOwn(foo) {
		t.Errorf("expected HasOwn(foo) to be false on new object")
	}
	if v, ok := po.GetOwn(foo); ok {
		t.Errorf("expected GetOwn(foo) ok=false, got ok=true, v=%v", v)
	}
	// Define a property
	po.SetOwn(foo, value.IntegerValue(42))
	if !po.HasOwn(foo) {
		t.Errorf("expected HasOwn(foo) true after SetOwn")
	}
	v, ok := po.GetOwn(foo)
	if !ok {
		t.Fatalf("expected GetOwn(foo) ok=true after SetOwn")
	}
	if v.AsInteger() != 42 {
		t.Errorf("expected GetOwn to return 42, got %d", v.AsInteger())
	}
	// Overwrite existing property
	po.SetOwn(foo, value.IntegerValue(7))
	v2, ok2 := po.GetOwn(foo)
	if !ok2 || v2.AsInteger() != 7 {
		t.Errorf("expected overwritten value 7, got %v (ok=%v)", v2, ok2)
	}
	// OwnKeys should list foo
	keys := po.OwnKeys()
	if len(keys) != 1 || keys[0].String() != "foo" {
		t.Errorf("OwnKeys mismatch, expected [foo], got %v", keys)
	}
}

func TestPlainObjectShapeTransitions(t *testing.T) {
	po := NewPlainObject(value.Null)
	root := po.Shape()
	// first definition creates new shape
	po.SetOwn(key.StringName("a"), value.IntegerValue(1))
	s1 := po.Shape()
	if s1 == root {
		t.Errorf("expected new shape after first property, got same shape")
	}
	// redefining same property should keep shape
	po.SetOwn(key.StringName("a"), value.IntegerValue(2))
	s2 := po.Shape()
	if s2 != s1 {
		t.Errorf("expected same shape on overwrite, got different shapes")
	}
	// adding another property creates another shape
	po.SetOwn(key.StringName("b"), value.IntegerValue(3))
	s3 := po.Shape()
	if s3 == s2 {
		t.Errorf("expected new shape after second property")
	}
}

func TestPlainObjectShapeSharing(t *testing.T) {
	// Objects acquiring the same properties in the same order share shapes.
	a := NewPlainObject(value.Null)
	b := NewPlainObject(value.Null)
	a.SetOwn(key.StringName("x"), value.IntegerValue(1))
	a.SetOwn(key.StringName("y"), value.IntegerValue(2))
	b.SetOwn(key.StringName("x"), value.IntegerValue(3))
	b.SetOwn(key.StringName("y"), value.IntegerValue(4))
	if a.Shape() != b.Shape() {
		t.Errorf("expected same-order objects to share shapes")
	}
	// Different order diverges.
	c := NewPlainObject(value.Null)
	c.SetOwn(key.StringName("y"), value.IntegerValue(5))
	c.SetOwn(key.StringName("x"), value.IntegerValue(6))
	if c.Shape() == a.Shape() {
		t.Errorf("expected different-order objects to have distinct shapes")
	}
}

func TestPlainObjectNonWritable(t *testing.T) {
	po := NewPlainObject(value.Null)
	ro := key.StringName("ro")
	if !po.DefineOwnWithAttrs(ro, value.IntegerValue(1), false, true, true) {
		t.Fatalf("expected DefineOwnWithAttrs to succeed on fresh object")
	}
	// SetOwn on non-writable property is a no-op
	po.SetOwn(ro, value.IntegerValue(2))
	v, _ := po.GetOwn(ro)
	if v.AsInteger() != 1 {
		t.Errorf("expected non-writable property to keep value 1, got %d", v.AsInteger())
	}
	_, writable, _, _, exists := po.GetOwnDescriptor(ro)
	if !exists || writable {
		t.Errorf("expected descriptor exists=true writable=false, got exists=%v writable=%v", exists, writable)
	}
}

func TestPlainObjectExtensible(t *testing.T) {
	po := NewPlainObject(value.Null)
	po.SetOwn(key.StringName("a"), value.IntegerValue(1))
	po.PreventExtensions()
	if po.IsExtensible() {
		t.Fatalf("expected IsExtensible false after PreventExtensions")
	}
	// DefineOwn of a new property fails
	if po.DefineOwn(key.StringName("b"), value.IntegerValue(2)) {
		t.Errorf("expected DefineOwn of new property to fail on non-extensible object")
	}
	// Existing property remains writable
	if !po.DefineOwn(key.StringName("a"), value.IntegerValue(3)) {
		t.Errorf("expected DefineOwn of existing property to succeed")
	}
	v, _ := po.GetOwn(key.StringName("a"))
	if v.AsInteger() != 3 {
		t.Errorf("expected overwritten value 3, got %d", v.AsInteger())
	}
}

func TestPlainObjectDeleteOwn(t *testing.T) {
	po := NewPlainObject(value.Null)
	po.SetOwn(key.StringName("a"), value.IntegerValue(1))
	po.SetOwn(key.StringName("b"), value.IntegerValue(2))
	po.SetOwn(key.StringName("c"), value.IntegerValue(3))
	if !po.DeleteOwn(key.StringName("b")) {
		t.Fatalf("expected delete of configurable property to succeed")
	}
	if po.HasOwn(key.StringName("b")) {
		t.Errorf("expected b to be gone after delete")
	}
	// Remaining offsets stay consistent
	va, _ := po.GetOwn(key.StringName("a"))
	vc, _ := po.GetOwn(key.StringName("c"))
	if va.AsInteger() != 1 || vc.AsInteger() != 3 {
		t.Errorf("expected a=1 c=3 after delete, got a=%d c=%d", va.AsInteger(), vc.AsInteger())
	}
	// Deleting a missing property reports true
	if !po.DeleteOwn(key.StringName("missing")) {
		t.Errorf("expected delete of missing property to report true")
	}
	// Non-configurable properties cannot be deleted
	po.DefineOwnWithAttrs(key.StringName("locked"), value.IntegerValue(9), true, true, false)
	if po.DeleteOwn(key.StringName("locked")) {
		t.Errorf("expected delete of non-configurable property to fail")
	}
}

func TestPlainObjectSymbolKeys(t *testing.T) {
	po := NewPlainObject(value.Null)
	sym := value.NewSymbol("tag")
	name := key.SymbolName(sym.AsSymbol())
	po.SetOwn(name, value.NewString("v"))
	v, ok := po.GetOwn(name)
	if !ok || v.AsString() != "v" {
		t.Errorf("expected symbol-keyed property to round-trip, got %v (ok=%v)", v, ok)
	}
	// Distinct symbol with same description is a different key
	other := key.SymbolName(value.NewSymbol("tag").AsSymbol())
	if _, ok := po.GetOwn(other); ok {
		t.Errorf("expected distinct symbol to miss")
	}
}

func TestArrayDense(t *testing.T) {
	arr := NewArray()
	if !arr.SetIndex(0, value.NewString("a")) {
		t.Fatalf("expected SetIndex(0) to succeed")
	}
	if !arr.SetIndex(3, value.NewString("d")) {
		t.Fatalf("expected SetIndex(3) to grow the array")
	}
	if arr.Length() != 4 {
		t.Errorf("expected length 4, got %d", arr.Length())
	}
	v, ok := arr.GetIndex(3)
	if !ok || v.AsString() != "d" {
		t.Errorf("expected element 3 = \"d\", got %v (ok=%v)", v, ok)
	}
	// Holes read as undefined
	hole, ok := arr.GetIndex(1)
	if !ok || !hole.IsUndefined() {
		t.Errorf("expected hole to be present and undefined, got %v (ok=%v)", hole, ok)
	}
	// Out of range misses
	if _, ok := arr.GetIndex(10); ok {
		t.Errorf("expected out-of-range read to miss")
	}
}

func TestArrayNonExtensible(t *testing.T) {
	arr := NewArray()
	arr.SetIndex(0, value.IntegerValue(1))
	arr.PreventExtensions()
	if arr.SetIndex(5, value.IntegerValue(2)) {
		t.Errorf("expected growth of non-extensible array to fail")
	}
	// Overwriting existing slots still works
	if !arr.SetIndex(0, value.IntegerValue(3)) {
		t.Errorf("expected overwrite of existing slot to succeed")
	}
}

func TestArrayLength(t *testing.T) {
	arr := NewArray()
	arr.SetIndex(4, value.IntegerValue(1))
	name, _ := arr.GetNamed(key.StringName("length"))
	if name.AsInteger() != 5 {
		t.Errorf("expected length 5, got %d", name.AsInteger())
	}
	arr.SetLength(2)
	if arr.Length() != 2 {
		t.Errorf("expected truncation to 2, got %d", arr.Length())
	}
	if _, ok := arr.GetIndex(4); ok {
		t.Errorf("expected truncated slot to miss")
	}
}
