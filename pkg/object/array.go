package object

import (
	"propcache/pkg/key"
	"propcache/pkg/value"
)

// Array is the index-accepting reference object: a dense element store plus a
// lazily allocated plain object for named properties.
type Array struct {
	elements   []value.Value
	extensible bool
	props      *PlainObject // named (non-index) properties, nil until used
}

func NewArray() *Array {
	return &Array{extensible: true}
}

// Value wraps the array as an opaque runtime reference.
func (a *Array) Value() value.Value { return value.NewObjectRef(a) }

func (a *Array) Length() int { return len(a.elements) }

func (a *Array) IsExtensible() bool { return a.extensible }

func (a *Array) PreventExtensions() { a.extensible = false }

// GetIndex reads a dense slot. ok is false beyond the current length.
func (a *Array) GetIndex(i uint32) (value.Value, bool) {
	if int(i) < len(a.elements) {
		return a.elements[i], true
	}
	return value.Undefined, false
}

// SetIndex writes a dense slot, growing the array as needed. Returns false
// when growth is forbidden by the extensible flag.
func (a *Array) SetIndex(i uint32, v value.Value) bool {
	if int(i) < len(a.elements) {
		a.elements[i] = v
		return true
	}
	if !a.extensible {
		return false
	}
	for len(a.elements) < int(i) {
		a.elements = append(a.elements, value.Undefined)
	}
	a.elements = append(a.elements, v)
	return true
}

// SetLength truncates or expands the dense store.
func (a *Array) SetLength(n int) bool {
	if n < 0 {
		n = 0
	}
	if n > len(a.elements) && !a.extensible {
		return false
	}
	for len(a.elements) < n {
		a.elements = append(a.elements, value.Undefined)
	}
	a.elements = a.elements[:n]
	return true
}

// namedProps returns the side object for named properties, allocating it on
// first use. Its extensible flag tracks the array's.
func (a *Array) namedProps() *PlainObject {
	if a.props == nil {
		a.props = NewPlainObject(value.Null)
	}
	a.props.extensible = a.extensible
	return a.props
}

// GetNamed reads a named (non-index) property; "length" is synthesized.
func (a *Array) GetNamed(name key.Name) (value.Value, bool) {
	if !name.IsSymbol() && name.String() == "length" {
		return value.IntegerValue(int64(len(a.elements))), true
	}
	if a.props == nil {
		return value.Undefined, false
	}
	return a.props.GetOwn(name)
}
