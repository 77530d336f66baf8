package value

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType represents the type of a Value.
type ValueType uint8

const (
	TypeUndefined ValueType = iota // Default/uninitialized
	TypeNull                       // Explicit null value

	TypeString
	TypeSymbol

	TypeFloatNumber
	TypeIntegerNumber

	TypeBoolean

	TypeObject
)

// String returns a human-readable string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeFloatNumber, TypeIntegerNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// SymbolObject carries a symbol's description. Symbol identity is pointer
// identity of the SymbolObject, never the description string.
type SymbolObject struct {
	desc string
}

func (s *SymbolObject) Description() string { return s.desc }

func (s *SymbolObject) String() string { return fmt.Sprintf("Symbol(%s)", s.desc) }

// Value is a compact tagged runtime value. Numbers live in payload; strings,
// symbols and object references live in obj. Object references are opaque to
// this package; the storage engine owns their representation.
type Value struct {
	typ     ValueType
	payload uint64
	obj     any
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, payload: 1}
	False     = Value{typ: TypeBoolean, payload: 0}
	NaN       = Value{typ: TypeFloatNumber, payload: math.Float64bits(math.NaN())}
)

func NumberValue(value float64) Value {
	return Value{typ: TypeFloatNumber, payload: math.Float64bits(value)}
}

func IntegerValue(value int64) Value {
	return Value{typ: TypeIntegerNumber, payload: uint64(value)}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

func NewString(value string) Value {
	return Value{typ: TypeString, obj: value}
}

func NewSymbol(desc string) Value {
	return Value{typ: TypeSymbol, obj: &SymbolObject{desc: desc}}
}

// NewObjectRef wraps an opaque object reference produced by a storage engine.
func NewObjectRef(ref any) Value {
	return Value{typ: TypeObject, obj: ref}
}

func (v Value) Type() ValueType { return v.typ }

func (v Value) TypeName() string { return v.typ.String() }

func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }
func (v Value) IsNull() bool      { return v.typ == TypeNull }
func (v Value) IsString() bool    { return v.typ == TypeString }
func (v Value) IsSymbol() bool    { return v.typ == TypeSymbol }
func (v Value) IsObject() bool    { return v.typ == TypeObject }

func (v Value) IsNumber() bool {
	return v.typ == TypeFloatNumber || v.typ == TypeIntegerNumber
}

func (v Value) IsIntegerNumber() bool { return v.typ == TypeIntegerNumber }

func (v Value) AsString() string {
	return v.obj.(string)
}

func (v Value) AsSymbol() *SymbolObject {
	return v.obj.(*SymbolObject)
}

func (v Value) AsInteger() int64 {
	return int64(v.payload)
}

func (v Value) AsFloat() float64 {
	return math.Float64frombits(v.payload)
}

// AsObjectRef returns the opaque reference wrapped by NewObjectRef.
func (v Value) AsObjectRef() any { return v.obj }

func (v Value) AsBoolean() bool { return v.payload != 0 }

// ToFloat converts numeric values to float64; NaN for everything else.
func (v Value) ToFloat() float64 {
	switch v.typ {
	case TypeIntegerNumber:
		return float64(int64(v.payload))
	case TypeFloatNumber:
		return math.Float64frombits(v.payload)
	default:
		return math.NaN()
	}
}

// SameValue reports identity equality: string content, symbol identity,
// object reference identity, numeric equality within one representation.
func SameValue(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeUndefined, TypeNull:
		return true
	case TypeString:
		return a.obj.(string) == b.obj.(string)
	case TypeSymbol, TypeObject:
		return a.obj == b.obj
	default:
		return a.payload == b.payload
	}
}

// Inspect renders a value for diagnostics and error messages.
func (v Value) Inspect() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeString:
		return strconv.Quote(v.obj.(string))
	case TypeSymbol:
		return v.AsSymbol().String()
	case TypeIntegerNumber:
		return strconv.FormatInt(v.AsInteger(), 10)
	case TypeFloatNumber:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64)
	case TypeBoolean:
		if v.payload != 0 {
			return "true"
		}
		return "false"
	case TypeObject:
		return fmt.Sprintf("[object %p]", v.obj)
	default:
		return "<invalid>"
	}
}
