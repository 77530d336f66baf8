package key

import (
	"math"
	"strconv"

	"propcache/pkg/value"
)

// MaxArrayIndex is the largest canonical array index. 2^32-1 is reserved as
// "not an index" per the array-length convention.
const MaxArrayIndex = math.MaxUint32 - 1

type Kind uint8

const (
	KindArrayIndex Kind = iota
	KindName
)

// Name identifies a string- or symbol-named property. Symbol names compare by
// pointer identity of the symbol, string names by content.
type Name struct {
	str string
	sym *value.SymbolObject
}

func StringName(s string) Name { return Name{str: s} }

func SymbolName(sym *value.SymbolObject) Name { return Name{sym: sym} }

func (n Name) IsSymbol() bool { return n.sym != nil }

func (n Name) String() string {
	if n.sym != nil {
		return n.sym.String()
	}
	return n.str
}

// Symbol returns the symbol identity, nil for string names.
func (n Name) Symbol() *value.SymbolObject { return n.sym }

func (n Name) Equals(other Name) bool {
	if n.sym != nil || other.sym != nil {
		return n.sym == other.sym
	}
	return n.str == other.str
}

// Key is the result of classifying one raw property key: either a canonical
// array index or a property name. NativeIndex marks index keys that arrived as
// machine integers (as opposed to round-tripping through a numeric string);
// the distinction is an optimization hint only, both forms address the same
// slot.
type Key struct {
	kind        Kind
	index       uint32
	name        Name
	nativeIndex bool
}

func (k Key) Kind() Kind          { return k.kind }
func (k Key) IsArrayIndex() bool  { return k.kind == KindArrayIndex }
func (k Key) IsNativeIndex() bool { return k.kind == KindArrayIndex && k.nativeIndex }

// Index returns the canonical array index; only meaningful for IsArrayIndex keys.
func (k Key) Index() uint32 { return k.index }

// Name returns the property name; only meaningful for KindName keys.
func (k Key) Name() Name { return k.name }

// PropertyName renders the key as a canonical property name. Index keys map to
// their decimal string, which is the form define-own-property writes use.
func (k Key) PropertyName() Name {
	if k.kind == KindArrayIndex {
		return Name{str: strconv.FormatUint(uint64(k.index), 10)}
	}
	return k.name
}

func (k Key) String() string {
	if k.kind == KindArrayIndex {
		return strconv.FormatUint(uint64(k.index), 10)
	}
	return k.name.String()
}

// Classify derives a key's classification from its live runtime value. It is
// deterministic, stateless and never fails; re-run on every access because key
// values vary per call even when a call site's key shape is stable.
func Classify(v value.Value) Key {
	switch v.Type() {
	case value.TypeIntegerNumber:
		i := v.AsInteger()
		if i >= 0 && i <= MaxArrayIndex {
			return Key{kind: KindArrayIndex, index: uint32(i), nativeIndex: true}
		}
		return Key{kind: KindName, name: Name{str: strconv.FormatInt(i, 10)}}
	case value.TypeFloatNumber:
		f := v.AsFloat()
		if f == math.Trunc(f) && f >= 0 && f <= MaxArrayIndex {
			return Key{kind: KindArrayIndex, index: uint32(f)}
		}
		return Key{kind: KindName, name: Name{str: formatFloatKey(f)}}
	case value.TypeString:
		s := v.AsString()
		if idx, ok := parseArrayIndex(s); ok {
			return Key{kind: KindArrayIndex, index: idx}
		}
		return Key{kind: KindName, name: Name{str: s}}
	case value.TypeSymbol:
		return Key{kind: KindName, name: Name{sym: v.AsSymbol()}}
	case value.TypeBoolean:
		if v.AsBoolean() {
			return Key{kind: KindName, name: Name{str: "true"}}
		}
		return Key{kind: KindName, name: Name{str: "false"}}
	case value.TypeNull:
		return Key{kind: KindName, name: Name{str: "null"}}
	case value.TypeUndefined:
		return Key{kind: KindName, name: Name{str: "undefined"}}
	default:
		// Objects coerce through the default string conversion.
		return Key{kind: KindName, name: Name{str: "[object Object]"}}
	}
}

// FromName builds a pre-classified key for callers that already hold a name,
// e.g. compiled constant-property access sites.
func FromName(n Name) Key {
	if !n.IsSymbol() {
		if idx, ok := parseArrayIndex(n.str); ok {
			return Key{kind: KindArrayIndex, index: idx}
		}
	}
	return Key{kind: KindName, name: n}
}

// FromIndex builds a native-integer index key.
func FromIndex(i uint32) Key {
	return Key{kind: KindArrayIndex, index: i, nativeIndex: true}
}

// parseArrayIndex reports whether s is the canonical decimal form of an array
// index: digits only, no leading zero (except "0" itself), value <= 2^32-2.
func parseArrayIndex(s string) (uint32, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > MaxArrayIndex {
		return 0, false
	}
	return uint32(n), true
}

func formatFloatKey(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
