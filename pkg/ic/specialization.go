package ic

import (
	"fmt"

	"propcache/pkg/key"
	"propcache/pkg/value"
)

// SpecKind identifies one guarded access strategy. The set is closed:
// dispatch is an explicit switch over these tags, never virtual calls.
type SpecKind uint8

const (
	SpecCachedName SpecKind = iota
	SpecArrayIndexFast
	SpecArrayIndexGeneral
	SpecProxyTarget
	SpecGeneric
)

// String returns a human-readable name for the specialization kind
func (sk SpecKind) String() string {
	switch sk {
	case SpecCachedName:
		return "CachedName"
	case SpecArrayIndexFast:
		return "ArrayIndexFast"
	case SpecArrayIndexGeneral:
		return "ArrayIndexGeneral"
	case SpecProxyTarget:
		return "ProxyTarget"
	case SpecGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// specialization is one guard+action entry in a chain. Immutable once
// installed: chains are rewritten by copy-and-publish, never in place.
type specialization struct {
	kind SpecKind

	// SpecCachedName only: the exact name seen at install time and the
	// storage accessor bound once for it.
	name     key.Name
	accessor NamedAccessor
}

// guard evaluates the entry's predicate against the current input. Guards are
// pure and cheap: key identity, index classification and proxy type tests
// only.
func (s *specialization) guard(store Storage, target value.Value, k key.Key) bool {
	switch s.kind {
	case SpecCachedName:
		// Exact previously-seen name, not an index, not trap-intercepted.
		return !k.IsArrayIndex() && k.Name().Equals(s.name) && !store.IsProxy(target)
	case SpecArrayIndexFast:
		// Key arrived as a native machine integer already in index range.
		return k.IsNativeIndex() && !store.IsProxy(target)
	case SpecArrayIndexGeneral:
		// Any representation that classifies as a canonical index.
		return k.IsArrayIndex() && !store.IsProxy(target)
	case SpecProxyTarget:
		return store.IsProxy(target)
	case SpecGeneric:
		return true
	default:
		return false
	}
}

func (s *specialization) describe() string {
	if s.kind == SpecCachedName {
		return fmt.Sprintf("CachedName(%s)", s.name.String())
	}
	return s.kind.String()
}

// narrowestFor picks the narrowest specialization matching the current input.
// Proxy targets always take the proxy strategy; among key shapes the priority
// is cached-name, native-integer index, then general index.
func narrowestFor(store Storage, target value.Value, k key.Key) specialization {
	if store.IsProxy(target) {
		return specialization{kind: SpecProxyTarget}
	}
	if k.IsArrayIndex() {
		if k.IsNativeIndex() {
			return specialization{kind: SpecArrayIndexFast}
		}
		return specialization{kind: SpecArrayIndexGeneral}
	}
	name := k.Name()
	return specialization{
		kind:     SpecCachedName,
		name:     name,
		accessor: store.BindNamed(name),
	}
}
