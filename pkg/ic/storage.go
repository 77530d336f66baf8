package ic

import (
	"propcache/pkg/key"
	"propcache/pkg/value"
)

// Storage is the object storage collaborator: the engine that actually holds
// property slots and enforces shape transitions, extensibility and
// writability. The cache never inspects slot layout; all reads and mutations
// go through this contract.
//
// The strict flag on the set operations selects failure behavior: strict
// failures surface as *errors.TypeError, non-strict failures are silent
// no-ops. DefineOwnDataProperty always fails loudly.
type Storage interface {
	// GetNamedOwnOrInherited resolves a name against the target and its
	// prototype chain. ok is false when the property is absent.
	GetNamedOwnOrInherited(target value.Value, name key.Name) (v value.Value, ok bool)

	// SetNamed writes a named property honoring writability and
	// extensibility.
	SetNamed(target value.Value, name key.Name, v value.Value, strict bool) error

	// GetIndexed reads an indexed slot. ok is false when the slot is absent.
	GetIndexed(target value.Value, index uint32) (v value.Value, ok bool)

	// SetIndexed writes an indexed slot.
	SetIndexed(target value.Value, index uint32, v value.Value, strict bool) error

	// DefineOwnDataProperty defines a fresh own data property with default
	// attributes, overwriting any compatible existing property. It never
	// consults writability for merge purposes: it succeeds or returns a
	// *errors.TypeError regardless of strict mode.
	DefineOwnDataProperty(target value.Value, k key.Key, v value.Value) error

	// BindNamed pre-resolves a named accessor for one exact property name.
	// Cached-name specializations hold the returned accessor for their
	// lifetime, so implementations may bake per-name state into it.
	BindNamed(name key.Name) NamedAccessor

	// IsProxy reports whether target is a trap-intercepted object.
	IsProxy(target value.Value) bool

	// InvokeSetTrap invokes the proxy's set trap with the given receiver.
	InvokeSetTrap(proxy, receiver value.Value, k key.Key, v value.Value) error

	// InvokeGetTrap invokes the proxy's get trap with the given receiver.
	InvokeGetTrap(proxy, receiver value.Value, k key.Key) (value.Value, error)
}

// NamedAccessor is a storage accessor bound to one exact property name.
type NamedAccessor interface {
	// Name returns the bound property name.
	Name() key.Name

	// Get resolves the bound name on target (own or inherited).
	Get(target value.Value) (v value.Value, ok bool)

	// Set writes the bound name on target.
	Set(target value.Value, v value.Value, strict bool) error
}
