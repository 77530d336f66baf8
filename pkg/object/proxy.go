package object

import (
	"propcache/pkg/key"
	"propcache/pkg/value"
)

// SetTrap intercepts a property write on a proxy. target is the wrapped
// object, receiver the object the assignment logically occurs on.
type SetTrap func(target, receiver value.Value, k key.Key, v value.Value) error

// GetTrap intercepts a property read on a proxy.
type GetTrap func(target, receiver value.Value, k key.Key) (value.Value, error)

// Handler carries a proxy's traps. A nil trap means the operation forwards
// transparently to the wrapped target.
type Handler struct {
	Set SetTrap
	Get GetTrap
}

// Proxy wraps a target object and routes property access through its
// handler's traps.
type Proxy struct {
	target  value.Value
	handler Handler
	revoked bool
}

func NewProxy(target value.Value, handler Handler) *Proxy {
	return &Proxy{target: target, handler: handler}
}

// Value wraps the proxy as an opaque runtime reference.
func (p *Proxy) Value() value.Value { return value.NewObjectRef(p) }

// Target returns the wrapped object.
func (p *Proxy) Target() value.Value { return p.target }

// Revoke disables the proxy; every subsequent access fails with a TypeError.
func (p *Proxy) Revoke() { p.revoked = true }

func (p *Proxy) IsRevoked() bool { return p.revoked }
