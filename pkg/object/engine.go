package object

import (
	"math"

	"propcache/pkg/errors"
	"propcache/pkg/ic"
	"propcache/pkg/key"
	"propcache/pkg/value"
)

// Engine implements the storage collaborator contract over the reference
// object model: plain objects, dense arrays and proxies. It is stateless;
// all state lives on the objects themselves.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

var _ ic.Storage = (*Engine)(nil)

// fail reports a TypeError in strict mode and silently swallows it otherwise.
func fail(strict bool, format string, args ...any) error {
	if strict {
		return errors.NewTypeError(format, args...)
	}
	return nil
}

// GetNamedOwnOrInherited resolves a name on the target, then up its
// prototype chain.
func (e *Engine) GetNamedOwnOrInherited(target value.Value, name key.Name) (value.Value, bool) {
	if !target.IsObject() {
		return value.Undefined, false
	}
	switch ref := target.AsObjectRef().(type) {
	case *PlainObject:
		cur := ref
		for cur != nil {
			if v, ok := cur.GetOwn(name); ok {
				return v, true
			}
			proto := cur.Prototype()
			if !proto.IsObject() {
				break
			}
			next, ok := proto.AsObjectRef().(*PlainObject)
			if !ok {
				break
			}
			cur = next
		}
		return value.Undefined, false
	case *Array:
		return ref.GetNamed(name)
	case *Proxy:
		// Trap-intercepted reads normally go through InvokeGetTrap; resolving
		// here forwards to the wrapped target.
		return e.GetNamedOwnOrInherited(ref.target, name)
	default:
		return value.Undefined, false
	}
}

// SetNamed writes a named property honoring writability, prototype-chain
// shadowing rules and the extensible flag.
func (e *Engine) SetNamed(target value.Value, name key.Name, v value.Value, strict bool) error {
	if !target.IsObject() {
		return fail(strict, "Cannot set property '%s' on non-object type '%s'", name.String(), target.TypeName())
	}
	switch ref := target.AsObjectRef().(type) {
	case *PlainObject:
		return e.setNamedOnPlain(ref, name, v, strict)
	case *Array:
		if !name.IsSymbol() && name.String() == "length" {
			n, ok := arrayLength(v)
			if !ok {
				return fail(strict, "Invalid array length: %s", v.Inspect())
			}
			if !ref.SetLength(n) {
				return fail(strict, "Cannot assign to read only property 'length'")
			}
			return nil
		}
		return e.setNamedOnPlain(ref.namedProps(), name, v, strict)
	case *Proxy:
		return e.InvokeSetTrap(target, target, key.FromName(name), v)
	default:
		return fail(strict, "Cannot set property '%s' on non-object type '%s'", name.String(), target.TypeName())
	}
}

// arrayLength validates a value assigned to an array's length: a non-negative
// whole number within index range. Anything else (NaN, negatives, fractions,
// non-numerics) is rejected rather than coerced.
func arrayLength(v value.Value) (int, bool) {
	f := v.ToFloat()
	if math.IsNaN(f) || f < 0 || f != math.Trunc(f) || f > float64(key.MaxArrayIndex)+1 {
		return 0, false
	}
	return int(f), true
}

func (e *Engine) setNamedOnPlain(o *PlainObject, name key.Name, v value.Value, strict bool) error {
	if _, writable, _, _, exists := o.GetOwnDescriptor(name); exists {
		if !writable {
			return fail(strict, "Cannot assign to read only property '%s'", name.String())
		}
		o.SetOwn(name, v)
		return nil
	}
	// A non-writable data property anywhere on the prototype chain cannot be
	// shadowed by assignment.
	proto := o.Prototype()
	for proto.IsObject() {
		po, ok := proto.AsObjectRef().(*PlainObject)
		if !ok {
			break
		}
		if _, writable, _, _, exists := po.GetOwnDescriptor(name); exists {
			if !writable {
				return fail(strict, "Cannot assign to read only property '%s'", name.String())
			}
			break
		}
		proto = po.Prototype()
	}
	if !o.IsExtensible() {
		return fail(strict, "Cannot add property '%s', object is not extensible", name.String())
	}
	o.SetOwn(name, v)
	return nil
}

// GetIndexed reads an indexed slot. Plain objects resolve the canonical
// decimal name instead.
func (e *Engine) GetIndexed(target value.Value, index uint32) (value.Value, bool) {
	if !target.IsObject() {
		return value.Undefined, false
	}
	switch ref := target.AsObjectRef().(type) {
	case *Array:
		return ref.GetIndex(index)
	case *PlainObject:
		return e.GetNamedOwnOrInherited(target, key.FromIndex(index).PropertyName())
	case *Proxy:
		v, err := e.InvokeGetTrap(target, target, key.FromIndex(index))
		if err != nil {
			return value.Undefined, false
		}
		return v, !v.IsUndefined()
	default:
		return value.Undefined, false
	}
}

// SetIndexed writes an indexed slot; plain objects fall back to the canonical
// decimal name.
func (e *Engine) SetIndexed(target value.Value, index uint32, v value.Value, strict bool) error {
	if index > key.MaxArrayIndex {
		// Classification never produces such an index; a raw caller did.
		return errors.NewInvalidKeyError("%d is not a valid array index", index)
	}
	if !target.IsObject() {
		return fail(strict, "Cannot set index %d on non-object type '%s'", index, target.TypeName())
	}
	switch ref := target.AsObjectRef().(type) {
	case *Array:
		if !ref.SetIndex(index, v) {
			return fail(strict, "Cannot add property %d, object is not extensible", index)
		}
		return nil
	case *PlainObject:
		return e.SetNamed(target, key.FromIndex(index).PropertyName(), v, strict)
	case *Proxy:
		return e.InvokeSetTrap(target, target, key.FromIndex(index), v)
	default:
		return fail(strict, "Cannot set index %d on non-object type '%s'", index, target.TypeName())
	}
}

// DeleteNamed removes a named own property. Returns whether a property was
// actually removed; deleting an absent property succeeds without effect.
// Non-configurable properties fail with a TypeError in strict mode and are
// left in place silently otherwise. Proxies forward to the wrapped target.
func (e *Engine) DeleteNamed(target value.Value, name key.Name, strict bool) (bool, error) {
	if !target.IsObject() {
		return false, fail(strict, "Cannot delete property '%s' on non-object type '%s'", name.String(), target.TypeName())
	}
	switch ref := target.AsObjectRef().(type) {
	case *PlainObject:
		existed := ref.HasOwn(name)
		if !ref.DeleteOwn(name) {
			return false, fail(strict, "Cannot delete property '%s'", name.String())
		}
		return existed, nil
	case *Array:
		if !name.IsSymbol() && name.String() == "length" {
			return false, fail(strict, "Cannot delete property 'length'")
		}
		if ref.props == nil {
			return false, nil
		}
		return e.DeleteNamed(ref.props.Value(), name, strict)
	case *Proxy:
		if ref.revoked {
			return false, errors.NewTypeError("Cannot delete property on a revoked Proxy")
		}
		return e.DeleteNamed(ref.target, name, strict)
	default:
		return false, fail(strict, "Cannot delete property '%s' on non-object type '%s'", name.String(), target.TypeName())
	}
}

// DefineOwnDataProperty defines a fresh own data property with default
// attributes. Unlike assignment it never merges with existing attribute
// configuration: it overwrites, or fails with a TypeError regardless of
// strict mode.
func (e *Engine) DefineOwnDataProperty(target value.Value, k key.Key, v value.Value) error {
	if !target.IsObject() {
		return errors.NewTypeError("Cannot define property '%s' on non-object type '%s'", k.String(), target.TypeName())
	}
	switch ref := target.AsObjectRef().(type) {
	case *PlainObject:
		if !ref.DefineOwn(k.PropertyName(), v) {
			return defineFailure(ref.IsExtensible(), k)
		}
		return nil
	case *Array:
		if k.IsArrayIndex() {
			// Redefining an existing index is legal and simply overwrites.
			if !ref.SetIndex(k.Index(), v) {
				return errors.NewTypeError("Cannot define property %d, object is not extensible", k.Index())
			}
			return nil
		}
		if !ref.namedProps().DefineOwn(k.PropertyName(), v) {
			return defineFailure(ref.IsExtensible(), k)
		}
		return nil
	case *Proxy:
		// Define-own bypasses the trap and lands on the wrapped target.
		if ref.revoked {
			return errors.NewTypeError("Cannot define property on a revoked Proxy")
		}
		return e.DefineOwnDataProperty(ref.target, k, v)
	default:
		return errors.NewTypeError("Cannot define property '%s' on non-object type '%s'", k.String(), target.TypeName())
	}
}

func defineFailure(extensible bool, k key.Key) error {
	if !extensible {
		return errors.NewTypeError("Cannot define property '%s', object is not extensible", k.String())
	}
	return errors.NewTypeError("Cannot redefine property '%s'", k.String())
}

// BindNamed pre-resolves an accessor for one exact name.
func (e *Engine) BindNamed(name key.Name) ic.NamedAccessor {
	return &namedAccessor{engine: e, name: name}
}

// IsProxy reports whether target is a trap-intercepted reference.
func (e *Engine) IsProxy(target value.Value) bool {
	if !target.IsObject() {
		return false
	}
	_, ok := target.AsObjectRef().(*Proxy)
	return ok
}

// InvokeSetTrap routes a write through the proxy's set trap. A nil trap
// forwards to the wrapped target.
func (e *Engine) InvokeSetTrap(proxy, receiver value.Value, k key.Key, v value.Value) error {
	p, ok := proxyRef(proxy)
	if !ok {
		return errors.NewTypeError("'set' target is not a proxy")
	}
	if p.revoked {
		return errors.NewTypeError("Cannot set property on a revoked Proxy")
	}
	if p.handler.Set == nil {
		// No set trap, fall back to the target, keeping the receiver for any
		// nested proxy.
		if e.IsProxy(p.target) {
			return e.InvokeSetTrap(p.target, receiver, k, v)
		}
		if k.IsArrayIndex() {
			return e.SetIndexed(p.target, k.Index(), v, false)
		}
		return e.SetNamed(p.target, k.Name(), v, false)
	}
	if err := p.handler.Set(p.target, receiver, k, v); err != nil {
		return errors.NewProxyTrapError("set", err)
	}
	return nil
}

// InvokeGetTrap routes a read through the proxy's get trap. A nil trap
// forwards to the wrapped target.
func (e *Engine) InvokeGetTrap(proxy, receiver value.Value, k key.Key) (value.Value, error) {
	p, ok := proxyRef(proxy)
	if !ok {
		return value.Undefined, errors.NewTypeError("'get' target is not a proxy")
	}
	if p.revoked {
		return value.Undefined, errors.NewTypeError("Cannot get property on a revoked Proxy")
	}
	if p.handler.Get == nil {
		if e.IsProxy(p.target) {
			return e.InvokeGetTrap(p.target, receiver, k)
		}
		if k.IsArrayIndex() {
			v, _ := e.GetIndexed(p.target, k.Index())
			return v, nil
		}
		v, _ := e.GetNamedOwnOrInherited(p.target, k.Name())
		return v, nil
	}
	v, err := p.handler.Get(p.target, receiver, k)
	if err != nil {
		return value.Undefined, errors.NewProxyTrapError("get", err)
	}
	return v, nil
}

func proxyRef(v value.Value) (*Proxy, bool) {
	if !v.IsObject() {
		return nil, false
	}
	p, ok := v.AsObjectRef().(*Proxy)
	return p, ok
}

// namedAccessor is a storage accessor bound to one exact property name,
// handed to cached-name specializations at install time.
type namedAccessor struct {
	engine *Engine
	name   key.Name
}

func (a *namedAccessor) Name() key.Name { return a.name }

func (a *namedAccessor) Get(target value.Value) (value.Value, bool) {
	return a.engine.GetNamedOwnOrInherited(target, a.name)
}

func (a *namedAccessor) Set(target value.Value, v value.Value, strict bool) error {
	return a.engine.SetNamed(target, a.name, v, strict)
}
