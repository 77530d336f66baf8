package object

import (
	"propcache/pkg/key"
	"propcache/pkg/value"
)

// PlainObject is the shape-based reference object: a hidden-class layout plus
// a flat properties slice addressed by field offsets.
type PlainObject struct {
	shape      *Shape
	prototype  value.Value
	properties []value.Value
	// Extensible flag - when false, no new properties can be added
	extensible bool
}

// NewPlainObject creates an empty extensible object with the given prototype
// (value.Null for none).
func NewPlainObject(prototype value.Value) *PlainObject {
	return &PlainObject{
		shape:      rootShape,
		prototype:  prototype,
		extensible: true,
	}
}

// Value wraps the object as an opaque runtime reference.
func (o *PlainObject) Value() value.Value { return value.NewObjectRef(o) }

// Shape returns the object's current hidden class.
func (o *PlainObject) Shape() *Shape { return o.shape }

func (o *PlainObject) Prototype() value.Value { return o.prototype }

func (o *PlainObject) SetPrototype(proto value.Value) { o.prototype = proto }

func (o *PlainObject) IsExtensible() bool { return o.extensible }

// PreventExtensions forbids adding new own properties. Irreversible.
func (o *PlainObject) PreventExtensions() { o.extensible = false }

// HasOwn reports whether name is an own property.
func (o *PlainObject) HasOwn(name key.Name) bool {
	_, ok := o.shape.fieldOf(name)
	return ok
}

// GetOwn looks up a direct (own) property. Returns (value, true) if present.
func (o *PlainObject) GetOwn(name key.Name) (value.Value, bool) {
	f, ok := o.shape.fieldOf(name)
	if !ok {
		return value.Undefined, false
	}
	if f.offset < len(o.properties) {
		return o.properties[f.offset], true
	}
	return value.Undefined, true
}

// GetOwnDescriptor returns the value and attribute flags for an own property.
// Returns (value, writable, enumerable, configurable, exists).
func (o *PlainObject) GetOwnDescriptor(name key.Name) (value.Value, bool, bool, bool, bool) {
	f, ok := o.shape.fieldOf(name)
	if !ok {
		return value.Undefined, false, false, false, false
	}
	var v value.Value = value.Undefined
	if f.offset < len(o.properties) {
		v = o.properties[f.offset]
	}
	return v, f.writable, f.enumerable, f.configurable, true
}

// SetOwn sets or defines an own property with regular assignment semantics.
// Creates a new shape on first definition. If the property exists and is
// non-writable, this is a no-op; callers that need the failure consult the
// descriptor first.
func (o *PlainObject) SetOwn(name key.Name, v value.Value) {
	if f, ok := o.shape.fieldOf(name); ok {
		// existing property: honor writable flag
		if f.writable {
			o.properties[f.offset] = v
		}
		return
	}
	// new property: regular assignment semantics -> writable: true, enumerable: true, configurable: true
	o.shape = o.shape.transition(name, true, true, true)
	o.properties = append(o.properties, v)
}

// DefineOwn defines or overwrites an own data property with default
// attributes (writable, enumerable, configurable all true). Returns false
// when the definition is forbidden: the object is non-extensible and the
// property is new, or an existing property is non-configurable and
// non-writable.
func (o *PlainObject) DefineOwn(name key.Name, v value.Value) bool {
	if f, ok := o.shape.fieldOf(name); ok {
		if !f.configurable {
			// A non-configurable field cannot regain default attributes;
			// only its value may change, and only if writable.
			if !f.writable {
				return false
			}
			o.properties[f.offset] = v
			return true
		}
		o.properties[f.offset] = v
		if !f.writable || !f.enumerable {
			o.reflagField(name, true, true, true)
		}
		return true
	}
	if !o.extensible {
		return false
	}
	o.shape = o.shape.transition(name, true, true, true)
	o.properties = append(o.properties, v)
	return true
}

// DefineOwnWithAttrs defines a new own property with explicit attributes,
// used to seed non-writable or non-configurable test fixtures and built-ins.
func (o *PlainObject) DefineOwnWithAttrs(name key.Name, v value.Value, writable, enumerable, configurable bool) bool {
	if f, ok := o.shape.fieldOf(name); ok {
		if !f.configurable {
			return false
		}
		o.properties[f.offset] = v
		o.reflagField(name, writable, enumerable, configurable)
		return true
	}
	if !o.extensible {
		return false
	}
	o.shape = o.shape.transition(name, writable, enumerable, configurable)
	o.properties = append(o.properties, v)
	return true
}

// reflagField rewrites one field's attribute flags. The object leaves the
// shared transition graph: flag changes are per-object, so it gets a private
// shape copy with a bumped version.
func (o *PlainObject) reflagField(name key.Name, writable, enumerable, configurable bool) {
	newFields := make([]Field, len(o.shape.fields))
	copy(newFields, o.shape.fields)
	for i := range newFields {
		if newFields[i].name.Equals(name) {
			newFields[i].writable = writable
			newFields[i].enumerable = enumerable
			newFields[i].configurable = configurable
			break
		}
	}
	o.shape = &Shape{
		parent:      o.shape.parent,
		fields:      newFields,
		transitions: make(map[string]*Shape),
		version:     o.shape.version + 1,
	}
}

// DeleteOwn removes an own property if present and configurable.
// Returns true if the property was deleted (or was absent).
func (o *PlainObject) DeleteOwn(name key.Name) bool {
	f, ok := o.shape.fieldOf(name)
	if !ok {
		return true
	}
	if !f.configurable {
		return false
	}
	newFields := make([]Field, 0, len(o.shape.fields)-1)
	for _, fld := range o.shape.fields {
		if fld.name.Equals(name) {
			continue
		}
		nf := fld
		if fld.offset > f.offset {
			nf.offset = fld.offset - 1
		}
		newFields = append(newFields, nf)
	}
	newProps := make([]value.Value, 0, len(o.properties)-1)
	for i := range o.properties {
		if i == f.offset {
			continue
		}
		newProps = append(newProps, o.properties[i])
	}
	o.shape = &Shape{parent: o.shape.parent, fields: newFields, transitions: make(map[string]*Shape), version: o.shape.version + 1}
	o.properties = newProps
	return true
}

// OwnKeys lists own property names in definition order.
func (o *PlainObject) OwnKeys() []key.Name {
	keys := make([]key.Name, len(o.shape.fields))
	for i, f := range o.shape.fields {
		keys[i] = f.name
	}
	return keys
}
