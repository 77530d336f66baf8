package object

import (
	"fmt"
	"sync"

	"propcache/pkg/key"
)

// Field describes one property slot in a shape: where it lives in the
// object's properties slice and its attribute flags.
type Field struct {
	offset       int
	name         key.Name
	writable     bool
	enumerable   bool
	configurable bool
}

func (f Field) Name() key.Name     { return f.name }
func (f Field) Offset() int        { return f.offset }
func (f Field) Writable() bool     { return f.writable }
func (f Field) Enumerable() bool   { return f.enumerable }
func (f Field) Configurable() bool { return f.configurable }

// Shape is a hidden class: the ordered field layout shared by every object
// that acquired the same properties in the same order. Objects transition
// between shapes on first definition of a property; the transitions map makes
// repeated construction of same-shaped objects converge on shared shapes.
type Shape struct {
	parent      *Shape
	fields      []Field
	transitions map[string]*Shape // keyed by transition hash
	mu          sync.RWMutex      // Protects transitions map
	version     uint32            // Bumped on any layout/flags change
}

func newRootShape() *Shape {
	return &Shape{transitions: make(map[string]*Shape)}
}

// rootShape is shared by all objects created without properties, so objects
// that add the same properties in the same order share shapes.
var rootShape = newRootShape()

// Fields returns the shape's field layout in definition order.
func (s *Shape) Fields() []Field { return s.fields }

func (s *Shape) Version() uint32 { return s.version }

// fieldOf scans the layout for a name. Returns (field, true) if present.
func (s *Shape) fieldOf(name key.Name) (Field, bool) {
	for _, f := range s.fields {
		if f.name.Equals(name) {
			return f, true
		}
	}
	return Field{}, false
}

// transitionHash distinguishes transitions by name identity and the attribute
// flags the new field carries.
func transitionHash(name key.Name, writable, enumerable, configurable bool) string {
	var id string
	if name.IsSymbol() {
		id = fmt.Sprintf("y:%p", name.Symbol())
	} else {
		id = "s:" + name.String()
	}
	return fmt.Sprintf("%s/%t%t%t", id, writable, enumerable, configurable)
}

// transition returns the shape reached by appending a field for name with the
// given flags, creating and memoizing it on first use.
func (s *Shape) transition(name key.Name, writable, enumerable, configurable bool) *Shape {
	hash := transitionHash(name, writable, enumerable, configurable)
	s.mu.RLock()
	next, ok := s.transitions[hash]
	s.mu.RUnlock()
	if ok {
		return next
	}

	off := len(s.fields)
	fld := Field{offset: off, name: name, writable: writable, enumerable: enumerable, configurable: configurable}
	newFields := make([]Field, len(s.fields)+1)
	copy(newFields, s.fields)
	newFields[len(s.fields)] = fld
	next = &Shape{parent: s, fields: newFields, transitions: make(map[string]*Shape), version: s.version + 1}

	s.mu.Lock()
	if existing, exists := s.transitions[hash]; exists {
		next = existing
	} else {
		s.transitions[hash] = next
	}
	s.mu.Unlock()
	return next
}
