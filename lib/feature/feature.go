// Package feature holds the in-memory data model shared by the conflation
// pipeline: attribute schemas, features and feature collections.
//
// Features are compared by identity, never by value. Two *Feature pointers
// refer to the same feature only if they are the same pointer; features that
// happen to carry equal attributes stay distinct records.
package feature

import (
	"fmt"
)

type AttributeType int

const (
	TypeString AttributeType = iota
	TypeNumber
	TypeBool
)

// Schema is an ordered attribute-name-to-type mapping shared by every
// feature of a collection.
type Schema struct {
	names []string
	types map[string]AttributeType
}

func NewSchema() *Schema {
	return &Schema{
		types: map[string]AttributeType{},
	}
}

func (s *Schema) AddAttribute(name string, typ AttributeType) {
	if _, exists := s.types[name]; exists {
		s.types[name] = typ
		return
	}
	s.names = append(s.names, name)
	s.types[name] = typ
}

func (s *Schema) HasAttribute(name string) bool {
	_, ok := s.types[name]
	return ok
}

func (s *Schema) AttributeType(name string) (AttributeType, bool) {
	typ, ok := s.types[name]
	return typ, ok
}

// AttributeNames returns the attribute names in declaration order.
func (s *Schema) AttributeNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

type Feature struct {
	schema   *Schema
	attrs    map[string]any
	geometry *Geometry
}

func New(schema *Schema) *Feature {
	return &Feature{
		schema: schema,
		attrs:  map[string]any{},
	}
}

func (f *Feature) Schema() *Schema {
	return f.schema
}

func (f *Feature) SetAttribute(name string, value any) error {
	if !f.schema.HasAttribute(name) {
		return fmt.Errorf("attribute %q is not part of the schema", name)
	}
	f.attrs[name] = value
	return nil
}

func (f *Feature) Attribute(name string) (any, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

// StringAttribute returns the attribute rendered as a string, or "" when the
// attribute is absent.
func (f *Feature) StringAttribute(name string) string {
	v, ok := f.attrs[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (f *Feature) SetGeometry(g *Geometry) {
	f.geometry = g
}

func (f *Feature) Geometry() *Geometry {
	return f.geometry
}

// Collection is an ordered set of features sharing one schema.
type Collection struct {
	schema   *Schema
	features []*Feature
}

func NewCollection(schema *Schema) *Collection {
	return &Collection{schema: schema}
}

func (c *Collection) Schema() *Schema {
	return c.schema
}

func (c *Collection) Add(f *Feature) {
	c.features = append(c.features, f)
}

func (c *Collection) Len() int {
	return len(c.features)
}

// Features returns the backing slice; callers must treat it as read-only.
func (c *Collection) Features() []*Feature {
	return c.features
}
