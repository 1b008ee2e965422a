package schema

import (
	"fmt"

	"github.com/danmuck/genlwire/nlattr"
)

// Spec declares one attribute within a schema.
type Spec struct {
	ID       uint16
	Name     string
	Kind     Kind
	Required bool
}

// Schema is an immutable bijection between attribute ids and named specs.
// Construct with New; a zero Schema is valid and declares no attributes.
type Schema struct {
	byID   map[uint16]Spec
	byName map[string]uint16
	order  []uint16 // declaration order, drives deterministic encode output
}

// New builds a schema from specs. Ids must be unique, names must be unique
// and non-empty, and ids must not use the nested wire bit; both directions of
// the id<->name bijection are required for round-tripping.
func New(specs ...Spec) (*Schema, error) {
	s := &Schema{
		byID:   make(map[uint16]Spec, len(specs)),
		byName: make(map[string]uint16, len(specs)),
		order:  make([]uint16, 0, len(specs)),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("schema: attribute id %d has an empty name", spec.ID)
		}
		if spec.ID&nlattr.NestedBit != 0 {
			return nil, fmt.Errorf("schema: attribute %q id %#x uses the reserved nested bit", spec.Name, spec.ID)
		}
		if err := checkKind(spec.Name, spec.Kind); err != nil {
			return nil, err
		}
		if _, dup := s.byID[spec.ID]; dup {
			return nil, fmt.Errorf("schema: duplicate attribute id %d", spec.ID)
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate attribute name %q", spec.Name)
		}
		s.byID[spec.ID] = spec
		s.byName[spec.Name] = spec.ID
		s.order = append(s.order, spec.ID)
	}
	return s, nil
}

// checkKind validates a declared kind all the way down its element chain, so
// an unencodable kind cannot hide inside an Array or List and surface as a
// decode-time fault. Nested sub-schemas were already validated by their own
// New call.
func checkKind(name string, k Kind) error {
	switch k.id {
	case KindInvalid:
		return fmt.Errorf("schema: attribute %q has no kind", name)
	case KindPacked:
		if k.elem.fixedSize() == 0 {
			return fmt.Errorf("schema: attribute %q: packed element kind %s is not fixed-width",
				name, k.elem.id)
		}
	case KindArray, KindList:
		if k.elem != nil {
			return checkKind(name, *k.elem)
		}
	}
	return nil
}

// MustNew is New for static declarations; it panics on an invalid spec set.
func MustNew(specs ...Spec) *Schema {
	s, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of declared attributes.
func (s *Schema) Len() int { return len(s.order) }

// ByID looks up a spec by attribute id.
func (s *Schema) ByID(id uint16) (Spec, bool) {
	spec, ok := s.byID[id]
	return spec, ok
}

// ByName looks up a spec by attribute name.
func (s *Schema) ByName(name string) (Spec, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Spec{}, false
	}
	return s.byID[id], true
}

// Specs returns the specs in declaration order.
func (s *Schema) Specs() []Spec {
	out := make([]Spec, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
