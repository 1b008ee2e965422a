package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// attrDecl is the on-disk declaration of one attribute. Schemas are data, so
// protocol families can keep their attribute tables in TOML next to the code
// that speaks them.
type attrDecl struct {
	ID       uint16     `toml:"id"`
	Name     string     `toml:"name"`
	Kind     string     `toml:"kind"`
	Required bool       `toml:"required,omitempty"`
	Elem     string     `toml:"elem,omitempty"`
	Attrs    []attrDecl `toml:"attrs,omitempty"`
}

type schemaDecl struct {
	Attrs []attrDecl `toml:"attrs"`
}

var scalarKinds = map[string]Kind{
	"u8":     U8,
	"u16":    U16,
	"u32":    U32,
	"u64":    U64,
	"s8":     S8,
	"s16":    S16,
	"s32":    S32,
	"s64":    S64,
	"string": String,
	"bytes":  Bytes,
	"flag":   Flag,
}

// Load reads a schema declaration from a TOML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: load failed (%s): %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a schema from TOML declaration data. Keys the declaration
// format does not define are rejected rather than ignored; a typo in a schema
// file should fail loudly, not silently drop an attribute property.
func Parse(data []byte) (*Schema, error) {
	var decl schemaDecl
	md, err := toml.Decode(string(data), &decl)
	if err != nil {
		return nil, fmt.Errorf("schema: parse failed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("schema: unknown declaration keys: %s", strings.Join(keys, ", "))
	}
	return fromDecls(decl.Attrs)
}

func fromDecls(decls []attrDecl) (*Schema, error) {
	specs := make([]Spec, 0, len(decls))
	for _, d := range decls {
		k, err := buildKind(d)
		if err != nil {
			return nil, err
		}
		specs = append(specs, Spec{ID: d.ID, Name: d.Name, Kind: k, Required: d.Required})
	}
	return New(specs...)
}

func buildKind(d attrDecl) (Kind, error) {
	if k, ok := scalarKinds[d.Kind]; ok {
		if d.Elem != "" || len(d.Attrs) > 0 {
			return Kind{}, fmt.Errorf("schema: attribute %q: %s takes no elem or attrs", d.Name, d.Kind)
		}
		return k, nil
	}
	switch d.Kind {
	case "nested":
		sub, err := fromDecls(d.Attrs)
		if err != nil {
			return Kind{}, err
		}
		return Nested(sub), nil
	case "array":
		elem, err := buildElem(d)
		if err != nil {
			return Kind{}, err
		}
		return ArrayOf(elem), nil
	case "list":
		if len(d.Attrs) > 0 {
			sub, err := fromDecls(d.Attrs)
			if err != nil {
				return Kind{}, err
			}
			return ListOfSchema(sub), nil
		}
		elem, ok := scalarKinds[d.Elem]
		if !ok {
			return Kind{}, fmt.Errorf("schema: attribute %q: list elem %q is not a scalar kind", d.Name, d.Elem)
		}
		return ListOf(elem), nil
	case "packed":
		elem, ok := scalarKinds[d.Elem]
		if !ok || elem.fixedSize() == 0 {
			return Kind{}, fmt.Errorf("schema: attribute %q: packed elem %q is not fixed-width", d.Name, d.Elem)
		}
		return PackedOf(elem), nil
	default:
		return Kind{}, fmt.Errorf("schema: attribute %q: unknown kind %q", d.Name, d.Kind)
	}
}

// buildElem resolves an array element: a scalar named by elem, or a nested
// sub-schema declared inline.
func buildElem(d attrDecl) (Kind, error) {
	if len(d.Attrs) > 0 {
		sub, err := fromDecls(d.Attrs)
		if err != nil {
			return Kind{}, err
		}
		return Nested(sub), nil
	}
	elem, ok := scalarKinds[d.Elem]
	if !ok {
		return Kind{}, fmt.Errorf("schema: attribute %q: array elem %q is not a scalar kind", d.Name, d.Elem)
	}
	return elem, nil
}
