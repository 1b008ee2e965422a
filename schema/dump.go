package schema

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Dump serializes s back into its TOML declaration form. The output parses
// back to an equivalent schema, so generated or hand-built schemas can be
// written out next to the protocol code that uses them.
func Dump(s *Schema) ([]byte, error) {
	decls, err := toDecls(s)
	if err != nil {
		return nil, err
	}
	out, err := toml.Marshal(schemaDecl{Attrs: decls})
	if err != nil {
		return nil, fmt.Errorf("schema: dump failed: %w", err)
	}
	return out, nil
}

func toDecls(s *Schema) ([]attrDecl, error) {
	decls := make([]attrDecl, 0, s.Len())
	for _, spec := range s.Specs() {
		d := attrDecl{ID: spec.ID, Name: spec.Name, Required: spec.Required}
		if err := fillKind(&d, spec.Kind); err != nil {
			return nil, fmt.Errorf("schema: attribute %q: %w", spec.Name, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func fillKind(d *attrDecl, k Kind) error {
	switch k.id {
	case KindNested:
		d.Kind = "nested"
		sub, err := toDecls(k.sub)
		if err != nil {
			return err
		}
		d.Attrs = sub
	case KindArray, KindList, KindPacked:
		d.Kind = k.id.String()
		switch {
		case k.sub != nil:
			sub, err := toDecls(k.sub)
			if err != nil {
				return err
			}
			d.Attrs = sub
		case k.elem.id == KindNested:
			sub, err := toDecls(k.elem.sub)
			if err != nil {
				return err
			}
			d.Attrs = sub
		default:
			d.Elem = k.elem.id.String()
		}
	default:
		d.Kind = k.id.String()
	}
	return nil
}
