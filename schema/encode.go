package schema

import (
	"sort"

	"github.com/danmuck/genlwire/internal/observability"
	"github.com/danmuck/genlwire/nlattr"
)

// Encode serializes values against s into one aligned TLV sequence. Records
// are emitted in the schema's declaration order regardless of map order, so
// identical logical input produces identical bytes. A name s does not declare
// is a hard error, and every required attribute absent from values is
// reported in a single MissingAttrError after the walk.
func Encode(s *Schema, values AttrSet) ([]byte, error) {
	buf, err := encode(s, values)
	observability.RecordEncode(len(values), err)
	return buf, err
}

func encode(s *Schema, values AttrSet) ([]byte, error) {
	unknown := make([]string, 0)
	for name := range values {
		if _, ok := s.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, UnknownAttrError{Name: unknown[0]}
	}

	var out []byte
	var missing []string
	for _, id := range s.order {
		spec := s.byID[id]
		v, ok := values[spec.Name]
		if !ok {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		// An Array with no elements emits no records, which decodes as the
		// attribute being absent. For a required attribute that would break
		// the round trip, so it is reported as missing up front.
		if spec.Required && spec.Kind.id == KindArray && v.Kind == KindArray && len(v.List) == 0 {
			missing = append(missing, spec.Name)
			continue
		}
		var err error
		out, err = appendValue(out, spec, v)
		if err != nil {
			return nil, err
		}
	}
	if len(missing) > 0 {
		return nil, MissingAttrError{Names: missing}
	}
	return out, nil
}

// appendValue emits the record(s) for one declared attribute.
func appendValue(dst []byte, spec Spec, v Value) ([]byte, error) {
	if spec.Kind.id == KindArray {
		if v.Kind != KindArray {
			return nil, KindMismatchError{Name: spec.Name, Want: KindArray, Got: v.Kind}
		}
		for _, elem := range v.List {
			payload, nested, err := encodePayload(spec.Name, *spec.Kind.elem, elem)
			if err != nil {
				return nil, err
			}
			dst, err = nlattr.AppendAttr(dst, nlattr.RawAttr{ID: spec.ID, Nested: nested, Payload: payload})
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	}

	payload, nested, err := encodePayload(spec.Name, spec.Kind, v)
	if err != nil {
		return nil, err
	}
	return nlattr.AppendAttr(dst, nlattr.RawAttr{ID: spec.ID, Nested: nested, Payload: payload})
}

// encodePayload maps one value to a single record payload. nested reports
// whether the record must carry the nested wire bit.
func encodePayload(name string, k Kind, v Value) (payload []byte, nested bool, err error) {
	if v.Kind != k.id {
		return nil, false, KindMismatchError{Name: name, Want: k.id, Got: v.Kind}
	}
	switch k.id {
	case KindU8:
		return []byte{v.Uint8}, false, nil
	case KindU16:
		return nlattr.NewUint16(0, v.Uint16).Payload, false, nil
	case KindU32:
		return nlattr.NewUint32(0, v.Uint32).Payload, false, nil
	case KindU64:
		return nlattr.NewUint64(0, v.Uint64).Payload, false, nil
	case KindS8:
		return []byte{uint8(v.Int8)}, false, nil
	case KindS16:
		return nlattr.NewInt16(0, v.Int16).Payload, false, nil
	case KindS32:
		return nlattr.NewInt32(0, v.Int32).Payload, false, nil
	case KindS64:
		return nlattr.NewInt64(0, v.Int64).Payload, false, nil
	case KindString:
		return nlattr.NewNulString(0, v.Str).Payload, false, nil
	case KindBytes:
		buf := make([]byte, len(v.Raw))
		copy(buf, v.Raw)
		return buf, false, nil
	case KindFlag:
		return nil, false, nil
	case KindNested:
		inner, err := encode(k.sub, v.Set)
		if err != nil {
			return nil, false, err
		}
		return inner, true, nil
	case KindList:
		inner, err := encodeList(name, k, v.List)
		if err != nil {
			return nil, false, err
		}
		return inner, true, nil
	case KindPacked:
		return encodePacked(name, k, v.List)
	default:
		return nil, false, KindMismatchError{Name: name, Want: k.id, Got: v.Kind}
	}
}

// encodeList emits one sub-record per element with ids 1..N; the ids carry
// position, nothing else.
func encodeList(name string, k Kind, elems []Value) ([]byte, error) {
	if len(elems) > maxListElems {
		return nil, ListTooLongError{Name: name, Count: len(elems)}
	}
	var out []byte
	for i, elem := range elems {
		var payload []byte
		var nested bool
		var err error
		if k.sub != nil {
			if elem.Kind != KindNested {
				return nil, KindMismatchError{Name: name, Want: KindNested, Got: elem.Kind}
			}
			payload, err = encode(k.sub, elem.Set)
			nested = true
		} else {
			payload, nested, err = encodePayload(name, *k.elem, elem)
		}
		if err != nil {
			return nil, err
		}
		out, err = nlattr.AppendAttr(out, nlattr.RawAttr{ID: uint16(i + 1), Nested: nested, Payload: payload})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// encodePacked concatenates fixed-width element payloads with no per-element
// framing.
func encodePacked(name string, k Kind, elems []Value) ([]byte, bool, error) {
	var out []byte
	for _, elem := range elems {
		payload, _, err := encodePayload(name, *k.elem, elem)
		if err != nil {
			return nil, false, err
		}
		out = append(out, payload...)
	}
	return out, false, nil
}
