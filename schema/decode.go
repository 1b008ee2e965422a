package schema

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/genlwire/internal/observability"
	"github.com/danmuck/genlwire/nlattr"
)

// Policy selects how the decoder treats attribute ids the schema does not
// declare.
type Policy int

const (
	// Strict fails the decode on any undeclared id. Silent drops mask
	// protocol-schema drift, so this is the default.
	Strict Policy = iota
	// Lenient drops undeclared ids with a warning.
	Lenient
)

// DecodeOpts constrains a decode call.
type DecodeOpts struct {
	Policy   Policy
	MaxDepth int
}

// DefaultDecodeOpts is strict with a nesting limit deep enough for any sane
// protocol family.
func DefaultDecodeOpts() DecodeOpts {
	return DecodeOpts{Policy: Strict, MaxDepth: 16}
}

// Decode parses one aligned TLV sequence against s with default options.
func Decode(s *Schema, buf []byte) (AttrSet, error) {
	return DecodeWith(s, buf, DefaultDecodeOpts())
}

// DecodeWith parses one aligned TLV sequence against s. Framing is validated
// first (pass 1), then records are interpreted against the schema (pass 2):
// undeclared ids follow opts.Policy, a second record for a non-Array id is a
// DuplicateAttrError, and required attributes missing after the walk are
// aggregated into one MissingAttrError.
func DecodeWith(s *Schema, buf []byte, opts DecodeOpts) (AttrSet, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultDecodeOpts().MaxDepth
	}
	set, err := decode(s, buf, opts, 0)
	observability.RecordDecode(len(buf), err)
	return set, err
}

func decode(s *Schema, buf []byte, opts DecodeOpts, depth int) (AttrSet, error) {
	if depth >= opts.MaxDepth {
		return nil, NestingTooDeepError{Depth: opts.MaxDepth}
	}

	raws, err := nlattr.ParseAttrs(buf)
	if err != nil {
		return nil, err
	}

	set := make(AttrSet, len(raws))
	seen := make(map[uint16]bool, len(raws))
	for _, ra := range raws {
		spec, ok := s.byID[ra.ID]
		if !ok {
			if opts.Policy == Strict {
				return nil, UnknownAttrError{ID: ra.ID, Offset: ra.Offset}
			}
			log.Warn().
				Uint16("id", ra.ID).
				Int("offset", ra.Offset).
				Msg("schema: dropping undeclared attribute")
			continue
		}

		if spec.Kind.id == KindArray {
			elem, err := decodePayload(spec, *spec.Kind.elem, ra, opts, depth)
			if err != nil {
				return nil, err
			}
			cur, ok := set[spec.Name]
			if !ok {
				cur = Value{Kind: KindArray}
			}
			cur.List = append(cur.List, elem)
			set[spec.Name] = cur
			continue
		}

		if seen[ra.ID] {
			return nil, DuplicateAttrError{ID: ra.ID, Name: spec.Name, Offset: ra.Offset}
		}
		seen[ra.ID] = true

		v, err := decodePayload(spec, spec.Kind, ra, opts, depth)
		if err != nil {
			return nil, err
		}
		set[spec.Name] = v
	}

	var missing []string
	for _, id := range s.order {
		spec := s.byID[id]
		if spec.Required {
			if _, ok := set[spec.Name]; !ok {
				missing = append(missing, spec.Name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, MissingAttrError{Names: missing}
	}
	return set, nil
}

// decodePayload interprets one record's payload as kind k. Codec failures are
// wrapped with the attribute's name, id and byte offset.
func decodePayload(spec Spec, k Kind, ra nlattr.RawAttr, opts DecodeOpts, depth int) (Value, error) {
	v, err := decodeKind(k, ra, opts, depth)
	if err != nil {
		return Value{}, AttrError{Name: spec.Name, ID: spec.ID, Offset: ra.Offset, Err: err}
	}
	return v, nil
}

func decodeKind(k Kind, ra nlattr.RawAttr, opts DecodeOpts, depth int) (Value, error) {
	switch k.id {
	case KindU8:
		v, err := ra.Uint8()
		return Uint8Value(v), err
	case KindU16:
		v, err := ra.Uint16()
		return Uint16Value(v), err
	case KindU32:
		v, err := ra.Uint32()
		return Uint32Value(v), err
	case KindU64:
		v, err := ra.Uint64()
		return Uint64Value(v), err
	case KindS8:
		v, err := ra.Int8()
		return Int8Value(v), err
	case KindS16:
		v, err := ra.Int16()
		return Int16Value(v), err
	case KindS32:
		v, err := ra.Int32()
		return Int32Value(v), err
	case KindS64:
		v, err := ra.Int64()
		return Int64Value(v), err
	case KindString:
		v, err := ra.NulString()
		return StringValue(v), err
	case KindBytes:
		v, err := ra.Bytes()
		return Value{Kind: KindBytes, Raw: v}, err
	case KindFlag:
		_, err := ra.Flag()
		return FlagValue(), err
	case KindNested:
		set, err := decode(k.sub, ra.Payload, opts, depth+1)
		if err != nil {
			return Value{}, err
		}
		return NestedValue(set), nil
	case KindList:
		return decodeList(k, ra, opts, depth)
	case KindPacked:
		return decodePacked(k, ra)
	default:
		return Value{}, fmt.Errorf("schema: unsupported kind %s", k.id)
	}
}

// decodeList parses an indexed-list payload: sub-records with ids 1..N,
// returned in id order.
func decodeList(k Kind, ra nlattr.RawAttr, opts DecodeOpts, depth int) (Value, error) {
	if depth+1 >= opts.MaxDepth {
		return Value{}, NestingTooDeepError{Depth: opts.MaxDepth}
	}
	raws, err := nlattr.ParseAttrs(ra.Payload)
	if err != nil {
		return Value{}, err
	}
	// Positional ids carry no meaning beyond order, so two records at the
	// same position are malformed, not a repeat.
	seen := make(map[uint16]bool, len(raws))
	for _, sub := range raws {
		if seen[sub.ID] {
			return Value{}, DuplicateAttrError{ID: sub.ID, Offset: sub.Offset}
		}
		seen[sub.ID] = true
	}
	sort.SliceStable(raws, func(i, j int) bool { return raws[i].ID < raws[j].ID })

	elems := make([]Value, 0, len(raws))
	for _, sub := range raws {
		var v Value
		if k.sub != nil {
			set, err := decode(k.sub, sub.Payload, opts, depth+2)
			if err != nil {
				return Value{}, err
			}
			v = NestedValue(set)
		} else {
			v, err = decodeKind(*k.elem, sub, opts, depth+1)
			if err != nil {
				return Value{}, err
			}
		}
		elems = append(elems, v)
	}
	return Value{Kind: KindList, List: elems}, nil
}

// decodePacked splits a payload into fixed-size chunks and decodes each.
func decodePacked(k Kind, ra nlattr.RawAttr) (Value, error) {
	size := k.elem.fixedSize()
	if size == 0 {
		return Value{}, fmt.Errorf("schema: packed element kind %s is not fixed-width", k.elem.id)
	}
	if len(ra.Payload)%size != 0 {
		return Value{}, nlattr.SizeMismatchError{Want: size, Got: len(ra.Payload)}
	}
	elems := make([]Value, 0, len(ra.Payload)/size)
	for off := 0; off < len(ra.Payload); off += size {
		chunk := nlattr.RawAttr{ID: ra.ID, Payload: ra.Payload[off : off+size], Offset: ra.Offset + off}
		v, err := decodeKind(*k.elem, chunk, DecodeOpts{}, 0)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Value{Kind: KindPacked, List: elems}, nil
}
