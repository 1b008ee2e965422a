package nlattr

import (
	"encoding/binary"
)

const (
	// HeaderLen is the fixed TLV record header: u16 length, u16 id.
	HeaderLen = 4

	// NestedBit marks an attribute whose payload is itself a TLV sequence.
	// It is wire metadata, not part of the attribute's identity.
	NestedBit uint16 = 0x8000

	// maxPayload is the largest payload a u16 length field can describe.
	maxPayload = int(^uint16(0)) - HeaderLen
)

// Align rounds n up to the next 4-byte boundary.
func Align(n int) int {
	return (n + 3) &^ 3
}

// Pad appends zero bytes to b until its length is 4-byte aligned.
func Pad(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// RawAttr is one framing-level attribute record: an id and an opaque payload,
// before any schema interpretation. Offset is the record's position in the
// buffer it was parsed from, for diagnostics.
type RawAttr struct {
	ID      uint16
	Nested  bool
	Payload []byte
	Offset  int
}

// AppendAttr appends one TLV record to dst: header, payload, then padding to
// the next 4-byte boundary. The length field counts header and payload only;
// padding is counted in the buffer, never in the record length.
func AppendAttr(dst []byte, a RawAttr) ([]byte, error) {
	if len(a.Payload) > maxPayload {
		return nil, ErrPayloadTooLarge
	}
	id := a.ID
	if a.Nested {
		id |= NestedBit
	}
	var hdr [HeaderLen]byte
	binary.NativeEndian.PutUint16(hdr[0:2], uint16(HeaderLen+len(a.Payload)))
	binary.NativeEndian.PutUint16(hdr[2:4], id)
	dst = append(dst, hdr[:]...)
	dst = append(dst, a.Payload...)
	return Pad(dst), nil
}

// EncodeAttrs serializes records in order into one aligned TLV sequence.
func EncodeAttrs(attrs []RawAttr) ([]byte, error) {
	var out []byte
	for _, a := range attrs {
		var err error
		out, err = AppendAttr(out, a)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseAttrs walks buf and returns every TLV record in encounter order. It is
// the framing pass: no schema is consulted, and the nested bit is stripped
// from each id and reported via RawAttr.Nested. Every malformed condition is
// a typed Truncated* error carrying the byte offset; ParseAttrs never reads
// past the end of buf.
func ParseAttrs(buf []byte) ([]RawAttr, error) {
	var attrs []RawAttr
	for i := 0; i < len(buf); {
		if len(buf)-i < HeaderLen {
			return nil, TruncatedHeaderError{Offset: i}
		}
		declared := int(binary.NativeEndian.Uint16(buf[i : i+2]))
		id := binary.NativeEndian.Uint16(buf[i+2 : i+4])
		if declared < HeaderLen {
			return nil, TruncatedHeaderError{Offset: i}
		}
		if declared > len(buf)-i {
			return nil, TruncatedPayloadError{
				ID:        id &^ NestedBit,
				Offset:    i,
				Declared:  declared,
				Remaining: len(buf) - i,
			}
		}
		next := i + Align(declared)
		if next > len(buf) {
			return nil, TruncatedPaddingError{ID: id &^ NestedBit, Offset: i}
		}
		payload := make([]byte, declared-HeaderLen)
		copy(payload, buf[i+HeaderLen:i+declared])
		attrs = append(attrs, RawAttr{
			ID:      id &^ NestedBit,
			Nested:  id&NestedBit != 0,
			Payload: payload,
			Offset:  i,
		})
		i = next
	}
	return attrs, nil
}
