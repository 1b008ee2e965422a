package nlattr

import (
	"bytes"
	"encoding/binary"
)

// Payloads use the native byte order of the host, matching the kernel's
// netlink attribute contract.

// NewUint8 creates a uint8 attribute record.
func NewUint8(id uint16, v uint8) RawAttr {
	return RawAttr{ID: id, Payload: []byte{v}}
}

// NewUint16 creates a uint16 attribute record.
func NewUint16(id uint16, v uint16) RawAttr {
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, v)
	return RawAttr{ID: id, Payload: buf}
}

// NewUint32 creates a uint32 attribute record.
func NewUint32(id uint16, v uint32) RawAttr {
	buf := make([]byte, 4)
	binary.NativeEndian.PutUint32(buf, v)
	return RawAttr{ID: id, Payload: buf}
}

// NewUint64 creates a uint64 attribute record.
func NewUint64(id uint16, v uint64) RawAttr {
	buf := make([]byte, 8)
	binary.NativeEndian.PutUint64(buf, v)
	return RawAttr{ID: id, Payload: buf}
}

// NewInt8 creates an int8 attribute record.
func NewInt8(id uint16, v int8) RawAttr {
	return NewUint8(id, uint8(v))
}

// NewInt16 creates an int16 attribute record.
func NewInt16(id uint16, v int16) RawAttr {
	return NewUint16(id, uint16(v))
}

// NewInt32 creates an int32 attribute record.
func NewInt32(id uint16, v int32) RawAttr {
	return NewUint32(id, uint32(v))
}

// NewInt64 creates an int64 attribute record.
func NewInt64(id uint16, v int64) RawAttr {
	return NewUint64(id, uint64(v))
}

// NewNulString creates a NUL-terminated string record. Exactly one terminator
// is appended; an input that already ends in NUL is not terminated twice.
func NewNulString(id uint16, s string) RawAttr {
	b := []byte(s)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return RawAttr{ID: id, Payload: append(b, 0)}
}

// NewBytes creates an opaque byte-blob record.
func NewBytes(id uint16, v []byte) RawAttr {
	buf := make([]byte, len(v))
	copy(buf, v)
	return RawAttr{ID: id, Payload: buf}
}

// NewFlag creates a zero-length presence-marker record.
func NewFlag(id uint16) RawAttr {
	return RawAttr{ID: id}
}

// NewNested creates a record whose payload is itself a TLV sequence. The
// nested bit is set on the wire id.
func NewNested(id uint16, payload []byte) RawAttr {
	return RawAttr{ID: id, Nested: true, Payload: payload}
}

// Uint8 returns the payload as uint8.
func (a RawAttr) Uint8() (uint8, error) {
	if len(a.Payload) != 1 {
		return 0, SizeMismatchError{Want: 1, Got: len(a.Payload)}
	}
	return a.Payload[0], nil
}

// Uint16 returns the payload as uint16.
func (a RawAttr) Uint16() (uint16, error) {
	if len(a.Payload) != 2 {
		return 0, SizeMismatchError{Want: 2, Got: len(a.Payload)}
	}
	return binary.NativeEndian.Uint16(a.Payload), nil
}

// Uint32 returns the payload as uint32.
func (a RawAttr) Uint32() (uint32, error) {
	if len(a.Payload) != 4 {
		return 0, SizeMismatchError{Want: 4, Got: len(a.Payload)}
	}
	return binary.NativeEndian.Uint32(a.Payload), nil
}

// Uint64 returns the payload as uint64.
func (a RawAttr) Uint64() (uint64, error) {
	if len(a.Payload) != 8 {
		return 0, SizeMismatchError{Want: 8, Got: len(a.Payload)}
	}
	return binary.NativeEndian.Uint64(a.Payload), nil
}

// Int8 returns the payload as int8.
func (a RawAttr) Int8() (int8, error) {
	v, err := a.Uint8()
	return int8(v), err
}

// Int16 returns the payload as int16.
func (a RawAttr) Int16() (int16, error) {
	v, err := a.Uint16()
	return int16(v), err
}

// Int32 returns the payload as int32.
func (a RawAttr) Int32() (int32, error) {
	v, err := a.Uint32()
	return int32(v), err
}

// Int64 returns the payload as int64.
func (a RawAttr) Int64() (int64, error) {
	v, err := a.Uint64()
	return int64(v), err
}

// NulString returns the payload as a string, up to the first NUL. A payload
// with no NUL at all is malformed.
func (a RawAttr) NulString() (string, error) {
	i := bytes.IndexByte(a.Payload, 0)
	if i < 0 {
		return "", MissingTerminatorError{Len: len(a.Payload)}
	}
	return string(a.Payload[:i]), nil
}

// Bytes returns a copy of the payload.
func (a RawAttr) Bytes() ([]byte, error) {
	buf := make([]byte, len(a.Payload))
	copy(buf, a.Payload)
	return buf, nil
}

// Flag reports presence. A flag record carries meaning by existing; any
// payload bytes are malformed.
func (a RawAttr) Flag() (bool, error) {
	if len(a.Payload) != 0 {
		return false, SizeMismatchError{Want: 0, Got: len(a.Payload)}
	}
	return true, nil
}
