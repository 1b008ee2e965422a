package genlmsg

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/danmuck/genlwire/internal/observability"
	"github.com/danmuck/genlwire/nlattr"
	"github.com/danmuck/genlwire/schema"
)

const (
	// NlHeaderLen is the fixed netlink header: u32 len, u16 type, u16 flags,
	// u32 seq, u32 pid.
	NlHeaderLen = 16
	// GenlHeaderLen is the generic netlink header: u8 cmd, u8 version,
	// u16 reserved.
	GenlHeaderLen = 4
)

// NlHeader is the fixed netlink message header.
type NlHeader struct {
	Len   uint32
	Type  uint16
	Flags uint16
	Seq   uint32
	PID   uint32
}

// GenlHeader is the generic netlink header following NlHeader.
type GenlHeader struct {
	Cmd     uint8
	Version uint8
}

// Request describes one generic netlink request message.
type Request struct {
	FamilyID uint16
	Cmd      uint8
	Version  uint8
	Flags    uint16
	Seq      uint32
	PortID   uint32
	Attrs    []byte
}

// BuildRequest serializes r into a complete message: netlink header, generic
// netlink header, then the attribute payload padded to 4 bytes. The header
// length field is the final total.
func BuildRequest(r Request) ([]byte, error) {
	attrs := nlattr.Pad(append([]byte(nil), r.Attrs...))
	total := NlHeaderLen + GenlHeaderLen + len(attrs)
	if int64(total) > math.MaxUint32 {
		return nil, ErrAttrsTooLarge
	}

	buf := make([]byte, NlHeaderLen+GenlHeaderLen, total)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(total))
	binary.NativeEndian.PutUint16(buf[4:6], r.FamilyID)
	binary.NativeEndian.PutUint16(buf[6:8], r.Flags)
	binary.NativeEndian.PutUint32(buf[8:12], r.Seq)
	binary.NativeEndian.PutUint32(buf[12:16], r.PortID)
	buf[16] = r.Cmd
	buf[17] = r.Version
	// buf[18:20] reserved, zero
	return append(buf, attrs...), nil
}

// Response is one parsed, self-contained response message. Attrs is the raw
// attribute payload left after both headers; Ack marks a zero-errno
// NLMSG_ERROR acknowledgement, which carries no attributes.
type Response struct {
	Header NlHeader
	Genl   GenlHeader
	Attrs  []byte
	Ack    bool
}

// ParseResponse classifies one message buffer. NLMSG_DONE returns ErrDone, a
// nonzero NLMSG_ERROR returns the kernel's code as a ProtocolError, and a
// zero-errno NLMSG_ERROR is an acknowledgement. Anything else is a data
// message whose attribute payload the caller hands to a response schema.
func ParseResponse(buf []byte) (*Response, error) {
	resp, err := parseResponse(buf)
	var nlerr ProtocolError
	switch {
	case err == nil && resp.Ack:
		observability.RecordEnvelope("ack")
	case err == nil:
		observability.RecordEnvelope("attrs")
	case errors.Is(err, ErrDone):
		observability.RecordEnvelope("done")
	case errors.As(err, &nlerr):
		observability.RecordEnvelope("nlerr")
	default:
		observability.RecordEnvelope("malformed")
	}
	return resp, err
}

func parseResponse(buf []byte) (*Response, error) {
	if len(buf) < NlHeaderLen {
		return nil, ErrShortHeader
	}
	hdr := NlHeader{
		Len:   binary.NativeEndian.Uint32(buf[0:4]),
		Type:  binary.NativeEndian.Uint16(buf[4:6]),
		Flags: binary.NativeEndian.Uint16(buf[6:8]),
		Seq:   binary.NativeEndian.Uint32(buf[8:12]),
		PID:   binary.NativeEndian.Uint32(buf[12:16]),
	}
	if int64(hdr.Len) < NlHeaderLen || int64(hdr.Len) > int64(len(buf)) {
		return nil, ErrLengthMismatch
	}
	body := buf[NlHeaderLen:hdr.Len]

	switch hdr.Type {
	case NLMSG_DONE:
		return nil, ErrDone
	case NLMSG_ERROR:
		// Body: s32 error code, then the offending request's header echoed.
		if len(body) < 4 {
			return nil, ErrShortErrorBody
		}
		code := int32(binary.NativeEndian.Uint32(body[0:4]))
		if code == 0 {
			return &Response{Header: hdr, Ack: true}, nil
		}
		if code < 0 {
			code = -code
		}
		return nil, ProtocolError{Errno: code}
	}

	if len(body) < GenlHeaderLen {
		return nil, ErrShortGenlHeader
	}
	resp := &Response{
		Header: hdr,
		Genl:   GenlHeader{Cmd: body[0], Version: body[1]},
		Attrs:  body[GenlHeaderLen:],
	}
	return resp, nil
}

// DecodeResponse joins envelope parsing and schema decoding: the response's
// attribute payload is decoded against s. ErrDone and ProtocolError pass
// through for the caller to classify.
func DecodeResponse(s *schema.Schema, buf []byte, opts schema.DecodeOpts) (schema.AttrSet, error) {
	resp, err := ParseResponse(buf)
	if err != nil {
		return nil, err
	}
	if resp.Ack {
		return schema.AttrSet{}, nil
	}
	return schema.DecodeWith(s, resp.Attrs, opts)
}
