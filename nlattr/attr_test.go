package nlattr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestAppendAttrAlignsAndCountsLength(t *testing.T) {
	// 5-byte payload: length field says 9, record occupies 12 bytes.
	buf, err := AppendAttr(nil, RawAttr{ID: 7, Payload: []byte{1, 2, 3, 4, 5}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(buf) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(buf))
	}
	if got := binary.NativeEndian.Uint16(buf[0:2]); got != 9 {
		t.Fatalf("length field: got %d want 9", got)
	}
	if got := binary.NativeEndian.Uint16(buf[2:4]); got != 7 {
		t.Fatalf("id field: got %d want 7", got)
	}
	if buf[9] != 0 || buf[10] != 0 || buf[11] != 0 {
		t.Fatalf("padding not zeroed: % x", buf[9:])
	}
}

func TestParseAttrsRoundTrip(t *testing.T) {
	in := []RawAttr{
		NewUint32(1, 0xdeadbeef),
		NewNulString(2, "wlan0"),
		NewFlag(3),
		NewNested(4, []byte{8, 0, 1, 0, 9, 0, 0, 0}),
	}
	buf, err := EncodeAttrs(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(buf)%4 != 0 {
		t.Fatalf("buffer not aligned: %d", len(buf))
	}

	out, err := ParseAttrs(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d attrs, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Nested != in[i].Nested {
			t.Fatalf("attr %d identity mismatch: got=%+v want=%+v", i, out[i], in[i])
		}
		if !bytes.Equal(out[i].Payload, in[i].Payload) {
			t.Fatalf("attr %d payload mismatch: % x vs % x", i, out[i].Payload, in[i].Payload)
		}
	}
	if out[3].Offset%4 != 0 {
		t.Fatalf("attr offset not aligned: %d", out[3].Offset)
	}
}

func TestParseAttrsNestedBitStripped(t *testing.T) {
	buf, err := AppendAttr(nil, NewNested(5, nil))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := binary.NativeEndian.Uint16(buf[2:4]); got != 5|NestedBit {
		t.Fatalf("nested bit not set on wire: %#x", got)
	}
	out, err := ParseAttrs(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out[0].ID != 5 || !out[0].Nested {
		t.Fatalf("expected id=5 nested=true, got %+v", out[0])
	}
}

func TestParseAttrsTruncatedHeader(t *testing.T) {
	_, err := ParseAttrs([]byte{8, 0, 1})
	var truncated TruncatedHeaderError
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedHeaderError, got %v", err)
	}
	if truncated.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", truncated.Offset)
	}
}

func TestParseAttrsDeclaredLengthBelowHeader(t *testing.T) {
	buf := []byte{2, 0, 1, 0}
	_, err := ParseAttrs(buf)
	var truncated TruncatedHeaderError
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedHeaderError, got %v", err)
	}
}

func TestParseAttrsTruncatedPayload(t *testing.T) {
	// Declares 8 bytes but only 6 are present.
	buf := []byte{8, 0, 1, 0, 3, 0}
	_, err := ParseAttrs(buf)
	var truncated TruncatedPayloadError
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedPayloadError, got %v", err)
	}
	if truncated.ID != 1 || truncated.Declared != 8 || truncated.Remaining != 6 {
		t.Fatalf("unexpected error detail: %+v", truncated)
	}
}

func TestParseAttrsTruncatedPadding(t *testing.T) {
	// A 2-byte payload: record is 6 bytes, padding to 8. Cut at 6.
	full, err := AppendAttr(nil, NewUint16(1, 42))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	_, err = ParseAttrs(full[:6])
	var truncated TruncatedPaddingError
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedPaddingError, got %v", err)
	}
}

func TestParseAttrsTruncationSweepNeverPanics(t *testing.T) {
	full, err := EncodeAttrs([]RawAttr{
		NewUint32(1, 3),
		NewNulString(2, "abcde"),
		NewUint16(3, 9),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for cut := 0; cut < len(full); cut++ {
		attrs, err := ParseAttrs(full[:cut])
		if err == nil {
			// Truncation on a record boundary parses a prefix cleanly.
			if cut%4 != 0 {
				t.Fatalf("cut=%d: expected a framing error, got %d attrs", cut, len(attrs))
			}
			continue
		}
		var hdr TruncatedHeaderError
		var pay TruncatedPayloadError
		var pad TruncatedPaddingError
		if !errors.As(err, &hdr) && !errors.As(err, &pay) && !errors.As(err, &pad) {
			t.Fatalf("cut=%d: unexpected error %v", cut, err)
		}
	}
}

func TestAppendAttrPayloadTooLarge(t *testing.T) {
	_, err := AppendAttr(nil, RawAttr{ID: 1, Payload: make([]byte, 1<<16)})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}
