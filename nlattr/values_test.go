package nlattr

import (
	"bytes"
	"errors"
	"testing"
)

func TestNulStringNeverDoubleTerminates(t *testing.T) {
	a := NewNulString(1, "eth0\x00")
	if !bytes.Equal(a.Payload, []byte("eth0\x00")) {
		t.Fatalf("unexpected payload: % x", a.Payload)
	}
	s, err := a.NulString()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s != "eth0" {
		t.Fatalf("expected %q, got %q", "eth0", s)
	}
}

func TestNulStringMissingTerminator(t *testing.T) {
	a := RawAttr{ID: 1, Payload: []byte("eth0")}
	_, err := a.NulString()
	var missing MissingTerminatorError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTerminatorError, got %v", err)
	}
}

func TestFlagRejectsPayload(t *testing.T) {
	ok, err := NewFlag(3).Flag()
	if err != nil || !ok {
		t.Fatalf("flag decode: ok=%v err=%v", ok, err)
	}
	_, err = RawAttr{ID: 3, Payload: []byte{1}}.Flag()
	var mismatch SizeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SizeMismatchError, got %v", err)
	}
}

func TestFixedWidthSizeMismatch(t *testing.T) {
	_, err := RawAttr{ID: 1, Payload: []byte{1, 2, 3}}.Uint32()
	var mismatch SizeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SizeMismatchError, got %v", err)
	}
	if mismatch.Want != 4 || mismatch.Got != 3 {
		t.Fatalf("unexpected detail: %+v", mismatch)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	v, err := NewInt32(1, -7).Int32()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v != -7 {
		t.Fatalf("expected -7, got %d", v)
	}
	v64, err := NewInt64(2, -1).Int64()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v64 != -1 {
		t.Fatalf("expected -1, got %d", v64)
	}
}
