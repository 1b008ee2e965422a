package schema

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const stationDecl = `
[[attrs]]
id = 1
name = "ifindex"
kind = "u32"
required = true

[[attrs]]
id = 2
name = "ssid"
kind = "string"

[[attrs]]
id = 3
name = "rates"
kind = "array"
elem = "u32"

[[attrs]]
id = 4
name = "caps"
kind = "packed"
elem = "u16"

[[attrs]]
id = 5
name = "key"
kind = "nested"

  [[attrs.attrs]]
  id = 1
  name = "idx"
  kind = "u8"

  [[attrs.attrs]]
  id = 2
  name = "material"
  kind = "bytes"

[[attrs]]
id = 6
name = "groups"
kind = "list"

  [[attrs.attrs]]
  id = 1
  name = "gname"
  kind = "string"
`

func TestParseDeclaration(t *testing.T) {
	s, err := Parse([]byte(stationDecl))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Len() != 6 {
		t.Fatalf("expected 6 attributes, got %d", s.Len())
	}

	spec, ok := s.ByName("ifindex")
	if !ok || spec.ID != 1 || !spec.Required || spec.Kind.ID() != KindU32 {
		t.Fatalf("ifindex spec wrong: %+v", spec)
	}
	spec, _ = s.ByName("rates")
	if spec.Kind.ID() != KindArray || spec.Kind.Elem().ID() != KindU32 {
		t.Fatalf("rates spec wrong: %+v", spec)
	}
	spec, _ = s.ByName("caps")
	if spec.Kind.ID() != KindPacked || spec.Kind.Elem().ID() != KindU16 {
		t.Fatalf("caps spec wrong: %+v", spec)
	}
	spec, _ = s.ByName("key")
	if spec.Kind.ID() != KindNested || spec.Kind.Sub() == nil || spec.Kind.Sub().Len() != 2 {
		t.Fatalf("key spec wrong: %+v", spec)
	}
	spec, _ = s.ByName("groups")
	if spec.Kind.ID() != KindList || spec.Kind.Sub() == nil {
		t.Fatalf("groups spec wrong: %+v", spec)
	}

	// The parsed schema is usable directly.
	buf, err := Encode(s, AttrSet{
		"ifindex": Uint32Value(3),
		"key": NestedValue(AttrSet{
			"idx":      Uint8Value(0),
			"material": BytesValue([]byte{1, 2, 3, 4}),
		}),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(s, buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	decl := `
[[attrs]]
id = 1
name = "ifindex"
kind = "u32"
requried = true
`
	_, err := Parse([]byte(decl))
	if err == nil || !strings.Contains(err.Error(), "unknown declaration keys") {
		t.Fatalf("expected unknown-key error, got %v", err)
	}
	if !strings.Contains(err.Error(), "requried") {
		t.Fatalf("error should name the offending key: %v", err)
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	decl := `
[[attrs]]
id = 1
name = "x"
kind = "u24"
`
	_, err := Parse([]byte(decl))
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected unknown-kind error, got %v", err)
	}
}

func TestParseRejectsVariablePackedElem(t *testing.T) {
	decl := `
[[attrs]]
id = 1
name = "caps"
kind = "packed"
elem = "string"
`
	_, err := Parse([]byte(decl))
	if err == nil || !strings.Contains(err.Error(), "not fixed-width") {
		t.Fatalf("expected fixed-width error, got %v", err)
	}
}

func TestParseRejectsScalarWithElem(t *testing.T) {
	decl := `
[[attrs]]
id = 1
name = "x"
kind = "u8"
elem = "u16"
`
	_, err := Parse([]byte(decl))
	if err == nil || !strings.Contains(err.Error(), "takes no elem") {
		t.Fatalf("expected elem rejection, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.toml")
	if err := os.WriteFile(path, []byte(stationDecl), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 6 {
		t.Fatalf("expected 6 attributes, got %d", s.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	s, err := Parse([]byte(stationDecl))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Dump(s)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse dumped schema: %v", err)
	}

	// Equivalent schemas dump identically and encode identically.
	out2, err := Dump(again)
	if err != nil {
		t.Fatalf("second dump: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Fatalf("dump not stable:\n%s\n---\n%s", out, out2)
	}
	values := AttrSet{
		"ifindex": Uint32Value(3),
		"ssid":    StringValue("home"),
		"rates":   ArrayValue(Uint32Value(10), Uint32Value(20)),
		"caps":    PackedValue(Uint16Value(1), Uint16Value(2)),
	}
	b1, err := Encode(s, values)
	if err != nil {
		t.Fatalf("encode original: %v", err)
	}
	b2, err := Encode(again, values)
	if err != nil {
		t.Fatalf("encode reparsed: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatal("reparsed schema encodes differently")
	}
}
