package schema

// AttrSet maps attribute names to decoded values. It is the caller-facing
// structure on both sides of the codec.
type AttrSet map[string]Value

// Value is a decoded attribute value, one variant per kind.
type Value struct {
	Kind   KindID
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
	Uint64 uint64
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
	Str    string
	Raw    []byte
	Set    AttrSet
	List   []Value
}

// Uint8Value creates a u8 value.
func Uint8Value(v uint8) Value { return Value{Kind: KindU8, Uint8: v} }

// Uint16Value creates a u16 value.
func Uint16Value(v uint16) Value { return Value{Kind: KindU16, Uint16: v} }

// Uint32Value creates a u32 value.
func Uint32Value(v uint32) Value { return Value{Kind: KindU32, Uint32: v} }

// Uint64Value creates a u64 value.
func Uint64Value(v uint64) Value { return Value{Kind: KindU64, Uint64: v} }

// Int8Value creates an s8 value.
func Int8Value(v int8) Value { return Value{Kind: KindS8, Int8: v} }

// Int16Value creates an s16 value.
func Int16Value(v int16) Value { return Value{Kind: KindS16, Int16: v} }

// Int32Value creates an s32 value.
func Int32Value(v int32) Value { return Value{Kind: KindS32, Int32: v} }

// Int64Value creates an s64 value.
func Int64Value(v int64) Value { return Value{Kind: KindS64, Int64: v} }

// StringValue creates a string value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BytesValue creates a byte-blob value.
func BytesValue(b []byte) Value {
	buf := make([]byte, len(b))
	copy(buf, b)
	return Value{Kind: KindBytes, Raw: buf}
}

// FlagValue creates a presence-marker value.
func FlagValue() Value { return Value{Kind: KindFlag} }

// NestedValue creates a nested attribute-set value.
func NestedValue(set AttrSet) Value { return Value{Kind: KindNested, Set: set} }

// ArrayValue creates an ordered sequence value for an Array kind.
func ArrayValue(elems ...Value) Value { return Value{Kind: KindArray, List: elems} }

// ListValue creates an ordered sequence value for a List kind.
func ListValue(elems ...Value) Value { return Value{Kind: KindList, List: elems} }

// PackedValue creates an ordered sequence value for a Packed kind.
func PackedValue(elems ...Value) Value { return Value{Kind: KindPacked, List: elems} }
