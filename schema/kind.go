package schema

// KindID discriminates the closed set of attribute payload kinds.
type KindID uint8

const (
	KindInvalid KindID = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindS8
	KindS16
	KindS32
	KindS64
	KindString
	KindBytes
	KindFlag
	KindNested
	KindArray
	KindList
	KindPacked
)

var kindNames = map[KindID]string{
	KindU8:     "u8",
	KindU16:    "u16",
	KindU32:    "u32",
	KindU64:    "u64",
	KindS8:     "s8",
	KindS16:    "s16",
	KindS32:    "s32",
	KindS64:    "s64",
	KindString: "string",
	KindBytes:  "bytes",
	KindFlag:   "flag",
	KindNested: "nested",
	KindArray:  "array",
	KindList:   "list",
	KindPacked: "packed",
}

func (k KindID) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Kind describes how one attribute's payload maps bytes to a value. Scalars
// are the exported package variables (U8, String, ...); the recursive kinds
// are built with Nested, ArrayOf, ListOf, ListOfSchema and PackedOf.
type Kind struct {
	id   KindID
	sub  *Schema // Nested, ListOfSchema
	elem *Kind   // Array, Packed, ListOf
}

// ID returns the kind discriminant.
func (k Kind) ID() KindID { return k.id }

// Sub returns the sub-schema of a Nested or list-of-schema kind, or nil.
func (k Kind) Sub() *Schema { return k.sub }

// Elem returns the element kind of an Array, Packed or list-of-scalar kind,
// or nil.
func (k Kind) Elem() *Kind { return k.elem }

var (
	U8     = Kind{id: KindU8}
	U16    = Kind{id: KindU16}
	U32    = Kind{id: KindU32}
	U64    = Kind{id: KindU64}
	S8     = Kind{id: KindS8}
	S16    = Kind{id: KindS16}
	S32    = Kind{id: KindS32}
	S64    = Kind{id: KindS64}
	String = Kind{id: KindString}
	Bytes  = Kind{id: KindBytes}
	Flag   = Kind{id: KindFlag}
)

// Nested wraps a sub-schema: the attribute's payload is itself a full TLV
// sequence decoded with sub.
func Nested(sub *Schema) Kind {
	return Kind{id: KindNested, sub: sub}
}

// ArrayOf describes repeated sibling attributes sharing one id, each carrying
// one elem payload. Order on the wire is the sequence order.
func ArrayOf(elem Kind) Kind {
	e := elem
	return Kind{id: KindArray, elem: &e}
}

// ListOf describes an indexed list: the payload is a TLV sequence whose
// attribute ids are 1..N and carry no meaning beyond position, each holding
// one elem payload.
func ListOf(elem Kind) Kind {
	e := elem
	return Kind{id: KindList, elem: &e}
}

// ListOfSchema is ListOf where each element is itself a nested attribute set.
func ListOfSchema(sub *Schema) Kind {
	return Kind{id: KindList, sub: sub}
}

// PackedOf describes fixed-size elements concatenated back to back in a
// single payload with no per-element framing. elem must be fixed-width.
func PackedOf(elem Kind) Kind {
	e := elem
	return Kind{id: KindPacked, elem: &e}
}

// fixedSize returns the exact payload size of a fixed-width kind, or 0.
func (k Kind) fixedSize() int {
	switch k.id {
	case KindU8, KindS8:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32:
		return 4
	case KindU64, KindS64:
		return 8
	}
	return 0
}
