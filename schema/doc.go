// Package schema owns the attribute schema data model and the codec built on
// it: a declarative id -> (name, kind, required) mapping used symmetrically to
// encode attribute sets to aligned TLV bytes and to decode such bytes back,
// with strict validation of framing and semantics.
//
// Schemas are immutable once constructed and safe to share across concurrent
// encode/decode calls without synchronization.
package schema
