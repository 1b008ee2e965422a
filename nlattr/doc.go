// Package nlattr owns the netlink attribute wire primitives.
//
// Ownership boundary:
// - TLV record framing (length, id, nested bit, 4-byte alignment)
// - payload codecs for the fixed attribute kinds
// - framing error taxonomy with byte offsets
package nlattr
