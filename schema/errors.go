package schema

import (
	"fmt"
	"strings"
)

// UnknownAttrError reports a name (encode) or wire id (decode) that the
// active schema does not declare.
type UnknownAttrError struct {
	Name   string
	ID     uint16
	Offset int
}

func (e UnknownAttrError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("schema: unknown attribute %q", e.Name)
	}
	return fmt.Sprintf("schema: unknown attribute id %d at offset %d", e.ID, e.Offset)
}

// MissingAttrError reports every required attribute absent from an encode
// input or a decoded buffer, not just the first.
type MissingAttrError struct {
	Names []string
}

func (e MissingAttrError) Error() string {
	return fmt.Sprintf("schema: missing required attributes: %s", strings.Join(e.Names, ", "))
}

// DuplicateAttrError reports more than one record for a non-Array id. A
// schema declares exactly-one or Array, never first-wins.
type DuplicateAttrError struct {
	ID     uint16
	Name   string
	Offset int
}

func (e DuplicateAttrError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("schema: duplicate attribute id %d at offset %d", e.ID, e.Offset)
	}
	return fmt.Sprintf("schema: duplicate attribute %q (id %d) at offset %d", e.Name, e.ID, e.Offset)
}

// maxListElems bounds a List to the positional ids that fit below the nested
// wire bit.
const maxListElems = 0x7fff

// ListTooLongError reports a List whose element count cannot be expressed as
// positional sub-record ids.
type ListTooLongError struct {
	Name  string
	Count int
}

func (e ListTooLongError) Error() string {
	return fmt.Sprintf("schema: attribute %q: list of %d elements exceeds %d", e.Name, e.Count, maxListElems)
}

// KindMismatchError reports an encode value whose variant does not match the
// declared kind.
type KindMismatchError struct {
	Name string
	Want KindID
	Got  KindID
}

func (e KindMismatchError) Error() string {
	return fmt.Sprintf("schema: attribute %q: value kind %s does not match declared kind %s",
		e.Name, e.Got, e.Want)
}

// NestingTooDeepError reports nested decode recursion past the configured
// depth limit.
type NestingTooDeepError struct {
	Depth int
}

func (e NestingTooDeepError) Error() string {
	return fmt.Sprintf("schema: attribute nesting exceeds %d levels", e.Depth)
}

// AttrError wraps a payload codec failure with the attribute it occurred in
// and its byte offset, so failures are diagnosable without a wire capture.
type AttrError struct {
	Name   string
	ID     uint16
	Offset int
	Err    error
}

func (e AttrError) Error() string {
	return fmt.Sprintf("schema: attribute %q (id %d) at offset %d: %v", e.Name, e.ID, e.Offset, e.Err)
}

func (e AttrError) Unwrap() error { return e.Err }
