package nlattr

import (
	"errors"
	"fmt"
)

var (
	ErrPayloadTooLarge = errors.New("nlattr: payload too large for u16 length field")
)

// TruncatedHeaderError reports a record start with fewer than four bytes
// remaining, or a record whose declared length is shorter than its own header.
type TruncatedHeaderError struct {
	Offset int
}

func (e TruncatedHeaderError) Error() string {
	return fmt.Sprintf("nlattr: truncated attribute header at offset %d", e.Offset)
}

// TruncatedPayloadError reports a declared record length that runs past the
// end of the buffer.
type TruncatedPayloadError struct {
	ID        uint16
	Offset    int
	Declared  int
	Remaining int
}

func (e TruncatedPayloadError) Error() string {
	return fmt.Sprintf("nlattr: truncated payload for attribute %d at offset %d: declared %d bytes, %d remain",
		e.ID, e.Offset, e.Declared, e.Remaining)
}

// TruncatedPaddingError reports alignment padding that runs past the end of
// the buffer.
type TruncatedPaddingError struct {
	ID     uint16
	Offset int
}

func (e TruncatedPaddingError) Error() string {
	return fmt.Sprintf("nlattr: truncated padding after attribute %d at offset %d", e.ID, e.Offset)
}

// SizeMismatchError reports a payload whose length does not match the exact
// length required by a fixed-width kind.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e SizeMismatchError) Error() string {
	return fmt.Sprintf("nlattr: size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

// MissingTerminatorError reports a string payload without a NUL terminator.
type MissingTerminatorError struct {
	Len int
}

func (e MissingTerminatorError) Error() string {
	return fmt.Sprintf("nlattr: string payload of %d bytes has no NUL terminator", e.Len)
}
