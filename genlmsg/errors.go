package genlmsg

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrDone signals the NLMSG_DONE marker terminating a dump. It is a
	// control signal, not a fault: callers iterating a dump stop on it,
	// distinct from a record that happens to carry zero attributes.
	ErrDone = errors.New("genlmsg: end of dump")

	ErrShortHeader     = errors.New("genlmsg: short netlink header")
	ErrShortGenlHeader = errors.New("genlmsg: short generic netlink header")
	ErrShortErrorBody  = errors.New("genlmsg: short error message body")
	ErrLengthMismatch  = errors.New("genlmsg: header length does not match buffer")
	ErrAttrsTooLarge   = errors.New("genlmsg: attribute payload too large for u32 length field")
)

// ProtocolError is an error code the kernel reported in an NLMSG_ERROR
// message. Errno is positive.
type ProtocolError struct {
	Errno int32
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("genlmsg: kernel reported %s (errno %d)", syscall.Errno(e.Errno).Error(), e.Errno)
}
