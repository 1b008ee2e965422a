package genlmsg

// Netlink message flags, from linux/netlink.h.
const (
	NLM_F_REQUEST uint16 = 0x01
	NLM_F_MULTI   uint16 = 0x02
	NLM_F_ACK     uint16 = 0x04
	NLM_F_ROOT    uint16 = 0x100
	NLM_F_MATCH   uint16 = 0x200
	NLM_F_DUMP    uint16 = NLM_F_ROOT | NLM_F_MATCH
)

// Netlink control message types, from linux/netlink.h.
const (
	NLMSG_NOOP     uint16 = 0x1
	NLMSG_ERROR    uint16 = 0x2
	NLMSG_DONE     uint16 = 0x3
	NLMSG_OVERRUN  uint16 = 0x4
	NLMSG_MIN_TYPE uint16 = 0x10
)

// GENL_ID_CTRL is the fixed family id of the generic netlink control family.
const GENL_ID_CTRL uint16 = 0x10
