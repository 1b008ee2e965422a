// Package genlmsg owns the generic netlink message envelope: the fixed
// netlink and generic-netlink headers wrapped around an attribute payload,
// request building, and response classification (attributes, kernel error,
// end-of-dump marker).
package genlmsg
