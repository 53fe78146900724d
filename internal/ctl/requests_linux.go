//go:build linux

package ctl

import "golang.org/x/sys/unix"

// Linux has fixed command numbers for the hardware address instead of the
// BSD ioccom encoding.
var (
	reqGetLLAddr uint32 = unix.SIOCGIFHWADDR
	reqSetLLAddr uint32 = unix.SIOCSIFHWADDR
)
