//go:build linux

package ifreq

// Linux layout: the union starts with a sockaddr whose first two bytes are
// the family word; there is no length sub-field. The data bytes land at the
// same offset as on Darwin.
const (
	addrLenOff  = 16 // unused, no sa_len on this platform
	addrDataOff = 18
	setsAddrLen = false
)
