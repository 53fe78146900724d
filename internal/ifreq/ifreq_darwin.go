//go:build darwin

package ifreq

// Darwin layout: the union starts with a sockaddr whose first byte is the
// address length (sa_len), followed by the family byte and the data bytes.
// SIOCSIFLLADDR requires sa_len to carry the hardware address length.
const (
	addrLenOff  = 16
	addrDataOff = 18
	setsAddrLen = true
)
