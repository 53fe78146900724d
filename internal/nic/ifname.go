package nic

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// IfNameSize is the kernel interface-name buffer size, including the
// terminating NUL.
const IfNameSize = unix.IFNAMSIZ

// Interface name validation failures.
var (
	ErrNameTooSmall = errors.New("interface name is empty")
	ErrNameTooLarge = fmt.Errorf("interface name longer than %d bytes", IfNameSize-1)
	ErrNameNUL      = errors.New("interface name contains a NUL byte")
)

// IfName is a fixed-capacity, NUL-terminated interface name as the kernel
// stores it in an ifreq. The zero value is the empty name. IfName is a plain
// array, so it compares with == and works as a map key.
type IfName [IfNameSize]byte

// ParseIfName validates s and returns it as a kernel interface name.
// The logical length must be in [1, IfNameSize-1] and s must not contain
// an embedded NUL.
func ParseIfName(s string) (IfName, error) {
	var n IfName
	switch {
	case len(s) < 1:
		return n, fmt.Errorf("parse interface name: %w", ErrNameTooSmall)
	case len(s) > IfNameSize-1:
		return n, fmt.Errorf("parse interface name %q (len %d): %w", s, len(s), ErrNameTooLarge)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return n, fmt.Errorf("parse interface name %q: %w", s, ErrNameNUL)
		}
	}
	copy(n[:], s)
	return n, nil
}

// IfNameFromBuf reads a NUL-terminated name out of a kernel buffer, for
// example the name field of an ifreq. The bytes are taken as-is up to the
// first NUL and re-validated.
func IfNameFromBuf(buf []byte) (IfName, error) {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return ParseIfName(string(buf))
}

// Len returns the logical length of the name, excluding the NUL terminator.
func (n IfName) Len() int {
	if i := bytes.IndexByte(n[:], 0); i >= 0 {
		return i
	}
	return IfNameSize
}

func (n IfName) String() string {
	return string(n[:n.Len()])
}
