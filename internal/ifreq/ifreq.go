// Package ifreq marshals the kernel's fixed-size interface-request record.
// The record carries an interface name and, overlapping through a union, a
// generic socket address whose data bytes are reused for the link-level
// address. All raw-memory reinterpretation in the repository happens behind
// this package's bounds-checked accessors.
package ifreq

import (
	"unsafe"

	"github.com/dmdmdm-nz/lladdrd/internal/nic"
)

// Size is the byte size of the kernel ifreq record on both supported
// platforms. The ioctl command numbers encode this value, so it must match
// the kernel's own sizeof.
const Size = 32

// Ifreq is the wire image of a kernel ifreq. The zero value is the
// zero-initialized record the kernel expects; callers must not populate a
// record that was not zeroed first.
type Ifreq [Size]byte

// New returns a zero-initialized record.
func New() *Ifreq {
	return &Ifreq{}
}

// SetName copies the name's logical bytes into the name field. The copy is
// a raw byte copy; the name was validated at construction.
func (r *Ifreq) SetName(name nic.IfName) {
	copy(r[:nic.IfNameSize], name[:name.Len()])
}

// Name copies the name field back out, without re-validating it.
func (r *Ifreq) Name() nic.IfName {
	var n nic.IfName
	copy(n[:], r[:nic.IfNameSize])
	return n
}

// SetLLAddr copies the six address octets into the sockaddr union's data
// bytes, and on platforms that require it records the address length in the
// sockaddr length sub-field.
func (r *Ifreq) SetLLAddr(addr nic.LLAddr) {
	copy(r[addrDataOff:addrDataOff+nic.LLAddrSize], addr[:])
	if setsAddrLen {
		r[addrLenOff] = nic.LLAddrSize
	}
}

// LLAddr copies the six address octets back out of the union.
func (r *Ifreq) LLAddr() nic.LLAddr {
	var a nic.LLAddr
	copy(a[:], r[addrDataOff:addrDataOff+nic.LLAddrSize])
	return a
}

// Pointer exposes the record's address for the ioctl boundary. This is the
// single unsafe aliasing point in the repository; the pointer must not
// outlive the enclosing syscall.
func (r *Ifreq) Pointer() unsafe.Pointer {
	return unsafe.Pointer(r)
}
