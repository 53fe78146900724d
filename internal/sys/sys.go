// Package sys narrows the kernel surface the repository touches to a small
// capability interface. Production code receives an implementation
// explicitly (constructor injection); tests substitute a fake without any
// global state.
package sys

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Syscalls is the capability set the control channel and the routing
// monitor need: socket creation, ioctl, blocking read, close.
type Syscalls interface {
	Socket(domain, typ, proto int) (int, error)
	Ioctl(fd int, req uint32, arg unsafe.Pointer) error
	Read(fd int, p []byte) (int, error)
	Close(fd int) error
}

// Unix is the real implementation backed by golang.org/x/sys/unix.
type Unix struct{}

func (Unix) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (Unix) Ioctl(fd int, req uint32, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (Unix) Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func (Unix) Close(fd int) error {
	return unix.Close(fd)
}
