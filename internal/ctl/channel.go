// Package ctl issues the link-level address ioctls over a short-lived local
// control socket. A Channel owns exactly one descriptor for its lifetime;
// there is no interior locking, callers sharing one across goroutines must
// serialize access themselves.
package ctl

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/dmdmdm-nz/lladdrd/internal/ifreq"
	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/sys"
)

// Channel is an open control socket. States are Closed -> Open -> Closed,
// nothing else.
type Channel struct {
	sys    sys.Syscalls
	fd     int
	closed bool
}

// Open creates the local datagram socket the get/set ioctls are issued on.
// The socket never transfers data.
func Open(sc sys.Syscalls) (*Channel, error) {
	fd, err := sc.Socket(unix.AF_LOCAL, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, &OpenError{Ret: -1, Errno: errnoOf(err)}
	}
	return &Channel{sys: sc, fd: fd}, nil
}

// GetLLAddr reads the interface's current link-level address.
func (c *Channel) GetLLAddr(name nic.IfName) (nic.LLAddr, error) {
	r := ifreq.New()
	r.SetName(name)
	if err := c.sys.Ioctl(c.fd, reqGetLLAddr, r.Pointer()); err != nil {
		return nic.LLAddr{}, &GetLLAddrError{Fd: c.fd, Name: name, Ret: -1, Errno: errnoOf(err)}
	}
	return r.LLAddr(), nil
}

// SetLLAddr changes the interface's link-level address.
func (c *Channel) SetLLAddr(name nic.IfName, addr nic.LLAddr) error {
	r := ifreq.New()
	r.SetName(name)
	r.SetLLAddr(addr)
	if err := c.sys.Ioctl(c.fd, reqSetLLAddr, r.Pointer()); err != nil {
		return &SetLLAddrError{Fd: c.fd, Name: name, Addr: addr, Ret: -1, Errno: errnoOf(err)}
	}
	return nil
}

// Close releases the descriptor. Only the first call closes; a close
// failure is logged, never propagated, since the primary operation already
// has its result.
func (c *Channel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if err := c.sys.Close(c.fd); err != nil {
		log.WithError(err).WithField("fd", c.fd).Warn("Failed to close control socket")
	}
}

// GetLLAddr opens a channel for a single get and always closes it.
func GetLLAddr(sc sys.Syscalls, name nic.IfName) (nic.LLAddr, error) {
	c, err := Open(sc)
	if err != nil {
		return nic.LLAddr{}, err
	}
	defer c.Close()
	return c.GetLLAddr(name)
}

// SetLLAddr opens a channel for a single set and always closes it.
func SetLLAddr(sc sys.Syscalls, name nic.IfName, addr nic.LLAddr) error {
	c, err := Open(sc)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.SetLLAddr(name, addr)
}
