package ctl

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/dmdmdm-nz/lladdrd/internal/nic"
)

// OpenError reports a failed control-socket creation.
type OpenError struct {
	Ret   int
	Errno syscall.Errno
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open control socket: ret=%d errno=%d (%s)", e.Ret, int(e.Errno), e.Errno.Error())
}

// GetLLAddrError reports a failed get ioctl.
type GetLLAddrError struct {
	Fd    int
	Name  nic.IfName
	Ret   int
	Errno syscall.Errno
}

func (e *GetLLAddrError) Error() string {
	return fmt.Sprintf("get link-level address of %s: fd=%d ret=%d errno=%d (%s)",
		e.Name, e.Fd, e.Ret, int(e.Errno), e.Errno.Error())
}

// SetLLAddrError reports a failed set ioctl.
type SetLLAddrError struct {
	Fd    int
	Name  nic.IfName
	Addr  nic.LLAddr
	Ret   int
	Errno syscall.Errno
}

func (e *SetLLAddrError) Error() string {
	return fmt.Sprintf("set link-level address of %s to %s: fd=%d ret=%d errno=%d (%s)",
		e.Name, e.Addr, e.Fd, e.Ret, int(e.Errno), e.Errno.Error())
}

func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	errors.As(err, &errno)
	return errno
}
