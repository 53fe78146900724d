//go:build darwin

package ctl

import (
	"github.com/dmdmdm-nz/lladdrd/internal/ifreq"
	"github.com/dmdmdm-nz/lladdrd/internal/ioccom"
)

// SIOCGIFLLADDR and SIOCSIFLLADDR from the Darwin sys/sockio.h, derived the
// way the kernel's macros derive them: group 'i', numbers 158 and 60, ifreq
// payload. 0xc020699e and 0x8020693c respectively.
var (
	reqGetLLAddr = ioccom.IOWR('i', 158, ifreq.Size)
	reqSetLLAddr = ioccom.IOW('i', 60, ifreq.Size)
)
