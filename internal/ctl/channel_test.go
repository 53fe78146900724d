package ctl

import (
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmdmdm-nz/lladdrd/internal/ifreq"
	"github.com/dmdmdm-nz/lladdrd/internal/nic"
	"github.com/dmdmdm-nz/lladdrd/internal/sys/systest"
)

func mustIfName(t *testing.T, s string) nic.IfName {
	t.Helper()
	n, err := nic.ParseIfName(s)
	require.NoError(t, err)
	return n
}

func mustLLAddr(t *testing.T, s string) nic.LLAddr {
	t.Helper()
	a, err := nic.ParseLLAddr(s)
	require.NoError(t, err)
	return a
}

// fakeKernel simulates per-interface address state behind the ioctl
// boundary.
type fakeKernel struct {
	t     *testing.T
	addrs map[nic.IfName]nic.LLAddr
}

func newFakeKernel(t *testing.T) *fakeKernel {
	return &fakeKernel{t: t, addrs: make(map[nic.IfName]nic.LLAddr)}
}

func (k *fakeKernel) ioctl(fd int, req uint32, arg unsafe.Pointer) error {
	r := (*ifreq.Ifreq)(arg)
	switch req {
	case reqGetLLAddr:
		addr, ok := k.addrs[r.Name()]
		if !ok {
			return syscall.ENXIO
		}
		r.SetLLAddr(addr)
		return nil
	case reqSetLLAddr:
		k.addrs[r.Name()] = r.LLAddr()
		return nil
	default:
		k.t.Errorf("unexpected ioctl request %#x", req)
		return syscall.EINVAL
	}
}

func TestGetLLAddr(t *testing.T) {
	en0 := mustIfName(t, "en0")
	want := mustLLAddr(t, "00:11:22:33:44:55")

	kernel := newFakeKernel(t)
	kernel.addrs[en0] = want

	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
		ExpectIoctl(kernel.ioctl).
		ExpectClose(func(fd int) error {
			assert.Equal(t, 3, fd)
			return nil
		})

	got, err := GetLLAddr(fake, en0)
	require.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", got.String())
}

func TestGetLLAddr_OpenError(t *testing.T) {
	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return -1, syscall.EPERM })

	_, err := GetLLAddr(fake, mustIfName(t, "en0"))
	require.Error(t, err)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, syscall.EPERM, openErr.Errno)
	assert.Contains(t, err.Error(), "Operation not permitted")
}

func TestGetLLAddr_IoctlError(t *testing.T) {
	en0 := mustIfName(t, "en0")

	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 7, nil }).
		ExpectIoctl(func(fd int, req uint32, arg unsafe.Pointer) error { return syscall.ENXIO }).
		ExpectClose(func(fd int) error { return nil })

	_, err := GetLLAddr(fake, en0)

	var getErr *GetLLAddrError
	require.ErrorAs(t, err, &getErr)
	assert.Equal(t, 7, getErr.Fd)
	assert.Equal(t, en0, getErr.Name)
	assert.Equal(t, syscall.ENXIO, getErr.Errno)
}

func TestSetThenGetLLAddr(t *testing.T) {
	en0 := mustIfName(t, "en0")
	addr := mustLLAddr(t, "aa:bb:cc:dd:ee:ff")
	kernel := newFakeKernel(t)

	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
		ExpectIoctl(kernel.ioctl).
		ExpectClose(func(fd int) error { return nil }).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 4, nil }).
		ExpectIoctl(kernel.ioctl).
		ExpectClose(func(fd int) error { return nil })

	require.NoError(t, SetLLAddr(fake, en0, addr))

	got, err := GetLLAddr(fake, en0)
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got.String())
}

func TestGetLLAddr_Idempotent(t *testing.T) {
	en0 := mustIfName(t, "en0")
	kernel := newFakeKernel(t)
	kernel.addrs[en0] = mustLLAddr(t, "00:11:22:33:44:55")

	fake := systest.New(t)
	for i := 0; i < 2; i++ {
		fake.ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
			ExpectIoctl(kernel.ioctl).
			ExpectClose(func(fd int) error { return nil })
	}

	first, err := GetLLAddr(fake, en0)
	require.NoError(t, err)
	second, err := GetLLAddr(fake, en0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSetLLAddr_Error(t *testing.T) {
	en0 := mustIfName(t, "en0")
	addr := mustLLAddr(t, "aa:bb:cc:dd:ee:ff")

	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
		ExpectIoctl(func(fd int, req uint32, arg unsafe.Pointer) error { return syscall.EPERM }).
		ExpectClose(func(fd int) error { return nil })

	err := SetLLAddr(fake, en0, addr)

	var setErr *SetLLAddrError
	require.ErrorAs(t, err, &setErr)
	assert.Equal(t, addr, setErr.Addr)
	assert.Contains(t, err.Error(), "Operation not permitted")
}

func TestChannel_CloseErrorNotPropagated(t *testing.T) {
	en0 := mustIfName(t, "en0")
	kernel := newFakeKernel(t)
	kernel.addrs[en0] = mustLLAddr(t, "00:11:22:33:44:55")

	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
		ExpectIoctl(kernel.ioctl).
		ExpectClose(func(fd int) error { return syscall.EBADF })

	// The get succeeded before teardown; the close failure stays a log line.
	got, err := GetLLAddr(fake, en0)
	require.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", got.String())
}

func TestChannel_CloseOnlyOnce(t *testing.T) {
	fake := systest.New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) { return 3, nil }).
		ExpectClose(func(fd int) error { return nil })

	c, err := Open(fake)
	require.NoError(t, err)
	c.Close()
	c.Close() // second call must not reach the descriptor
}
