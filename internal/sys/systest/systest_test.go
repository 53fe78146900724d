package systest

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_ConsumesInOrder(t *testing.T) {
	f := New(t).
		ExpectSocket(func(domain, typ, proto int) (int, error) {
			return 3, nil
		}).
		ExpectIoctl(func(fd int, req uint32, arg unsafe.Pointer) error {
			assert.Equal(t, 3, fd)
			return nil
		}).
		ExpectClose(func(fd int) error {
			assert.Equal(t, 3, fd)
			return nil
		})

	fd, err := f.Socket(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, fd)

	require.NoError(t, f.Ioctl(fd, 42, nil))
	require.NoError(t, f.Close(fd))
}

func TestFake_ReadPassesBuffer(t *testing.T) {
	f := New(t).ExpectRead(func(fd int, p []byte) (int, error) {
		return copy(p, []byte{1, 2, 3}), nil
	})

	buf := make([]byte, 8)
	n, err := f.Read(5, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, buf[:n])
}
