// Package ioccom derives BSD ioctl command numbers the way the kernel's
// sys/ioccom.h macros do. The command is encoded in the lower word, the
// size of the in/out parameter in the upper word, and the top bits of the
// upper word carry the in/out direction. The output must match the kernel's
// macro expansion bit for bit; a wrong value fails at runtime as EINVAL
// with no other signal.
package ioccom

const (
	// IocParmMask limits the encoded parameter length to 13 bits.
	IocParmMask = 0x1fff

	// IocOut copies parameters out of the kernel.
	IocOut = 0x40000000
	// IocIn copies parameters into the kernel.
	IocIn = 0x80000000
	// IocInOut copies parameters both ways.
	IocInOut = IocIn | IocOut
)

// IOC encodes a command from direction, group, number and parameter length.
func IOC(inout, group, num, len uint32) uint32 {
	return inout | ((len & IocParmMask) << 16) | (group << 8) | num
}

// IOW encodes a write command (parameters copied into the kernel).
func IOW(group, num, len uint32) uint32 {
	return IOC(IocIn, group, num, len)
}

// IOWR encodes a read-write command (parameters copied both ways).
func IOWR(group, num, len uint32) uint32 {
	return IOC(IocInOut, group, num, len)
}
