// Package routetest fabricates routing-socket messages for tests, byte for
// byte as the kernel lays them out.
package routetest

import "encoding/binary"

const (
	ifmaMsgHdrLen = 16
	sockaddrDlLen = 20
)

// SockaddrDl describes one link-layer sockaddr record to fabricate.
type SockaddrDl struct {
	Family byte
	Index  uint16
	HwType byte
	Name   string
	Addr   []byte
}

func (s SockaddrDl) marshal() []byte {
	buf := make([]byte, sockaddrDlLen)
	buf[0] = sockaddrDlLen
	buf[1] = s.Family
	binary.LittleEndian.PutUint16(buf[2:4], s.Index)
	buf[4] = s.HwType
	buf[5] = byte(len(s.Name))
	buf[6] = byte(len(s.Addr))
	copy(buf[8:], s.Name)
	copy(buf[8+len(s.Name):], s.Addr)
	return buf
}

// IfmaMsg builds an interface-multicast-address message with the given
// version, type, link index and address-presence bitmask, followed by the
// supplied sockaddr records in array order.
func IfmaMsg(version, msgType byte, index uint16, addrs uint32, sdls ...SockaddrDl) []byte {
	buf := make([]byte, ifmaMsgHdrLen, ifmaMsgHdrLen+len(sdls)*sockaddrDlLen)
	buf[2] = version
	buf[3] = msgType
	binary.LittleEndian.PutUint32(buf[4:8], addrs)
	binary.LittleEndian.PutUint16(buf[12:14], index)
	for _, s := range sdls {
		buf = append(buf, s.marshal()...)
	}
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(buf)))
	return buf
}

// Msg builds a bare message carrying only the generic prefix.
func Msg(version, msgType byte) []byte {
	buf := make([]byte, ifmaMsgHdrLen)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(buf)))
	buf[2] = version
	buf[3] = msgType
	return buf
}
