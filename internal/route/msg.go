// Package route decodes the messages a BSD routing socket emits. The kernel
// hands over packed C structs; this package reads them as raw bytes with
// bounds-checked field accessors at fixed offsets, so no pointer casts leak
// into the rest of the repository.
package route

import "encoding/binary"

// MsgHdr is a view over the generic rt_msghdr prefix shared by every
// routing message: length, version and type.
type MsgHdr []byte

// Ok reports whether the buffer is long enough to carry the prefix.
func (h MsgHdr) Ok() bool {
	return len(h) >= minMsgLen
}

// MsgLen returns the kernel-reported message length.
func (h MsgHdr) MsgLen() uint16 {
	return binary.LittleEndian.Uint16(h[0:2])
}

// Version returns the rtm_version byte.
func (h MsgHdr) Version() byte {
	return h[2]
}

// Type returns the rtm_type byte.
func (h MsgHdr) Type() byte {
	return h[3]
}

// IfmaMsgHdr is a view over an interface-multicast-address message
// (ifma_msghdr): the generic prefix, an address-presence bitmask, flags and
// the interface index, followed by a fixed-stride array of link-layer
// sockaddr records for the address kinds the bitmask marks present.
type IfmaMsgHdr []byte

// Addrs returns the address-presence bitmask.
func (h IfmaMsgHdr) Addrs() uint32 {
	return binary.LittleEndian.Uint32(h[4:8])
}

// Index returns the kernel-assigned link index.
func (h IfmaMsgHdr) Index() uint16 {
	return binary.LittleEndian.Uint16(h[12:14])
}

// rtaIndex maps an address-kind bit to its position in the address array:
// the array holds one record per present kind, in ascending kind order.
func (h IfmaMsgHdr) rtaIndex(rta uint32) (int, bool) {
	pos := 0
	for rtax := 0; rtax < rtaxMax; rtax++ {
		bit := uint32(1) << rtax
		if h.Addrs()&bit == 0 {
			continue
		}
		if rta&bit != 0 {
			return pos, true
		}
		pos++
	}
	return 0, false
}

// Ifp locates the interface-pointer sockaddr in the address array, if the
// bitmask marks one present and the buffer actually contains it.
func (h IfmaMsgHdr) Ifp() (SockaddrDl, bool) {
	if len(h) < ifmaMsgHdrLen {
		return nil, false
	}
	pos, ok := h.rtaIndex(RTABitIfp)
	if !ok {
		return nil, false
	}
	start := ifmaMsgHdrLen + pos*sockaddrDlLen
	end := start + sockaddrDlLen
	if end > len(h) {
		return nil, false
	}
	return SockaddrDl(h[start:end]), true
}

// SockaddrDl is a view over one fixed-stride sockaddr_dl record: family,
// link index, hardware type, then name/address/selector lengths followed by
// the packed name, address and selector bytes.
type SockaddrDl []byte

func (s SockaddrDl) Family() byte { return s[1] }
func (s SockaddrDl) Index() uint16 { return binary.LittleEndian.Uint16(s[2:4]) }
func (s SockaddrDl) HwType() byte { return s[4] }
func (s SockaddrDl) NameLen() int { return int(s[5]) }
func (s SockaddrDl) AddrLen() int { return int(s[6]) }

// LinkEther extracts the name and address bytes of a link-layer Ethernet
// record. Any other family or hardware type, or lengths that do not fit the
// record's data bytes, yield ok == false.
func (s SockaddrDl) LinkEther() (index uint16, name, addr []byte, ok bool) {
	if len(s) < sockaddrDlLen {
		return 0, nil, nil, false
	}
	if s.Family() != AfLink || s.HwType() != IftEther {
		return 0, nil, nil, false
	}
	data := s[8:sockaddrDlLen]
	nlen, alen := s.NameLen(), s.AddrLen()
	if nlen+alen > len(data) {
		return 0, nil, nil, false
	}
	return s.Index(), data[:nlen], data[nlen : nlen+alen], true
}
