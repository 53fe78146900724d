package nic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LLAddrSize is the length of an Ethernet hardware address in bytes.
const LLAddrSize = 6

// ErrOctetCount is returned when a textual address does not have exactly
// six colon-separated tokens.
var ErrOctetCount = fmt.Errorf("link-level address must have %d colon-separated octets", LLAddrSize)

// LLAddr is a link-level (MAC) address: exactly six raw octets. There is no
// semantic validation beyond the byte count. LLAddr is a plain array, so it
// compares with == and works as a map key.
type LLAddr [LLAddrSize]byte

// ParseLLAddr parses an "aa:bb:cc:dd:ee:ff"-style address. Hex digits are
// case-insensitive; each token must be exactly one byte.
func ParseLLAddr(s string) (LLAddr, error) {
	var a LLAddr
	tokens := strings.Split(s, ":")
	if len(tokens) != LLAddrSize {
		return a, fmt.Errorf("parse link-level address %q (%d octets): %w", s, len(tokens), ErrOctetCount)
	}
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil || len(tok) != 2 {
			if err == nil {
				err = errors.New("octet is not two hex digits")
			}
			return LLAddr{}, fmt.Errorf("parse link-level address %q: octet %q: %w", s, tok, err)
		}
		a[i] = byte(v)
	}
	return a, nil
}

// LLAddrFromBuf copies an address out of a kernel buffer, for example the
// address bytes of a sockaddr_dl. The buffer must hold exactly six bytes.
func LLAddrFromBuf(buf []byte) (LLAddr, error) {
	var a LLAddr
	if len(buf) != LLAddrSize {
		return a, fmt.Errorf("link-level address buffer of %d bytes: %w", len(buf), ErrOctetCount)
	}
	copy(a[:], buf)
	return a, nil
}

// String renders the address as lowercase zero-padded colon-hex, the inverse
// of ParseLLAddr.
func (a LLAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}
