package nic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIfName_RoundTrip(t *testing.T) {
	for _, s := range []string{"a", "en0", "utun10", "0123456789ABCDE"} {
		n, err := ParseIfName(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, n.String())
		assert.Equal(t, len(s), n.Len())
	}
}

func TestParseIfName_TooSmall(t *testing.T) {
	_, err := ParseIfName("")
	assert.ErrorIs(t, err, ErrNameTooSmall)
}

func TestParseIfName_MaxBoundary(t *testing.T) {
	// 15 bytes fills the buffer up to the NUL terminator.
	max := strings.Repeat("e", IfNameSize-1)
	n, err := ParseIfName(max)
	require.NoError(t, err)
	assert.Equal(t, max, n.String())

	_, err = ParseIfName(max + "n")
	assert.ErrorIs(t, err, ErrNameTooLarge)
}

func TestParseIfName_EmbeddedNUL(t *testing.T) {
	_, err := ParseIfName("en\x000")
	assert.ErrorIs(t, err, ErrNameNUL)
}

func TestIfName_Equality(t *testing.T) {
	a, err := ParseIfName("en0")
	require.NoError(t, err)
	b, err := ParseIfName("en0")
	require.NoError(t, err)
	c, err := ParseIfName("en1")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Array value type: usable as a map key.
	seen := map[IfName]int{a: 1}
	assert.Equal(t, 1, seen[b])
}

func TestIfNameFromBuf(t *testing.T) {
	buf := make([]byte, IfNameSize)
	copy(buf, "en0")
	n, err := IfNameFromBuf(buf)
	require.NoError(t, err)
	assert.Equal(t, "en0", n.String())

	_, err = IfNameFromBuf(make([]byte, IfNameSize))
	assert.ErrorIs(t, err, ErrNameTooSmall)
}
