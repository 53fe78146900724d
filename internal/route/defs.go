package route

// Wire definitions of the Darwin routing socket, from the xnu headers
// net/route.h, net/if_types.h and sys/socket.h. The parser works on raw
// bytes, so these are spelled out rather than taken from the platform
// libc.
const (
	// Version is the rtm_version every kernel message must carry.
	Version = 5

	// BufSize fits any single routing message.
	BufSize = 2048
)

// Routing message types.
const (
	MsgTypeAdd       = 0x01
	MsgTypeDelete    = 0x02
	MsgTypeChange    = 0x03
	MsgTypeGet       = 0x04
	MsgTypeLosing    = 0x05
	MsgTypeRedirect  = 0x06
	MsgTypeMiss      = 0x07
	MsgTypeLock      = 0x08
	MsgTypeOldAdd    = 0x09
	MsgTypeOldDel    = 0x0a
	MsgTypeResolve   = 0x0b
	MsgTypeNewAddr   = 0x0c
	MsgTypeDelAddr   = 0x0d
	MsgTypeIfInfo    = 0x0e
	MsgTypeNewMAddr  = 0x0f
	MsgTypeDelMAddr  = 0x10
	MsgTypeIfInfo2   = 0x12
	MsgTypeNewMAddr2 = 0x13
	MsgTypeGet2      = 0x14
)

// msgTypeNames covers every message type this kernel family emits,
// including the private ones. A type outside this table is worth a log
// line; a type inside it that we do not act on is not.
var msgTypeNames = map[byte]string{
	MsgTypeAdd:       "RTM_ADD",
	MsgTypeDelete:    "RTM_DELETE",
	MsgTypeChange:    "RTM_CHANGE",
	MsgTypeGet:       "RTM_GET",
	MsgTypeLosing:    "RTM_LOSING",
	MsgTypeRedirect:  "RTM_REDIRECT",
	MsgTypeMiss:      "RTM_MISS",
	MsgTypeLock:      "RTM_LOCK",
	MsgTypeOldAdd:    "RTM_OLDADD",
	MsgTypeOldDel:    "RTM_OLDDEL",
	MsgTypeResolve:   "RTM_RESOLVE",
	MsgTypeNewAddr:   "RTM_NEWADDR",
	MsgTypeDelAddr:   "RTM_DELADDR",
	MsgTypeIfInfo:    "RTM_IFINFO",
	MsgTypeNewMAddr:  "RTM_NEWMADDR",
	MsgTypeDelMAddr:  "RTM_DELMADDR",
	0x11:             "RTM_GET_SILENT", // private
	MsgTypeIfInfo2:   "RTM_IFINFO2",
	MsgTypeNewMAddr2: "RTM_NEWMADDR2",
	MsgTypeGet2:      "RTM_GET2",
	0x15:             "RTM_GET_EXT", // private
}

// MsgTypeName resolves a message type to its kernel name.
func MsgTypeName(t byte) (string, bool) {
	name, ok := msgTypeNames[t]
	return name, ok
}

// Address kinds present in a message's address bitmask (RTAX_* order).
const (
	rtaxMax = 8

	// RTABitIfp selects the interface-pointer address kind.
	RTABitIfp = 0x10 // 1 << RTAX_IFP
)

// Link-layer sockaddr acceptance.
const (
	AfLink   = 18   // AF_LINK
	IftEther = 0x06 // IFT_ETHER
)

// Fixed record sizes (with trailing padding, as the kernel lays them out).
const (
	ifmaMsgHdrLen  = 16
	sockaddrDlLen  = 20
	minMsgLen      = 4 // enough for msglen, version and type
)
