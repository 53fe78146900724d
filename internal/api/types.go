package api

// EventMessage is the wire form of a link-layer membership change.
type EventMessage struct {
	Type          string `json:"type"`
	InterfaceName string `json:"interfaceName"`
	LinkIndex     int    `json:"linkIndex"`
	Lladdr        string `json:"lladdr"`
}

type LLAddrInfo struct {
	InterfaceName string `json:"interfaceName"`
	Lladdr        string `json:"lladdr"`
}

type SetLLAddrRequest struct {
	Lladdr string `json:"lladdr"`
}
