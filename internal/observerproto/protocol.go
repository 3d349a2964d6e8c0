package observerproto

// Version is the observer protocol version.
const Version = "0.1"

const (
	TypeSubscribe = "SUBSCRIBE"
	TypeLevel     = "LEVEL"
	TypeTick      = "TICK"
	TypeError     = "ERROR"
)

// Error codes carried by ErrorMsg.
const (
	ErrBadRequest = "E_BAD_REQUEST"
	ErrProtocol   = "E_PROTO"
	ErrBusy       = "E_BUSY"
)

// CellsEncoding is base64(varint (flags, run) pairs) over the grid in z, y, x
// order.
const CellsEncoding = "RLE_CELLS_ZYX"

// Client -> Server. First message on the observer WS connection.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	// Skip the LEVEL message when the client already has the grid.
	OmitLevel bool `json:"omit_level,omitempty"`
}

// HTTP response for GET /v1/observer/bootstrap.
type BootstrapResponse struct {
	ProtocolVersion string      `json:"protocol_version"`
	LevelID         string      `json:"level_id"`
	Tick            uint64      `json:"tick"`
	TickRateHz      int         `json:"tick_rate_hz"`
	Size            [3]int      `json:"size"`
	Bounds          Bounds      `json:"bounds"`
	Placements      []Placement `json:"placements"`
}

type Bounds struct {
	Min [3]int `json:"min"`
	Max [3]int `json:"max"`
}

type Placement struct {
	Kind string     `json:"kind"`
	Face string     `json:"face,omitempty"`
	Cell [3]int     `json:"cell"`
	Pos  [3]float64 `json:"pos"`
	Rot  [4]float64 `json:"rot"`
}

// Server -> Client. Sent once after SUBSCRIBE.
type LevelMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	LevelID         string `json:"level_id"`
	Size            [3]int `json:"size"`
	Bounds          Bounds `json:"bounds"`
	LevelRows       []int  `json:"level_rows"`
	RowLengths      []int  `json:"row_lengths"`
	Encoding        string `json:"encoding"`
	Data            string `json:"data"`
}

// Server -> Client. Sent every tick.
type TickMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Tick            uint64     `json:"tick"`
	Digest          string     `json:"digest"`
	Bots            []BotState `json:"bots"`
	Spawns          []string   `json:"spawns,omitempty"`
}

type BotState struct {
	ID     string     `json:"id"`
	Pos    [3]float64 `json:"pos"`
	Cell   [3]int     `json:"cell"`
	Facing string     `json:"facing"`
	Moving bool       `json:"moving"`
}

type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}
