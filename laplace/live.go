package laplace

// 实时行情的 wire 形状。字段名刻意很短：SSE 和 websocket 每秒推很多条，
// 服务端把 key 压到一两个字母。

// MessageType classifies frames on the live transports.
type MessageType string

const (
	MessageTypeData      MessageType = "data"
	MessageTypeHeartbeat MessageType = "heartbeat"
	MessageTypeWarning   MessageType = "warning"
	MessageTypeError     MessageType = "error"
)

// LiveMessageV2 is the envelope the v2 BIST SSE endpoints wrap ticks in.
type LiveMessageV2[T any] struct {
	Symbol string      `json:"symbol"`
	Type   MessageType `json:"type"`
	Data   T           `json:"data"`
}

// LiveData is implemented by every live payload the push client can carry.
type LiveData interface {
	// LiveSymbol returns the instrument the payload belongs to.
	LiveSymbol() string
}

// BISTStockLiveData is a BIST tick. SSE uses s/ch/p/d; the websocket feed
// renames change/close, see bistWireFrame in push.
type BISTStockLiveData struct {
	Symbol        string  `json:"s"`
	DailyPercent  float64 `json:"ch"`
	ClosePrice    float64 `json:"p"`
	Date          int64   `json:"d"`
}

func (d BISTStockLiveData) LiveSymbol() string { return d.Symbol }

// USStockLiveData is a US trade print.
type USStockLiveData struct {
	Symbol string  `json:"s"`
	Price  float64 `json:"p"`
	Date   int64   `json:"d"`
}

func (d USStockLiveData) LiveSymbol() string { return d.Symbol }

// LevelSide is the side of an order-book level.
type LevelSide string

const (
	LevelSideBid LevelSide = "bid"
	LevelSideAsk LevelSide = "ask"
)

type OrderbookLevel struct {
	Level int       `json:"level"`
	Side  LevelSide `json:"side"`
	Price float64   `json:"price"`
	Size  float64   `json:"size"`
}

type OrderbookDeletedLevel struct {
	Level int       `json:"level"`
	Side  LevelSide `json:"side"`
}

// BISTStockOrderBookData is a depth delta: changed levels plus removals.
type BISTStockOrderBookData struct {
	Symbol  string                  `json:"s"`
	Updated []OrderbookLevel        `json:"updated"`
	Deleted []OrderbookDeletedLevel `json:"deleted"`
}

func (d BISTStockOrderBookData) LiveSymbol() string { return d.Symbol }

// BISTStockBidAskData is the top-of-book quote stream.
type BISTStockBidAskData struct {
	Symbol string  `json:"s"`
	Date   int64   `json:"d"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
}

func (d BISTStockBidAskData) LiveSymbol() string { return d.Symbol }
