package push

import (
	"fmt"
	"sort"

	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/finfree/laplace-go/laplace"
	"github.com/finfree/laplace-go/pkg/wsmetrics"
)

// wireFrame is the envelope around every inbound message. Control frames
// carry a type, data frames carry feed + message.
type wireFrame struct {
	Type    laplace.MessageType `json:"type,omitempty"`
	Feed    Feed                `json:"feed,omitempty"`
	Message json.RawMessage     `json:"message,omitempty"`
}

// 服务端在 websocket 上用的 key 跟 SSE 不完全一样，这里按 feed 换形。
type bistWireTick struct {
	Symbol string  `json:"symbol"`
	Close  float64 `json:"cl"`
	Change float64 `json:"c"`
	Date   int64   `json:"d"`
}

type usWireTick struct {
	Symbol string  `json:"s"`
	Price  float64 `json:"p"`
	Date   int64   `json:"t"`
}

func decodePayload(feed Feed, raw json.RawMessage) (laplace.LiveData, error) {
	switch feed {
	case FeedLivePriceTR, FeedDelayedPriceTR:
		var w bistWireTick
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return laplace.BISTStockLiveData{
			Symbol:       w.Symbol,
			ClosePrice:   w.Close,
			DailyPercent: w.Change,
			Date:         w.Date,
		}, nil
	case FeedLivePriceUS:
		var w usWireTick
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return laplace.USStockLiveData{Symbol: w.Symbol, Price: w.Price, Date: w.Date}, nil
	case FeedDepthTR:
		var w laplace.BISTStockOrderBookData
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown feed %q", feed)
	}
}

// dispatch decodes one inbound frame and fans it out to the matching
// handlers in subscription order.
func (c *Client) dispatch(raw []byte, arena map[int]*subscription, cache map[cacheKey]laplace.LiveData) {
	var frame wireFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		wsmetrics.DispatchErrorsTotal.Inc()
		c.log.Warn("frame parse failed",
			zap.String("code", string(ErrCodeMessageParse)), zap.Error(err))
		return
	}

	// 只有 data 帧才进 fan-out，其余类型一律只记日志
	switch frame.Type {
	case laplace.MessageTypeHeartbeat:
		wsmetrics.OnFrame("heartbeat")
		return
	case laplace.MessageTypeError:
		wsmetrics.OnFrame("error")
		c.log.Warn("server error frame", zap.ByteString("message", frame.Message))
		return
	case laplace.MessageTypeWarning:
		wsmetrics.OnFrame("warning")
		c.log.Warn("server warning frame", zap.ByteString("message", frame.Message))
		return
	case laplace.MessageTypeData:
	default:
		wsmetrics.OnFrame("unknown")
		c.log.Warn("unknown frame type", zap.String("type", string(frame.Type)))
		return
	}
	if frame.Feed == "" {
		wsmetrics.OnFrame("unknown")
		return
	}
	wsmetrics.OnFrame("data")

	data, err := decodePayload(frame.Feed, frame.Message)
	if err != nil {
		wsmetrics.DispatchErrorsTotal.Inc()
		c.log.Warn("payload parse failed",
			zap.String("code", string(ErrCodeMessageParse)),
			zap.String("feed", string(frame.Feed)), zap.Error(err))
		return
	}
	if data.LiveSymbol() == "" {
		// 空 payload 当坏帧处理，不进缓存也不回调
		wsmetrics.DispatchErrorsTotal.Inc()
		c.log.Warn("data frame without symbol",
			zap.String("code", string(ErrCodeMessageParse)),
			zap.String("feed", string(frame.Feed)))
		return
	}
	cache[cacheKey{frame.Feed, data.LiveSymbol()}] = data

	// 按订阅顺序回调，结果可复现
	ids := make([]int, 0, len(arena))
	for id, sub := range arena {
		if sub.feed == frame.Feed && sub.symbols[data.LiveSymbol()] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		callHandler(c.log, arena[id], data)
		wsmetrics.DispatchTotal.WithLabelValues(string(frame.Feed)).Inc()
	}
}

// callHandler isolates handler panics so one bad callback cannot take the
// run loop down.
func callHandler(log *zap.Logger, sub *subscription, data laplace.LiveData) {
	defer func() {
		if r := recover(); r != nil {
			wsmetrics.DispatchErrorsTotal.Inc()
			log.Error("handler panicked",
				zap.Int("subscription", sub.id),
				zap.String("feed", string(sub.feed)),
				zap.Any("panic", r))
		}
	}()
	sub.handler(data)
}
