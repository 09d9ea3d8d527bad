package laplace

import (
	"github.com/segmentio/encoding/json"

	"github.com/finfree/laplace-go/laplace/stream"
)

// LivePriceClient hands out SSE channels for the live endpoints. Depth and
// delayed feeds only exist for BIST; US live trades share the v2 endpoint
// with a region switch.
type LivePriceClient struct {
	c *Client
}

func streamConfig[T any](c *Client, path string, region Region) stream.Config[T] {
	return stream.Config[T]{
		BaseURL: c.baseURL,
		Path:    path,
		APIKey:  c.apiKey,
		Region:  string(region),
		Logger:  c.log,
	}
}

// decodeBISTEnvelope unwraps the LiveMessageV2 envelope the BIST tick
// endpoints emit around each data line.
func decodeBISTEnvelope(raw []byte) (BISTStockLiveData, error) {
	var env LiveMessageV2[BISTStockLiveData]
	if err := json.Unmarshal(raw, &env); err != nil {
		return BISTStockLiveData{}, err
	}
	if env.Data.Symbol == "" {
		env.Data.Symbol = env.Symbol
	}
	return env.Data, nil
}

// BISTPrice streams real-time BIST ticks.
func (lp *LivePriceClient) BISTPrice() (*stream.Channel[BISTStockLiveData], error) {
	cfg := streamConfig[BISTStockLiveData](lp.c, "v2/stock/price/live", RegionTR)
	cfg.Decode = decodeBISTEnvelope
	return stream.NewChannel(cfg)
}

// USPrice streams real-time US trade prints.
func (lp *LivePriceClient) USPrice() (*stream.Channel[USStockLiveData], error) {
	return stream.NewChannel(streamConfig[USStockLiveData](lp.c, "v2/stock/price/live", RegionUS))
}

// BISTDelayedPrice streams the 15-minute delayed BIST feed.
func (lp *LivePriceClient) BISTDelayedPrice() (*stream.Channel[BISTStockLiveData], error) {
	cfg := streamConfig[BISTStockLiveData](lp.c, "v1/stock/price/delayed", RegionTR)
	cfg.Decode = decodeBISTEnvelope
	return stream.NewChannel(cfg)
}

// BISTOrderBook streams BIST depth deltas.
func (lp *LivePriceClient) BISTOrderBook() (*stream.Channel[BISTStockOrderBookData], error) {
	return stream.NewChannel(streamConfig[BISTStockOrderBookData](lp.c, "v1/stock/orderbook/live", RegionTR))
}

// BISTBidAsk streams BIST top-of-book quotes.
func (lp *LivePriceClient) BISTBidAsk() (*stream.Channel[BISTStockBidAskData], error) {
	return stream.NewChannel(streamConfig[BISTStockBidAskData](lp.c, "v1/stock/price/bids", RegionTR))
}
