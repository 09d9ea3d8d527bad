package laplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// intervalTimeLayout is what v1/stock/price/interval expects for from/to.
const intervalTimeLayout = "2006-01-02 15:04:05"

// HistoricalPricePeriod selects which windows v1/stock/price returns.
type HistoricalPricePeriod string

const (
	Period1Day    HistoricalPricePeriod = "1D"
	Period1Week   HistoricalPricePeriod = "1W"
	Period1Month  HistoricalPricePeriod = "1M"
	Period3Months HistoricalPricePeriod = "3M"
	Period1Year   HistoricalPricePeriod = "1Y"
	Period2Years  HistoricalPricePeriod = "2Y"
	Period3Years  HistoricalPricePeriod = "3Y"
	Period5Years  HistoricalPricePeriod = "5Y"
)

// StocksClient covers instrument metadata, prices and reference rules.
type StocksClient struct {
	c *Client
}

// GetAll lists instruments for a region, paged.
func (s *StocksClient) GetAll(ctx context.Context, region Region, page int, pageSize PageSize) ([]Stock, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[[]Stock](ctx, s.c, "v2/stock/all", params)
}

// GetDetailByID fetches one instrument by its opaque id.
func (s *StocksClient) GetDetailByID(ctx context.Context, id string, locale Locale) (StockDetail, error) {
	params := url.Values{}
	params.Set("locale", string(locale))
	return getJSON[StockDetail](ctx, s.c, "v1/stock/"+url.PathEscape(id), params)
}

// GetDetailBySymbol fetches one instrument by ticker.
func (s *StocksClient) GetDetailBySymbol(ctx context.Context, symbol string, assetClass AssetClass, region Region, locale Locale) (StockDetail, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("asset_class", string(assetClass))
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[StockDetail](ctx, s.c, "v1/stock/detail", params)
}

// GetHistoricalPrices returns candle series for the requested windows.
func (s *StocksClient) GetHistoricalPrices(ctx context.Context, symbols []string, region Region, keys []HistoricalPricePeriod) ([]StockPriceData, error) {
	ks := make([]string, len(keys))
	for i, k := range keys {
		ks[i] = string(k)
	}
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("region", string(region))
	params.Set("keys", strings.Join(ks, ","))
	return getJSON[[]StockPriceData](ctx, s.c, "v1/stock/price", params)
}

// GetCustomHistoricalPrices returns candles for an arbitrary time range
// at the requested resolution.
func (s *StocksClient) GetCustomHistoricalPrices(ctx context.Context, symbol string, region Region, from, to time.Time, interval IntervalPrice, detail bool) ([]PriceCandle, error) {
	params := url.Values{}
	params.Set("stock", symbol)
	params.Set("region", string(region))
	params.Set("fromDate", from.Format(intervalTimeLayout))
	params.Set("toDate", to.Format(intervalTimeLayout))
	params.Set("interval", string(interval))
	if detail {
		params.Set("detail", "true")
	}
	return getJSON[[]PriceCandle](ctx, s.c, "v1/stock/price/interval", params)
}

// GetTickRules returns BIST price-step rules. TR only.
func (s *StocksClient) GetTickRules(ctx context.Context, symbol string, region Region) (StockRules, error) {
	if region != RegionTR {
		return StockRules{}, fmt.Errorf("tick rules: %w: %s", ErrInvalidRegion, region)
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[StockRules](ctx, s.c, "v1/stock/rules", params)
}

// GetRestrictions returns active trading restrictions for one symbol. TR only.
func (s *StocksClient) GetRestrictions(ctx context.Context, symbol string, region Region) ([]StockRestriction, error) {
	if region != RegionTR {
		return nil, fmt.Errorf("restrictions: %w: %s", ErrInvalidRegion, region)
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[[]StockRestriction](ctx, s.c, "v1/stock/restrictions", params)
}

// GetAllRestrictions returns every active restriction in the market. TR only.
func (s *StocksClient) GetAllRestrictions(ctx context.Context, region Region) ([]StockRestriction, error) {
	if region != RegionTR {
		return nil, fmt.Errorf("restrictions: %w: %s", ErrInvalidRegion, region)
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[[]StockRestriction](ctx, s.c, "v1/stock/restrictions/all", params)
}

// GetTopMovers lists the day's biggest gainers or losers.
func (s *StocksClient) GetTopMovers(ctx context.Context, region Region, page int, pageSize PageSize, direction SortDirection, assetClass AssetClass) ([]TopMover, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	params.Set("direction", string(direction))
	params.Set("assetClass", string(assetClass))
	return getJSON[[]TopMover](ctx, s.c, "v2/stock/top-movers", params)
}

// GetDividends returns the paid-dividend history of a symbol.
func (s *StocksClient) GetDividends(ctx context.Context, symbol string, region Region) ([]Dividend, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[[]Dividend](ctx, s.c, "v2/stock/dividends", params)
}

// GetStats returns snapshot valuation and return stats for many symbols at once.
func (s *StocksClient) GetStats(ctx context.Context, symbols []string, region Region) ([]StockStats, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("region", string(region))
	return getJSON[[]StockStats](ctx, s.c, "v2/stock/stats", params)
}

// GetAggregateGraph returns the intraday aggregate graph with previous close.
func (s *StocksClient) GetAggregateGraph(ctx context.Context, symbol string, region Region) (AggregateGraphData, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[AggregateGraphData](ctx, s.c, "v1/aggregate/graph", params)
}

// GetKeyInsights returns the generated key insight text for a symbol.
func (s *StocksClient) GetKeyInsights(ctx context.Context, symbol string, region Region) (KeyInsight, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[KeyInsight](ctx, s.c, "v1/key-insight", params)
}
