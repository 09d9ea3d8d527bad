package laplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// brokerDateLayout is what the broker endpoints expect for fromDate/toDate.
const brokerDateLayout = "2006-01-02"

// BrokersClient covers BIST member-firm trading flow. TR only.
type BrokersClient struct {
	c *Client
}

func (b *BrokersClient) requireTR(op string, region Region) error {
	if region != RegionTR {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRegion, region)
	}
	return nil
}

// GetAll lists the member firms, paged.
func (b *BrokersClient) GetAll(ctx context.Context, region Region, page int, pageSize PageSize) (PaginatedResponse[Broker], error) {
	if err := b.requireTR("brokers", region); err != nil {
		return PaginatedResponse[Broker]{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[Broker]](ctx, b.c, "v1/brokers", params)
}

// GetMarketActivity aggregates buy/sell flow per broker across the market.
func (b *BrokersClient) GetMarketActivity(ctx context.Context, region Region, sortBy BrokerSort, direction SortDirection, from, to time.Time, page int, pageSize PageSize) (BrokerMarketData, error) {
	if err := b.requireTR("broker market activity", region); err != nil {
		return BrokerMarketData{}, err
	}
	params := b.activityParams(region, sortBy, direction, from, to, page, pageSize)
	return getJSON[BrokerMarketData](ctx, b.c, "v1/brokers/market", params)
}

// GetBrokerActivity breaks one broker's flow down by stock.
func (b *BrokersClient) GetBrokerActivity(ctx context.Context, brokerSymbol string, region Region, sortBy BrokerSort, direction SortDirection, from, to time.Time, page int, pageSize PageSize) (BrokerStockData, error) {
	if err := b.requireTR("broker activity", region); err != nil {
		return BrokerStockData{}, err
	}
	params := b.activityParams(region, sortBy, direction, from, to, page, pageSize)
	return getJSON[BrokerStockData](ctx, b.c, "v1/brokers/"+url.PathEscape(brokerSymbol), params)
}

// GetStockActivity breaks one stock's flow down by broker.
func (b *BrokersClient) GetStockActivity(ctx context.Context, symbol string, region Region, sortBy BrokerSort, direction SortDirection, from, to time.Time, page int, pageSize PageSize) (BrokerMarketData, error) {
	if err := b.requireTR("stock broker activity", region); err != nil {
		return BrokerMarketData{}, err
	}
	params := b.activityParams(region, sortBy, direction, from, to, page, pageSize)
	return getJSON[BrokerMarketData](ctx, b.c, "v1/brokers/stock/"+url.PathEscape(symbol), params)
}

// GetMarketStockActivity aggregates broker flow per stock across the market.
func (b *BrokersClient) GetMarketStockActivity(ctx context.Context, region Region, sortBy BrokerSort, direction SortDirection, from, to time.Time, page int, pageSize PageSize) (BrokerStockData, error) {
	if err := b.requireTR("market stock activity", region); err != nil {
		return BrokerStockData{}, err
	}
	params := b.activityParams(region, sortBy, direction, from, to, page, pageSize)
	return getJSON[BrokerStockData](ctx, b.c, "v1/brokers/market/stock", params)
}

func (b *BrokersClient) activityParams(region Region, sortBy BrokerSort, direction SortDirection, from, to time.Time, page int, pageSize PageSize) url.Values {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("sortBy", string(sortBy))
	params.Set("sortDirection", string(direction))
	params.Set("fromDate", from.Format(brokerDateLayout))
	params.Set("toDate", to.Format(brokerDateLayout))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return params
}
