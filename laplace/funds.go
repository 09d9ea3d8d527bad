package laplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// FundsClient covers mutual-fund listings and per-fund analytics. TR only.
type FundsClient struct {
	c *Client
}

func (f *FundsClient) requireTR(op string, region Region) error {
	if region != RegionTR {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRegion, region)
	}
	return nil
}

// GetAll lists funds, paged.
func (f *FundsClient) GetAll(ctx context.Context, region Region, page int, pageSize PageSize) (PaginatedResponse[Fund], error) {
	if err := f.requireTR("funds", region); err != nil {
		return PaginatedResponse[Fund]{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[Fund]](ctx, f.c, "v1/fund", params)
}

// GetStats returns risk and return stats for one fund.
func (f *FundsClient) GetStats(ctx context.Context, symbol string, region Region) (FundStats, error) {
	if err := f.requireTR("fund stats", region); err != nil {
		return FundStats{}, err
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[FundStats](ctx, f.c, "v1/fund/stats", params)
}

// GetHistoricalPrices returns the price/AUM series for a fund.
func (f *FundsClient) GetHistoricalPrices(ctx context.Context, symbol string, region Region, period HistoricalPricePeriod) ([]FundPriceData, error) {
	if err := f.requireTR("fund prices", region); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	params.Set("period", string(period))
	return getJSON[[]FundPriceData](ctx, f.c, "v1/fund/price", params)
}

// GetDistribution returns the asset allocation breakdown of a fund.
func (f *FundsClient) GetDistribution(ctx context.Context, symbol string, region Region) (FundDistribution, error) {
	if err := f.requireTR("fund distribution", region); err != nil {
		return FundDistribution{}, err
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	return getJSON[FundDistribution](ctx, f.c, "v1/fund/distribution", params)
}
