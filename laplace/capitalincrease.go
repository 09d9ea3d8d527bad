package laplace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CapitalIncreaseClient covers BIST capital-increase events and active
// rights issues. TR only.
type CapitalIncreaseClient struct {
	c *Client
}

func (ci *CapitalIncreaseClient) requireTR(op string, region Region) error {
	if region != RegionTR {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRegion, region)
	}
	return nil
}

// GetAll lists capital-increase events market-wide, paged.
func (ci *CapitalIncreaseClient) GetAll(ctx context.Context, region Region, page int, pageSize PageSize) (PaginatedResponse[CapitalIncrease], error) {
	if err := ci.requireTR("capital increases", region); err != nil {
		return PaginatedResponse[CapitalIncrease]{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[CapitalIncrease]](ctx, ci.c, "v1/capital-increase/all", params)
}

// GetForInstrument lists one symbol's capital-increase history, paged.
func (ci *CapitalIncreaseClient) GetForInstrument(ctx context.Context, symbol string, region Region, page int, pageSize PageSize) (PaginatedResponse[CapitalIncrease], error) {
	if err := ci.requireTR("capital increases", region); err != nil {
		return PaginatedResponse[CapitalIncrease]{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[CapitalIncrease]](ctx, ci.c, "v1/capital-increase/"+url.PathEscape(symbol), params)
}

// GetActiveRights returns rights issues currently tradable for a symbol.
func (ci *CapitalIncreaseClient) GetActiveRights(ctx context.Context, symbol string, region Region) ([]CapitalIncrease, error) {
	if err := ci.requireTR("active rights", region); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[[]CapitalIncrease](ctx, ci.c, "v1/rights/active/"+url.PathEscape(symbol), params)
}
