package laplace

import (
	"context"
	"fmt"
	"net/url"
)

// StateClient covers trading-session state for markets and single symbols.
// TR only.
type StateClient struct {
	c *Client
}

func (s *StateClient) requireTR(op string, region Region) error {
	if region != RegionTR {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRegion, region)
	}
	return nil
}

// GetAllMarketStates returns the session state of every market.
func (s *StateClient) GetAllMarketStates(ctx context.Context, region Region) ([]MarketState, error) {
	if err := s.requireTR("market states", region); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[[]MarketState](ctx, s.c, "v1/state/all", params)
}

// GetMarketState returns one market's session state, e.g. XIST.
func (s *StateClient) GetMarketState(ctx context.Context, marketSymbol string, region Region) (MarketState, error) {
	if err := s.requireTR("market state", region); err != nil {
		return MarketState{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[MarketState](ctx, s.c, "v1/state/"+url.PathEscape(marketSymbol), params)
}

// GetAllStockStates returns per-symbol state for every instrument that has
// one, halted stocks included.
func (s *StateClient) GetAllStockStates(ctx context.Context, region Region) ([]MarketState, error) {
	if err := s.requireTR("stock states", region); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[[]MarketState](ctx, s.c, "v1/state/stock/all", params)
}

// GetStockState returns one instrument's session state.
func (s *StateClient) GetStockState(ctx context.Context, symbol string, region Region) (MarketState, error) {
	if err := s.requireTR("stock state", region); err != nil {
		return MarketState{}, err
	}
	params := url.Values{}
	params.Set("region", string(region))
	return getJSON[MarketState](ctx, s.c, "v1/state/stock/"+url.PathEscape(symbol), params)
}
