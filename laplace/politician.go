package laplace

import (
	"context"
	"net/url"
	"strconv"
)

// PoliticiansClient covers US congressional trading disclosures. US only.
type PoliticiansClient struct {
	c *Client
}

// GetAll lists politicians with disclosed holdings, paged.
func (p *PoliticiansClient) GetAll(ctx context.Context, page int, pageSize PageSize) (PaginatedResponse[Politician], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[Politician]](ctx, p.c, "v1/politician", params)
}

// GetDetail returns one politician's full holding list.
func (p *PoliticiansClient) GetDetail(ctx context.Context, id int) (PoliticianDetail, error) {
	return getJSON[PoliticianDetail](ctx, p.c, "v1/politician/"+strconv.Itoa(id), nil)
}

// GetHoldings lists every disclosed position in a symbol.
func (p *PoliticiansClient) GetHoldings(ctx context.Context, symbol string, page int, pageSize PageSize) (PaginatedResponse[Holding], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[Holding]](ctx, p.c, "v1/holding/"+url.PathEscape(symbol), params)
}

// GetTopHoldings ranks symbols by how many politicians hold them.
func (p *PoliticiansClient) GetTopHoldings(ctx context.Context, page int, pageSize PageSize) (PaginatedResponse[TopHolding], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(int(pageSize)))
	return getJSON[PaginatedResponse[TopHolding]](ctx, p.c, "v1/top-holding", params)
}
