package laplace

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// NewsClient covers market news and the daily highlight digest.
type NewsClient struct {
	c *Client
}

// NewsQuery narrows GetAll. Zero values are omitted from the request.
type NewsQuery struct {
	Symbols   []string
	Type      NewsType
	OrderBy   NewsOrderBy
	Direction SortDirection
	Page      int
	PageSize  PageSize
}

// GetAll lists news for a region, optionally filtered and paged.
func (n *NewsClient) GetAll(ctx context.Context, region Region, q NewsQuery) (PaginatedResponse[News], error) {
	params := url.Values{}
	params.Set("region", string(region))
	if len(q.Symbols) > 0 {
		params.Set("symbols", strings.Join(q.Symbols, ","))
	}
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	if q.OrderBy != "" {
		params.Set("orderBy", string(q.OrderBy))
	}
	if q.Direction != "" {
		params.Set("direction", string(q.Direction))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(int(q.PageSize)))
	}
	return getJSON[PaginatedResponse[News]](ctx, n.c, "v1/news", params)
}

// GetHighlights returns the generated digest of the day's notable news.
func (n *NewsClient) GetHighlights(ctx context.Context, region Region, locale Locale) (NewsHighlight, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[NewsHighlight](ctx, n.c, "v1/news/highlights", params)
}
