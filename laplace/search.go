package laplace

import (
	"context"
	"net/url"
	"strings"
)

// SearchClient covers free-text instrument and grouping search.
type SearchClient struct {
	c *Client
}

// Search queries across the given result types. Empty types means all.
func (s *SearchClient) Search(ctx context.Context, query string, types []SearchType, region Region, locale Locale) (SearchData, error) {
	ts := make([]string, len(types))
	for i, t := range types {
		ts[i] = string(t)
	}
	params := url.Values{}
	params.Set("filter", query)
	params.Set("types", strings.Join(ts, ","))
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[SearchData](ctx, s.c, "v1/search", params)
}
