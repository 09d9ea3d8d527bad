package laplace

import (
	"context"
	"net/url"
)

// CollectionsClient covers curated stock groupings: collections, themes,
// industries, sectors and the user's custom themes. 四种 grouping 的 wire
// 形状一样，只是路径不同。
type CollectionsClient struct {
	c *Client
}

func (cc *CollectionsClient) list(ctx context.Context, endpoint string, region Region, locale Locale) ([]Collection, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[[]Collection](ctx, cc.c, endpoint, params)
}

func (cc *CollectionsClient) detail(ctx context.Context, endpoint, id string, region Region, locale Locale) (CollectionDetail, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[CollectionDetail](ctx, cc.c, endpoint+"/"+url.PathEscape(id), params)
}

func (cc *CollectionsClient) GetAllCollections(ctx context.Context, region Region, locale Locale) ([]Collection, error) {
	return cc.list(ctx, "v1/collection", region, locale)
}

func (cc *CollectionsClient) GetCollectionDetail(ctx context.Context, id string, region Region, locale Locale) (CollectionDetail, error) {
	return cc.detail(ctx, "v1/collection", id, region, locale)
}

func (cc *CollectionsClient) GetAllThemes(ctx context.Context, region Region, locale Locale) ([]Theme, error) {
	return cc.list(ctx, "v1/theme", region, locale)
}

func (cc *CollectionsClient) GetThemeDetail(ctx context.Context, id string, region Region, locale Locale) (ThemeDetail, error) {
	return cc.detail(ctx, "v1/theme", id, region, locale)
}

func (cc *CollectionsClient) GetAllIndustries(ctx context.Context, region Region, locale Locale) ([]Industry, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[[]Industry](ctx, cc.c, "v1/industry", params)
}

func (cc *CollectionsClient) GetIndustryDetail(ctx context.Context, id string, region Region, locale Locale) (IndustryDetail, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[IndustryDetail](ctx, cc.c, "v1/industry/"+url.PathEscape(id), params)
}

func (cc *CollectionsClient) GetAllSectors(ctx context.Context, region Region, locale Locale) ([]Sector, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[[]Sector](ctx, cc.c, "v1/sector", params)
}

func (cc *CollectionsClient) GetSectorDetail(ctx context.Context, id string, region Region, locale Locale) (SectorDetail, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[SectorDetail](ctx, cc.c, "v1/sector/"+url.PathEscape(id), params)
}

func (cc *CollectionsClient) GetAllCustomThemes(ctx context.Context, locale Locale) ([]Collection, error) {
	params := url.Values{}
	params.Set("locale", string(locale))
	return getJSON[[]Collection](ctx, cc.c, "v1/custom-theme", params)
}

func (cc *CollectionsClient) GetCustomThemeDetail(ctx context.Context, id string, region Region, locale Locale, sortBy SortDirection) (CollectionDetail, error) {
	params := url.Values{}
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	if sortBy != "" {
		params.Set("sortBy", string(sortBy))
	}
	return getJSON[CollectionDetail](ctx, cc.c, "v1/custom-theme/"+url.PathEscape(id), params)
}
