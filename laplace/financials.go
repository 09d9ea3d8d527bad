package laplace

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// FinancialsClient covers financial statements and ratio analytics.
type FinancialsClient struct {
	c *Client
}

// GetRatioComparisons compares a stock's ratios against its peer group.
func (f *FinancialsClient) GetRatioComparisons(ctx context.Context, symbol string, region Region, peerType RatioComparisonPeerType) ([]StockPeerFinancialRatioComparison, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("region", string(region))
	params.Set("peerType", string(peerType))
	return getJSON[[]StockPeerFinancialRatioComparison](ctx, f.c, "v2/stock/financial-ratio-comparison", params)
}

// GetHistoricalRatios returns ratio time series for the requested slugs.
func (f *FinancialsClient) GetHistoricalRatios(ctx context.Context, symbol string, slugs []string, region Region, locale Locale) ([]StockHistoricalRatios, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("slugs", strings.Join(slugs, ","))
	params.Set("region", string(region))
	params.Set("locale", string(locale))
	return getJSON[[]StockHistoricalRatios](ctx, f.c, "v2/stock/historical-ratios", params)
}

// GetHistoricalRatiosDescriptions returns the metadata catalog for ratio slugs.
func (f *FinancialsClient) GetHistoricalRatiosDescriptions(ctx context.Context, locale Locale, region Region) ([]StockHistoricalRatiosDescription, error) {
	params := url.Values{}
	params.Set("locale", string(locale))
	params.Set("region", string(region))
	return getJSON[[]StockHistoricalRatiosDescription](ctx, f.c, "v2/stock/historical-ratios/descriptions", params)
}

// GetHistoricalFinancialSheets returns statement rows between two report dates.
// Balance sheets are point-in-time, so the cumulative period does not apply.
func (f *FinancialsClient) GetHistoricalFinancialSheets(ctx context.Context, symbol string, from, to FinancialSheetDate, sheet FinancialSheetType, period FinancialSheetPeriod, currency Currency, region Region) (HistoricalFinancialSheets, error) {
	if sheet == SheetBalanceSheet && period == PeriodCumulative {
		return HistoricalFinancialSheets{}, fmt.Errorf("financial sheets: %w: %s/%s", ErrInvalidPeriod, sheet, period)
	}
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", fmt.Sprintf("%04d-%02d-%02d", from.Year, from.Month, from.Day))
	params.Set("to", fmt.Sprintf("%04d-%02d-%02d", to.Year, to.Month, to.Day))
	params.Set("sheetType", string(sheet))
	params.Set("periodType", string(period))
	params.Set("currency", string(currency))
	params.Set("region", string(region))
	return getJSON[HistoricalFinancialSheets](ctx, f.c, "v3/stock/historical-financial-sheets", params)
}
