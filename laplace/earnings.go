package laplace

import (
	"context"
	"fmt"
	"net/url"
)

// EarningsClient covers earnings-call transcripts. US only.
type EarningsClient struct {
	c *Client
}

// GetTranscripts lists available transcripts for a symbol.
func (e *EarningsClient) GetTranscripts(ctx context.Context, symbol string) ([]EarningsTranscriptListItem, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	return getJSON[[]EarningsTranscriptListItem](ctx, e.c, "v1/earnings/transcripts", params)
}

// GetTranscript fetches one quarter's transcript, with summary when available.
// The id is "SYMBOL-YEAR-QQUARTER", e.g. "AAPL-2024-Q3".
func (e *EarningsClient) GetTranscript(ctx context.Context, symbol string, year, quarter int) (EarningsTranscriptWithSummary, error) {
	id := fmt.Sprintf("%s-%d-Q%d", symbol, year, quarter)
	return getJSON[EarningsTranscriptWithSummary](ctx, e.c, "v1/earnings/transcript/"+url.PathEscape(id), nil)
}
