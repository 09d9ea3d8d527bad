package laplace

import (
	"errors"
	"fmt"
)

// APIError is the structured error the HTTP API returns on non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("laplace: api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("laplace: api error %d: %s", e.Status, e.Message)
}

// IsClientError reports whether the error is caller's fault. 熔断器用它
// 区分 4xx 和真正的服务端故障。
func (e *APIError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

var (
	// ErrInvalidRegion marks an endpoint called with a region it does not serve.
	ErrInvalidRegion = errors.New("laplace: endpoint not available for region")

	// ErrInvalidPeriod marks a financial-sheet request with an unsupported
	// sheet/period combination.
	ErrInvalidPeriod = errors.New("laplace: unsupported period for sheet type")

	// ErrMissingAPIKey marks a client constructed without credentials.
	ErrMissingAPIKey = errors.New("laplace: api key is required")
)

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
