// Package push implements the multiplexed websocket side of the live price
// API: one connection, many feed subscriptions, automatic reconnect with
// resubscribe replay.
package push

import (
	"fmt"
	"time"

	"github.com/finfree/laplace-go/laplace"
)

// Feed names a server-side stream multiplexed over the websocket.
type Feed string

const (
	FeedLivePriceTR    Feed = "live_price_tr"
	FeedLivePriceUS    Feed = "live_price_us"
	FeedDelayedPriceTR Feed = "delayed_price_tr"
	FeedDepthTR        Feed = "depth_tr"
)

// CloseReason records why the connection ended.
type CloseReason string

const (
	CloseNormal            CloseReason = "NORMAL"
	CloseConnectionError   CloseReason = "CONNECTION_ERROR"
	CloseReconnectExceeded CloseReason = "MAX_RECONNECT_EXCEEDED"
	CloseUnknown           CloseReason = "UNKNOWN"
)

// ErrorCode classifies push-client errors.
type ErrorCode string

const (
	ErrCodeConnection        ErrorCode = "CONNECTION_ERROR"
	ErrCodeClose             ErrorCode = "CLOSE_ERROR"
	ErrCodeNotInitialized    ErrorCode = "WEBSOCKET_NOT_INITIALIZED"
	ErrCodeNotConnected      ErrorCode = "WEBSOCKET_NOT_CONNECTED"
	ErrCodeMessageParse      ErrorCode = "MESSAGE_PARSE_ERROR"
	ErrCodeReconnectExceeded ErrorCode = "MAX_RECONNECT_EXCEEDED"
	ErrCodeUnknown           ErrorCode = "UNKNOWN_ERROR"
)

// Error is the typed error the push client returns.
type Error struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("push: %s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("push: %s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code ErrorCode, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// Handler receives decoded feed payloads. Handlers run on the client's
// dispatch goroutine; do not block in them.
type Handler func(laplace.LiveData)

// Options tunes reconnect behaviour.
type Options struct {
	EnableReconnect   bool
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
}

// DefaultOptions mirrors the server team's recommended reconnect policy.
func DefaultOptions() Options {
	return Options{
		EnableReconnect:   true,
		ReconnectAttempts: 5,
		ReconnectDelay:    5 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ReconnectAttempts <= 0 {
		o.ReconnectAttempts = d.ReconnectAttempts
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = d.ReconnectDelay
	}
	if o.MaxReconnectDelay <= 0 {
		o.MaxReconnectDelay = d.MaxReconnectDelay
	}
	return o
}

// AccessorType classifies who is driving the websocket session.
type AccessorType string

const (
	AccessorTypeUser    AccessorType = "user"
	AccessorTypeService AccessorType = "service"
)

// UserDetails is the entitlement record behind PUT v1/ws/user.
type UserDetails struct {
	ExternalUserID string       `json:"externalUserId"`
	Active         bool         `json:"active"`
	FirstName      string       `json:"firstName,omitempty"`
	LastName       string       `json:"lastName,omitempty"`
	Address        string       `json:"address,omitempty"`
	City           string       `json:"city,omitempty"`
	CountryCode    string       `json:"countryCode,omitempty"`
	AccessorType   AccessorType `json:"accessorType,omitempty"`
}
