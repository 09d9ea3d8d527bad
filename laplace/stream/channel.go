// Package stream implements the server-sent-events pull side of the live
// price API. 一个 Channel 只维护一条活动连接：重订阅就换新连接。
package stream

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/finfree/laplace-go/pkg/logger"
	"github.com/finfree/laplace-go/pkg/safe"
)

const defaultQueueSize = 64

// Result carries either a decoded event or the error that ended the stream.
// After an error result the channel is closed; no further results follow.
type Result[T any] struct {
	Data T
	Err  error
}

// Config wires a Channel to one SSE endpoint.
type Config[T any] struct {
	BaseURL string
	Path    string
	APIKey  string
	Region  string
	// Decode turns one data: payload into T. Defaults to JSON unmarshal.
	Decode     func([]byte) (T, error)
	HTTPClient *http.Client
	Logger     *zap.Logger
	QueueSize  int
}

// Channel is a restartable SSE subscription. Subscribe tears down any
// previous connection before opening the next one, so at most one reader
// goroutine is alive at a time.
type Channel[T any] struct {
	cfg Config[T]

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	out    chan Result[T]
	closed bool
}

// NewChannel validates cfg and fills defaults.
func NewChannel[T any](cfg Config[T]) (*Channel[T], error) {
	if cfg.BaseURL == "" || cfg.Path == "" {
		return nil, fmt.Errorf("stream: base url and path are required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("stream: api key is required")
	}
	if cfg.Decode == nil {
		cfg.Decode = func(raw []byte) (T, error) {
			var v T
			err := json.Unmarshal(raw, &v)
			return v, err
		}
	}
	if cfg.HTTPClient == nil {
		// SSE 连接要一直挂着，不能带全局超时
		cfg.HTTPClient = &http.Client{}
	}
	cfg.Logger = logger.Or(cfg.Logger)
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	return &Channel[T]{cfg: cfg}, nil
}

// Subscribe opens a fresh stream for symbols and returns its result channel.
// Any previous stream of this Channel is shut down first; its channel is
// closed once the old reader exits. The returned channel closes when the
// stream ends, after an error result if the stream failed.
func (ch *Channel[T]) Subscribe(ctx context.Context, symbols []string) (<-chan Result[T], error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		return nil, fmt.Errorf("stream: channel is closed")
	}
	ch.stopLocked()

	streamID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	out := make(chan Result[T], ch.cfg.QueueSize)

	ch.cancel = cancel
	ch.done = done
	ch.out = out

	log := ch.cfg.Logger.With(
		zap.String("stream", streamID),
		zap.String("path", ch.cfg.Path))
	safe.Go(log, func() {
		defer close(done)
		defer close(out)
		ch.run(runCtx, log, streamID, symbols, out)
	})
	return out, nil
}

// Receive returns the delivery queue of the current subscription, nil before
// the first Subscribe. Same channel Subscribe returned.
func (ch *Channel[T]) Receive() <-chan Result[T] {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.out
}

// Close shuts the active stream down. The Channel cannot be reused after.
func (ch *Channel[T]) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stopLocked()
	ch.closed = true
}

// IsClosed reports whether Close has been called.
func (ch *Channel[T]) IsClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}

// stopLocked cancels the current reader and waits for it to exit.
func (ch *Channel[T]) stopLocked() {
	if ch.cancel == nil {
		return
	}
	ch.cancel()
	<-ch.done
	ch.cancel = nil
	ch.done = nil
}

func (ch *Channel[T]) run(ctx context.Context, log *zap.Logger, streamID string, symbols []string, out chan<- Result[T]) {
	// 消费者可能已经不在了，错误也不能无条件往队列里塞
	fail := func(err error) {
		select {
		case out <- Result[T]{Err: err}:
		case <-ctx.Done():
		}
	}

	u := ch.cfg.BaseURL + "/" + ch.cfg.Path
	params := url.Values{}
	params.Set("filter", strings.Join(symbols, ","))
	if ch.cfg.Region != "" {
		params.Set("region", ch.cfg.Region)
	}
	params.Set("stream", streamID)
	u += "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		fail(fmt.Errorf("stream: build request: %w", err))
		return
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Authorization", "Bearer "+ch.cfg.APIKey)

	resp, err := ch.cfg.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fail(fmt.Errorf("stream: connect: %w", err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fail(fmt.Errorf("stream: unexpected status %d", resp.StatusCode))
		return
	}
	log.Debug("sse stream open", zap.Strings("symbols", symbols))

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 16*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			// keep-alive 空行和注释行直接略过
			continue
		}
		payload := strings.TrimSpace(line[len("data:"):])
		if payload == "" {
			continue
		}
		v, err := ch.cfg.Decode([]byte(payload))
		if err != nil {
			// 坏帧说明流已经不可信，立即结束
			fail(fmt.Errorf("stream: decode event: %w", err))
			return
		}
		select {
		case out <- Result[T]{Data: v}:
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		fail(fmt.Errorf("stream: read: %w", err))
	}
	log.Debug("sse stream closed")
}
