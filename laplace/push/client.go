package push

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/finfree/laplace-go/laplace"
	"github.com/finfree/laplace-go/pkg/logger"
	"github.com/finfree/laplace-go/pkg/safe"
	"github.com/finfree/laplace-go/pkg/wsmetrics"
)

const closeJoinTimeout = 5 * time.Second

// Client multiplexes feed subscriptions over one websocket connection.
//
// 所有连接状态都归 run loop 这个 goroutine 管，外部只通过 cmds/events
// 两条 channel 跟它说话，锁一个都不用。
type Client struct {
	base           *laplace.Client
	feeds          []Feed
	externalUserID string
	opts           Options
	log            *zap.Logger

	cmds    chan any
	events  chan any
	closing chan struct{}
	done    chan struct{}

	started atomic.Bool
	closed  atomic.Bool
	reason  atomic.Value // CloseReason
}

type subscription struct {
	id      int
	feed    Feed
	symbols map[string]bool
	handler Handler
}

// Subscription is the handle Subscribe returns; it only knows how to
// unsubscribe itself.
type Subscription struct {
	id int
	c  *Client
}

// ID returns the client-local subscription id.
func (s *Subscription) ID() int { return s.id }

// Unsubscribe detaches the handler and releases symbols no other
// subscription still needs.
func (s *Subscription) Unsubscribe() error {
	return s.c.unsubscribe(s.id)
}

type cmdSubscribe struct {
	feed    Feed
	symbols []string
	handler Handler
	reply   chan *Subscription
}

type cmdUnsubscribe struct {
	id    int
	reply chan struct{}
}

// events are tagged with the connection they came from so the loop can
// drop frames from a reader that outlived its connection.
type evFrame struct {
	conn *websocket.Conn
	raw  []byte
}

type evReadErr struct {
	conn *websocket.Conn
	err  error
}

// NewClient builds a push client on top of an API client for the given user
// and feed entitlements. Connect must be called before Subscribe.
func NewClient(base *laplace.Client, externalUserID string, feeds []Feed, opts Options) *Client {
	c := &Client{
		base:           base,
		feeds:          feeds,
		externalUserID: externalUserID,
		opts:           opts.withDefaults(),
		log:            logger.Or(base.Logger()).With(zap.String("component", "push")),
		cmds:           make(chan any),
		events:         make(chan any, 256),
		closing:        make(chan struct{}),
		done:           make(chan struct{}),
	}
	c.reason.Store(CloseUnknown)
	return c
}

// CloseReason reports why the connection ended. Meaningful once Closed.
func (c *Client) CloseReason() CloseReason {
	return c.reason.Load().(CloseReason)
}

// Closed reports whether the client has shut down.
func (c *Client) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Connect performs the ws-url handshake, dials, and starts the run loop.
// An explicit websocket URL skips the handshake.
func (c *Client) Connect(ctx context.Context, wsURLs ...string) error {
	if c.externalUserID == "" {
		return newError(ErrCodeNotInitialized, "external user id is required", nil)
	}
	if len(c.feeds) == 0 {
		return newError(ErrCodeNotInitialized, "at least one feed is required", nil)
	}
	if !c.started.CompareAndSwap(false, true) {
		return newError(ErrCodeUnknown, "already connected", nil)
	}
	var wsURL string
	if len(wsURLs) > 0 && wsURLs[0] != "" {
		wsURL = wsURLs[0]
	} else {
		var err error
		if wsURL, err = c.fetchWSURL(ctx); err != nil {
			c.started.Store(false)
			return err
		}
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		c.started.Store(false)
		return newError(ErrCodeConnection, "dial "+wsURL, err)
	}
	wsmetrics.OnOpen()
	c.log.Info("websocket connected", zap.String("url", wsURL))
	safe.Go(c.log, func() { c.run(conn) })
	safe.Go(c.log, func() { c.readLoop(conn) })
	return nil
}

// fetchWSURL asks the control endpoint where to dial. Auth is the api key
// as a query parameter here, not a bearer header; the body tells the control
// plane whose entitlements to resolve.
func (c *Client) fetchWSURL(ctx context.Context) (string, error) {
	payload, err := json.Marshal(struct {
		ExternalUserID string `json:"externalUserId"`
		Feeds          []Feed `json:"feeds"`
	}{c.externalUserID, c.feeds})
	if err != nil {
		return "", newError(ErrCodeConnection, "encode ws-url request", err)
	}
	u := c.base.BaseURL() + "/v2/ws/url?api_key=" + c.base.APIKey()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", newError(ErrCodeConnection, "build ws-url request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.base.HTTPClient().Do(req)
	if err != nil {
		return "", newError(ErrCodeConnection, "ws-url handshake", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", newError(ErrCodeConnection, fmt.Sprintf("ws-url handshake status %d", resp.StatusCode), nil)
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", newError(ErrCodeConnection, "decode ws-url response", err)
	}
	if body.URL == "" {
		return "", newError(ErrCodeConnection, "ws-url response missing url", nil)
	}
	return body.URL, nil
}

// Subscribe attaches a handler to a feed for the given symbols. Cached last
// values for already-seen symbols are replayed to the handler before
// Subscribe returns.
func (c *Client) Subscribe(feed Feed, symbols []string, h Handler) (*Subscription, error) {
	if !c.started.Load() {
		return nil, newError(ErrCodeNotInitialized, "connect before subscribing", nil)
	}
	if c.closed.Load() {
		return nil, newError(ErrCodeNotConnected, "client is closed", nil)
	}
	if !c.feedEnabled(feed) {
		return nil, newError(ErrCodeUnknown, "feed not enabled for this client: "+string(feed), nil)
	}
	reply := make(chan *Subscription, 1)
	cmd := cmdSubscribe{feed: feed, symbols: symbols, handler: h, reply: reply}
	select {
	case c.cmds <- cmd:
	case <-c.done:
		return nil, newError(ErrCodeNotConnected, "client is closed", nil)
	}
	select {
	case sub := <-reply:
		return sub, nil
	case <-c.done:
		return nil, newError(ErrCodeNotConnected, "client is closed", nil)
	}
}

func (c *Client) unsubscribe(id int) error {
	reply := make(chan struct{}, 1)
	select {
	case c.cmds <- cmdUnsubscribe{id: id, reply: reply}:
	case <-c.done:
		return newError(ErrCodeNotConnected, "client is closed", nil)
	}
	select {
	case <-reply:
		return nil
	case <-c.done:
		return newError(ErrCodeNotConnected, "client is closed", nil)
	}
}

// Close shuts the connection down and waits for the run loop to exit.
func (c *Client) Close() error {
	if !c.started.Load() {
		return nil
	}
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.closing)
	select {
	case <-c.done:
		return nil
	case <-time.After(closeJoinTimeout):
		return newError(ErrCodeClose, "shutdown timed out", nil)
	}
}

func (c *Client) feedEnabled(feed Feed) bool {
	for _, f := range c.feeds {
		if f == feed {
			return true
		}
	}
	return false
}

// UpdateUserDetails pushes entitlement changes for the websocket user.
func (c *Client) UpdateUserDetails(ctx context.Context, d UserDetails) error {
	if d.ExternalUserID == "" {
		d.ExternalUserID = c.externalUserID
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return newError(ErrCodeUnknown, "encode user details", err)
	}
	if _, err := c.base.Do(ctx, http.MethodPut, "v1/ws/user", nil, raw); err != nil {
		return err
	}
	return nil
}

func (c *Client) setReason(r CloseReason) {
	c.reason.CompareAndSwap(CloseUnknown, r)
}

type cacheKey struct {
	feed   Feed
	symbol string
}

// run owns every piece of connection state. Nothing here is shared.
func (c *Client) run(conn *websocket.Conn) {
	defer close(c.done)
	defer wsmetrics.OnClose(string(c.CloseReason()))

	cur := conn
	arena := make(map[int]*subscription)
	cache := make(map[cacheKey]laplace.LiveData)
	nextID := 1

	for {
		select {
		case <-c.closing:
			c.setReason(CloseNormal)
			c.closeConn(cur)
			return

		case raw := <-c.cmds:
			switch cmd := raw.(type) {
			case cmdSubscribe:
				sub := &subscription{
					id:      nextID,
					feed:    cmd.feed,
					symbols: make(map[string]bool, len(cmd.symbols)),
					handler: cmd.handler,
				}
				nextID++
				for _, s := range cmd.symbols {
					sub.symbols[s] = true
				}
				// 已有人订着的 symbol 不用再向服务端要，直接回放缓存；
				// 全新的 symbol 才发 subscribe
				var fresh []string
				var covered []string
				for _, s := range cmd.symbols {
					if symbolCovered(arena, cmd.feed, s) {
						covered = append(covered, s)
					} else {
						fresh = append(fresh, s)
					}
				}
				arena[sub.id] = sub
				c.sendControl(cur, "subscribe", cmd.feed, fresh)
				wsmetrics.SubOpsTotal.WithLabelValues("subscribe").Inc()
				for _, s := range covered {
					if v, ok := cache[cacheKey{cmd.feed, s}]; ok {
						callHandler(c.log, sub, v)
					}
				}
				cmd.reply <- &Subscription{id: sub.id, c: c}

			case cmdUnsubscribe:
				if sub, ok := arena[cmd.id]; ok {
					delete(arena, cmd.id)
					if released := releasedSymbols(arena, sub); len(released) > 0 {
						c.sendControl(cur, "unsubscribe", sub.feed, released)
					}
					wsmetrics.SubOpsTotal.WithLabelValues("unsubscribe").Inc()
				}
				cmd.reply <- struct{}{}
			}

		case raw := <-c.events:
			switch ev := raw.(type) {
			case evFrame:
				if ev.conn != cur {
					continue // stale reader
				}
				c.dispatch(ev.raw, arena, cache)
			case evReadErr:
				if ev.conn != cur {
					continue
				}
				c.log.Warn("websocket read failed", zap.Error(ev.err))
				cur.Close()
				cur = c.reconnect(arena)
				if cur == nil {
					return
				}
			}
		}
	}
}

// reconnect dials until it succeeds or the attempt budget runs out. On
// success the subscribe frames are replayed BEFORE the new reader starts,
// so no frame can arrive ahead of the resubscription.
func (c *Client) reconnect(arena map[int]*subscription) *websocket.Conn {
	if !c.opts.EnableReconnect {
		c.setReason(CloseConnectionError)
		return nil
	}
	delay := c.opts.ReconnectDelay
	for attempt := 1; attempt <= c.opts.ReconnectAttempts; attempt++ {
		select {
		case <-c.closing:
			c.setReason(CloseNormal)
			return nil
		case <-time.After(delay):
		}
		delay *= 2
		if delay > c.opts.MaxReconnectDelay {
			delay = c.opts.MaxReconnectDelay
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		wsURL, err := c.fetchWSURL(ctx)
		var conn *websocket.Conn
		if err == nil {
			conn, _, err = websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		}
		cancel()
		if err != nil {
			c.log.Warn("reconnect attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		wsmetrics.ReconnectsTotal.Inc()
		wsmetrics.OnOpen()
		c.log.Info("websocket reconnected", zap.Int("attempt", attempt))
		for _, feed := range feedsOf(arena) {
			c.sendControl(conn, "subscribe", feed, symbolsOf(arena, feed))
		}
		safe.Go(c.log, func() { c.readLoop(conn) })
		return conn
	}
	c.log.Error("reconnect attempts exhausted",
		zap.Int("attempts", c.opts.ReconnectAttempts))
	c.setReason(CloseReconnectExceeded)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case c.events <- evReadErr{conn: conn, err: err}:
			case <-c.done:
			}
			return
		}
		select {
		case c.events <- evFrame{conn: conn, raw: raw}:
		case <-c.done:
			return
		}
	}
}

type controlMessage struct {
	Type    string   `json:"type"`
	Feed    Feed     `json:"feed"`
	Symbols []string `json:"symbols"`
}

func (c *Client) sendControl(conn *websocket.Conn, typ string, feed Feed, symbols []string) {
	if len(symbols) == 0 {
		return
	}
	if conn == nil {
		// 没有活动连接时丢掉，重连后的整表重放会补上
		wsmetrics.DroppedSendTotal.WithLabelValues("not_connected").Inc()
		c.log.Warn("control send dropped, not connected",
			zap.String("type", typ), zap.String("feed", string(feed)))
		return
	}
	if err := conn.WriteJSON(controlMessage{Type: typ, Feed: feed, Symbols: symbols}); err != nil {
		wsmetrics.DroppedSendTotal.WithLabelValues("write_error").Inc()
		c.log.Warn("control send failed",
			zap.String("type", typ), zap.String("feed", string(feed)), zap.Error(err))
		return
	}
	wsmetrics.MsgsOutTotal.Inc()
}

func (c *Client) closeConn(conn *websocket.Conn) {
	if conn == nil {
		return
	}
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		c.log.Debug("close frame send failed", zap.Error(err))
	}
	conn.Close()
}

// symbolCovered reports whether any subscription in arena already carries
// (feed, symbol).
func symbolCovered(arena map[int]*subscription, feed Feed, symbol string) bool {
	for _, sub := range arena {
		if sub.feed == feed && sub.symbols[symbol] {
			return true
		}
	}
	return false
}

// releasedSymbols returns the symbols of sub no surviving subscription on
// the same feed still wants.
func releasedSymbols(arena map[int]*subscription, sub *subscription) []string {
	out := make([]string, 0, len(sub.symbols))
	for s := range sub.symbols {
		needed := false
		for _, other := range arena {
			if other.feed == sub.feed && other.symbols[s] {
				needed = true
				break
			}
		}
		if !needed {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func feedsOf(arena map[int]*subscription) []Feed {
	seen := make(map[Feed]bool)
	var out []Feed
	for _, sub := range arena {
		if !seen[sub.feed] {
			seen[sub.feed] = true
			out = append(out, sub.feed)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func symbolsOf(arena map[int]*subscription, feed Feed) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sub := range arena {
		if sub.feed != feed {
			continue
		}
		for s := range sub.symbols {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
