package push

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfree/laplace-go/laplace"
)

// wsHarness fakes the control endpoint and the websocket server behind it.
type wsHarness struct {
	srv        *httptest.Server
	upgrader   websocket.Upgrader
	conns       chan *websocket.Conn
	inbound     chan controlMessage
	handshakes  chan []byte
	userUpdates chan []byte
	refuseDial  atomic.Bool
}

func newWSHarness(t *testing.T) *wsHarness {
	t.Helper()
	h := &wsHarness{
		conns:       make(chan *websocket.Conn, 8),
		inbound:     make(chan controlMessage, 32),
		handshakes:  make(chan []byte, 8),
		userUpdates: make(chan []byte, 8),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/ws/url", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		h.handshakes <- body
		if h.refuseDial.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		wsURL := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/ws"
		fmt.Fprintf(w, `{"url":%q}`, wsURL)
	})
	mux.HandleFunc("/v1/ws/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		h.userUpdates <- body
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.conns <- conn
		for {
			var msg controlMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			h.inbound <- msg
		}
	})
	h.srv = httptest.NewServer(mux)
	t.Cleanup(h.srv.Close)
	return h
}

func (h *wsHarness) waitConn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case c := <-h.conns:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for websocket connection")
		return nil
	}
}

func (h *wsHarness) waitControl(t *testing.T) controlMessage {
	t.Helper()
	select {
	case m := <-h.inbound:
		return m
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for control message")
		return controlMessage{}
	}
}

func (h *wsHarness) push(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("push frame: %v", err)
	}
}

func newTestClient(t *testing.T, h *wsHarness, opts Options) *Client {
	t.Helper()
	base, err := laplace.New("test-key", laplace.WithBaseURL(h.srv.URL))
	require.NoError(t, err)
	c := NewClient(base, "user-1", []Feed{FeedLivePriceTR, FeedDepthTR}, opts)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSubscribeBeforeConnect(t *testing.T) {
	base, err := laplace.New("test-key")
	require.NoError(t, err)

	c := NewClient(base, "user-1", []Feed{FeedLivePriceTR}, DefaultOptions())
	_, err = c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(laplace.LiveData) {})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeNotInitialized, perr.Code)
}

func TestConnectValidatesUserAndFeeds(t *testing.T) {
	base, err := laplace.New("test-key")
	require.NoError(t, err)

	var perr *Error
	c := NewClient(base, "", []Feed{FeedLivePriceTR}, DefaultOptions())
	require.ErrorAs(t, c.Connect(context.Background()), &perr)
	assert.Equal(t, ErrCodeNotInitialized, perr.Code)

	c = NewClient(base, "user-1", nil, DefaultOptions())
	require.ErrorAs(t, c.Connect(context.Background()), &perr)
	assert.Equal(t, ErrCodeNotInitialized, perr.Code)
}

func TestSubscribeRejectsDisabledFeed(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	_, err := c.Subscribe(FeedLivePriceUS, []string{"AAPL"}, func(laplace.LiveData) {})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeUnknown, perr.Code)
}

func TestDispatchInSubscriptionOrder(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	conn := h.waitConn(t)

	var mu sync.Mutex
	var order []string
	handler := func(tag string) Handler {
		return func(d laplace.LiveData) {
			mu.Lock()
			order = append(order, tag)
			mu.Unlock()
		}
	}
	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, handler("first"))
	require.NoError(t, err)
	h.waitControl(t)
	// 同一个 symbol 的第二个订阅不再发 wire 消息
	_, err = c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, handler("second"))
	require.NoError(t, err)

	h.push(t, conn, `{"type":"heartbeat"}`)
	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":170.5,"c":1.2,"d":1700000000}}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, 3*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDecodedPayloadShape(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	conn := h.waitConn(t)

	got := make(chan laplace.LiveData, 1)
	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(d laplace.LiveData) { got <- d })
	require.NoError(t, err)
	h.waitControl(t)

	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":170.5,"c":1.2,"d":1700000000}}`)

	select {
	case d := <-got:
		tick, ok := d.(laplace.BISTStockLiveData)
		require.True(t, ok, "payload type %T", d)
		assert.Equal(t, "TUPRS", tick.Symbol)
		assert.Equal(t, 170.5, tick.ClosePrice)
		assert.Equal(t, 1.2, tick.DailyPercent)
		assert.Equal(t, int64(1700000000), tick.Date)
	case <-time.After(3 * time.Second):
		t.Fatal("handler never called")
	}
}

func TestLateSubscriberGetsCachedValue(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	conn := h.waitConn(t)

	seen := make(chan laplace.LiveData, 1)
	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(d laplace.LiveData) { seen <- d })
	require.NoError(t, err)
	h.waitControl(t)

	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":99.0,"c":0.5,"d":1700000001}}`)
	select {
	case <-seen:
	case <-time.After(3 * time.Second):
		t.Fatal("first subscriber never saw the frame")
	}

	// 晚到的订阅者在 Subscribe 返回前就要拿到缓存帧
	late := make(chan laplace.LiveData, 1)
	_, err = c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(d laplace.LiveData) { late <- d })
	require.NoError(t, err)

	select {
	case d := <-late:
		tick := d.(laplace.BISTStockLiveData)
		assert.Equal(t, 99.0, tick.ClosePrice)
	default:
		t.Fatal("late subscriber did not get the cached value")
	}
}

func TestUnsubscribeReleasesOnlyUnsharedSymbols(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	sub1, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS", "SASA"}, func(laplace.LiveData) {})
	require.NoError(t, err)
	h.waitControl(t)
	// SASA 已经被 sub1 覆盖，不会再发 wire 消息
	_, err = c.Subscribe(FeedLivePriceTR, []string{"SASA"}, func(laplace.LiveData) {})
	require.NoError(t, err)

	require.NoError(t, sub1.Unsubscribe())

	msg := h.waitControl(t)
	assert.Equal(t, "unsubscribe", msg.Type)
	assert.Equal(t, FeedLivePriceTR, msg.Feed)
	// SASA 还有人在用，不能被释放
	assert.Equal(t, []string{"TUPRS"}, msg.Symbols)
}

func TestConnectSendsHandshakeBody(t *testing.T) {
	h := newWSHarness(t)
	newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	select {
	case body := <-h.handshakes:
		s := string(body)
		assert.Contains(t, s, `"externalUserId":"user-1"`)
		assert.Contains(t, s, `"live_price_tr"`)
		assert.Contains(t, s, `"depth_tr"`)
	case <-time.After(3 * time.Second):
		t.Fatal("handshake request never arrived")
	}
}

func TestNonDataFramesAreNotDispatched(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	conn := h.waitConn(t)

	got := make(chan laplace.LiveData, 4)
	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(d laplace.LiveData) { got <- d })
	require.NoError(t, err)
	h.waitControl(t)

	h.push(t, conn, `{"type":"warning","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":1.0}}`)
	h.push(t, conn, `{"type":"error","message":"quota exceeded"}`)
	h.push(t, conn, `{"feed":"live_price_tr","message":{"symbol":"TUPRS","cl":2.0}}`)
	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":170.5,"c":1.2,"d":1700000000}}`)

	select {
	case d := <-got:
		tick := d.(laplace.BISTStockLiveData)
		assert.Equal(t, 170.5, tick.ClosePrice)
	case <-time.After(3 * time.Second):
		t.Fatal("data frame never dispatched")
	}
	select {
	case d := <-got:
		t.Fatalf("unexpected extra dispatch: %+v", d)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeOnlyRequestsUncoveredSymbols(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(laplace.LiveData) {})
	require.NoError(t, err)
	msg := h.waitControl(t)
	assert.Equal(t, []string{"TUPRS"}, msg.Symbols)

	_, err = c.Subscribe(FeedLivePriceTR, []string{"TUPRS", "SASA"}, func(laplace.LiveData) {})
	require.NoError(t, err)
	msg = h.waitControl(t)
	assert.Equal(t, "subscribe", msg.Type)
	// TUPRS 已经在订了，只要 SASA
	assert.Equal(t, []string{"SASA"}, msg.Symbols)
}

func TestEmptySymbolFrameIsDropped(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	conn := h.waitConn(t)

	got := make(chan laplace.LiveData, 2)
	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(d laplace.LiveData) { got <- d })
	require.NoError(t, err)
	h.waitControl(t)

	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{}}`)
	h.push(t, conn, `{"type":"data","feed":"live_price_tr","message":{"symbol":"TUPRS","cl":170.5,"c":1.2,"d":1700000000}}`)

	select {
	case d := <-got:
		tick := d.(laplace.BISTStockLiveData)
		assert.Equal(t, "TUPRS", tick.Symbol)
	case <-time.After(3 * time.Second):
		t.Fatal("valid frame never dispatched")
	}
	select {
	case d := <-got:
		t.Fatalf("empty frame dispatched: %+v", d)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdateUserDetailsSendsFullProfile(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	err := c.UpdateUserDetails(context.Background(), UserDetails{
		Active:       true,
		FirstName:    "Ada",
		LastName:     "Yilmaz",
		City:         "Istanbul",
		CountryCode:  "TR",
		AccessorType: AccessorTypeUser,
	})
	require.NoError(t, err)

	select {
	case body := <-h.userUpdates:
		s := string(body)
		// 没填 externalUserId 时用客户端自己的
		assert.Contains(t, s, `"externalUserId":"user-1"`)
		assert.Contains(t, s, `"city":"Istanbul"`)
		assert.Contains(t, s, `"countryCode":"TR"`)
		assert.Contains(t, s, `"accessorType":"user"`)
	case <-time.After(3 * time.Second):
		t.Fatal("user update never arrived")
	}
}

func TestCloseIsIdempotentAndNormal(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, DefaultOptions())
	h.waitConn(t)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, c.Closed())
	assert.Equal(t, CloseNormal, c.CloseReason())

	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(laplace.LiveData) {})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodeNotConnected, perr.Code)
}

func TestReconnectResubscribes(t *testing.T) {
	h := newWSHarness(t)
	opts := DefaultOptions()
	opts.ReconnectDelay = 10 * time.Millisecond
	opts.MaxReconnectDelay = 20 * time.Millisecond
	c := newTestClient(t, h, opts)
	conn := h.waitConn(t)

	_, err := c.Subscribe(FeedLivePriceTR, []string{"TUPRS"}, func(laplace.LiveData) {})
	require.NoError(t, err)
	first := h.waitControl(t)
	assert.Equal(t, "subscribe", first.Type)

	// 服务端踢掉连接，客户端要自动重连并重放订阅
	conn.Close()
	h.waitConn(t)
	replay := h.waitControl(t)
	assert.Equal(t, "subscribe", replay.Type)
	assert.Equal(t, FeedLivePriceTR, replay.Feed)
	assert.Equal(t, []string{"TUPRS"}, replay.Symbols)
	assert.False(t, c.Closed())
}

func TestReconnectBudgetExhausted(t *testing.T) {
	h := newWSHarness(t)
	opts := DefaultOptions()
	opts.ReconnectAttempts = 2
	opts.ReconnectDelay = 10 * time.Millisecond
	opts.MaxReconnectDelay = 20 * time.Millisecond
	c := newTestClient(t, h, opts)
	conn := h.waitConn(t)

	h.refuseDial.Store(true)
	conn.Close()

	require.Eventually(t, c.Closed, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, CloseReconnectExceeded, c.CloseReason())
}

func TestReconnectDisabled(t *testing.T) {
	h := newWSHarness(t)
	opts := DefaultOptions()
	opts.EnableReconnect = false
	c := newTestClient(t, h, opts)
	conn := h.waitConn(t)

	conn.Close()
	require.Eventually(t, c.Closed, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, CloseConnectionError, c.CloseReason())
}
