package laplace

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBISTPriceUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"symbol\":\"TUPRS\",\"type\":\"data\",\"data\":{\"s\":\"TUPRS\",\"ch\":1.2,\"p\":170.5,\"d\":1700000000}}\n")
		fl.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	ch, err := c.LivePrice.BISTPrice()
	require.NoError(t, err)
	defer ch.Close()

	results, err := ch.Subscribe(context.Background(), []string{"TUPRS"})
	require.NoError(t, err)

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "TUPRS", r.Data.Symbol)
		assert.Equal(t, 170.5, r.Data.ClosePrice)
		assert.Equal(t, 1.2, r.Data.DailyPercent)
		assert.Equal(t, int64(1700000000), r.Data.Date)
	case <-time.After(3 * time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestBISTPriceEnvelopeFillsSymbolFromWrapper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"symbol\":\"SASA\",\"type\":\"data\",\"data\":{\"ch\":-0.4,\"p\":4.1,\"d\":1700000002}}\n")
		fl.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	ch, err := c.LivePrice.BISTDelayedPrice()
	require.NoError(t, err)
	defer ch.Close()

	results, err := ch.Subscribe(context.Background(), []string{"SASA"})
	require.NoError(t, err)

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "SASA", r.Data.Symbol)
		assert.Equal(t, 4.1, r.Data.ClosePrice)
	case <-time.After(3 * time.Second):
		t.Fatal("no tick delivered")
	}
}
