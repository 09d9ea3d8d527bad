package laplace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClientSendsBearerAuth(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Stocks.GetAll(context.Background(), RegionTR, 0, PageSize10)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token","code":"UNAUTHORIZED"}`))
	}))
	defer srv.Close()

	c, err := New("bad-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Stocks.GetStats(context.Background(), []string{"TUPRS"}, RegionTR)
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "invalid token", ae.Message)
	assert.True(t, ae.IsClientError())
}

func TestClientKeepsRawBodyOnUnstructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Search.Search(context.Background(), "tup", nil, RegionTR, LocaleTR)
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, "upstream exploded", ae.Message)
	assert.False(t, ae.IsClientError())
}

func TestClientBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such symbol"}`))
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	// 连续 4xx 不应触发熔断，每次都要打到服务端
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := c.Stocks.GetDividends(ctx, "NOPE", RegionTR)
		ae, ok := AsAPIError(err)
		require.True(t, ok, "request %d should reach the server, got %v", i, err)
		assert.Equal(t, http.StatusNotFound, ae.Status)
	}
}
