package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront-cart/internal/requestid"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Echo-Request-ID", r.Header.Get(requestid.Header))
		w.Write([]byte(`{"id":1,"title":"Tênis de Caminhada Leve Confortável","price":179.9,"image":"https://cdn.example/1.jpg"}`))
	})
	mux.HandleFunc("/api/stock/1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(requestid.Header); got != "req-42" {
			http.Error(w, "missing request id", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"id":1,"amount":3}`))
	})
	mux.HandleFunc("/api/stock/2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/stock/3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetProduct(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	p, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, 179.9, p.Price)
	assert.Equal(t, 0, p.Amount)
}

func TestGetStock_ForwardsRequestID(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	ctx := requestid.With(context.Background(), "req-42")
	s, err := client.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Amount)
}

func TestGetStock_NotFound(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	_, err = client.GetStock(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStock_ServerError(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	_, err = client.GetStock(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestGetStock_MalformedBody(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	_, err = client.GetStock(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestGetStock_CancelledContext(t *testing.T) {
	srv := newCatalogServer(t)
	client, err := NewHTTPClient(srv.URL+"/api", srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetStock(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:3333", nil)
	assert.Error(t, err)

	_, err = NewHTTPClient("/api", nil)
	assert.Error(t, err)
}
