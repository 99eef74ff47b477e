package catalog

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/sales-insights/internal/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 100, 2*time.Second, logger.New())
}

func TestFetchAllProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"id":101,"title":"Widget Pro","category":"tools","brand":"Acme","price":99.5,"rating":4.5},
			{"id":102,"title":"Gadget","category":"electronics","brand":"Globex","price":45.0,"rating":3.9}
		]}`))
	}))
	defer server.Close()

	products := newTestClient(server.URL).FetchAllProducts()

	require.Len(t, products, 2)
	assert.Equal(t, Product{ID: 101, Title: "Widget Pro", Category: "tools", Brand: "Acme", Price: 99.5, Rating: 4.5}, products[0])
	assert.Equal(t, 102, products[1].ID)
}

func TestFetchAllProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	products := newTestClient(server.URL).FetchAllProducts()
	assert.Empty(t, products)
}

func TestFetchAllProducts_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": not json`))
	}))
	defer server.Close()

	products := newTestClient(server.URL).FetchAllProducts()
	assert.Empty(t, products)
}

func TestFetchAllProducts_NetworkError(t *testing.T) {
	// Point the client at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	products := newTestClient(server.URL).FetchAllProducts()
	assert.Empty(t, products)
}

func TestFetchAllProducts_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 50*time.Millisecond, logger.New())
	products := client.FetchAllProducts()
	assert.Empty(t, products)
}

func TestFetchAllProducts_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"products":[{"id":1,"title":"One"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	first := client.FetchAllProducts()
	second := client.FetchAllProducts()

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "second fetch should be served from cache")
}

func TestFetchAllProducts_FailuresNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"products":[{"id":1,"title":"One"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	assert.Empty(t, client.FetchAllProducts())
	assert.Len(t, client.FetchAllProducts(), 1, "a failed fetch must not poison the cache")
}

func TestNewMapping(t *testing.T) {
	products := []Product{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
		{Title: "No ID"},
	}

	mapping := NewMapping(products)

	require.Len(t, mapping, 2)
	assert.Equal(t, "One", mapping[1].Title)
	assert.Equal(t, "Two", mapping[2].Title)
	_, ok := mapping[0]
	assert.False(t, ok, "zero-id products must be skipped")
}
