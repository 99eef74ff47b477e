package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// productsResponse mirrors the shape of the products-listing endpoint payload.
type productsResponse struct {
	Products []Product `json:"products"`
}

// Client fetches products from the catalog API. Responses are cached
// in-process so repeated fetches within one run do not hit the network again.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	cache      *cache.Cache
	log        zerolog.Logger
}

// NewClient creates a catalog client. timeout bounds the single HTTP call.
func NewClient(baseURL string, limit int, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(30*time.Minute, time.Hour),
		log:        log,
	}
}

// FetchAllProducts performs one GET against the products-listing endpoint and
// decodes the result. Every failure mode (network error, non-2xx status,
// malformed payload) is logged and degrades to an empty slice; the pipeline
// then simply runs without enrichment.
func (c *Client) FetchAllProducts() []Product {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	if cached, ok := c.cache.Get(url); ok {
		return cached.([]Product)
	}

	products, err := c.fetch(url)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("Catalog fetch failed, continuing with empty catalog")
		return []Product{}
	}

	c.cache.Set(url, products, cache.DefaultExpiration)
	c.log.Info().Int("count", len(products)).Msg("Fetched products from catalog API")
	return products
}

func (c *Client) fetch(url string) ([]Product, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: GET %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: reading response body: %w", err)
	}

	var payload productsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fetch: decoding response: %w", err)
	}

	return payload.Products, nil
}
