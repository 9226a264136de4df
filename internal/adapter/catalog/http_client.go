package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rl1809/storefront-cart/internal/core/domain"
	"github.com/rl1809/storefront-cart/internal/requestid"
)

var ErrNotFound = errors.New("catalog record not found")

// HTTPClient reads products and stock from the storefront catalog API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{baseURL: u, httpClient: httpClient}, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	var p domain.Product
	if err := c.getJSON(ctx, &p, "products", strconv.Itoa(productID)); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (c *HTTPClient) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	var s domain.Stock
	if err := c.getJSON(ctx, &s, "stock", strconv.Itoa(productID)); err != nil {
		return domain.Stock{}, err
	}
	return s, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, out any, elem ...string) error {
	endpoint := c.baseURL.JoinPath(elem...).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.From(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("get %s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}

	return nil
}
