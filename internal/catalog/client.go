package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rocketshoes/cart-service-go/internal/middleware"
)

// Product holds the display attributes served by the catalog API.
type Product struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the availability snapshot for a single product. It is
// read-only: the cart never owns or mutates it.
type Stock struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// ErrProductUnknown is returned when the catalog has no record of the
// requested product id.
var ErrProductUnknown = errors.New("product unknown to catalog")

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid catalog base url %q: %v", baseURL, err))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}
}

// Product fetches the display attributes for a product id.
func (c *Client) Product(ctx context.Context, productID string) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Stock fetches the current availability for a product id.
func (c *Client) Stock(ctx context.Context, productID string) (Stock, error) {
	var s Stock
	if err := c.getJSON(ctx, "/stock/"+url.PathEscape(productID), &s); err != nil {
		return Stock{}, err
	}
	return s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	// Ensure correlation id propagated downstream
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrProductUnknown
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("catalog: unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return nil
}
