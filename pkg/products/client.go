// Package products is a typed client for the catalogue's /products resource.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-hq/catalog-client/internal/domain"
	"github.com/storefront-hq/catalog-client/pkg/httpclient"
	"github.com/storefront-hq/catalog-client/pkg/jsonrequest"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	maxListLimit = 100
)

// ListOptions maps onto the list endpoint's query parameters. Zero values are not sent.
type ListOptions struct {
	Name        string
	SortByPrice bool
	Order       string
	Limit       int
	Offset      int
}

// Client talks to a products resource rooted at baseURL.
type Client struct {
	baseURL string
	http    httpclient.Client
	now     func() time.Time
}

// New builds a Client. A nil http client falls back to the resty transport.
func New(baseURL string, client httpclient.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("products base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse products base url: %w", err)
	}
	if client == nil {
		client = httpclient.NewRestyClient()
	}
	return &Client{baseURL: baseURL, http: client, now: time.Now}, nil
}

// List returns a page of products.
func (c *Client) List(ctx context.Context, opts ListOptions) (*domain.ProductPage, error) {
	query, err := opts.values()
	if err != nil {
		return nil, err
	}
	target := c.baseURL
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var page domain.ProductPage
	if err := jsonrequest.RequestInto(ctx, c.http, target, http.MethodGet, nil, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &page, nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	target, err := c.itemURL(id)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := jsonrequest.RequestInto(ctx, c.http, target, http.MethodGet, nil, &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// Create validates p locally and posts it. Missing id, created_at and currency are filled in.
func (c *Client) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = c.now().UTC()
	}
	if p.Currency == "" {
		p.Currency = domain.CurrencyPKR
	}
	if err := domain.ValidateProduct(p); err != nil {
		return nil, err
	}

	var created domain.Product
	if err := jsonrequest.RequestInto(ctx, c.http, c.baseURL, http.MethodPost, p, &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

// Update applies a partial update and returns the stored product.
func (c *Client) Update(ctx context.Context, id string, patch domain.ProductUpdate) (*domain.Product, error) {
	target, err := c.itemURL(id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, errors.New("product update has no fields")
	}
	var updated domain.Product
	if err := jsonrequest.RequestInto(ctx, c.http, target, http.MethodPut, patch, &updated); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	target, err := c.itemURL(id)
	if err != nil {
		return nil, err
	}
	var res domain.DeleteResult
	if err := jsonrequest.RequestInto(ctx, c.http, target, http.MethodDelete, nil, &res); err != nil {
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}
	return &res, nil
}

func (c *Client) itemURL(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("invalid product id %q: %w", id, err)
	}
	return c.baseURL + "/" + parsed.String(), nil
}

func (o ListOptions) values() (url.Values, error) {
	q := url.Values{}
	if name := strings.TrimSpace(o.Name); name != "" {
		q.Set("name", name)
	}
	if o.SortByPrice {
		q.Set("sort_by_price", "true")
	}
	if order := strings.ToLower(strings.TrimSpace(o.Order)); order != "" {
		if order != OrderAsc && order != OrderDesc {
			return nil, fmt.Errorf("invalid order %q (expected asc or desc)", o.Order)
		}
		q.Set("order", order)
	}
	if o.Limit != 0 {
		if o.Limit < 1 || o.Limit > maxListLimit {
			return nil, fmt.Errorf("invalid limit %d (must be 1-%d)", o.Limit, maxListLimit)
		}
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset < 0 {
		return nil, fmt.Errorf("invalid offset %d (must be >= 0)", o.Offset)
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q, nil
}

// Detail extracts the "detail" field FastAPI puts in error bodies.
// Structured details are returned as compact JSON.
func Detail(err error) string {
	rf, ok := jsonrequest.IsRequestFailed(err)
	if !ok {
		return ""
	}
	body, ok := rf.Payload.(map[string]any)
	if !ok {
		return ""
	}
	switch d := body["detail"].(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprint(d)
		}
		return string(raw)
	}
}
