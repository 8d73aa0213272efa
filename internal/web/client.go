package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/realty-marketplace/internal/handler"
	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/pkg/response"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("resource not found")

// UpstreamError describes a failed or unreadable API call. Pages render
// it as 502.
type UpstreamError struct {
	Path   string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listing api %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("listing api %s: unexpected status %d", e.Path, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Listing is one page of items with metadata recomputed for rendering.
type Listing[T any] struct {
	Items []T
	Meta  pagination.PageMeta
}

// Client reads the listing API over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for baseURL (scheme://host[:port]); requests
// are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	target := c.base + handler.APIV1Prefix + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &UpstreamError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return &UpstreamError{Path: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &UpstreamError{Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// list fetches a page and derives PageMeta from the envelope's meta block
// so the pager never trusts counts it did not compute.
func list[T any](ctx context.Context, c *Client, path string, q url.Values, page pagination.PageRequest) (Listing[T], error) {
	page = page.Normalize()
	if q == nil {
		q = url.Values{}
	}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("limit", strconv.Itoa(page.PerPage))

	var env response.ListPayload[T]
	if err := c.getJSON(ctx, path, q, &env); err != nil {
		return Listing[T]{}, err
	}
	req := pagination.PageRequest{Page: env.Meta.Page, PerPage: env.Meta.Limit}
	if req.Page < 1 || req.PerPage < 1 {
		req = page
	}
	return Listing[T]{Items: env.Data, Meta: pagination.Compute(req, env.Meta.Total)}, nil
}

// PropertyQuery holds the public filters forwarded to the API.
type PropertyQuery struct {
	City     string
	Type     string
	Deal     string
	MinPrice string
	MaxPrice string
}

func (q PropertyQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(k, val)
		}
	}
	set("city", q.City)
	set("type", q.Type)
	set("deal", q.Deal)
	set("min_price", q.MinPrice)
	set("max_price", q.MaxPrice)
	return v
}

// PublishedProperties lists the properties visitors may see.
func (c *Client) PublishedProperties(ctx context.Context, q PropertyQuery, page pagination.PageRequest) (Listing[model.Property], error) {
	v := q.values()
	v.Set("status", string(model.PropertyPublished))
	return list[model.Property](ctx, c, "/properties", v, page)
}

// Properties lists every property regardless of status, for the dashboard.
func (c *Client) Properties(ctx context.Context, page pagination.PageRequest) (Listing[model.Property], error) {
	return list[model.Property](ctx, c, "/properties", nil, page)
}

func (c *Client) Property(ctx context.Context, id int64) (model.Property, error) {
	var p model.Property
	err := c.getJSON(ctx, "/properties/"+strconv.FormatInt(id, 10), nil, &p)
	return p, err
}

// ActiveBrokers lists the public broker directory.
func (c *Client) ActiveBrokers(ctx context.Context, page pagination.PageRequest) (Listing[model.Broker], error) {
	return list[model.Broker](ctx, c, "/brokers", url.Values{"status": {string(model.BrokerActive)}}, page)
}

// Brokers lists brokers of any status.
func (c *Client) Brokers(ctx context.Context, page pagination.PageRequest) (Listing[model.Broker], error) {
	return list[model.Broker](ctx, c, "/brokers", nil, page)
}

// PublishedNews lists articles visible on the site.
func (c *Client) PublishedNews(ctx context.Context, page pagination.PageRequest) (Listing[model.News], error) {
	return list[model.News](ctx, c, "/news", url.Values{"status": {string(model.NewsPublished)}}, page)
}

// News lists articles of any status.
func (c *Client) News(ctx context.Context, page pagination.PageRequest) (Listing[model.News], error) {
	return list[model.News](ctx, c, "/news", nil, page)
}

func (c *Client) Article(ctx context.Context, slug string) (model.News, error) {
	var n model.News
	err := c.getJSON(ctx, "/news/"+url.PathEscape(slug), nil, &n)
	return n, err
}
