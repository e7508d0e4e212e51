// Package rest implements the gateway ports against the commerce gateway's
// JSON REST API.
package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// Doer executes one gateway round trip. *httpclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req httpclient.Request, out any) error
}

// Client adapts the gateway REST API to the gateway ports.
type Client struct {
	http   Doer
	logger *slog.Logger
}

var (
	_ gateway.CartGateway     = (*Client)(nil)
	_ gateway.WishlistGateway = (*Client)(nil)
	_ gateway.CatalogGateway  = (*Client)(nil)
	_ gateway.ReviewGateway   = (*Client)(nil)
	_ gateway.AuthGateway     = (*Client)(nil)
	_ gateway.UserGateway     = (*Client)(nil)
	_ gateway.AddressGateway  = (*Client)(nil)
	_ gateway.OrderGateway    = (*Client)(nil)
)

// New creates a gateway adapter on top of doer.
func New(doer Doer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: doer, logger: logger}
}

func (c *Client) get(ctx context.Context, path, route, token string, query url.Values, out any) error {
	return c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: path, Route: route, Token: token, Query: query}, out)
}

func (c *Client) post(ctx context.Context, path, route, token string, body, out any) error {
	return c.http.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: path, Route: route, Token: token, Body: body}, out)
}

func (c *Client) put(ctx context.Context, path, route, token string, body, out any) error {
	return c.http.Do(ctx, httpclient.Request{Method: http.MethodPut, Path: path, Route: route, Token: token, Body: body}, out)
}

func (c *Client) delete(ctx context.Context, path, route, token string, out any) error {
	return c.http.Do(ctx, httpclient.Request{Method: http.MethodDelete, Path: path, Route: route, Token: token}, out)
}

// seg escapes one path segment.
func seg(s string) string {
	return url.PathEscape(s)
}
