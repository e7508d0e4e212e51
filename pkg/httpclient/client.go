package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const tracerName = "github.com/utafrali/storefront/pkg/httpclient"

// maxResponseBytes caps how much of a gateway response body is decoded.
const maxResponseBytes = 10 << 20

// DefaultTokenHeader is the header the commerce gateway reads the auth token from.
const DefaultTokenHeader = "token"

// Config holds HTTP client configuration
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxConnsPerHost int
	TokenHeader     string
	UserAgent       string
}

// DefaultConfig returns sensible defaults for the gateway client
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:         baseURL,
		Timeout:         15 * time.Second,
		MaxConnsPerHost: 100,
		TokenHeader:     DefaultTokenHeader,
		UserAgent:       "storefront/1.0",
	}
}

// Request describes a single call to the gateway.
type Request struct {
	Method string
	// Path is appended to the base URL, e.g. "/cart/6428ead5dc1175abc65ca0ad".
	Path string
	// Route is the low-cardinality form of Path used for metrics and span names,
	// e.g. "/cart/{productId}". Defaults to Path.
	Route string
	Query url.Values
	Body  any
	// Token is sent in the token header when non-empty.
	Token string
}

// Client issues JSON requests to the commerce gateway. It never retries and
// never caches: every call is exactly one round trip.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New creates a new gateway client with connection pooling
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.TokenHeader == "" {
		cfg.TokenHeader = DefaultTokenHeader
	}
	if cfg.MaxConnsPerHost <= 0 {
		cfg.MaxConnsPerHost = 100
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// TokenHeader returns the header name used to carry the auth token.
func (c *Client) TokenHeader() string {
	return c.config.TokenHeader
}

// Do executes req and decodes a 2xx JSON body into out (which may be nil).
//
// Non-2xx responses become gateway errors carrying the gateway's message.
// Requests that receive no response at all become network errors.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	route := req.Route
	if route == "" {
		route = req.Path
	}

	ctx, span := c.tracer.Start(ctx, req.Method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("http.route", route),
			attribute.Bool("gateway.authenticated", req.Token != ""),
		),
	)
	defer span.End()

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observe(req.Method, route, "error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response")
		c.logger.WarnContext(ctx, "gateway request failed",
			slog.String("method", req.Method),
			slog.String("route", route),
			slog.String("error", err.Error()),
		)
		return apperrors.Network(err)
	}
	defer func() { _ = resp.Body.Close() }()

	observe(req.Method, route, strconv.Itoa(resp.StatusCode), time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	c.logger.DebugContext(ctx, "gateway request",
		slog.String("method", req.Method),
		slog.String("route", route),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		if !IsClientError(resp.StatusCode) {
			c.logger.WarnContext(ctx, "gateway server error",
				slog.String("method", req.Method),
				slog.String("route", route),
				slog.Int("status", resp.StatusCode),
			)
		}
		return ParseResponseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Network(fmt.Errorf("read gateway response: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode gateway response for %s %s: %w", req.Method, route, err)
	}
	return nil
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path, route, token string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Route: route, Query: query, Token: token}, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path, route, token string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Route: route, Body: body, Token: token}, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path, route, token string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Route: route, Body: body, Token: token}, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path, route, token string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Route: route, Token: token}, out)
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.Method, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if req.Token != "" {
		httpReq.Header.Set(c.config.TokenHeader, req.Token)
	}
	return httpReq, nil
}
