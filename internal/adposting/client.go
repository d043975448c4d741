// Package adposting provides a typed client for the Ad Posting API. Every
// response is mapped onto an advertisement resource or one typed APIError.
package adposting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/adposting/internal/metrics"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

const (
	defaultUserAgent = "adposting-go/1"
	tracerName       = "github.com/donaldgifford/adposting/internal/adposting"
)

// TokenProvider supplies bearer access tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// AdvertisementClient defines the advertisement operations of the API.
type AdvertisementClient interface {
	GetAdvertisement(ctx context.Context, uri string) (*domain.AdvertisementResource, error)
	CreateAdvertisement(ctx context.Context, ad *domain.Advertisement) (*domain.AdvertisementResource, error)
	UpdateAdvertisement(ctx context.Context, uri string, ad *domain.Advertisement) (*domain.AdvertisementResource, error)
	ExpireAdvertisement(ctx context.Context, uri string) (*domain.AdvertisementResource, error)
}

// Client implements AdvertisementClient over HTTP. It holds no mutable state
// after construction and is safe for concurrent use when its TokenProvider
// and http.Client are.
type Client struct {
	baseURL     *url.URL
	tokens      TokenProvider
	httpClient  *http.Client
	media       MediaTypes
	mapper      Mapper
	userAgent   string
	rateLimiter *RateLimiter
	logger      *slog.Logger
	links       map[string]domain.Link
	tracer      trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithVendor sets the vendor tree of the media types.
func WithVendor(vendor string) Option {
	return func(c *Client) {
		c.media = NewMediaTypes(vendor)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimiter gates every request through r before it is sent.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithIndex makes the client follow the links of a previously fetched index
// document instead of the default paths.
func WithIndex(idx *domain.Index) Option {
	return func(c *Client) {
		if idx == nil {
			return
		}
		for rel, l := range idx.Links {
			c.links[rel] = l
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, tokens TokenProvider, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q is not absolute", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("token provider is required")
	}

	c := &Client{
		baseURL: u,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		media:     NewMediaTypes(DefaultVendor),
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
		links: map[string]domain.Link{
			domain.RelAdvertisements: {Href: "/advertisement"},
			domain.RelAdvertisement:  {Href: "/advertisement/{advertisementId}", Templated: true},
		},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mapper = NewMapper(c.media)
	return c, nil
}

// MediaTypes returns the media types the client sends and accepts.
func (c *Client) MediaTypes() MediaTypes {
	return c.media
}

type request struct {
	op          string
	method      string
	target      string
	accept      string
	contentType string
	body        []byte
}

// send performs one round trip. It does not interpret the status code.
func (c *Client) send(ctx context.Context, r request) (*Response, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u, err := c.baseURL.Parse(r.target)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", r.target, err)
	}

	var body io.Reader = http.NoBody
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", r.accept)
	httpReq.Header.Set("User-Agent", c.userAgent)
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing %s request: %w", r.op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.String("adposting.request_id", resp.Header.Get(HeaderRequestID)),
	)

	return &Response{
		Method:     r.method,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// do sends an advertisement request and maps the response.
func (c *Client) do(ctx context.Context, r request) (*domain.AdvertisementResource, error) {
	ctx, span := c.tracer.Start(ctx, "adposting."+r.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", r.method)),
	)
	defer span.End()

	start := time.Now()
	r.accept = c.media.Accept()

	var res *domain.AdvertisementResource
	raw, err := c.send(ctx, r)
	if err == nil {
		res, err = c.mapper.Map(*raw)
	}

	metrics.APIRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(r.op, outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("advertisement request failed",
			"op", r.op,
			"kind", KindOf(err).String(),
			"request_id", RequestIDOf(err),
			"error", err,
		)
		return nil, err
	}
	return res, nil
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if k := KindOf(err); k != KindUnknown {
		return k.String()
	}
	return "transport"
}
