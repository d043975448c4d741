package adposting

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/adposting/internal/metrics"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

var errNoLinks = errors.New("index document has no links")

// Index fetches the API root document. Pass the result to WithIndex to make a
// client follow the discovered links.
func (c *Client) Index(ctx context.Context) (*domain.Index, error) {
	ctx, span := c.tracer.Start(ctx, "adposting.index", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	idx, err := c.index(ctx)

	metrics.APIRequestDuration.WithLabelValues("index").Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues("index", outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return idx, nil
}

func (c *Client) index(ctx context.Context) (*domain.Index, error) {
	resp, err := c.send(ctx, request{
		op:     "index",
		method: http.MethodGet,
		target: "/",
		accept: halJSON + ", " + c.media.AdvertisementError,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Non-success statuses share the advertisement error taxonomy.
		_, err := c.mapper.Map(*resp)
		return nil, err
	}

	base := RequestError{StatusCode: resp.StatusCode, RequestID: resp.Header.Get(HeaderRequestID)}
	contentType := resp.Header.Get("Content-Type")

	var idx domain.Index
	if err := decode(resp.Body, &idx); err != nil {
		return nil, &ParseError{RequestError: base, ContentType: contentType, Err: err}
	}
	if len(idx.Links) == 0 {
		return nil, &ParseError{RequestError: base, ContentType: contentType, Err: errNoLinks}
	}
	return &idx, nil
}
