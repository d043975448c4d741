package adposting_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/adposting/internal/adposting"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestLog_Blocks(t *testing.T) {
	t.Parallel()

	l := adposting.NewRequestLog()
	assert.Empty(t, l.Block())
	assert.Empty(t, l.Last())

	l.Append("first")
	l.Append("second")
	assert.Equal(t, []string{"first", "second"}, l.Block())

	l.BeginBlock()
	assert.Empty(t, l.Block())
	assert.Equal(t, "second", l.Last())

	l.Append("third")
	assert.Equal(t, []string{"third"}, l.Block())
	assert.Equal(t, "third", l.Last())
	assert.Equal(t, "first\nsecond\n\nthird\n\n", l.String())
}

func TestRequestLog_ConcurrentAppend(t *testing.T) {
	t.Parallel()

	l := adposting.NewRequestLog()

	const goroutines = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			l.Append("entry")
		}()
	}
	wg.Wait()

	assert.Len(t, l.Block(), goroutines)
}

func TestLoggingTransport_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"jobTitle":"Developer"}`, string(body))

		w.Header().Set(adposting.HeaderRequestID, "PactRequestId")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	log := adposting.NewRequestLog()
	client := &http.Client{
		Transport: adposting.NewLoggingTransport(nil, discardLogger(),
			adposting.WithRequestLog(log),
			adposting.WithResponseBody(true),
		),
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/advertisement", strings.NewReader(`{"jobTitle":"Developer"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The response body is still readable after logging.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(body))

	entry := log.Last()
	assert.True(t, strings.HasPrefix(entry, "Request:\nPOST "+srv.URL+"/advertisement\n"), entry)
	assert.Contains(t, entry, "Accept: application/json\nAuthorization: Bearer [redacted]")
	assert.NotContains(t, entry, "secret-token")
	assert.Contains(t, entry, "\n\n"+`{"jobTitle":"Developer"}`)
	assert.Contains(t, entry, "\n\nResponse:\n201 Created")
	assert.Contains(t, entry, "X-Request-Id: PactRequestId")
	assert.True(t, strings.HasSuffix(entry, `{"id":"1"}`), entry)
}

func TestLoggingTransport_BodyOptions(t *testing.T) {
	t.Parallel()

	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		assert.Equal(t, "payload", string(b))
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("response-body")),
		}, nil
	})

	log := adposting.NewRequestLog()
	transport := adposting.NewLoggingTransport(next, discardLogger(),
		adposting.WithRequestLog(log),
		adposting.WithRequestBody(false),
	)

	req, err := http.NewRequest(http.MethodPut, "http://example.test/advertisement/1", bytes.NewBufferString("payload"))
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	entry := log.Last()
	assert.NotContains(t, entry, "payload")
	assert.NotContains(t, entry, "response-body")
	assert.Contains(t, entry, "Response:\n200 OK")
}

func TestLoggingTransport_Error(t *testing.T) {
	t.Parallel()

	next := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	log := adposting.NewRequestLog()
	transport := adposting.NewLoggingTransport(next, discardLogger(), adposting.WithRequestLog(log))

	req, err := http.NewRequest(http.MethodGet, "http://example.test/", http.NoBody)
	require.NoError(t, err)

	_, err = transport.RoundTrip(req)
	require.Error(t, err)

	assert.Equal(t, "Request:\nGET http://example.test/\n\nError:\nconnection refused", log.Last())
}

func TestRequestIDRecorder(t *testing.T) {
	t.Parallel()

	ids := []string{"req-1", "", "req-3"}
	var n int
	rec := adposting.NewRequestIDRecorder(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/fail" {
			return nil, errors.New("connection refused")
		}
		h := make(http.Header)
		if id := ids[n]; id != "" {
			h.Set(adposting.HeaderRequestID, id)
		}
		n++
		return &http.Response{StatusCode: http.StatusOK, Header: h, Body: http.NoBody}, nil
	}))

	assert.Empty(t, rec.Last())

	roundTrip := func(path string) error {
		req := httptest.NewRequest(http.MethodGet, "http://api.example"+path, http.NoBody)
		resp, err := rec.RoundTrip(req)
		if err == nil {
			_ = resp.Body.Close()
		}
		return err
	}

	require.NoError(t, roundTrip("/"))
	assert.Equal(t, "req-1", rec.Last())

	require.NoError(t, roundTrip("/"))
	assert.Empty(t, rec.Last(), "a response without the header clears the id")

	require.NoError(t, roundTrip("/"))
	require.Error(t, roundTrip("/fail"))
	assert.Equal(t, "req-3", rec.Last(), "transport errors keep the previous id")
}
