package adposting

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// RequestLog keeps a rendered copy of every exchange made through a
// LoggingTransport, grouped into blocks. Safe for concurrent use.
type RequestLog struct {
	mu     sync.Mutex
	blocks [][]string
}

// NewRequestLog returns an empty log with one open block.
func NewRequestLog() *RequestLog {
	return &RequestLog{blocks: [][]string{nil}}
}

// Append adds an entry to the current block.
func (l *RequestLog) Append(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := len(l.blocks) - 1
	l.blocks[i] = append(l.blocks[i], entry)
}

// BeginBlock starts a new block. Later entries go into it.
func (l *RequestLog) BeginBlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blocks = append(l.blocks, nil)
}

// Block returns the entries of the current block.
func (l *RequestLog) Block() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.blocks[len(l.blocks)-1])
}

// Last returns the most recent entry, or "" when nothing was logged.
func (l *RequestLog) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.blocks) - 1; i >= 0; i-- {
		if b := l.blocks[i]; len(b) > 0 {
			return b[len(b)-1]
		}
	}
	return ""
}

// String renders every block, separated by blank lines.
func (l *RequestLog) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sb strings.Builder
	for _, b := range l.blocks {
		for _, entry := range b {
			sb.WriteString(entry)
			sb.WriteString("\n")
		}
		if len(b) > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// LoggingTransport is an http.RoundTripper that logs each request and response
// with slog and records them in a RequestLog.
type LoggingTransport struct {
	next                http.RoundTripper
	logger              *slog.Logger
	log                 *RequestLog
	includeRequestBody  bool
	includeResponseBody bool
}

// LoggingOption configures a LoggingTransport.
type LoggingOption func(*LoggingTransport)

// WithRequestLog records exchanges in l.
func WithRequestLog(l *RequestLog) LoggingOption {
	return func(t *LoggingTransport) {
		t.log = l
	}
}

// WithRequestBody controls whether request bodies are logged. Default true.
func WithRequestBody(include bool) LoggingOption {
	return func(t *LoggingTransport) {
		t.includeRequestBody = include
	}
}

// WithResponseBody controls whether response bodies are logged. Default false.
func WithResponseBody(include bool) LoggingOption {
	return func(t *LoggingTransport) {
		t.includeResponseBody = include
	}
}

// NewLoggingTransport wraps next. A nil next uses http.DefaultTransport.
func NewLoggingTransport(next http.RoundTripper, logger *slog.Logger, opts ...LoggingOption) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &LoggingTransport{
		next:               next,
		logger:             logger,
		includeRequestBody: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoundTrip implements http.RoundTripper. Each exchange becomes one
// RequestLog entry, written even when the transport fails.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var entry strings.Builder
	defer t.record(&entry)

	var reqBody []byte
	if t.includeRequestBody && req.Body != nil && req.Body != http.NoBody {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body for log: %w", err)
		}
		reqBody = b
		req.Body = io.NopCloser(bytes.NewReader(b))
	}
	entry.WriteString("Request:\n")
	entry.WriteString(renderRequest(req, reqBody))

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(&entry, "\n\nError:\n%v", err)
		t.logger.DebugContext(req.Context(), "api request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	var respBody []byte
	if t.includeResponseBody && resp.Body != nil {
		b, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response body for log: %w", err)
		}
		respBody = b
		resp.Body = io.NopCloser(bytes.NewReader(b))
	}
	entry.WriteString("\n\nResponse:\n")
	entry.WriteString(renderResponse(resp, respBody))

	t.logger.DebugContext(req.Context(), "api request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"request_id", resp.Header.Get(HeaderRequestID),
		"duration", elapsed,
	)

	return resp, nil
}

func (t *LoggingTransport) record(entry *strings.Builder) {
	if t.log != nil {
		t.log.Append(entry.String())
	}
}

func renderRequest(req *http.Request, body []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", req.Method, req.URL.String())
	writeHeaders(&sb, req.Header)
	if len(body) > 0 {
		sb.WriteString("\n\n")
		sb.Write(body)
	}
	return sb.String()
}

func renderResponse(resp *http.Response, body []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	writeHeaders(&sb, resp.Header)
	if len(body) > 0 {
		sb.WriteString("\n\n")
		sb.Write(body)
	}
	return sb.String()
}

func writeHeaders(sb *strings.Builder, h http.Header) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := strings.Join(h[k], ", ")
		if strings.EqualFold(k, "Authorization") {
			v = redact(v)
		}
		fmt.Fprintf(sb, "\n%s: %s", k, v)
	}
}

func redact(v string) string {
	if scheme, _, ok := strings.Cut(v, " "); ok {
		return scheme + " [redacted]"
	}
	return "[redacted]"
}

// RequestIDRecorder is a RoundTripper that remembers the X-Request-Id of the
// last response it saw. Successful responses are mapped to resources, which
// do not carry the header, so callers that journal the id read it here.
type RequestIDRecorder struct {
	next http.RoundTripper

	mu   sync.Mutex
	last string
}

// NewRequestIDRecorder wraps next. A nil next uses http.DefaultTransport.
func NewRequestIDRecorder(next http.RoundTripper) *RequestIDRecorder {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RequestIDRecorder{next: next}
}

// RoundTrip implements http.RoundTripper.
func (r *RequestIDRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err == nil {
		r.mu.Lock()
		r.last = resp.Header.Get(HeaderRequestID)
		r.mu.Unlock()
	}
	return resp, err
}

// Last returns the request id of the most recent response, or "" when it
// had none.
func (r *RequestIDRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
