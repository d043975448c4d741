package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errorMedia = "application/vnd.seek.advertisement-error+json; version=1; charset=utf-8"

func errorResponder(c echo.Context) error {
	return c.Blob(http.StatusInternalServerError, errorMedia, []byte(`{"message":"Internal server error"}`))
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		handler     echo.HandlerFunc
		respond     PanicResponder
		wantStatus  int
		wantType    string
		wantBody    string
		wantLog     []string
		wantNoLog   bool
		wantPartial string
	}{
		{
			name:   "no panic passes through",
			method: http.MethodGet,
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			respond:    errorResponder,
			wantStatus: http.StatusOK,
			wantBody:   "ok",
			wantNoLog:  true,
		},
		{
			name:   "string panic answers with api error body",
			method: http.MethodGet,
			handler: func(echo.Context) error {
				panic("nil advertisement store")
			},
			respond:    errorResponder,
			wantStatus: http.StatusInternalServerError,
			wantType:   errorMedia,
			wantBody:   `{"message":"Internal server error"}`,
			wantLog:    []string{"handler panicked", "nil advertisement store", "method=GET", "committed=false"},
		},
		{
			name:   "non-string panic without responder",
			method: http.MethodPost,
			handler: func(echo.Context) error {
				panic(42)
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic=42", "method=POST"},
		},
		{
			name:   "panic after commit keeps the partial response",
			method: http.MethodGet,
			handler: func(c echo.Context) error {
				c.Response().WriteHeader(http.StatusAccepted)
				_, _ = c.Response().Write([]byte("partial"))
				panic("late failure")
			},
			respond:     errorResponder,
			wantStatus:  http.StatusAccepted,
			wantPartial: "partial",
			wantLog:     []string{"late failure", "committed=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, "/advertisement", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, Recovery(log, tt.respond)(tt.handler)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			switch {
			case tt.wantPartial != "":
				assert.Equal(t, tt.wantPartial, rec.Body.String())
			case tt.wantType != "":
				assert.Equal(t, tt.wantType, rec.Header().Get(echo.HeaderContentType))
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			case tt.wantBody != "":
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}

			if tt.wantNoLog {
				assert.Empty(t, buf.String())
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), httptest.NewRecorder())
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := Recovery(log, errorResponder)(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(c) })
}

func TestRecovery_LogsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(RequestIDHeader, "PactRequestId")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLog(log)(Recovery(log, errorResponder)(func(echo.Context) error {
		panic("boom")
	}))

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "PactRequestId", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "request_id=PactRequestId")
	assert.Equal(t, errorMedia, rec.Header().Get(echo.HeaderContentType))
}
