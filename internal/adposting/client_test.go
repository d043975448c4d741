package adposting_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/adposting/internal/adposting"
	"github.com/donaldgifford/adposting/internal/adposting/adpostingtest"
	"github.com/donaldgifford/adposting/internal/adposting/mocks"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...adposting.Option) (*adposting.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]adposting.Option{
		adposting.WithHTTPClient(srv.Client()),
		adposting.WithLogger(discardLogger()),
	}, opts...)

	c, err := adposting.New(srv.URL, adposting.StaticToken(adpostingtest.AccessToken), opts...)
	require.NoError(t, err)
	return c, srv
}

func writeResource(w http.ResponseWriter, status int, res *domain.AdvertisementResource) {
	w.Header().Set("Content-Type", adposting.WithCharset(media.Advertisement))
	w.Header().Set(adposting.HeaderRequestID, adpostingtest.RequestID)
	if res.ProcessingStatus != "" {
		w.Header().Set(adposting.HeaderProcessingStatus, string(res.ProcessingStatus))
	}
	w.WriteHeader(status)
	_, _ = w.Write(adpostingtest.ResourceJSON(res))
}

func assertCommonHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+adpostingtest.AccessToken, r.Header.Get("Authorization"))
	assert.Equal(t, media.Accept(), r.Header.Get("Accept"))
	assert.NotEmpty(t, r.Header.Get("User-Agent"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		tokens  adposting.TokenProvider
		wantErr string
	}{
		{name: "valid", baseURL: "http://localhost:8080", tokens: adposting.StaticToken("x")},
		{name: "relative base URL", baseURL: "/api", tokens: adposting.StaticToken("x"), wantErr: "not absolute"},
		{name: "unparseable base URL", baseURL: "http://[::1", tokens: adposting.StaticToken("x"), wantErr: "parsing base URL"},
		{name: "missing token provider", baseURL: "http://localhost:8080", wantErr: "token provider is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := adposting.New(tt.baseURL, tt.tokens)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, media, c.MediaTypes())
		})
	}
}

func TestClient_AdvertisementURI(t *testing.T) {
	t.Parallel()

	c, err := adposting.New("http://localhost", adposting.StaticToken("x"))
	require.NoError(t, err)
	assert.Equal(t, "/advertisement/"+adpostingtest.AdvertisementID.String(), c.AdvertisementURI(adpostingtest.AdvertisementID))

	c, err = adposting.New("http://localhost", adposting.StaticToken("x"), adposting.WithIndex(&domain.Index{
		Links: map[string]domain.Link{
			domain.RelAdvertisement: {Href: "http://api.test/v2/ads/"},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/v2/ads/"+adpostingtest.AdvertisementID.String(), c.AdvertisementURI(adpostingtest.AdvertisementID))
}

func TestClient_Index(t *testing.T) {
	t.Parallel()

	var created atomic.Bool

	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			assert.Contains(t, r.Header.Get("Accept"), "application/hal+json")
			w.Header().Set("Content-Type", "application/hal+json")
			_, _ = w.Write(adpostingtest.IndexJSON("http://" + r.Host + "/v1"))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/advertisement":
			created.Store(true)
			writeResource(w, http.StatusAccepted, adpostingtest.Resource(
				adpostingtest.AdvertisementID, adpostingtest.MinimumAdvertisement(), domain.ProcessingPending,
			))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	idx, err := c.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/v1/advertisement", idx.Links[domain.RelAdvertisements].Href)
	assert.True(t, idx.Links[domain.RelAdvertisement].Templated)

	discovered, err := adposting.New(srv.URL, adposting.StaticToken(adpostingtest.AccessToken),
		adposting.WithHTTPClient(srv.Client()),
		adposting.WithIndex(idx),
	)
	require.NoError(t, err)

	_, err = discovered.CreateAdvertisement(context.Background(), adpostingtest.MinimumAdvertisement())
	require.NoError(t, err)
	assert.True(t, created.Load())
	assert.Equal(t,
		srv.URL+"/v1/advertisement/"+adpostingtest.AdvertisementID.String(),
		discovered.AdvertisementURI(adpostingtest.AdvertisementID),
	)
}

func TestClient_Index_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind adposting.Kind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: adposting.KindUnauthorized},
		{name: "server error", status: http.StatusServiceUnavailable, body: "down", wantKind: adposting.KindRequest},
		{name: "no links", status: http.StatusOK, body: `{"_links":{}}`, wantKind: adposting.KindParse},
		{name: "malformed", status: http.StatusOK, body: `{"_links":`, wantKind: adposting.KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/hal+json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			idx, err := c.Index(context.Background())
			require.Error(t, err)
			assert.Nil(t, idx)
			assert.Equal(t, tt.wantKind, adposting.KindOf(err))
		})
	}
}

func TestClient_CreateAdvertisement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ad   *domain.Advertisement
	}{
		{
			name: "minimum fields",
			ad:   adpostingtest.MinimumAdvertisement(adpostingtest.WithCreationID(adpostingtest.CreationIDMinimum)),
		},
		{
			name: "maximum fields",
			ad:   adpostingtest.FullAdvertisement(adpostingtest.WithCreationID(adpostingtest.CreationIDMaximum)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, adpostingtest.AdvertisementLinkPath, r.URL.Path)
				assert.Equal(t, adposting.WithCharset(media.Advertisement), r.Header.Get("Content-Type"))
				assertCommonHeaders(t, r)

				var got domain.Advertisement
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, *tt.ad, got)

				w.Header().Set(adposting.HeaderLocation, "/advertisement/"+adpostingtest.AdvertisementID.String())
				writeResource(w, http.StatusAccepted,
					adpostingtest.Resource(adpostingtest.AdvertisementID, &got, domain.ProcessingPending))
			})

			res, err := c.CreateAdvertisement(context.Background(), tt.ad)
			require.NoError(t, err)

			assert.Equal(t, *tt.ad, res.Advertisement)
			assert.Equal(t, adpostingtest.AdvertisementID, res.ID)
			assert.Equal(t, domain.ProcessingPending, res.ProcessingStatus)
			assert.Equal(t, "/advertisement/"+adpostingtest.AdvertisementID.String(), res.Link(domain.RelSelf))
			assert.Equal(t, "/advertisement/"+adpostingtest.AdvertisementID.String()+"/view", res.Link(domain.RelView))
		})
	}
}

func TestClient_CreateAdvertisement_Validation(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", media.AdvertisementError)
		w.Header().Set(adposting.HeaderRequestID, adpostingtest.RequestID)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(adpostingtest.ValidationJSON(adpostingtest.BadDataErrors()...))
	})

	_, err := c.CreateAdvertisement(context.Background(), adpostingtest.MinimumAdvertisement(adpostingtest.BadData()))

	var ve *adposting.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, http.MethodPost, ve.Method)
	assert.Equal(t, "Validation Failure", ve.Validation.Message)
	assert.ElementsMatch(t, adpostingtest.BadDataErrors(), ve.Validation.Errors)
	assert.Equal(t, adpostingtest.RequestID, ve.RequestID)
}

func TestClient_CreateAdvertisement_AlreadyExists(t *testing.T) {
	t.Parallel()

	existing := "/advertisement/" + adpostingtest.ExistingAdvertisementID.String()
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(adposting.HeaderLocation, "http://"+r.Host+existing)
		w.Header().Set(adposting.HeaderRequestID, adpostingtest.RequestID)
		w.WriteHeader(http.StatusConflict)
	})

	_, err := c.CreateAdvertisement(context.Background(),
		adpostingtest.MinimumAdvertisement(adpostingtest.WithCreationID(adpostingtest.ExistingCreationID)))

	var conflict *adposting.AlreadyExistsError
	require.ErrorAs(t, err, &conflict)
	require.NotNil(t, conflict.Location)
	assert.Equal(t, srv.URL+existing, conflict.Location.String())
	assert.Equal(t, adpostingtest.RequestID, conflict.RequestID)
}

func TestClient_CreateAdvertisement_Forbidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		advertID string
	}{
		{name: "unrelated advertiser", code: "RelationshipError", advertID: adpostingtest.UnrelatedAdvertiserID},
		{name: "malformed advertiser", code: "InvalidValue", advertID: adpostingtest.MalformedAdvertiserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var got domain.Advertisement
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, tt.advertID, got.ThirdParties.AdvertiserID)

				w.Header().Set("Content-Type", media.AdvertisementError)
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write(adpostingtest.ForbiddenJSON(tt.code))
			})

			_, err := c.CreateAdvertisement(context.Background(),
				adpostingtest.MinimumAdvertisement(adpostingtest.WithAdvertiserID(tt.advertID)))

			var ue *adposting.UnauthorizedError
			require.ErrorAs(t, err, &ue)
			assert.True(t, ue.HasCode(tt.code))
			assert.Equal(t, http.StatusForbidden, ue.Status())
		})
	}
}

func TestClient_CreateAdvertisement_Nil(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.CreateAdvertisement(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advertisement is nil")
}

func TestClient_GetAdvertisement(t *testing.T) {
	t.Parallel()

	ad := adpostingtest.FullAdvertisement(adpostingtest.WithCreationID(adpostingtest.CreationIDMaximum))
	res := adpostingtest.Resource(adpostingtest.AdvertisementID, ad, domain.ProcessingFailed)
	res.Warnings = []domain.AdvertisementError{{Field: "standout.logoId", Code: "missing"}}
	res.Errors = []domain.AdvertisementError{{Code: "Unauthorised", Message: "Unauthorised"}}

	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/advertisement/"+adpostingtest.AdvertisementID.String(), r.URL.Path)
		assertCommonHeaders(t, r)
		writeResource(w, http.StatusOK, res)
	})

	tests := []struct {
		name string
		get  func() (*domain.AdvertisementResource, error)
	}{
		{
			name: "by relative uri",
			get: func() (*domain.AdvertisementResource, error) {
				return c.GetAdvertisement(context.Background(), res.Link(domain.RelSelf))
			},
		},
		{
			name: "by absolute uri",
			get: func() (*domain.AdvertisementResource, error) {
				return c.GetAdvertisement(context.Background(), srv.URL+res.Link(domain.RelSelf))
			},
		},
		{
			name: "by id",
			get: func() (*domain.AdvertisementResource, error) {
				return c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.get()
			require.NoError(t, err)
			assert.Equal(t, *ad, got.Advertisement)
			assert.Equal(t, domain.ProcessingFailed, got.ProcessingStatus)
			assert.Equal(t, res.Warnings, got.Warnings)
			assert.Equal(t, res.Errors, got.Errors)
		})
	}
}

func TestClient_GetAdvertisement_NotFound(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(adposting.HeaderRequestID, adpostingtest.RequestID)
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := c.GetAdvertisementByID(context.Background(), uuid.New())
	assert.Nil(t, res)

	var nf *adposting.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, adpostingtest.RequestID, nf.CorrelationID())
}

func TestClient_UpdateAdvertisement(t *testing.T) {
	t.Parallel()

	ad := adpostingtest.MinimumAdvertisement(adpostingtest.WithSalary(120000, 150000))
	uri := "/advertisement/" + adpostingtest.AdvertisementID.String()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, uri, r.URL.Path)
		assert.Equal(t, adposting.WithCharset(media.Advertisement), r.Header.Get("Content-Type"))
		assertCommonHeaders(t, r)

		var got domain.Advertisement
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeResource(w, http.StatusOK, adpostingtest.Resource(adpostingtest.AdvertisementID, &got, ""))
	})

	res, err := c.UpdateAdvertisement(context.Background(), uri, ad)
	require.NoError(t, err)
	assert.InDelta(t, 150000, res.Salary.Maximum, 0)
	assert.Equal(t, domain.ProcessingAccepted, res.ProcessingStatus)
}

func TestClient_UpdateAdvertisement_Validation(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", media.AdvertisementError)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(adpostingtest.ValidationJSON(domain.ValidationData{Field: "salary.maximum", Code: "InvalidValue"}))
	})

	_, err := c.UpdateAdvertisement(context.Background(), "/advertisement/"+adpostingtest.AdvertisementID.String(),
		adpostingtest.MinimumAdvertisement(adpostingtest.WithSalary(150000, 100000)))

	var ve *adposting.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, http.MethodPut, ve.Method)
	require.Len(t, ve.Validation.Errors, 1)
	assert.Equal(t, "salary.maximum", ve.Validation.Errors[0].Field)
}

func TestClient_ExpireAdvertisement(t *testing.T) {
	t.Parallel()

	uri := "/advertisement/" + adpostingtest.AdvertisementID.String()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, uri, r.URL.Path)
		assert.Equal(t, adposting.WithCharset(media.AdvertisementPatch), r.Header.Get("Content-Type"))
		assertCommonHeaders(t, r)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `[{"op":"replace","path":"/state","value":"Expired"}]`, string(body))

		res := adpostingtest.Resource(adpostingtest.AdvertisementID, adpostingtest.MinimumAdvertisement(), "")
		res.State = domain.StateExpired
		writeResource(w, http.StatusOK, res)
	})

	res, err := c.ExpireAdvertisement(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, domain.StateExpired, res.State)
}

func TestClient_TokenError(t *testing.T) {
	t.Parallel()

	tokens := mocks.NewMockTokenProvider(t)
	tokens.EXPECT().Token(mock.Anything).Return("", errors.New("token endpoint unavailable"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := adposting.New(srv.URL, tokens, adposting.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting auth token")
	assert.Equal(t, adposting.KindUnknown, adposting.KindOf(err))
}

func TestClient_RateLimited(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, adposting.WithRateLimiter(adposting.NewRateLimiter(100, 10, 1)))

	_, err := c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
	assert.Equal(t, adposting.KindNotFound, adposting.KindOf(err))

	_, err = c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
	require.ErrorIs(t, err, adposting.ErrDailyLimitReached)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_WithVendor(t *testing.T) {
	t.Parallel()

	acme := adposting.NewMediaTypes("acme")

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, acme.Accept(), r.Header.Get("Accept"))
		assert.Equal(t, "adpost-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", acme.Advertisement)
		_, _ = w.Write(adpostingtest.ResourceJSON(
			adpostingtest.Resource(adpostingtest.AdvertisementID, adpostingtest.MinimumAdvertisement(), ""),
		))
	}, adposting.WithVendor("acme"), adposting.WithUserAgent("adpost-test"))

	res, err := c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
	require.NoError(t, err)
	assert.Equal(t, adpostingtest.AdvertisementID, res.ID)
}

func TestClient_RequestLog(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	log := adposting.NewRequestLog()
	hc := &http.Client{Transport: adposting.NewLoggingTransport(srv.Client().Transport, discardLogger(),
		adposting.WithRequestLog(log))}

	c, err := adposting.New(srv.URL, adposting.StaticToken(adpostingtest.AccessToken), adposting.WithHTTPClient(hc))
	require.NoError(t, err)

	_, err = c.GetAdvertisementByID(context.Background(), adpostingtest.AdvertisementID)
	require.Error(t, err)

	entry := log.Last()
	assert.Contains(t, entry, "GET "+srv.URL+"/advertisement/"+adpostingtest.AdvertisementID.String())
	assert.Contains(t, entry, "Authorization: Bearer [redacted]")
	assert.Contains(t, entry, "Response:\n404 Not Found")
}

// compile-time interface checks.
var (
	_ adposting.AdvertisementClient = (*adposting.Client)(nil)
	_ adposting.TokenProvider       = (*adposting.OAuthTokenProvider)(nil)
	_ adposting.TokenProvider       = adposting.StaticToken("")
	_ adposting.AdvertisementClient = (*mocks.MockAdvertisementClient)(nil)
)
