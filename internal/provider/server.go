// Package provider implements an in-memory Ad Posting API for local
// development and end-to-end tests of the client.
package provider

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/adposting/internal/adposting"
	"github.com/donaldgifford/adposting/internal/provider/middleware"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

// ErrUnknownAdvertisement is returned for an advertisement id the server never issued.
var ErrUnknownAdvertisement = errors.New("unknown advertisement")

// Account is an API client allowed to post for a set of advertisers.
type Account struct {
	ClientID      string
	ClientSecret  string
	AdvertiserIDs []string
	Disabled      bool
}

func (a *Account) relatedTo(advertiserID string) bool {
	for _, id := range a.AdvertiserIDs {
		if id == advertiserID {
			return true
		}
	}
	return false
}

type record struct {
	resource domain.AdvertisementResource
	reads    int
}

// Server is the mock API. Handler serves it; the exported methods let tests
// and the admin route drive the asynchronous processing status.
type Server struct {
	media           adposting.MediaTypes
	logger          *slog.Logger
	autoAcceptAfter int
	tokenTTL        time.Duration
	nowFunc         func() time.Time

	mu         sync.Mutex
	accounts   []*Account
	tokens     map[string]*Account
	ads        map[uuid.UUID]*record
	byCreation map[string]uuid.UUID
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithVendor sets the vendor tree of the media types served.
func WithVendor(vendor string) Option {
	return func(s *Server) {
		s.media = adposting.NewMediaTypes(vendor)
	}
}

// WithAutoAccept moves a Pending advertisement to Accepted on its n-th read.
// Zero keeps advertisements Pending until SetProcessingStatus is called.
func WithAutoAccept(n int) Option {
	return func(s *Server) {
		s.autoAcceptAfter = n
	}
}

// WithAccount registers an account that can obtain tokens from the token endpoint.
func WithAccount(a Account) Option {
	return func(s *Server) {
		s.accounts = append(s.accounts, &a)
	}
}

// WithToken registers a pre-issued access token for an account.
func WithToken(token string, a Account) Option {
	return func(s *Server) {
		acct := &a
		s.accounts = append(s.accounts, acct)
		s.tokens[token] = acct
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(s *Server) {
		s.nowFunc = f
	}
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		media:      adposting.NewMediaTypes(adposting.DefaultVendor),
		logger:     slog.Default(),
		tokenTTL:   time.Hour,
		nowFunc:    time.Now,
		tokens:     make(map[string]*Account),
		ads:        make(map[uuid.UUID]*record),
		byCreation: make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(s.logger))
	e.Use(middleware.Recovery(s.logger, func(c echo.Context) error {
		return s.writeError(c, http.StatusInternalServerError, domain.ErrorResponse{Message: "Internal server error"})
	}))
	e.Use(middleware.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/oauth2/token", s.issueToken)
	e.POST("/_admin/advertisement/:id/status", s.setStatus)

	api := e.Group("", s.authenticate)
	api.GET("/", s.index)
	api.POST("/advertisement", s.createAdvertisement)
	api.GET("/advertisement/:id", s.getAdvertisement)
	api.PUT("/advertisement/:id", s.updateAdvertisement)
	api.PATCH("/advertisement/:id", s.patchAdvertisement)

	return e
}

// SetProcessingStatus sets the processing status of an advertisement and,
// for Failed, the errors reported with it.
func (s *Server) SetProcessingStatus(id uuid.UUID, status domain.ProcessingStatus, errs ...domain.AdvertisementError) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ads[id]
	if !ok {
		return ErrUnknownAdvertisement
	}
	rec.resource.ProcessingStatus = status
	rec.resource.Errors = errs
	return nil
}

// Advertisement returns a copy of a stored advertisement.
func (s *Server) Advertisement(id uuid.UUID) (domain.AdvertisementResource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ads[id]
	if !ok {
		return domain.AdvertisementResource{}, false
	}
	return rec.resource, true
}

// Len returns the number of stored advertisements.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ads)
}
