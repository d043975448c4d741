package adposting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/donaldgifford/adposting/internal/metrics"
)

const refreshBuffer = 60 * time.Second

// ErrNoToken is returned by StaticToken when it holds no token.
var ErrNoToken = errors.New("no access token configured")

// StaticToken is a TokenProvider for an access token acquired elsewhere.
type StaticToken string

// Token returns the static token.
func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// OAuthTokenProvider implements TokenProvider with the OAuth2 client
// credentials grant. Tokens are cached and refreshed when expired or within
// 60 seconds of expiry. Safe for concurrent use.
type OAuthTokenProvider struct {
	cfg    clientcredentials.Config
	client *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithScopes sets the scopes requested with each token.
func WithScopes(scopes ...string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.cfg.Scopes = scopes
	}
}

// WithTokenHTTPClient overrides the HTTP client used for the token endpoint.
func WithTokenHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a token provider for the given token endpoint.
// Client credentials are sent in the Authorization header.
func NewOAuthTokenProvider(
	tokenURL, clientID, clientSecret string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		client:  &http.Client{Timeout: 10 * time.Second},
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns a valid access token, refreshing if necessary.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry.Add(-refreshBuffer)) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

func (p *OAuthTokenProvider) refreshLocked(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.cfg.Token(ctx)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()

		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", fmt.Errorf(
				"token request failed (status %d): %s - %s: %w",
				re.Response.StatusCode,
				re.ErrorCode,
				re.ErrorDescription,
				err,
			)
		}
		return "", fmt.Errorf("fetching token: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	p.token = tok.AccessToken
	p.expiry = tok.Expiry
	if p.expiry.IsZero() {
		// No expires_in: keep the token for one refresh window.
		p.expiry = p.nowFunc().Add(2 * refreshBuffer)
	}

	return p.token, nil
}
