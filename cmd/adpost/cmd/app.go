package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/adposting/internal/adposting"
	"github.com/donaldgifford/adposting/internal/config"
	"github.com/donaldgifford/adposting/internal/journal"
	"github.com/donaldgifford/adposting/internal/notify"
	"github.com/donaldgifford/adposting/internal/telemetry"
	"github.com/donaldgifford/adposting/pkg/logger"
)

// app holds the dependencies a command runs with.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	client   *adposting.Client
	reqLog   *adposting.RequestLog
	reqIDs   *adposting.RequestIDRecorder
	showHTTP bool
	stderr   io.Writer
	shutdown telemetry.ShutdownFunc

	storeOnce sync.Once
	store     journal.Store
	storeErr  error
}

func (o *rootOptions) newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(stderr, logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.Telemetry.ServiceName,
		Version: Version,
	})

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	reqLog := adposting.NewRequestLog()
	reqIDs := adposting.NewRequestIDRecorder(http.DefaultTransport)
	transport := otelhttp.NewTransport(adposting.NewLoggingTransport(reqIDs, log,
		adposting.WithRequestLog(reqLog),
		adposting.WithResponseBody(cfg.API.LogBodies),
	))
	httpClient := &http.Client{Timeout: cfg.API.Timeout, Transport: transport}

	var tokens adposting.TokenProvider
	if cfg.OAuth.Token != "" {
		tokens = adposting.StaticToken(cfg.OAuth.Token)
	} else {
		tokens = adposting.NewOAuthTokenProvider(
			cfg.OAuth.TokenURL, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret,
			adposting.WithScopes(cfg.OAuth.Scopes...),
			adposting.WithTokenHTTPClient(&http.Client{Timeout: cfg.API.Timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}),
		)
	}

	opts := []adposting.Option{
		adposting.WithHTTPClient(httpClient),
		adposting.WithVendor(cfg.API.Vendor),
		adposting.WithLogger(log),
		adposting.WithRateLimiter(adposting.NewRateLimiter(
			cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.DailyLimit,
		)),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, adposting.WithUserAgent(cfg.API.UserAgent))
	}

	client, err := adposting.New(cfg.API.BaseURL, tokens, opts...)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		reqLog:   reqLog,
		reqIDs:   reqIDs,
		showHTTP: o.showHTTP,
		stderr:   stderr,
		shutdown: shutdown,
	}, nil
}

// journal opens the configured journal on first use.
func (a *app) journal(ctx context.Context) (journal.Store, error) {
	a.storeOnce.Do(func() {
		a.store, a.storeErr = journal.Open(ctx, journal.OpenOptions{
			Backend: a.cfg.Journal.Backend,
			Path:    a.cfg.Journal.Path,
			DSN:     a.cfg.Journal.ConnString(),
		})
	})
	return a.store, a.storeErr
}

func (a *app) notifier() notify.Notifier {
	if a.cfg.Notifications.Discord.Enabled {
		return notify.NewDiscordNotifier(a.cfg.Notifications.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(a.log)
}

// absolute resolves a link href against the API base URL.
func (a *app) absolute(href string) string {
	base, err := url.Parse(a.cfg.API.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func (a *app) close(ctx context.Context) error {
	if a.showHTTP {
		fmt.Fprintln(a.stderr, a.reqLog.String())
	}

	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	errs = append(errs, a.shutdown(ctx))
	return errors.Join(errs...)
}
