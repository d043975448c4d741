// Package main runs the in-memory Ad Posting API for local development.
// Advertisements are kept in memory and lost on exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/donaldgifford/adposting/internal/provider"
	"github.com/donaldgifford/adposting/pkg/logger"
)

type options struct {
	port         int
	clientID     string
	clientSecret string
	token        string
	advertisers  string
	vendor       string
	autoAccept   int
	logLevel     string
}

func main() {
	var opts options
	flag.IntVar(&opts.port, "port", 8089, "port to listen on")
	flag.StringVar(&opts.clientID, "client-id", "mock-client", "OAuth2 client id accepted by the token endpoint")
	flag.StringVar(&opts.clientSecret, "client-secret", "mock-secret", "OAuth2 client secret accepted by the token endpoint")
	flag.StringVar(&opts.token, "token", "", "pre-issued access token (optional)")
	flag.StringVar(&opts.advertisers, "advertisers", "9012", "comma separated advertiser ids the account may post for")
	flag.StringVar(&opts.vendor, "vendor", "seek", "media type vendor tree")
	flag.IntVar(&opts.autoAccept, "auto-accept", 0, "accept a pending advertisement on its n-th read (0 disables)")
	flag.StringVar(&opts.logLevel, "log-level", "debug", "log level")
	flag.Parse()

	log := logger.New(os.Stderr, logger.Options{
		Level:   opts.logLevel,
		Format:  "text",
		Service: "adpost-mock-provider",
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.port),
		Handler:      newProvider(opts, log).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting mock ad posting API", "addr", srv.Addr, "client_id", opts.clientID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutting down", "error", err)
	}
}

func newProvider(opts options, log *slog.Logger) *provider.Server {
	account := provider.Account{
		ClientID:      opts.clientID,
		ClientSecret:  opts.clientSecret,
		AdvertiserIDs: splitList(opts.advertisers),
	}

	popts := []provider.Option{
		provider.WithLogger(log),
		provider.WithVendor(opts.vendor),
		provider.WithAutoAccept(opts.autoAccept),
	}
	if opts.token != "" {
		popts = append(popts, provider.WithToken(opts.token, account))
	} else {
		popts = append(popts, provider.WithAccount(account))
	}
	return provider.New(popts...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
