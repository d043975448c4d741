package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "9012", want: []string{"9012"}},
		{in: "9012, 3456 ,", want: []string{"9012", "3456"}},
		{in: "", want: nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewProvider_IssuesToken(t *testing.T) {
	p := newProvider(options{clientID: "id", clientSecret: "secret", advertisers: "9012"}, testLogger())
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/oauth2/token",
		strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode()))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("id", "secret")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("requesting token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["access_token"] == nil || body["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if body["token_type"] != "Bearer" {
		t.Errorf("token_type=%v, want Bearer", body["token_type"])
	}
}

func TestNewProvider_StaticToken(t *testing.T) {
	p := newProvider(options{token: "static-token", advertisers: "9012"}, testLogger())
	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", http.NoBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer static-token")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("requesting index: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/hal+json" {
		t.Errorf("content type=%q, want application/hal+json", ct)
	}
}
