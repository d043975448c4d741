package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/adposting/internal/adposting"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	base := adposting.RequestError{StatusCode: 400, RequestID: "r1"}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain error", err: errors.New("boom"), want: exitFailure},
		{name: "not found", err: &adposting.NotFoundError{RequestError: base}, want: exitNotFound},
		{name: "already exists", err: &adposting.AlreadyExistsError{RequestError: base}, want: exitAlreadyExists},
		{name: "unauthorized", err: &adposting.UnauthorizedError{RequestError: base}, want: exitUnauthorized},
		{name: "validation", err: &adposting.ValidationError{RequestError: base}, want: exitValidation},
		{name: "request", err: &base, want: exitRequest},
		{name: "parse", err: &adposting.ParseError{RequestError: base}, want: exitParse},
		{
			name: "wrapped",
			err:  fmt.Errorf("posting: %w", &adposting.NotFoundError{RequestError: base}),
			want: exitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	loc, _ := url.Parse("http://localhost/advertisement/8e2fde50-bc5f-4a12-9cfb-812e50500184")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain error",
			err:  errors.New("getting auth token: boom"),
			want: []string{"Error: getting auth token: boom"},
		},
		{
			name: "validation lists fields",
			err: &adposting.ValidationError{
				RequestError: adposting.RequestError{StatusCode: 422, RequestID: "PactRequestId"},
				Method:       "POST",
				Validation: domain.ValidationMessage{
					Message: "Validation Failure",
					Errors:  []domain.ValidationData{{Field: "salary.minimum", Code: "ValueOutOfRange"}},
				},
			},
			want: []string{
				"Error: validation (HTTP 422, request PactRequestId)",
				"Validation Failure",
				"salary.minimum",
				"ValueOutOfRange",
			},
		},
		{
			name: "unauthorized lists codes",
			err: &adposting.UnauthorizedError{
				RequestError: adposting.RequestError{StatusCode: 403, Message: "Forbidden"},
				Errors:       []domain.AdvertisementError{{Code: "RelationshipError"}},
			},
			want: []string{"Error: unauthorized (HTTP 403)", "Forbidden", "RelationshipError"},
		},
		{
			name: "already exists shows location",
			err: &adposting.AlreadyExistsError{
				RequestError: adposting.RequestError{StatusCode: 409},
				Location:     loc,
			},
			want: []string{"Error: already_exists (HTTP 409)", "Existing advertisement: " + loc.String()},
		},
		{
			name: "not found",
			err:  &adposting.NotFoundError{RequestError: adposting.RequestError{StatusCode: 404, RequestID: "r9"}},
			want: []string{"Error: not_found (HTTP 404, request r9)", "advertisement not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printError(&buf, tt.err)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPrintAdvertisementDetail(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	res := &domain.AdvertisementResource{
		Advertisement: domain.Advertisement{
			CreationID: "c-1",
			JobTitle:   "Developer",
		},
		ID:               uuid.MustParse("75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a"),
		State:            domain.StateExpired,
		ExpiryDate:       &expiry,
		ProcessingStatus: domain.ProcessingFailed,
		Links:            map[string]domain.Link{domain.RelSelf: {Href: "/advertisement/75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a"}},
		Warnings:         []domain.AdvertisementError{{Field: "standout.logoId", Code: "missing"}},
		Errors:           []domain.AdvertisementError{{Code: "InvalidLocation", Message: "bad"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, printAdvertisementDetail(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a")
	assert.Contains(t, out, "Expired")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "2026-04-01 00:00:00")
	assert.Contains(t, out, "missing (standout.logoId)")
	assert.Contains(t, out, "InvalidLocation: bad")
}

func TestPrintIndexTable_SortedByRel(t *testing.T) {
	t.Parallel()

	idx := &domain.Index{Links: map[string]domain.Link{
		domain.RelAdvertisements: {Href: "/advertisement"},
		domain.RelAdvertisement:  {Href: "/advertisement/{advertisementId}", Templated: true},
	}}

	var buf bytes.Buffer
	assert.NoError(t, printIndexTable(&buf, idx))

	out := buf.String()
	assert.Less(t,
		bytes.Index(buf.Bytes(), []byte("advertisement ")),
		bytes.Index(buf.Bytes(), []byte("advertisements ")),
	)
	assert.Contains(t, out, "{advertisementId}")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
