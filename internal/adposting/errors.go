package adposting

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Kind identifies which failure an API call ended in. The set is closed:
// every non-success response maps to exactly one kind.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadyExists
	KindUnauthorized
	KindValidation
	KindRequest
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindRequest:
		return "request"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// APIError is implemented by every error produced from an API response.
type APIError interface {
	error
	Kind() Kind
	Status() int
	CorrelationID() string
}

// RequestError is a response the client has no more specific kind for.
// It is also embedded by the specific kinds to carry the status and
// X-Request-Id of the response.
type RequestError struct {
	StatusCode int
	RequestID  string
	Message    string
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (HTTP %d, request %s): %s", e.StatusCode, e.requestIDOrNone(), msg)
}

// Kind implements APIError.
func (e *RequestError) Kind() Kind { return KindRequest }

// Status implements APIError.
func (e *RequestError) Status() int { return e.StatusCode }

// CorrelationID implements APIError.
func (e *RequestError) CorrelationID() string { return e.RequestID }

func (e *RequestError) requestIDOrNone() string {
	if e.RequestID == "" {
		return "none"
	}
	return e.RequestID
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	RequestError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("advertisement not found (request %s)", e.requestIDOrNone())
}

// Kind implements APIError.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// AlreadyExistsError is returned for 409 responses: an advertisement with the
// same creation id was already posted. Location points at it.
type AlreadyExistsError struct {
	RequestError
	Location *url.URL
}

func (e *AlreadyExistsError) Error() string {
	loc := ""
	if e.Location != nil {
		loc = e.Location.String()
	}
	return fmt.Sprintf("advertisement already exists at %q (request %s)", loc, e.requestIDOrNone())
}

// Kind implements APIError.
func (e *AlreadyExistsError) Kind() Kind { return KindAlreadyExists }

// UnauthorizedError is returned for 401 and 403 responses. The cause of a 403
// is only distinguished by the codes in Errors.
type UnauthorizedError struct {
	RequestError
	Errors []domain.AdvertisementError
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf(
		"unauthorized (HTTP %d, request %s): %s%s",
		e.StatusCode, e.requestIDOrNone(), e.Message, joinCodes(e.Errors),
	)
}

// Kind implements APIError.
func (e *UnauthorizedError) Kind() Kind { return KindUnauthorized }

// HasCode reports whether any of the error entries carries code.
func (e *UnauthorizedError) HasCode(code string) bool {
	for _, ae := range e.Errors {
		if ae.Code == code {
			return true
		}
	}
	return false
}

// ValidationError is returned for 422 responses.
type ValidationError struct {
	RequestError
	Method     string
	Validation domain.ValidationMessage
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Validation.Errors))
	for _, d := range e.Validation.Errors {
		parts = append(parts, d.Field+":"+d.Code)
	}
	return fmt.Sprintf(
		"validation failed for %s (request %s): %s [%s]",
		e.Method, e.requestIDOrNone(), e.Validation.Message, strings.Join(parts, ", "),
	)
}

// Kind implements APIError.
func (e *ValidationError) Kind() Kind { return KindValidation }

// ParseError is returned when a response body could not be decoded, or a
// success response arrived with an unexpected content type.
type ParseError struct {
	RequestError
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"parsing response (HTTP %d, content type %q, request %s): %v",
		e.StatusCode, e.ContentType, e.requestIDOrNone(), e.Err,
	)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind implements APIError.
func (e *ParseError) Kind() Kind { return KindParse }

// KindOf returns the kind of the first APIError in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindUnknown
}

// RequestIDOf returns the correlation id carried by err, if any.
func RequestIDOf(err error) string {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.CorrelationID()
	}
	return ""
}

func joinCodes(errs []domain.AdvertisementError) string {
	if len(errs) == 0 {
		return ""
	}
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	return " [" + strings.Join(codes, ", ") + "]"
}
