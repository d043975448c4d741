package adposting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Response headers read by the mapper.
const (
	HeaderRequestID        = "X-Request-Id"
	HeaderProcessingStatus = "Processing-Status"
	HeaderLocation         = "Location"
)

const maxMessageBytes = 512

var (
	errEmptyBody = errors.New("empty response body")
	errNullBody  = errors.New("response body is null")
	errMissingID = errors.New("advertisement has no id")
)

// Response is the part of an HTTP exchange the mapper needs.
type Response struct {
	Method     string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Mapper turns API responses into advertisement resources or typed errors.
// It performs no I/O and holds no state besides the media types, so mapping
// the same response twice yields equal results.
type Mapper struct {
	media MediaTypes
}

// NewMapper creates a Mapper for the given media types.
func NewMapper(media MediaTypes) Mapper {
	return Mapper{media: media}
}

// Map returns the advertisement carried by a success response, or exactly one
// APIError describing the failure.
func (m Mapper) Map(resp Response) (*domain.AdvertisementResource, error) {
	base := RequestError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(HeaderRequestID),
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return m.success(resp, base)

	case http.StatusNotFound:
		return nil, &NotFoundError{RequestError: base}

	case http.StatusConflict:
		return nil, m.conflict(resp, base)

	case http.StatusUnauthorized:
		base.Message = messageOrStatus(resp)
		return nil, &UnauthorizedError{RequestError: base}

	case http.StatusForbidden:
		return nil, m.forbidden(resp, base)

	case http.StatusUnprocessableEntity:
		return nil, m.validation(resp, base)

	default:
		base.Message = rawMessage(resp)
		return nil, &base
	}
}

func (m Mapper) success(resp Response, base RequestError) (*domain.AdvertisementResource, error) {
	contentType := resp.Header.Get("Content-Type")
	if !MediaTypeMatches(contentType, m.media.Advertisement) {
		return nil, &ParseError{
			RequestError: base,
			ContentType:  contentType,
			Err:          fmt.Errorf("unexpected content type, want %s", m.media.Advertisement),
		}
	}

	var res domain.AdvertisementResource
	if err := decode(resp.Body, &res); err != nil {
		return nil, &ParseError{RequestError: base, ContentType: contentType, Err: err}
	}
	if res.ID == uuid.Nil {
		return nil, &ParseError{RequestError: base, ContentType: contentType, Err: errMissingID}
	}

	res.ProcessingStatus = domain.ParseProcessingStatus(resp.Header.Get(HeaderProcessingStatus))
	return &res, nil
}

func (Mapper) conflict(resp Response, base RequestError) error {
	conflict := &AlreadyExistsError{RequestError: base}

	raw := resp.Header.Get(HeaderLocation)
	if raw == "" {
		return conflict
	}

	loc, err := url.Parse(raw)
	if err != nil {
		return &ParseError{
			RequestError: base,
			ContentType:  resp.Header.Get("Content-Type"),
			Err:          fmt.Errorf("parsing Location header: %w", err),
		}
	}
	conflict.Location = loc
	return conflict
}

func (Mapper) forbidden(resp Response, base RequestError) error {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		base.Message = http.StatusText(resp.StatusCode)
		return &UnauthorizedError{RequestError: base}
	}

	var body domain.ErrorResponse
	if err := decode(resp.Body, &body); err != nil {
		return &ParseError{RequestError: base, ContentType: resp.Header.Get("Content-Type"), Err: err}
	}

	base.Message = body.Message
	return &UnauthorizedError{RequestError: base, Errors: body.Errors}
}

func (Mapper) validation(resp Response, base RequestError) error {
	var body domain.ValidationMessage
	if err := decode(resp.Body, &body); err != nil {
		return &ParseError{RequestError: base, ContentType: resp.Header.Get("Content-Type"), Err: err}
	}

	base.Message = body.Message
	return &ValidationError{RequestError: base, Method: resp.Method, Validation: body}
}

func decode(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errEmptyBody
	}
	// Unmarshal treats null as a no-op, which would hand back a zero value.
	if bytes.Equal(trimmed, []byte("null")) {
		return errNullBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// messageOrStatus returns the message field of a JSON error body, falling back
// to the status text. Malformed bodies are not an error here.
func messageOrStatus(resp Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}

// rawMessage prefers a JSON message field and otherwise returns a trimmed
// prefix of the raw body.
func rawMessage(resp Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Message != "" {
		return body.Message
	}

	msg := strings.TrimSpace(string(resp.Body))
	if len(msg) > maxMessageBytes {
		n := maxMessageBytes
		for n > 0 && !utf8.RuneStart(msg[n]) {
			n--
		}
		msg = msg[:n] + "..."
	}
	return msg
}
