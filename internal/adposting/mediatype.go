package adposting

import (
	"fmt"
	"mime"
	"strings"
)

// DefaultVendor is the vendor tree used in the API's media types.
const DefaultVendor = "seek"

const (
	mediaVersion = "1"
	halJSON      = "application/hal+json"
)

// MediaTypes holds the versioned vendor media types spoken by the API.
type MediaTypes struct {
	Advertisement      string
	AdvertisementError string
	AdvertisementPatch string
}

// NewMediaTypes builds the version 1 media types for the given vendor.
func NewMediaTypes(vendor string) MediaTypes {
	if vendor == "" {
		vendor = DefaultVendor
	}
	return MediaTypes{
		Advertisement:      fmt.Sprintf("application/vnd.%s.advertisement+json; version=%s", vendor, mediaVersion),
		AdvertisementError: fmt.Sprintf("application/vnd.%s.advertisement-error+json; version=%s", vendor, mediaVersion),
		AdvertisementPatch: fmt.Sprintf("application/vnd.%s.advertisement-patch+json; version=%s", vendor, mediaVersion),
	}
}

// Accept is the Accept header value sent with every advertisement request.
func (m MediaTypes) Accept() string {
	return m.Advertisement + ", " + m.AdvertisementError
}

// WithCharset appends the utf-8 charset parameter to a media type.
func WithCharset(mediaType string) string {
	return mediaType + "; charset=utf-8"
}

// MediaTypeMatches reports whether the Content-Type header value names the same media
// type and version as want. Other parameters such as charset are ignored.
func MediaTypeMatches(contentType, want string) bool {
	gotType, gotParams, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	wantType, wantParams, err := mime.ParseMediaType(want)
	if err != nil {
		return false
	}
	if !strings.EqualFold(gotType, wantType) {
		return false
	}
	// A bare vendor type without a version is treated as the current version.
	if v, ok := gotParams["version"]; ok && v != wantParams["version"] {
		return false
	}
	return true
}
