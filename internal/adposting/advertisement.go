package adposting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

const advertisementIDVar = "{advertisementId}"

var errNilAdvertisement = errors.New("advertisement is nil")

// expirePatch replaces the advertisement state with Expired.
var expirePatch = []byte(`[{"op":"replace","path":"/state","value":"Expired"}]`)

// GetAdvertisement fetches the advertisement at uri. uri may be absolute or
// relative to the base URL.
func (c *Client) GetAdvertisement(ctx context.Context, uri string) (*domain.AdvertisementResource, error) {
	return c.do(ctx, request{
		op:     "get",
		method: http.MethodGet,
		target: uri,
	})
}

// GetAdvertisementByID fetches an advertisement through the templated
// advertisement link.
func (c *Client) GetAdvertisementByID(ctx context.Context, id uuid.UUID) (*domain.AdvertisementResource, error) {
	return c.GetAdvertisement(ctx, c.AdvertisementURI(id))
}

// AdvertisementURI expands the advertisement link for id.
func (c *Client) AdvertisementURI(id uuid.UUID) string {
	href := c.links[domain.RelAdvertisement].Href
	if strings.Contains(href, advertisementIDVar) {
		return strings.ReplaceAll(href, advertisementIDVar, url.PathEscape(id.String()))
	}
	return strings.TrimSuffix(href, "/") + "/" + id.String()
}

// CreateAdvertisement posts a new advertisement. A repeated CreationID
// results in an *AlreadyExistsError pointing at the existing advertisement.
func (c *Client) CreateAdvertisement(ctx context.Context, ad *domain.Advertisement) (*domain.AdvertisementResource, error) {
	body, err := c.encode(ad)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request{
		op:          "create",
		method:      http.MethodPost,
		target:      c.links[domain.RelAdvertisements].Href,
		contentType: WithCharset(c.media.Advertisement),
		body:        body,
	})
}

// UpdateAdvertisement replaces the advertisement at uri.
func (c *Client) UpdateAdvertisement(
	ctx context.Context,
	uri string,
	ad *domain.Advertisement,
) (*domain.AdvertisementResource, error) {
	body, err := c.encode(ad)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request{
		op:          "update",
		method:      http.MethodPut,
		target:      uri,
		contentType: WithCharset(c.media.Advertisement),
		body:        body,
	})
}

// ExpireAdvertisement closes the advertisement at uri.
func (c *Client) ExpireAdvertisement(ctx context.Context, uri string) (*domain.AdvertisementResource, error) {
	return c.do(ctx, request{
		op:          "expire",
		method:      http.MethodPatch,
		target:      uri,
		contentType: WithCharset(c.media.AdvertisementPatch),
		body:        expirePatch,
	})
}

func (*Client) encode(ad *domain.Advertisement) ([]byte, error) {
	if ad == nil {
		return nil, errNilAdvertisement
	}
	b, err := json.Marshal(ad)
	if err != nil {
		return nil, fmt.Errorf("encoding advertisement: %w", err)
	}
	return b, nil
}
