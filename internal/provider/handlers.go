package provider

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/adposting/internal/adposting"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

const contextKeyAccount = "account"

// Error codes returned in 403 bodies.
const (
	CodeAccountError      = "AccountError"
	CodeRelationshipError = "RelationshipError"
)

var numericID = regexp.MustCompile(`^[0-9]+$`)

func (s *Server) issueToken(c echo.Context) error {
	id, secret, ok := c.Request().BasicAuth()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
	}
	if gt := c.FormValue("grant_type"); gt != "client_credentials" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":             "unsupported_grant_type",
			"error_description": fmt.Sprintf("grant type %q is not supported", gt),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ClientID == id && subtle.ConstantTimeCompare([]byte(a.ClientSecret), []byte(secret)) == 1 {
			token := uuid.NewString()
			s.tokens[token] = a
			return c.JSON(http.StatusOK, map[string]any{
				"access_token": token,
				"token_type":   "Bearer",
				"expires_in":   int(s.tokenTTL.Seconds()),
			})
		}
	}

	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":             "invalid_client",
		"error_description": "client authentication failed",
	})
}

// authenticate resolves the bearer token to an account. Disabled accounts are
// refused with an AccountError.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			return s.unauthorized(c)
		}

		s.mu.Lock()
		acct, found := s.tokens[token]
		s.mu.Unlock()

		if !found {
			return s.unauthorized(c)
		}
		if acct.Disabled {
			return s.forbidden(c, domain.AdvertisementError{Code: CodeAccountError, Message: "Account is disabled"})
		}

		c.Set(contextKeyAccount, acct)
		return next(c)
	}
}

func (s *Server) index(c echo.Context) error {
	base := baseURL(c)
	idx := domain.Index{Links: map[string]domain.Link{
		domain.RelAdvertisements: {Href: base + "/advertisement"},
		domain.RelAdvertisement:  {Href: base + "/advertisement/{advertisementId}", Templated: true},
	}}
	b, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	return c.Blob(http.StatusOK, "application/hal+json", b)
}

func (s *Server) createAdvertisement(c echo.Context) error {
	raw, ad, err := s.readAdvertisement(c)
	if err != nil || ad == nil {
		return err
	}

	acct := accountOf(c)
	if done, err := s.checkAdvertiser(c, acct, ad.ThirdParties.AdvertiserID); done {
		return err
	}

	errs, err := Validate(raw, ad, true)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return s.validationFailed(c, errs)
	}

	key := ad.ThirdParties.AdvertiserID + "/" + ad.CreationID

	s.mu.Lock()
	if existing, dup := s.byCreation[key]; dup {
		s.mu.Unlock()
		c.Response().Header().Set(adposting.HeaderLocation, selfLink(c, existing))
		return c.NoContent(http.StatusConflict)
	}

	id := uuid.New()
	rec := &record{resource: domain.AdvertisementResource{
		Advertisement:    *ad,
		ID:               id,
		State:            domain.StateOpen,
		Links:            links(c, id),
		Warnings:         warningsFor(ad),
		ProcessingStatus: domain.ProcessingPending,
	}}
	s.ads[id] = rec
	s.byCreation[key] = id
	res := rec.resource
	s.mu.Unlock()

	c.Response().Header().Set(adposting.HeaderLocation, res.Links[domain.RelSelf].Href)
	return s.writeResource(c, http.StatusAccepted, &res)
}

func (s *Server) getAdvertisement(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return s.notFound(c)
	}

	s.mu.Lock()
	rec, found := s.ads[id]
	if !found {
		s.mu.Unlock()
		return s.notFound(c)
	}
	if !accountOf(c).relatedTo(rec.resource.ThirdParties.AdvertiserID) {
		s.mu.Unlock()
		return s.forbidden(c, domain.AdvertisementError{Code: CodeRelationshipError})
	}

	rec.reads++
	if s.autoAcceptAfter > 0 &&
		rec.resource.ProcessingStatus == domain.ProcessingPending &&
		rec.reads >= s.autoAcceptAfter {
		rec.resource.ProcessingStatus = domain.ProcessingAccepted
	}
	res := rec.resource
	s.mu.Unlock()

	return s.writeResource(c, http.StatusOK, &res)
}

func (s *Server) updateAdvertisement(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return s.notFound(c)
	}

	raw, ad, err := s.readAdvertisement(c)
	if err != nil || ad == nil {
		return err
	}

	acct := accountOf(c)
	if done, err := s.checkAdvertiser(c, acct, ad.ThirdParties.AdvertiserID); done {
		return err
	}

	errs, err := Validate(raw, ad, false)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return s.validationFailed(c, errs)
	}

	s.mu.Lock()
	rec, found := s.ads[id]
	if !found {
		s.mu.Unlock()
		return s.notFound(c)
	}
	if !acct.relatedTo(rec.resource.ThirdParties.AdvertiserID) {
		s.mu.Unlock()
		return s.forbidden(c, domain.AdvertisementError{Code: CodeRelationshipError})
	}

	creationID := rec.resource.CreationID
	rec.resource.Advertisement = *ad
	rec.resource.CreationID = creationID
	rec.resource.Warnings = warningsFor(ad)
	res := rec.resource
	s.mu.Unlock()

	return s.writeResource(c, http.StatusOK, &res)
}

func (s *Server) patchAdvertisement(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return s.notFound(c)
	}

	if !adposting.MediaTypeMatches(c.Request().Header.Get(echo.HeaderContentType), s.media.AdvertisementPatch) {
		return s.unsupportedMediaType(c)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("reading patch body: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(body)
	if err != nil {
		return s.validationFailed(c, []domain.ValidationData{{Field: "", Code: CodeInvalidFormat}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.ads[id]
	if !found {
		return s.notFound(c)
	}
	if !accountOf(c).relatedTo(rec.resource.ThirdParties.AdvertiserID) {
		return s.forbidden(c, domain.AdvertisementError{Code: CodeRelationshipError})
	}

	// Only the state is patchable.
	doc, err := json.Marshal(map[string]domain.AdvertisementState{"state": rec.resource.State})
	if err != nil {
		return fmt.Errorf("encoding patch document: %w", err)
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return s.validationFailed(c, []domain.ValidationData{{Field: patchPath(patch), Code: CodeInvalidValue}})
	}

	var next struct {
		State domain.AdvertisementState `json:"state"`
	}
	if err := json.Unmarshal(patched, &next); err != nil {
		return s.validationFailed(c, []domain.ValidationData{{Field: "state", Code: CodeInvalidValue}})
	}

	switch {
	case next.State == rec.resource.State:
	case next.State == domain.StateExpired:
		now := s.nowFunc().UTC()
		rec.resource.State = domain.StateExpired
		rec.resource.ExpiryDate = &now
	default:
		return s.validationFailed(c, []domain.ValidationData{{Field: "state", Code: CodeInvalidValue}})
	}

	res := rec.resource
	return s.writeResource(c, http.StatusOK, &res)
}

type statusRequest struct {
	ProcessingStatus domain.ProcessingStatus     `json:"processingStatus"`
	Errors           []domain.AdvertisementError `json:"errors,omitempty"`
}

func (s *Server) setStatus(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return s.notFound(c)
	}

	var req statusRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Message: "Bad request"})
	}
	switch req.ProcessingStatus {
	case domain.ProcessingPending, domain.ProcessingAccepted, domain.ProcessingFailed:
	default:
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Message: fmt.Sprintf("unknown processing status %q", req.ProcessingStatus),
		})
	}

	if err := s.SetProcessingStatus(id, req.ProcessingStatus, req.Errors...); err != nil {
		return s.notFound(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// readAdvertisement decodes the request body. When it returns a nil
// advertisement and nil error, the error response was already written.
func (s *Server) readAdvertisement(c echo.Context) ([]byte, *domain.Advertisement, error) {
	if !adposting.MediaTypeMatches(c.Request().Header.Get(echo.HeaderContentType), s.media.Advertisement) {
		return nil, nil, s.unsupportedMediaType(c)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading advertisement body: %w", err)
	}

	var ad domain.Advertisement
	if err := json.Unmarshal(raw, &ad); err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, domain.ErrorResponse{Message: "Request body is not valid JSON"})
	}
	return raw, &ad, nil
}

// checkAdvertiser writes a 403 and reports done when the account may not
// post for advertiserID.
func (s *Server) checkAdvertiser(c echo.Context, acct *Account, advertiserID string) (bool, error) {
	if advertiserID != "" && !numericID.MatchString(advertiserID) {
		return true, s.forbidden(c, domain.AdvertisementError{Field: "thirdParties.advertiserId", Code: CodeInvalidValue})
	}
	if advertiserID != "" && !acct.relatedTo(advertiserID) {
		return true, s.forbidden(c, domain.AdvertisementError{Code: CodeRelationshipError})
	}
	return false, nil
}

func (s *Server) writeResource(c echo.Context, status int, res *domain.AdvertisementResource) error {
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding advertisement: %w", err)
	}
	c.Response().Header().Set(adposting.HeaderProcessingStatus, string(res.ProcessingStatus))
	return c.Blob(status, adposting.WithCharset(s.media.Advertisement), b)
}

func (s *Server) writeError(c echo.Context, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding error body: %w", err)
	}
	return c.Blob(status, adposting.WithCharset(s.media.AdvertisementError), b)
}

func (s *Server) unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return s.writeError(c, http.StatusUnauthorized, domain.ErrorResponse{Message: "Unauthorized"})
}

func (s *Server) forbidden(c echo.Context, errs ...domain.AdvertisementError) error {
	return s.writeError(c, http.StatusForbidden, domain.ErrorResponse{Message: "Forbidden", Errors: errs})
}

func (s *Server) notFound(c echo.Context) error {
	return s.writeError(c, http.StatusNotFound, domain.ErrorResponse{Message: "Resource not found"})
}

func (s *Server) validationFailed(c echo.Context, errs []domain.ValidationData) error {
	return s.writeError(c, http.StatusUnprocessableEntity, domain.ValidationMessage{
		Message: "Validation Failure",
		Errors:  errs,
	})
}

func (s *Server) unsupportedMediaType(c echo.Context) error {
	return s.writeError(c, http.StatusUnsupportedMediaType, domain.ErrorResponse{Message: "Unsupported media type"})
}

func accountOf(c echo.Context) *Account {
	acct, _ := c.Get(contextKeyAccount).(*Account)
	if acct == nil {
		return &Account{}
	}
	return acct
}

func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

func selfLink(c echo.Context, id uuid.UUID) string {
	return baseURL(c) + "/advertisement/" + id.String()
}

func links(c echo.Context, id uuid.UUID) map[string]domain.Link {
	self := selfLink(c, id)
	return map[string]domain.Link{
		domain.RelSelf: {Href: self},
		domain.RelView: {Href: self + "/view"},
	}
}

// warningsFor reports non-fatal problems the API accepts but flags.
func warningsFor(ad *domain.Advertisement) []domain.AdvertisementError {
	if ad.AdvertisementType == domain.AdvertisementStandOut && (ad.Standout == nil || ad.Standout.LogoID == 0) {
		return []domain.AdvertisementError{{Field: "standout.logoId", Code: "missing"}}
	}
	return nil
}

func patchPath(p jsonpatch.Patch) string {
	if len(p) == 0 {
		return ""
	}
	path, err := p[0].Path()
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ReplaceAll(path, "/", "."), ".")
}
