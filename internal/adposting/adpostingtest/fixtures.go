// Package adpostingtest provides advertisement fixtures and response builders
// for tests of the adposting client and the tools built on it.
package adpostingtest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Well-known identifiers used across tests.
const (
	AccessToken = "b635a7ea-1361-4cd8-9a07-bc3c12b2cf9e"
	RequestID   = "PactRequestId"

	CreationIDMinimum           = "20150914-134527-00012"
	CreationIDMaximum           = "20150914-134527-00097"
	CreationIDBadData           = "20150914-134527-00109"
	CreationIDDuplicateTemplate = "20160120-162020-00000"

	AdvertiserID          = "9012"
	UnrelatedAdvertiserID = "999888777"
	MalformedAdvertiserID = "1234ABC"
	AgentID               = "5678"

	AdvertisementLinkPath = "/advertisement"
	defaultJobTitle       = "Exciting Senior Developer role in a great CBD location. Great $$$"
)

// Advertisement ids used across tests. ExistingAdvertisementID was posted
// with ExistingCreationID.
var (
	AdvertisementID         = uuid.MustParse("75b2b1fc-9050-4f45-a632-ec6b7ac2bb4a")
	ExistingAdvertisementID = uuid.MustParse("8e2fde50-bc5f-4a12-9cfb-812e50500184")
	ExistingCreationID      = "CreationIdOf" + ExistingAdvertisementID.String()
)

// Option modifies a fixture advertisement.
type Option func(*domain.Advertisement)

// WithCreationID sets the creation id.
func WithCreationID(id string) Option {
	return func(a *domain.Advertisement) { a.CreationID = id }
}

// WithAdvertiserID sets the advertiser id.
func WithAdvertiserID(id string) Option {
	return func(a *domain.Advertisement) { a.ThirdParties.AdvertiserID = id }
}

// WithSalary sets the salary range.
func WithSalary(minimum, maximum float64) Option {
	return func(a *domain.Advertisement) {
		a.Salary.Minimum = minimum
		a.Salary.Maximum = maximum
	}
}

// WithTemplateItems replaces the template items.
func WithTemplateItems(items ...domain.TemplateItem) Option {
	return func(a *domain.Advertisement) {
		if a.Template == nil {
			a.Template = &domain.Template{}
		}
		a.Template.Items = items
	}
}

// WithAdvertisementDetails sets the advertisement details.
func WithAdvertisementDetails(details string) Option {
	return func(a *domain.Advertisement) { a.AdvertisementDetails = details }
}

// BadData applies the invalid values that the API rejects with one field
// error each; see BadDataErrors.
func BadData() Option {
	return func(a *domain.Advertisement) {
		a.CreationID = CreationIDBadData
		a.AdvertisementType = domain.AdvertisementStandOut
		a.Salary.Minimum = -1
		a.Video = &domain.Video{URL: "htp://www.youtube.com/v/abc", Position: domain.VideoBelow}
		a.Standout = &domain.Standout{Bullets: []string{
			"new Uzi",
			"new Remington Model" + strings.Repeat("!", 85-len("new Remington Model")),
			"new AK-47",
		}}
		a.ApplicationEmail = "someone(at)some.domain"
		a.ApplicationFormURL = "htp://somecompany.domain/apply"
		a.Template = &domain.Template{Items: []domain.TemplateItem{
			{Name: "Template Line 1", Value: "Template Value 1"},
			{Name: "", Value: "value2"},
		}}
	}
}

// BadDataErrors are the field errors reported for an advertisement built with BadData.
func BadDataErrors() []domain.ValidationData {
	return []domain.ValidationData{
		{Field: "applicationEmail", Code: "InvalidEmailAddress"},
		{Field: "applicationFormUrl", Code: "InvalidUrl"},
		{Field: "salary.minimum", Code: "ValueOutOfRange"},
		{Field: "standout.bullets[1]", Code: "MaxLengthExceeded"},
		{Field: "template.items[1].name", Code: "Required"},
		{Field: "video.url", Code: "RegexPatternNotMatched"},
	}
}

// MinimumAdvertisement returns an advertisement with only the required fields set.
func MinimumAdvertisement(opts ...Option) *domain.Advertisement {
	a := &domain.Advertisement{
		ThirdParties:         domain.ThirdParties{AdvertiserID: AdvertiserID},
		AdvertisementType:    domain.AdvertisementClassic,
		JobTitle:             defaultJobTitle,
		Location:             &domain.Location{ID: "1002", AreaID: "1012"},
		SubclassificationID:  "6227",
		WorkType:             domain.WorkFullTime,
		Salary:               domain.Salary{Type: domain.SalaryAnnualPackage, Minimum: 100000, Maximum: 119999},
		JobSummary:           "Developer job",
		AdvertisementDetails: defaultJobTitle,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FullAdvertisement returns an advertisement with every field set.
func FullAdvertisement(opts ...Option) *domain.Advertisement {
	a := MinimumAdvertisement()
	a.ThirdParties.AgentID = AgentID
	a.AdvertisementType = domain.AdvertisementStandOut
	a.SearchJobTitle = "Senior Developer, .NET Core, Scala, Team Leader, Agile Methodologies"
	a.Salary.Details = "We will attract the best candidates"
	a.Contact = &domain.Contact{Name: "Contact name", Phone: "Contact phone", Email: "qwert@asdf.com"}
	a.Video = &domain.Video{URL: "https://www.youtube.com/embed/dVDk7PXNXB8", Position: domain.VideoBelow}
	a.ApplicationEmail = "asdf@asdf.com"
	a.ApplicationFormURL = "http://apply.com/"
	a.ScreenID = 1
	a.JobReference = "JOB1234"
	a.AgentJobReference = "AGENTJOB1234"
	a.Template = &domain.Template{ID: 1, Items: []domain.TemplateItem{
		{Name: "Template Line 1", Value: "Template Value 1"},
		{Name: "Template Line 2", Value: "Template Value 2"},
	}}
	a.Standout = &domain.Standout{LogoID: 1, Bullets: []string{"Uzi", "Remington Model", "AK-47"}}
	a.AdditionalProperties = []domain.AdditionalPropertyType{domain.PropertyResidentsOnly, domain.PropertyGraduate}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resource returns the resource the API echoes for ad, with self and view links.
func Resource(id uuid.UUID, ad *domain.Advertisement, status domain.ProcessingStatus) *domain.AdvertisementResource {
	link := fmt.Sprintf("%s/%s", AdvertisementLinkPath, id)
	return &domain.AdvertisementResource{
		Advertisement: *ad,
		ID:            id,
		State:         domain.StateOpen,
		Links: map[string]domain.Link{
			domain.RelSelf: {Href: link},
			domain.RelView: {Href: link + "/view"},
		},
		ProcessingStatus: status,
	}
}

// ResourceJSON encodes the wire form of a resource.
func ResourceJSON(r *domain.AdvertisementResource) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Sprintf("encoding resource fixture: %v", err))
	}
	return b
}

// ValidationJSON encodes a 422 body.
func ValidationJSON(errs ...domain.ValidationData) []byte {
	b, err := json.Marshal(domain.ValidationMessage{Message: "Validation Failure", Errors: errs})
	if err != nil {
		panic(fmt.Sprintf("encoding validation fixture: %v", err))
	}
	return b
}

// ForbiddenJSON encodes a 403 body with one error per code.
func ForbiddenJSON(codes ...string) []byte {
	body := domain.ErrorResponse{Message: "Forbidden"}
	for _, c := range codes {
		body.Errors = append(body.Errors, domain.AdvertisementError{Code: c})
	}
	b, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("encoding forbidden fixture: %v", err))
	}
	return b
}

// IndexJSON encodes an index document rooted at base.
func IndexJSON(base string) []byte {
	return []byte(fmt.Sprintf(`{"_links":{`+
		`"advertisements":{"href":"%[1]s/advertisement"},`+
		`"advertisement":{"href":"%[1]s/advertisement/{advertisementId}","templated":true}}}`, base))
}
