// Package domain defines the advertisement types exchanged with the Ad Posting API.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// AdvertisementType is the product an advertisement is posted as.
type AdvertisementType string

// Advertisement type constants.
const (
	AdvertisementClassic  AdvertisementType = "Classic"
	AdvertisementStandOut AdvertisementType = "StandOut"
	AdvertisementPremium  AdvertisementType = "Premium"
)

// WorkType is the employment arrangement of the advertised job.
type WorkType string

// Work type constants.
const (
	WorkFullTime     WorkType = "FullTime"
	WorkPartTime     WorkType = "PartTime"
	WorkContractTemp WorkType = "ContractTemp"
	WorkCasual       WorkType = "Casual"
)

// SalaryType describes how the salary range is expressed.
type SalaryType string

// Salary type constants.
const (
	SalaryAnnualPackage    SalaryType = "AnnualPackage"
	SalaryAnnualCommission SalaryType = "AnnualCommission"
	SalaryHourlyRate       SalaryType = "HourlyRate"
)

// VideoPosition places an embedded video relative to the advertisement details.
type VideoPosition string

// Video position constants.
const (
	VideoAbove VideoPosition = "Above"
	VideoBelow VideoPosition = "Below"
)

// AdditionalPropertyType flags an advertisement with an extra posting property.
type AdditionalPropertyType string

// Additional property constants.
const (
	PropertyResidentsOnly AdditionalPropertyType = "ResidentsOnly"
	PropertyGraduate      AdditionalPropertyType = "Graduate"
)

// AdvertisementState is the lifecycle state of a posted advertisement.
type AdvertisementState string

// Advertisement state constants.
const (
	StateOpen    AdvertisementState = "Open"
	StateExpired AdvertisementState = "Expired"
)

// ProcessingStatus is the asynchronous moderation state reported in the
// Processing-Status response header.
type ProcessingStatus string

// Processing status constants.
const (
	ProcessingPending  ProcessingStatus = "Pending"
	ProcessingAccepted ProcessingStatus = "Accepted"
	ProcessingFailed   ProcessingStatus = "Failed"
)

// ParseProcessingStatus maps a Processing-Status header value to a status.
// An absent or unrecognised value means the advertisement was accepted.
func ParseProcessingStatus(v string) ProcessingStatus {
	switch ProcessingStatus(v) {
	case ProcessingPending:
		return ProcessingPending
	case ProcessingFailed:
		return ProcessingFailed
	default:
		return ProcessingAccepted
	}
}

// ThirdParties identifies the advertiser and, optionally, the agent posting
// on the advertiser's behalf.
type ThirdParties struct {
	AdvertiserID string `json:"advertiserId"      yaml:"advertiserId"`
	AgentID      string `json:"agentId,omitempty" yaml:"agentId,omitempty"`
}

// Location is the granular location of the job.
type Location struct {
	ID     string `json:"id"               yaml:"id"`
	AreaID string `json:"areaId,omitempty" yaml:"areaId,omitempty"`
}

// Salary is the advertised remuneration range.
type Salary struct {
	Type    SalaryType `json:"type"              yaml:"type"`
	Minimum float64    `json:"minimum"           yaml:"minimum"`
	Maximum float64    `json:"maximum"           yaml:"maximum"`
	Details string     `json:"details,omitempty" yaml:"details,omitempty"`
}

// Contact holds the recruiter's contact details.
type Contact struct {
	Name  string `json:"name"            yaml:"name"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Video is an embedded video shown with the advertisement.
type Video struct {
	URL      string        `json:"url"      yaml:"url"`
	Position VideoPosition `json:"position" yaml:"position"`
}

// TemplateItem is a named value substituted into an advertiser template.
type TemplateItem struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Template selects an advertiser template and its item values.
type Template struct {
	ID    int            `json:"id,omitempty"    yaml:"id,omitempty"`
	Items []TemplateItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// Standout holds the extras of a StandOut advertisement.
type Standout struct {
	LogoID  int      `json:"logoId,omitempty"  yaml:"logoId,omitempty"`
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

// Advertisement is the request model: the business fields of a job ad.
type Advertisement struct {
	ThirdParties         ThirdParties             `json:"thirdParties"                   yaml:"thirdParties"`
	CreationID           string                   `json:"creationId,omitempty"           yaml:"creationId,omitempty"`
	AdvertisementType    AdvertisementType        `json:"advertisementType"              yaml:"advertisementType"`
	JobTitle             string                   `json:"jobTitle"                       yaml:"jobTitle"`
	SearchJobTitle       string                   `json:"searchJobTitle,omitempty"       yaml:"searchJobTitle,omitempty"`
	Location             *Location                `json:"location,omitempty"             yaml:"location,omitempty"`
	SubclassificationID  string                   `json:"subclassificationId"            yaml:"subclassificationId"`
	WorkType             WorkType                 `json:"workType"                       yaml:"workType"`
	Salary               Salary                   `json:"salary"                         yaml:"salary"`
	JobSummary           string                   `json:"jobSummary"                     yaml:"jobSummary"`
	AdvertisementDetails string                   `json:"advertisementDetails"           yaml:"advertisementDetails"`
	Contact              *Contact                 `json:"contact,omitempty"              yaml:"contact,omitempty"`
	Video                *Video                   `json:"video,omitempty"                yaml:"video,omitempty"`
	ApplicationEmail     string                   `json:"applicationEmail,omitempty"     yaml:"applicationEmail,omitempty"`
	ApplicationFormURL   string                   `json:"applicationFormUrl,omitempty"   yaml:"applicationFormUrl,omitempty"`
	ScreenID             int                      `json:"screenId,omitempty"             yaml:"screenId,omitempty"`
	JobReference         string                   `json:"jobReference,omitempty"         yaml:"jobReference,omitempty"`
	AgentJobReference    string                   `json:"agentJobReference,omitempty"    yaml:"agentJobReference,omitempty"`
	Template             *Template                `json:"template,omitempty"             yaml:"template,omitempty"`
	Standout             *Standout                `json:"standout,omitempty"             yaml:"standout,omitempty"`
	AdditionalProperties []AdditionalPropertyType `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// HasProperty reports whether the advertisement carries the given additional property.
func (a *Advertisement) HasProperty(p AdditionalPropertyType) bool {
	return slices.Contains(a.AdditionalProperties, p)
}

// Link is a single HAL hyperlink.
type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

// Link relation names used by the API.
const (
	RelSelf           = "self"
	RelView           = "view"
	RelAdvertisements = "advertisements"
	RelAdvertisement  = "advertisement"
)

// AdvertisementError is a warning or error attached to an advertisement, or a
// single entry of an error response. Field is a dot/bracket path and may be empty.
type AdvertisementError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// AdvertisementResource is an advertisement as returned by the server. It is
// built once from a response and not modified afterwards.
type AdvertisementResource struct {
	Advertisement

	ID               uuid.UUID            `json:"id"`
	State            AdvertisementState   `json:"state,omitempty"`
	ExpiryDate       *time.Time           `json:"expiryDate,omitempty"`
	Links            map[string]Link      `json:"_links,omitempty"`
	Warnings         []AdvertisementError `json:"warnings,omitempty"`
	Errors           []AdvertisementError `json:"errors,omitempty"`
	ProcessingStatus ProcessingStatus     `json:"-"`
}

// Link returns the href of the named link relation, or "" when absent.
func (r *AdvertisementResource) Link(rel string) string {
	return r.Links[rel].Href
}

// ValidationData is one field-level validation failure.
type ValidationData struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// ValidationMessage is the body of a 422 response.
type ValidationMessage struct {
	Message string           `json:"message"`
	Errors  []ValidationData `json:"errors,omitempty"`
}

// ErrorResponse is the body of a 403 response.
type ErrorResponse struct {
	Message string               `json:"message"`
	Errors  []AdvertisementError `json:"errors,omitempty"`
}

// Index is the API root document listing the link relations a client can follow.
type Index struct {
	Links map[string]Link `json:"_links"`
}

// Submission is the local journal record of an advertisement posted by this client.
type Submission struct {
	CreationID       string             `json:"creation_id"       db:"creation_id"`
	AdvertisementID  uuid.UUID          `json:"advertisement_id"  db:"advertisement_id"`
	Location         string             `json:"location"          db:"location"`
	JobTitle         string             `json:"job_title"         db:"job_title"`
	ProcessingStatus ProcessingStatus   `json:"processing_status" db:"processing_status"`
	State            AdvertisementState `json:"state"             db:"state"`
	LastRequestID    string             `json:"last_request_id"   db:"last_request_id"`
	SubmittedAt      time.Time          `json:"submitted_at"      db:"submitted_at"`
	UpdatedAt        time.Time          `json:"updated_at"        db:"updated_at"`
}
