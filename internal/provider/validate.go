package provider

import (
	_ "embed"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Validation codes reported in 422 responses.
const (
	CodeRequired               = "Required"
	CodeInvalidValue           = "InvalidValue"
	CodeInvalidFormat          = "InvalidFormat"
	CodeInvalidURL             = "InvalidUrl"
	CodeInvalidEmailAddress    = "InvalidEmailAddress"
	CodeMaxLengthExceeded      = "MaxLengthExceeded"
	CodeValueOutOfRange        = "ValueOutOfRange"
	CodeRegexPatternNotMatched = "RegexPatternNotMatched"
	CodeAlreadySpecified       = "AlreadySpecified"
)

// rootField is how gojsonschema names the document root.
const rootField = "(root)"

//go:embed schema/advertisement.json
var advertisementSchemaJSON []byte

var advertisementSchema = mustSchema(advertisementSchemaJSON)

func mustSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("compiling advertisement schema: %v", err))
	}
	return s
}

// Validate checks an advertisement payload against the schema and the
// semantic rules of the API. raw must be the JSON body the advertisement was
// decoded from. The result is sorted by field.
func Validate(raw []byte, ad *domain.Advertisement, requireCreationID bool) ([]domain.ValidationData, error) {
	result, err := advertisementSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validating advertisement: %w", err)
	}

	errs := make([]domain.ValidationData, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, schemaError(re))
	}
	errs = append(errs, semanticErrors(ad, requireCreationID)...)

	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Field != errs[j].Field {
			return errs[i].Field < errs[j].Field
		}
		return errs[i].Code < errs[j].Code
	})
	return dedupe(errs), nil
}

func schemaError(re gojsonschema.ResultError) domain.ValidationData {
	field := re.Field()
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			switch {
			case field == rootField:
				field = prop
			case !strings.HasSuffix(field, "."+prop) && field != prop:
				field += "." + prop
			}
		}
	}
	return domain.ValidationData{Field: bracketPath(field), Code: schemaCode(re.Type())}
}

func schemaCode(errType string) string {
	switch errType {
	case "required", "string_gte":
		return CodeRequired
	case "string_lte", "array_max_items":
		return CodeMaxLengthExceeded
	case "number_gte", "number_gt", "number_lte", "number_lt":
		return CodeValueOutOfRange
	case "pattern":
		return CodeRegexPatternNotMatched
	case "invalid_type":
		return CodeInvalidFormat
	default:
		return CodeInvalidValue
	}
}

// bracketPath turns "standout.bullets.1" into "standout.bullets[1]".
func bracketPath(field string) string {
	parts := strings.Split(field, ".")
	var sb strings.Builder
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil && i > 0 {
			fmt.Fprintf(&sb, "[%s]", p)
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p)
	}
	return sb.String()
}

func semanticErrors(ad *domain.Advertisement, requireCreationID bool) []domain.ValidationData {
	var errs []domain.ValidationData
	add := func(field, code string) {
		errs = append(errs, domain.ValidationData{Field: field, Code: code})
	}

	if requireCreationID && ad.CreationID == "" {
		add("creationId", CodeRequired)
	}

	if ad.Salary.Minimum >= 0 && ad.Salary.Maximum >= 0 && ad.Salary.Minimum > ad.Salary.Maximum {
		add("salary.maximum", CodeInvalidValue)
	}

	if ad.ApplicationEmail != "" && !validEmail(ad.ApplicationEmail) {
		add("applicationEmail", CodeInvalidEmailAddress)
	}

	if ad.ApplicationFormURL != "" && !validHTTPURL(ad.ApplicationFormURL) {
		add("applicationFormUrl", CodeInvalidURL)
	}

	if strings.Contains(strings.ToLower(ad.AdvertisementDetails), "<script") {
		add("advertisementDetails", CodeInvalidFormat)
	}

	if ad.Template != nil {
		seen := make(map[string]bool, len(ad.Template.Items))
		for i, item := range ad.Template.Items {
			if item.Name == "" {
				continue
			}
			key := strings.ToLower(item.Name)
			if seen[key] {
				add(fmt.Sprintf("template.items[%d].name", i), CodeAlreadySpecified)
			}
			seen[key] = true
		}
	}

	return errs
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func dedupe(errs []domain.ValidationData) []domain.ValidationData {
	out := errs[:0]
	for i, e := range errs {
		if i > 0 && e == errs[i-1] {
			continue
		}
		out = append(out, e)
	}
	return out
}
