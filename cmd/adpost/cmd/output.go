package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/adposting/internal/adposting"
	"github.com/donaldgifford/adposting/internal/statussync"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Exit codes by error kind.
const (
	exitFailure       = 1
	exitNotFound      = 3
	exitAlreadyExists = 4
	exitUnauthorized  = 5
	exitValidation    = 6
	exitRequest       = 7
	exitParse         = 8
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printIndexTable(w io.Writer, idx *domain.Index) error {
	rels := make([]string, 0, len(idx.Links))
	for rel := range idx.Links {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	tw := newTabWriter(w)
	tw.writef("REL\tHREF\tTEMPLATED\n")
	for _, rel := range rels {
		l := idx.Links[rel]
		tw.writef("%s\t%s\t%v\n", rel, l.Href, l.Templated)
	}
	return tw.finish()
}

func printAdvertisementDetail(w io.Writer, r *domain.AdvertisementResource) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("Creation ID:\t%s\n", r.CreationID)
	tw.writef("Job Title:\t%s\n", r.JobTitle)
	tw.writef("Type:\t%s\n", r.AdvertisementType)
	tw.writef("Work Type:\t%s\n", r.WorkType)
	tw.writef("Advertiser:\t%s\n", r.ThirdParties.AdvertiserID)
	tw.writef("State:\t%s\n", r.State)
	tw.writef("Processing:\t%s\n", r.ProcessingStatus)
	if r.ExpiryDate != nil {
		tw.writef("Expires:\t%s\n", r.ExpiryDate.Format(timeLayout))
	}
	if self := r.Link(domain.RelSelf); self != "" {
		tw.writef("Self:\t%s\n", self)
	}
	if view := r.Link(domain.RelView); view != "" {
		tw.writef("View:\t%s\n", view)
	}
	for _, e := range r.Warnings {
		tw.writef("Warning:\t%s\n", formatAdvertisementError(e))
	}
	for _, e := range r.Errors {
		tw.writef("Error:\t%s\n", formatAdvertisementError(e))
	}
	return tw.finish()
}

func formatAdvertisementError(e domain.AdvertisementError) string {
	var sb strings.Builder
	sb.WriteString(e.Code)
	if e.Field != "" {
		sb.WriteString(" (" + e.Field + ")")
	}
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	return sb.String()
}

func printSubmissionsTable(w io.Writer, subs []domain.Submission) error {
	tw := newTabWriter(w)
	tw.writef("CREATION ID\tADVERTISEMENT\tTITLE\tSTATUS\tSTATE\tSUBMITTED\tUPDATED\n")
	for i := range subs {
		s := &subs[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.CreationID,
			s.AdvertisementID,
			truncate(s.JobTitle, 40),
			s.ProcessingStatus,
			s.State,
			s.SubmittedAt.Format(timeLayout),
			s.UpdatedAt.Format(timeLayout),
		)
	}
	return tw.finish()
}

func printSyncSummary(w io.Writer, sum *statussync.Summary) error {
	tw := newTabWriter(w)
	tw.writef("Checked:\t%d\n", sum.Checked)
	tw.writef("Transitions:\t%d\n", len(sum.Transitions))
	tw.writef("Failed:\t%d\n", sum.Failed)
	for i := range sum.Transitions {
		c := &sum.Transitions[i]
		tw.writef("%s\t%s -> %s\n", c.CreationID, c.From, c.To)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// printError writes err to w, with the details an API error carries.
func printError(w io.Writer, err error) {
	var apiErr adposting.APIError
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: %s (HTTP %d", apiErr.Kind(), apiErr.Status())
	if id := apiErr.CorrelationID(); id != "" {
		fmt.Fprintf(w, ", request %s", id)
	}
	fmt.Fprintln(w, ")")

	var (
		validationErr   *adposting.ValidationError
		unauthorizedErr *adposting.UnauthorizedError
		existsErr       *adposting.AlreadyExistsError
	)
	switch {
	case errors.As(err, &validationErr):
		fmt.Fprintln(w, validationErr.Validation.Message)
		tw := newTabWriter(w)
		tw.writef("FIELD\tCODE\n")
		for _, d := range validationErr.Validation.Errors {
			tw.writef("%s\t%s\n", d.Field, d.Code)
		}
		_ = tw.finish()
	case errors.As(err, &unauthorizedErr):
		if unauthorizedErr.Message != "" {
			fmt.Fprintln(w, unauthorizedErr.Message)
		}
		for _, e := range unauthorizedErr.Errors {
			fmt.Fprintf(w, "  %s\n", formatAdvertisementError(e))
		}
	case errors.As(err, &existsErr):
		if existsErr.Location != nil {
			fmt.Fprintf(w, "Existing advertisement: %s\n", existsErr.Location)
		}
	default:
		fmt.Fprintln(w, err)
	}
}

func exitCode(err error) int {
	switch adposting.KindOf(err) {
	case adposting.KindNotFound:
		return exitNotFound
	case adposting.KindAlreadyExists:
		return exitAlreadyExists
	case adposting.KindUnauthorized:
		return exitUnauthorized
	case adposting.KindValidation:
		return exitValidation
	case adposting.KindRequest:
		return exitRequest
	case adposting.KindParse:
		return exitParse
	default:
		return exitFailure
	}
}
