package pipeline

import (
	"github.com/google/uuid"

	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/fetch"
	"github.com/Sumluvv/pagefeed/internal/model"
)

// Run is the state of one segmentation call as it moves through the pipeline.
// Steps read what earlier steps stored and record their own output here.
type Run struct {
	// ID identifies the call in logs.
	ID string

	// URL is the page requested by the caller.
	URL string

	// Mode selects the strategies to run.
	Mode model.Mode

	// State is the current stage of the state machine.
	State model.State

	// Page is the fetched page. It is set by the fetch step, or up front
	// when the caller already holds the markup.
	Page *fetch.Page

	// Static is the parsed fetched markup, nil if it could not be parsed.
	Static *dom.Document

	// Snapshot is the parsed rendered markup, nil unless fallback rendering succeeded.
	Snapshot *dom.Document

	// Groups are the groups found so far, labels already inferred.
	Groups []model.Group

	// Rendered reports whether Groups came from rendered markup.
	Rendered bool

	// Result is set by the formatting step.
	Result *model.PageResult

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string

	// Err is the error of the step that stopped the run, if any.
	Err error
}

// NewRun creates a Run in the idle state with a fresh ID.
func NewRun(pageURL string, mode model.Mode) *Run {
	return &Run{
		ID:             uuid.NewString(),
		URL:            pageURL,
		Mode:           mode,
		State:          model.StateIdle,
		PerformedSteps: make([]string, 0),
	}
}

// BaseURL is the URL links are resolved against: the final URL after
// redirects when the page has been fetched, the requested URL otherwise.
func (r *Run) BaseURL() string {
	if r.Page != nil && r.Page.FinalURL != "" {
		return r.Page.FinalURL
	}
	return r.URL
}
