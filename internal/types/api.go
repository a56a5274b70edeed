package types

import "strings"

// nlQueryMarker in a free-form query switches the summary to plain English.
const nlQueryMarker = "explain issues in plain english"

// ReviewRequest is the contract of the review entry point.
type ReviewRequest struct {
	RepoOwner       string `json:"repo_owner"`
	RepoName        string `json:"repo_name"`
	PRNumber        int    `json:"pr_number"`
	NaturalLanguage bool   `json:"natural_language"`
	Query           string `json:"query,omitempty"`
	Inline          *bool  `json:"inline,omitempty"`
}

// Validate checks required fields and returns a ValidationError on the
// first malformed one.
func (r *ReviewRequest) Validate() error {
	if strings.TrimSpace(r.RepoOwner) == "" {
		return &ValidationError{Field: "repo_owner", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.RepoName) == "" {
		return &ValidationError{Field: "repo_name", Reason: "must not be empty"}
	}
	if r.PRNumber <= 0 {
		return &ValidationError{Field: "pr_number", Reason: "must be a positive integer"}
	}
	return nil
}

// WantsNaturalLanguage reports whether the summary should be generated in
// plain English, either via the flag or a query that asks for it.
func (r *ReviewRequest) WantsNaturalLanguage() bool {
	if r.NaturalLanguage {
		return true
	}
	return strings.Contains(strings.ToLower(r.Query), nlQueryMarker)
}

// WantsSummary reports whether any summary was requested at all.
func (r *ReviewRequest) WantsSummary() bool {
	return r.NaturalLanguage || strings.TrimSpace(r.Query) != ""
}

// WantsInline reports whether inline comments were requested. Defaults to
// true when the field is omitted.
func (r *ReviewRequest) WantsInline() bool {
	if r.Inline == nil {
		return true
	}
	return *r.Inline
}

// HealthResponse is the healthz payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error payload of the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}
