// Package ner abstracts named-entity recognition behind a small capability
// interface so the parsing pipeline never depends on a concrete model.
package ner

import "context"

// Entity labels produced by the recognizers. Backends may emit labels beyond
// this set; consumers filter on the ones they care about.
const (
	LabelPerson       = "PERSON"
	LabelOrganization = "ORG"
	LabelProduct      = "PRODUCT"
	LabelPlace        = "GPE"
)

// Entity is a recognized text span with its label
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer produces labelled entity spans for arbitrary input text.
// Recall and precision are unspecified; callers treat results as best-effort.
type Recognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// Static is a fixed-response recognizer used in tests and as the "none"
// backend. A nil entity slice means the recognizer finds nothing.
type Static struct {
	Results []Entity
	Err     error
}

// Entities returns the configured results unconditionally
func (s *Static) Entities(_ context.Context, _ string) ([]Entity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Results, nil
}
