package parser

import (
	"context"
	"log"

	"github.com/DarshanCode2005/resume-parser/internal/ner"
)

// ContactFinder scans resume text for contact details. The four regex fields
// are first-match-in-document-order, not most-relevant; the name comes from
// the entity recognizer over the head of the document only.
type ContactFinder struct {
	rules      *Rules
	recognizer ner.Recognizer
	logger     *log.Logger
}

// NewContactFinder creates a contact finder using the given rules and recognizer
func NewContactFinder(rules *Rules, recognizer ner.Recognizer, logger *log.Logger) *ContactFinder {
	return &ContactFinder{
		rules:      rules,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Find returns a mapping of contact fields to matched substrings. Fields
// without a match are omitted; absence is never an error. A recognizer
// failure degrades to "no name" so the regex fields still come through.
func (f *ContactFinder) Find(ctx context.Context, text string) ContactInfo {
	info := ContactInfo{}

	if m := f.rules.Email.FindString(text); m != "" {
		info[FieldEmail] = m
	}
	if m := f.rules.Phone.FindString(text); m != "" {
		info[FieldPhone] = m
	}
	if m := f.rules.LinkedIn.FindString(text); m != "" {
		info[FieldLinkedIn] = m
	}
	if m := f.rules.GitHub.FindString(text); m != "" {
		info[FieldGitHub] = m
	}

	if name := f.findName(ctx, text); name != "" {
		info[FieldName] = name
	}

	return info
}

// findName runs NER over the head of the text and takes the first PERSON
// entity. Known failure modes (titles or companies mistaken for names) are
// accepted as part of the heuristic.
func (f *ContactFinder) findName(ctx context.Context, text string) string {
	if f.recognizer == nil {
		return ""
	}

	entities, err := f.recognizer.Entities(ctx, headOfText(text, f.rules.NameWindow))
	if err != nil {
		if f.logger != nil {
			f.logger.Printf("name recognition failed: %v", err)
		}
		return ""
	}

	for _, ent := range entities {
		if ent.Label == ner.LabelPerson {
			return ent.Text
		}
	}
	return ""
}

// headOfText truncates to at most n runes without splitting a UTF-8 sequence
func headOfText(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
