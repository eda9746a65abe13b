// Package parser implements the resume parsing pipeline: text extraction,
// contact detection, section segmentation and skills extraction, composed
// sequentially per document.
package parser

import (
	"context"
	"log"
	"os"

	"github.com/DarshanCode2005/resume-parser/internal/extract"
	"github.com/DarshanCode2005/resume-parser/internal/ner"
)

// Parser orchestrates the pipeline stages over a single immutable text.
// The rules value is shared and never mutated, so a Parser may be reused
// across documents; concurrent use from multiple goroutines is not supported
// because the NER backend is treated as single-threaded.
type Parser struct {
	rules     *Rules
	extractor *extract.Service
	contacts  *ContactFinder
	sections  *SectionSegmenter
	skills    *SkillsExtractor
	logger    *log.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets a custom logger for the parser and its stages
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithRules replaces the default rule set
func WithRules(rules *Rules) Option {
	return func(p *Parser) {
		p.rules = rules
	}
}

// NewParser creates a parser around the extraction service and recognizer
func NewParser(extractor *extract.Service, recognizer ner.Recognizer, options ...Option) *Parser {
	p := &Parser{
		rules:     DefaultRules(),
		extractor: extractor,
		logger:    log.New(os.Stderr, "", log.LstdFlags),
	}

	for _, option := range options {
		option(p)
	}

	p.contacts = NewContactFinder(p.rules, recognizer, p.logger)
	p.sections = NewSectionSegmenter(p.rules)
	p.skills = NewSkillsExtractor(p.rules, recognizer, p.logger)

	return p
}

// Parse extracts the file's text and runs the heuristic stages over it,
// assembling the aggregate record. An extraction failure aborts the parse;
// the downstream stages read the same immutable text and cannot fail.
func (p *Parser) Parse(ctx context.Context, path string) (*Resume, error) {
	extracted, err := p.extractor.ExtractFile(extract.TextExtractRequest{Path: path})
	if err != nil {
		return nil, err
	}

	text := extracted.Text
	resume := &Resume{
		ContactInformation: p.contacts.Find(ctx, text),
		Sections:           p.sections.Segment(text),
		Skills:             p.skills.Extract(ctx, text),
	}

	return resume, nil
}

// ParseText runs the heuristic stages over already-extracted text. Useful
// when the caller obtained the text elsewhere.
func (p *Parser) ParseText(ctx context.Context, text string) *Resume {
	return &Resume{
		ContactInformation: p.contacts.Find(ctx, text),
		Sections:           p.sections.Segment(text),
		Skills:             p.skills.Extract(ctx, text),
	}
}

// Extractor exposes the underlying extraction service
func (p *Parser) Extractor() *extract.Service {
	return p.extractor
}
