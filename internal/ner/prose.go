package ner

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs the pretrained small-English model shipped with the
// prose library. It is an in-process recognizer with no external dependencies.
// The default model emits PERSON and GPE labels; organizations and products
// are generally not recognized by it, which limits the entity half of skills
// extraction to what the keyword vocabulary catches.
//
// The underlying model is not documented as safe for concurrent use; treat a
// ProseRecognizer as single-threaded.
type ProseRecognizer struct{}

// NewProseRecognizer creates a recognizer backed by the prose NER model
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities runs the model over the text and returns every labelled span
func (r *ProseRecognizer) Entities(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(true),
		prose.WithTagging(true),
	)
	if err != nil {
		return nil, fmt.Errorf("prose document failed: %w", err)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	return entities, nil
}
