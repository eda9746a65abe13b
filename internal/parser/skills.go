package parser

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/DarshanCode2005/resume-parser/internal/ner"
)

// SkillsExtractor collects skills from two sources: exact token matches
// against the closed vocabulary, and ORG/PRODUCT entities recognized in the
// full text. No frequency counts, no ranking, no stemming.
type SkillsExtractor struct {
	rules      *Rules
	recognizer ner.Recognizer
	logger     *log.Logger
}

// NewSkillsExtractor creates a skills extractor using the given rules and recognizer
func NewSkillsExtractor(rules *Rules, recognizer ner.Recognizer, logger *log.Logger) *SkillsExtractor {
	return &SkillsExtractor{
		rules:      rules,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Extract returns the deduplicated set of lowercase skills found in the text,
// sorted for deterministic output.
func (e *SkillsExtractor) Extract(ctx context.Context, text string) []string {
	found := map[string]struct{}{}

	tokens := strings.Fields(strings.ToLower(text))
	for _, entry := range e.rules.Vocabulary {
		if matchVocabulary(tokens, entry) {
			found[entry] = struct{}{}
		}
	}

	e.addEntitySkills(ctx, text, found)

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// addEntitySkills adds lowercase entity text for every ORG or PRODUCT entity.
// Unlike name detection, the recognizer sees the full text here. Failures
// degrade to vocabulary-only results.
func (e *SkillsExtractor) addEntitySkills(ctx context.Context, text string, found map[string]struct{}) {
	if e.recognizer == nil {
		return
	}

	entities, err := e.recognizer.Entities(ctx, text)
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("entity skill recognition failed: %v", err)
		}
		return
	}

	for _, ent := range entities {
		if ent.Label == ner.LabelOrganization || ent.Label == ner.LabelProduct {
			found[strings.ToLower(ent.Text)] = struct{}{}
		}
	}
}

// matchVocabulary reports whether the vocabulary entry occurs in the token
// stream. Single-word entries must match a token exactly; multi-word entries
// must match a run of adjacent tokens.
func matchVocabulary(tokens []string, entry string) bool {
	words := strings.Fields(entry)
	if len(words) == 1 {
		for _, token := range tokens {
			if token == entry {
				return true
			}
		}
		return false
	}

	for i := 0; i+len(words) <= len(tokens); i++ {
		matched := true
		for j, word := range words {
			if tokens[i+j] != word {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
