package parser

import "strings"

// SectionSegmenter buckets resume lines into named sections by matching each
// non-blank line against the header synonym phrases.
type SectionSegmenter struct {
	rules *Rules
}

// NewSectionSegmenter creates a segmenter using the given rules
func NewSectionSegmenter(rules *Rules) *SectionSegmenter {
	return &SectionSegmenter{rules: rules}
}

// Segment splits the text into lines and returns a mapping from section
// category to the concatenated line content following that header.
//
// Blank lines are skipped. A line whose lowercased form contains any synonym
// phrase is treated as a header: the in-progress buffer is flushed under the
// previous category and a new buffer starts under the matched one. The header
// line itself is not captured. Lines before the first header are dropped.
// An intermediate flush stores the buffer even when it is empty; the final
// flush after the last line stores only a non-empty buffer.
func (s *SectionSegmenter) Segment(text string) SectionMap {
	sections := SectionMap{}
	current := ""
	var content []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if category := s.matchHeader(line); category != "" {
			if current != "" {
				sections[current] = strings.Join(content, "\n")
			}
			current = category
			content = content[:0]
			continue
		}

		if current != "" {
			content = append(content, line)
		}
	}

	if current != "" && len(content) > 0 {
		sections[current] = strings.Join(content, "\n")
	}

	return sections
}

// matchHeader returns the first category whose synonym appears as a substring
// of the lowercased line, or "" when none matches.
func (s *SectionSegmenter) matchHeader(line string) string {
	lower := strings.ToLower(line)
	for _, rule := range s.rules.Sections {
		for _, synonym := range rule.Synonyms {
			if strings.Contains(lower, synonym) {
				return rule.Category
			}
		}
	}
	return ""
}
