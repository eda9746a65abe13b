package parser

import "regexp"

// SectionRule associates a section category with the header phrases that
// indicate it. Matching is lowercase substring containment against the whole
// line, so a body line that merely mentions a phrase is taken for a header.
// That misfire is a documented property of the heuristic, kept deliberately.
type SectionRule struct {
	Category string
	Synonyms []string
}

// Rules is the immutable configuration shared by the pipeline stages:
// contact regex patterns, section header synonyms and the skills vocabulary.
// It is built once at startup and never mutated, so a single value can be
// reused across parses.
type Rules struct {
	// Contact patterns in scan order. All are applied case-insensitively
	// over the entire text; only the first match of each is kept.
	Email    *regexp.Regexp
	Phone    *regexp.Regexp
	LinkedIn *regexp.Regexp
	GitHub   *regexp.Regexp

	// NameWindow bounds how much of the document head is handed to the name
	// recognizer, on the assumption that the candidate name appears near the top.
	NameWindow int

	// Sections are tried in order for every non-blank line; the first
	// matching category wins.
	Sections []SectionRule

	// Vocabulary is the closed set of skill terms matched against
	// whitespace tokens of the lowercased text. Multi-word entries are
	// matched over runs of adjacent tokens.
	Vocabulary []string
}

// DefaultRules returns the built-in rule set.
//
// The phone pattern is a heuristic: optional +country code (1-3 digits),
// optional parenthesized 3-digit area code, separators among "-", "." and
// space, then 3 digits, separator, 4 digits. International formats outside
// this shape are not recognized.
func DefaultRules() *Rules {
	return &Rules{
		Email:    regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w+`),
		Phone:    regexp.MustCompile(`(?i)(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		LinkedIn: regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+/?`),
		GitHub:   regexp.MustCompile(`(?i)github\.com/[\w-]+/?`),

		NameWindow: 1000,

		Sections: []SectionRule{
			{
				Category: SectionEducation,
				Synonyms: []string{"education", "academic background", "qualifications"},
			},
			{
				Category: SectionExperience,
				Synonyms: []string{"experience", "work experience", "employment history", "work history"},
			},
			{
				Category: SectionSkills,
				Synonyms: []string{"skills", "technical skills", "competencies", "expertise"},
			},
			{
				Category: SectionProjects,
				Synonyms: []string{"projects", "personal projects", "academic projects"},
			},
			{
				Category: SectionCertifications,
				Synonyms: []string{"certifications", "certificates", "professional certifications"},
			},
		},

		Vocabulary: []string{
			"python", "java", "javascript", "html", "css", "sql", "react",
			"node.js", "aws", "docker", "kubernetes", "machine learning",
		},
	}
}
