package parser

import (
	"context"
	"errors"
	"log"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/DarshanCode2005/resume-parser/internal/ner"
)

func TestSkillsExtractorVocabulary(t *testing.T) {
	extractor := NewSkillsExtractor(DefaultRules(), nil, nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single token match",
			text: "Experienced with Python and Docker",
			want: []string{"docker", "python"},
		},
		{
			name: "matching is case-insensitive",
			text: "PYTHON JAVA",
			want: []string{"java", "python"},
		},
		{
			name: "substring of a token does not match",
			text: "pythonic javascripty",
			want: []string{},
		},
		{
			name: "multi-word entry over adjacent tokens",
			text: "focus on machine learning systems",
			want: []string{"machine learning"},
		},
		{
			name: "multi-word entry split across other tokens does not match",
			text: "machine and learning",
			want: []string{},
		},
		{
			name: "duplicates are collapsed",
			text: "python python python",
			want: []string{"python"},
		},
		{
			name: "no matches",
			text: "carpentry and welding",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(context.Background(), tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkillsExtractorEntities(t *testing.T) {
	recognizer := &ner.Static{Results: []ner.Entity{
		{Text: "Kubernetes", Label: ner.LabelProduct},
		{Text: "Google", Label: ner.LabelOrganization},
		{Text: "Jane Doe", Label: ner.LabelPerson},
		{Text: "London", Label: ner.LabelPlace},
	}}
	extractor := NewSkillsExtractor(DefaultRules(), recognizer, nil)

	got := extractor.Extract(context.Background(), "worked with python at scale")

	// ORG and PRODUCT entities are lowercased and merged with vocabulary
	// hits; PERSON and GPE entities are ignored.
	want := []string{"google", "kubernetes", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSkillsExtractorOutputIsSorted(t *testing.T) {
	extractor := NewSkillsExtractor(DefaultRules(), nil, nil)

	got := extractor.Extract(context.Background(), "sql react aws docker java")
	if !sort.StringsAreSorted(got) {
		t.Errorf("Extract() output not sorted: %v", got)
	}
	if len(got) != 5 {
		t.Errorf("Extract() returned %d skills, want 5: %v", len(got), got)
	}
}

func TestSkillsExtractorRecognizerErrorDegrades(t *testing.T) {
	var buf strings.Builder
	logger := log.New(&buf, "", 0)
	recognizer := &ner.Static{Err: errors.New("model unavailable")}
	extractor := NewSkillsExtractor(DefaultRules(), recognizer, logger)

	got := extractor.Extract(context.Background(), "python everywhere")

	if !reflect.DeepEqual(got, []string{"python"}) {
		t.Errorf("expected vocabulary-only result on recognizer failure, got %v", got)
	}
	if !strings.Contains(buf.String(), "entity skill recognition failed") {
		t.Errorf("expected a logged recognition failure, got %q", buf.String())
	}
}

func TestMatchVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		entry  string
		want   bool
	}{
		{name: "exact token", tokens: []string{"uses", "python"}, entry: "python", want: true},
		{name: "partial token", tokens: []string{"pythonic"}, entry: "python", want: false},
		{name: "adjacent run", tokens: []string{"deep", "machine", "learning"}, entry: "machine learning", want: true},
		{name: "run at start", tokens: []string{"machine", "learning", "lead"}, entry: "machine learning", want: true},
		{name: "interrupted run", tokens: []string{"machine", "deep", "learning"}, entry: "machine learning", want: false},
		{name: "entry longer than tokens", tokens: []string{"machine"}, entry: "machine learning", want: false},
		{name: "empty tokens", tokens: nil, entry: "python", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchVocabulary(tt.tokens, tt.entry); got != tt.want {
				t.Errorf("matchVocabulary(%v, %q) = %v, want %v", tt.tokens, tt.entry, got, tt.want)
			}
		})
	}
}
