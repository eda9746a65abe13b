package ner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestParseEntityJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Entity
		wantErr bool
	}{
		{
			name:    "plain JSON array",
			content: `[{"text":"Jane Doe","label":"PERSON"}]`,
			want:    []Entity{{Text: "Jane Doe", Label: "PERSON"}},
		},
		{
			name:    "json code fence",
			content: "```json\n[{\"text\":\"Google\",\"label\":\"ORG\"}]\n```",
			want:    []Entity{{Text: "Google", Label: "ORG"}},
		},
		{
			name:    "bare code fence",
			content: "```\n[{\"text\":\"Docker\",\"label\":\"PRODUCT\"}]\n```",
			want:    []Entity{{Text: "Docker", Label: "PRODUCT"}},
		},
		{
			name:    "incomplete entries are dropped",
			content: `[{"text":"Jane","label":"PERSON"},{"text":"","label":"ORG"},{"text":"x","label":""}]`,
			want:    []Entity{{Text: "Jane", Label: "PERSON"}},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []Entity{},
		},
		{
			name:    "malformed JSON",
			content: "sure, here are the entities: Jane Doe",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntityJSON(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseEntityJSON() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEntityJSON() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseEntityJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLLMRecognizerEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want 'test-model'", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Jane Doe resume text") {
			t.Errorf("prompt does not carry the input text: %+v", req.Messages)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{
					"content": `[{"text":"Jane Doe","label":"PERSON"}]`,
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	recognizer := NewLLMRecognizer(server.URL, "test-key", "test-model")
	entities, err := recognizer.Entities(context.Background(), "Jane Doe resume text")
	if err != nil {
		t.Fatalf("Entities() unexpected error: %v", err)
	}

	want := []Entity{{Text: "Jane Doe", Label: "PERSON"}}
	if !reflect.DeepEqual(entities, want) {
		t.Errorf("Entities() = %v, want %v", entities, want)
	}
}

func TestLLMRecognizerEmptyText(t *testing.T) {
	recognizer := NewLLMRecognizer("http://unused.invalid", "key", "model")

	entities, err := recognizer.Entities(context.Background(), "")
	if err != nil {
		t.Fatalf("Entities() unexpected error: %v", err)
	}
	if entities != nil {
		t.Errorf("Entities() = %v, want nil for empty input", entities)
	}
}

func TestLLMRecognizerErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "http error status",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"bad key"}}`,
			wantErr: "status 401",
		},
		{
			name:    "api error payload",
			status:  http.StatusOK,
			body:    `{"error":{"message":"quota exceeded"}}`,
			wantErr: "quota exceeded",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "malformed model output",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"content":"not json"}}]}`,
			wantErr: "malformed entity JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			recognizer := NewLLMRecognizer(server.URL, "key", "model")
			_, err := recognizer.Entities(context.Background(), "some text")
			if err == nil {
				t.Fatal("Entities() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Entities() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
