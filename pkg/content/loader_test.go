package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	c, err := Load(context.Background(), filepath.Join("testdata", "site.json"))
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	if c.Hero.Name != "Jane Example" {
		t.Errorf("Expected hero name 'Jane Example', got %q", c.Hero.Name)
	}

	if len(c.Experiences) != 2 {
		t.Fatalf("Expected 2 experiences, got %d", len(c.Experiences))
	}

	if !c.Experiences[1].IsSmall() {
		t.Error("Expected second experience to be small-scale")
	}

	if c.Experiences[0].Description[0].Type != DescriptionAchievement {
		t.Errorf("Expected achievement line, got %q", c.Experiences[0].Description[0].Type)
	}

	if got := c.SkillsSection.Categories[CategoryProgramming].In(German); got != "Programmierung" {
		t.Errorf("Expected category label 'Programmierung', got %q", got)
	}

	if got := c.Projects[0].Tags[1].Resolve(German); got != "Beobachtbarkeit" {
		t.Errorf("Expected localized project tag, got %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	c, err := Load(context.Background(), filepath.Join("testdata", "site.yaml"))
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	if got := c.Experiences[0].Period.In(German); got != "Jan 2021 - Heute" {
		t.Errorf("Expected German period, got %q", got)
	}

	if len(c.Projects[0].Tags) != 2 || c.Projects[0].Tags[0].IsLocalized() {
		t.Errorf("Expected a plain tag followed by a localized tag, got %v", c.Projects[0].Tags)
	}
}

func TestLoadFromURL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "site.json"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	c, err := Load(context.Background(), server.URL+"/content.json")
	if err != nil {
		t.Fatalf("Failed to load content from URL: %v", err)
	}

	if len(c.Skills) != 2 {
		t.Errorf("Expected 2 skills, got %d", len(c.Skills))
	}
}

func TestParseShapeErrors(t *testing.T) {
	cases := []struct {
		name      string
		doc       string
		wantField string
	}{
		{
			name:      "missing experiences",
			doc:       `{"skills": []}`,
			wantField: "experiences",
		},
		{
			name:      "missing skills",
			doc:       `{"experiences": []}`,
			wantField: "skills",
		},
		{
			name:      "empty document",
			doc:       `null`,
			wantField: "(root)",
		},
		{
			name:      "level out of range",
			doc:       `{"experiences": [], "skills": [{"name": {"en": "Go"}, "category": "programming", "level": 9}]}`,
			wantField: "skills.0.level",
		},
		{
			name:      "unknown category",
			doc:       `{"experiences": [], "skills": [{"name": {"en": "Go"}, "category": "cooking", "level": 3}]}`,
			wantField: "skills.0.category",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), EncodingJSON)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			if !errors.Is(err, ErrContentShape) {
				t.Fatalf("Expected ErrContentShape, got %v", err)
			}

			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("Expected *ShapeError, got %T", err)
			}
			if shapeErr.Field != tc.wantField {
				t.Errorf("Expected field %q, got %q", tc.wantField, shapeErr.Field)
			}
		})
	}
}

func TestParseEmptyCollectionsAreValid(t *testing.T) {
	c, err := Parse([]byte(`{"experiences": [], "skills": []}`), EncodingJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if c.Experiences == nil || c.Skills == nil {
		t.Error("Expected empty, non-nil collections")
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"experiences": [`), EncodingJSON)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if errors.Is(err, ErrContentShape) {
		t.Error("Expected a syntax error, not a shape error")
	}
}

func TestEncodingFor(t *testing.T) {
	cases := []struct {
		location string
		want     Encoding
	}{
		{location: "content.json", want: EncodingJSON},
		{location: "content.YAML", want: EncodingYAML},
		{location: "/srv/site/content.yml", want: EncodingYAML},
		{location: "https://example.com/content.yaml?rev=3", want: EncodingYAML},
		{location: "https://example.com/api/content", want: EncodingJSON},
	}

	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			if got := EncodingFor(tc.location); got != tc.want {
				t.Errorf("EncodingFor(%q) = %q, want %q", tc.location, got, tc.want)
			}
		})
	}
}

func TestValidateTypedContent(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(c *SiteContent)
		wantField string
	}{
		{
			name:      "level above range",
			edit:      func(c *SiteContent) { c.Skills[0].Level = 9 },
			wantField: "skills.0.level",
		},
		{
			name:      "level below range",
			edit:      func(c *SiteContent) { c.Skills[1].Level = 0 },
			wantField: "skills.1.level",
		},
		{
			name:      "unknown category",
			edit:      func(c *SiteContent) { c.Skills[0].Category = "bogus" },
			wantField: "skills.0.category",
		},
		{
			name:      "missing skills",
			edit:      func(c *SiteContent) { c.Skills = nil },
			wantField: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(context.Background(), filepath.Join("testdata", "site.json"))
			if err != nil {
				t.Fatalf("Failed to load content: %v", err)
			}
			c.Skills = append([]Skill(nil), c.Skills...)
			tt.edit(&c)

			err = c.Validate()
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("Expected a shape error, got %v", err)
			}
			if shapeErr.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, shapeErr.Field)
			}
		})
	}
}

func TestEncodeRoundTripKeepsTagShapes(t *testing.T) {
	c, err := Load(context.Background(), filepath.Join("testdata", "site.json"))
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	data, err := Encode(c, EncodingJSON)
	if err != nil {
		t.Fatalf("Failed to encode content: %v", err)
	}

	if !strings.Contains(string(data), `"Go"`) {
		t.Error("Expected plain tag to stay a string")
	}

	again, err := Parse(data, EncodingJSON)
	if err != nil {
		t.Fatalf("Encoded content no longer parses: %v", err)
	}
	if again.Hero.Name != c.Hero.Name {
		t.Errorf("Hero name changed: %q", again.Hero.Name)
	}
}

func TestFetchFromFileEmpty(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty.json")

	err := os.WriteFile(emptyFile, []byte(""), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err = Fetch(context.Background(), emptyFile)
	if err == nil {
		t.Error("Expected error fetching empty file, got nil")
	}
}

func TestFetchFromURLNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}
