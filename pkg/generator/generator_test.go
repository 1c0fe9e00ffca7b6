package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/content/contenttest"
	"github.com/nikogura/portfolio-cv/pkg/cv"
	"github.com/nikogura/portfolio-cv/pkg/renderer"
	"github.com/nikogura/portfolio-cv/pkg/storage"
)

//nolint:gochecknoglobals // Fixed test clock
var testStamp = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

//nolint:gochecknoglobals // Test sentinel
var errBoom = errors.New("boom")

type failingRenderer struct{}

func (failingRenderer) Format() (format renderer.Format) {
	format = renderer.FormatDOCX
	return format
}

func (failingRenderer) Render(cv.DocumentModel) (data []byte, err error) {
	err = errBoom
	return data, err
}

func newGenerator(t *testing.T, opts Options) (g *Generator) {
	t.Helper()
	if opts.Stamp.IsZero() {
		opts.Stamp = testStamp
	}
	g, err := New(opts)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	return g
}

func TestGenerateCVDocuments(t *testing.T) {
	res, err := GenerateCVDocuments(context.Background(), contenttest.Site(), content.Languages())
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}

	if len(res.Failures) != 0 {
		t.Fatalf("Unexpected failures: %v", res.Failures)
	}
	if res.Count() != 4 {
		t.Fatalf("Expected 4 documents, got %d", res.Count())
	}

	for _, lang := range content.Languages() {
		pdf, ok := res.Document(lang, renderer.FormatPDF)
		if !ok || !bytes.HasPrefix(pdf, []byte("%PDF")) {
			t.Errorf("%s: missing or malformed PDF", lang)
		}
		docx, ok := res.Document(lang, renderer.FormatDOCX)
		if !ok || !bytes.HasPrefix(docx, []byte("PK")) {
			t.Errorf("%s: missing or malformed DOCX", lang)
		}
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	g := newGenerator(t, Options{})

	broken := contenttest.Site()
	broken.Skills = nil

	tests := []struct {
		name    string
		content content.SiteContent
		langs   []content.Language
		want    error
	}{
		{
			name:    "missing skills",
			content: broken,
			langs:   content.Languages(),
			want:    content.ErrContentShape,
		},
		{
			name:    "unsupported language",
			content: contenttest.Site(),
			langs:   []content.Language{content.English, content.Language("fr")},
			want:    content.ErrUnsupportedLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Generate(context.Background(), tt.content, tt.langs)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if res.Count() != 0 {
				t.Errorf("Expected no documents, got %d", res.Count())
			}
		})
	}
}

func TestGenerateContinuesPastRenderFailure(t *testing.T) {
	g := newGenerator(t, Options{Concurrency: 1})
	g.renderers[renderer.FormatDOCX] = failingRenderer{}

	res, err := g.Generate(context.Background(), contenttest.Site(), []content.Language{content.German, content.English})
	if err != nil {
		t.Fatalf("Batch should not fail: %v", err)
	}

	if res.Count() != 2 {
		t.Errorf("Expected both PDFs, got %d documents", res.Count())
	}

	if len(res.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %v", res.Failures)
	}
	if res.Failures[0].Language != content.German || res.Failures[1].Language != content.English {
		t.Errorf("Failures not in request order: %v", res.Failures)
	}
	for _, failure := range res.Failures {
		if failure.Format != renderer.FormatDOCX {
			t.Errorf("Unexpected failed format %s", failure.Format)
		}
		if !errors.Is(failure.Err, errBoom) {
			t.Errorf("Expected render error, got %v", failure.Err)
		}
	}

	if _, ok := res.Document(content.German, renderer.FormatDOCX); ok {
		t.Error("Failed pair must not carry a document")
	}
}

func TestGenerateEmptyImageFallsBack(t *testing.T) {
	g := newGenerator(t, Options{Image: cv.ImageBytes([]byte{})})

	res, err := g.Generate(context.Background(), contenttest.Site(), []content.Language{content.English})
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}
	if len(res.Failures) != 0 {
		t.Errorf("Expected fallback to default image, got %v", res.Failures)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := newGenerator(t, Options{})

	first, err := g.Generate(context.Background(), contenttest.Site(), content.Languages())
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}
	second, err := g.Generate(context.Background(), contenttest.Site(), content.Languages())
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}

	for lang, docs := range first.Documents {
		for format, data := range docs {
			other, _ := second.Document(lang, format)
			if !bytes.Equal(data, other) {
				t.Errorf("%s/%s differs between runs", lang, format)
			}
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(t, Options{}).Generate(ctx, contenttest.Site(), content.Languages())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderOne(t *testing.T) {
	g := newGenerator(t, Options{Formats: []renderer.Format{renderer.FormatPDF}})

	data, err := g.RenderOne(contenttest.Site(), content.German, renderer.FormatPDF)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected a PDF")
	}

	_, err = g.RenderOne(contenttest.Site(), content.German, renderer.FormatDOCX)
	if !errors.Is(err, renderer.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	g.renderers[renderer.FormatPDF] = failingRenderer{}
	data, err = g.RenderOne(contenttest.Site(), content.German, renderer.FormatPDF)
	if !errors.Is(err, errBoom) {
		t.Errorf("Expected render error, got %v", err)
	}
	if data != nil {
		t.Error("Expected no partial document")
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	_, err := New(Options{Formats: []renderer.Format{"odt"}})
	if !errors.Is(err, renderer.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPublish(t *testing.T) {
	g := newGenerator(t, Options{})
	langs := content.Languages()

	res, err := g.Generate(context.Background(), contenttest.Site(), langs)
	if err != nil {
		t.Fatalf("Generation failed: %v", err)
	}

	dir := t.TempDir()
	published, err := g.Publish(context.Background(), res, "Jane Example", langs, storage.NewFileStore(dir))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	want := []string{"jane-example-cv-en.pdf", "jane-example-cv-en.docx", "jane-example-cv-de.pdf", "jane-example-cv-de.docx"}
	if len(published) != len(want) {
		t.Fatalf("Expected %d published documents, got %d", len(want), len(published))
	}
	for i, key := range want {
		if published[i].Key != key {
			t.Errorf("Published[%d] = %s, want %s", i, published[i].Key, key)
		}
		_, statErr := os.Stat(filepath.Join(dir, key))
		if statErr != nil {
			t.Errorf("Missing file %s: %v", key, statErr)
		}
	}
}
