// Package generator renders every requested language and format of the CV
// from one content snapshot.
package generator

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/cv"
	"github.com/nikogura/portfolio-cv/pkg/metrics"
	"github.com/nikogura/portfolio-cv/pkg/renderer"
	"github.com/nikogura/portfolio-cv/pkg/storage"
)

// DefaultConcurrency bounds concurrent renders when Options leaves it unset.
const DefaultConcurrency = 4

// Options configure a Generator.
type Options struct {
	// Formats to render. Empty means every supported format.
	Formats []renderer.Format
	// Image overrides the hero image of the content.
	Image cv.ImageSource
	// Stamp is the "last updated" moment. Zero means time.Now at generation.
	Stamp       time.Time
	Concurrency int
	PublicDir   string
	Logger      *slog.Logger
}

// Failure is one (language, format) pair that could not be produced.
type Failure struct {
	Language content.Language
	Format   renderer.Format
	Err      error
}

func (f Failure) Error() (msg string) {
	msg = f.Language.String() + "/" + f.Format.String() + ": " + f.Err.Error()
	return msg
}

// Result holds rendered documents by language and format, plus the pairs
// that failed. A failed pair is absent from Documents.
type Result struct {
	Documents map[content.Language]map[renderer.Format][]byte
	Failures  []Failure
}

// Document returns the bytes for one pair.
func (r Result) Document(lang content.Language, format renderer.Format) (data []byte, ok bool) {
	data, ok = r.Documents[lang][format]
	return data, ok
}

// Count returns the number of rendered documents.
func (r Result) Count() (n int) {
	for _, docs := range r.Documents {
		n += len(docs)
	}
	return n
}

// Generator renders CV documents. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	formats     []renderer.Format
	renderers   map[renderer.Format]renderer.Renderer
	image       cv.ImageSource
	stamp       time.Time
	concurrency int
	logger      *slog.Logger
}

// New builds a Generator from opts.
func New(opts Options) (g *Generator, err error) {
	g = &Generator{
		formats:     opts.Formats,
		renderers:   make(map[renderer.Format]renderer.Renderer),
		image:       opts.Image,
		stamp:       opts.Stamp,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}

	if len(g.formats) == 0 {
		g.formats = renderer.Formats()
	}
	if g.concurrency <= 0 {
		g.concurrency = DefaultConcurrency
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	renderOpts := renderer.Options{PublicDir: opts.PublicDir, Logger: g.logger}
	for _, format := range g.formats {
		var r renderer.Renderer
		r, err = renderer.For(format, renderOpts)
		if err != nil {
			return g, err
		}
		g.renderers[format] = r
	}

	return g, err
}

// GenerateCVDocuments renders PDF and DOCX for each language with default
// options.
func GenerateCVDocuments(ctx context.Context, c content.SiteContent, langs []content.Language) (res Result, err error) {
	var g *Generator
	g, err = New(Options{})
	if err != nil {
		return res, err
	}
	res, err = g.Generate(ctx, c, langs)
	return res, err
}

// Generate renders every configured format for each language. Content that
// fails the shape check or an unsupported language aborts the whole batch.
// A render failure only costs its own pair; it is logged, recorded in
// Failures, and the rest of the batch continues.
func (g *Generator) Generate(ctx context.Context, c content.SiteContent, langs []content.Language) (res Result, err error) {
	err = content.CheckShape(c)
	if err != nil {
		return res, err
	}
	for _, lang := range langs {
		if !lang.Valid() {
			err = errors.Wrapf(content.ErrUnsupportedLanguage, "%q", lang)
			return res, err
		}
	}

	stamp := g.stampNow()
	res.Documents = make(map[content.Language]map[renderer.Format][]byte, len(langs))

	var mu sync.Mutex
	record := func(lang content.Language, format renderer.Format, data []byte, renderErr error) {
		mu.Lock()
		defer mu.Unlock()
		if renderErr != nil {
			res.Failures = append(res.Failures, Failure{Language: lang, Format: format, Err: renderErr})
			return
		}
		if res.Documents[lang] == nil {
			res.Documents[lang] = make(map[renderer.Format][]byte, len(g.formats))
		}
		res.Documents[lang][format] = data
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for _, lang := range langs {
		model, projErr := g.project(c, lang, stamp)
		for _, format := range g.formats {
			if projErr != nil {
				g.logFailure(lang, format, projErr)
				record(lang, format, nil, projErr)
				continue
			}

			lang, format := lang, format
			eg.Go(func() (taskErr error) {
				taskErr = egCtx.Err()
				if taskErr != nil {
					return taskErr
				}

				data, renderErr := g.render(model, format)
				if renderErr != nil {
					g.logFailure(lang, format, renderErr)
				}
				record(lang, format, data, renderErr)
				return taskErr
			})
		}
	}

	err = eg.Wait()
	if err != nil {
		err = errors.Wrap(err, "generation interrupted")
		return res, err
	}

	slices.SortFunc(res.Failures, func(a, b Failure) (cmp int) {
		cmp = slices.Index(langs, a.Language) - slices.Index(langs, b.Language)
		if cmp == 0 {
			cmp = slices.Index(g.formats, a.Format) - slices.Index(g.formats, b.Format)
		}
		return cmp
	})

	return res, err
}

// RenderOne renders a single (language, format) pair. Any failure is
// returned; no partial document is produced.
func (g *Generator) RenderOne(c content.SiteContent, lang content.Language, format renderer.Format) (data []byte, err error) {
	if _, ok := g.renderers[format]; !ok {
		err = errors.Wrapf(renderer.ErrUnsupportedFormat, "%q", format)
		return data, err
	}

	var model cv.DocumentModel
	model, err = g.project(c, lang, g.stampNow())
	if err != nil {
		return data, err
	}

	data, err = g.render(model, format)
	if err != nil {
		g.logFailure(lang, format, err)
		return data, err
	}

	return data, err
}

// Formats returns the formats this generator renders.
func (g *Generator) Formats() (formats []renderer.Format) {
	formats = slices.Clone(g.formats)
	return formats
}

// Published is one stored document.
type Published struct {
	Key      string
	Location string
}

// Publish stores every document in res under its public file name, in
// language then format order.
func (g *Generator) Publish(ctx context.Context, res Result, name string, langs []content.Language, store storage.Store) (published []Published, err error) {
	for _, lang := range langs {
		for _, format := range g.formats {
			data, ok := res.Document(lang, format)
			if !ok {
				continue
			}

			key := renderer.Filename(name, lang, format)
			var location string
			location, err = store.Put(ctx, key, data, format.ContentType())
			if err != nil {
				err = errors.Wrapf(err, "failed to publish %s", key)
				return published, err
			}

			g.logger.Info("published document",
				slog.String("lang", lang.String()),
				slog.String("format", format.String()),
				slog.String("location", location),
			)
			published = append(published, Published{Key: key, Location: location})
		}
	}
	return published, err
}

func (g *Generator) stampNow() (stamp time.Time) {
	stamp = g.stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	return stamp
}

// project builds the model for lang. An empty image buffer falls back to the
// content's own image rather than failing the language.
func (g *Generator) project(c content.SiteContent, lang content.Language, stamp time.Time) (model cv.DocumentModel, err error) {
	model, err = cv.Project(c, lang, g.image, stamp)
	if errors.Is(err, cv.ErrEmptyAsset) {
		g.logger.Warn("profile image is empty, using default",
			slog.String("lang", lang.String()),
		)
		model, err = cv.Project(c, lang, cv.ImageSource{}, stamp)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to build %s document model", lang)
		return model, err
	}
	return model, err
}

func (g *Generator) render(model cv.DocumentModel, format renderer.Format) (data []byte, err error) {
	start := time.Now()
	data, err = g.renderers[format].Render(model)
	metrics.ObserveGeneration(model.Language.String(), format.String(), time.Since(start), err)
	if err != nil {
		err = errors.Wrapf(err, "failed to render %s %s", model.Language, format)
		return nil, err
	}
	return data, err
}

func (g *Generator) logFailure(lang content.Language, format renderer.Format, err error) {
	g.logger.Warn("document generation failed",
		slog.String("lang", lang.String()),
		slog.String("format", format.String()),
		slog.Any("error", err),
	)
}
