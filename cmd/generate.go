package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/portfolio-cv/pkg/config"
	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/cv"
	"github.com/nikogura/portfolio-cv/pkg/generator"
	"github.com/nikogura/portfolio-cv/pkg/renderer"
	"github.com/nikogura/portfolio-cv/pkg/storage"
)

// stampLayout is the --stamp format.
const stampLayout = "2006-01"

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var langFlags []string

//nolint:gochecknoglobals // Cobra boilerplate
var formatFlags []string

//nolint:gochecknoglobals // Cobra boilerplate
var stampFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var skipUpload bool

//nolint:gochecknoglobals // Cobra boilerplate
var imageFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate [content-file-or-url]",
	Short: "Generate CV documents for every language and format",
	Long: `Generate the CV in every configured language and format and write the
documents to the site's public directory as <name>-cv-<lang>.<format>.

Content is read from content_location in the config unless given as an
argument. When MinIO storage is enabled the documents are uploaded as well.

A document that fails to render is reported and the others are still written;
the command exits non-zero if any document failed.

Example:
  portfolio-cv generate
  portfolio-cv generate content.yaml --lang de --format pdf
  portfolio-cv generate https://example.com/content.json --stamp 2026-10
  portfolio-cv generate --image - < me.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default is public_dir from config)")
	generateCmd.Flags().StringSliceVar(&langFlags, "lang", nil, "Languages to generate, e.g. en,de (default from config)")
	generateCmd.Flags().StringSliceVar(&formatFlags, "format", nil, "Formats to generate: pdf, docx (default from config)")
	generateCmd.Flags().StringVar(&stampFlag, "stamp", "", "Last-updated month as YYYY-MM, for reproducible output (default is now)")
	generateCmd.Flags().BoolVar(&skipUpload, "skip-upload", false, "Do not upload to MinIO even if enabled")
	generateCmd.Flags().StringVar(&imageFlag, "image", "", "Profile image path or URL, or - to read JPEG bytes from stdin (default profile_image from config)")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var contentArg string
	if len(args) > 0 {
		contentArg = args[0]
	}

	var cfg config.Config
	cfg, err = config.Load(getConfigFile(), config.WithContent(contentArg))
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var opts generator.Options
	var langs []content.Language
	opts, langs, err = generationOptions(cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var site content.SiteContent
	site, err = loadAndLogContent(ctx, cfg.ContentLocation)
	if err != nil {
		return err
	}

	var gen *generator.Generator
	gen, err = generator.New(opts)
	if err != nil {
		return err
	}

	s := newSpinner(fmt.Sprintf("Rendering %d language(s) x %d format(s)...", len(langs), len(gen.Formats())))
	s.start()
	var res generator.Result
	res, err = gen.Generate(ctx, site, langs)
	s.stopSpinner()
	if err != nil {
		err = errors.Wrap(err, "generation failed")
		return err
	}

	for _, failure := range res.Failures {
		fmt.Printf("✗ %s\n", failure.Error())
	}

	var store storage.Store
	store, err = buildStore(ctx, cfg, flagOrConfig(outputDir, cfg.PublicDir))
	if err != nil {
		return err
	}

	var published []generator.Published
	published, err = gen.Publish(ctx, res, cfg.Name, langs, store)
	if err != nil {
		return err
	}

	for _, p := range published {
		fmt.Printf("✓ %s\n", p.Location)
	}

	if len(res.Failures) > 0 {
		err = errors.Errorf("%d of %d documents failed", len(res.Failures), len(res.Failures)+res.Count())
		return err
	}

	fmt.Printf("\nGenerated %d documents\n", res.Count())
	return err
}

// generationOptions merges command flags over the config. stdin is read
// when the image flag is "-".
func generationOptions(cfg config.Config, stdin io.Reader) (opts generator.Options, langs []content.Language, err error) {
	langs, err = cfg.ParsedLanguages()
	if err != nil {
		return opts, langs, err
	}
	if len(langFlags) > 0 {
		langs, err = content.ParseLanguages(langFlags)
		if err != nil {
			return opts, langs, err
		}
	}

	opts.Formats, err = cfg.ParsedFormats()
	if err != nil {
		return opts, langs, err
	}
	if len(formatFlags) > 0 {
		opts.Formats = nil
		for _, name := range formatFlags {
			var format renderer.Format
			format, err = renderer.ParseFormat(name)
			if err != nil {
				return opts, langs, err
			}
			opts.Formats = append(opts.Formats, format)
		}
	}

	opts.Stamp, err = parseStamp(stampFlag)
	if err != nil {
		return opts, langs, err
	}

	switch {
	case imageFlag == "-":
		opts.Image, err = cv.ImageReader(stdin)
		if err != nil {
			return opts, langs, err
		}
	case imageFlag != "":
		opts.Image = cv.ImagePath(imageFlag)
	case cfg.ProfileImage != "":
		opts.Image = cv.ImagePath(cfg.ProfileImage)
	}
	opts.Concurrency = cfg.Concurrency
	opts.PublicDir = cfg.PublicDir
	opts.Logger = newLogger()

	return opts, langs, err
}

// parseStamp reads a YYYY-MM month. Empty means "now", left to the generator.
func parseStamp(value string) (stamp time.Time, err error) {
	if value == "" {
		return stamp, err
	}
	stamp, err = time.Parse(stampLayout, value)
	if err != nil {
		err = errors.Wrapf(err, "invalid --stamp %q, expected YYYY-MM", value)
		return stamp, err
	}
	return stamp, err
}

func loadAndLogContent(ctx context.Context, location string) (site content.SiteContent, err error) {
	if getVerbose() {
		fmt.Printf("Loading content from: %s\n", location)
	}

	site, err = content.Load(ctx, location)
	if err != nil {
		err = errors.Wrap(err, "failed to load content")
		return site, err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d experiences, %d skills, %d projects\n", len(site.Experiences), len(site.Skills), len(site.Projects))
	}
	return site, err
}

// buildStore writes to outDir and, when configured, to MinIO as well.
func buildStore(ctx context.Context, cfg config.Config, outDir string) (store storage.Store, err error) {
	fileStore := storage.NewFileStore(outDir)
	if !cfg.Storage.MinIO.Enabled || skipUpload {
		store = fileStore
		return store, err
	}

	if getVerbose() {
		fmt.Printf("Uploading to MinIO: %s/%s\n", cfg.Storage.MinIO.Endpoint, cfg.Storage.MinIO.Bucket)
	}

	var minioStore *storage.MinIOStore
	minioStore, err = storage.NewMinIOStore(ctx, cfg.Storage.MinIO)
	if err != nil {
		return store, err
	}

	store = storage.MultiStore{fileStore, minioStore}
	return store, err
}

func flagOrConfig(flagValue, configValue string) (value string) {
	value = flagValue
	if value == "" {
		value = configValue
	}
	return value
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
