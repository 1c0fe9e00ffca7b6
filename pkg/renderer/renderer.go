// Package renderer turns a cv.DocumentModel into PDF and Word documents.
// Renderers only lay out what the model holds; ordering, filtering and labels
// are decided by the projection.
package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/cv"
)

// Format is an output document format.
type Format string

const (
	// FormatPDF is a paginated A4 PDF.
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word processing document.
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for formats without a renderer.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats returns every supported format.
func Formats() (formats []Format) {
	formats = []Format{FormatPDF, FormatDOCX}
	return formats
}

// ParseFormat validates a format name, ignoring case and a leading dot.
func ParseFormat(input string) (format Format, err error) {
	candidate := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(input)), "."))
	for _, known := range Formats() {
		if candidate == known {
			format = known
			return format, err
		}
	}
	err = errors.Wrapf(ErrUnsupportedFormat, "%q", input)
	return format, err
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() (mime string) {
	switch f {
	case FormatPDF:
		mime = "application/pdf"
	case FormatDOCX:
		mime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		mime = "application/octet-stream"
	}
	return mime
}

func (f Format) String() (s string) {
	s = string(f)
	return s
}

// Renderer produces one document format from a model.
type Renderer interface {
	Format() (format Format)
	Render(model cv.DocumentModel) (data []byte, err error)
}

// Options configure how renderers load assets.
type Options struct {
	// PublicDir resolves site-absolute image paths such as "/profile.jpg".
	PublicDir string
	Logger    *slog.Logger
}

func (o Options) logger() (logger *slog.Logger) {
	logger = o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// For returns the renderer for format.
func For(format Format, opts Options) (r Renderer, err error) {
	switch format {
	case FormatPDF:
		r = NewPDF(opts)
	case FormatDOCX:
		r = NewDOCX(opts)
	default:
		err = errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return r, err
}

// rgb is a theme color.
type rgb struct {
	R, G, B int
}

func (c rgb) hex() (s string) {
	s = fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
	return s
}

// Theme shared by both formats.
//
//nolint:gochecknoglobals // Theme constants
var (
	colorAccent = rgb{R: 31, G: 78, B: 121}
	colorText   = rgb{R: 33, G: 37, B: 41}
	colorMuted  = rgb{R: 108, G: 117, B: 125}
	colorRule   = rgb{R: 206, G: 212, B: 218}
)

// levelDots is the number of markers in a language level indicator.
const levelDots = 5
