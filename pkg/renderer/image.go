package renderer

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrImageUnavailable means the photo reference cannot be loaded offline.
var ErrImageUnavailable = errors.New("image unavailable")

// photo is a decoded-enough profile image.
type photo struct {
	data   []byte
	format string // "jpeg" or "png"
	width  int
	height int
}

// loadPhoto reads a photo reference as produced by cv.ResolveImage: a data
// URI, an absolute filesystem path, or a site path below publicDir. Remote
// URLs are not fetched.
func loadPhoto(ref, publicDir string) (p photo, err error) {
	var data []byte

	switch {
	case ref == "":
		err = errors.Wrap(ErrImageUnavailable, "no image reference")
		return p, err

	case strings.HasPrefix(ref, "data:"):
		comma := strings.Index(ref, ",")
		if comma < 0 || !strings.Contains(ref[:comma], ";base64") {
			err = errors.Wrap(ErrImageUnavailable, "malformed data URI")
			return p, err
		}
		data, err = base64.StdEncoding.DecodeString(ref[comma+1:])
		if err != nil {
			err = errors.Wrap(err, "failed to decode data URI")
			return p, err
		}

	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		err = errors.Wrapf(ErrImageUnavailable, "remote image %s", ref)
		return p, err

	default:
		path := ref
		if _, statErr := os.Stat(path); statErr != nil && publicDir != "" {
			path = filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
		}
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(ErrImageUnavailable, "read %s: %v", path, err)
			return p, err
		}
	}

	var cfg image.Config
	var format string
	cfg, format, err = image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		err = errors.Wrapf(ErrImageUnavailable, "unrecognized image data: %v", err)
		return p, err
	}

	p = photo{data: data, format: format, width: cfg.Width, height: cfg.Height}
	return p, err
}

// fpdfType maps the sniffed format onto fpdf's image type names.
func (p photo) fpdfType() (t string) {
	t = "JPG"
	if p.format == "png" {
		t = "PNG"
	}
	return t
}

// aspect is height over width.
func (p photo) aspect() (ratio float64) {
	ratio = 1
	if p.width > 0 {
		ratio = float64(p.height) / float64(p.width)
	}
	return ratio
}
