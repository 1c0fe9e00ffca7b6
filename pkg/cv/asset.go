package cv

import (
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
)

// DefaultProfileImage is used when no image source is given.
const DefaultProfileImage = "/profile.jpg"

// ErrEmptyAsset is returned for a zero-length image buffer. Callers may retry
// with the zero ImageSource to fall back to DefaultProfileImage.
var ErrEmptyAsset = errors.New("empty image asset")

// ImageSource is a profile image reference: a path or URL, raw bytes, or
// nothing.
type ImageSource struct {
	path   string
	data   []byte
	binary bool
}

// ImagePath references an image by path or URL.
func ImagePath(path string) (src ImageSource) {
	src = ImageSource{path: path}
	return src
}

// ImageBytes references an in-memory image.
func ImageBytes(data []byte) (src ImageSource) {
	src = ImageSource{data: data, binary: true}
	return src
}

// ImageReader references an image streamed from r. The stream is read to
// the end; an empty stream gives a source that ResolveImage rejects with
// ErrEmptyAsset.
func ImageReader(r io.Reader) (src ImageSource, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		err = errors.Wrap(err, "failed to read image")
		return src, err
	}
	src = ImageBytes(data)
	return src, err
}

// IsZero reports whether no source was given.
func (s ImageSource) IsZero() (zero bool) {
	zero = !s.binary && s.path == ""
	return zero
}

// ResolveImage turns a source into something a renderer can load: paths come
// back unchanged, bytes become a JPEG data URI.
func ResolveImage(src ImageSource) (uri string, err error) {
	switch {
	case src.binary:
		if len(src.data) == 0 {
			err = errors.WithStack(ErrEmptyAsset)
			return uri, err
		}
		uri = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(src.data)
	case src.path != "":
		uri = src.path
	default:
		uri = DefaultProfileImage
	}
	return uri, err
}
