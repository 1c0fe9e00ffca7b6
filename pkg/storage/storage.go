// Package storage publishes generated documents.
package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/renderer"
)

// Store receives finished documents under a flat key such as
// "jane-example-cv-de.pdf".
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (location string, err error)
}

// FileStore writes documents into a directory, normally the site's public dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) (s *FileStore) {
	s = &FileStore{Dir: dir}
	return s
}

// Put writes data to Dir/key and returns the file path. The document is
// written next to its target and renamed into place, so readers of Dir never
// see a partial file.
func (s *FileStore) Put(ctx context.Context, key string, data []byte, contentType string) (location string, err error) {
	err = ctx.Err()
	if err != nil {
		return location, err
	}

	err = validateKey(key)
	if err != nil {
		return location, err
	}

	location = filepath.Join(s.Dir, filepath.FromSlash(key))
	staging := location + ".partial"
	err = renderer.WriteDocument(data, staging)
	if err != nil {
		return location, err
	}

	err = os.Rename(staging, location)
	if err != nil {
		_ = renderer.Cleanup(staging)
		err = errors.Wrapf(err, "failed to publish %s", key)
		return location, err
	}

	return location, err
}

// MultiStore writes to every store in order and reports the first location.
type MultiStore []Store

// Put stops at the first failing store.
func (m MultiStore) Put(ctx context.Context, key string, data []byte, contentType string) (location string, err error) {
	for i, store := range m {
		var loc string
		loc, err = store.Put(ctx, key, data, contentType)
		if err != nil {
			err = errors.Wrapf(err, "store %d", i)
			return location, err
		}
		if location == "" {
			location = loc
		}
	}
	return location, err
}

func validateKey(key string) (err error) {
	cleaned := path.Clean("/" + key)
	if key == "" || strings.HasSuffix(key, "/") || cleaned != "/"+key {
		err = errors.Errorf("invalid storage key: %q", key)
		return err
	}
	return err
}
