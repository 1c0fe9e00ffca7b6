package renderer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/content"
)

// Filename returns the published file name, "<name>-cv-<lang>.<ext>".
func Filename(name string, lang content.Language, format Format) (filename string) {
	base := sanitizeFilename(name)
	if base == "" {
		base = "portfolio"
	}
	filename = base + "-cv-" + lang.String() + "." + format.String()
	return filename
}

// sanitizeFilename lowercases name and reduces everything but ASCII letters
// and digits to single hyphens.
func sanitizeFilename(name string) (sanitized string) {
	sanitized = strings.ToLower(name)

	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// WriteDocument writes a rendered document, creating the directory as needed.
func WriteDocument(data []byte, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document: %s", outputPath)
		return err
	}

	return err
}

// Cleanup removes generated documents.
func Cleanup(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove document: %s", path)
			return err
		}
	}
	return err
}
