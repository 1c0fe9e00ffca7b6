package content

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Encoding is the serialization of a content document.
type Encoding string

const (
	// EncodingJSON is the default content encoding.
	EncodingJSON Encoding = "json"
	// EncodingYAML is selected by a .yaml or .yml extension.
	EncodingYAML Encoding = "yaml"
)

// EncodingFor picks the encoding from a file path or URL extension.
func EncodingFor(location string) (enc Encoding) {
	enc = EncodingJSON
	ext := strings.ToLower(filepath.Ext(stripQuery(location)))
	if ext == ".yaml" || ext == ".yml" {
		enc = EncodingYAML
	}
	return enc
}

func stripQuery(location string) (path string) {
	path = location
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// Load reads site content from a file path or URL, validates it against the
// content schema and decodes it.
func Load(ctx context.Context, location string) (c SiteContent, err error) {
	var data []byte
	data, err = Fetch(ctx, location)
	if err != nil {
		return c, err
	}

	c, err = Parse(data, EncodingFor(location))
	if err != nil {
		err = errors.Wrapf(err, "failed to load content: %s", location)
		return c, err
	}

	return c, err
}

// Parse decodes and validates a content document.
func Parse(data []byte, enc Encoding) (c SiteContent, err error) {
	var doc interface{}
	switch enc {
	case EncodingYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s content", enc)
		return c, err
	}

	if doc == nil {
		err = &ShapeError{Field: "(root)", Reason: "document is empty"}
		return c, err
	}

	err = ValidateDocument(doc)
	if err != nil {
		return c, err
	}

	switch enc {
	case EncodingYAML:
		err = yaml.Unmarshal(data, &c)
	default:
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to decode %s content", enc)
		return c, err
	}

	err = c.Validate()
	if err != nil {
		err = errors.Wrap(err, "content validation failed")
		return c, err
	}

	return c, err
}

// Validate checks typed content. It repeats the schema's category and level
// bounds so content edited in memory is held to the same rules as files, and
// adds what the schema cannot express.
func (c *SiteContent) Validate() (err error) {
	err = CheckShape(*c)
	if err != nil {
		return err
	}

	for i, experience := range c.Experiences {
		if experience.Company == "" && experience.Title.IsZero() {
			err = &ShapeError{Field: "experiences." + strconv.Itoa(i), Reason: "needs a company or a title"}
			return err
		}
	}

	known := make(map[SkillCategory]bool)
	for _, category := range Categories() {
		known[category] = true
	}
	for i, skill := range c.Skills {
		if !known[skill.Category] {
			err = &ShapeError{Field: "skills." + strconv.Itoa(i) + ".category", Reason: "unknown category " + string(skill.Category)}
			return err
		}
		if skill.Level < MinSkillLevel || skill.Level > MaxSkillLevel {
			err = &ShapeError{
				Field:  "skills." + strconv.Itoa(i) + ".level",
				Reason: "level " + strconv.Itoa(skill.Level) + " is outside " + strconv.Itoa(MinSkillLevel) + "-" + strconv.Itoa(MaxSkillLevel),
			}
			return err
		}
	}

	return err
}

// Encode serializes content; used to hand snapshots to the preview editor.
func Encode(c SiteContent, enc Encoding) (data []byte, err error) {
	switch enc {
	case EncodingYAML:
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to encode %s content", enc)
		return data, err
	}
	return data, err
}
