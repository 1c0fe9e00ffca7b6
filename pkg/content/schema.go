package content

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

//nolint:gochecknoglobals // Compiled once on first use
var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func contentSchema() (schema *gojsonschema.Schema, err error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	schema = compiledSchema
	err = schemaErr
	return schema, err
}

// ValidateDocument checks a decoded (untyped) content document against the
// embedded content schema. Violations come back as a *ShapeError naming the
// first offending field.
func ValidateDocument(doc interface{}) (err error) {
	var schema *gojsonschema.Schema
	schema, err = contentSchema()
	if err != nil {
		err = errors.Wrap(err, "failed to compile content schema")
		return err
	}

	var result *gojsonschema.Result
	result, err = schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		err = errors.Wrap(err, "failed to validate content")
		return err
	}

	if result.Valid() {
		return err
	}

	violations := result.Errors()
	first := violations[0]
	field := first.Field()
	if first.Type() == "required" {
		if property, ok := first.Details()["property"]; ok {
			field = joinField(field, fmt.Sprint(property))
		}
	}

	reasons := make([]string, 0, len(violations))
	for _, violation := range violations {
		reasons = append(reasons, violation.String())
	}

	err = &ShapeError{Field: field, Reason: strings.Join(reasons, "; ")}
	return err
}

func joinField(parent, property string) (field string) {
	field = property
	if parent != "" && parent != "(root)" {
		field = parent + "." + property
	}
	return field
}
