package content

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrContentShape matches every ShapeError via errors.Is.
var ErrContentShape = errors.New("content shape error")

// ShapeError reports a structural defect in site content: a required
// collection is missing entirely or a value violates the content schema.
// Generation cannot continue for the request that hit it.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() (msg string) {
	msg = fmt.Sprintf("content shape error: %s: %s", e.Field, e.Reason)
	return msg
}

// Is makes errors.Is(err, ErrContentShape) true for any ShapeError.
func (e *ShapeError) Is(target error) (match bool) {
	match = target == ErrContentShape
	return match
}

// CheckShape verifies the collections the CV projection cannot do without.
// A nil slice means the field was absent from the source; an empty slice is fine.
func CheckShape(c SiteContent) (err error) {
	if c.Experiences == nil {
		err = &ShapeError{Field: "experiences", Reason: "missing"}
		return err
	}
	if c.Skills == nil {
		err = &ShapeError{Field: "skills", Reason: "missing"}
		return err
	}
	return err
}
