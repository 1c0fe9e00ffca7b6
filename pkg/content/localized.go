package content

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LocalizedString pairs the English and German rendering of the same text.
type LocalizedString struct {
	EN string `json:"en" yaml:"en"`
	DE string `json:"de" yaml:"de"`
}

// L builds a LocalizedString.
func L(en, de string) (l LocalizedString) {
	l = LocalizedString{EN: en, DE: de}
	return l
}

// Resolve returns the text of field in lang. A missing translation or an
// unknown language yields an empty string, never an error.
func Resolve(field LocalizedString, lang Language) (text string) {
	switch lang {
	case English:
		text = field.EN
	case German:
		text = field.DE
	}
	return text
}

// In is shorthand for Resolve(l, lang).
func (l LocalizedString) In(lang Language) (text string) {
	text = Resolve(l, lang)
	return text
}

// IsZero reports whether neither translation is set.
func (l LocalizedString) IsZero() (zero bool) {
	zero = l.EN == "" && l.DE == ""
	return zero
}

// Tag is either a plain string or a LocalizedString. Content files may use
// both shapes in the same list.
type Tag struct {
	plain     string
	localized *LocalizedString
}

// PlainTag returns a tag that renders the same text in every language.
func PlainTag(text string) (t Tag) {
	t = Tag{plain: text}
	return t
}

// LocalizedTag returns a tag with per-language text.
func LocalizedTag(l LocalizedString) (t Tag) {
	t = Tag{localized: &l}
	return t
}

// IsLocalized reports whether the tag carries per-language text.
func (t Tag) IsLocalized() (localized bool) {
	localized = t.localized != nil
	return localized
}

// Resolve returns the tag text for lang.
func (t Tag) Resolve(lang Language) (text string) {
	if t.localized != nil {
		text = Resolve(*t.localized, lang)
		return text
	}
	text = t.plain
	return text
}

// MarshalJSON writes plain tags as strings and localized tags as objects.
func (t Tag) MarshalJSON() (data []byte, err error) {
	if t.localized != nil {
		data, err = json.Marshal(t.localized)
		return data, err
	}
	data, err = json.Marshal(t.plain)
	return data, err
}

// UnmarshalJSON accepts either a string or an {"en","de"} object.
func (t *Tag) UnmarshalJSON(data []byte) (err error) {
	var text string
	if json.Unmarshal(data, &text) == nil {
		*t = PlainTag(text)
		return err
	}

	var l LocalizedString
	err = json.Unmarshal(data, &l)
	if err != nil {
		err = errors.Wrap(err, "tag must be a string or an {en, de} object")
		return err
	}
	*t = LocalizedTag(l)
	return err
}

// MarshalYAML mirrors MarshalJSON.
func (t Tag) MarshalYAML() (out interface{}, err error) {
	if t.localized != nil {
		out = *t.localized
		return out, err
	}
	out = t.plain
	return out, err
}

// UnmarshalYAML accepts a scalar or a mapping node.
func (t *Tag) UnmarshalYAML(node *yaml.Node) (err error) {
	if node.Kind == yaml.ScalarNode {
		*t = PlainTag(node.Value)
		return err
	}

	var l LocalizedString
	err = node.Decode(&l)
	if err != nil {
		err = errors.Wrap(err, "tag must be a string or an {en, de} mapping")
		return err
	}
	*t = LocalizedTag(l)
	return err
}
