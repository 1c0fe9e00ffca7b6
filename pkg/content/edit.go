package content

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidEdit is wrapped by every error Apply returns.
var ErrInvalidEdit = errors.New("invalid edit")

// Edit sets the value at a dot-separated path of JSON field names,
// e.g. "experiences.0.title.de" or "skills.3.level".
type Edit struct {
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// Apply returns a new snapshot with value stored at path. Only the structs,
// slices and maps on the path are copied; every other subtree is shared with
// c, and c itself is never modified.
func Apply(c SiteContent, path string, value interface{}) (next SiteContent, err error) {
	segments := strings.Split(strings.TrimSpace(path), ".")
	if len(segments) == 0 || segments[0] == "" {
		err = errors.Wrap(ErrInvalidEdit, "empty path")
		return c, err
	}

	next = c
	err = setPath(reflect.ValueOf(&next).Elem(), segments, value)
	if err != nil {
		err = errors.Wrapf(err, "edit %q", path)
		return c, err
	}

	return next, err
}

// ApplyAll applies edits in order on top of c.
func ApplyAll(c SiteContent, edits ...Edit) (next SiteContent, err error) {
	next = c
	for _, edit := range edits {
		next, err = Apply(next, edit.Path, edit.Value)
		if err != nil {
			return c, err
		}
	}
	return next, err
}

// setPath walks v (which must be settable) and copies each container before
// descending into it.
func setPath(v reflect.Value, segments []string, value interface{}) (err error) {
	if len(segments) == 0 {
		err = assign(v, value)
		return err
	}

	head, rest := segments[0], segments[1:]

	switch v.Kind() {
	case reflect.Struct:
		index, ok := fieldByJSONName(v.Type(), head)
		if !ok {
			err = errors.Wrapf(ErrInvalidEdit, "unknown field %q in %s", head, v.Type().Name())
			return err
		}
		err = setPath(v.Field(index), rest, value)
		return err

	case reflect.Slice:
		var index int
		index, err = strconv.Atoi(head)
		if err != nil || index < 0 || index >= v.Len() {
			err = errors.Wrapf(ErrInvalidEdit, "index %q out of range (len %d)", head, v.Len())
			return err
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(clone, v)
		v.Set(clone)
		err = setPath(clone.Index(index), rest, value)
		return err

	case reflect.Map:
		clone := reflect.MakeMapWithSize(v.Type(), v.Len()+1)
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), iter.Value())
		}
		key := reflect.ValueOf(head).Convert(v.Type().Key())
		elem := reflect.New(v.Type().Elem()).Elem()
		if existing := clone.MapIndex(key); existing.IsValid() {
			elem.Set(existing)
		}
		err = setPath(elem, rest, value)
		if err != nil {
			return err
		}
		clone.SetMapIndex(key, elem)
		v.Set(clone)
		return err

	case reflect.Ptr:
		fresh := reflect.New(v.Type().Elem())
		if !v.IsNil() {
			fresh.Elem().Set(v.Elem())
		}
		err = setPath(fresh.Elem(), segments, value)
		if err != nil {
			return err
		}
		v.Set(fresh)
		return err
	}

	err = errors.Wrapf(ErrInvalidEdit, "cannot descend into %s at %q", v.Kind(), head)
	return err
}

// assign converts value to v's type through its JSON form so that numbers,
// localized objects and tags decode with their normal rules.
func assign(v reflect.Value, value interface{}) (err error) {
	var raw []byte
	raw, err = json.Marshal(value)
	if err != nil {
		err = errors.Wrapf(ErrInvalidEdit, "unencodable value: %v", err)
		return err
	}

	target := reflect.New(v.Type())
	err = json.Unmarshal(raw, target.Interface())
	if err != nil {
		err = errors.Wrapf(ErrInvalidEdit, "value does not fit %s: %v", v.Type(), err)
		return err
	}

	v.Set(target.Elem())
	return err
}

func fieldByJSONName(t reflect.Type, name string) (index int, ok bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonName := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonName == "-" {
			continue
		}
		if jsonName == "" {
			jsonName = field.Name
		}
		if jsonName == name {
			index = i
			ok = true
			return index, ok
		}
	}
	return index, ok
}
