package jsonutils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// MissingFieldError reports a required key that is absent (or null) in the document.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

// StrictUnmarshal decodes data into v like json.Unmarshal, and additionally requires
// every struct field whose json tag lacks "omitempty" to be present and non-null.
// Nested structs and slices of structs are checked the same way.
func StrictUnmarshal(data []byte, v any) error {
	if v == nil {
		return errors.New("jsonutils: nil target")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("jsonutils: document is null")
	}

	return checkRequired(reflect.TypeOf(v), raw, "")
}

func checkRequired(t reflect.Type, raw any, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("expected object at %q", displayPath(path))
		}
		return checkStruct(t, obj, path)
	case reflect.Slice, reflect.Array:
		arr, ok := raw.([]any)
		if !ok {
			return nil
		}
		for i, item := range arr {
			if item == nil {
				continue
			}
			if err := checkRequired(t.Elem(), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkStruct(t reflect.Type, obj map[string]any, path string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}

		// untagged embedded structs are flattened into the parent object
		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := checkStruct(ft, obj, path); err != nil {
					return err
				}
				continue
			}
		}
		if name == "" {
			name = field.Name
		}

		fieldPath := joinPath(path, name)
		value, present := lookup(obj, name)
		if !present || value == nil {
			if omitEmpty {
				continue
			}
			return &MissingFieldError{Path: fieldPath}
		}

		if err := checkRequired(field.Type, value, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func parseTag(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return "", false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty, false
}

// lookup mirrors encoding/json key matching: exact first, then case-insensitive.
func lookup(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
