package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidBody reports a request body that is not a JSON object.
	ErrInvalidBody = errors.New("request body must be a JSON object")
	// ErrInvalidField reports a field whose value cannot be cast to its declared type.
	ErrInvalidField = errors.New("invalid field value")
)

// FieldError names the field that failed to cast.
type FieldError struct {
	Field string
	Kind  string
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot cast %q to %s for field %s", fmt.Sprint(e.Value), e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

type fieldKind string

const (
	kindString  fieldKind = "string"
	kindBoolean fieldKind = "boolean"
)

// todoFields enumerates the accepted body fields and their types.
var todoFields = []struct {
	name string
	kind fieldKind
}{
	{name: "title", kind: kindString},
	{name: "is_completed", kind: kindBoolean},
}

// DecodeTodoInput parses a JSON object body into a TodoInput, casting values
// to each field's declared type. Unknown fields are ignored and an empty body
// yields an input with every field absent.
func DecodeTodoInput(body []byte) (TodoInput, error) {
	var in TodoInput
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if raw == nil {
		return in, ErrInvalidBody
	}

	for _, f := range todoFields {
		v, ok := raw[f.name]
		if !ok || v == nil {
			continue
		}
		switch f.kind {
		case kindString:
			s, err := castString(f.name, v)
			if err != nil {
				return TodoInput{}, err
			}
			in.Title = &s
		case kindBoolean:
			b, err := castBoolean(f.name, v)
			if err != nil {
				return TodoInput{}, err
			}
			in.IsCompleted = &b
		}
	}
	return in, nil
}

func castString(field string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String(), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return "", &FieldError{Field: field, Kind: string(kindString), Value: v}
}

func castBoolean(field string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch t {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	case json.Number:
		f, err := t.Float64()
		if err == nil && f == 1 {
			return true, nil
		}
		if err == nil && f == 0 {
			return false, nil
		}
	}
	return false, &FieldError{Field: field, Kind: string(kindBoolean), Value: v}
}
