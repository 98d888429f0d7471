// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"bytes"
	"encoding/json"
)

// FieldError represents a single field-level validation failure.
//
// It is also the wire shape of one entry in the backend's "errors" array.
type FieldError struct {
	// Field is the form or JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// FieldErrors is an immutable mapping from field name to its ordered messages.
//
// Fields keep the order in which they first appeared; messages keep the order
// in which they were reported. The zero value is an empty mapping.
type FieldErrors struct {
	fields   []string
	messages map[string][]string
}

// FoldFieldErrors groups a flat list of field failures by field name.
//
// Example:
//
//	FoldFieldErrors([]FieldError{{"a", "m1"}, {"a", "m2"}, {"b", "m3"}})
//	// {"a": ["m1", "m2"], "b": ["m3"]}
func FoldFieldErrors(issues []FieldError) FieldErrors {
	folded := FieldErrors{messages: make(map[string][]string, len(issues))}

	for _, issue := range issues {
		if _, seen := folded.messages[issue.Field]; !seen {
			folded.fields = append(folded.fields, issue.Field)
		}
		folded.messages[issue.Field] = append(folded.messages[issue.Field], issue.Message)
	}

	return folded
}

// Len returns the number of distinct fields.
func (f FieldErrors) Len() int { return len(f.fields) }

// Fields returns the field names in first-seen order.
func (f FieldErrors) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Messages returns the messages reported for field, in reported order.
func (f FieldErrors) Messages(field string) []string {
	return append([]string(nil), f.messages[field]...)
}

// Map returns a plain copy of the mapping. Field order is lost.
func (f FieldErrors) Map() map[string][]string {
	out := make(map[string][]string, len(f.fields))
	for _, field := range f.fields {
		out[field] = f.Messages(field)
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object in field order.
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, field := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.messages[field])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
