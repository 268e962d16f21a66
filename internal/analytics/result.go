package analytics

import (
	"encoding/json"
	"strings"
)

// ResultKind identifies which branch of a Result is populated.
type ResultKind int

const (
	// KindEmpty means the command produced no output. The result behaves as
	// an empty sequence, never as nil.
	KindEmpty ResultKind = iota
	// KindObject is a decoded JSON object.
	KindObject
	// KindList is a decoded JSON array.
	KindList
	// KindText is the raw-text fallback: output was present but not a JSON
	// object or array. Reaching this branch is not an error.
	KindText
)

// Result is the decoded output of one admin-script invocation. Callers
// switch on Kind (or use the typed accessors) so the raw-text fallback has
// to be handled explicitly instead of assuming a shape.
type Result struct {
	kind   ResultKind
	object map[string]interface{}
	list   []interface{}
	text   string
}

// decodeResult classifies trimmed stdout per the script's output contract:
// empty input is an empty sequence, a JSON object or array is structured
// data, anything else (including bare JSON scalars) passes through verbatim.
func decodeResult(stdout []byte) Result {
	trimmed := strings.TrimSpace(string(stdout))
	if trimmed == "" {
		return Result{kind: KindEmpty}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		switch v := decoded.(type) {
		case map[string]interface{}:
			return Result{kind: KindObject, object: v}
		case []interface{}:
			return Result{kind: KindList, list: v}
		}
	}

	return Result{kind: KindText, text: trimmed}
}

// ObjectResult builds an object-kind Result.
func ObjectResult(object map[string]interface{}) Result {
	return Result{kind: KindObject, object: object}
}

// ListResult builds a list-kind Result.
func ListResult(list []interface{}) Result {
	return Result{kind: KindList, list: list}
}

// TextResult builds a raw-text Result.
func TextResult(text string) Result {
	return Result{kind: KindText, text: text}
}

// EmptyResult builds the empty-sequence Result.
func EmptyResult() Result {
	return Result{kind: KindEmpty}
}

// Kind reports which branch is populated.
func (r Result) Kind() ResultKind {
	return r.kind
}

// Object returns the decoded JSON object. The bool is false for any other
// kind.
func (r Result) Object() (map[string]interface{}, bool) {
	if r.kind != KindObject {
		return nil, false
	}
	return r.object, true
}

// List returns the decoded JSON array. An empty result counts as a list: it
// returns a non-nil empty slice and true.
func (r Result) List() ([]interface{}, bool) {
	switch r.kind {
	case KindList:
		return r.list, true
	case KindEmpty:
		return []interface{}{}, true
	default:
		return nil, false
	}
}

// Text returns the raw-text fallback value. The bool is false for any other
// kind.
func (r Result) Text() (string, bool) {
	if r.kind != KindText {
		return "", false
	}
	return r.text, true
}

// IsEmpty reports whether the command produced no output.
func (r Result) IsEmpty() bool {
	return r.kind == KindEmpty
}

// Value returns the underlying data: a map, a slice, a string, or an empty
// slice for the empty result. Used when rendering or enveloping results.
func (r Result) Value() interface{} {
	switch r.kind {
	case KindObject:
		return r.object
	case KindList:
		return r.list
	case KindText:
		return r.text
	default:
		return []interface{}{}
	}
}

// MarshalJSON encodes the underlying value, so a Result embeds naturally in
// API responses.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}
