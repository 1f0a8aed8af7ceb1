// Package validators provides small pluggable boolean checks used as
// deterministic gates on generated text. Each validator answers a single
// question about a piece of text: does it match a pattern, does it contain
// (or avoid) a keyword set, does it parse as JSON.
//
// Validators are pure functions of their input text with no external I/O,
// which keeps them safe to run inside evaluation sweeps.
package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validator specification errors returned when decoding documents.
var (
	// ErrUnknownValidatorType indicates an unrecognized "type" field.
	ErrUnknownValidatorType = errors.New("unknown validator type")

	// ErrInvalidValidatorSpec indicates a spec missing required fields.
	ErrInvalidValidatorSpec = errors.New("invalid validator spec")
)

// Validator is the capability shared by all checks: a boolean verdict on a
// piece of text, plus identity and failure messaging for reporting.
type Validator interface {
	// Validate reports whether the text passes the check.
	Validate(text string) bool

	// Name identifies the validator in reports.
	Name() string

	// Description explains what the validator checks.
	Description() string

	// FailureMessage is the user-facing message when validation fails.
	FailureMessage() string
}

// base carries the identity fields shared by all validator variants.
type base struct {
	name           string
	description    string
	failureMessage string
}

func (b base) Name() string           { return b.name }
func (b base) Description() string    { return b.description }
func (b base) FailureMessage() string { return b.failureMessage }

// RegexValidator passes when its pattern matches anywhere in the text.
// Patterns are compiled with dotall semantics so multi-line responses are
// matched as a single body of text.
type RegexValidator struct {
	base
	pattern *regexp.Regexp
}

// NewRegexValidator compiles the pattern and returns the validator.
// Returns an error if the pattern does not compile.
func NewRegexValidator(pattern, name, description, failureMessage string) (*RegexValidator, error) {
	if name == "" {
		name = "Regex Check"
	}
	if failureMessage == "" {
		failureMessage = "Format mismatch"
	}
	re, err := regexp.Compile("(?ms)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile validator pattern %q: %w", pattern, err)
	}
	return &RegexValidator{
		base:    base{name: name, description: description, failureMessage: failureMessage},
		pattern: re,
	}, nil
}

// Validate reports whether the pattern matches the text.
func (v *RegexValidator) Validate(text string) bool { return v.pattern.MatchString(text) }

// KeywordValidator checks presence or absence of a keyword set,
// case-insensitively. With MustInclude true, every keyword must appear;
// with MustInclude false, none may appear.
type KeywordValidator struct {
	base
	keywords    []string
	mustInclude bool
}

// NewKeywordValidator returns a keyword presence/absence validator.
func NewKeywordValidator(keywords []string, mustInclude bool, name, description, failureMessage string) *KeywordValidator {
	if name == "" {
		name = "Keyword Check"
	}
	if failureMessage == "" {
		failureMessage = "Keyword validation failed"
	}
	return &KeywordValidator{
		base:        base{name: name, description: description, failureMessage: failureMessage},
		keywords:    keywords,
		mustInclude: mustInclude,
	}
}

// Validate reports whether the keyword condition holds for the text.
func (v *KeywordValidator) Validate(text string) bool {
	lower := strings.ToLower(text)
	found := 0
	for _, kw := range v.keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}
	if v.mustInclude {
		return found == len(v.keywords)
	}
	return found == 0
}

// fencedJSON locates a ```json fenced block inside markdown-style text.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// JSONSchemaValidator passes when the text (or its fenced ```json block,
// if one exists) parses as JSON. The schema field is carried for the
// document round-trip.
//
// TODO: enforce schema conformance once a schema library is adopted;
// today only parse success is checked.
type JSONSchemaValidator struct {
	base
	schema map[string]any
}

// NewJSONSchemaValidator returns a JSON parse validator.
func NewJSONSchemaValidator(schema map[string]any, name, description, failureMessage string) *JSONSchemaValidator {
	if name == "" {
		name = "JSON Check"
	}
	if failureMessage == "" {
		failureMessage = "Invalid JSON"
	}
	return &JSONSchemaValidator{
		base:   base{name: name, description: description, failureMessage: failureMessage},
		schema: schema,
	}
}

// Validate reports whether the text contains parseable JSON.
func (v *JSONSchemaValidator) Validate(text string) bool {
	doc := text
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		doc = m[1]
	}
	var parsed any
	return json.Unmarshal([]byte(doc), &parsed) == nil
}
