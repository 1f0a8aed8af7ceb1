package validators

import (
	"fmt"
	"io"
	"log/slog"
)

// Spec field names shared by all validator documents.
const (
	specFieldType           = "type"
	specFieldName           = "name"
	specFieldDescription    = "description"
	specFieldFailureMessage = "failure_message"
)

// FromSpec decodes a single validator specification document of the form
// {type, name, description, failure_message, ...type-specific fields...}.
// Recognized types are RegexValidator, KeywordValidator, and
// JsonSchemaValidator.
func FromSpec(spec map[string]any) (Validator, error) {
	typeName, _ := spec[specFieldType].(string)
	name, _ := spec[specFieldName].(string)
	description, _ := spec[specFieldDescription].(string)
	failureMessage, _ := spec[specFieldFailureMessage].(string)

	switch typeName {
	case "RegexValidator":
		pattern, ok := spec["pattern"].(string)
		if !ok || pattern == "" {
			return nil, fmt.Errorf("%w: RegexValidator requires a pattern", ErrInvalidValidatorSpec)
		}
		return NewRegexValidator(pattern, name, description, failureMessage)

	case "KeywordValidator":
		keywords := decodeStrings(spec["keywords"])
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: KeywordValidator requires keywords", ErrInvalidValidatorSpec)
		}
		mustInclude := true
		if v, ok := spec["must_include"].(bool); ok {
			mustInclude = v
		}
		return NewKeywordValidator(keywords, mustInclude, name, description, failureMessage), nil

	case "JsonSchemaValidator":
		schema, _ := spec["schema"].(map[string]any)
		return NewJSONSchemaValidator(schema, name, description, failureMessage), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidatorType, typeName)
	}
}

// FromSpecs decodes a slice of validator specifications. Invalid entries
// are logged at warning level and skipped; decoding never fails as a
// whole, matching the partial-failure tolerance of directory loading.
func FromSpecs(specs []map[string]any, logger *slog.Logger) []Validator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := make([]Validator, 0, len(specs))
	for _, spec := range specs {
		v, err := FromSpec(spec)
		if err != nil {
			logger.Warn("skipping invalid validator spec", "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
