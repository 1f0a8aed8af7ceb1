package knowledge

// DefaultDifficulty is assigned to cases that do not declare one.
const DefaultDifficulty = "medium"

// CaseExample is a fixed test question paired with the response elements
// that must and must not appear, used for deterministic-ish scoring of
// generated text.
type CaseExample struct {
	// Question is the user question the case represents.
	Question string `json:"question" yaml:"question" validate:"required"`

	// ExpectedElements are substrings a good response contains.
	ExpectedElements []string `json:"expected_elements,omitempty" yaml:"expected_elements,omitempty"`

	// ForbiddenElements are substrings a good response never contains.
	ForbiddenElements []string `json:"forbidden_elements,omitempty" yaml:"forbidden_elements,omitempty"`

	// Category groups related cases; matching is case-sensitive.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Difficulty is a free-form label, defaulting to "medium".
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// Explanation records why the case matters.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// CaseLibrary holds the three named buckets of test cases for a domain.
// Each bucket is independently populated and may be empty.
type CaseLibrary struct {
	// CriticalCases are must-pass scenarios, typically safety-critical.
	CriticalCases []CaseExample `json:"critical_cases,omitempty" yaml:"critical_cases,omitempty"`

	// EdgeCases exercise unusual or boundary situations.
	EdgeCases []CaseExample `json:"edge_cases,omitempty" yaml:"edge_cases,omitempty"`

	// CommonCases cover everyday questions.
	CommonCases []CaseExample `json:"common_cases,omitempty" yaml:"common_cases,omitempty"`
}

// IsEmpty reports whether the library holds no cases at all.
func (l CaseLibrary) IsEmpty() bool {
	return len(l.CriticalCases) == 0 && len(l.EdgeCases) == 0 && len(l.CommonCases) == 0
}

// AllCases returns every case in (critical, edge, common) order. The order
// matters only for iteration, not semantics.
func (l CaseLibrary) AllCases() []CaseExample {
	out := make([]CaseExample, 0, len(l.CriticalCases)+len(l.EdgeCases)+len(l.CommonCases))
	out = append(out, l.CriticalCases...)
	out = append(out, l.EdgeCases...)
	out = append(out, l.CommonCases...)
	return out
}

// CasesByCategory returns all cases whose category equals the given one,
// compared case-sensitively.
func (l CaseLibrary) CasesByCategory(category string) []CaseExample {
	var out []CaseExample
	for _, c := range l.AllCases() {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// CaseLibraryFromMap builds a CaseLibrary from a generic document. Each
// bucket is a list of category groups of the form
// {category: string, cases: [...]}; the group category is stamped onto
// every case in the group. Missing buckets yield empty slices and unknown
// keys are ignored.
func CaseLibraryFromMap(data map[string]any) CaseLibrary {
	return CaseLibrary{
		CriticalCases: parseCaseGroups(data["critical_cases"]),
		EdgeCases:     parseCaseGroups(data["edge_cases"]),
		CommonCases:   parseCaseGroups(data["common_cases"]),
	}
}

func parseCaseGroups(v any) []CaseExample {
	var out []CaseExample
	for _, groupEntry := range anySlice(v) {
		group, ok := groupEntry.(map[string]any)
		if !ok {
			continue
		}
		category := stringValue(group["category"])
		for _, caseEntry := range anySlice(group["cases"]) {
			m, ok := caseEntry.(map[string]any)
			if !ok {
				continue
			}
			c := CaseExample{
				Question:          stringValue(m["question"]),
				ExpectedElements:  stringSlice(m["expected_elements"]),
				ForbiddenElements: stringSlice(m["forbidden_elements"]),
				Category:          category,
				Difficulty:        stringValue(m["difficulty"]),
				Explanation:       stringValue(m["explanation"]),
			}
			if c.Difficulty == "" {
				c.Difficulty = DefaultDifficulty
			}
			out = append(out, c)
		}
	}
	return out
}
