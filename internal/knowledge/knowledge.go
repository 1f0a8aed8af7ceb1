// Package knowledge provides the core value objects for domain-specific
// tacit knowledge: the principles, constraints, quality criteria, expert
// personas, and test cases that make implicit expert know-how explicit as
// structured configuration. The types are designed to be constructed once
// at registration time from static definitions or a loaded document, and
// read thereafter.
//
// Knowledge Model:
//   - QualityCriterion: named, weighted evaluation dimension
//   - ExpertPersona: role/background framing for expert-voiced prompts
//   - DomainKnowledge: aggregate of all tacit-knowledge collections
//   - CaseExample / CaseLibrary: deterministic-ish scoring fixtures
//   - DomainConfig: complete per-domain configuration
//
// All collection fields default to empty and absence of data never raises;
// downstream scoring degrades to documented neutral defaults instead.
package knowledge

// QualityCriterion is a single weighted evaluation dimension for a domain.
// Criterion names are unique within their owning DomainKnowledge.
// Immutable after construction.
type QualityCriterion struct {
	// Name identifies the criterion and doubles as the metric key in
	// evaluation score maps.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Weight is the criterion's share of the overall score, in [0,1].
	Weight float64 `json:"weight" yaml:"weight" validate:"min=0,max=1"`

	// Description explains the criterion for human readers and prompts.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// EvaluationPrompt is an optional question an LLM judge could be asked
	// for this criterion. Omitted from the serialized summary view.
	EvaluationPrompt string `json:"evaluation_prompt,omitempty" yaml:"evaluation_prompt,omitempty"`
}

// ExpertPersona describes a domain expert used to frame instructions as if
// written by that expert. Ordering in the owning slice is significant:
// index 0 is the primary persona used for single-persona contexts.
type ExpertPersona struct {
	// Role names the expert, e.g. "내과 전문의".
	Role string `json:"role" yaml:"role" validate:"required"`

	// Focus is the expert's area of concentration.
	Focus string `json:"focus" yaml:"focus"`

	// Background summarizes credentials and experience.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`

	// ThinkingApproach describes how the expert reasons. Omitted from the
	// serialized summary view.
	ThinkingApproach string `json:"thinking_approach,omitempty" yaml:"thinking_approach,omitempty"`
}

// DomainKnowledge aggregates the tacit knowledge of a single domain.
// Every field tolerates its zero value; an empty DomainKnowledge is valid
// and simply produces neutral evaluation results.
type DomainKnowledge struct {
	// Principles are ordered guidance statements. Order is presentation
	// priority: earlier principles are surfaced first when truncating.
	Principles []string `json:"principles,omitempty" yaml:"principles,omitempty"`

	// Constraints are hard rules that must never be violated. A constraint
	// may semantically encode a forbidden-keyword pattern that evaluators
	// detect heuristically.
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	// QualityCriteria are the weighted evaluation dimensions, names unique.
	QualityCriteria []QualityCriterion `json:"quality_criteria,omitempty" yaml:"quality_criteria,omitempty" validate:"dive"`

	// ThinkingStyles are expert reasoning heuristics used for prompt
	// mutation and refinement guidance.
	ThinkingStyles []string `json:"thinking_styles,omitempty" yaml:"thinking_styles,omitempty"`

	// ExpertPersonas are the domain experts, primary persona first.
	ExpertPersonas []ExpertPersona `json:"expert_personas,omitempty" yaml:"expert_personas,omitempty" validate:"dive"`

	// Terminology maps domain terms to their definitions.
	Terminology map[string]string `json:"terminology,omitempty" yaml:"terminology,omitempty"`

	// Patterns are positive exemplars of good domain responses.
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`

	// AntiPatterns are negative exemplars to avoid.
	AntiPatterns []string `json:"anti_patterns,omitempty" yaml:"anti_patterns,omitempty"`
}

// PrimaryPersona returns the first expert persona and whether one exists.
func (k DomainKnowledge) PrimaryPersona() (ExpertPersona, bool) {
	if len(k.ExpertPersonas) == 0 {
		return ExpertPersona{}, false
	}
	return k.ExpertPersonas[0], true
}

// KnowledgeFromMap builds a DomainKnowledge from a generic key-value
// document. Missing keys yield empty collections; unknown keys are ignored.
// Criterion and persona entries that are not maps are skipped.
func KnowledgeFromMap(data map[string]any) DomainKnowledge {
	k := DomainKnowledge{
		Principles:     stringSlice(data["principles"]),
		Constraints:    stringSlice(data["constraints"]),
		ThinkingStyles: stringSlice(data["thinking_styles"]),
		Terminology:    stringMap(data["terminology"]),
		Patterns:       stringSlice(data["patterns"]),
		AntiPatterns:   stringSlice(data["anti_patterns"]),
	}

	for _, entry := range anySlice(data["quality_criteria"]) {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		k.QualityCriteria = append(k.QualityCriteria, QualityCriterion{
			Name:             stringValue(m["name"]),
			Weight:           floatValue(m["weight"]),
			Description:      stringValue(m["description"]),
			EvaluationPrompt: stringValue(m["evaluation_prompt"]),
		})
	}

	for _, entry := range anySlice(data["expert_personas"]) {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		k.ExpertPersonas = append(k.ExpertPersonas, ExpertPersona{
			Role:             stringValue(m["role"]),
			Focus:            stringValue(m["focus"]),
			Background:       stringValue(m["background"]),
			ThinkingApproach: stringValue(m["thinking_approach"]),
		})
	}

	return k
}
