package knowledge

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDomainType is used when a document declares no domain_type.
const DefaultDomainType = "general"

// ErrInvalidConfig indicates that a domain configuration failed validation.
var ErrInvalidConfig = errors.New("invalid domain configuration")

// DomainConfig is the complete configuration for one domain: its tacit
// knowledge, prompt templates, case library, and validator specifications.
// A DomainConfig is immutable once built for the lifetime of the process;
// the registry holds shared references rather than copies.
type DomainConfig struct {
	// DomainType is the registry key, e.g. "medical".
	DomainType string `json:"domain_type" yaml:"domain_type" validate:"required"`

	// DomainName is the human-readable display name.
	DomainName string `json:"domain_name" yaml:"domain_name" validate:"required"`

	// Description summarizes the domain's purpose and stance.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Knowledge holds the domain's tacit knowledge.
	Knowledge DomainKnowledge `json:"tacit_knowledge" yaml:"tacit_knowledge"`

	// CritiqueTemplate overrides the default critique prompt structure
	// when non-empty. Placeholders use {name} syntax.
	CritiqueTemplate string `json:"critique_template,omitempty" yaml:"critique_template,omitempty"`

	// RefinementTemplate overrides the default refinement prompt structure
	// when non-empty.
	RefinementTemplate string `json:"refinement_template,omitempty" yaml:"refinement_template,omitempty"`

	// CaseLibrary holds the domain's test cases.
	CaseLibrary CaseLibrary `json:"case_library,omitempty" yaml:"case_library,omitempty"`

	// Metadata is an open mapping for version, author, references, etc.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Validators are validator specification documents, decoded lazily by
	// the validators package into deterministic gates on generated text.
	Validators []map[string]any `json:"validators,omitempty" yaml:"validators,omitempty"`
}

// Validate checks structural constraints: required identifiers and
// criterion weights within [0,1]. Returns nil if valid.
func (c *DomainConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ConfigFromMap builds a DomainConfig from a generic key-value document.
// Optional keys default: domain_type to "general", domain_name to the
// domain type. The knowledge block is read from "tacit_knowledge" with
// "knowledge" accepted as a legacy alias. Unknown keys are ignored.
func ConfigFromMap(data map[string]any) DomainConfig {
	knowledgeData := anyMap(data["tacit_knowledge"])
	if knowledgeData == nil {
		knowledgeData = anyMap(data["knowledge"])
	}

	domainType := stringValue(data["domain_type"])
	if domainType == "" {
		domainType = DefaultDomainType
	}
	domainName := stringValue(data["domain_name"])
	if domainName == "" {
		domainName = domainType
	}

	var validatorSpecs []map[string]any
	for _, entry := range anySlice(data["validators"]) {
		if m, ok := entry.(map[string]any); ok {
			validatorSpecs = append(validatorSpecs, m)
		}
	}

	return DomainConfig{
		DomainType:         domainType,
		DomainName:         domainName,
		Description:        stringValue(data["description"]),
		Knowledge:          KnowledgeFromMap(knowledgeData),
		CritiqueTemplate:   stringValue(data["critique_template"]),
		RefinementTemplate: stringValue(data["refinement_template"]),
		CaseLibrary:        CaseLibraryFromMap(anyMap(data["case_library"])),
		Metadata:           anyMap(data["metadata"]),
		Validators:         validatorSpecs,
	}
}

// ConfigFromYAML parses a YAML (or JSON, which YAML subsumes) document
// into a DomainConfig.
func ConfigFromYAML(doc []byte) (DomainConfig, error) {
	var data map[string]any
	if err := yaml.Unmarshal(doc, &data); err != nil {
		return DomainConfig{}, fmt.Errorf("parse domain document: %w", err)
	}
	return ConfigFromMap(data), nil
}

// LoadConfigFile reads and parses a domain document from disk.
func LoadConfigFile(path string) (DomainConfig, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return DomainConfig{}, fmt.Errorf("read domain document %s: %w", path, err)
	}
	cfg, err := ConfigFromYAML(doc)
	if err != nil {
		return DomainConfig{}, fmt.Errorf("domain document %s: %w", path, err)
	}
	return cfg, nil
}

// ToMap projects the configuration to a generic document for serialization
// and rendering. The projection is intentionally lossy: quality criteria
// drop their evaluation prompt and personas drop their thinking approach,
// matching the summary view the UI consumes. ToMap(ConfigFromMap(d)) is
// therefore not an identity; this asymmetry is a known limitation of the
// document format, not a bug.
func (c DomainConfig) ToMap() map[string]any {
	criteria := make([]map[string]any, 0, len(c.Knowledge.QualityCriteria))
	for _, qc := range c.Knowledge.QualityCriteria {
		criteria = append(criteria, map[string]any{
			"name":        qc.Name,
			"weight":      qc.Weight,
			"description": qc.Description,
		})
	}

	personas := make([]map[string]any, 0, len(c.Knowledge.ExpertPersonas))
	for _, ep := range c.Knowledge.ExpertPersonas {
		personas = append(personas, map[string]any{
			"role":       ep.Role,
			"focus":      ep.Focus,
			"background": ep.Background,
		})
	}

	return map[string]any{
		"domain_type": c.DomainType,
		"domain_name": c.DomainName,
		"description": c.Description,
		"tacit_knowledge": map[string]any{
			"principles":       c.Knowledge.Principles,
			"constraints":      c.Knowledge.Constraints,
			"quality_criteria": criteria,
			"thinking_styles":  c.Knowledge.ThinkingStyles,
			"expert_personas":  personas,
			"terminology":      c.Knowledge.Terminology,
			"patterns":         c.Knowledge.Patterns,
			"anti_patterns":    c.Knowledge.AntiPatterns,
		},
		"critique_template":   c.CritiqueTemplate,
		"refinement_template": c.RefinementTemplate,
		"metadata":            c.Metadata,
	}
}

// Summary returns configuration counts for logging and rendering.
func (c DomainConfig) Summary() map[string]any {
	return map[string]any{
		"domain_type":                    c.DomainType,
		"domain_name":                    c.DomainName,
		"description":                    c.Description,
		"num_principles":                 len(c.Knowledge.Principles),
		"num_constraints":                len(c.Knowledge.Constraints),
		"num_quality_criteria":           len(c.Knowledge.QualityCriteria),
		"num_thinking_styles":            len(c.Knowledge.ThinkingStyles),
		"num_expert_personas":            len(c.Knowledge.ExpertPersonas),
		"num_critical_cases":             len(c.CaseLibrary.CriticalCases),
		"num_edge_cases":                 len(c.CaseLibrary.EdgeCases),
		"has_custom_critique_template":   c.CritiqueTemplate != "",
		"has_custom_refinement_template": c.RefinementTemplate != "",
	}
}
