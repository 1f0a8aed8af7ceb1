package critique

import (
	"fmt"
	"sort"
	"strings"

	"github.com/promptforge/tacit/internal/knowledge"
)

// emptyListMarker is rendered in place of empty principle, constraint, or
// thinking-style lists.
const emptyListMarker = "(없음)"

// defaultCriteriaMarker is rendered when a domain declares no quality
// criteria.
const defaultCriteriaMarker = "(기본 품질 기준 적용)"

// templateVars holds the named fields custom templates may reference as
// {name} placeholders. Each prompt kind exposes its own closed subset:
// {critique} exists only in refinement templates, {quality_criteria} and
// {scores} only in critique templates.
type templateVars struct {
	instruction     string
	examples        string
	critique        string
	domainType      string
	domainName      string
	principles      string
	constraints     string
	qualityCriteria string
	thinkingStyles  string
	scores          string
}

// renderCritique substitutes the critique-template placeholder set.
// Placeholders outside the set are left verbatim: a template mismatch
// degrades the output instead of failing the critique step.
func (v templateVars) renderCritique(template string) string {
	replacer := strings.NewReplacer(
		"{instruction}", v.instruction,
		"{examples}", v.examples,
		"{domain_type}", v.domainType,
		"{domain_name}", v.domainName,
		"{principles}", v.principles,
		"{constraints}", v.constraints,
		"{quality_criteria}", v.qualityCriteria,
		"{thinking_styles}", v.thinkingStyles,
		"{scores}", v.scores,
	)
	return replacer.Replace(template)
}

// renderRefinement substitutes the refinement-template placeholder set,
// with the same leave-verbatim handling of anything outside it.
func (v templateVars) renderRefinement(template string) string {
	replacer := strings.NewReplacer(
		"{instruction}", v.instruction,
		"{examples}", v.examples,
		"{critique}", v.critique,
		"{domain_type}", v.domainType,
		"{domain_name}", v.domainName,
		"{principles}", v.principles,
		"{constraints}", v.constraints,
		"{thinking_styles}", v.thinkingStyles,
	)
	return replacer.Replace(template)
}

// formatList renders items as a numbered list, or the empty-list marker.
func formatList(items []string) string {
	if len(items) == 0 {
		return emptyListMarker
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}

// formatCriteria renders quality criteria as bullets with integer weight
// percentages and optional descriptions.
func formatCriteria(criteria []knowledge.QualityCriterion) string {
	if len(criteria) == 0 {
		return defaultCriteriaMarker
	}
	lines := make([]string, 0, len(criteria))
	for _, qc := range criteria {
		line := fmt.Sprintf("- %s (가중치: %d%%)", qc.Name, int(qc.Weight*100))
		if qc.Description != "" {
			line += " - " + qc.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// formatScores renders evaluation scores as bullets with integer
// percentages, sorted by metric name for stable output.
func formatScores(scores map[string]float64) string {
	if len(scores) == 0 {
		return ""
	}
	metrics := make([]string, 0, len(scores))
	for metric := range scores {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	lines := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		lines = append(lines, fmt.Sprintf("- %s: %d%%", metric, int(scores[metric]*100)))
	}
	return strings.Join(lines, "\n")
}
