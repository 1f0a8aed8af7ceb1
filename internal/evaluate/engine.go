package evaluate

import (
	"strings"

	"github.com/promptforge/tacit/internal/knowledge"
)

// Heuristics is the strategy an Engine delegates domain-specific judgment
// to. Implementations must be deterministic for the same inputs and must
// not perform I/O.
type Heuristics interface {
	// CheckAccuracy scores the response against ground truth. The second
	// return value reports whether the heuristics implement an accuracy
	// check at all; when false the accuracy metric is omitted even if
	// ground truth was supplied.
	CheckAccuracy(response, groundTruth string) (float64, bool)

	// ViolatesConstraint reports whether the response violates the given
	// constraint text.
	ViolatesConstraint(response, constraint string) bool

	// AlignsWithPrinciple reports whether the response reflects the given
	// principle.
	AlignsWithPrinciple(response, principle string) bool

	// EvaluateCriterion scores the response against one quality criterion,
	// in [0,1].
	EvaluateCriterion(response string, criterion knowledge.QualityCriterion) float64
}

// ConstraintScorer is an optional Heuristics extension. Strategies that
// implement it replace the engine's default constraint aggregation
// wholesale, e.g. to widen the denominator with pattern checks of their
// own.
type ConstraintScorer interface {
	ScoreConstraints(response string, constraints []string) float64
}

// PrincipleScorer is an optional Heuristics extension replacing the
// engine's default principle aggregation, e.g. to score against built-in
// principles when the domain declares none.
type PrincipleScorer interface {
	ScorePrinciples(response string, principles []string) float64
}

// Engine is the shared evaluator implementation. It owns the evaluation
// sequence and weighted aggregation while deferring every domain-specific
// judgment to its Heuristics strategy.
type Engine struct {
	cfg        knowledge.DomainConfig
	heuristics Heuristics
}

var _ Evaluator = (*Engine)(nil)

// NewEngine returns an Engine over the given configuration and heuristics.
// A nil heuristics falls back to the permissive base heuristics.
func NewEngine(cfg knowledge.DomainConfig, heuristics Heuristics) *Engine {
	if heuristics == nil {
		heuristics = baseHeuristics{}
	}
	return &Engine{cfg: cfg, heuristics: heuristics}
}

// Evaluate computes the multi-dimensional score vector for a response.
//
// Metrics produced, in order: accuracy (when ground truth is supplied and
// the heuristics implement it), constraint_compliance, principle_alignment,
// one metric per declared quality criterion, case_coverage (when the
// question matched at least one library case), and the weighted overall.
func (e *Engine) Evaluate(response, groundTruth, question string) map[string]float64 {
	scores := make(map[string]float64)

	if groundTruth != "" {
		if accuracy, ok := e.heuristics.CheckAccuracy(response, groundTruth); ok {
			scores[MetricAccuracy] = clamp01(accuracy)
		}
	}

	scores[MetricConstraintCompliance] = e.constraintCompliance(response)
	scores[MetricPrincipleAlignment] = e.principleAlignment(response)

	for _, criterion := range e.cfg.Knowledge.QualityCriteria {
		scores[criterion.Name] = clamp01(e.heuristics.EvaluateCriterion(response, criterion))
	}

	if coverage, ok := e.caseCoverage(response, question); ok {
		scores[MetricCaseCoverage] = coverage
	}

	scores[MetricOverall] = weightedOverall(scores, e.cfg.Knowledge.QualityCriteria)

	return scores
}

// constraintCompliance returns 1 minus the violated fraction of the
// domain's constraints, floored at 0. An empty constraint set scores 1.0.
func (e *Engine) constraintCompliance(response string) float64 {
	constraints := e.cfg.Knowledge.Constraints
	if scorer, ok := e.heuristics.(ConstraintScorer); ok {
		return clamp01(scorer.ScoreConstraints(response, constraints))
	}
	if len(constraints) == 0 {
		return 1.0
	}

	violations := 0
	for _, constraint := range constraints {
		if e.heuristics.ViolatesConstraint(response, constraint) {
			violations++
		}
	}

	return clamp01(1.0 - float64(violations)/float64(len(constraints)))
}

// principleAlignment returns the aligned fraction of the domain's
// principles. An empty principle set scores 1.0.
func (e *Engine) principleAlignment(response string) float64 {
	principles := e.cfg.Knowledge.Principles
	if scorer, ok := e.heuristics.(PrincipleScorer); ok {
		return clamp01(scorer.ScorePrinciples(response, principles))
	}
	if len(principles) == 0 {
		return 1.0
	}

	aligned := 0
	for _, principle := range principles {
		if e.heuristics.AlignsWithPrinciple(response, principle) {
			aligned++
		}
	}

	return float64(aligned) / float64(len(principles))
}

// caseCoverage scores the response against library cases whose question
// resembles the asked one. The boolean reports whether any case matched;
// when none did the metric is omitted entirely rather than zeroed.
func (e *Engine) caseCoverage(response, question string) (float64, bool) {
	if question == "" || e.cfg.CaseLibrary.IsEmpty() {
		return 0, false
	}

	var matches []knowledge.CaseExample
	for _, c := range e.cfg.CaseLibrary.AllCases() {
		if questionsMatch(question, c.Question) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return 0, false
	}

	total := 0.0
	for _, c := range matches {
		total += scoreAgainstCase(response, c)
	}
	return total / float64(len(matches)), true
}

// questionsMatch reports whether two questions share more than half of the
// shorter question's words, case-insensitively.
func questionsMatch(q1, q2 string) bool {
	words1 := wordSet(q1)
	words2 := wordSet(q2)

	minLen := len(words1)
	if len(words2) < minLen {
		minLen = len(words2)
	}
	if minLen == 0 {
		return false
	}

	overlap := 0
	for w := range words1 {
		if _, ok := words2[w]; ok {
			overlap++
		}
	}

	return float64(overlap)/float64(minLen) > questionOverlapThreshold
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// scoreAgainstCase is (found expected fraction) minus (found forbidden
// fraction), floored at 0. Case elements match as case-insensitive
// substrings. No expected elements means full expected credit.
func scoreAgainstCase(response string, c knowledge.CaseExample) float64 {
	lower := strings.ToLower(response)

	expectedScore := 1.0
	if len(c.ExpectedElements) > 0 {
		found := 0
		for _, elem := range c.ExpectedElements {
			if strings.Contains(lower, strings.ToLower(elem)) {
				found++
			}
		}
		expectedScore = float64(found) / float64(len(c.ExpectedElements))
	}

	forbiddenPenalty := 0.0
	if len(c.ForbiddenElements) > 0 {
		found := 0
		for _, elem := range c.ForbiddenElements {
			if strings.Contains(lower, strings.ToLower(elem)) {
				found++
			}
		}
		forbiddenPenalty = float64(found) / float64(len(c.ForbiddenElements))
	}

	return clamp01(expectedScore - forbiddenPenalty)
}

// weightedOverall aggregates every metric except "overall" itself into a
// weighted mean. A metric named after a declared quality criterion takes
// that criterion's weight, shadowing the standard defaults; unrecognized
// metrics weigh 0.1. An empty score map aggregates to 0.
func weightedOverall(scores map[string]float64, criteria []knowledge.QualityCriterion) float64 {
	criterionWeights := make(map[string]float64, len(criteria))
	for _, qc := range criteria {
		criterionWeights[qc.Name] = qc.Weight
	}

	standardWeights := map[string]float64{
		MetricAccuracy:             defaultAccuracyWeight,
		MetricConstraintCompliance: defaultConstraintWeight,
		MetricPrincipleAlignment:   defaultPrincipleWeight,
		MetricCaseCoverage:         defaultCaseWeight,
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for metric, score := range scores {
		if metric == MetricOverall {
			continue
		}
		weight, ok := criterionWeights[metric]
		if !ok {
			if weight, ok = standardWeights[metric]; !ok {
				weight = defaultMetricWeight
			}
		}
		weightedSum += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return clamp01(weightedSum / totalWeight)
}

// baseHeuristics is the default strategy: a negation-cue constraint check
// with no forbidden-keyword extraction, permissive principle alignment,
// and a neutral criterion score. Domains that need sharper judgment plug
// in their own Heuristics.
type baseHeuristics struct{}

var _ Heuristics = baseHeuristics{}

// CheckAccuracy reports not-implemented: the base strategy has no
// generically sensible accuracy heuristic.
func (baseHeuristics) CheckAccuracy(_, _ string) (float64, bool) { return 0, false }

// ViolatesConstraint detects a violation when the constraint carries a
// negation cue and one of its extracted forbidden keywords appears in the
// response. The base extraction yields nothing, so this only fires for
// strategies embedding baseHeuristics with their own extraction.
func (baseHeuristics) ViolatesConstraint(response, constraint string) bool {
	if !hasNegationCue(constraint) {
		return false
	}
	lower := strings.ToLower(response)
	for _, kw := range extractForbiddenKeywords(constraint) {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// AlignsWithPrinciple is permissive: every principle counts as aligned.
func (baseHeuristics) AlignsWithPrinciple(_, _ string) bool { return true }

// EvaluateCriterion returns the neutral score.
func (baseHeuristics) EvaluateCriterion(_ string, _ knowledge.QualityCriterion) float64 {
	return 0.5
}

// negationCues are the phrasings that mark a constraint as prohibiting
// something, e.g. "~ 금지" (forbidden) or "~하지 않" (do not).
var negationCues = []string{"금지", "하지 않"}

func hasNegationCue(constraint string) bool {
	lower := strings.ToLower(constraint)
	for _, cue := range negationCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// extractForbiddenKeywords pulls forbidden keywords out of a constraint
// text. The base implementation extracts nothing; richer strategies
// override violation detection wholesale instead.
func extractForbiddenKeywords(_ string) []string { return nil }
