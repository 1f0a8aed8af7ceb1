// Package evaluate scores free-text responses against domain knowledge:
// constraint compliance, principle alignment, per-criterion quality, and
// coverage of matching test cases, aggregated into a weighted overall
// score.
//
// The scoring is deliberately heuristic. Substring and keyword-family
// matching stand in for model-based judgment so that evaluation stays
// deterministic, cheap, and testable; the exact heuristics are part of the
// system's contract and are pinned by tests.
//
// Score maps are variable-shaped: metrics backed by missing inputs (no
// ground truth, no matching case) are omitted rather than zeroed, so the
// key set can differ between calls against the same domain.
package evaluate

import "github.com/promptforge/tacit/internal/knowledge"

// Metric keys always or conditionally present in evaluation score maps.
const (
	// MetricOverall is the weighted aggregate, always present.
	MetricOverall = "overall"

	// MetricAccuracy is present only when ground truth was supplied.
	MetricAccuracy = "accuracy"

	// MetricConstraintCompliance is 1 minus the violated-constraint fraction.
	MetricConstraintCompliance = "constraint_compliance"

	// MetricPrincipleAlignment is the aligned-principle fraction.
	MetricPrincipleAlignment = "principle_alignment"

	// MetricCaseCoverage is present only when the question matched at least
	// one library case.
	MetricCaseCoverage = "case_coverage"
)

// Default weights for the standard metrics when the domain declares no
// criterion of the same name. A criterion that shares a standard metric's
// name silently overrides its default weight; that shadowing is existing
// behavior callers rely on.
const (
	defaultAccuracyWeight   = 0.30
	defaultConstraintWeight = 0.25
	defaultPrincipleWeight  = 0.20
	defaultCaseWeight       = 0.25
	defaultMetricWeight     = 0.10
)

// questionOverlapThreshold is the bag-of-words overlap ratio above which a
// library case is considered to match the asked question.
const questionOverlapThreshold = 0.5

// Evaluator scores a response against domain knowledge. Implementations
// are pure functions of their inputs: no I/O, deterministic for the same
// response, ground truth, and question.
//
// The returned map always contains MetricOverall; every value is in [0,1].
// Missing optional inputs never produce errors, only narrower score maps.
type Evaluator interface {
	Evaluate(response, groundTruth, question string) map[string]float64
}

// Factory constructs an Evaluator for a domain configuration. Registries
// map domain types to factories so the wired evaluator variant travels
// with the domain.
type Factory func(cfg knowledge.DomainConfig) Evaluator

// clamp01 ensures a value is within the range [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
