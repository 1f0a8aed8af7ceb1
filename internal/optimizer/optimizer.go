// Package optimizer composes registry lookup, domain evaluation, and
// critique generation into a single facade for prompt optimization. The
// facade exposes the operations an optimization loop needs: instruction
// enhancement, response evaluation, critique and refinement prompt
// generation, and validation sweeps over the domain's case library.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/promptforge/tacit/internal/critique"
	"github.com/promptforge/tacit/internal/evaluate"
	"github.com/promptforge/tacit/internal/knowledge"
	"github.com/promptforge/tacit/internal/validators"
)

// enhanceTopN caps how many principles and constraints the enhanced
// instruction carries. Truncation to the top three is a conciseness
// policy: the full lists belong in critique prompts, not in every
// instruction.
const enhanceTopN = 3

// responseExcerptLen is the per-case response truncation length in
// validation reports.
const responseExcerptLen = 200

// forbiddenElementPenalty is subtracted per forbidden element found during
// a case sweep.
const forbiddenElementPenalty = 0.25

// Optimizer wraps a domain configuration with an evaluator and a critique
// generator. The evaluator may be nil, in which case evaluation falls back
// to a simplified inline heuristic.
type Optimizer struct {
	cfg       knowledge.DomainConfig
	evaluator evaluate.Evaluator
	generator *critique.Generator
	client    Client
	logger    *slog.Logger
}

// New returns an Optimizer over the configuration. Evaluator and client
// are optional; a nil logger is replaced with a discard logger.
func New(cfg knowledge.DomainConfig, evaluator evaluate.Evaluator, client Client, logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Optimizer{
		cfg:       cfg,
		evaluator: evaluator,
		generator: critique.NewGenerator(cfg),
		client:    client,
		logger:    logger,
	}
}

// Config returns the wrapped domain configuration.
func (o *Optimizer) Config() knowledge.DomainConfig { return o.cfg }

// EnhanceInstruction prepends the domain identity, top principles, and top
// constraints to a base instruction.
func (o *Optimizer) EnhanceInstruction(base string) string {
	k := o.cfg.Knowledge

	var b strings.Builder
	fmt.Fprintf(&b, "당신은 %s 분야의 전문가입니다.", o.cfg.DomainName)

	if len(k.Principles) > 0 {
		b.WriteString("\n\n핵심 원칙:\n")
		b.WriteString(bulleted(topN(k.Principles, enhanceTopN)))
	}
	if len(k.Constraints) > 0 {
		b.WriteString("\n\n준수사항:\n")
		b.WriteString(bulleted(topN(k.Constraints, enhanceTopN)))
	}

	b.WriteString("\n\n")
	b.WriteString(base)
	return b.String()
}

// ThinkingStyles returns the domain's thinking styles for prompt mutation.
func (o *Optimizer) ThinkingStyles() []string { return o.cfg.Knowledge.ThinkingStyles }

// ExpertPrompt returns the primary expert persona formatted as a framing
// prompt, or a generic domain-expert phrasing when no personas are
// registered.
func (o *Optimizer) ExpertPrompt() string {
	persona, ok := o.cfg.Knowledge.PrimaryPersona()
	if !ok {
		return fmt.Sprintf("당신은 %s 분야의 전문가입니다.", o.cfg.DomainName)
	}
	return fmt.Sprintf("당신은 %s입니다.\n전문 분야: %s\n배경: %s\n접근 방식: %s",
		persona.Role, persona.Focus, persona.Background, persona.ThinkingApproach)
}

// EvaluateResponse scores a response with the domain evaluator, or with a
// simplified inline heuristic when no evaluator is wired: word-overlap
// accuracy, a basic forbidden-keyword constraint scan, and a plain mean
// overall.
func (o *Optimizer) EvaluateResponse(response, groundTruth, question string) map[string]float64 {
	if o.evaluator != nil {
		return o.evaluator.Evaluate(response, groundTruth, question)
	}
	return o.fallbackEvaluate(response, groundTruth)
}

func (o *Optimizer) fallbackEvaluate(response, groundTruth string) map[string]float64 {
	scores := make(map[string]float64)

	if groundTruth != "" {
		scores[evaluate.MetricAccuracy] = wordOverlap(response, groundTruth)
	}
	scores[evaluate.MetricConstraintCompliance] = o.basicConstraintCompliance(response)

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if len(scores) > 0 {
		scores[evaluate.MetricOverall] = sum / float64(len(scores))
	} else {
		scores[evaluate.MetricOverall] = 0.5
	}

	return scores
}

// wordOverlap is the fraction of ground-truth words present in the
// response, 0.5 when the ground truth has no words.
func wordOverlap(response, groundTruth string) float64 {
	truthWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(groundTruth)) {
		truthWords[w] = struct{}{}
	}
	if len(truthWords) == 0 {
		return 0.5
	}

	responseWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(response)) {
		responseWords[w] = struct{}{}
	}

	overlap := 0
	for w := range truthWords {
		if _, ok := responseWords[w]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(truthWords))
}

// basicConstraintCompliance scans prohibition constraints ("금지") for
// their longer terms appearing in the response. Far cruder than a wired
// evaluator; it exists so evaluation still degrades gracefully for domains
// registered without one.
func (o *Optimizer) basicConstraintCompliance(response string) float64 {
	constraints := o.cfg.Knowledge.Constraints
	if len(constraints) == 0 {
		return 1.0
	}

	responseLower := strings.ToLower(response)
	violations := 0
	for _, constraint := range constraints {
		if !strings.Contains(constraint, "금지") {
			continue
		}
		for _, term := range significantTerms(constraint) {
			if strings.Contains(responseLower, strings.ToLower(term)) {
				violations++
				break
			}
		}
	}

	score := 1.0 - float64(violations)/float64(len(constraints))
	if score < 0 {
		return 0
	}
	return score
}

// significantTerms keeps the words long enough to be meaningful matches.
func significantTerms(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// ErrNoClient indicates an operation requiring LLM completions was called
// on an Optimizer constructed without a client.
var ErrNoClient = errors.New("no llm client configured")

// RefineCycle runs one critique-and-refine round through the configured
// client: the critique prompt yields a critique, the refinement prompt
// built from that critique yields a refined output, and the improved
// instruction is extracted from its delimiter block. Prior evaluation
// scores are optional context for the critique.
func (o *Optimizer) RefineCycle(ctx context.Context, instruction, examples string, scores map[string]float64) (string, error) {
	if o.client == nil {
		return "", ErrNoClient
	}

	persona := o.ExpertPrompt()

	critiqueText, err := o.client.Complete(ctx, o.Critique(instruction, examples, scores), persona)
	if err != nil {
		return "", fmt.Errorf("critique completion: %w", err)
	}

	refined, err := o.client.Complete(ctx, o.Refinement(instruction, examples, critiqueText), persona)
	if err != nil {
		return "", fmt.Errorf("refinement completion: %w", err)
	}

	improved, err := ExtractImproved(refined)
	if err != nil {
		return "", err
	}

	o.logger.Debug("refine cycle complete",
		"domain", o.cfg.DomainType, "improved_len", len(improved))
	return improved, nil
}

// CaseResponder adapts the configured client into a ResponseFunc for
// ValidateAgainstCases, answering each case question under the prompt
// being validated and the domain's expert persona.
func (o *Optimizer) CaseResponder(ctx context.Context) ResponseFunc {
	return func(prompt, question string) (string, error) {
		if o.client == nil {
			return "", ErrNoClient
		}
		return o.client.Complete(ctx, prompt+"\n\n질문: "+question, o.ExpertPrompt())
	}
}

// Critique builds the domain-aware critique prompt.
func (o *Optimizer) Critique(instruction, examples string, scores map[string]float64) string {
	return o.generator.CritiquePrompt(instruction, examples, scores)
}

// Refinement builds the domain-aware refinement prompt.
func (o *Optimizer) Refinement(instruction, examples, critiqueText string) string {
	return o.generator.RefinementPrompt(instruction, examples, critiqueText)
}

// TestCase is a critical case projected to a plain record for external
// collaborators to render or persist.
type TestCase struct {
	Question          string   `json:"question"`
	ExpectedElements  []string `json:"expected_elements"`
	ForbiddenElements []string `json:"forbidden_elements"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
}

// CriticalTestCases projects the domain's critical cases to plain records.
func (o *Optimizer) CriticalTestCases() []TestCase {
	cases := o.cfg.CaseLibrary.CriticalCases
	out := make([]TestCase, 0, len(cases))
	for _, c := range cases {
		out = append(out, TestCase{
			Question:          c.Question,
			ExpectedElements:  c.ExpectedElements,
			ForbiddenElements: c.ForbiddenElements,
			Category:          c.Category,
			Difficulty:        c.Difficulty,
		})
	}
	return out
}

// CaseResult is the per-case detail of a validation sweep.
type CaseResult struct {
	Question string  `json:"question"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`

	// Response is the generated text, truncated to 200 characters.
	Response string `json:"response"`
}

// CaseValidationReport aggregates a validation sweep over the full case
// library.
type CaseValidationReport struct {
	// RunID identifies the sweep for correlation across logs and reports.
	RunID string `json:"run_id"`

	// Score is the mean per-case score, 1.0 for an empty library.
	Score float64 `json:"score"`

	Results []CaseResult `json:"results"`
}

// ValidateAgainstCases sweeps every case in the library: the callback
// generates a response for each case question under the given prompt, and
// each response is scored as expected-element recall minus a fixed penalty
// per forbidden element found, floored at zero. A callback failure is
// logged and treated as an empty response (score 0) rather than aborting
// the sweep.
func (o *Optimizer) ValidateAgainstCases(prompt string, gen ResponseFunc) CaseValidationReport {
	report := CaseValidationReport{RunID: uuid.NewString(), Score: 1.0}

	allCases := o.cfg.CaseLibrary.AllCases()
	if len(allCases) == 0 {
		return report
	}

	total := 0.0
	for _, c := range allCases {
		response, err := gen(prompt, c.Question)
		if err != nil {
			o.logger.Warn("failed to generate response for case",
				"run_id", report.RunID, "question", c.Question, "error", err)
			response = ""
		}

		score := scoreCaseResponse(response, c)
		total += score

		report.Results = append(report.Results, CaseResult{
			Question: c.Question,
			Category: c.Category,
			Score:    score,
			Response: excerpt(response, responseExcerptLen),
		})
	}

	report.Score = total / float64(len(allCases))
	return report
}

// scoreCaseResponse is expected-element recall minus 0.25 per forbidden
// element found, floored at 0. Empty responses score 0.
func scoreCaseResponse(response string, c knowledge.CaseExample) float64 {
	if response == "" {
		return 0.0
	}
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

	penalty := 0.0
	for _, elem := range c.ForbiddenElements {
		if strings.Contains(lower, strings.ToLower(elem)) {
			penalty += forbiddenElementPenalty
		}
	}

	score := expectedScore - penalty
	if score < 0 {
		return 0.0
	}
	return score
}

// Validators decodes the domain's validator specifications. Invalid specs
// are logged and skipped.
func (o *Optimizer) Validators() []validators.Validator {
	return validators.FromSpecs(o.cfg.Validators, o.logger)
}

// CheckValidators runs every domain validator against the text and
// returns the failure messages of those that did not pass. An empty
// result means the text cleared all gates.
func (o *Optimizer) CheckValidators(text string) []string {
	var failures []string
	for _, v := range o.Validators() {
		if !v.Validate(text) {
			failures = append(failures, v.FailureMessage())
		}
	}
	return failures
}

// Summary returns the domain configuration summary.
func (o *Optimizer) Summary() map[string]any { return o.cfg.Summary() }

func topN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
