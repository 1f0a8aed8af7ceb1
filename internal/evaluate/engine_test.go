package evaluate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/tacit/internal/knowledge"
)

// stubHeuristics lets tests pin each judgment independently.
type stubHeuristics struct {
	accuracy      float64
	accuracyOK    bool
	violatesWhen  string
	alignsWhen    string
	criterionFunc func(knowledge.QualityCriterion) float64
}

func (s stubHeuristics) CheckAccuracy(_, _ string) (float64, bool) {
	return s.accuracy, s.accuracyOK
}

func (s stubHeuristics) ViolatesConstraint(response, constraint string) bool {
	return s.violatesWhen != "" && strings.Contains(constraint, s.violatesWhen)
}

func (s stubHeuristics) AlignsWithPrinciple(response, principle string) bool {
	return s.alignsWhen == "" || strings.Contains(principle, s.alignsWhen)
}

func (s stubHeuristics) EvaluateCriterion(_ string, c knowledge.QualityCriterion) float64 {
	if s.criterionFunc != nil {
		return s.criterionFunc(c)
	}
	return 0.5
}

func TestEngine_Evaluate_EmptyKnowledge(t *testing.T) {
	engine := NewEngine(knowledge.DomainConfig{DomainType: "x", DomainName: "x"}, nil)

	scores := engine.Evaluate("아무 응답", "", "")

	assert.Equal(t, 1.0, scores[MetricConstraintCompliance])
	assert.Equal(t, 1.0, scores[MetricPrincipleAlignment])
	assert.Contains(t, scores, MetricOverall)
	assert.NotContains(t, scores, MetricAccuracy)
	assert.NotContains(t, scores, MetricCaseCoverage)
}

func TestEngine_Evaluate_AccuracyOmittedWithoutGroundTruth(t *testing.T) {
	engine := NewEngine(knowledge.DomainConfig{}, stubHeuristics{accuracy: 0.9, accuracyOK: true})

	scores := engine.Evaluate("응답", "", "")
	assert.NotContains(t, scores, MetricAccuracy)

	scores = engine.Evaluate("응답", "정답", "")
	assert.InDelta(t, 0.9, scores[MetricAccuracy], 1e-9)
}

func TestEngine_ConstraintCompliance_ViolatedFraction(t *testing.T) {
	cfg := knowledge.DomainConfig{
		Knowledge: knowledge.DomainKnowledge{
			Constraints: []string{
				"확정 진단 금지",
				"용량 단정 금지",
				"민간요법 권고 금지",
				"개인정보 노출 금지",
			},
		},
	}
	engine := NewEngine(cfg, stubHeuristics{violatesWhen: "용량"})

	scores := engine.Evaluate("응답", "", "")
	assert.InDelta(t, 0.75, scores[MetricConstraintCompliance], 1e-9)
}

func TestEngine_PrincipleAlignment_AlignedFraction(t *testing.T) {
	cfg := knowledge.DomainConfig{
		Knowledge: knowledge.DomainKnowledge{
			Principles: []string{"안전 우선", "근거 기반", "안전 확인", "중립 유지"},
		},
	}
	engine := NewEngine(cfg, stubHeuristics{alignsWhen: "안전"})

	scores := engine.Evaluate("응답", "", "")
	assert.InDelta(t, 0.5, scores[MetricPrincipleAlignment], 1e-9)
}

func TestEngine_Evaluate_CriterionMetricsAndOverall(t *testing.T) {
	cfg := knowledge.DomainConfig{
		Knowledge: knowledge.DomainKnowledge{
			QualityCriteria: []knowledge.QualityCriterion{
				{Name: "명확성", Weight: 0.6},
			},
		},
	}
	engine := NewEngine(cfg, nil)

	scores := engine.Evaluate("응답", "", "")
	assert.InDelta(t, 0.5, scores["명확성"], 1e-9)

	// constraint 1.0*0.25 + principle 1.0*0.20 + 명확성 0.5*0.6, over 1.05.
	assert.InDelta(t, 0.75/1.05, scores[MetricOverall], 1e-9)
}

func TestEngine_Evaluate_CriterionWeightOverridesDefault(t *testing.T) {
	cfg := knowledge.DomainConfig{
		Knowledge: knowledge.DomainKnowledge{
			QualityCriteria: []knowledge.QualityCriterion{
				{Name: MetricConstraintCompliance, Weight: 0.75},
			},
		},
	}
	engine := NewEngine(cfg, stubHeuristics{
		criterionFunc: func(knowledge.QualityCriterion) float64 { return 0.0 },
	})

	scores := engine.Evaluate("응답", "", "")

	// The criterion pass rewrites the metric, and its declared weight
	// replaces the standard 0.25 in the aggregate:
	// (0.0*0.75 + 1.0*0.20) / 0.95, not (0.0*0.25 + 1.0*0.20) / 0.45.
	assert.InDelta(t, 0.0, scores[MetricConstraintCompliance], 1e-9)
	assert.InDelta(t, 0.20/0.95, scores[MetricOverall], 1e-9)
}

func TestEngine_CaseCoverage(t *testing.T) {
	cfg := knowledge.DomainConfig{
		CaseLibrary: knowledge.CaseLibrary{
			EdgeCases: []knowledge.CaseExample{
				{
					Question:          "타이레놀과 술을 같이 먹어도 되나요?",
					ExpectedElements:  []string{"간독성", "위험"},
					ForbiddenElements: []string{"괜찮습니다"},
				},
			},
		},
	}
	engine := NewEngine(cfg, nil)

	tests := []struct {
		name     string
		question string
		response string
		want     float64
		present  bool
	}{
		{
			name:     "matched question with partial coverage",
			question: "타이레놀과 술을 같이 먹어도 되나요?",
			response: "간독성 우려가 있어 피하셔야 합니다",
			want:     0.5,
			present:  true,
		},
		{
			name:     "matched question with forbidden element",
			question: "타이레놀과 술을 같이 먹어도 되나요?",
			response: "간독성이 있지만 위험하진 않고 괜찮습니다",
			// expected 2/2 minus forbidden 1/1, floored at 0.
			want:    0.0,
			present: true,
		},
		{
			name:     "unmatched question omits the metric",
			question: "허리가 아픈데 어떻게 해야 하나요?",
			response: "간독성 위험이 있습니다",
			present:  false,
		},
		{
			name:     "no question omits the metric",
			question: "",
			response: "간독성 위험이 있습니다",
			present:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := engine.Evaluate(tt.response, "", tt.question)
			got, ok := scores[MetricCaseCoverage]
			require.Equal(t, tt.present, ok)
			if tt.present {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestQuestionsMatch(t *testing.T) {
	tests := []struct {
		name string
		q1   string
		q2   string
		want bool
	}{
		{
			name: "identical",
			q1:   "가슴이 아프고 왼쪽 팔이 저립니다",
			q2:   "가슴이 아프고 왼쪽 팔이 저립니다",
			want: true,
		},
		{
			name: "majority overlap of shorter question",
			q1:   "가슴이 아프고 팔이 저립니다",
			q2:   "가슴이 아프고 왼쪽 팔이 저립니다 어떡하죠",
			want: true,
		},
		{
			name: "disjoint",
			q1:   "감기에 좋은 음식",
			q2:   "허리가 아픕니다",
			want: false,
		},
		{
			name: "exactly half is not enough",
			q1:   "하나 둘",
			q2:   "하나 셋",
			want: false,
		},
		{
			name: "empty question never matches",
			q1:   "",
			q2:   "가슴이 아픕니다",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, questionsMatch(tt.q1, tt.q2))
		})
	}
}

func TestScoreAgainstCase_NoExpectedElements(t *testing.T) {
	score := scoreAgainstCase("아무 내용", knowledge.CaseExample{Question: "q"})
	assert.Equal(t, 1.0, score)
}

func TestEngine_Evaluate_ScoresWithinUnitInterval(t *testing.T) {
	cfg := knowledge.DomainConfig{
		Knowledge: knowledge.DomainKnowledge{
			Principles:  []string{"안전", "근거"},
			Constraints: []string{"확정 진단 금지"},
			QualityCriteria: []knowledge.QualityCriterion{
				{Name: "안전성", Weight: 0.35},
				{Name: "명확성", Weight: 0.20},
			},
		},
	}
	engine := NewEngine(cfg, stubHeuristics{accuracy: 3.7, accuracyOK: true})

	scores := engine.Evaluate("응답입니다", "정답입니다", "질문입니다")
	for metric, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, "metric %s", metric)
		assert.LessOrEqual(t, score, 1.0, "metric %s", metric)
	}
	// Out-of-range heuristic output is clamped, not passed through.
	assert.Equal(t, 1.0, scores[MetricAccuracy])
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 1.0, clamp01(1.7))
	assert.Equal(t, 0.42, clamp01(0.42))
}
