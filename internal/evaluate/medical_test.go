package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/tacit/internal/knowledge"
)

func medicalTestConfig() knowledge.DomainConfig {
	return knowledge.DomainConfig{
		DomainType: "medical",
		DomainName: "의료",
		Knowledge: knowledge.DomainKnowledge{
			Principles: []string{
				"환자 안전이 최우선이다",
				"근거 기반 의학을 따른다",
			},
			Constraints: []string{
				"확정 진단 표현 금지 - 반드시 의사 확인 권고 포함",
				"구체적 용량 권고 시 체중/나이/기저질환 고려 명시",
			},
			QualityCriteria: []knowledge.QualityCriterion{
				{Name: "안전성", Weight: 0.35},
				{Name: "근거 기반", Weight: 0.25},
				{Name: "명확성", Weight: 0.20},
			},
		},
	}
}

func TestMedicalEvaluator_EvaluateEmergencyHandling(t *testing.T) {
	m := NewMedicalEvaluator(medicalTestConfig())

	tests := []struct {
		name     string
		question string
		response string
		want     float64
	}{
		{
			name:     "non emergency question is not applicable",
			question: "감기에 좋은 음식이 뭐가 있나요?",
			response: "수분을 충분히 드세요",
			want:     1.0,
		},
		{
			name:     "urgency surfaced immediately",
			question: "갑자기 의식을 잃었어요",
			response: "즉시 응급실로 가세요. 119에 신고하시고 환자를 옆으로 눕혀주세요.",
			want:     1.0,
		},
		{
			// 응급실 at character 60, inside the lead window even though
			// its UTF-8 byte offset is past 100.
			name:     "venue surfaced within the lead window without urgency wording",
			question: "갑자기 의식을 잃었어요",
			response: "여러 가지 원인이 있을 수 있습니다. 피로, 저혈당, 빈혈 등 다양한 요인을 생각해볼 수 있는데요. 우선은 응급실 방문을 권합니다.",
			want:     0.7,
		},
		{
			name:     "venue buried past the lead window",
			question: "갑자기 의식을 잃었어요",
			response: "의식 소실에는 다양한 원인이 있습니다. 미주신경성 실신, 기립성 저혈압, 저혈당, 빈혈, 부정맥, 뇌혈관 질환 등 여러 가능성을 차례로 생각해볼 수 있고, 평소 복용 중인 약물의 영향도 배제할 수 없습니다. 이런 경우에는 원인 감별을 위해 응급실 진료를 권합니다.",
			want:     0.5,
		},
		{
			name:     "no emergency guidance at all",
			question: "갑자기 심한 복통이 있어요",
			response: "소화불량일 수 있으니 따뜻한 물을 드세요.",
			want:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.EvaluateEmergencyHandling(tt.response, tt.question)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMedicalHeuristics_CheckAccuracy(t *testing.T) {
	h := newMedicalHeuristics()

	tests := []struct {
		name        string
		response    string
		groundTruth string
		want        float64
	}{
		{
			name:        "empty ground truth is neutral",
			response:    "응답",
			groundTruth: "",
			want:        0.5,
		},
		{
			name:        "full overlap",
			response:    "보통 하루 2회 복용 합니다",
			groundTruth: "하루 2회 복용",
			want:        1.0,
		},
		{
			name:        "partial overlap with numeric bonus",
			response:    "일반적으로 500 mg 용량입니다",
			groundTruth: "하루 500 mg",
			want:        2.0/3.0 + 0.2,
		},
		{
			name:        "no overlap",
			response:    "물을 드세요",
			groundTruth: "하루 2회 복용",
			want:        0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.CheckAccuracy(tt.response, tt.groundTruth)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMedicalHeuristics_ScoreConstraints_WidensDenominator(t *testing.T) {
	h := newMedicalHeuristics()

	// One dangerous phrasing hit over the seven built-in patterns, no
	// configured constraints.
	got := h.ScoreConstraints("이 약을 반드시 매일 복용하세요", nil)
	assert.InDelta(t, 1.0-1.0/7.0, got, 1e-9)

	// A clean response over built-in patterns only.
	got = h.ScoreConstraints("의사와 상담 후 복용 여부를 결정하세요", nil)
	assert.Equal(t, 1.0, got)
}

func TestMedicalHeuristics_ViolatesConstraint(t *testing.T) {
	h := newMedicalHeuristics()

	tests := []struct {
		name       string
		response   string
		constraint string
		want       bool
	}{
		{
			name:       "definitive diagnosis phrasing",
			response:   "이것은 틀림없이 위염 증상입니다",
			constraint: "확정 진단 표현 금지",
			want:       true,
		},
		{
			name:       "hedged assessment passes diagnosis check",
			response:   "위염 가능성이 있으니 의사 진료를 받아보시길 권합니다",
			constraint: "확정 진단 표현 금지",
			want:       false,
		},
		{
			name:       "unqualified numeric dosage",
			response:   "600mg을 드시면 됩니다",
			constraint: "구체적 용량 권고 시 고려사항 명시",
			want:       true,
		},
		{
			name:       "qualified dosage passes",
			response:   "일반적으로 성인 기준 500mg이며, 의사 처방을 따르세요",
			constraint: "구체적 용량 권고 시 고려사항 명시",
			want:       false,
		},
		{
			name:       "missing consultation guidance",
			response:   "푹 쉬면 괜찮아질 거예요",
			constraint: "전문가 상담 권고 포함",
			want:       true,
		},
		{
			name:       "consultation guidance present",
			response:   "증상이 지속되면 병원 진료를 받아보세요",
			constraint: "전문가 상담 권고 포함",
			want:       false,
		},
		{
			name:       "unrelated constraint never fires",
			response:   "아무 내용",
			constraint: "환자 개인정보 보호 원칙 준수",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ViolatesConstraint(tt.response, tt.constraint))
		})
	}
}

func TestMedicalHeuristics_ScorePrinciples_DefaultFallback(t *testing.T) {
	h := newMedicalHeuristics()

	// Safety keywords, evidence keywords, and emergency awareness each
	// add on top of the 0.5 base.
	full := h.ScorePrinciples("출혈이 있다면 즉시 의사 상담을 받으세요. 임상 가이드라인 권고에 따른 안내입니다.", nil)
	assert.InDelta(t, 1.0, full, 1e-9)

	bare := h.ScorePrinciples("물을 드세요", nil)
	assert.InDelta(t, 0.5, bare, 1e-9)
}

func TestMedicalHeuristics_AlignsWithPrinciple(t *testing.T) {
	h := newMedicalHeuristics()

	tests := []struct {
		name      string
		response  string
		principle string
		want      bool
	}{
		{
			name:      "safety principle needs safety keywords",
			response:  "의사와 상담하세요",
			principle: "환자 안전이 최우선이다",
			want:      true,
		},
		{
			name:      "safety principle without safety keywords",
			response:  "그냥 드셔도 됩니다",
			principle: "환자 안전이 최우선이다",
			want:      false,
		},
		{
			name:      "evidence principle needs evidence keywords",
			response:  "연구 결과에 근거한 가이드라인입니다",
			principle: "근거 기반 의학(EBM)을 따른다",
			want:      true,
		},
		{
			name:      "differential diagnosis principle",
			response:  "다른 가능성을 배제하기 위한 확인이 필요합니다",
			principle: "감별진단 순서를 따른다",
			want:      true,
		},
		{
			name:      "unrecognized principle defaults to aligned",
			response:  "아무 내용",
			principle: "환자의 자율성을 존중한다",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.AlignsWithPrinciple(tt.response, tt.principle))
		})
	}
}

func TestMedicalHeuristics_EvaluateCriterion_Dispatch(t *testing.T) {
	h := newMedicalHeuristics()

	safeResponse := "전문의와 상담하시고, 복용 전 주의사항을 확인하세요. 다만 증상이 악화되면 진료를 받으세요."
	safety := h.EvaluateCriterion(safeResponse, knowledge.QualityCriterion{Name: "안전성"})
	assert.Greater(t, safety, 0.5)

	dangerous := h.EvaluateCriterion("이 약은 부작용 없고 100% 효과가 보장됩니다", knowledge.QualityCriterion{Name: "안전성"})
	assert.Less(t, dangerous, 0.5)

	neutral := h.EvaluateCriterion("아무 내용", knowledge.QualityCriterion{Name: "참신성"})
	assert.InDelta(t, 0.5, neutral, 1e-9)
}

func TestMedicalEvaluator_Evaluate_EndToEnd(t *testing.T) {
	m := NewMedicalEvaluator(medicalTestConfig())

	scores := m.Evaluate(
		"가능성이 여러 가지 있으니 전문의 상담을 받아보세요. 가이드라인 권고에 따르면 충분한 수분 섭취가 도움이 됩니다.",
		"",
		"감기 기운이 있는데 어떻게 하나요?",
	)

	require.Contains(t, scores, MetricOverall)
	require.Contains(t, scores, MetricConstraintCompliance)
	require.Contains(t, scores, MetricPrincipleAlignment)
	require.Contains(t, scores, "안전성")
	require.Contains(t, scores, "근거 기반")
	require.Contains(t, scores, "명확성")

	for metric, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, "metric %s", metric)
		assert.LessOrEqual(t, score, 1.0, "metric %s", metric)
	}
}
